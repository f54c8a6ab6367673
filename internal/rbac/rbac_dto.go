package rbac

// Resources and actions checked by route guards.
const (
	ResourceTimesheet     = "timesheet"
	ResourceBusinessHours = "business_hours"
	ResourceTimeEntry     = "time_entry"

	ActionRead    = "read"
	ActionReadAll = "read_all"
	ActionCreate  = "create"
	ActionUpdate  = "update"
)

type EnforceRequest struct {
	EmployeeID string `json:"employee_id"`
	CompanyID  string `json:"company_id"`
	Resource   string `json:"resource"`
	Action     string `json:"action"`
}
