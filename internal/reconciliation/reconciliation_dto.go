package reconciliation

type TimesheetRequest struct {
	From string `form:"from" binding:"required,datetime=2006-01-02"`
	To   string `form:"to" binding:"required,datetime=2006-01-02"`
}

type TimesheetResponse struct {
	EmployeeID   string          `json:"employee_id"`
	From         string          `json:"from"`
	To           string          `json:"to"`
	Timezone     string          `json:"timezone"`
	TotalMinutes int             `json:"total_minutes"`
	Days         []ReconciledDay `json:"days"`
}
