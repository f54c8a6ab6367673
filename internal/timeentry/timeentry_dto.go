package timeentry

type ListRequest struct {
	From string `form:"from" binding:"required,datetime=2006-01-02"`
	To   string `form:"to" binding:"required,datetime=2006-01-02"`
}

type TimeEntryResponse struct {
	ID          string `json:"id"`
	EmployeeID  string `json:"employee_id"`
	CompanyID   string `json:"company_id"`
	EntryType   string `json:"entry_type"`
	Timestamp   string `json:"timestamp"`
	IsAutomatic bool   `json:"is_automatic"`
}
