package businesshours

type DayHoursRequest struct {
	IsOpen    bool   `json:"is_open"`
	OpenTime  string `json:"open_time"`
	CloseTime string `json:"close_time"`
}

type UpdateBusinessHoursRequest struct {
	Days []DayHoursRequest `json:"days" binding:"required,len=7"`
}

type DayHoursResponse struct {
	Weekday   string `json:"weekday"`
	IsOpen    bool   `json:"is_open"`
	OpenTime  string `json:"open_time,omitempty"`
	CloseTime string `json:"close_time,omitempty"`
	Overnight bool   `json:"overnight"`
}

type BusinessHoursResponse struct {
	CompanyID string             `json:"company_id"`
	Days      []DayHoursResponse `json:"days"`
}
