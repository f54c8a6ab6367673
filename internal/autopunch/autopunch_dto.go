package autopunch

import (
	"go-timeclock/internal/shared/apperror"
	"go-timeclock/internal/timezone"
)

type AutoPunchOutRequest struct {
	Date  string `json:"date" binding:"omitempty,datetime=2006-01-02"`
	Force bool   `json:"force"`
}

func (r AutoPunchOutRequest) ToPunchOutRequest() (PunchOutRequest, error) {
	out := PunchOutRequest{Force: r.Force}
	if r.Date == "" {
		return out, nil
	}
	d, err := timezone.ParseDate(r.Date)
	if err != nil {
		return out, apperror.InvalidField("date")
	}
	out.TargetDate = &d
	return out, nil
}
