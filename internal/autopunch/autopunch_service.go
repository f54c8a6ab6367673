package autopunch

import "context"

//go:generate mockgen -source=autopunch_service.go -destination=mock/autopunch_service_mock.go -package=mock
type Service interface {
	AutoPunchIn(ctx context.Context) (PunchInSummary, error)
	AutoPunchOut(ctx context.Context, req PunchOutRequest) (PunchOutSummary, error)
}

type service struct {
	punchIn  *PunchInJob
	punchOut *PunchOutJob
}

func NewService(punchIn *PunchInJob, punchOut *PunchOutJob) Service {
	return &service{punchIn: punchIn, punchOut: punchOut}
}

func (s *service) AutoPunchIn(ctx context.Context) (PunchInSummary, error) {
	return s.punchIn.Run(ctx)
}

func (s *service) AutoPunchOut(ctx context.Context, req PunchOutRequest) (PunchOutSummary, error) {
	return s.punchOut.Run(ctx, req)
}
