package consumer

import (
	"context"
	"encoding/json"
	"testing"

	"go-timeclock/internal/equipmentcheck"
	equipmentcheckerrors "go-timeclock/internal/equipmentcheck/errors"
	"go-timeclock/internal/events"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// fakeReader serves queued messages, then cancels the consumer context.
type fakeReader struct {
	msgs      []kafkago.Message
	committed []kafkago.Message
	cancel    context.CancelFunc
}

func (r *fakeReader) FetchMessage(ctx context.Context) (kafkago.Message, error) {
	if len(r.msgs) == 0 {
		r.cancel()
		return kafkago.Message{}, context.Canceled
	}
	m := r.msgs[0]
	r.msgs = r.msgs[1:]
	return m, nil
}

func (r *fakeReader) CommitMessages(ctx context.Context, msgs ...kafkago.Message) error {
	r.committed = append(r.committed, msgs...)
	return nil
}

type fakeEquipmentService struct {
	requestFn func(ctx context.Context, evt events.AutoPunchInEvent) (*equipmentcheck.Request, error)
	calls     int
}

func (f *fakeEquipmentService) RequestFromAutoPunchIn(ctx context.Context, evt events.AutoPunchInEvent) (*equipmentcheck.Request, error) {
	f.calls++
	return f.requestFn(ctx, evt)
}

func message(t *testing.T, offset int64, v any) kafkago.Message {
	t.Helper()
	b, err := json.Marshal(v)
	assert.NoError(t, err)
	return kafkago.Message{Offset: offset, Value: b}
}

func TestConsumeAutoPunchIn(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reader := &fakeReader{
		cancel: cancel,
		msgs: []kafkago.Message{
			message(t, 1, events.AutoPunchInEvent{EmployeeID: "ok"}),
			message(t, 2, events.AutoPunchInEvent{EmployeeID: "dup"}),
			message(t, 3, events.AutoPunchInEvent{EmployeeID: "boom"}),
			{Offset: 4, Value: []byte("{not json")},
		},
	}
	svc := &fakeEquipmentService{requestFn: func(ctx context.Context, evt events.AutoPunchInEvent) (*equipmentcheck.Request, error) {
		switch evt.EmployeeID {
		case "dup":
			return nil, equipmentcheckerrors.ErrAlreadyRequested
		case "boom":
			return nil, assert.AnError
		}
		return &equipmentcheck.Request{}, nil
	}}

	ConsumeAutoPunchIn(ctx, reader, svc, zap.NewNop())

	assert.Equal(t, 3, svc.calls)
	var offsets []int64
	for _, m := range reader.committed {
		offsets = append(offsets, m.Offset)
	}
	// transient failures stay uncommitted for redelivery
	assert.Equal(t, []int64{1, 2, 4}, offsets)
}
