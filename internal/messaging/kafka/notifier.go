package kafka

import (
	"context"
	"time"

	"go-timeclock/internal/events"
)

// OutboxNotifier records auto punch-in events in the outbox for the relay
// worker to publish.
type OutboxNotifier struct {
	repo OutboxRepository
	now  func() time.Time
}

func NewOutboxNotifier(repo OutboxRepository) *OutboxNotifier {
	return &OutboxNotifier{repo: repo, now: time.Now}
}

func (n *OutboxNotifier) NotifyAutoPunchIn(ctx context.Context, evt events.AutoPunchInEvent) error {
	evt.EventType = events.AutoPunchInEventType
	if evt.OccurredAt.IsZero() {
		evt.OccurredAt = n.now().UTC()
	}

	row, err := NewOutboxEvent(
		events.AutoPunchInTopic,
		events.AutoPunchInEventType,
		"employee",
		evt.EmployeeID,
		evt.RunID,
		evt,
	)
	if err != nil {
		return err
	}
	return n.repo.Create(ctx, row)
}
