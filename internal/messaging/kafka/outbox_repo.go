package kafka

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	OutboxStatusPending = "pending"
	OutboxStatusSent    = "sent"
	OutboxStatusFailed  = "failed"
	// OutboxStatusDead rows exhausted MaxOutboxAttempts and are no longer relayed.
	OutboxStatusDead = "dead"
)

const (
	MaxOutboxAttempts = 8

	baseRetryDelay = 15 * time.Second
	maxRetryDelay  = 10 * time.Minute
	maxErrorLength = 500
)

// OutboxEvent is one row of outbox_events. RequestID carries the cron run id
// that produced the row.
type OutboxEvent struct {
	ID            string
	RequestID     string
	AggregateType string
	AggregateID   string
	EventType     string
	Topic         string
	Payload       []byte
	Status        string
	RetryCount    int
	NextRetryAt   time.Time
	LastError     string
}

// NewOutboxEvent builds a pending row with a JSON payload.
func NewOutboxEvent(topic, eventType, aggregateType, aggregateID, requestID string, payload any) (OutboxEvent, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return OutboxEvent{}, fmt.Errorf("encode %s payload: %w", eventType, err)
	}
	event := OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     requestID,
		AggregateType: aggregateType,
		AggregateID:   aggregateID,
		EventType:     eventType,
		Topic:         topic,
		Payload:       data,
		Status:        OutboxStatusPending,
	}
	return event, ValidateOutboxEvent(event)
}

// RetryDelay doubles from 15s per failed attempt and is capped at 10m.
func RetryDelay(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	delay := baseRetryDelay
	for i := 1; i < attempt; i++ {
		delay *= 2
		if delay >= maxRetryDelay {
			return maxRetryDelay
		}
	}
	return delay
}

// Failed returns the row as it should be stored after a publish failure at.
func (e OutboxEvent) Failed(cause error, at time.Time) OutboxEvent {
	next := e
	next.RetryCount++
	next.NextRetryAt = at.Add(RetryDelay(next.RetryCount))
	next.Status = OutboxStatusFailed
	if next.RetryCount >= MaxOutboxAttempts {
		next.Status = OutboxStatusDead
	}
	if cause != nil {
		next.LastError = truncateRunes(cause.Error(), maxErrorLength)
	}
	return next
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

//go:generate mockgen -source=outbox_repo.go -destination=mock/outbox_repo_mock.go -package=mock

type OutboxRepository interface {
	WithTx(tx *sql.Tx) OutboxRepository
	Create(ctx context.Context, event OutboxEvent) error
	ListDue(ctx context.Context, now time.Time, limit int) ([]OutboxEvent, error)
	MarkSent(ctx context.Context, id string, at time.Time) error
	RecordFailure(ctx context.Context, event OutboxEvent) error
}

type outboxRepository struct {
	db *sql.DB
	tx *sql.Tx
}

func NewOutboxRepository(db *sql.DB) OutboxRepository {
	return &outboxRepository{db: db}
}

func (r *outboxRepository) WithTx(tx *sql.Tx) OutboxRepository {
	return &outboxRepository{db: r.db, tx: tx}
}

type sqlConn interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func (r *outboxRepository) conn() sqlConn {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

const insertOutboxEvent = `
INSERT INTO outbox_events (
	id, request_id, aggregate_type, aggregate_id, event_type, topic, payload, status
) VALUES ($1, NULLIF($2, ''), $3, $4, $5, $6, $7, $8)
`

func (r *outboxRepository) Create(ctx context.Context, event OutboxEvent) error {
	if err := ValidateOutboxEvent(event); err != nil {
		return err
	}
	_, err := r.conn().ExecContext(ctx, insertOutboxEvent,
		event.ID, event.RequestID, event.AggregateType,
		event.AggregateID, event.EventType, event.Topic, event.Payload, event.Status,
	)
	return err
}

// Rows never retried sort by created_at, retried rows by their due time.
const selectDueOutboxEvents = `
SELECT id::text, COALESCE(request_id, ''), aggregate_type, aggregate_id::text,
	event_type, topic, payload, status, retry_count,
	COALESCE(next_retry_at, created_at), COALESCE(error_message, '')
FROM outbox_events
WHERE status IN ($1, $2)
	AND COALESCE(next_retry_at, created_at) <= $3
ORDER BY COALESCE(next_retry_at, created_at) ASC, id ASC
LIMIT $4
`

func (r *outboxRepository) ListDue(ctx context.Context, now time.Time, limit int) ([]OutboxEvent, error) {
	rows, err := r.conn().QueryContext(ctx, selectDueOutboxEvents,
		OutboxStatusPending, OutboxStatusFailed, now, limit)
	if err != nil {
		return nil, fmt.Errorf("list due outbox events: %w", err)
	}
	defer rows.Close()

	due := make([]OutboxEvent, 0, limit)
	for rows.Next() {
		e, err := scanOutboxEvent(rows)
		if err != nil {
			return nil, err
		}
		due = append(due, e)
	}
	return due, rows.Err()
}

func scanOutboxEvent(rows *sql.Rows) (OutboxEvent, error) {
	var e OutboxEvent
	err := rows.Scan(
		&e.ID, &e.RequestID, &e.AggregateType, &e.AggregateID,
		&e.EventType, &e.Topic, &e.Payload, &e.Status, &e.RetryCount,
		&e.NextRetryAt, &e.LastError,
	)
	if err != nil {
		return OutboxEvent{}, fmt.Errorf("scan outbox event: %w", err)
	}
	return e, nil
}

// Sent rows are never reopened by a late failure report.
const markOutboxSent = `
UPDATE outbox_events
SET status = $2, processed_at = $3, error_message = NULL, updated_at = $3
WHERE id = $1 AND status <> $2
`

func (r *outboxRepository) MarkSent(ctx context.Context, id string, at time.Time) error {
	_, err := r.conn().ExecContext(ctx, markOutboxSent, id, OutboxStatusSent, at)
	return err
}

const recordOutboxFailure = `
UPDATE outbox_events
SET status = $2, retry_count = $3, error_message = $4, next_retry_at = $5, updated_at = NOW()
WHERE id = $1 AND status <> $6
`

// RecordFailure persists a row produced by OutboxEvent.Failed.
func (r *outboxRepository) RecordFailure(ctx context.Context, event OutboxEvent) error {
	if event.Status != OutboxStatusFailed && event.Status != OutboxStatusDead {
		return fmt.Errorf("record failure with status %q", event.Status)
	}
	_, err := r.conn().ExecContext(ctx, recordOutboxFailure,
		event.ID, event.Status, event.RetryCount, event.LastError, event.NextRetryAt, OutboxStatusSent)
	return err
}

func ValidateOutboxEvent(event OutboxEvent) error {
	if event.ID == "" {
		return errors.New("outbox id is required")
	}
	if event.Topic == "" {
		return errors.New("outbox topic is required")
	}
	if len(event.Payload) == 0 {
		return errors.New("outbox payload is required")
	}
	switch event.Status {
	case OutboxStatusPending, OutboxStatusSent, OutboxStatusFailed, OutboxStatusDead:
		return nil
	default:
		return fmt.Errorf("invalid outbox status: %s", event.Status)
	}
}
