package consumer

import (
	"context"
	"encoding/json"
	"errors"

	"go-timeclock/internal/equipmentcheck"
	equipmentcheckerrors "go-timeclock/internal/equipmentcheck/errors"
	"go-timeclock/internal/events"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is the part of *kafkago.Reader the consumers use.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// ConsumeAutoPunchIn turns auto punch-in events into pending equipment checks.
// It blocks until ctx is cancelled.
func ConsumeAutoPunchIn(
	ctx context.Context,
	reader MessageReader,
	equipmentCheckService equipmentcheck.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.auto_punch_in")
	log.Info("auto punch-in consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("auto punch-in consumer stopped")
				return
			}
			log.Error("fetch auto punch-in message failed", zap.Error(err))
			continue
		}

		var event events.AutoPunchInEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode auto_punch_in event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		_, err = equipmentCheckService.RequestFromAutoPunchIn(ctx, event)
		if err != nil {
			switch {
			case errors.Is(err, equipmentcheckerrors.ErrAlreadyRequested):
				log.Warn("equipment check already requested for event, skipping",
					zap.String("employee_id", event.EmployeeID),
					zap.String("run_id", event.RunID),
				)
				_ = reader.CommitMessages(ctx, msg)
			case errors.Is(err, equipmentcheckerrors.ErrInvalidEvent):
				log.Error("auto_punch_in event rejected",
					zap.String("employee_id", event.EmployeeID),
					zap.String("company_id", event.CompanyID),
				)
				_ = reader.CommitMessages(ctx, msg)
			default:
				log.Error("create equipment check failed",
					zap.String("employee_id", event.EmployeeID),
					zap.String("company_id", event.CompanyID),
					zap.Error(err),
				)
			}
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit auto punch-in message failed", zap.Error(err))
			continue
		}

		log.Info("equipment check created from auto_punch_in event",
			zap.String("employee_id", event.EmployeeID),
			zap.String("company_id", event.CompanyID),
			zap.String("run_id", event.RunID),
		)
	}
}
