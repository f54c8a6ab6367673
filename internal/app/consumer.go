package app

import (
	"context"
	"fmt"

	"go-timeclock/internal/bootstrap"
	"go-timeclock/internal/config"
	"go-timeclock/internal/equipmentcheck"
	"go-timeclock/internal/events"
	"go-timeclock/internal/messaging/kafka/consumer"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const equipmentCheckGroupID = "go-timeclock-equipment-check"

// RunConsumer records equipment-check requests for auto punch-ins until a
// shutdown signal arrives.
func RunConsumer(cfg *config.Config) error {
	logger := zap.L().Named("app.consumer")

	if cfg.KafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	in, err := connectInfra(ctx, cfg, false)
	if err != nil {
		return err
	}
	defer in.Close()

	equipmentCheckRepo := equipmentcheck.NewRepository(in.GormDB)
	equipmentCheckService := equipmentcheck.NewService(equipmentCheckRepo, logger)

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{cfg.KafkaBroker},
		Topic:          events.AutoPunchInTopic,
		GroupID:        equipmentCheckGroupID,
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer reader.Close()

	go consumer.ConsumeAutoPunchIn(ctx, reader, equipmentCheckService, logger)

	sig := bootstrap.WaitForSignal()
	logger.Info("consumer shutting down", zap.String("signal", sig.String()))
	cancel()

	return nil
}
