package connection

import (
	"context"
	"fmt"
	"time"

	"github.com/codeGROOVE-dev/retry"
	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const retryDelay = 2 * time.Second

func retryOptions(ctx context.Context, what string, maxRetries int) []retry.Option {
	log := zap.L().Named("connection")
	return []retry.Option{
		retry.Context(ctx),
		retry.Attempts(uint(maxRetries)),
		retry.Delay(retryDelay),
		retry.MaxDelay(30 * time.Second),
		retry.DelayType(retry.BackOffDelay),
		retry.OnRetry(func(n uint, err error) {
			log.Warn("connect attempt failed",
				zap.String("target", what),
				zap.Uint("attempt", n+1),
				zap.Int("max_attempts", maxRetries),
				zap.Error(err),
			)
		}),
	}
}

func ConnectGORMWithRetry(
	ctx context.Context,
	host, user, password, dbname, port, sslmode string,
	maxRetries int,
) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		host, user, password, dbname, port, sslmode,
	)

	var db *gorm.DB
	err := retry.Do(func() error {
		opened, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err != nil {
			return err
		}
		sqlDB, err := opened.DB()
		if err != nil {
			return err
		}
		if err := sqlDB.PingContext(ctx); err != nil {
			_ = sqlDB.Close()
			return err
		}

		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetConnMaxLifetime(time.Hour)
		db = opened
		return nil
	}, retryOptions(ctx, "postgres", maxRetries)...)
	if err != nil {
		return nil, fmt.Errorf("database connection failed after %d attempts: %w", maxRetries, err)
	}

	zap.L().Named("connection").Info("connected to postgres", zap.String("host", host), zap.String("db", dbname))
	return db, nil
}

func ConnectRedisWithRetry(ctx context.Context, addr string, maxRetries int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr})

	err := retry.Do(func() error {
		return rdb.Ping(ctx).Err()
	}, retryOptions(ctx, "redis", maxRetries)...)
	if err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis connection failed after %d attempts: %w", maxRetries, err)
	}

	zap.L().Named("connection").Info("connected to redis", zap.String("addr", addr))
	return rdb, nil
}

// ConnectKafkaWithRetry checks the broker is reachable before handing out a writer;
// kafka-go writers otherwise only fail on first write.
func ConnectKafkaWithRetry(ctx context.Context, broker string, maxRetries int) (*kafkago.Writer, error) {
	err := retry.Do(func() error {
		conn, err := kafkago.DialContext(ctx, "tcp", broker)
		if err != nil {
			return err
		}
		return conn.Close()
	}, retryOptions(ctx, "kafka", maxRetries)...)
	if err != nil {
		return nil, fmt.Errorf("kafka connection failed after %d attempts: %w", maxRetries, err)
	}

	zap.L().Named("connection").Info("connected to kafka", zap.String("broker", broker))
	return &kafkago.Writer{
		Addr:                   kafkago.TCP(broker),
		Balancer:               &kafkago.Hash{},
		RequiredAcks:           kafkago.RequireAll,
		AllowAutoTopicCreation: true,
	}, nil
}
