package app

import (
	"context"
	"database/sql"
	"fmt"

	"go-timeclock/internal/config"
	"go-timeclock/internal/shared/connection"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const connectRetries = 5

// Infra holds the shared connections of one process.
type Infra struct {
	Config *config.Config
	GormDB *gorm.DB
	SQLDB  *sql.DB
	Redis  *redis.Client
}

// connectInfra opens postgres and, when withRedis is set, redis.
func connectInfra(ctx context.Context, cfg *config.Config, withRedis bool) (*Infra, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	gormDB, err := connection.ConnectGORMWithRetry(
		ctx,
		cfg.DBHost,
		cfg.DBUser,
		cfg.DBPassword,
		cfg.DBName,
		cfg.DBPort,
		cfg.DBSSLMode,
		connectRetries,
	)
	if err != nil {
		return nil, err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}

	if cfg.AutoMigrate {
		if err := migrate(gormDB); err != nil {
			_ = sqlDB.Close()
			return nil, err
		}
	}

	infra := &Infra{Config: cfg, GormDB: gormDB, SQLDB: sqlDB}
	if !withRedis {
		return infra, nil
	}

	if cfg.RedisAddr == "" {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("REDIS_ADDR is required")
	}
	rdb, err := connection.ConnectRedisWithRetry(ctx, cfg.RedisAddr, connectRetries)
	if err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	infra.Redis = rdb
	return infra, nil
}

func (i *Infra) Close() {
	if i.Redis != nil {
		_ = i.Redis.Close()
	}
	if i.SQLDB != nil {
		_ = i.SQLDB.Close()
	}
}
