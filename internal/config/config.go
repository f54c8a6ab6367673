package config

import (
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"go-timeclock/internal/businesshours"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// Scheduling defaults. Operational ones can be overridden from the environment.
const (
	DefaultPunchInLookAhead      = 5 * time.Minute
	DefaultDuplicateWindow       = 10 * time.Minute
	DefaultPunchOutGraceWindow   = 5 * time.Minute
	DefaultPunchOutLateThreshold = 10 * time.Minute
	DefaultBusinessTimezone      = "UTC"
)

type Config struct {
	AppEnv      string
	Port        string
	AutoMigrate bool

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	DBSSLMode  string

	RedisAddr   string
	KafkaBroker string

	JWTSecret  string
	CronSecret string

	BusinessTimezone string
	Scheduling       Scheduling
}

type Scheduling struct {
	PunchInLookAhead      time.Duration
	DuplicateWindow       time.Duration
	PunchOutGraceWindow   time.Duration
	PunchOutLateThreshold time.Duration
}

func DefaultScheduling() Scheduling {
	return Scheduling{
		PunchInLookAhead:      DefaultPunchInLookAhead,
		DuplicateWindow:       DefaultDuplicateWindow,
		PunchOutGraceWindow:   DefaultPunchOutGraceWindow,
		PunchOutLateThreshold: DefaultPunchOutLateThreshold,
	}
}

var (
	cfg  *Config
	once sync.Once
)

// Load reads .env (if present) and the process environment once.
func Load() *Config {
	once.Do(func() {
		if err := godotenv.Load(); err != nil {
			zap.L().Debug(".env not found, relying on process environment")
		}
		cfg = FromEnv(os.Getenv)
	})
	return cfg
}

// FromEnv builds a Config from any lookup function; tests pass a map-backed one.
func FromEnv(getenv func(string) string) *Config {
	c := &Config{
		AppEnv:           getenv("APP_ENV"),
		Port:             withDefault(getenv("PORT"), "3000"),
		DBHost:           getenv("DB_HOST"),
		DBUser:           getenv("DB_USER"),
		DBPassword:       getenv("DB_PASSWORD"),
		DBName:           getenv("DB_NAME"),
		DBPort:           withDefault(getenv("DB_PORT"), "5432"),
		DBSSLMode:        withDefault(getenv("DB_SSLMODE"), "disable"),
		RedisAddr:        getenv("REDIS_ADDR"),
		KafkaBroker:      getenv("KAFKA_BROKER"),
		JWTSecret:        getenv("JWT_SECRET"),
		CronSecret:       getenv("CRON_SECRET"),
		BusinessTimezone: withDefault(getenv("BUSINESS_TIMEZONE"), DefaultBusinessTimezone),
		Scheduling:       DefaultScheduling(),
	}
	c.AutoMigrate, _ = strconv.ParseBool(getenv("AUTO_MIGRATE"))

	c.Scheduling.PunchInLookAhead = durationOr(getenv("AUTO_PUNCH_IN_LOOKAHEAD"), c.Scheduling.PunchInLookAhead)
	c.Scheduling.DuplicateWindow = durationOr(getenv("AUTO_PUNCH_IN_DUPLICATE_WINDOW"), c.Scheduling.DuplicateWindow)
	c.Scheduling.PunchOutGraceWindow = durationOr(getenv("AUTO_PUNCH_OUT_GRACE"), c.Scheduling.PunchOutGraceWindow)
	c.Scheduling.PunchOutLateThreshold = durationOr(getenv("AUTO_PUNCH_OUT_LATE_AFTER"), c.Scheduling.PunchOutLateThreshold)
	return c
}

func (c *Config) Validate() error {
	if c.DBHost == "" || c.DBUser == "" || c.DBName == "" {
		return fmt.Errorf("DB_HOST, DB_USER and DB_NAME are required")
	}
	if c.Scheduling.PunchOutLateThreshold <= c.Scheduling.PunchOutGraceWindow {
		return fmt.Errorf("AUTO_PUNCH_OUT_LATE_AFTER (%s) must exceed AUTO_PUNCH_OUT_GRACE (%s)",
			c.Scheduling.PunchOutLateThreshold, c.Scheduling.PunchOutGraceWindow)
	}
	// Past the hold a wrapped window's boundary is gone before escalation runs.
	if c.Scheduling.PunchOutLateThreshold >= businesshours.WraparoundHold {
		return fmt.Errorf("AUTO_PUNCH_OUT_LATE_AFTER (%s) must be below %s",
			c.Scheduling.PunchOutLateThreshold, businesshours.WraparoundHold)
	}
	return nil
}

func withDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// durationOr accepts Go durations ("90s") or bare minutes ("5").
func durationOr(v string, def time.Duration) time.Duration {
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil && d > 0 {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil && n > 0 {
		return time.Duration(n) * time.Minute
	}
	zap.L().Warn("invalid duration in environment, using default",
		zap.String("value", v),
		zap.Duration("default", def),
	)
	return def
}
