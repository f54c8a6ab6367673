// Command cron runs one scheduler job and prints its summary as JSON.
//
//	cron auto-punch-in
//	cron auto-punch-out [-date YYYY-MM-DD] [-force]
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go-timeclock/internal/app"
	"go-timeclock/internal/autopunch"
	"go-timeclock/internal/bootstrap"
	"go-timeclock/internal/config"
	"go-timeclock/internal/shared/apperror"

	"go.uber.org/zap"
)

func usage() {
	fmt.Fprintln(os.Stderr, "usage: cron auto-punch-in | cron auto-punch-out [-date YYYY-MM-DD] [-force]")
	os.Exit(2)
}

func main() {
	if len(os.Args) < 2 {
		usage()
	}
	job := os.Args[1]

	var req autopunch.PunchOutRequest
	switch job {
	case app.JobAutoPunchIn:
	case app.JobAutoPunchOut:
		fs := flag.NewFlagSet(job, flag.ExitOnError)
		date := fs.String("date", "", "business date to normalize (YYYY-MM-DD)")
		force := fs.Bool("force", false, "with -date, only re-run normalization")
		_ = fs.Parse(os.Args[2:])

		parsed, err := autopunch.AutoPunchOutRequest{Date: *date, Force: *force}.ToPunchOutRequest()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		req = parsed
	default:
		usage()
	}

	cfg := config.Load()
	logger, err := bootstrap.NewLogger(cfg.AppEnv)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	apperror.Init()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	summary, err := app.RunCron(ctx, cfg, job, req)
	if err != nil {
		logger.Fatal("cron job failed", zap.String("job", job), zap.Error(err))
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(summary); err != nil {
		logger.Error("encode summary failed", zap.Error(err))
	}
}
