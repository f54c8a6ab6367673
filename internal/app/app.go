package app

import (
	"context"

	"go-timeclock/internal/config"
	"go-timeclock/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BuildApp connects infrastructure and mounts every module on router. The
// caller closes the returned Infra on shutdown.
func BuildApp(ctx context.Context, router *gin.Engine, cfg *config.Config) (*Infra, error) {
	logger := zap.L()

	in, err := connectInfra(ctx, cfg, true)
	if err != nil {
		return nil, err
	}

	m, err := buildModules(in, logger)
	if err != nil {
		in.Close()
		return nil, err
	}

	router.Use(middleware.ContextLogger(logger))
	m.registerRoutes(router, in)
	return in, nil
}
