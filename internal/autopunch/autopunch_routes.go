package autopunch

import (
	"go-timeclock/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the scheduler triggers. They are called by an external
// cron and authenticated with a shared secret rather than a user token.
func RegisterRoutes(r *gin.Engine, h *Handler, cronSecret string) {
	cron := r.Group("/internal/cron")
	cron.Use(middleware.RateLimitByIP(1, 3), middleware.CronSecret(cronSecret))
	{
		cron.POST("/auto-punch-in", h.AutoPunchIn)
		cron.POST("/auto-punch-out", h.AutoPunchOut)
	}
}
