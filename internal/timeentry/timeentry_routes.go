package timeentry

import (
	"go-timeclock/internal/middleware"
	"go-timeclock/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service, rdb *redis.Client, jwtSecret string) {
	entries := r.Group("/time-entries")
	entries.Use(middleware.AuthMiddleware(jwtSecret), middleware.RateLimitByUser(1, 5))
	{
		entries.GET("", h.List)
		entries.POST("/clock-in",
			rbac.Authorize(rbacService, rbac.ResourceTimeEntry, rbac.ActionCreate),
			middleware.Idempotency(rdb),
			h.ClockIn,
		)
		entries.POST("/clock-out",
			rbac.Authorize(rbacService, rbac.ResourceTimeEntry, rbac.ActionCreate),
			middleware.Idempotency(rdb),
			h.ClockOut,
		)
	}
}
