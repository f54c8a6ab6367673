package businesshours

import (
	"go-timeclock/internal/middleware"
	"go-timeclock/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service, jwtSecret string) {
	hours := r.Group("/business-hours")
	hours.Use(middleware.AuthMiddleware(jwtSecret))
	{
		hours.GET("", h.Get)
		hours.PUT("", rbac.Authorize(rbacService, rbac.ResourceBusinessHours, rbac.ActionUpdate), h.Update)
	}
}
