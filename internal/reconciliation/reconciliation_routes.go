package reconciliation

import (
	"go-timeclock/internal/middleware"
	"go-timeclock/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service, jwtSecret string) {
	timesheets := r.Group("/timesheets")
	timesheets.Use(
		middleware.AuthMiddleware(jwtSecret),
		rbac.Authorize(rbacService, rbac.ResourceTimesheet, rbac.ActionRead),
	)
	{
		timesheets.GET("/:employee_id", h.Get)
		timesheets.GET("/:employee_id/export", h.Export)
	}
}
