package rbac

import (
	"net/http"

	"go-timeclock/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// Authorize guards a route with a (resource, action) permission in the caller's company.
// It expects AuthMiddleware to have set employee_id and company_id.
func Authorize(service Service, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		employeeID := c.GetString("employee_id")
		companyID := c.GetString("company_id")
		if employeeID == "" || companyID == "" {
			response.AbortError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing auth context")
			return
		}

		allowed, err := service.Enforce(c.Request.Context(), EnforceRequest{
			EmployeeID: employeeID,
			CompanyID:  companyID,
			Resource:   resource,
			Action:     action,
		})
		if err != nil {
			response.AbortError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "authorization check failed")
			return
		}
		if !allowed {
			response.AbortError(c, http.StatusForbidden, "FORBIDDEN", "You do not have permission to access this resource")
			return
		}
		c.Next()
	}
}
