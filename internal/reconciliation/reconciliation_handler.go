package reconciliation

import (
	"bytes"
	"fmt"
	"net/http"

	"go-timeclock/internal/rbac"
	"go-timeclock/internal/shared/apperror"
	"go-timeclock/internal/shared/response"
	"go-timeclock/internal/timezone"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type Handler struct {
	service Service
	rbac    rbac.Service
	conv    *timezone.Converter
}

func NewHandler(service Service, rbacService rbac.Service, conv *timezone.Converter) *Handler {
	return &Handler{service: service, rbac: rbacService, conv: conv}
}

func writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// load binds the range and checks that callers reading someone else's
// timesheet hold timesheet:read_all.
func (h *Handler) load(c *gin.Context) (TimesheetResponse, bool) {
	var req TimesheetRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		writeServiceError(c, apperror.MapValidationError(err))
		return TimesheetResponse{}, false
	}
	from, _ := timezone.ParseDate(req.From)
	to, _ := timezone.ParseDate(req.To)

	companyID := c.GetString("company_id")
	callerID := c.GetString("employee_id")
	employeeID := c.Param("employee_id")

	if employeeID != callerID {
		allowed, err := h.rbac.Enforce(c.Request.Context(), rbac.EnforceRequest{
			EmployeeID: callerID,
			CompanyID:  companyID,
			Resource:   rbac.ResourceTimesheet,
			Action:     rbac.ActionReadAll,
		})
		if err != nil {
			writeServiceError(c, err)
			return TimesheetResponse{}, false
		}
		if !allowed {
			writeServiceError(c, apperror.ErrForbidden)
			return TimesheetResponse{}, false
		}
	}

	ts, err := h.service.ReconcileRange(c.Request.Context(), companyID, employeeID, from, to)
	if err != nil {
		writeServiceError(c, err)
		return TimesheetResponse{}, false
	}
	return ts, true
}

func (h *Handler) Get(c *gin.Context) {
	ts, ok := h.load(c)
	if !ok {
		return
	}
	response.Success(c, http.StatusOK, ts, nil)
}

func (h *Handler) Export(c *gin.Context) {
	ts, ok := h.load(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := WriteXLSX(&buf, h.conv, ts); err != nil {
		writeServiceError(c, err)
		return
	}
	filename := fmt.Sprintf("timesheet_%s_%s_%s.xlsx", ts.EmployeeID, ts.From, ts.To)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
