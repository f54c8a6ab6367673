package reconciliation_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-timeclock/internal/rbac"
	"go-timeclock/internal/reconciliation"
	"go-timeclock/internal/timezone"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeService struct {
	reconcileRangeFn func(ctx context.Context, companyID, employeeID string, from, to timezone.Date) (reconciliation.TimesheetResponse, error)
}

func (f *fakeService) ReconcileRange(ctx context.Context, companyID, employeeID string, from, to timezone.Date) (reconciliation.TimesheetResponse, error) {
	return f.reconcileRangeFn(ctx, companyID, employeeID, from, to)
}

type fakeRBAC struct {
	allowed bool
	calls   int
}

func (f *fakeRBAC) LoadCompanyPolicy(ctx context.Context, companyID string) error { return nil }
func (f *fakeRBAC) Enforce(ctx context.Context, req rbac.EnforceRequest) (bool, error) {
	f.calls++
	return f.allowed && req.Action == rbac.ActionReadAll, nil
}

func newRouter(h *reconciliation.Handler, employeeID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("company_id", "c-1")
		c.Set("employee_id", employeeID)
	})
	r.GET("/timesheets/:employee_id", h.Get)
	r.GET("/timesheets/:employee_id/export", h.Export)
	return r
}

func okService(t *testing.T) *fakeService {
	return &fakeService{reconcileRangeFn: func(ctx context.Context, cid, eid string, from, to timezone.Date) (reconciliation.TimesheetResponse, error) {
		assert.Equal(t, "c-1", cid)
		days := []reconciliation.ReconciledDay{{Date: from, Source: reconciliation.SourceNone}}
		return reconciliation.TimesheetResponse{EmployeeID: eid, From: from.String(), To: to.String(), Days: days}, nil
	}}
}

func TestHandler_OwnTimesheet(t *testing.T) {
	authz := &fakeRBAC{}
	h := reconciliation.NewHandler(okService(t), authz, timezone.MustConverter("UTC"))
	r := newRouter(h, "e-1")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/timesheets/e-1?from=2024-05-06&to=2024-05-06", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"date":"2024-05-06"`)
	assert.Equal(t, 0, authz.calls)
}

func TestHandler_OtherEmployeeNeedsReadAll(t *testing.T) {
	denied := reconciliation.NewHandler(okService(t), &fakeRBAC{allowed: false}, timezone.MustConverter("UTC"))
	w := httptest.NewRecorder()
	newRouter(denied, "e-1").ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/timesheets/e-2?from=2024-05-06&to=2024-05-06", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)

	allowed := reconciliation.NewHandler(okService(t), &fakeRBAC{allowed: true}, timezone.MustConverter("UTC"))
	w = httptest.NewRecorder()
	newRouter(allowed, "e-1").ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/timesheets/e-2?from=2024-05-06&to=2024-05-06", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHandler_Export(t *testing.T) {
	h := reconciliation.NewHandler(okService(t), &fakeRBAC{}, timezone.MustConverter("UTC"))
	w := httptest.NewRecorder()
	newRouter(h, "e-1").ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/timesheets/e-1/export?from=2024-05-06&to=2024-05-07", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "timesheet_e-1_2024-05-06_2024-05-07.xlsx")
	assert.True(t, w.Body.Len() > 0)
}

func TestHandler_BadRange(t *testing.T) {
	h := reconciliation.NewHandler(okService(t), &fakeRBAC{}, timezone.MustConverter("UTC"))
	w := httptest.NewRecorder()
	newRouter(h, "e-1").ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/timesheets/e-1?from=yesterday", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
