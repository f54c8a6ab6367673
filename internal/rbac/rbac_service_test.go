package rbac

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-timeclock/internal/rbac/infra"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeRepo struct {
	rolesErr error
}

func (f *fakeRepo) GetEmployeeRoles(ctx context.Context, companyID string) ([]EmployeeRoleRow, error) {
	if f.rolesErr != nil {
		return nil, f.rolesErr
	}
	return []EmployeeRoleRow{
		{EmployeeID: "emp-manager", RoleID: "role-manager"},
		{EmployeeID: "emp-staff", RoleID: "role-staff"},
	}, nil
}

func (f *fakeRepo) GetRolePermissions(ctx context.Context, companyID string) ([]RolePermissionRow, error) {
	return []RolePermissionRow{
		{RoleID: "role-manager", Resource: ResourceTimesheet, Action: ActionReadAll},
		{RoleID: "role-manager", Resource: ResourceBusinessHours, Action: ActionUpdate},
		{RoleID: "role-staff", Resource: ResourceTimeEntry, Action: ActionCreate},
	}, nil
}

func newTestService(t *testing.T, repo Repository) Service {
	t.Helper()
	e, err := infra.NewEnforcer()
	assert.NoError(t, err)
	return NewService(repo, e)
}

func TestRBACService_Enforce(t *testing.T) {
	svc := newTestService(t, &fakeRepo{})
	ctx := context.Background()

	allowed, err := svc.Enforce(ctx, EnforceRequest{
		EmployeeID: "emp-manager",
		CompanyID:  "company-1",
		Resource:   ResourceTimesheet,
		Action:     ActionReadAll,
	})
	assert.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = svc.Enforce(ctx, EnforceRequest{
		EmployeeID: "emp-staff",
		CompanyID:  "company-1",
		Resource:   ResourceTimesheet,
		Action:     ActionReadAll,
	})
	assert.NoError(t, err)
	assert.False(t, allowed)

	allowed, err = svc.Enforce(ctx, EnforceRequest{
		EmployeeID: "emp-staff",
		CompanyID:  "company-1",
		Resource:   ResourceTimeEntry,
		Action:     ActionCreate,
	})
	assert.NoError(t, err)
	assert.True(t, allowed)
}

func TestRBACService_EnforceRepoError(t *testing.T) {
	svc := newTestService(t, &fakeRepo{rolesErr: errors.New("db down")})

	allowed, err := svc.Enforce(context.Background(), EnforceRequest{
		EmployeeID: "emp-manager",
		CompanyID:  "company-1",
		Resource:   ResourceTimesheet,
		Action:     ActionReadAll,
	})
	assert.Error(t, err)
	assert.False(t, allowed)
}

func TestAuthorize(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := newTestService(t, &fakeRepo{})

	run := func(employeeID string) int {
		w := httptest.NewRecorder()
		_, r := gin.CreateTestContext(w)
		r.Use(func(c *gin.Context) {
			if employeeID != "" {
				c.Set("employee_id", employeeID)
				c.Set("company_id", "company-1")
			}
		})
		r.PUT("/business-hours", Authorize(svc, ResourceBusinessHours, ActionUpdate), func(c *gin.Context) {
			c.Status(http.StatusNoContent)
		})
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/business-hours", nil))
		return w.Code
	}

	assert.Equal(t, http.StatusNoContent, run("emp-manager"))
	assert.Equal(t, http.StatusForbidden, run("emp-staff"))
	assert.Equal(t, http.StatusUnauthorized, run(""))
}
