package salaryhistory_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/AIforimpact22/HR-amas/internal/salaryhistory"
	salaryerrors "github.com/AIforimpact22/HR-amas/internal/salaryhistory/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeSalaryHistoryService struct {
	getHistoryFn func(ctx context.Context, employeeID string) ([]salaryhistory.SalaryRecordResponse, error)
	resolveAtFn  func(ctx context.Context, employeeID, date string) (salaryhistory.ResolvedSalaryResponse, error)
}

func (f *fakeSalaryHistoryService) GetHistory(ctx context.Context, employeeID string) ([]salaryhistory.SalaryRecordResponse, error) {
	return f.getHistoryFn(ctx, employeeID)
}

func (f *fakeSalaryHistoryService) ResolveAt(ctx context.Context, employeeID, date string) (salaryhistory.ResolvedSalaryResponse, error) {
	return f.resolveAtFn(ctx, employeeID, date)
}

func TestSalaryHistoryHandler_GetHistory(t *testing.T) {
	gin.SetMode(gin.TestMode)
	employeeID := uuid.New().String()
	closedTo := "2026-03-31"

	svc := &fakeSalaryHistoryService{
		getHistoryFn: func(ctx context.Context, id string) ([]salaryhistory.SalaryRecordResponse, error) {
			assert.Equal(t, employeeID, id)
			return []salaryhistory.SalaryRecordResponse{
				{
					ID:            uuid.New().String(),
					EmployeeID:    id,
					Salary:        1200000,
					EffectiveFrom: "2026-04-01",
					Reason:        "Annual raise",
				},
				{
					ID:            uuid.New().String(),
					EmployeeID:    id,
					Salary:        1000000,
					EffectiveFrom: "2025-06-15",
					EffectiveTo:   &closedTo,
					Reason:        "Initial contract rate",
				},
			}, nil
		},
	}
	h := salaryhistory.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: employeeID}}
	c.Request = httptest.NewRequest(http.MethodGet, "/salaries/employee/"+employeeID, nil)
	h.GetHistory(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Initial contract rate")
	assert.Contains(t, w.Body.String(), "Annual raise")
}

func TestSalaryHistoryHandler_GetHistory_BadID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeSalaryHistoryService{
		getHistoryFn: func(ctx context.Context, id string) ([]salaryhistory.SalaryRecordResponse, error) {
			return nil, salaryerrors.ErrInvalidEmployeeID
		},
	}
	h := salaryhistory.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "not-a-uuid"}}
	c.Request = httptest.NewRequest(http.MethodGet, "/salaries/employee/not-a-uuid", nil)
	h.GetHistory(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_INPUT")
}

func TestSalaryHistoryHandler_Resolve(t *testing.T) {
	gin.SetMode(gin.TestMode)
	employeeID := uuid.New().String()

	svc := &fakeSalaryHistoryService{
		resolveAtFn: func(ctx context.Context, id, date string) (salaryhistory.ResolvedSalaryResponse, error) {
			assert.Equal(t, employeeID, id)
			assert.Equal(t, "2026-02-01", date)
			return salaryhistory.ResolvedSalaryResponse{
				EmployeeID:    id,
				Date:          date,
				Resolved:      true,
				Salary:        1000000,
				Reason:        "Initial contract rate",
				EffectiveFrom: "2025-06-15",
			}, nil
		},
	}
	h := salaryhistory.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: employeeID}}
	c.Request = httptest.NewRequest(http.MethodGet, "/salaries/employee/"+employeeID+"/resolve?date=2026-02-01", nil)
	h.Resolve(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"salary":1000000`)
}
