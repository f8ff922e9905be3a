package attendance_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/AIforimpact22/HR-amas/internal/attendance"
	attendanceerrors "github.com/AIforimpact22/HR-amas/internal/attendance/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeAttendanceService struct {
	clockInFn        func(ctx context.Context, req attendance.ClockInRequest) (attendance.PunchResponse, error)
	clockOutFn       func(ctx context.Context, req attendance.ClockOutRequest) (attendance.PunchResponse, error)
	reconcileDayFn   func(ctx context.Context, date string) ([]attendance.DayRecordResponse, error)
	reconcileRangeFn func(ctx context.Context, employeeID, startDate, endDate string) (attendance.RangeResponse, error)
}

func (f *fakeAttendanceService) ClockIn(ctx context.Context, req attendance.ClockInRequest) (attendance.PunchResponse, error) {
	return f.clockInFn(ctx, req)
}

func (f *fakeAttendanceService) ClockOut(ctx context.Context, req attendance.ClockOutRequest) (attendance.PunchResponse, error) {
	return f.clockOutFn(ctx, req)
}

func (f *fakeAttendanceService) ReconcileDay(ctx context.Context, date string) ([]attendance.DayRecordResponse, error) {
	return f.reconcileDayFn(ctx, date)
}

func (f *fakeAttendanceService) ReconcileRange(ctx context.Context, employeeID, startDate, endDate string) (attendance.RangeResponse, error) {
	return f.reconcileRangeFn(ctx, employeeID, startDate, endDate)
}

func (f *fakeAttendanceService) WorkedHoursForRange(ctx context.Context, start, end time.Time) (map[uuid.UUID]float64, error) {
	return nil, nil
}

func TestAttendanceHandler_ClockIn(t *testing.T) {
	gin.SetMode(gin.TestMode)
	employeeID := uuid.New().String()

	svc := &fakeAttendanceService{
		clockInFn: func(ctx context.Context, req attendance.ClockInRequest) (attendance.PunchResponse, error) {
			assert.Equal(t, employeeID, req.EmployeeID)
			return attendance.PunchResponse{ID: uuid.New().String(), EmployeeID: req.EmployeeID, PunchDate: "2026-03-02"}, nil
		},
	}
	h := attendance.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/attendance/clock-in",
		strings.NewReader(`{"employee_id":"`+employeeID+`"}`))
	c.Request.Header.Set("Content-Type", "application/json")
	h.ClockIn(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "2026-03-02")
}

func TestAttendanceHandler_ClockIn_MissingEmployee(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := attendance.NewHandler(&fakeAttendanceService{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/attendance/clock-in", strings.NewReader(`{}`))
	c.Request.Header.Set("Content-Type", "application/json")
	h.ClockIn(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAttendanceHandler_ClockOut_Conflict(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeAttendanceService{
		clockOutFn: func(ctx context.Context, req attendance.ClockOutRequest) (attendance.PunchResponse, error) {
			return attendance.PunchResponse{}, attendanceerrors.ErrNotClockedIn
		},
	}
	h := attendance.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/attendance/clock-out",
		strings.NewReader(`{"employee_id":"`+uuid.New().String()+`"}`))
	c.Request.Header.Set("Content-Type", "application/json")
	h.ClockOut(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "CONFLICT")
}

func TestAttendanceHandler_ReconcileDayAndRange(t *testing.T) {
	gin.SetMode(gin.TestMode)
	employeeID := uuid.New().String()

	svc := &fakeAttendanceService{
		reconcileDayFn: func(ctx context.Context, date string) ([]attendance.DayRecordResponse, error) {
			assert.Equal(t, "2026-03-02", date)
			return []attendance.DayRecordResponse{{EmployeeName: "Alia Hassan", Status: "present"}}, nil
		},
		reconcileRangeFn: func(ctx context.Context, gotID, start, end string) (attendance.RangeResponse, error) {
			assert.Equal(t, employeeID, gotID)
			assert.Equal(t, "2026-03-01", start)
			assert.Equal(t, "2026-03-07", end)
			return attendance.RangeResponse{
				EmployeeID: gotID,
				Totals:     attendance.RangeTotalsResponse{Diff: "-08:30"},
			}, nil
		},
	}
	h := attendance.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/attendance/day?date=2026-03-02", nil)
	h.ReconcileDay(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Alia Hassan")

	w2 := httptest.NewRecorder()
	c2, _ := gin.CreateTestContext(w2)
	c2.Request = httptest.NewRequest(http.MethodGet,
		"/attendance/range?employee_id="+employeeID+"&start=2026-03-01&end=2026-03-07", nil)
	h.ReconcileRange(c2)
	assert.Equal(t, http.StatusOK, w2.Code)
	assert.Contains(t, w2.Body.String(), "-08:30")
}
