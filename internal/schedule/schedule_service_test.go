package schedule_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/AIforimpact22/HR-amas/internal/schedule"
	scheduleerrors "github.com/AIforimpact22/HR-amas/internal/schedule/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeRepository struct {
	withTxFn              func(tx *sql.Tx) schedule.Repository
	createFn              func(ctx context.Context, ws *schedule.WorkSchedule) error
	closeCurrentFn        func(ctx context.Context, employeeID string, closeDate time.Time) error
	updateInPlaceFn       func(ctx context.Context, ws *schedule.WorkSchedule) error
	findByIDFn            func(ctx context.Context, id string) (*schedule.WorkSchedule, error)
	findByEmployeeFn      func(ctx context.Context, employeeID string) ([]schedule.WorkSchedule, error)
	findEffectiveFn       func(ctx context.Context, employeeID string, day time.Time) (*schedule.WorkSchedule, error)
	findEffectiveForAllFn func(ctx context.Context, day time.Time) ([]schedule.WorkSchedule, error)
	hasAnyFn              func(ctx context.Context, employeeID string) (bool, error)
	employeeExistsFn      func(ctx context.Context, employeeID string) (bool, error)
}

func (f *fakeRepository) WithTx(tx *sql.Tx) schedule.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeRepository) Create(ctx context.Context, ws *schedule.WorkSchedule) error {
	if f.createFn != nil {
		return f.createFn(ctx, ws)
	}
	return nil
}

func (f *fakeRepository) CloseCurrent(ctx context.Context, employeeID string, closeDate time.Time) error {
	if f.closeCurrentFn != nil {
		return f.closeCurrentFn(ctx, employeeID, closeDate)
	}
	return nil
}

func (f *fakeRepository) UpdateInPlace(ctx context.Context, ws *schedule.WorkSchedule) error {
	if f.updateInPlaceFn != nil {
		return f.updateInPlaceFn(ctx, ws)
	}
	return nil
}

func (f *fakeRepository) FindByID(ctx context.Context, id string) (*schedule.WorkSchedule, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return &schedule.WorkSchedule{ID: uuid.MustParse(id)}, nil
}

func (f *fakeRepository) FindByEmployee(ctx context.Context, employeeID string) ([]schedule.WorkSchedule, error) {
	if f.findByEmployeeFn != nil {
		return f.findByEmployeeFn(ctx, employeeID)
	}
	return nil, nil
}

func (f *fakeRepository) FindEffective(ctx context.Context, employeeID string, day time.Time) (*schedule.WorkSchedule, error) {
	if f.findEffectiveFn != nil {
		return f.findEffectiveFn(ctx, employeeID, day)
	}
	return nil, nil
}

func (f *fakeRepository) FindEffectiveForAll(ctx context.Context, day time.Time) ([]schedule.WorkSchedule, error) {
	if f.findEffectiveForAllFn != nil {
		return f.findEffectiveForAllFn(ctx, day)
	}
	return nil, nil
}

func (f *fakeRepository) HasAny(ctx context.Context, employeeID string) (bool, error) {
	if f.hasAnyFn != nil {
		return f.hasAnyFn(ctx, employeeID)
	}
	return false, nil
}

func (f *fakeRepository) EmployeeExists(ctx context.Context, employeeID string) (bool, error) {
	if f.employeeExistsFn != nil {
		return f.employeeExistsFn(ctx, employeeID)
	}
	return true, nil
}

type serviceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	service schedule.Service
	repo    *fakeRepository
}

func setupServiceTest(t *testing.T) *serviceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeRepository{}
	svc := schedule.NewService(db, repo)

	return &serviceDeps{db: db, sqlMock: sqlMock, service: svc, repo: repo}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func offDay(d int) *int {
	return &d
}

func TestScheduleService_Assign_Supersedes(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New().String()

	deps := setupServiceTest(t)
	defer deps.db.Close()

	expectTx(t, deps.sqlMock, true)

	var closedAt time.Time
	deps.repo.closeCurrentFn = func(ctx context.Context, gotID string, closeDate time.Time) error {
		assert.Equal(t, employeeID, gotID)
		closedAt = closeDate
		return nil
	}
	deps.repo.createFn = func(ctx context.Context, ws *schedule.WorkSchedule) error {
		assert.Equal(t, employeeID, ws.EmployeeID.String())
		assert.Equal(t, "22:00", ws.ClockIn)
		assert.Nil(t, ws.EffectiveTo)
		return nil
	}

	resp, err := deps.service.Assign(ctx, schedule.AssignScheduleRequest{
		EmployeeID:      employeeID,
		WorkDaysPerWeek: 6,
		OffDay:          offDay(5),
		ClockIn:         "22:00",
		ClockOut:        "06:00",
		EffectiveFrom:   "2026-04-01",
		Reason:          "Night rotation",
	})

	assert.NoError(t, err)
	// The open record closes the day before the new window starts.
	assert.Equal(t, time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC), closedAt)
	assert.Equal(t, "2026-04-01", resp.EffectiveFrom)
	assert.Nil(t, resp.EffectiveTo)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestScheduleService_Assign_Validation(t *testing.T) {
	ctx := context.Background()

	deps := setupServiceTest(t)
	defer deps.db.Close()

	base := schedule.AssignScheduleRequest{
		EmployeeID:      uuid.New().String(),
		WorkDaysPerWeek: 6,
		OffDay:          offDay(5),
		ClockIn:         "08:00",
		ClockOut:        "16:30",
		EffectiveFrom:   "2026-04-01",
	}

	t.Run("bad clock", func(t *testing.T) {
		req := base
		req.ClockIn = "8am"
		_, err := deps.service.Assign(ctx, req)
		assert.ErrorIs(t, err, scheduleerrors.ErrInvalidClockFormat)
	})

	t.Run("bad off day", func(t *testing.T) {
		req := base
		req.OffDay = offDay(7)
		_, err := deps.service.Assign(ctx, req)
		assert.ErrorIs(t, err, scheduleerrors.ErrInvalidOffDay)
	})

	t.Run("bad date", func(t *testing.T) {
		req := base
		req.EffectiveFrom = "01-04-2026"
		_, err := deps.service.Assign(ctx, req)
		assert.ErrorIs(t, err, scheduleerrors.ErrInvalidDateFormat)
	})

	t.Run("unknown employee", func(t *testing.T) {
		deps.repo.employeeExistsFn = func(ctx context.Context, employeeID string) (bool, error) {
			return false, nil
		}
		_, err := deps.service.Assign(ctx, base)
		assert.ErrorIs(t, err, scheduleerrors.ErrEmployeeNotFound)
	})
}

func TestScheduleService_ResolveShift_NoSchedule(t *testing.T) {
	ctx := context.Background()

	deps := setupServiceTest(t)
	defer deps.db.Close()

	rs, err := deps.service.ResolveShift(ctx, uuid.New().String(), time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC))

	assert.NoError(t, err)
	assert.False(t, rs.Found)
	assert.Equal(t, 0, rs.LengthMinutes)
}

func TestScheduleService_ResolveShiftsForDate(t *testing.T) {
	ctx := context.Background()
	first := uuid.New()
	second := uuid.New()

	deps := setupServiceTest(t)
	defer deps.db.Close()

	deps.repo.findEffectiveForAllFn = func(ctx context.Context, day time.Time) ([]schedule.WorkSchedule, error) {
		return []schedule.WorkSchedule{
			{EmployeeID: first, WorkDaysPerWeek: 6, OffDay: 5, ClockIn: "08:00", ClockOut: "16:30"},
			{EmployeeID: second, WorkDaysPerWeek: 5, OffDay: 0, ClockIn: "22:00", ClockOut: "06:00"},
		}, nil
	}

	resolved, err := deps.service.ResolveShiftsForDate(ctx, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC))

	assert.NoError(t, err)
	assert.Len(t, resolved, 2)
	assert.Equal(t, 510, resolved[first].LengthMinutes)
	assert.Equal(t, 480, resolved[second].LengthMinutes)
	assert.True(t, resolved[second].Found)
}

func TestScheduleService_ResolveShiftsForRange(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New()
	closedTo := time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)

	deps := setupServiceTest(t)
	defer deps.db.Close()

	// History newest first, the way the repository returns it: a night
	// schedule superseded the day one starting 2026-03-04.
	deps.repo.findByEmployeeFn = func(ctx context.Context, id string) ([]schedule.WorkSchedule, error) {
		assert.Equal(t, employeeID.String(), id)
		return []schedule.WorkSchedule{
			{
				EmployeeID:      employeeID,
				WorkDaysPerWeek: 6,
				OffDay:          5,
				ClockIn:         "22:00",
				ClockOut:        "06:00",
				EffectiveFrom:   time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC),
			},
			{
				EmployeeID:      employeeID,
				WorkDaysPerWeek: 6,
				OffDay:          5,
				ClockIn:         "08:00",
				ClockOut:        "16:30",
				EffectiveFrom:   time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC),
				EffectiveTo:     &closedTo,
			},
		}, nil
	}

	resolved, err := deps.service.ResolveShiftsForRange(ctx, employeeID.String(),
		time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC),
	)

	assert.NoError(t, err)
	assert.Len(t, resolved, 3)
	_, covered := resolved["2026-03-02"]
	assert.False(t, covered)
	assert.Equal(t, 510, resolved["2026-03-03"].LengthMinutes)
	assert.Equal(t, 480, resolved["2026-03-04"].LengthMinutes)
	assert.Equal(t, 480, resolved["2026-03-05"].LengthMinutes)
}

func TestScheduleService_SeedDefault_Idempotent(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New().String()
	from := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	t.Run("seeds when none", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		created := false
		deps.repo.createFn = func(ctx context.Context, ws *schedule.WorkSchedule) error {
			created = true
			assert.Equal(t, schedule.DefaultWorkDaysPerWeek, ws.WorkDaysPerWeek)
			assert.Equal(t, schedule.DefaultOffDay, ws.OffDay)
			assert.Equal(t, schedule.DefaultClockIn, ws.ClockIn)
			assert.Equal(t, schedule.DefaultClockOut, ws.ClockOut)
			assert.Equal(t, from, ws.EffectiveFrom)
			return nil
		}

		assert.NoError(t, deps.service.SeedDefault(ctx, employeeID, from))
		assert.True(t, created)
	})

	t.Run("skips when already scheduled", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		deps.repo.hasAnyFn = func(ctx context.Context, employeeID string) (bool, error) {
			return true, nil
		}
		deps.repo.createFn = func(ctx context.Context, ws *schedule.WorkSchedule) error {
			t.Fatal("create should not be called")
			return nil
		}

		assert.NoError(t, deps.service.SeedDefault(ctx, employeeID, from))
	})
}

func TestScheduleService_Update_NotFound(t *testing.T) {
	ctx := context.Background()

	deps := setupServiceTest(t)
	defer deps.db.Close()

	deps.repo.findByIDFn = func(ctx context.Context, id string) (*schedule.WorkSchedule, error) {
		return nil, scheduleerrors.ErrScheduleNotFound
	}

	_, err := deps.service.Update(ctx, uuid.New().String(), schedule.UpdateScheduleRequest{
		WorkDaysPerWeek: 6,
		OffDay:          offDay(5),
		ClockIn:         "08:00",
		ClockOut:        "16:30",
		EffectiveFrom:   "2026-04-01",
	})

	assert.ErrorIs(t, err, scheduleerrors.ErrScheduleNotFound)
}
