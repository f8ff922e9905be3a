package attendance_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/AIforimpact22/HR-amas/internal/attendance"
	attendanceerrors "github.com/AIforimpact22/HR-amas/internal/attendance/errors"
	"github.com/AIforimpact22/HR-amas/internal/schedule"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

type fakeRepository struct {
	withTxFn                func(tx *sql.Tx) attendance.Repository
	createFn                func(ctx context.Context, p *attendance.AttendancePunch) error
	closePunchFn            func(ctx context.Context, id uuid.UUID, out time.Time) error
	findByEmployeeAndDateFn func(ctx context.Context, employeeID string, day time.Time) (*attendance.AttendancePunch, error)
	findOpenByEmployeeFn    func(ctx context.Context, employeeID string) (*attendance.AttendancePunch, error)
	findAllForDateFn        func(ctx context.Context, day time.Time) ([]attendance.AttendancePunch, error)
	findRangeFn             func(ctx context.Context, employeeID string, start, end time.Time) ([]attendance.AttendancePunch, error)
	findAllInRangeFn        func(ctx context.Context, start, end time.Time) ([]attendance.AttendancePunch, error)
	employeeExistsFn        func(ctx context.Context, employeeID string) (bool, error)
}

func (f *fakeRepository) WithTx(tx *sql.Tx) attendance.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeRepository) Create(ctx context.Context, p *attendance.AttendancePunch) error {
	if f.createFn != nil {
		return f.createFn(ctx, p)
	}
	return nil
}

func (f *fakeRepository) ClosePunch(ctx context.Context, id uuid.UUID, out time.Time) error {
	if f.closePunchFn != nil {
		return f.closePunchFn(ctx, id, out)
	}
	return nil
}

func (f *fakeRepository) FindByEmployeeAndDate(ctx context.Context, employeeID string, day time.Time) (*attendance.AttendancePunch, error) {
	if f.findByEmployeeAndDateFn != nil {
		return f.findByEmployeeAndDateFn(ctx, employeeID, day)
	}
	return nil, nil
}

func (f *fakeRepository) FindOpenByEmployee(ctx context.Context, employeeID string) (*attendance.AttendancePunch, error) {
	if f.findOpenByEmployeeFn != nil {
		return f.findOpenByEmployeeFn(ctx, employeeID)
	}
	return nil, nil
}

func (f *fakeRepository) FindAllForDate(ctx context.Context, day time.Time) ([]attendance.AttendancePunch, error) {
	if f.findAllForDateFn != nil {
		return f.findAllForDateFn(ctx, day)
	}
	return nil, nil
}

func (f *fakeRepository) FindRange(ctx context.Context, employeeID string, start, end time.Time) ([]attendance.AttendancePunch, error) {
	if f.findRangeFn != nil {
		return f.findRangeFn(ctx, employeeID, start, end)
	}
	return nil, nil
}

func (f *fakeRepository) FindAllInRange(ctx context.Context, start, end time.Time) ([]attendance.AttendancePunch, error) {
	if f.findAllInRangeFn != nil {
		return f.findAllInRangeFn(ctx, start, end)
	}
	return nil, nil
}

func (f *fakeRepository) EmployeeExists(ctx context.Context, employeeID string) (bool, error) {
	if f.employeeExistsFn != nil {
		return f.employeeExistsFn(ctx, employeeID)
	}
	return true, nil
}

type fakeScheduleService struct {
	resolveShiftsForDateFn  func(ctx context.Context, day time.Time) (map[uuid.UUID]schedule.ResolvedShift, error)
	resolveShiftsForRangeFn func(ctx context.Context, employeeID string, start, end time.Time) (map[string]schedule.ResolvedShift, error)
}

func (f *fakeScheduleService) Assign(ctx context.Context, req schedule.AssignScheduleRequest) (schedule.ScheduleResponse, error) {
	return schedule.ScheduleResponse{}, nil
}

func (f *fakeScheduleService) Update(ctx context.Context, id string, req schedule.UpdateScheduleRequest) (schedule.ScheduleResponse, error) {
	return schedule.ScheduleResponse{}, nil
}

func (f *fakeScheduleService) GetByEmployee(ctx context.Context, employeeID string) ([]schedule.ScheduleResponse, error) {
	return nil, nil
}

func (f *fakeScheduleService) ResolveForDate(ctx context.Context, employeeID string, date string) (schedule.ResolvedShiftResponse, error) {
	return schedule.ResolvedShiftResponse{}, nil
}

func (f *fakeScheduleService) ResolveShift(ctx context.Context, employeeID string, day time.Time) (schedule.ResolvedShift, error) {
	return schedule.ResolvedShift{}, nil
}

func (f *fakeScheduleService) ResolveShiftsForDate(ctx context.Context, day time.Time) (map[uuid.UUID]schedule.ResolvedShift, error) {
	if f.resolveShiftsForDateFn != nil {
		return f.resolveShiftsForDateFn(ctx, day)
	}
	return map[uuid.UUID]schedule.ResolvedShift{}, nil
}

func (f *fakeScheduleService) ResolveShiftsForRange(ctx context.Context, employeeID string, start, end time.Time) (map[string]schedule.ResolvedShift, error) {
	if f.resolveShiftsForRangeFn != nil {
		return f.resolveShiftsForRangeFn(ctx, employeeID, start, end)
	}
	return map[string]schedule.ResolvedShift{}, nil
}

func (f *fakeScheduleService) SeedDefault(ctx context.Context, employeeID string, from time.Time) error {
	return nil
}

type serviceDeps struct {
	db        *sql.DB
	sqlMock   sqlmock.Sqlmock
	service   attendance.Service
	repo      *fakeRepository
	schedules *fakeScheduleService
}

func setupServiceTest(t *testing.T, now time.Time) *serviceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeRepository{}
	schedules := &fakeScheduleService{}
	svc := attendance.NewServiceWithClock(db, repo, schedules, func() time.Time { return now })

	return &serviceDeps{db: db, sqlMock: sqlMock, service: svc, repo: repo, schedules: schedules}
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

// dayShift is the default 08:00-16:30 expectation with Friday off.
func dayShift() schedule.ResolvedShift {
	return schedule.ResolvedShift{
		InMinutes:       480,
		OutMinutes:      990,
		LengthMinutes:   510,
		WorkDaysPerWeek: 6,
		OffDay:          5,
		Found:           true,
	}
}

func TestAttendanceService_ClockInAndOut(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New()

	deps := setupServiceTest(t, time.Date(2026, 3, 2, 8, 3, 0, 0, time.UTC))
	defer deps.db.Close()

	var saved attendance.AttendancePunch
	deps.repo.createFn = func(ctx context.Context, p *attendance.AttendancePunch) error {
		saved = *p
		return nil
	}

	expectTx(t, deps.sqlMock, true)
	inResp, err := deps.service.ClockIn(ctx, attendance.ClockInRequest{EmployeeID: employeeID.String()})

	assert.NoError(t, err)
	assert.Equal(t, "2026-03-02", inResp.PunchDate)
	assert.Equal(t, "2026-03-02T08:03:00Z", inResp.ClockIn)
	assert.Nil(t, inResp.ClockOut)
	assert.Equal(t, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), saved.PunchDate)

	deps.repo.findOpenByEmployeeFn = func(ctx context.Context, id string) (*attendance.AttendancePunch, error) {
		assert.Equal(t, employeeID.String(), id)
		return &saved, nil
	}
	var closedAt time.Time
	deps.repo.closePunchFn = func(ctx context.Context, id uuid.UUID, out time.Time) error {
		assert.Equal(t, saved.ID, id)
		closedAt = out
		return nil
	}

	expectTx(t, deps.sqlMock, true)
	outResp, err := deps.service.ClockOut(ctx, attendance.ClockOutRequest{
		EmployeeID: employeeID.String(),
		At:         "2026-03-02T16:35:00Z",
	})

	assert.NoError(t, err)
	assert.NotNil(t, outResp.ClockOut)
	assert.Equal(t, "2026-03-02T16:35:00Z", *outResp.ClockOut)
	assert.Equal(t, time.Date(2026, 3, 2, 16, 35, 0, 0, time.UTC), closedAt)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestAttendanceService_ClockIn_SecondPunchSameDay(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New().String()

	deps := setupServiceTest(t, time.Date(2026, 3, 2, 13, 0, 0, 0, time.UTC))
	defer deps.db.Close()

	deps.repo.findByEmployeeAndDateFn = func(ctx context.Context, id string, day time.Time) (*attendance.AttendancePunch, error) {
		return &attendance.AttendancePunch{ID: uuid.New()}, nil
	}

	expectTx(t, deps.sqlMock, false)
	_, err := deps.service.ClockIn(ctx, attendance.ClockInRequest{EmployeeID: employeeID})

	assert.ErrorIs(t, err, attendanceerrors.ErrAlreadyClockedIn)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestAttendanceService_ClockIn_UniqueViolationMapped(t *testing.T) {
	ctx := context.Background()

	deps := setupServiceTest(t, time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC))
	defer deps.db.Close()

	deps.repo.createFn = func(ctx context.Context, p *attendance.AttendancePunch) error {
		return &pgconn.PgError{Code: "23505", ConstraintName: "uq_attendance_employee_day"}
	}

	expectTx(t, deps.sqlMock, false)
	_, err := deps.service.ClockIn(ctx, attendance.ClockInRequest{EmployeeID: uuid.New().String()})

	assert.ErrorIs(t, err, attendanceerrors.ErrAlreadyClockedIn)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestAttendanceService_ClockOut_NoOpenPunch(t *testing.T) {
	ctx := context.Background()

	deps := setupServiceTest(t, time.Date(2026, 3, 2, 17, 0, 0, 0, time.UTC))
	defer deps.db.Close()

	expectTx(t, deps.sqlMock, false)
	_, err := deps.service.ClockOut(ctx, attendance.ClockOutRequest{EmployeeID: uuid.New().String()})

	assert.ErrorIs(t, err, attendanceerrors.ErrNotClockedIn)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestAttendanceService_ReconcileDay(t *testing.T) {
	ctx := context.Background()
	first := uuid.New()
	second := uuid.New()
	out := time.Date(2026, 3, 2, 16, 32, 0, 0, time.UTC)

	deps := setupServiceTest(t, time.Date(2026, 3, 2, 12, 5, 1, 0, time.UTC))
	defer deps.db.Close()

	deps.repo.findAllForDateFn = func(ctx context.Context, day time.Time) ([]attendance.AttendancePunch, error) {
		return []attendance.AttendancePunch{
			{
				EmployeeID: first,
				PunchDate:  time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
				ClockIn:    time.Date(2026, 3, 2, 7, 58, 0, 0, time.UTC),
				ClockOut:   &out,
				Employee:   &attendance.EmployeeRef{ID: first, FullName: "Alia Hassan"},
			},
			{
				EmployeeID: second,
				PunchDate:  time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
				ClockIn:    time.Date(2026, 3, 2, 8, 5, 1, 0, time.UTC),
				Employee:   &attendance.EmployeeRef{ID: second, FullName: "Omar Siddiq"},
			},
		}, nil
	}
	deps.schedules.resolveShiftsForDateFn = func(ctx context.Context, day time.Time) (map[uuid.UUID]schedule.ResolvedShift, error) {
		return map[uuid.UUID]schedule.ResolvedShift{first: dayShift(), second: dayShift()}, nil
	}

	rows, err := deps.service.ReconcileDay(ctx, "2026-03-02")

	assert.NoError(t, err)
	assert.Len(t, rows, 2)

	assert.Equal(t, "Alia Hassan", rows[0].EmployeeName)
	assert.Equal(t, "07:58", rows[0].ClockIn)
	assert.Equal(t, "08 h 34 m", rows[0].Worked)
	assert.Equal(t, 8.57, rows[0].WorkedHours)
	assert.Equal(t, "08:00", rows[0].ExpectedIn)
	assert.Equal(t, "16:30", rows[0].RequiredOut)
	assert.Equal(t, 8.5, rows[0].ShiftHours)
	assert.False(t, rows[0].Late)
	assert.Equal(t, "present", rows[0].Status)

	// One second past the five-minute grace is late; the punch is still
	// open so worked runs up to now.
	assert.Equal(t, "Omar Siddiq", rows[1].EmployeeName)
	assert.Nil(t, rows[1].ClockOut)
	assert.Equal(t, "04 h 00 m", rows[1].Worked)
	assert.Equal(t, 4.0, rows[1].WorkedHours)
	assert.True(t, rows[1].Late)
	assert.Equal(t, "on shift", rows[1].Status)
}

func TestAttendanceService_ReconcileDay_MidnightWrap(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New()
	out := time.Date(2026, 3, 2, 6, 0, 0, 0, time.UTC)

	deps := setupServiceTest(t, time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC))
	defer deps.db.Close()

	deps.repo.findAllForDateFn = func(ctx context.Context, day time.Time) ([]attendance.AttendancePunch, error) {
		return []attendance.AttendancePunch{
			{
				EmployeeID: employeeID,
				PunchDate:  time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
				ClockIn:    time.Date(2026, 3, 2, 22, 0, 0, 0, time.UTC),
				ClockOut:   &out,
				Employee:   &attendance.EmployeeRef{ID: employeeID, FullName: "Night Guard"},
			},
		}, nil
	}
	deps.schedules.resolveShiftsForDateFn = func(ctx context.Context, day time.Time) (map[uuid.UUID]schedule.ResolvedShift, error) {
		return map[uuid.UUID]schedule.ResolvedShift{
			employeeID: {InMinutes: 1320, OutMinutes: 360, LengthMinutes: 480, WorkDaysPerWeek: 6, OffDay: 5, Found: true},
		}, nil
	}

	rows, err := deps.service.ReconcileDay(ctx, "2026-03-02")

	assert.NoError(t, err)
	assert.Len(t, rows, 1)
	// Clock-out before clock-in means the shift crossed midnight: still 8h.
	assert.Equal(t, "08 h 00 m", rows[0].Worked)
	assert.Equal(t, 8.0, rows[0].WorkedHours)
	assert.Equal(t, 8.0, rows[0].ShiftHours)
	assert.Equal(t, "06:00", rows[0].RequiredOut)
	assert.False(t, rows[0].Late)
}

func TestAttendanceService_ReconcileRange(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New()
	out := time.Date(2026, 3, 5, 16, 30, 0, 0, time.UTC)

	assert.Equal(t, time.Friday, time.Date(2026, 3, 6, 0, 0, 0, 0, time.UTC).Weekday())

	deps := setupServiceTest(t, time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC))
	defer deps.db.Close()

	deps.repo.findRangeFn = func(ctx context.Context, id string, start, end time.Time) ([]attendance.AttendancePunch, error) {
		return []attendance.AttendancePunch{
			{
				EmployeeID: employeeID,
				PunchDate:  time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC),
				ClockIn:    time.Date(2026, 3, 5, 8, 0, 0, 0, time.UTC),
				ClockOut:   &out,
			},
		}, nil
	}
	deps.schedules.resolveShiftsForRangeFn = func(ctx context.Context, id string, start, end time.Time) (map[string]schedule.ResolvedShift, error) {
		return map[string]schedule.ResolvedShift{
			"2026-03-05": dayShift(),
			"2026-03-06": dayShift(),
			"2026-03-07": dayShift(),
		}, nil
	}

	resp, err := deps.service.ReconcileRange(ctx, employeeID.String(), "2026-03-05", "2026-03-07")

	assert.NoError(t, err)
	assert.Len(t, resp.Days, 3)

	assert.Equal(t, "2026-03-05", resp.Days[0].Date)
	assert.Equal(t, "Thu", resp.Days[0].Weekday)
	assert.Equal(t, "present", resp.Days[0].Status)
	assert.Equal(t, 8.5, resp.Days[0].WorkedHours)
	assert.Equal(t, 8.5, resp.Days[0].ShiftHours)
	assert.Equal(t, "+00:00", resp.Days[0].Diff)

	// The weekly off day carries no expectation even though a schedule
	// covers it.
	assert.Equal(t, "off day", resp.Days[1].Status)
	assert.Equal(t, 0.0, resp.Days[1].ShiftHours)
	assert.Equal(t, "+00:00", resp.Days[1].Diff)

	assert.Equal(t, "absent", resp.Days[2].Status)
	assert.Equal(t, 8.5, resp.Days[2].ShiftHours)
	assert.Equal(t, "-08:30", resp.Days[2].Diff)

	assert.Equal(t, 8.5, resp.Totals.WorkedHours)
	assert.Equal(t, 17.0, resp.Totals.ExpectedHours)
	assert.Equal(t, "-08:30", resp.Totals.Diff)
}

func TestAttendanceService_ReconcileRange_UnscheduledDays(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New()
	out := time.Date(2026, 3, 2, 14, 0, 0, 0, time.UTC)

	deps := setupServiceTest(t, time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC))
	defer deps.db.Close()

	deps.repo.findRangeFn = func(ctx context.Context, id string, start, end time.Time) ([]attendance.AttendancePunch, error) {
		return []attendance.AttendancePunch{
			{
				EmployeeID: employeeID,
				PunchDate:  time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
				ClockIn:    time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
				ClockOut:   &out,
			},
		}, nil
	}

	resp, err := deps.service.ReconcileRange(ctx, employeeID.String(), "2026-03-02", "2026-03-03")

	assert.NoError(t, err)
	assert.Len(t, resp.Days, 2)

	// A punch with no schedule still counts worked hours but is never late
	// and owes nothing.
	assert.Equal(t, "present", resp.Days[0].Status)
	assert.Equal(t, 5.0, resp.Days[0].WorkedHours)
	assert.Equal(t, 0.0, resp.Days[0].ShiftHours)
	assert.False(t, resp.Days[0].Late)
	assert.Equal(t, "+05:00", resp.Days[0].Diff)

	assert.Equal(t, "unscheduled", resp.Days[1].Status)
	assert.Equal(t, "+00:00", resp.Days[1].Diff)

	assert.Equal(t, 5.0, resp.Totals.WorkedHours)
	assert.Equal(t, 0.0, resp.Totals.ExpectedHours)
	assert.Equal(t, "+05:00", resp.Totals.Diff)
}

func TestAttendanceService_ReconcileRange_StartAfterEnd(t *testing.T) {
	ctx := context.Background()

	deps := setupServiceTest(t, time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC))
	defer deps.db.Close()

	deps.repo.findRangeFn = func(ctx context.Context, id string, start, end time.Time) ([]attendance.AttendancePunch, error) {
		t.Fatal("range query should not run for an inverted range")
		return nil, nil
	}

	_, err := deps.service.ReconcileRange(ctx, uuid.New().String(), "2026-03-07", "2026-03-05")

	assert.ErrorIs(t, err, attendanceerrors.ErrInvalidDateRange)
}

func TestAttendanceService_WorkedHoursForRange(t *testing.T) {
	ctx := context.Background()
	first := uuid.New()
	second := uuid.New()
	day1Out := time.Date(2026, 3, 2, 16, 0, 0, 0, time.UTC)
	day2Out := time.Date(2026, 3, 3, 16, 30, 0, 0, time.UTC)

	deps := setupServiceTest(t, time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC))
	defer deps.db.Close()

	deps.repo.findAllInRangeFn = func(ctx context.Context, start, end time.Time) ([]attendance.AttendancePunch, error) {
		return []attendance.AttendancePunch{
			{EmployeeID: first, ClockIn: time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC), ClockOut: &day1Out},
			{EmployeeID: first, ClockIn: time.Date(2026, 3, 3, 8, 0, 0, 0, time.UTC), ClockOut: &day2Out},
			{EmployeeID: second, ClockIn: time.Date(2026, 3, 4, 8, 0, 0, 0, time.UTC)},
		}, nil
	}

	hours, err := deps.service.WorkedHoursForRange(ctx,
		time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
	)

	assert.NoError(t, err)
	assert.Equal(t, 16.5, hours[first])
	assert.Equal(t, 4.0, hours[second])
}
