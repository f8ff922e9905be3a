package attendance

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"time"

	attendanceerrors "github.com/AIforimpact22/HR-amas/internal/attendance/errors"
	"github.com/AIforimpact22/HR-amas/internal/schedule"
	"github.com/AIforimpact22/HR-amas/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	statusPresent     = "present"
	statusOnShift     = "on shift"
	statusAbsent      = "absent"
	statusOffDay      = "off day"
	statusUnscheduled = "unscheduled"
)

type Service interface {
	ClockIn(ctx context.Context, req ClockInRequest) (PunchResponse, error)
	ClockOut(ctx context.Context, req ClockOutRequest) (PunchResponse, error)
	ReconcileDay(ctx context.Context, date string) ([]DayRecordResponse, error)
	ReconcileRange(ctx context.Context, employeeID, startDate, endDate string) (RangeResponse, error)
	WorkedHoursForRange(ctx context.Context, start, end time.Time) (map[uuid.UUID]float64, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	schedules schedule.Service
	now       func() time.Time
	logger    *zap.Logger
}

func NewService(db *sql.DB, repo Repository, schedules schedule.Service, logger ...*zap.Logger) Service {
	return NewServiceWithClock(db, repo, schedules, time.Now, logger...)
}

// NewServiceWithClock pins "now", which open punches are measured against.
func NewServiceWithClock(db *sql.DB, repo Repository, schedules schedule.Service, now func() time.Time, logger ...*zap.Logger) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	return &service{db: db, repo: repo, schedules: schedules, now: now, logger: l}
}

func (s *service) ClockIn(ctx context.Context, req ClockInRequest) (PunchResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return PunchResponse{}, attendanceerrors.ErrInvalidEmployeeID
	}
	at, err := s.punchTime(req.At)
	if err != nil {
		return PunchResponse{}, err
	}
	day := at.Truncate(24 * time.Hour)

	exists, err := s.repo.EmployeeExists(ctx, req.EmployeeID)
	if err != nil {
		return PunchResponse{}, mapRepositoryError(err)
	}
	if !exists {
		return PunchResponse{}, attendanceerrors.ErrEmployeeNotFound
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("clock in begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return PunchResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	existing, err := qtx.FindByEmployeeAndDate(ctx, req.EmployeeID, day)
	if err != nil {
		return PunchResponse{}, mapRepositoryError(err)
	}
	if existing != nil {
		return PunchResponse{}, attendanceerrors.ErrAlreadyClockedIn
	}

	punch := &AttendancePunch{
		ID:         uuid.New(),
		EmployeeID: employeeID,
		PunchDate:  day,
		ClockIn:    at,
	}
	if err := qtx.Create(ctx, punch); err != nil {
		s.logger.Error("clock in persist failed", zap.Error(err))
		return PunchResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("clock in commit failed", zap.String("request_id", rid), zap.Error(err))
		return PunchResponse{}, err
	}

	s.logger.Info("clock in success",
		zap.String("request_id", rid),
		zap.String("employee_id", req.EmployeeID),
		zap.String("punch_date", day.Format("2006-01-02")),
	)

	return mapToPunchResponse(*punch), nil
}

// ClockOut closes the employee's latest open punch, which may carry
// yesterday's punch date when the shift ran past midnight.
func (s *service) ClockOut(ctx context.Context, req ClockOutRequest) (PunchResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	if _, err := uuid.Parse(req.EmployeeID); err != nil {
		return PunchResponse{}, attendanceerrors.ErrInvalidEmployeeID
	}
	at, err := s.punchTime(req.At)
	if err != nil {
		return PunchResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("clock out begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return PunchResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	open, err := qtx.FindOpenByEmployee(ctx, req.EmployeeID)
	if err != nil {
		return PunchResponse{}, mapRepositoryError(err)
	}
	if open == nil {
		return PunchResponse{}, attendanceerrors.ErrNotClockedIn
	}

	if err := qtx.ClosePunch(ctx, open.ID, at); err != nil {
		s.logger.Error("clock out persist failed", zap.Error(err))
		return PunchResponse{}, mapRepositoryError(err)
	}
	open.ClockOut = &at

	if err := tx.Commit(); err != nil {
		s.logger.Error("clock out commit failed", zap.String("request_id", rid), zap.Error(err))
		return PunchResponse{}, err
	}

	s.logger.Info("clock out success",
		zap.String("request_id", rid),
		zap.String("employee_id", req.EmployeeID),
		zap.String("punch_id", open.ID.String()),
	)

	return mapToPunchResponse(*open), nil
}

// ReconcileDay joins the day's punches to each employee's resolved shift.
// Employees without a punch that day do not appear: absence on the day view
// is a distinct state, not a zero row.
func (s *service) ReconcileDay(ctx context.Context, date string) ([]DayRecordResponse, error) {
	day, err := parseDate(date)
	if err != nil {
		return nil, err
	}

	punches, err := s.repo.FindAllForDate(ctx, day)
	if err != nil {
		s.logger.Error("reconcile day punches failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}
	shifts, err := s.schedules.ResolveShiftsForDate(ctx, day)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	rows := make([]DayRecordResponse, 0, len(punches))
	for _, p := range punches {
		rows = append(rows, buildDayRecord(p, shifts[p.EmployeeID], now))
	}
	return rows, nil
}

func (s *service) ReconcileRange(ctx context.Context, employeeID, startDate, endDate string) (RangeResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return RangeResponse{}, attendanceerrors.ErrInvalidEmployeeID
	}
	start, err := parseDate(startDate)
	if err != nil {
		return RangeResponse{}, err
	}
	end, err := parseDate(endDate)
	if err != nil {
		return RangeResponse{}, err
	}
	if start.After(end) {
		return RangeResponse{}, attendanceerrors.ErrInvalidDateRange
	}

	punches, err := s.repo.FindRange(ctx, employeeID, start, end)
	if err != nil {
		s.logger.Error("reconcile range punches failed",
			zap.String("employee_id", employeeID),
			zap.Error(err),
		)
		return RangeResponse{}, mapRepositoryError(err)
	}
	shifts, err := s.schedules.ResolveShiftsForRange(ctx, employeeID, start, end)
	if err != nil {
		return RangeResponse{}, err
	}

	byDay := make(map[string]*AttendancePunch, len(punches))
	for i := range punches {
		byDay[punches[i].PunchDate.Format("2006-01-02")] = &punches[i]
	}

	now := s.now().UTC()
	resp := RangeResponse{
		EmployeeID: employeeID,
		StartDate:  start.Format("2006-01-02"),
		EndDate:    end.Format("2006-01-02"),
		Days:       make([]RangeDayResponse, 0, int(end.Sub(start).Hours()/24)+1),
	}

	var workedTotal, expectedTotal float64
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		key := day.Format("2006-01-02")
		row := buildRangeDay(day, byDay[key], shifts[key], now)
		workedTotal += row.WorkedHours
		expectedTotal += row.ShiftHours
		resp.Days = append(resp.Days, row)
	}

	resp.Totals = RangeTotalsResponse{
		WorkedHours:   round2(workedTotal),
		ExpectedHours: round2(expectedTotal),
		Diff:          formatDiff(workedTotal, expectedTotal),
	}
	return resp, nil
}

// WorkedHoursForRange sums punch durations per employee, open punches
// measured up to now, the same way the day view measures them.
func (s *service) WorkedHoursForRange(ctx context.Context, start, end time.Time) (map[uuid.UUID]float64, error) {
	punches, err := s.repo.FindAllInRange(ctx, start, end)
	if err != nil {
		s.logger.Error("worked hours for range failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	now := s.now().UTC()
	seconds := make(map[uuid.UUID]int64)
	for _, p := range punches {
		seconds[p.EmployeeID] += workedSeconds(p.ClockIn, p.ClockOut, now)
	}

	hours := make(map[uuid.UUID]float64, len(seconds))
	for id, secs := range seconds {
		hours[id] = round2(float64(secs) / 3600)
	}
	return hours, nil
}

func (s *service) punchTime(at string) (time.Time, error) {
	if at == "" {
		return s.now().UTC(), nil
	}
	parsed, err := time.Parse(time.RFC3339, at)
	if err != nil {
		return time.Time{}, attendanceerrors.ErrInvalidTimestamp
	}
	return parsed.UTC(), nil
}

func buildDayRecord(p AttendancePunch, rs schedule.ResolvedShift, now time.Time) DayRecordResponse {
	worked := workedSeconds(p.ClockIn, p.ClockOut, now)
	row := DayRecordResponse{
		EmployeeID:  p.EmployeeID.String(),
		ClockIn:     p.ClockIn.UTC().Format("15:04"),
		Worked:      formatWorked(worked),
		WorkedHours: round2(float64(worked) / 3600),
		Status:      statusOnShift,
	}
	if p.Employee != nil {
		row.EmployeeName = p.Employee.FullName
	}
	if p.ClockOut != nil {
		out := p.ClockOut.UTC().Format("15:04")
		row.ClockOut = &out
		row.Status = statusPresent
	}
	if rs.Found {
		row.ExpectedIn = schedule.FormatClock(rs.InMinutes)
		row.RequiredOut = schedule.FormatClock(schedule.RequiredOutMinutes(rs.InMinutes, rs.LengthMinutes))
		row.ShiftHours = round2(float64(rs.LengthMinutes) / 60)
		row.Late = schedule.IsLate(schedule.SecondOfDay(p.ClockIn), rs.InMinutes)
	}
	return row
}

// buildRangeDay carries each day's expected hours in ShiftHours: zero on the
// weekly off day and on days no schedule covers, so the range totals charge
// only scheduled working days.
func buildRangeDay(day time.Time, p *AttendancePunch, rs schedule.ResolvedShift, now time.Time) RangeDayResponse {
	row := RangeDayResponse{
		Date:    day.Format("2006-01-02"),
		Weekday: day.Format("Mon"),
		Worked:  formatWorked(0),
	}
	if rs.Found && !rs.IsOffDay(day) {
		row.ShiftHours = round2(float64(rs.LengthMinutes) / 60)
	}

	switch {
	case p != nil:
		worked := workedSeconds(p.ClockIn, p.ClockOut, now)
		in := p.ClockIn.UTC().Format("15:04")
		row.ClockIn = &in
		row.Worked = formatWorked(worked)
		row.WorkedHours = round2(float64(worked) / 3600)
		row.Status = statusOnShift
		if p.ClockOut != nil {
			out := p.ClockOut.UTC().Format("15:04")
			row.ClockOut = &out
			row.Status = statusPresent
		}
		if rs.Found {
			row.Late = schedule.IsLate(schedule.SecondOfDay(p.ClockIn), rs.InMinutes)
		}
	case rs.Found && rs.IsOffDay(day):
		row.Status = statusOffDay
	case rs.Found:
		row.Status = statusAbsent
	default:
		row.Status = statusUnscheduled
	}

	row.Diff = formatDiff(row.WorkedHours, row.ShiftHours)
	return row
}

// workedSeconds measures a punch. Open punches run to now; a clock-out
// earlier than the clock-in crossed midnight, so a day is added back.
func workedSeconds(in time.Time, out *time.Time, now time.Time) int64 {
	end := now
	if out != nil {
		end = *out
	}
	secs := int64(end.Sub(in) / time.Second)
	if secs < 0 {
		secs += 24 * 60 * 60
	}
	return secs
}

// formatWorked renders seconds as "HH h MM m".
func formatWorked(secs int64) string {
	return fmt.Sprintf("%02d h %02d m", secs/3600, (secs%3600)/60)
}

// formatDiff renders an hour delta as signed ±HH:MM rounded to the minute.
func formatDiff(workedHours, expectedHours float64) string {
	minutes := int(math.Round((workedHours - expectedHours) * 60))
	sign := "+"
	if minutes < 0 {
		sign = "-"
		minutes = -minutes
	}
	return fmt.Sprintf("%s%02d:%02d", sign, minutes/60, minutes%60)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func parseDate(value string) (time.Time, error) {
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, attendanceerrors.ErrInvalidDateFormat
	}
	return parsed, nil
}

func mapToPunchResponse(p AttendancePunch) PunchResponse {
	resp := PunchResponse{
		ID:         p.ID.String(),
		EmployeeID: p.EmployeeID.String(),
		PunchDate:  p.PunchDate.Format("2006-01-02"),
		ClockIn:    p.ClockIn.UTC().Format(time.RFC3339),
	}
	if p.ClockOut != nil {
		out := p.ClockOut.UTC().Format(time.RFC3339)
		resp.ClockOut = &out
	}
	return resp
}
