package schedule

import (
	"context"
	"database/sql"
	"time"

	"github.com/AIforimpact22/HR-amas/internal/shared/contextutil"

	scheduleerrors "github.com/AIforimpact22/HR-amas/internal/schedule/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Default schedule assigned on hire: six-day week, Friday off, 08:00-16:30.
const (
	DefaultWorkDaysPerWeek = 6
	DefaultOffDay          = 5
	DefaultClockIn         = "08:00"
	DefaultClockOut        = "16:30"
)

const defaultScheduleReason = "Default schedule on hire"

type Service interface {
	Assign(ctx context.Context, req AssignScheduleRequest) (ScheduleResponse, error)
	Update(ctx context.Context, id string, req UpdateScheduleRequest) (ScheduleResponse, error)
	GetByEmployee(ctx context.Context, employeeID string) ([]ScheduleResponse, error)
	ResolveForDate(ctx context.Context, employeeID string, date string) (ResolvedShiftResponse, error)
	ResolveShift(ctx context.Context, employeeID string, day time.Time) (ResolvedShift, error)
	ResolveShiftsForDate(ctx context.Context, day time.Time) (map[uuid.UUID]ResolvedShift, error)
	ResolveShiftsForRange(ctx context.Context, employeeID string, start, end time.Time) (map[string]ResolvedShift, error)
	SeedDefault(ctx context.Context, employeeID string, from time.Time) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("schedule.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("schedule.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

// Assign supersedes the employee's open schedule: the open record closes the
// day before the new one starts and the new record is inserted open-ended.
// Both writes share one transaction.
func (s *service) Assign(ctx context.Context, req AssignScheduleRequest) (ScheduleResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("assign schedule requested",
		zap.String("request_id", rid),
		zap.String("employee_id", req.EmployeeID),
		zap.String("effective_from", req.EffectiveFrom),
	)

	employeeID, from, err := s.validateAssignRequest(ctx, req)
	if err != nil {
		s.logger.Warn("assign schedule validation failed", zap.Error(err))
		return ScheduleResponse{}, err
	}

	ws := &WorkSchedule{
		ID:              uuid.New(),
		EmployeeID:      employeeID,
		WorkDaysPerWeek: req.WorkDaysPerWeek,
		OffDay:          *req.OffDay,
		ClockIn:         req.ClockIn,
		ClockOut:        req.ClockOut,
		EffectiveFrom:   from,
		Reason:          req.Reason,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("assign schedule begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return ScheduleResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.CloseCurrent(ctx, req.EmployeeID, from.AddDate(0, 0, -1)); err != nil {
		s.logger.Error("assign schedule close current failed", zap.Error(err))
		return ScheduleResponse{}, mapRepositoryError(err)
	}
	if err := qtx.Create(ctx, ws); err != nil {
		s.logger.Error("assign schedule persist failed", zap.Error(err))
		return ScheduleResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("assign schedule commit failed", zap.String("request_id", rid), zap.Error(err))
		return ScheduleResponse{}, err
	}

	s.logger.Info("assign schedule success",
		zap.String("request_id", rid),
		zap.String("employee_id", req.EmployeeID),
		zap.String("schedule_id", ws.ID.String()),
	)

	return mapToResponse(*ws), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateScheduleRequest) (ScheduleResponse, error) {
	s.logger.Debug("update schedule requested", zap.String("schedule_id", id))

	if _, err := uuid.Parse(id); err != nil {
		return ScheduleResponse{}, scheduleerrors.ErrInvalidScheduleID
	}
	if err := validateClockPair(req.ClockIn, req.ClockOut); err != nil {
		return ScheduleResponse{}, err
	}
	from, err := parseDate(req.EffectiveFrom)
	if err != nil {
		return ScheduleResponse{}, err
	}
	var to *time.Time
	if req.EffectiveTo != "" {
		parsed, err := parseDate(req.EffectiveTo)
		if err != nil {
			return ScheduleResponse{}, err
		}
		to = &parsed
	}

	ws, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return ScheduleResponse{}, mapRepositoryError(err)
	}

	ws.WorkDaysPerWeek = req.WorkDaysPerWeek
	ws.OffDay = *req.OffDay
	ws.ClockIn = req.ClockIn
	ws.ClockOut = req.ClockOut
	ws.EffectiveFrom = from
	ws.EffectiveTo = to
	ws.Reason = req.Reason

	if err := s.repo.UpdateInPlace(ctx, ws); err != nil {
		s.logger.Error("update schedule persist failed", zap.Error(err))
		return ScheduleResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("update schedule success", zap.String("schedule_id", id))

	return mapToResponse(*ws), nil
}

func (s *service) GetByEmployee(ctx context.Context, employeeID string) ([]ScheduleResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, scheduleerrors.ErrInvalidEmployeeID
	}

	schedules, err := s.repo.FindByEmployee(ctx, employeeID)
	if err != nil {
		s.logger.Error("get schedules by employee failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	return mapToListResponse(schedules), nil
}

func (s *service) ResolveForDate(ctx context.Context, employeeID string, date string) (ResolvedShiftResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return ResolvedShiftResponse{}, scheduleerrors.ErrInvalidEmployeeID
	}
	day, err := parseDate(date)
	if err != nil {
		return ResolvedShiftResponse{}, err
	}

	rs, err := s.ResolveShift(ctx, employeeID, day)
	if err != nil {
		return ResolvedShiftResponse{}, err
	}

	resp := ResolvedShiftResponse{
		EmployeeID: employeeID,
		Date:       day.Format("2006-01-02"),
		Resolved:   rs.Found,
		OffDay:     rs.IsOffDay(day),
	}
	if rs.Found {
		resp.ExpectedIn = FormatClock(rs.InMinutes)
		resp.ExpectedOut = FormatClock(rs.OutMinutes)
		resp.RequiredOut = FormatClock(RequiredOutMinutes(rs.InMinutes, rs.LengthMinutes))
		resp.ShiftHours = float64(rs.LengthMinutes) / 60
		resp.WorkDaysPerWeek = rs.WorkDaysPerWeek
	}
	return resp, nil
}

// ResolveShift resolves the schedule expectation for one employee on one
// day. A day no record covers resolves to the zero expectation, not an
// error.
func (s *service) ResolveShift(ctx context.Context, employeeID string, day time.Time) (ResolvedShift, error) {
	ws, err := s.repo.FindEffective(ctx, employeeID, day)
	if err != nil {
		s.logger.Error("resolve shift failed",
			zap.String("employee_id", employeeID),
			zap.Error(err),
		)
		return ResolvedShift{}, mapRepositoryError(err)
	}
	return resolveShift(ws)
}

// ResolveShiftsForDate resolves every employee with a schedule covering the
// day in one query. Employees missing from the map have no expectation.
func (s *service) ResolveShiftsForDate(ctx context.Context, day time.Time) (map[uuid.UUID]ResolvedShift, error) {
	schedules, err := s.repo.FindEffectiveForAll(ctx, day)
	if err != nil {
		s.logger.Error("resolve shifts for date failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	resolved := make(map[uuid.UUID]ResolvedShift, len(schedules))
	for i := range schedules {
		rs, err := resolveShift(&schedules[i])
		if err != nil {
			return nil, err
		}
		resolved[schedules[i].EmployeeID] = rs
	}
	return resolved, nil
}

// ResolveShiftsForRange resolves every day in [start, end] from a single
// fetch of the employee's schedule history, keyed by "2006-01-02". Days no
// record covers are absent from the map.
func (s *service) ResolveShiftsForRange(ctx context.Context, employeeID string, start, end time.Time) (map[string]ResolvedShift, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, scheduleerrors.ErrInvalidEmployeeID
	}

	schedules, err := s.repo.FindByEmployee(ctx, employeeID)
	if err != nil {
		s.logger.Error("resolve shifts for range failed",
			zap.String("employee_id", employeeID),
			zap.Error(err),
		)
		return nil, mapRepositoryError(err)
	}

	resolved := make(map[string]ResolvedShift)
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		ws := coveringRecord(schedules, day)
		if ws == nil {
			continue
		}
		rs, err := resolveShift(ws)
		if err != nil {
			return nil, err
		}
		resolved[day.Format("2006-01-02")] = rs
	}
	return resolved, nil
}

// coveringRecord picks the record whose window contains the day. The slice
// comes back newest first, so the first hit is the latest effective_from.
func coveringRecord(schedules []WorkSchedule, day time.Time) *WorkSchedule {
	for i := range schedules {
		ws := &schedules[i]
		if ws.EffectiveFrom.After(day) {
			continue
		}
		if ws.EffectiveTo != nil && day.After(*ws.EffectiveTo) {
			continue
		}
		return ws
	}
	return nil
}

// SeedDefault gives a newly hired employee the default schedule. Employees
// that already have any schedule are left untouched, so replayed events are
// safe.
func (s *service) SeedDefault(ctx context.Context, employeeID string, from time.Time) error {
	id, err := uuid.Parse(employeeID)
	if err != nil {
		return scheduleerrors.ErrInvalidEmployeeID
	}

	exists, err := s.repo.HasAny(ctx, employeeID)
	if err != nil {
		return mapRepositoryError(err)
	}
	if exists {
		s.logger.Info("seed default schedule skipped, employee already scheduled",
			zap.String("employee_id", employeeID),
		)
		return nil
	}

	ws := &WorkSchedule{
		ID:              uuid.New(),
		EmployeeID:      id,
		WorkDaysPerWeek: DefaultWorkDaysPerWeek,
		OffDay:          DefaultOffDay,
		ClockIn:         DefaultClockIn,
		ClockOut:        DefaultClockOut,
		EffectiveFrom:   from,
		Reason:          defaultScheduleReason,
	}
	if err := s.repo.Create(ctx, ws); err != nil {
		return mapRepositoryError(err)
	}

	s.logger.Info("seed default schedule success",
		zap.String("employee_id", employeeID),
		zap.String("schedule_id", ws.ID.String()),
	)
	return nil
}

func (s *service) validateAssignRequest(ctx context.Context, req AssignScheduleRequest) (uuid.UUID, time.Time, error) {
	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return uuid.Nil, time.Time{}, scheduleerrors.ErrInvalidEmployeeID
	}
	if req.OffDay == nil || *req.OffDay < 0 || *req.OffDay > 6 {
		return uuid.Nil, time.Time{}, scheduleerrors.ErrInvalidOffDay
	}
	if req.WorkDaysPerWeek < 1 || req.WorkDaysPerWeek > 7 {
		return uuid.Nil, time.Time{}, scheduleerrors.ErrInvalidWorkDays
	}
	if err := validateClockPair(req.ClockIn, req.ClockOut); err != nil {
		return uuid.Nil, time.Time{}, err
	}
	from, err := parseDate(req.EffectiveFrom)
	if err != nil {
		return uuid.Nil, time.Time{}, err
	}

	exists, err := s.repo.EmployeeExists(ctx, req.EmployeeID)
	if err != nil {
		return uuid.Nil, time.Time{}, mapRepositoryError(err)
	}
	if !exists {
		return uuid.Nil, time.Time{}, scheduleerrors.ErrEmployeeNotFound
	}

	return employeeID, from, nil
}

func validateClockPair(clockIn, clockOut string) error {
	if _, err := ParseClock(clockIn); err != nil {
		return err
	}
	if _, err := ParseClock(clockOut); err != nil {
		return err
	}
	return nil
}

func parseDate(value string) (time.Time, error) {
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, scheduleerrors.ErrInvalidDateFormat
	}
	return parsed, nil
}

func mapToResponse(ws WorkSchedule) ScheduleResponse {
	resp := ScheduleResponse{
		ID:              ws.ID.String(),
		EmployeeID:      ws.EmployeeID.String(),
		WorkDaysPerWeek: ws.WorkDaysPerWeek,
		OffDay:          ws.OffDay,
		ClockIn:         ws.ClockIn,
		ClockOut:        ws.ClockOut,
		EffectiveFrom:   ws.EffectiveFrom.Format("2006-01-02"),
		Reason:          ws.Reason,
	}
	if ws.EffectiveTo != nil {
		to := ws.EffectiveTo.Format("2006-01-02")
		resp.EffectiveTo = &to
	}
	return resp
}

func mapToListResponse(schedules []WorkSchedule) []ScheduleResponse {
	resp := make([]ScheduleResponse, 0, len(schedules))
	for _, ws := range schedules {
		resp = append(resp, mapToResponse(ws))
	}
	return resp
}
