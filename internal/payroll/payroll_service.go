package payroll

import (
	"context"
	"database/sql"
	"encoding/json"
	"math"
	"strings"
	"time"

	"github.com/AIforimpact22/HR-amas/internal/events"
	"github.com/AIforimpact22/HR-amas/internal/messaging/kafka"
	"github.com/AIforimpact22/HR-amas/internal/salaryhistory"
	"github.com/AIforimpact22/HR-amas/internal/shared/contextutil"

	payrollerrors "github.com/AIforimpact22/HR-amas/internal/payroll/errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Every employee owes one standard shift for each day of the month,
// less four fixed leave days. A uniform figure, not schedule-derived.
const (
	requiredShiftHours = 8.5
	monthlyLeaveDays   = 4
)

func LedgerCacheKey(month string) string {
	return "payroll:ledger:" + month
}

type Service interface {
	MonthlySummary(ctx context.Context, month string) (MonthlySummaryResponse, error)
	RaiseOrCut(ctx context.Context, req RaiseOrCutRequest) (RaiseOrCutResponse, error)
	FinalizeMonth(ctx context.Context, month, actor string) (FinalizeMonthResponse, error)
	GetLedger(ctx context.Context, month string) ([]LedgerEntryResponse, error)
	MonthlyReportPDF(ctx context.Context, month string) ([]byte, error)
}

// WorkedHoursProvider supplies reconciled worked hours per employee for a
// date range. Open punches are measured to now, same as the day view.
type WorkedHoursProvider interface {
	WorkedHoursForRange(ctx context.Context, start, end time.Time) (map[uuid.UUID]float64, error)
}

type service struct {
	db       *sql.DB
	repo     Repository
	salaries salaryhistory.Repository
	worked   WorkedHoursProvider
	outbox   kafka.OutboxRepository
	rdb      *redis.Client
	sf       *singleflight.Group
	logger   *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	salaries salaryhistory.Repository,
	worked WorkedHoursProvider,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	return NewServiceWithOutbox(db, repo, salaries, worked, nil, rdb, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	salaries salaryhistory.Repository,
	worked WorkedHoursProvider,
	outboxRepo kafka.OutboxRepository,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("payroll.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.service")
	}
	return &service{
		db:       db,
		repo:     repo,
		salaries: salaries,
		worked:   worked,
		outbox:   outboxRepo,
		rdb:      rdb,
		sf:       &singleflight.Group{},
		logger:   l,
	}
}

// monthlyRow pairs the response row with the pieces only finalize needs.
type monthlyRow struct {
	employee RosterEmployee
	row      MonthlySummaryRow
	note     string
}

type monthlyFigures struct {
	start     time.Time
	end       time.Time
	finalized bool
	rows      []monthlyRow
	totals    MonthlySummaryTotals
}

// MonthlySummary recomputes from the live stores on every call; the
// summary is never persisted before finalization. Concurrent requests
// for the same month collapse into one computation.
func (s *service) MonthlySummary(ctx context.Context, month string) (MonthlySummaryResponse, error) {
	start, err := parseMonth(month)
	if err != nil {
		return MonthlySummaryResponse{}, err
	}

	v, err, _ := s.sf.Do("summary:"+month, func() (interface{}, error) {
		figures, err := s.computeMonth(ctx, month, start)
		if err != nil {
			return nil, err
		}

		rows := make([]MonthlySummaryRow, len(figures.rows))
		for i, fr := range figures.rows {
			rows[i] = fr.row
		}
		return MonthlySummaryResponse{
			Month:     month,
			StartDate: figures.start.Format("2006-01-02"),
			EndDate:   figures.end.Format("2006-01-02"),
			Finalized: figures.finalized,
			Rows:      rows,
			Totals:    figures.totals,
		}, nil
	})
	if err != nil {
		return MonthlySummaryResponse{}, err
	}
	return v.(MonthlySummaryResponse), nil
}

func (s *service) computeMonth(ctx context.Context, month string, start time.Time) (monthlyFigures, error) {
	end := start.AddDate(0, 1, -1)
	required := round2(requiredShiftHours * float64(end.Day()-monthlyLeaveDays))

	roster, err := s.repo.ActiveEmployees(ctx)
	if err != nil {
		s.logger.Error("monthly summary roster query failed", zap.Error(err))
		return monthlyFigures{}, err
	}
	bases, err := s.repo.BaseSalariesAt(ctx, start)
	if err != nil {
		s.logger.Error("monthly summary base salary query failed", zap.Error(err))
		return monthlyFigures{}, err
	}
	adjustments, err := s.repo.AdjustmentSumsForRange(ctx, start, end)
	if err != nil {
		s.logger.Error("monthly summary adjustment query failed", zap.Error(err))
		return monthlyFigures{}, err
	}
	workedHours, err := s.worked.WorkedHoursForRange(ctx, start, end)
	if err != nil {
		s.logger.Error("monthly summary worked hours failed", zap.Error(err))
		return monthlyFigures{}, err
	}
	finalized, err := s.repo.ExistsForMonth(ctx, month)
	if err != nil {
		return monthlyFigures{}, err
	}

	figures := monthlyFigures{
		start:     start,
		end:       end,
		finalized: finalized,
		rows:      make([]monthlyRow, 0, len(roster)),
	}
	for _, empl := range roster {
		// Missing map entries are the zero states: no salary record
		// covering the month start means base 0, no adjustments mean 0s.
		base := bases[empl.ID]
		adj := adjustments[empl.ID]
		worked := workedHours[empl.ID]
		net := base.Salary + adj.Bonus + adj.Extra - adj.Fine

		row := MonthlySummaryRow{
			EmployeeID:    empl.ID.String(),
			EmployeeName:  empl.FullName,
			BaseSalary:    base.Salary,
			Bonus:         adj.Bonus,
			Extra:         adj.Extra,
			Fine:          adj.Fine,
			NetSalary:     net,
			WorkedHours:   worked,
			RequiredHours: required,
			DeltaHours:    round2(worked - required),
			Reasons:       adj.Reasons,
		}
		figures.rows = append(figures.rows, monthlyRow{
			employee: empl,
			row:      row,
			note:     composeNote(base.Reason, adj.Reasons),
		})

		figures.totals.BaseSalary += row.BaseSalary
		figures.totals.Bonus += row.Bonus
		figures.totals.Extra += row.Extra
		figures.totals.Fine += row.Fine
		figures.totals.NetSalary += row.NetSalary
		figures.totals.WorkedHours += row.WorkedHours
		figures.totals.DeltaHours += row.DeltaHours
	}
	figures.totals.RequiredHours = round2(required * float64(len(figures.rows)))
	figures.totals.WorkedHours = round2(figures.totals.WorkedHours)
	figures.totals.DeltaHours = round2(figures.totals.DeltaHours)

	return figures, nil
}

// RaiseOrCut closes the open salary record the day before the new one
// starts and inserts the successor, in one transaction. The effective
// date is always pushed back to the first day of its month.
func (s *service) RaiseOrCut(ctx context.Context, req RaiseOrCutRequest) (RaiseOrCutResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return RaiseOrCutResponse{}, payrollerrors.ErrInvalidEmployeeID
	}
	if req.Amount <= 0 {
		return RaiseOrCutResponse{}, payrollerrors.ErrInvalidAmount
	}
	effectiveFrom, err := parseEffectiveFrom(req.EffectiveFrom)
	if err != nil {
		return RaiseOrCutResponse{}, err
	}

	exists, err := s.repo.EmployeeExists(ctx, req.EmployeeID)
	if err != nil {
		return RaiseOrCutResponse{}, err
	}
	if !exists {
		return RaiseOrCutResponse{}, payrollerrors.ErrEmployeeNotFound
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("raise or cut begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return RaiseOrCutResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.salaries.WithTx(tx)

	current, err := qtx.FindOpen(ctx, req.EmployeeID)
	if err != nil {
		return RaiseOrCutResponse{}, err
	}
	if current != nil && current.Salary == req.Amount {
		return RaiseOrCutResponse{}, payrollerrors.ErrSameSalary
	}

	if err := qtx.CloseCurrent(ctx, req.EmployeeID, effectiveFrom.AddDate(0, 0, -1)); err != nil {
		s.logger.Error("raise or cut close current failed",
			zap.String("employee_id", req.EmployeeID),
			zap.Error(err),
		)
		return RaiseOrCutResponse{}, err
	}

	rec := &salaryhistory.SalaryRecord{
		ID:            uuid.New(),
		EmployeeID:    employeeID,
		Salary:        req.Amount,
		EffectiveFrom: effectiveFrom,
		Reason:        req.Reason,
	}
	if err := qtx.Create(ctx, rec); err != nil {
		s.logger.Error("raise or cut persist failed",
			zap.String("employee_id", req.EmployeeID),
			zap.Error(err),
		)
		return RaiseOrCutResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("raise or cut commit failed", zap.String("request_id", rid), zap.Error(err))
		return RaiseOrCutResponse{}, err
	}

	s.logger.Info("raise or cut success",
		zap.String("request_id", rid),
		zap.String("employee_id", req.EmployeeID),
		zap.Int64("salary", req.Amount),
		zap.String("effective_from", effectiveFrom.Format("2006-01-02")),
	)

	resp := RaiseOrCutResponse{
		EmployeeID:    req.EmployeeID,
		Salary:        req.Amount,
		EffectiveFrom: effectiveFrom.Format("2006-01-02"),
		Reason:        req.Reason,
	}
	if current != nil {
		prev := current.Salary
		resp.PreviousSalary = &prev
	}
	return resp, nil
}

// FinalizeMonth snapshots the live summary into the ledger, all rows in
// one transaction. The existence pre-check keeps repeat calls cheap; the
// unique index on (employee_id, month) is what holds under a race.
func (s *service) FinalizeMonth(ctx context.Context, month, actor string) (FinalizeMonthResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	start, err := parseMonth(month)
	if err != nil {
		return FinalizeMonthResponse{}, err
	}
	if strings.TrimSpace(actor) == "" {
		return FinalizeMonthResponse{}, payrollerrors.ErrInvalidActor
	}

	figures, err := s.computeMonth(ctx, month, start)
	if err != nil {
		return FinalizeMonthResponse{}, err
	}
	if figures.finalized {
		return FinalizeMonthResponse{}, payrollerrors.ErrMonthAlreadyFinalized
	}

	finalizedAt := time.Now().UTC()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("finalize month begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return FinalizeMonthResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	for _, fr := range figures.rows {
		entry := &PayrollLedger{
			ID:           uuid.New(),
			EmployeeID:   fr.employee.ID,
			Month:        month,
			EmployeeName: fr.employee.FullName,
			BaseSalary:   fr.row.BaseSalary,
			Bonus:        fr.row.Bonus,
			Extra:        fr.row.Extra,
			Fine:         fr.row.Fine,
			NetSalary:    fr.row.NetSalary,
			Note:         fr.note,
			FinalizedBy:  actor,
			FinalizedAt:  finalizedAt,
		}
		if err := qtx.CreateEntry(ctx, entry); err != nil {
			s.logger.Error("finalize month persist failed",
				zap.String("month", month),
				zap.String("employee_id", fr.employee.ID.String()),
				zap.Error(err),
			)
			return FinalizeMonthResponse{}, mapRepositoryError(err)
		}
	}

	event := events.PayrollMonthFinalizedEvent{
		EventType:     "payroll_month_finalized",
		RequestID:     rid,
		Month:         month,
		FinalizedBy:   actor,
		EmployeeCount: len(figures.rows),
		OccurredAt:    finalizedAt,
	}
	if s.outbox != nil {
		payload, err := json.Marshal(event)
		if err != nil {
			s.logger.Error("marshal event failed", zap.String("request_id", rid), zap.Error(err))
			return FinalizeMonthResponse{}, err
		}
		if err := s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     rid,
			AggregateType: "payroll",
			AggregateID:   month,
			EventType:     event.EventType,
			Topic:         events.PayrollMonthFinalizedTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			s.logger.Error("finalize month outbox persist failed",
				zap.String("month", month),
				zap.Error(err),
			)
			return FinalizeMonthResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("finalize month commit failed", zap.String("request_id", rid), zap.Error(err))
		return FinalizeMonthResponse{}, err
	}

	s.logger.Info("finalize month success",
		zap.String("request_id", rid),
		zap.String("month", month),
		zap.Int("employee_count", len(figures.rows)),
		zap.String("finalized_by", actor),
	)

	return FinalizeMonthResponse{
		Month:         month,
		EmployeeCount: len(figures.rows),
		FinalizedBy:   actor,
		FinalizedAt:   finalizedAt.Format(time.RFC3339),
	}, nil
}

func (s *service) GetLedger(ctx context.Context, month string) ([]LedgerEntryResponse, error) {
	if _, err := parseMonth(month); err != nil {
		return nil, err
	}

	key := LedgerCacheKey(month)
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, key).Result(); err == nil {
			var resp []LedgerEntryResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	entries, err := s.repo.FindByMonth(ctx, month)
	if err != nil {
		return nil, err
	}
	resp := mapToLedgerResponse(entries)

	// Ledger rows never change once written. Empty months are not
	// cached, so a pre-finalize read cannot mask a later finalize.
	if s.rdb != nil && len(resp) > 0 {
		if jsonData, err := json.Marshal(resp); err == nil {
			s.rdb.Set(ctx, key, jsonData, 24*time.Hour)
		}
	}
	return resp, nil
}

// MonthlyReportPDF renders the finalized ledger when the month is
// locked, or the live summary marked as a draft when it is not.
func (s *service) MonthlyReportPDF(ctx context.Context, month string) ([]byte, error) {
	start, err := parseMonth(month)
	if err != nil {
		return nil, err
	}

	entries, err := s.repo.FindByMonth(ctx, month)
	if err != nil {
		return nil, err
	}
	if len(entries) > 0 {
		return renderLedgerPDF(month, entries)
	}

	figures, err := s.computeMonth(ctx, month, start)
	if err != nil {
		return nil, err
	}
	return renderSummaryPDF(month, figures)
}

func composeNote(salaryReason, adjustmentReasons string) string {
	parts := make([]string, 0, 2)
	if salaryReason != "" {
		parts = append(parts, salaryReason)
	}
	if adjustmentReasons != "" {
		parts = append(parts, adjustmentReasons)
	}
	return strings.Join(parts, "; ")
}

func parseMonth(v string) (time.Time, error) {
	t, err := time.Parse("2006-01", v)
	if err != nil {
		return time.Time{}, payrollerrors.ErrInvalidMonthFormat
	}
	return t, nil
}

// parseEffectiveFrom normalizes any date to the first day of its month.
func parseEffectiveFrom(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, payrollerrors.ErrInvalidDateFormat
	}
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC), nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func mapToLedgerResponse(entries []PayrollLedger) []LedgerEntryResponse {
	resp := make([]LedgerEntryResponse, len(entries))
	for i, entry := range entries {
		resp[i] = LedgerEntryResponse{
			ID:           entry.ID.String(),
			EmployeeID:   entry.EmployeeID.String(),
			EmployeeName: entry.EmployeeName,
			Month:        entry.Month,
			BaseSalary:   entry.BaseSalary,
			Bonus:        entry.Bonus,
			Extra:        entry.Extra,
			Fine:         entry.Fine,
			NetSalary:    entry.NetSalary,
			Note:         entry.Note,
			FinalizedBy:  entry.FinalizedBy,
			FinalizedAt:  entry.FinalizedAt.UTC().Format(time.RFC3339),
		}
	}
	return resp
}
