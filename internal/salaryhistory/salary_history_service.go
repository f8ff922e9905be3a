package salaryhistory

import (
	"context"
	"time"

	salaryhistoryerrors "github.com/AIforimpact22/HR-amas/internal/salaryhistory/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	GetHistory(ctx context.Context, employeeID string) ([]SalaryRecordResponse, error)
	ResolveAt(ctx context.Context, employeeID string, date string) (ResolvedSalaryResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

// NewService builds the read side of the salary history store. Writes go
// through the payroll raise/cut flow and the hire seeding, which share this
// package's repository.
func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("salaryhistory.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("salaryhistory.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) GetHistory(ctx context.Context, employeeID string) ([]SalaryRecordResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, salaryhistoryerrors.ErrInvalidEmployeeID
	}

	records, err := s.repo.FindByEmployee(ctx, employeeID)
	if err != nil {
		s.logger.Error("get salary history failed",
			zap.String("employee_id", employeeID),
			zap.Error(err),
		)
		return nil, mapRepositoryError(err)
	}

	return mapToListResponse(records), nil
}

// ResolveAt finds the salary in effect on a date. No covering record is a
// zero state, not an error: new hires may predate their first record.
func (s *service) ResolveAt(ctx context.Context, employeeID string, date string) (ResolvedSalaryResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return ResolvedSalaryResponse{}, salaryhistoryerrors.ErrInvalidEmployeeID
	}
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return ResolvedSalaryResponse{}, salaryhistoryerrors.ErrInvalidDateFormat
	}

	rec, err := s.repo.FindEffective(ctx, employeeID, day)
	if err != nil {
		s.logger.Error("resolve salary failed",
			zap.String("employee_id", employeeID),
			zap.Error(err),
		)
		return ResolvedSalaryResponse{}, mapRepositoryError(err)
	}

	resp := ResolvedSalaryResponse{
		EmployeeID: employeeID,
		Date:       day.Format("2006-01-02"),
	}
	if rec != nil {
		resp.Resolved = true
		resp.Salary = rec.Salary
		resp.Reason = rec.Reason
		resp.EffectiveFrom = rec.EffectiveFrom.Format("2006-01-02")
	}
	return resp, nil
}

func mapToResponse(rec SalaryRecord) SalaryRecordResponse {
	resp := SalaryRecordResponse{
		ID:            rec.ID.String(),
		EmployeeID:    rec.EmployeeID.String(),
		Salary:        rec.Salary,
		EffectiveFrom: rec.EffectiveFrom.Format("2006-01-02"),
		Reason:        rec.Reason,
	}
	if rec.EffectiveTo != nil {
		to := rec.EffectiveTo.Format("2006-01-02")
		resp.EffectiveTo = &to
	}
	return resp
}

func mapToListResponse(records []SalaryRecord) []SalaryRecordResponse {
	resp := make([]SalaryRecordResponse, 0, len(records))
	for _, rec := range records {
		resp = append(resp, mapToResponse(rec))
	}
	return resp
}
