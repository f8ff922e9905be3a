package adjustment

import (
	"context"
	"database/sql"
	"time"

	adjustmenterrors "github.com/AIforimpact22/HR-amas/internal/adjustment/errors"
	"github.com/AIforimpact22/HR-amas/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	TypeBonus = "bonus"
	TypeExtra = "extra"
	TypeFine  = "fine"
)

type Service interface {
	PostAdjustment(ctx context.Context, req PostAdjustmentRequest) (AdjustmentResponse, error)
	ListByEmployee(ctx context.Context, employeeID, startDate, endDate string) ([]AdjustmentResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("adjustment.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("adjustment.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

// PostAdjustment appends one row to the log. The log has no update or
// delete path: a wrong entry is corrected by posting a compensating one.
func (s *service) PostAdjustment(ctx context.Context, req PostAdjustmentRequest) (AdjustmentResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return AdjustmentResponse{}, adjustmenterrors.ErrInvalidEmployeeID
	}
	txnDate, err := parseDate(req.TxnDate)
	if err != nil {
		return AdjustmentResponse{}, err
	}
	if req.Amount <= 0 {
		return AdjustmentResponse{}, adjustmenterrors.ErrInvalidAmount
	}
	if !isValidTxnType(req.TxnType) {
		return AdjustmentResponse{}, adjustmenterrors.ErrInvalidTxnType
	}

	exists, err := s.repo.EmployeeExists(ctx, req.EmployeeID)
	if err != nil {
		return AdjustmentResponse{}, err
	}
	if !exists {
		return AdjustmentResponse{}, adjustmenterrors.ErrEmployeeNotFound
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("post adjustment begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return AdjustmentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	adj := &SalaryAdjustment{
		ID:         uuid.New(),
		EmployeeID: employeeID,
		TxnDate:    txnDate,
		Amount:     req.Amount,
		TxnType:    req.TxnType,
		Reason:     req.Reason,
	}
	if err := qtx.Create(ctx, adj); err != nil {
		s.logger.Error("post adjustment persist failed", zap.String("request_id", rid), zap.Error(err))
		return AdjustmentResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("post adjustment commit failed", zap.String("request_id", rid), zap.Error(err))
		return AdjustmentResponse{}, err
	}

	s.logger.Info("post adjustment success",
		zap.String("request_id", rid),
		zap.String("employee_id", req.EmployeeID),
		zap.String("txn_type", req.TxnType),
		zap.Int64("amount", req.Amount),
	)

	return mapToResponse(*adj), nil
}

func (s *service) ListByEmployee(ctx context.Context, employeeID, startDate, endDate string) ([]AdjustmentResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, adjustmenterrors.ErrInvalidEmployeeID
	}

	var start, end *time.Time
	if startDate != "" {
		d, err := parseDate(startDate)
		if err != nil {
			return nil, err
		}
		start = &d
	}
	if endDate != "" {
		d, err := parseDate(endDate)
		if err != nil {
			return nil, err
		}
		end = &d
	}
	if start != nil && end != nil && start.After(*end) {
		return nil, adjustmenterrors.ErrInvalidDateRange
	}

	adjustments, err := s.repo.FindByEmployee(ctx, employeeID, start, end)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(adjustments), nil
}

func isValidTxnType(t string) bool {
	return t == TypeBonus || t == TypeExtra || t == TypeFine
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, adjustmenterrors.ErrInvalidDateFormat
	}
	return t, nil
}

func mapToResponse(adj SalaryAdjustment) AdjustmentResponse {
	return AdjustmentResponse{
		ID:         adj.ID.String(),
		EmployeeID: adj.EmployeeID.String(),
		TxnDate:    adj.TxnDate.Format("2006-01-02"),
		Amount:     adj.Amount,
		TxnType:    adj.TxnType,
		Reason:     adj.Reason,
		CreatedAt:  adj.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func mapToListResponse(adjustments []SalaryAdjustment) []AdjustmentResponse {
	resp := make([]AdjustmentResponse, len(adjustments))
	for i, adj := range adjustments {
		resp[i] = mapToResponse(adj)
	}
	return resp
}
