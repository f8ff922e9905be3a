package employee

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/AIforimpact22/HR-amas/internal/events"
	"github.com/AIforimpact22/HR-amas/internal/messaging/kafka"
	"github.com/AIforimpact22/HR-amas/internal/shared/contextutil"
	"github.com/AIforimpact22/HR-amas/internal/shared/counter"

	employeeerrors "github.com/AIforimpact22/HR-amas/internal/employee/errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const EmployeeOptionsKey = "employees:options"

// initialSalaryReason is the reason stamped on the salary record seeded at hire.
const initialSalaryReason = "Initial contract rate"

type Service interface {
	Hire(ctx context.Context, req HireEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context, filter GetEmployeesFilterRequest) ([]EmployeeResponse, error)
	GetOptions(ctx context.Context) ([]EmployeeOptionResponse, error)
	GetByID(ctx context.Context, id string) (EmployeeResponse, error)
	ChangeState(ctx context.Context, id string, req ChangeEmployeeStateRequest) (EmployeeResponse, error)
}

type service struct {
	db      *sql.DB
	repo    Repository
	counter counter.Repository
	outbox  kafka.OutboxRepository
	rdb     *redis.Client
	sf      *singleflight.Group
	logger  *zap.Logger
}

func NewService(db *sql.DB, repo Repository, counter counter.Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, counter, nil, rdb, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	counter counter.Repository,
	outboxRepo kafka.OutboxRepository,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		db:      db,
		repo:    repo,
		counter: counter,
		outbox:  outboxRepo,
		rdb:     rdb,
		sf:      &singleflight.Group{},
		logger:  l}
}

// Hire creates the employee, seeds the opening salary record and stages the
// hired event in one transaction. Schedule seeding happens downstream from
// the event, not here.
func (s *service) Hire(ctx context.Context, req HireEmployeeRequest) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("hire employee requested",
		zap.String("request_id", rid),
		zap.String("full_name", req.FullName),
	)

	employmentDate, err := parseDate(req.EmploymentDate)
	if err != nil {
		s.logger.Warn("hire employee invalid employment_date",
			zap.String("employment_date", req.EmploymentDate),
		)
		return EmployeeResponse{}, err
	}
	if req.BaseSalary <= 0 {
		return EmployeeResponse{}, employeeerrors.ErrInvalidBaseSalary
	}

	nextVal, err := s.counter.GetNextValue(ctx, counter.TypeEmployeeNumber)
	if err != nil {
		s.logger.Error("hire employee generate number failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	empl := &Employee{
		ID:             uuid.New(),
		EmployeeNumber: fmt.Sprintf("EMP-%06d", nextVal),
		FullName:       req.FullName,
		EmploymentDate: employmentDate,
		State:          StateActive,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("hire employee begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.Create(ctx, empl); err != nil {
		s.logger.Error("hire employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := qtx.SeedInitialSalary(ctx, empl.ID, req.BaseSalary, employmentDate, initialSalaryReason); err != nil {
		s.logger.Error("hire employee seed salary failed",
			zap.String("employee_id", empl.ID.String()),
			zap.Error(err),
		)
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	event := events.EmployeeHiredEvent{
		EventType:      "employee_hired",
		RequestID:      rid,
		EmployeeID:     empl.ID.String(),
		FullName:       empl.FullName,
		EmploymentDate: employmentDate.Format("2006-01-02"),
		OccurredAt:     time.Now().UTC(),
	}
	if s.outbox != nil {
		payload, err := json.Marshal(event)
		if err != nil {
			s.logger.Error("marshal event failed", zap.String("request_id", rid), zap.Error(err))
			return EmployeeResponse{}, err
		}

		outboxRepo := s.outbox.WithTx(tx)
		if err := outboxRepo.Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     rid,
			AggregateType: "employee",
			AggregateID:   empl.ID.String(),
			EventType:     event.EventType,
			Topic:         events.EmployeeHiredTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			s.logger.Error("hire employee outbox persist failed",
				zap.String("employee_id", empl.ID.String()),
				zap.Error(err),
			)
			return EmployeeResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("hire employee commit failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.invalidateOptionsCache(ctx)

	s.logger.Info("hire employee success",
		zap.String("request_id", rid),
		zap.String("employee_id", empl.ID.String()),
		zap.String("employee_number", empl.EmployeeNumber),
	)

	return mapToResponse(*empl, &req.BaseSalary), nil
}

func (s *service) GetAll(ctx context.Context, filter GetEmployeesFilterRequest) ([]EmployeeResponse, error) {
	s.logger.Debug("get all employees requested",
		zap.String("search", filter.Search),
		zap.String("state", filter.State),
	)
	rows, err := s.repo.FindAll(ctx, RosterFilter{Search: filter.Search, State: filter.State})
	if err != nil {
		s.logger.Error("get all employees failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	resp := make([]EmployeeResponse, 0, len(rows))
	for _, row := range rows {
		resp = append(resp, mapToResponse(row.Employee, row.CurrentSalary))
	}
	return resp, nil
}

func (s *service) GetOptions(ctx context.Context) ([]EmployeeOptionResponse, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, EmployeeOptionsKey).Result(); err == nil {
			var resp []EmployeeOptionResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	// Singleflight collapses the stampede when pickers load after a cache drop.
	v, err, _ := s.sf.Do(EmployeeOptionsKey, func() (interface{}, error) {
		empls, err := s.repo.FindOptions(ctx)
		if err != nil {
			return nil, mapRepositoryError(err)
		}

		resp := make([]EmployeeOptionResponse, 0, len(empls))
		for _, empl := range empls {
			resp = append(resp, EmployeeOptionResponse{
				ID:             empl.ID.String(),
				EmployeeNumber: empl.EmployeeNumber,
				FullName:       empl.FullName,
			})
		}

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, EmployeeOptionsKey, jsonData, 1*time.Hour)
			}
		}

		return resp, nil
	})

	if err != nil {
		return nil, err
	}

	return v.([]EmployeeOptionResponse), nil
}

func (s *service) GetByID(ctx context.Context, id string) (EmployeeResponse, error) {
	s.logger.Debug("get employee by id requested", zap.String("employee_id", id))

	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	empl, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.logger.Error("get employee by id failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*empl, nil), nil
}

func (s *service) ChangeState(ctx context.Context, id string, req ChangeEmployeeStateRequest) (EmployeeResponse, error) {
	s.logger.Debug("change employee state requested",
		zap.String("employee_id", id),
		zap.String("state", req.State),
	)

	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	if err := s.repo.UpdateState(ctx, id, req.State); err != nil {
		s.logger.Error("change employee state failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	empl, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	s.invalidateOptionsCache(ctx)

	s.logger.Info("change employee state success",
		zap.String("employee_id", id),
		zap.String("state", req.State),
	)

	return mapToResponse(*empl, nil), nil
}

func (s *service) invalidateOptionsCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, EmployeeOptionsKey).Err(); err != nil {
		s.logger.Error("failed to invalidate employee options cache",
			zap.Error(err),
			zap.String("key", EmployeeOptionsKey),
		)
	}
}

func parseDate(value string) (time.Time, error) {
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, employeeerrors.ErrInvalidDateFormat
	}
	return parsed, nil
}

func mapToResponse(empl Employee, currentSalary *int64) EmployeeResponse {
	return EmployeeResponse{
		ID:             empl.ID.String(),
		EmployeeNumber: empl.EmployeeNumber,
		FullName:       empl.FullName,
		EmploymentDate: empl.EmploymentDate.Format("2006-01-02"),
		State:          empl.State,
		CurrentSalary:  currentSalary,
	}
}
