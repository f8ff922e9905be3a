package salaryhistory

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/AIforimpact22/HR-amas/internal/effective"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, rec *SalaryRecord) error
	CloseCurrent(ctx context.Context, employeeID string, closeDate time.Time) error
	FindOpen(ctx context.Context, employeeID string) (*SalaryRecord, error)
	FindByEmployee(ctx context.Context, employeeID string) ([]SalaryRecord, error)
	FindEffective(ctx context.Context, employeeID string, day time.Time) (*SalaryRecord, error)
}

type repository struct {
	db    *gorm.DB
	sqlDB *sql.DB
	tx    *sql.Tx
}

func NewRepository(db *gorm.DB, sqlDB *sql.DB) Repository {
	return &repository{db: db, sqlDB: sqlDB}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, sqlDB: r.sqlDB, tx: tx}
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (r *repository) execer() execer {
	if r.tx != nil {
		return r.tx
	}
	return r.sqlDB
}

const insertSalaryRecordQuery = `
	INSERT INTO salary_history (id, employee_id, salary, effective_from, effective_to, reason, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, now())
`

func (r *repository) Create(ctx context.Context, rec *SalaryRecord) error {
	_, err := r.execer().ExecContext(ctx, insertSalaryRecordQuery,
		rec.ID,
		rec.EmployeeID,
		rec.Salary,
		rec.EffectiveFrom,
		rec.EffectiveTo,
		rec.Reason,
	)
	return err
}

const closeCurrentSalaryQuery = `
	UPDATE salary_history SET effective_to = $1
	WHERE employee_id = $2 AND effective_to IS NULL
`

// CloseCurrent ends the open salary record the day before its successor
// starts. No open record is not an error.
func (r *repository) CloseCurrent(ctx context.Context, employeeID string, closeDate time.Time) error {
	_, err := r.execer().ExecContext(ctx, closeCurrentSalaryQuery, closeDate, employeeID)
	return err
}

func (r *repository) FindOpen(ctx context.Context, employeeID string) (*SalaryRecord, error) {
	var rec SalaryRecord
	err := r.db.WithContext(ctx).
		Scopes(effective.Open()).
		Where("employee_id = ?", employeeID).
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *repository) FindByEmployee(ctx context.Context, employeeID string) ([]SalaryRecord, error) {
	var records []SalaryRecord
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("effective_from DESC").
		Find(&records).Error
	return records, err
}

func (r *repository) FindEffective(ctx context.Context, employeeID string, day time.Time) (*SalaryRecord, error) {
	var rec SalaryRecord
	err := r.db.WithContext(ctx).
		Scopes(effective.On(day)).
		Where("employee_id = ?", employeeID).
		Order("effective_from DESC").
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}
