package adjustment

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, adj *SalaryAdjustment) error
	FindByEmployee(ctx context.Context, employeeID string, start, end *time.Time) ([]SalaryAdjustment, error)
	EmployeeExists(ctx context.Context, employeeID string) (bool, error)
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

const insertAdjustmentQuery = `
	INSERT INTO salary_adjustments (id, employee_id, txn_date, amount, txn_type, reason, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, now())
`

func (r *repository) Create(ctx context.Context, adj *SalaryAdjustment) error {
	_, err := r.execer().ExecContext(ctx, insertAdjustmentQuery,
		adj.ID,
		adj.EmployeeID,
		adj.TxnDate,
		adj.Amount,
		adj.TxnType,
		adj.Reason,
	)
	return err
}

// FindByEmployee lists the audit trail ascending. Nil bounds leave
// that side of the range open.
func (r *repository) FindByEmployee(ctx context.Context, employeeID string, start, end *time.Time) ([]SalaryAdjustment, error) {
	q := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID)
	if start != nil {
		q = q.Where("txn_date >= ?", *start)
	}
	if end != nil {
		q = q.Where("txn_date <= ?", *end)
	}

	var adjustments []SalaryAdjustment
	err := q.Order("txn_date ASC, created_at ASC").Find(&adjustments).Error
	return adjustments, err
}

func (r *repository) EmployeeExists(ctx context.Context, employeeID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("employees").
		Where("id = ?", employeeID).
		Where("deleted_at IS NULL").
		Count(&count).Error
	return count > 0, err
}
