package payroll

import (
	"context"
	"database/sql"
	"time"

	"github.com/AIforimpact22/HR-amas/internal/effective"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	ActiveEmployees(ctx context.Context) ([]RosterEmployee, error)
	BaseSalariesAt(ctx context.Context, day time.Time) (map[uuid.UUID]BaseSalaryRecord, error)
	AdjustmentSumsForRange(ctx context.Context, start, end time.Time) (map[uuid.UUID]AdjustmentSums, error)
	CreateEntry(ctx context.Context, entry *PayrollLedger) error
	ExistsForMonth(ctx context.Context, month string) (bool, error)
	FindByMonth(ctx context.Context, month string) ([]PayrollLedger, error)
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

func (r *repository) ActiveEmployees(ctx context.Context) ([]RosterEmployee, error) {
	var roster []RosterEmployee
	err := r.db.WithContext(ctx).
		Table("employees").
		Select("id, full_name").
		Where("state = ?", "active").
		Where("deleted_at IS NULL").
		Order("full_name ASC").
		Scan(&roster).Error
	return roster, err
}

// BaseSalariesAt resolves every employee's salary record covering the
// given day. Employees with no covering record are absent from the map.
func (r *repository) BaseSalariesAt(ctx context.Context, day time.Time) (map[uuid.UUID]BaseSalaryRecord, error) {
	var records []BaseSalaryRecord
	err := r.db.WithContext(ctx).
		Table("salary_history").
		Select("employee_id, salary, reason").
		Scopes(effective.On(day)).
		Order("effective_from ASC").
		Scan(&records).Error
	if err != nil {
		return nil, err
	}

	out := make(map[uuid.UUID]BaseSalaryRecord, len(records))
	for _, rec := range records {
		out[rec.EmployeeID] = rec
	}
	return out, nil
}

const adjustmentSumsQuery = `
	SELECT employee_id,
	       COALESCE(SUM(amount) FILTER (WHERE txn_type = 'bonus'), 0) AS bonus,
	       COALESCE(SUM(amount) FILTER (WHERE txn_type = 'extra'), 0) AS extra,
	       COALESCE(SUM(amount) FILTER (WHERE txn_type = 'fine'), 0)  AS fine,
	       COALESCE(STRING_AGG(reason, '; ' ORDER BY txn_date) FILTER (WHERE reason <> ''), '') AS reasons
	FROM salary_adjustments
	WHERE txn_date BETWEEN ? AND ?
	GROUP BY employee_id
`

func (r *repository) AdjustmentSumsForRange(ctx context.Context, start, end time.Time) (map[uuid.UUID]AdjustmentSums, error) {
	var sums []AdjustmentSums
	err := r.db.WithContext(ctx).
		Raw(adjustmentSumsQuery, start, end).
		Scan(&sums).Error
	if err != nil {
		return nil, err
	}

	out := make(map[uuid.UUID]AdjustmentSums, len(sums))
	for _, s := range sums {
		out[s.EmployeeID] = s
	}
	return out, nil
}

const insertLedgerEntryQuery = `
	INSERT INTO payroll_ledger
	       (id, employee_id, month, employee_name, base_salary, bonus, extra, fine, net_salary, note, finalized_by, finalized_at, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, now())
`

func (r *repository) CreateEntry(ctx context.Context, entry *PayrollLedger) error {
	_, err := r.execer().ExecContext(ctx, insertLedgerEntryQuery,
		entry.ID,
		entry.EmployeeID,
		entry.Month,
		entry.EmployeeName,
		entry.BaseSalary,
		entry.Bonus,
		entry.Extra,
		entry.Fine,
		entry.NetSalary,
		entry.Note,
		entry.FinalizedBy,
		entry.FinalizedAt,
	)
	return err
}

func (r *repository) ExistsForMonth(ctx context.Context, month string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&PayrollLedger{}).
		Where("month = ?", month).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) FindByMonth(ctx context.Context, month string) ([]PayrollLedger, error) {
	var entries []PayrollLedger
	err := r.db.WithContext(ctx).
		Where("month = ?", month).
		Order("employee_name ASC").
		Find(&entries).Error
	return entries, err
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
