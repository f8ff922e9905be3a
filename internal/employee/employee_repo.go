package employee

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RosterFilter struct {
	Search string
	State  string
}

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, empl *Employee) error
	SeedInitialSalary(ctx context.Context, employeeID uuid.UUID, salary int64, effectiveFrom time.Time, reason string) error
	FindAll(ctx context.Context, filter RosterFilter) ([]RosterRow, error)
	FindOptions(ctx context.Context) ([]Employee, error)
	FindByID(ctx context.Context, id string) (*Employee, error)
	UpdateState(ctx context.Context, id string, state string) error
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

// execer routes writes through the enclosing transaction when one is set.
func (r *repository) execer() execer {
	if r.tx != nil {
		return r.tx
	}
	return r.sqlDB
}

const insertEmployeeQuery = `
	INSERT INTO employees (id, employee_number, full_name, employment_date, state, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, now(), now())
`

func (r *repository) Create(ctx context.Context, empl *Employee) error {
	_, err := r.execer().ExecContext(ctx, insertEmployeeQuery,
		empl.ID,
		empl.EmployeeNumber,
		empl.FullName,
		empl.EmploymentDate,
		empl.State,
	)
	return err
}

const seedInitialSalaryQuery = `
	INSERT INTO salary_history (id, employee_id, salary, effective_from, effective_to, reason, created_at)
	VALUES ($1, $2, $3, $4, NULL, $5, now())
`

func (r *repository) SeedInitialSalary(
	ctx context.Context,
	employeeID uuid.UUID,
	salary int64,
	effectiveFrom time.Time,
	reason string,
) error {
	_, err := r.execer().ExecContext(ctx, seedInitialSalaryQuery,
		uuid.New(),
		employeeID,
		salary,
		effectiveFrom,
		reason,
	)
	return err
}

func (r *repository) FindAll(ctx context.Context, filter RosterFilter) ([]RosterRow, error) {
	today := time.Now().UTC().Truncate(24 * time.Hour)
	query := r.db.WithContext(ctx).
		Table("employees AS e").
		Select("e.*, sh.salary AS current_salary").
		Joins("LEFT JOIN salary_history sh ON sh.employee_id = e.id AND sh.effective_from <= ? AND (sh.effective_to IS NULL OR sh.effective_to >= ?)", today, today).
		Where("e.deleted_at IS NULL")

	if filter.Search != "" {
		query = query.Where("e.full_name ILIKE ?", "%"+filter.Search+"%")
	}
	if filter.State != "" {
		query = query.Where("e.state = ?", filter.State)
	}

	var rows []RosterRow
	err := query.Order("e.full_name ASC").Scan(&rows).Error
	return rows, err
}

func (r *repository) FindOptions(ctx context.Context) ([]Employee, error) {
	var empls []Employee
	err := r.db.WithContext(ctx).
		Select("id", "employee_number", "full_name").
		Where("state = ?", StateActive).
		Order("full_name ASC").
		Find(&empls).Error
	return empls, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Employee, error) {
	var empl Employee
	err := r.db.WithContext(ctx).
		First(&empl, "id = ?", id).Error
	return &empl, err
}

const updateEmployeeStateQuery = `
	UPDATE employees SET state = $1, updated_at = now()
	WHERE id = $2 AND deleted_at IS NULL
`

func (r *repository) UpdateState(ctx context.Context, id string, state string) error {
	res, err := r.execer().ExecContext(ctx, updateEmployeeStateQuery, state, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
