package schedule

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
	Create(ctx context.Context, ws *WorkSchedule) error
	CloseCurrent(ctx context.Context, employeeID string, closeDate time.Time) error
	UpdateInPlace(ctx context.Context, ws *WorkSchedule) error
	FindByID(ctx context.Context, id string) (*WorkSchedule, error)
	FindByEmployee(ctx context.Context, employeeID string) ([]WorkSchedule, error)
	FindEffective(ctx context.Context, employeeID string, day time.Time) (*WorkSchedule, error)
	FindEffectiveForAll(ctx context.Context, day time.Time) ([]WorkSchedule, error)
	HasAny(ctx context.Context, employeeID string) (bool, error)
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

const insertScheduleQuery = `
	INSERT INTO work_schedules
		(id, employee_id, work_days_per_week, off_day, clock_in, clock_out, effective_from, effective_to, reason, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now(), now())
`

func (r *repository) Create(ctx context.Context, ws *WorkSchedule) error {
	_, err := r.execer().ExecContext(ctx, insertScheduleQuery,
		ws.ID,
		ws.EmployeeID,
		ws.WorkDaysPerWeek,
		ws.OffDay,
		ws.ClockIn,
		ws.ClockOut,
		ws.EffectiveFrom,
		ws.EffectiveTo,
		ws.Reason,
	)
	return err
}

const closeCurrentScheduleQuery = `
	UPDATE work_schedules SET effective_to = $1, updated_at = now()
	WHERE employee_id = $2 AND effective_to IS NULL
`

// CloseCurrent ends the open schedule record the day before the new one
// starts. No open record is not an error: the insert that follows becomes
// the first record.
func (r *repository) CloseCurrent(ctx context.Context, employeeID string, closeDate time.Time) error {
	_, err := r.execer().ExecContext(ctx, closeCurrentScheduleQuery, closeDate, employeeID)
	return err
}

const updateScheduleQuery = `
	UPDATE work_schedules
	SET work_days_per_week = $1, off_day = $2, clock_in = $3, clock_out = $4,
		effective_from = $5, effective_to = $6, reason = $7, updated_at = now()
	WHERE id = $8
`

func (r *repository) UpdateInPlace(ctx context.Context, ws *WorkSchedule) error {
	res, err := r.execer().ExecContext(ctx, updateScheduleQuery,
		ws.WorkDaysPerWeek,
		ws.OffDay,
		ws.ClockIn,
		ws.ClockOut,
		ws.EffectiveFrom,
		ws.EffectiveTo,
		ws.Reason,
		ws.ID,
	)
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

func (r *repository) FindByID(ctx context.Context, id string) (*WorkSchedule, error) {
	var ws WorkSchedule
	err := r.db.WithContext(ctx).
		First(&ws, "id = ?", id).Error
	return &ws, err
}

func (r *repository) FindByEmployee(ctx context.Context, employeeID string) ([]WorkSchedule, error) {
	var schedules []WorkSchedule
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("effective_from DESC").
		Find(&schedules).Error
	return schedules, err
}

func (r *repository) FindEffective(ctx context.Context, employeeID string, day time.Time) (*WorkSchedule, error) {
	var ws WorkSchedule
	err := r.db.WithContext(ctx).
		Scopes(effective.On(day)).
		Where("employee_id = ?", employeeID).
		Order("effective_from DESC").
		First(&ws).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ws, nil
}

func (r *repository) FindEffectiveForAll(ctx context.Context, day time.Time) ([]WorkSchedule, error) {
	var schedules []WorkSchedule
	err := r.db.WithContext(ctx).
		Scopes(effective.On(day)).
		Order("effective_from ASC").
		Find(&schedules).Error
	return schedules, err
}

func (r *repository) HasAny(ctx context.Context, employeeID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&WorkSchedule{}).
		Where("employee_id = ?", employeeID).
		Count(&count).Error
	return count > 0, err
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
