package attendance

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, p *AttendancePunch) error
	ClosePunch(ctx context.Context, id uuid.UUID, out time.Time) error
	FindByEmployeeAndDate(ctx context.Context, employeeID string, day time.Time) (*AttendancePunch, error)
	FindOpenByEmployee(ctx context.Context, employeeID string) (*AttendancePunch, error)
	FindAllForDate(ctx context.Context, day time.Time) ([]AttendancePunch, error)
	FindRange(ctx context.Context, employeeID string, start, end time.Time) ([]AttendancePunch, error)
	FindAllInRange(ctx context.Context, start, end time.Time) ([]AttendancePunch, error)
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

const insertPunchQuery = `
	INSERT INTO attendance_punches (id, employee_id, punch_date, clock_in, clock_out, created_at)
	VALUES ($1, $2, $3, $4, $5, now())
`

func (r *repository) Create(ctx context.Context, p *AttendancePunch) error {
	_, err := r.execer().ExecContext(ctx, insertPunchQuery,
		p.ID,
		p.EmployeeID,
		p.PunchDate,
		p.ClockIn,
		p.ClockOut,
	)
	return err
}

const closePunchQuery = `
	UPDATE attendance_punches SET clock_out = $1
	WHERE id = $2 AND clock_out IS NULL
`

func (r *repository) ClosePunch(ctx context.Context, id uuid.UUID, out time.Time) error {
	res, err := r.execer().ExecContext(ctx, closePunchQuery, out, id)
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

func (r *repository) FindByEmployeeAndDate(ctx context.Context, employeeID string, day time.Time) (*AttendancePunch, error) {
	var p AttendancePunch
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("punch_date = ?", day.Format("2006-01-02")).
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// FindOpenByEmployee returns the latest punch still missing a clock-out,
// whatever day it started on, so night shifts can close after midnight.
func (r *repository) FindOpenByEmployee(ctx context.Context, employeeID string) (*AttendancePunch, error) {
	var p AttendancePunch
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("clock_out IS NULL").
		Order("clock_in DESC").
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) FindAllForDate(ctx context.Context, day time.Time) ([]AttendancePunch, error) {
	var rows []AttendancePunch
	err := r.db.WithContext(ctx).
		Joins("JOIN employees AS e ON e.id = attendance_punches.employee_id").
		Where("e.state = ?", "active").
		Where("e.deleted_at IS NULL").
		Where("attendance_punches.punch_date = ?", day.Format("2006-01-02")).
		Preload("Employee").
		Order("e.full_name ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindRange(ctx context.Context, employeeID string, start, end time.Time) ([]AttendancePunch, error) {
	var rows []AttendancePunch
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("punch_date BETWEEN ? AND ?", start.Format("2006-01-02"), end.Format("2006-01-02")).
		Order("punch_date ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindAllInRange(ctx context.Context, start, end time.Time) ([]AttendancePunch, error) {
	var rows []AttendancePunch
	err := r.db.WithContext(ctx).
		Joins("JOIN employees AS e ON e.id = attendance_punches.employee_id").
		Where("e.state = ?", "active").
		Where("e.deleted_at IS NULL").
		Where("attendance_punches.punch_date BETWEEN ? AND ?", start.Format("2006-01-02"), end.Format("2006-01-02")).
		Order("attendance_punches.employee_id, attendance_punches.punch_date").
		Find(&rows).Error
	return rows, err
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
