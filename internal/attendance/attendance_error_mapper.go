package attendance

import (
	"errors"
	"strings"

	attendanceerrors "github.com/AIforimpact22/HR-amas/internal/attendance/errors"
	"github.com/AIforimpact22/HR-amas/internal/shared/apperror"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return attendanceerrors.ErrNotClockedIn
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_attendance_employee_day" {
			return attendanceerrors.ErrAlreadyClockedIn
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_attendance_employee_day") {
		return attendanceerrors.ErrAlreadyClockedIn
	}

	return apperror.Internal(err)
}
