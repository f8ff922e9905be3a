package schedule

import (
	"errors"
	"strings"

	scheduleerrors "github.com/AIforimpact22/HR-amas/internal/schedule/errors"
	"github.com/AIforimpact22/HR-amas/internal/shared/apperror"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return scheduleerrors.ErrScheduleNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_work_schedules_employee_from" {
			return scheduleerrors.ErrScheduleOverlap
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_work_schedules_employee_from") {
		return scheduleerrors.ErrScheduleOverlap
	}

	return apperror.Internal(err)
}
