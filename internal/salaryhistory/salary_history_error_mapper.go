package salaryhistory

import (
	"errors"
	"strings"

	salaryhistoryerrors "github.com/AIforimpact22/HR-amas/internal/salaryhistory/errors"
	"github.com/AIforimpact22/HR-amas/internal/shared/apperror"

	"github.com/jackc/pgx/v5/pgconn"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_salary_history_employee_from" {
			return salaryhistoryerrors.ErrSalaryWindowOverlap
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_salary_history_employee_from") {
		return salaryhistoryerrors.ErrSalaryWindowOverlap
	}

	return apperror.Internal(err)
}
