package payroll

import (
	"errors"
	"strings"

	payrollerrors "github.com/AIforimpact22/HR-amas/internal/payroll/errors"
	salaryhistoryerrors "github.com/AIforimpact22/HR-amas/internal/salaryhistory/errors"
	"github.com/AIforimpact22/HR-amas/internal/shared/apperror"

	"github.com/jackc/pgx/v5/pgconn"
)

// mapRepositoryError turns unique violations into the conflicts they
// mean: a duplicate ledger row is the month lock firing, a duplicate
// salary window start is a raise landing on an existing record.
func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		switch pgErr.ConstraintName {
		case "uq_payroll_ledger_employee_month":
			return payrollerrors.ErrMonthAlreadyFinalized
		case "uq_salary_history_employee_from":
			return salaryhistoryerrors.ErrSalaryWindowOverlap
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") {
		if strings.Contains(errMsg, "uq_payroll_ledger_employee_month") {
			return payrollerrors.ErrMonthAlreadyFinalized
		}
		if strings.Contains(errMsg, "uq_salary_history_employee_from") {
			return salaryhistoryerrors.ErrSalaryWindowOverlap
		}
	}

	return apperror.Internal(err)
}
