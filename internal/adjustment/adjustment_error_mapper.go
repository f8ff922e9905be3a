package adjustment

import (
	"errors"
	"strings"

	adjustmenterrors "github.com/AIforimpact22/HR-amas/internal/adjustment/errors"
	"github.com/AIforimpact22/HR-amas/internal/shared/apperror"

	"github.com/jackc/pgx/v5/pgconn"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23514" && pgErr.ConstraintName == "chk_salary_adjustments_amount" {
			return adjustmenterrors.ErrInvalidAmount
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "check constraint") && strings.Contains(errMsg, "chk_salary_adjustments_amount") {
		return adjustmenterrors.ErrInvalidAmount
	}

	return apperror.Internal(err)
}
