package salaryhistoryerrors

import (
	"net/http"

	"github.com/AIforimpact22/HR-amas/internal/shared/apperror"
)

var (
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid employee ID",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrSalaryWindowOverlap = apperror.New(
		apperror.CodeConflict,
		"A salary record already starts on this effective date",
		http.StatusConflict,
	)
)
