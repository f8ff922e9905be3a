package payrollerrors

import (
	"net/http"

	"github.com/AIforimpact22/HR-amas/internal/shared/apperror"
)

var (
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidActor = apperror.New(
		apperror.CodeInvalidInput,
		"invalid actor",
		http.StatusBadRequest,
	)
	ErrInvalidMonthFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid month format, expected YYYY-MM",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidAmount = apperror.New(
		apperror.CodeInvalidInput,
		"salary amount must be greater than zero",
		http.StatusBadRequest,
	)
	ErrSameSalary = apperror.New(
		apperror.CodeInvalidInput,
		"new salary equals the current salary",
		http.StatusBadRequest,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"employee not found",
		http.StatusNotFound,
	)
	ErrMonthAlreadyFinalized = apperror.New(
		apperror.CodeConflict,
		"payroll for this month is already finalized",
		http.StatusConflict,
	)
)
