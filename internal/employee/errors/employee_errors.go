package employeeerrors

import (
	"net/http"

	"github.com/AIforimpact22/HR-amas/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
	ErrEmployeeNumberAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Employee number already exists",
		http.StatusConflict,
	)
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
	ErrInvalidBaseSalary = apperror.New(
		apperror.CodeInvalidInput,
		"Base salary must be greater than zero",
		http.StatusBadRequest,
	)
	ErrInvalidState = apperror.New(
		apperror.CodeInvalidInput,
		"Employee state must be one of: active, resigned, terminated",
		http.StatusBadRequest,
	)
	ErrEmployeeNotActive = apperror.New(
		apperror.CodeInvalidState,
		"Employee is not active",
		http.StatusUnprocessableEntity,
	)
)
