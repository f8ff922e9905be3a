package scheduleerrors

import (
	"net/http"

	"github.com/AIforimpact22/HR-amas/internal/shared/apperror"
)

var (
	ErrScheduleNotFound = apperror.New(
		apperror.CodeNotFound,
		"Work schedule not found",
		http.StatusNotFound,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
	ErrInvalidScheduleID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid schedule ID",
		http.StatusBadRequest,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid employee ID",
		http.StatusBadRequest,
	)
	ErrInvalidClockFormat = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid clock time, expected HH:MM",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidOffDay = apperror.New(
		apperror.CodeInvalidInput,
		"Off day must be between 0 (Sunday) and 6 (Saturday)",
		http.StatusBadRequest,
	)
	ErrInvalidWorkDays = apperror.New(
		apperror.CodeInvalidInput,
		"Work days per week must be between 1 and 7",
		http.StatusBadRequest,
	)
	ErrScheduleOverlap = apperror.New(
		apperror.CodeConflict,
		"A schedule already covers this effective window",
		http.StatusConflict,
	)
)
