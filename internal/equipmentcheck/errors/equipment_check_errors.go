package equipmentcheckerrors

import (
	"net/http"

	"go-timeclock/internal/shared/apperror"
)

var (
	ErrAlreadyRequested = apperror.New(
		apperror.CodeConflict,
		"equipment check already requested for this clock-in",
		http.StatusConflict,
	)
	ErrInvalidEvent = apperror.New(
		apperror.CodeInvalidInput,
		"auto punch-in event is missing employee or company",
		http.StatusBadRequest,
	)
)
