package businesshourserrors

import (
	"net/http"

	"go-timeclock/internal/shared/apperror"
)

var (
	ErrNotConfigured = apperror.New(
		apperror.CodeNotFound,
		"business hours are not configured for this company",
		http.StatusNotFound,
	)
	ErrInvalidHours = apperror.New(
		apperror.CodeInvalidInput,
		"business hours need seven weekday entries with HH:MM open and close times",
		http.StatusBadRequest,
	)
	ErrInvalidCompanyID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid company id",
		http.StatusBadRequest,
	)
)
