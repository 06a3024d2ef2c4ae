package recruitmenterrors

import (
	"go-backoffice/internal/shared/apperror"
	"net/http"
)

// Store failures. The data access layer attaches the cause with WithErr.
var (
	ErrFetchFailed = apperror.New(
		apperror.CodeFetchFailed,
		"Error fetching internal recruitments",
		http.StatusBadGateway,
	)
	ErrCreateFailed = apperror.New(
		apperror.CodeCreateFailed,
		"Error submitting internal recruitment",
		http.StatusBadGateway,
	)
	ErrUpdateFailed = apperror.New(
		apperror.CodeUpdateFailed,
		"Error updating internal recruitment",
		http.StatusBadGateway,
	)
	ErrDeleteFailed = apperror.New(
		apperror.CodeDeleteFailed,
		"Error deleting internal recruitment",
		http.StatusBadGateway,
	)
)

// Validation failures, raised before any store call.
var (
	ErrMissingID = apperror.New(
		apperror.CodeInvalidInput,
		"Id is required for updating internal recruitment",
		http.StatusBadRequest,
	)
	ErrInvalidPostingID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid internal recruitment ID",
		http.StatusBadRequest,
	)
	ErrMissingRequiredFields = apperror.New(
		apperror.CodeInvalidInput,
		"Please fill in all fields",
		http.StatusBadRequest,
	)
	ErrInvalidCity = apperror.New(
		apperror.CodeInvalidInput,
		"City must be one of rabat, fes, rabat&fes",
		http.StatusBadRequest,
	)
	ErrInvalidDeadline = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid deadline format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
)

var ErrPostingNotFound = apperror.New(
	apperror.CodeNotFound,
	"Internal recruitment not found",
	http.StatusNotFound,
)
