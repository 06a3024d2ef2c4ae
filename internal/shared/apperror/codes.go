package apperror

const (
	// Client errors (4xx)
	CodeInvalidInput = "INVALID_INPUT"
	CodeNotFound     = "NOT_FOUND"
	CodeConflict     = "CONFLICT"
	CodeProcessing   = "PROCESSING"
	CodeRateLimited  = "RATE_LIMITED"

	// Store failures, one per list operation
	CodeFetchFailed  = "FETCH_ERROR"
	CodeCreateFailed = "CREATE_ERROR"
	CodeUpdateFailed = "UPDATE_ERROR"
	CodeDeleteFailed = "DELETE_ERROR"

	// Server errors (5xx)
	CodeInternalError      = "INTERNAL_ERROR"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)
