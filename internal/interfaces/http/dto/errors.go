package dto

import "net/http"

// Error codes surfaced by the API. Domain errors carry these codes already;
// the handler layer only adds the transport-level ones.
const (
	CodeValidationError = "VALIDATION_ERROR"
	CodeInternalError   = "INTERNAL_ERROR"

	CodeNotFound            = "NOT_FOUND"
	CodeAlreadyExists       = "ALREADY_EXISTS"
	CodeInvalidInput        = "INVALID_INPUT"
	CodeConcurrencyConflict = "CONCURRENCY_CONFLICT"

	CodeInvalidTier            = "INVALID_TIER"
	CodeTierNotAllowed         = "TIER_NOT_ALLOWED"
	CodeNoPricingConfigured    = "NO_PRICING_CONFIGURED"
	CodeInsufficientStock      = "INSUFFICIENT_STOCK"
	CodeInsufficientBatchStock = "INSUFFICIENT_BATCH_STOCK"
	CodeBatchOverRelease       = "BATCH_OVER_RELEASE"
	CodeInvalidStateTransition = "INVALID_STATE_TRANSITION"
	CodeOnlyPendingDeletable   = "ONLY_PENDING_DELETABLE"
	CodeLockTimeout            = "LOCK_TIMEOUT"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes.
// Business-rule rejections on well-formed requests map to 422; lock
// timeouts map to 503 so callers know a retry may succeed.
var ErrorCodeHTTPStatus = map[string]int{
	CodeValidationError: http.StatusBadRequest,
	CodeInvalidInput:    http.StatusBadRequest,
	CodeInvalidTier:     http.StatusBadRequest,

	CodeTierNotAllowed: http.StatusForbidden,

	CodeNotFound: http.StatusNotFound,

	CodeAlreadyExists:       http.StatusConflict,
	CodeConcurrencyConflict: http.StatusConflict,

	CodeNoPricingConfigured:    http.StatusUnprocessableEntity,
	CodeInsufficientStock:      http.StatusUnprocessableEntity,
	CodeInsufficientBatchStock: http.StatusUnprocessableEntity,
	CodeInvalidStateTransition: http.StatusUnprocessableEntity,
	CodeOnlyPendingDeletable:   http.StatusUnprocessableEntity,

	CodeLockTimeout: http.StatusServiceUnavailable,

	CodeBatchOverRelease: http.StatusInternalServerError,
	CodeInternalError:    http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status for an error code, defaulting to 500
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
