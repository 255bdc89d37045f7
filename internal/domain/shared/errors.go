package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WithDetails returns a copy of the error carrying structured context
func (e *DomainError) WithDetails(details map[string]interface{}) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
	}
}

// Error codes shared across bounded contexts
const (
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

// Common domain errors
var (
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists       = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput        = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrConcurrencyConflict = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
	ErrLockTimeout         = NewDomainError(CodeLockTimeout, "Could not acquire item lock within the configured timeout")
)
