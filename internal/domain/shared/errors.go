package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
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

// Common domain errors
var (
	ErrNotFound          = NewDomainError("NOT_FOUND", "Resource not found")
	ErrInvalidHorizon    = NewDomainError("INVALID_HORIZON", "Forecast horizon must be at least one day")
	ErrSourceUnavailable = NewDomainError("SOURCE_UNAVAILABLE", "Financial data source is unreachable")
	ErrPersistenceFailed = NewDomainError("PERSISTENCE_FAILED", "Failed to persist computed results")
)
