package types

import "fmt"

// ErrorType represents different categories of errors
type ErrorType string

const (
	ErrorTypeValidation ErrorType = "validation"
	ErrorTypeConflict   ErrorType = "conflict"
	ErrorTypeNotFound   ErrorType = "not_found"
	ErrorTypeInternal   ErrorType = "internal"
	ErrorTypeExternal   ErrorType = "external"
)

// OpsError represents a structured error in the ambulance operations system
type OpsError struct {
	Type    ErrorType              `json:"type"`
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
	Cause   error                  `json:"-"`
}

// Error implements the error interface
func (e *OpsError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause error
func (e *OpsError) Unwrap() error {
	return e.Cause
}

// Is matches errors by code so that wrapped instances carrying request
// details still compare equal to the package sentinels via errors.Is.
func (e *OpsError) Is(target error) bool {
	t, ok := target.(*OpsError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// Sentinel errors for the scheduling error taxonomy. Handlers map these to
// HTTP status codes; services wrap them with request-specific details.
var (
	ErrInvalidSlotLabel = &OpsError{
		Type:    ErrorTypeValidation,
		Code:    "invalid_slot_label",
		Message: "slot label is not one of the recognized shift slots",
	}

	ErrDriverAlreadyAssigned = &OpsError{
		Type:    ErrorTypeConflict,
		Code:    "driver_already_assigned",
		Message: "driver already has a shift assigned for this date",
	}

	ErrSlotAlreadyTaken = &OpsError{
		Type:    ErrorTypeConflict,
		Code:    "slot_already_taken",
		Message: "this ambulance shift is already assigned",
	}

	ErrInvalidTransition = &OpsError{
		Type:    ErrorTypeValidation,
		Code:    "invalid_transition",
		Message: "requested shift status change is not allowed",
	}

	ErrNotFound = &OpsError{
		Type:    ErrorTypeNotFound,
		Code:    "not_found",
		Message: "requested record does not exist",
	}

	ErrProviderNotApproved = &OpsError{
		Type:    ErrorTypeValidation,
		Code:    "provider_not_approved",
		Message: "provider is not approved for this operation",
	}

	ErrDependencyUnavailable = &OpsError{
		Type:    ErrorTypeExternal,
		Code:    "dependency_unavailable",
		Message: "a required collaborator store could not be reached",
	}
)

// NewValidationError creates a new validation error
func NewValidationError(code, message string, details map[string]interface{}) *OpsError {
	return &OpsError{
		Type:    ErrorTypeValidation,
		Code:    code,
		Message: message,
		Details: details,
	}
}

// NewConflictError creates a conflict error derived from one of the conflict
// sentinels, attaching the identifiers that collided.
func NewConflictError(sentinel *OpsError, details map[string]interface{}) *OpsError {
	return &OpsError{
		Type:    sentinel.Type,
		Code:    sentinel.Code,
		Message: sentinel.Message,
		Details: details,
	}
}

// NewNotFoundError creates a new not found error for a specific record
func NewNotFoundError(resource, id string) *OpsError {
	return &OpsError{
		Type:    ErrorTypeNotFound,
		Code:    ErrNotFound.Code,
		Message: fmt.Sprintf("%s not found: %s", resource, id),
		Details: map[string]interface{}{"resource": resource, "id": id},
	}
}

// NewInternalError creates a new internal error wrapping its cause
func NewInternalError(code, message string, cause error) *OpsError {
	return &OpsError{
		Type:    ErrorTypeInternal,
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// NewDependencyError wraps a collaborator store failure. Lookup failures are
// never treated as "not approved" or "inactive"; they surface as external
// errors instead.
func NewDependencyError(store string, cause error) *OpsError {
	return &OpsError{
		Type:    ErrorTypeExternal,
		Code:    ErrDependencyUnavailable.Code,
		Message: fmt.Sprintf("%s store unavailable", store),
		Cause:   cause,
	}
}
