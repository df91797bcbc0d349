package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors used to classify failures across the service layer.
// Handlers map these to HTTP statuses; callers test them with the Is*
// predicates below instead of string matching.
var (
	ErrValidation       = errors.New("validation_error")
	ErrNotFound         = errors.New("not_found")
	ErrAlreadyExists    = errors.New("already_exists")
	ErrPermissionDenied = errors.New("permission_denied")
	ErrDatabase         = errors.New("database_error")
	ErrHTTPClient       = errors.New("http_client_error")
	ErrInvalidOperation = errors.New("invalid_operation")
	ErrSystem           = errors.New("system_error")
	ErrInternal         = errors.New("internal_error")
)

// InternalError is the rich error type produced by the builder API. It keeps
// the low-level cause for logs, a caller-safe hint, optional reportable
// details, and a sentinel mark used for classification.
type InternalError struct {
	mark    error
	message string
	hint    string
	details map[string]interface{}
	cause   error
}

func (e *InternalError) Error() string {
	if e.cause != nil && e.message != "" {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	if e.cause != nil {
		return e.cause.Error()
	}
	return e.message
}

// Unwrap exposes both the cause chain and the sentinel mark so that
// errors.Is works against either.
func (e *InternalError) Unwrap() []error {
	var errs []error
	if e.cause != nil {
		errs = append(errs, e.cause)
	}
	if e.mark != nil {
		errs = append(errs, e.mark)
	}
	return errs
}

// Hint returns the caller-safe hint, falling back to the message.
func (e *InternalError) Hint() string {
	if e.hint != "" {
		return e.hint
	}
	return e.message
}

// ReportableDetails returns details safe to expose to the API caller.
func (e *InternalError) ReportableDetails() map[string]interface{} {
	return e.details
}

// Mark returns the sentinel this error was marked with, or ErrInternal.
func (e *InternalError) Mark() error {
	if e.mark != nil {
		return e.mark
	}
	return ErrInternal
}

func IsValidation(err error) bool       { return errors.Is(err, ErrValidation) }
func IsNotFound(err error) bool         { return errors.Is(err, ErrNotFound) }
func IsAlreadyExists(err error) bool    { return errors.Is(err, ErrAlreadyExists) }
func IsPermissionDenied(err error) bool { return errors.Is(err, ErrPermissionDenied) }
func IsDatabase(err error) bool         { return errors.Is(err, ErrDatabase) }
func IsHTTPClient(err error) bool       { return errors.Is(err, ErrHTTPClient) }
func IsInvalidOperation(err error) bool { return errors.Is(err, ErrInvalidOperation) }
