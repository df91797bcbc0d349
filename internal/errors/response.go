package errors

import (
	"errors"
	"net/http"
)

// ErrorDetail is the caller-facing body of an error response.
type ErrorDetail struct {
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// ErrorResponse is the single error envelope returned by every endpoint.
type ErrorResponse struct {
	Success bool        `json:"success"`
	Error   ErrorDetail `json:"error"`
}

// NewErrorResponse converts any error into the caller-facing envelope.
// Internal messages and causes never leak; only the hint and reportable
// details do.
func NewErrorResponse(err error) *ErrorResponse {
	var ie *InternalError
	if errors.As(err, &ie) {
		return &ErrorResponse{
			Success: false,
			Error: ErrorDetail{
				Message: ie.Hint(),
				Details: ie.ReportableDetails(),
			},
		}
	}
	return &ErrorResponse{
		Success: false,
		Error:   ErrorDetail{Message: "An unexpected error occurred"},
	}
}

// HTTPStatusFromErr maps a classified error onto the HTTP status the
// controller layer should respond with.
func HTTPStatusFromErr(err error) int {
	switch {
	case IsValidation(err):
		return http.StatusBadRequest
	case IsNotFound(err):
		return http.StatusNotFound
	case IsAlreadyExists(err):
		return http.StatusConflict
	case IsPermissionDenied(err):
		return http.StatusForbidden
	case IsInvalidOperation(err):
		return http.StatusBadRequest
	case IsHTTPClient(err):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
