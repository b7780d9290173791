package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// DomainError represents a domain-specific error with a code and message
type DomainError struct {
	Code    string
	Message string
	Err     error // underlying error for wrapping
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is and errors.As
func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is matches on the domain code so wrapped copies compare equal to
// their sentinel.
func (e *DomainError) Is(target error) bool {
	var t *DomainError
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WrapError wraps an existing error with a domain code and a
// user-facing message
func WrapError(err error, code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Predefined domain errors
var (
	// Credential / login errors. Invalid email, wrong role, bad password
	// and unset password all collapse into ErrInvalidCredentials at the
	// API boundary; logs carry the distinction.
	ErrInvalidCredentials      = NewDomainError("INVALID_CREDENTIALS", "invalid credentials")
	ErrInvalidAdminCredentials = NewDomainError("INVALID_ADMIN_CREDENTIALS", "invalid admin credentials")
	ErrUserInactive            = NewDomainError("USER_INACTIVE", "user account is inactive")

	// OTP and reset flows
	ErrInvalidOTP        = NewDomainError("INVALID_OTP", "invalid or expired OTP")
	ErrInvalidResetToken = NewDomainError("INVALID_RESET_TOKEN", "invalid or expired token")
	ErrPasswordMismatch  = NewDomainError("PASSWORD_MISMATCH", "passwords do not match")

	// Token verification
	ErrUnauthorized     = NewDomainError("UNAUTHORIZED", "unauthorized")
	ErrMalformedToken   = NewDomainError("MALFORMED_TOKEN", "malformed or unsigned token")
	ErrTokenExpired     = NewDomainError("TOKEN_EXPIRED", "token has expired")
	ErrIssuerMismatch   = NewDomainError("ISSUER_MISMATCH", "token issuer mismatch")
	ErrAudienceMismatch = NewDomainError("AUDIENCE_MISMATCH", "token audience mismatch")
	ErrForbidden        = NewDomainError("FORBIDDEN", "insufficient role")

	// Entity errors
	ErrUserNotFound         = NewDomainError("USER_NOT_FOUND", "user not found")
	ErrCourseNotFound       = NewDomainError("COURSE_NOT_FOUND", "course not found")
	ErrModuleNotFound       = NewDomainError("MODULE_NOT_FOUND", "module not found")
	ErrEnrollmentNotFound   = NewDomainError("ENROLLMENT_NOT_FOUND", "enrollment not found")
	ErrFeedbackNotFound     = NewDomainError("FEEDBACK_NOT_FOUND", "feedback not found")
	ErrNotificationNotFound = NewDomainError("NOTIFICATION_NOT_FOUND", "notification not found")
	ErrEmailExists          = NewDomainError("EMAIL_EXISTS", "email already registered")
	ErrAlreadyEnrolled      = NewDomainError("ALREADY_ENROLLED", "already enrolled in this course")

	// Validation errors
	ErrInvalidInput = NewDomainError("INVALID_INPUT", "invalid input")
	ErrInvalidRole  = NewDomainError("INVALID_ROLE", "invalid role")

	// System errors
	ErrInternal = NewDomainError("INTERNAL_ERROR", "internal server error")
)

// IsDomainError checks if an error is a domain error
func IsDomainError(err error) bool {
	var domainErr *DomainError
	return errors.As(err, &domainErr)
}

// GetDomainError extracts the domain error from an error
func GetDomainError(err error) *DomainError {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return nil
}

// ToHTTPStatus maps domain errors to HTTP status codes.
// This should only be used in the handler/presentation layer.
func ToHTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}

	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErrorToHTTPStatus(domainErr)
	}

	return http.StatusInternalServerError
}

func domainErrorToHTTPStatus(err *DomainError) int {
	switch err.Code {
	// 400 Bad Request
	case "INVALID_INPUT", "PASSWORD_MISMATCH", "INVALID_ROLE":
		return http.StatusBadRequest

	// 401 Unauthorized
	case "UNAUTHORIZED", "INVALID_CREDENTIALS", "INVALID_ADMIN_CREDENTIALS",
		"USER_INACTIVE", "INVALID_OTP", "INVALID_RESET_TOKEN",
		"MALFORMED_TOKEN", "TOKEN_EXPIRED", "ISSUER_MISMATCH", "AUDIENCE_MISMATCH":
		return http.StatusUnauthorized

	// 403 Forbidden
	case "FORBIDDEN":
		return http.StatusForbidden

	// 404 Not Found
	case "USER_NOT_FOUND", "COURSE_NOT_FOUND", "MODULE_NOT_FOUND",
		"ENROLLMENT_NOT_FOUND", "FEEDBACK_NOT_FOUND", "NOTIFICATION_NOT_FOUND":
		return http.StatusNotFound

	// 409 Conflict
	case "EMAIL_EXISTS", "ALREADY_ENROLLED":
		return http.StatusConflict

	// 500 Internal Server Error (default)
	default:
		return http.StatusInternalServerError
	}
}

// GetErrorMessage safely extracts a user-facing error message
func GetErrorMessage(err error) string {
	if err == nil {
		return ""
	}

	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Message
	}

	return err.Error()
}
