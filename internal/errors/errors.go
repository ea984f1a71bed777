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

// Is matches domain errors by code and message so wrapped copies of a
// predefined error still compare equal to it.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code && e.Message == t.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WrapError wraps an existing error with domain error context
func WrapError(domainErr *DomainError, err error) *DomainError {
	return &DomainError{
		Code:    domainErr.Code,
		Message: domainErr.Message,
		Err:     err,
	}
}

// Error codes
const (
	CodeValidation         = "VALIDATION_ERROR"
	CodeInvalidFormat      = "INVALID_FORMAT"
	CodeMissingAttachment  = "MISSING_ATTACHMENT"
	CodeInvalidAttachment  = "INVALID_ATTACHMENT"
	CodeDuplicateUser      = "DUPLICATE_USER"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeInvalidToken       = "INVALID_TOKEN"
	CodeCodeMismatch       = "CODE_MISMATCH"
	CodeExpiredOrUsed      = "EXPIRED_OR_USED"
	CodeForbidden          = "FORBIDDEN"
	CodeNotFound           = "NOT_FOUND"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
	CodeInternal           = "INTERNAL_ERROR"
)

// Predefined domain errors
var (
	// Registration errors
	ErrMissingAttachment     = NewDomainError(CodeMissingAttachment, "Both front and back images of driver's license are required")
	ErrInvalidAttachmentType = NewDomainError(CodeInvalidAttachment, "Only image files are allowed!")
	ErrAttachmentTooLarge    = NewDomainError(CodeInvalidAttachment, "File is too large")
	ErrNoFileUploaded        = NewDomainError(CodeMissingAttachment, "No file uploaded")
	ErrInvalidLicenseFormat  = NewDomainError(CodeInvalidFormat, "Invalid license number format. Must be in format C09-10-XXXXXX where X is a digit")
	ErrInvalidPhoneFormat    = NewDomainError(CodeInvalidFormat, "Invalid phone number format")

	// Uniqueness errors
	ErrDuplicateMobile  = NewDomainError(CodeDuplicateUser, "User with this mobile number already exists")
	ErrDuplicateLicense = NewDomainError(CodeDuplicateUser, "This driver's license is already registered")
	ErrDuplicateEmail   = NewDomainError(CodeDuplicateUser, "This email is already registered")
	ErrDuplicateUser    = NewDomainError(CodeDuplicateUser, "User with these details already exists")
	ErrMobileTaken      = NewDomainError(CodeDuplicateUser, "Mobile number is already registered to another user")

	// Authentication errors
	ErrInvalidCredentials = NewDomainError(CodeInvalidCredentials, "Invalid credentials")
	ErrMissingToken       = NewDomainError(CodeUnauthorized, "Access denied. No token provided.")
	ErrInvalidToken       = NewDomainError(CodeInvalidToken, "Invalid token")
	ErrForbidden          = NewDomainError(CodeForbidden, "Access forbidden")

	// Verification errors
	ErrVerificationInputRequired = NewDomainError(CodeValidation, "Token and verification code are required")
	ErrCodeMismatch              = NewDomainError(CodeCodeMismatch, "Invalid verification code")
	ErrCodeExpiredOrUsed         = NewDomainError(CodeExpiredOrUsed, "Verification code expired or already used")

	// Resource errors
	ErrUserNotFound    = NewDomainError(CodeNotFound, "User not found")
	ErrCarNotFound     = NewDomainError(CodeNotFound, "Car not found")
	ErrCarUpdateDenied = NewDomainError(CodeForbidden, "Not authorized to update this car")
	ErrCarDeleteDenied = NewDomainError(CodeForbidden, "Not authorized to delete this car")
	ErrInvalidPrice    = NewDomainError(CodeValidation, "Price per day must be greater than zero")

	// Validation errors
	ErrInvalidInput = NewDomainError(CodeValidation, "Invalid request")

	// System errors
	ErrInternal           = NewDomainError(CodeInternal, "Internal server error")
	ErrServiceUnavailable = NewDomainError(CodeServiceUnavailable, "Service temporarily unavailable")
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

// ToHTTPStatus maps domain errors to HTTP status codes
// This should only be used in the handler/presentation layer
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

// domainErrorToHTTPStatus maps specific domain errors to HTTP status codes
func domainErrorToHTTPStatus(err *DomainError) int {
	switch err.Code {
	// 400 Bad Request
	case CodeValidation, CodeInvalidFormat, CodeMissingAttachment, CodeInvalidAttachment,
		CodeDuplicateUser, CodeInvalidToken, CodeCodeMismatch, CodeExpiredOrUsed:
		return http.StatusBadRequest

	// 401 Unauthorized
	case CodeUnauthorized, CodeInvalidCredentials:
		return http.StatusUnauthorized

	// 403 Forbidden
	case CodeForbidden:
		return http.StatusForbidden

	// 404 Not Found
	case CodeNotFound:
		return http.StatusNotFound

	// 503 Service Unavailable
	case CodeServiceUnavailable:
		return http.StatusServiceUnavailable

	default:
		return http.StatusInternalServerError
	}
}

// GetErrorMessage returns the public message of a domain error. Anything
// else is reported as a generic internal error so raw causes never reach
// the client.
func GetErrorMessage(err error) string {
	if err == nil {
		return ""
	}

	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Message
	}

	return ErrInternal.Message
}
