package apperrors

import "errors"

// Error kinds. Every error returned by the services unwraps to one of these.
var (
	ErrConnectionFailed      = errors.New("connection failed")
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	ErrConflict              = errors.New("conflict")
	ErrReferentialIntegrity  = errors.New("referenced by dependent records")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrPermissionDenied      = errors.New("permission denied")
	ErrValidationFailed      = errors.New("validation failed")
	ErrBadRequest            = errors.New("bad request")
	ErrTokenExpired          = errors.New("token expired")
	ErrTokenInvalid          = errors.New("invalid token")
	ErrInvalidFormat         = errors.New("invalid token format")
)

// User errors
var (
	ErrUserNotFound = NewCustomError(ErrResourceNotFound, "User not found.")
	// Login never tells an unknown username apart from a wrong password.
	ErrBadCredentials        = NewCustomError(ErrInvalidCredentials, "Invalid username or password.")
	ErrUsernameOrEmailExists = NewCustomError(ErrResourceAlreadyExists, "Username or email already exists.")
	ErrAdminUndeletable      = NewCustomError(ErrPermissionDenied, "Admin accounts cannot be deleted.")
)

// Room errors
var (
	ErrRoomNotFound      = NewCustomError(ErrResourceNotFound, "Room not found.")
	ErrRoomAlreadyExists = NewCustomError(ErrResourceAlreadyExists, "Room number already exists.")
	ErrRoomOccupied      = NewCustomError(ErrValidationFailed, "Cannot delete a room that still has students.")
	ErrRoomUnavailable   = NewCustomError(ErrConflict, "Room is full or under maintenance.")
)

// Student errors
var (
	ErrStudentNotFound        = NewCustomError(ErrResourceNotFound, "Student not found.")
	ErrStudentIDAlreadyExists = NewCustomError(ErrResourceAlreadyExists, "Student ID already exists.")
	ErrStudentEmailExists     = NewCustomError(ErrResourceAlreadyExists, "Student email already exists.")
	ErrStudentHasPayments     = NewCustomError(ErrReferentialIntegrity, "Cannot delete: this student has payment records.")
	ErrStudentReferenced      = NewCustomError(ErrReferentialIntegrity, "Cannot change the ID of a student who has payment or attendance records.")
)

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewConflictError creates a new custom error for conflict situations with a message
func NewConflictError(message string) error {
	return &CustomError{
		Err:     ErrConflict,
		Message: message,
	}
}

// NewValidationError creates a validation failure carrying a display message
func NewValidationError(message string) error {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: message,
	}
}

// NewBadRequestError creates a new custom error for bad request with a message
func NewBadRequestError(message string) error {
	return &CustomError{
		Err:     ErrBadRequest,
		Message: message,
	}
}

// Is returns whether target matches any of the errors in errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Code    string
	Details map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// WithCode adds an error code
func (e *CustomError) WithCode(code string) *CustomError {
	e.Code = code
	return e
}

// UserMessage returns a message suitable for direct display.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var custom *CustomError
	if errors.As(err, &custom) && custom.Message != "" {
		return custom.Message
	}

	switch {
	case errors.Is(err, ErrValidationFailed), errors.Is(err, ErrBadRequest):
		return err.Error()
	case errors.Is(err, ErrConnectionFailed):
		return "Database connection failed."
	case errors.Is(err, ErrInvalidCredentials):
		return ErrBadCredentials.Message
	case errors.Is(err, ErrResourceNotFound):
		return "Record not found."
	case errors.Is(err, ErrPermissionDenied):
		return "Permission denied."
	case errors.Is(err, ErrReferentialIntegrity):
		return "The record is referenced by other records."
	}
	return "Unexpected database error."
}
