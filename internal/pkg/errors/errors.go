package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError represents an application error with HTTP status code
type AppError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
	Err     error       `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(err error, code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// WithDetails adds details to the error
func (e *AppError) WithDetails(details interface{}) *AppError {
	e.Details = details
	return e
}

// Common errors
var (
	// 400 Bad Request
	ErrBadRequest = New(http.StatusBadRequest, "malformed request")
	ErrValidation = New(http.StatusBadRequest, "validation failed")

	// 401 Unauthorized
	ErrSessionRequired = New(http.StatusUnauthorized, "missing session token")
	ErrSessionExpired  = New(http.StatusUnauthorized, "session expired or unknown")

	// 403 Forbidden
	ErrForbidden   = New(http.StatusForbidden, "access denied")
	ErrNotHost     = New(http.StatusForbidden, "only the host can do that")
	ErrNotYourTurn = New(http.StatusForbidden, "it is not your turn")
	ErrWrongRoom   = New(http.StatusForbidden, "session does not belong to this room")

	// 404 Not Found
	ErrNotFound       = New(http.StatusNotFound, "resource not found")
	ErrRoomNotFound   = New(http.StatusNotFound, "room not found, check the code and try again")
	ErrPlayerNotFound = New(http.StatusNotFound, "player not found")

	// 409 Conflict
	ErrNicknameTaken      = New(http.StatusConflict, "nickname already taken in this room")
	ErrGameAlreadyStarted = New(http.StatusConflict, "the game has already started")
	ErrGameNotStarted     = New(http.StatusConflict, "the game has not started yet")

	// 410 Gone
	ErrRoomClosed = New(http.StatusGone, "this room is no longer active")

	// 422 Unprocessable Entity
	ErrNotEnoughPlayers = New(http.StatusUnprocessableEntity, "need at least 2 players to continue")
	ErrNoQuestions      = New(http.StatusUnprocessableEntity, "no questions available for this category and type")
	ErrQuestionPending  = New(http.StatusUnprocessableEntity, "a question is already active for this turn")
	ErrChoicePending    = New(http.StatusUnprocessableEntity, "truth or dare has not been chosen yet")

	// 429 Too Many Requests
	ErrTooManyRequests = New(http.StatusTooManyRequests, "too many requests, slow down")

	// 500 Internal Server Error
	ErrInternal = New(http.StatusInternalServerError, "internal server error")
)

// Is checks if an error is of a specific type
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// GetHTTPStatus returns the HTTP status code for an error
func GetHTTPStatus(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return http.StatusInternalServerError
}

// GetMessage returns the error message
func GetMessage(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "internal server error"
}
