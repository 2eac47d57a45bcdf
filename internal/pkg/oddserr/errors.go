package oddserr

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/xtding233/roll-odds/internal/odds"
)

const (
	CodeNotFound       = "NOT_FOUND"
	CodeInvalidRequest = "INVALID_REQUEST"
	CodeUnreachable    = "TARGET_UNREACHABLE"
	CodeInternalError  = "INTERNAL_ERROR"
)

var (
	// ErrNotFound is returned when no route matches.
	ErrNotFound = New(fiber.StatusNotFound, CodeNotFound, "resource not found with given parameters")

	// ErrInvalidReq is returned for any malformed or out-of-range calculator input.
	// The message is the one a player sees, so it stays generic on purpose.
	ErrInvalidReq = New(fiber.StatusBadRequest, CodeInvalidRequest, odds.ValidationMessage)

	// ErrUnreachable is returned when the gold planner cannot reach the target.
	ErrUnreachable = New(fiber.StatusUnprocessableEntity, CodeUnreachable, "target chance is not reachable within the gold limit")

	// ErrInternalError is returned when an internal error occurs.
	ErrInternalError = New(fiber.StatusInternalServerError, CodeInternalError, "internal server error occurred")
)

type Extras map[string]any

type OddsError struct {
	StatusCode int    `json:"-"`
	ErrorCode  string `json:"code"`
	Message    string `json:"message"`
	Extras     *Extras
}

func New(statusCode int, errorCode string, message string) *OddsError {
	return &OddsError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
	}
}

func (e OddsError) Msg(format string, parts ...any) *OddsError {
	e.Message = fmt.Sprintf(format, parts...)
	return &e
}

func (e OddsError) WithExtras(extras Extras) *OddsError {
	e.Extras = &extras
	return &e
}

func (e *OddsError) Error() string {
	return fmt.Sprintf("%s: %s", e.ErrorCode, e.Message)
}
