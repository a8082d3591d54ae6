package errors

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	// validation
	ErrInvalidInput         = errors.New("invalid input")
	ErrInvalidPaymentAmount = errors.New("invalid payment amount")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	ErrInvalidDate          = errors.New("invalid date")

	// not found
	ErrJuntaNotFound       = errors.New("junta not found")
	ErrTurnNotFound        = errors.New("no turn for this date")
	ErrParticipantNotFound = errors.New("participant not in junta")
	ErrReportNotFound      = errors.New("archive report not found")

	// state conflict
	ErrDayClosed             = errors.New("day is closed")
	ErrDayAlreadyClosed      = errors.New("day is already closed")
	ErrDayAlreadyOpen        = errors.New("day is already open")
	ErrJuntaNotActive        = errors.New("only active juntas can be modified")
	ErrActiveJuntaExists     = errors.New("an active junta already exists")
	ErrTurnsAlreadyScheduled = errors.New("turns already scheduled")
	ErrTurnAlreadyPaidOut    = errors.New("turn already paid out")
)

// BusinessError represents a business logic error
type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

// NewBusinessError creates a new business error
func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Error codes
const (
	ErrCodeInvalidInput         = "INVALID_INPUT"
	ErrCodeInvalidPaymentAmount = "INVALID_PAYMENT_AMOUNT"
	ErrCodeInvalidPaymentMethod = "INVALID_PAYMENT_METHOD"
	ErrCodeInvalidDate          = "INVALID_DATE"
	ErrCodeJuntaNotFound        = "JUNTA_NOT_FOUND"
	ErrCodeTurnNotFound         = "TURN_NOT_FOUND"
	ErrCodeParticipantNotFound  = "PARTICIPANT_NOT_FOUND"
	ErrCodeReportNotFound       = "REPORT_NOT_FOUND"
	ErrCodeDayClosed            = "DAY_CLOSED"
	ErrCodeDayAlreadyClosed     = "DAY_ALREADY_CLOSED"
	ErrCodeDayAlreadyOpen       = "DAY_ALREADY_OPEN"
	ErrCodeJuntaNotActive       = "JUNTA_NOT_ACTIVE"
	ErrCodeActiveJuntaExists    = "ACTIVE_JUNTA_EXISTS"
	ErrCodeTurnsScheduled       = "TURNS_ALREADY_SCHEDULED"
	ErrCodeTurnAlreadyPaidOut   = "TURN_ALREADY_PAID_OUT"
	ErrCodeDatabaseError        = "DATABASE_ERROR"
	ErrCodeCacheError           = "CACHE_ERROR"
)

// Category groups errors the way callers branch on them.
type Category int

const (
	CategoryUnexpected Category = iota
	CategoryValidation
	CategoryNotFound
	CategoryConflict
)

// CategoryOf classifies err. Anything unknown is unexpected.
func CategoryOf(err error) Category {
	switch {
	case errors.Is(err, ErrInvalidInput),
		errors.Is(err, ErrInvalidPaymentAmount),
		errors.Is(err, ErrInvalidPaymentMethod),
		errors.Is(err, ErrInvalidDate):
		return CategoryValidation
	case errors.Is(err, ErrJuntaNotFound),
		errors.Is(err, ErrTurnNotFound),
		errors.Is(err, ErrParticipantNotFound),
		errors.Is(err, ErrReportNotFound):
		return CategoryNotFound
	case errors.Is(err, ErrDayClosed),
		errors.Is(err, ErrDayAlreadyClosed),
		errors.Is(err, ErrDayAlreadyOpen),
		errors.Is(err, ErrJuntaNotActive),
		errors.Is(err, ErrActiveJuntaExists),
		errors.Is(err, ErrTurnsAlreadyScheduled),
		errors.Is(err, ErrTurnAlreadyPaidOut):
		return CategoryConflict
	default:
		return CategoryUnexpected
	}
}

// Wrap common errors with business context

func WrapInvalidInput(message string) *BusinessError {
	return NewBusinessError(ErrCodeInvalidInput, message, ErrInvalidInput)
}

func WrapInvalidPaymentAmount(amount string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidPaymentAmount,
		fmt.Sprintf("Invalid payment amount: %s", amount),
		ErrInvalidPaymentAmount,
	)
}

func WrapInvalidPaymentMethod(method string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidPaymentMethod,
		fmt.Sprintf("Unknown payment method %q", method),
		ErrInvalidPaymentMethod,
	)
}

func WrapInvalidDate(value string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidDate,
		fmt.Sprintf("Invalid date %q, expected YYYY-MM-DD", value),
		ErrInvalidDate,
	)
}

func WrapJuntaNotFound(juntaID string) *BusinessError {
	return NewBusinessError(
		ErrCodeJuntaNotFound,
		fmt.Sprintf("Junta with ID %s not found", juntaID),
		ErrJuntaNotFound,
	)
}

func WrapNoActiveJunta() *BusinessError {
	return NewBusinessError(ErrCodeJuntaNotFound, "There is no active junta", ErrJuntaNotFound)
}

func WrapTurnNotFound(date string) *BusinessError {
	return NewBusinessError(
		ErrCodeTurnNotFound,
		fmt.Sprintf("No turn scheduled for %s", date),
		ErrTurnNotFound,
	)
}

func WrapParticipantNotFound(shareID string) *BusinessError {
	return NewBusinessError(
		ErrCodeParticipantNotFound,
		fmt.Sprintf("Participant %s does not belong to this junta", shareID),
		ErrParticipantNotFound,
	)
}

func WrapReportNotFound(juntaID string) *BusinessError {
	return NewBusinessError(
		ErrCodeReportNotFound,
		fmt.Sprintf("Junta %s has no archive report", juntaID),
		ErrReportNotFound,
	)
}

func WrapDayClosed(date string) *BusinessError {
	return NewBusinessError(
		ErrCodeDayClosed,
		fmt.Sprintf("Day %s is closed", date),
		ErrDayClosed,
	)
}

func WrapDayAlreadyClosed(date string) *BusinessError {
	return NewBusinessError(
		ErrCodeDayAlreadyClosed,
		fmt.Sprintf("Day %s is already closed", date),
		ErrDayAlreadyClosed,
	)
}

func WrapDayAlreadyOpen(date string) *BusinessError {
	return NewBusinessError(
		ErrCodeDayAlreadyOpen,
		fmt.Sprintf("Day %s is already open", date),
		ErrDayAlreadyOpen,
	)
}

func WrapJuntaNotActive(juntaID, status string) *BusinessError {
	return NewBusinessError(
		ErrCodeJuntaNotActive,
		fmt.Sprintf("Junta %s is %s; only active juntas can be modified", juntaID, status),
		ErrJuntaNotActive,
	)
}

func WrapJuntaNotArchivable(juntaID, status string) *BusinessError {
	return NewBusinessError(
		ErrCodeJuntaNotActive,
		fmt.Sprintf("Junta %s is %s; only active juntas can be archived", juntaID, status),
		ErrJuntaNotActive,
	)
}

func WrapActiveJuntaExists(juntaID string) *BusinessError {
	return NewBusinessError(
		ErrCodeActiveJuntaExists,
		fmt.Sprintf("Junta %s is still active; archive or cancel it first", juntaID),
		ErrActiveJuntaExists,
	)
}

func WrapTurnsAlreadyScheduled(juntaID string) *BusinessError {
	return NewBusinessError(
		ErrCodeTurnsScheduled,
		fmt.Sprintf("Junta %s already has turns", juntaID),
		ErrTurnsAlreadyScheduled,
	)
}

func WrapTurnAlreadyPaidOut(date string) *BusinessError {
	return NewBusinessError(
		ErrCodeTurnAlreadyPaidOut,
		fmt.Sprintf("Turn for %s was already paid out", date),
		ErrTurnAlreadyPaidOut,
	)
}

func WrapDatabaseError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeDatabaseError,
		"database operation failed",
		err,
	)
}

func WrapCacheError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeCacheError,
		"Cache operation failed",
		err,
	)
}
