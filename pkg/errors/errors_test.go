package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategoryOf(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Category
	}{
		{name: "invalid input", err: WrapInvalidInput("name is required"), expected: CategoryValidation},
		{name: "invalid amount", err: WrapInvalidPaymentAmount("-1"), expected: CategoryValidation},
		{name: "invalid date", err: WrapInvalidDate("tomorrow"), expected: CategoryValidation},
		{name: "junta not found", err: WrapJuntaNotFound("j-1"), expected: CategoryNotFound},
		{name: "turn not found", err: WrapTurnNotFound("2026-01-01"), expected: CategoryNotFound},
		{name: "report not found", err: WrapReportNotFound("j-1"), expected: CategoryNotFound},
		{name: "day closed", err: WrapDayClosed("2026-01-01"), expected: CategoryConflict},
		{name: "archive twice", err: WrapJuntaNotArchivable("j-1", "ARCHIVED"), expected: CategoryConflict},
		{name: "second active", err: WrapActiveJuntaExists("j-1"), expected: CategoryConflict},
		{name: "wrapped conflict", err: fmt.Errorf("record payment: %w", WrapDayClosed("2026-01-01")), expected: CategoryConflict},
		{name: "database", err: WrapDatabaseError(errors.New("connection refused")), expected: CategoryUnexpected},
		{name: "plain", err: errors.New("boom"), expected: CategoryUnexpected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CategoryOf(tt.err))
		})
	}
}

func TestBusinessError_Unwrap(t *testing.T) {
	err := WrapDayAlreadyClosed("2026-02-10")

	assert.True(t, errors.Is(err, ErrDayAlreadyClosed))
	assert.Equal(t, "DAY_ALREADY_CLOSED: Day 2026-02-10 is already closed (day is already closed)", err.Error())

	var be *BusinessError
	assert.True(t, errors.As(fmt.Errorf("close: %w", err), &be))
	assert.Equal(t, ErrCodeDayAlreadyClosed, be.Code)
}

func TestBusinessError_NoCause(t *testing.T) {
	err := NewBusinessError("X", "something", nil)
	assert.Equal(t, "X: something", err.Error())
	assert.Nil(t, err.Unwrap())
}
