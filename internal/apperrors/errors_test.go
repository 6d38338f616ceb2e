package apperrors_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/SscSPs/ledger_period_engine/internal/apperrors"
	"github.com/stretchr/testify/assert"
)

func TestSentinelHierarchy(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		target error
	}{
		{"duplicate is a conflict", apperrors.ErrDuplicate, apperrors.ErrConflict},
		{"used receipt is a conflict", apperrors.ErrReceiptNumberUsed, apperrors.ErrConflict},
		{"exhausted booklet is a conflict", apperrors.ErrBookletExhausted, apperrors.ErrConflict},
		{"closed period is a conflict", apperrors.ErrPeriodClosed, apperrors.ErrConflict},
		{"out of sequence close is a conflict", apperrors.ErrPeriodOutOfSequence, apperrors.ErrConflict},
		{"wrapped twice", fmt.Errorf("posting: %w", apperrors.ErrPeriodNotOpen), apperrors.ErrConflict},
		{"not found helper", apperrors.NewNotFoundError("ledger head", "abc"), apperrors.ErrNotFound},
		{"validation helper", apperrors.NewValidationError("amount %s", "-1"), apperrors.ErrValidation},
		{"invariant helper", apperrors.NewInvariantViolation("split"), apperrors.ErrInvariantViolation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, errors.Is(tt.err, tt.target))
		})
	}
}

func TestAppErrorUnwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := apperrors.NewAppError(500, "failed to commit transaction", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "failed to commit transaction: connection reset", err.Error())
	assert.False(t, errors.Is(err, apperrors.ErrConflict))
}
