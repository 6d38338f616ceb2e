package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/SscSPs/ledger_period_engine/internal/apperrors"
	"github.com/stretchr/testify/assert"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{apperrors.NewValidationError("bad"), http.StatusBadRequest},
		{apperrors.NewNotFoundError("account", "a"), http.StatusNotFound},
		{apperrors.ErrForbidden, http.StatusForbidden},
		{fmt.Errorf("head x: %w", apperrors.ErrInsufficientBalance), http.StatusUnprocessableEntity},
		{apperrors.ErrPeriodClosed, http.StatusConflict},
		{apperrors.ErrRequestInFlight, http.StatusConflict},
		{apperrors.ErrReceiptNumberUsed, http.StatusConflict},
		{apperrors.NewInvariantViolation("items do not balance"), http.StatusUnprocessableEntity},
		{apperrors.NewAppError(http.StatusBadRequest, "bad token", nil), http.StatusBadRequest},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, statusFor(tt.err), tt.err.Error())
	}
}
