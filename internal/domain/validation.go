package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Validation constants
const (
	MaxNoteLength    = 1024
	MaxPostingAmount = "1000000000000" // 1 trillion
	MinPostingAmount = "0.01"

	// AmountScale is the number of decimal places the store keeps.
	AmountScale = 2
)

var (
	minAmount = decimal.RequireFromString(MinPostingAmount)
	maxAmount = decimal.RequireFromString(MaxPostingAmount)
)

// ValidateAmount validates a posting amount
func ValidateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return NewInvalidAmount("amount must be positive")
	}

	if amount.LessThan(minAmount) {
		return NewInvalidAmount("minimum amount is %s", MinPostingAmount)
	}

	if amount.GreaterThan(maxAmount) {
		return NewInvalidAmount("maximum amount is %s", MaxPostingAmount)
	}

	return ValidateScale(amount)
}

// ValidateScale rejects values with more than AmountScale decimal places.
func ValidateScale(amount decimal.Decimal) error {
	if !amount.Equal(amount.Truncate(AmountScale)) {
		return NewInvalidAmount("amount %s has more than %d decimal places", amount, AmountScale)
	}
	return nil
}

// ValidateNote limits free-text notes
func ValidateNote(note string) error {
	if len(note) > MaxNoteLength {
		return NewValidation("note exceeds %d characters", MaxNoteLength)
	}
	return nil
}

// RequireID rejects blank reference ids
func RequireID(field, id string) error {
	if strings.TrimSpace(id) == "" {
		return NewValidation("missing reference id: %s", field)
	}
	return nil
}
