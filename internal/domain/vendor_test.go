package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestToTagged(t *testing.T) {
	tests := []struct {
		name     string
		signed   decimal.Decimal
		wantType BalanceType
		wantAmt  decimal.Decimal
	}{
		{"positive is advance", decimal.NewFromInt(250), BalanceTypeAdvance, decimal.NewFromInt(250)},
		{"zero is advance", decimal.Zero, BalanceTypeAdvance, decimal.Zero},
		{"negative is due", decimal.NewFromInt(-75), BalanceTypeDue, decimal.NewFromInt(75)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToTagged(tt.signed)
			if got.Type != tt.wantType {
				t.Fatalf("expected type %s, got %s", tt.wantType, got.Type)
			}
			if !got.Amount.Equal(tt.wantAmt) {
				t.Fatalf("expected amount %s, got %s", tt.wantAmt, got.Amount)
			}

			back, err := got.Signed()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !back.Equal(tt.signed) {
				t.Fatalf("expected round trip to %s, got %s", tt.signed, back)
			}
		})
	}
}

func TestTaggedAmount_SignedRejectsBadInput(t *testing.T) {
	if _, err := (TaggedAmount{Type: "credit", Amount: decimal.NewFromInt(1)}).Signed(); err == nil {
		t.Fatal("expected error for unknown type")
	}
	if _, err := (TaggedAmount{Type: BalanceTypeDue, Amount: decimal.NewFromInt(-1)}).Signed(); err == nil {
		t.Fatal("expected error for negative amount")
	}
}
