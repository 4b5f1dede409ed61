package domain

import "github.com/shopspring/decimal"

// BalanceKind names a balance-bearing field.
type BalanceKind string

const (
	BalanceAccount       BalanceKind = "account"
	BalanceClientPresent BalanceKind = "client_present"
	BalanceClientDue     BalanceKind = "client_due"
	BalanceVendor        BalanceKind = "vendor"
)

// lockRank orders kinds so every unit of work locks rows in the same sequence.
func (k BalanceKind) lockRank() int {
	switch k {
	case BalanceAccount:
		return 0
	case BalanceClientPresent, BalanceClientDue:
		return 1
	case BalanceVendor:
		return 2
	default:
		return 3
	}
}

// BalanceRef points at one balance of one entity.
type BalanceRef struct {
	Kind BalanceKind
	ID   string
}

// Less orders refs by kind rank, then by id.
func (r BalanceRef) Less(other BalanceRef) bool {
	if r.Kind.lockRank() != other.Kind.lockRank() {
		return r.Kind.lockRank() < other.Kind.lockRank()
	}
	if r.ID != other.ID {
		return r.ID < other.ID
	}
	return r.Kind < other.Kind
}

// Leg is a signed delta applied to one balance.
type Leg struct {
	Ref   BalanceRef
	Delta decimal.Decimal
}

// AccountLeg builds a leg against an account balance.
func AccountLeg(accountID string, delta decimal.Decimal) Leg {
	return Leg{Ref: BalanceRef{Kind: BalanceAccount, ID: accountID}, Delta: delta}
}

// NegateLegs returns the reversal of legs.
func NegateLegs(legs []Leg) []Leg {
	out := make([]Leg, len(legs))
	for i, l := range legs {
		out[i] = Leg{Ref: l.Ref, Delta: l.Delta.Neg()}
	}
	return out
}

// Refs returns the distinct refs touched by legs.
func Refs(legs []Leg) []BalanceRef {
	seen := make(map[BalanceRef]bool, len(legs))
	refs := make([]BalanceRef, 0, len(legs))
	for _, l := range legs {
		if seen[l.Ref] {
			continue
		}
		seen[l.Ref] = true
		refs = append(refs, l.Ref)
	}
	return refs
}
