package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PostingHeader holds the fields every posting record shares.
type PostingHeader struct {
	ID        string
	CompanyID TenantID
	VoucherNo string
	Date      time.Time
	Note      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Head returns the header itself so embedding records satisfy Posting.
func (h *PostingHeader) Head() *PostingHeader {
	return h
}

// Posting is a recorded financial operation whose effect on balances is
// described by its legs. Reversing a posting applies the negated legs.
type Posting interface {
	Kind() OperationKind
	Head() *PostingHeader
	Legs() []Leg
	// Parties returns the client and vendor the ledger entries refer to.
	Parties() (clientID, vendorID string)
}

// Balances is a set of post-operation balances keyed by ref, used to fill
// display fields on returned records.
type Balances map[BalanceRef]decimal.Decimal

// Clone returns a copy of b.
func (b Balances) Clone() Balances {
	out := make(Balances, len(b))
	for ref, v := range b {
		out[ref] = v
	}
	return out
}

// Apply adds the legs' deltas to b in place.
func (b Balances) Apply(legs []Leg) {
	for _, l := range legs {
		b[l.Ref] = b[l.Ref].Add(l.Delta)
	}
}
