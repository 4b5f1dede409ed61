package domain

import "fmt"

// OperationKind identifies the posting that produced a ledger entry.
type OperationKind string

const (
	KindAdvanceReturn       OperationKind = "advance_return"
	KindBalanceTransfer     OperationKind = "balance_transfer"
	KindExpense             OperationKind = "expense"
	KindInvestment          OperationKind = "investment"
	KindVendorAdvanceReturn OperationKind = "vendor_advance_return"
	KindClientPayment       OperationKind = "client_payment"
)

// OperationKinds lists every posting kind.
var OperationKinds = []OperationKind{
	KindAdvanceReturn,
	KindBalanceTransfer,
	KindExpense,
	KindInvestment,
	KindVendorAdvanceReturn,
	KindClientPayment,
}

// VoucherPrefix returns the voucher prefix of the kind.
func (k OperationKind) VoucherPrefix() string {
	switch k {
	case KindAdvanceReturn:
		return "ADR"
	case KindBalanceTransfer:
		return "BT"
	case KindExpense:
		return "EX"
	case KindInvestment:
		return "IVT"
	case KindVendorAdvanceReturn:
		return "VADR"
	case KindClientPayment:
		return "CP"
	default:
		return "GEN"
	}
}

// FormatVoucher renders a voucher number as PREFIX-0001.
func FormatVoucher(prefix string, seq int64) string {
	return fmt.Sprintf("%s-%04d", prefix, seq)
}
