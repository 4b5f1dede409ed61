package generated

import (
	"context"
)

const nextVoucherSeq = `-- name: NextVoucherSeq :one
INSERT INTO voucher_counters (company_id, prefix, seq)
VALUES ($1, $2, 1)
ON CONFLICT (company_id, prefix) DO UPDATE SET seq = voucher_counters.seq + 1
RETURNING seq
`

type NextVoucherSeqParams struct {
	CompanyID string `json:"company_id"`
	Prefix    string `json:"prefix"`
}

func (q *Queries) NextVoucherSeq(ctx context.Context, arg NextVoucherSeqParams) (int64, error) {
	row := q.db.QueryRow(ctx, nextVoucherSeq, arg.CompanyID, arg.Prefix)
	var seq int64
	err := row.Scan(&seq)
	return seq, err
}
