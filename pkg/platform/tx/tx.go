package tx

import (
	"context"
	"database/sql"
)

type sqlTxKey struct{}

// WithTx carries sqlTx to the stores called inside a SQLRunner unit of work.
func WithTx(ctx context.Context, sqlTx *sql.Tx) context.Context {
	if sqlTx == nil {
		return ctx
	}
	return context.WithValue(ctx, sqlTxKey{}, sqlTx)
}

// From returns the transaction opened by an enclosing RunInTx, if any.
func From(ctx context.Context) (*sql.Tx, bool) {
	sqlTx, ok := ctx.Value(sqlTxKey{}).(*sql.Tx)
	return sqlTx, ok && sqlTx != nil
}
