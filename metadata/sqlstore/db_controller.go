package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/smartcontractkit/dataset-metadata/pkg/logger"
)

// DB is the subset of *sql.DB and *sql.Tx used by the store.
type DB interface {
	QueryContext(ctx context.Context, q string, args ...any) (*sql.Rows, error)
	ExecContext(ctx context.Context, q string, args ...any) (sql.Result, error)
}

var (
	_ DB = &dbController{}
	_ DB = &txController{}
)

func newDbController(db *sql.DB, lggr logger.Logger) *dbController {
	return &dbController{base: db, lggr: lggr}
}

// dbController logs every statement before running it against the base connection pool.
type dbController struct {
	base *sql.DB
	lggr logger.Logger
}

func (d *dbController) QueryContext(ctx context.Context, q string, args ...any) (*sql.Rows, error) {
	d.lggr.Debugw("Executing query", "query", q, "args", args)
	return d.base.QueryContext(ctx, q, args...)
}

func (d *dbController) ExecContext(ctx context.Context, q string, args ...any) (sql.Result, error) {
	d.lggr.Debugw("Executing statement", "statement", q, "args", args)
	return d.base.ExecContext(ctx, q, args...)
}

// WithTx runs fn inside a transaction. The transaction is committed if fn returns nil and
// rolled back otherwise, including when fn panics.
func (d *dbController) WithTx(ctx context.Context, fn func(ctx context.Context, db DB) error) (err error) {
	tx, err := d.base.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	var txerr error
	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback()
			panic(r)
		} else if txerr != nil {
			err = errors.Join(txerr, tx.Rollback())
		} else {
			err = tx.Commit()
		}
	}()

	txerr = fn(ctx, &txController{tx: tx, lggr: d.lggr})

	return txerr
}

type txController struct {
	tx   *sql.Tx
	lggr logger.Logger
}

func (t *txController) QueryContext(ctx context.Context, q string, args ...any) (*sql.Rows, error) {
	t.lggr.Debugw("Executing query in transaction", "query", q, "args", args)
	return t.tx.QueryContext(ctx, q, args...)
}

func (t *txController) ExecContext(ctx context.Context, q string, args ...any) (sql.Result, error) {
	t.lggr.Debugw("Executing statement in transaction", "statement", q, "args", args)
	return t.tx.ExecContext(ctx, q, args...)
}
