package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/tanish-jain-225/SilverCare-AI/internal/db"
)

// FailOnNthExecUoW runs transactions like the real UnitOfWork but makes the
// FailOn-th write return Err, so tests can check a multi-write operation
// leaves nothing behind. Writes are counted from 1; reads are never counted.
// When Match is set only statements containing it are counted.
type FailOnNthExecUoW struct {
	DB     *sql.DB
	FailOn int
	Match  string
	Err    error

	// Execs is the number of counted writes seen by the last transaction.
	Execs int
}

func (u *FailOnNthExecUoW) WithinTx(ctx context.Context, fn db.TxFunc) error {
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	faulty := &faultyTx{DBTX: tx, uow: u}
	u.Execs = 0
	if err := fn(ctx, faulty); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

type faultyTx struct {
	db.DBTX
	uow *FailOnNthExecUoW
}

func (f *faultyTx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if f.uow.Match == "" || strings.Contains(query, f.uow.Match) {
		f.uow.Execs++
		if f.uow.Execs == f.uow.FailOn {
			return nil, f.uow.Err
		}
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
