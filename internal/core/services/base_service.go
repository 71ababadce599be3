package services

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	portsrepo "github.com/inventra/inventra_backend/internal/core/ports/repositories"
)

// runInTx executes fn inside one database transaction. Any error from fn
// rolls the transaction back; posting a document either fully commits or
// leaves no trace.
func runInTx(ctx context.Context, tm portsrepo.TransactionManager, fn func(tx pgx.Tx) error) error {
	tx, err := tm.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		// No-op once the transaction is committed.
		_ = tm.Rollback(ctx, tx)
	}()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tm.Commit(ctx, tx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// uniqueStrings returns the distinct values of in, preserving first-seen order.
func uniqueStrings(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
