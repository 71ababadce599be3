package pgsql

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/inventra/inventra_backend/internal/core/domain"
	portsrepo "github.com/inventra/inventra_backend/internal/core/ports/repositories"
)

// PgxAuditRepository writes audit trail records.
type PgxAuditRepository struct {
	BaseRepository
}

// newPgxAuditRepository creates a new audit recorder.
func newPgxAuditRepository(pool *pgxpool.Pool) portsrepo.AuditRecorder {
	return &PgxAuditRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AuditRecorder = (*PgxAuditRepository)(nil)

// Record inserts one audit row. A non-nil tx makes the row commit or roll
// back with the operation it describes; a nil tx writes through the pool for
// operations that run outside a transaction.
func (r *PgxAuditRepository) Record(ctx context.Context, tx pgx.Tx, log domain.AuditLog) error {
	var details []byte
	if log.Details != nil {
		var err error
		details, err = json.Marshal(log.Details)
		if err != nil {
			return fmt.Errorf("failed to marshal audit details: %w", err)
		}
	}

	query := `
		INSERT INTO audit_logs (audit_id, user_id, action, resource_type, resource_id, details, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	args := []any{
		log.AuditID,
		log.UserID,
		string(log.Action),
		log.ResourceType,
		log.ResourceID,
		details,
		log.CreatedAt,
	}

	var err error
	if tx != nil {
		_, err = tx.Exec(ctx, query, args...)
	} else {
		_, err = r.Pool.Exec(ctx, query, args...)
	}
	if err != nil {
		return fmt.Errorf("failed to insert audit log: %w", err)
	}
	return nil
}
