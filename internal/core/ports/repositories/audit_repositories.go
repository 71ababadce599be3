package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/inventra/inventra_backend/internal/core/domain"
)

// AuditRecorder writes audit trail records. Record participates in the
// caller's transaction so the audit row commits or rolls back with the
// operation it describes.
type AuditRecorder interface {
	Record(ctx context.Context, tx pgx.Tx, log domain.AuditLog) error
}
