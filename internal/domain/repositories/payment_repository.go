package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/lawithanx/jcorp/internal/domain/entities"
)

// PaymentRepository defines payment record persistence. Every operation is
// scoped to one record; the transaction hash is unique at the storage level.
type PaymentRepository interface {
	// GetOrCreateByHash returns the record for the given normalized hash,
	// creating it from defaults when absent. The boolean reports creation.
	// Two concurrent calls for the same hash resolve to the same record.
	GetOrCreateByHash(ctx context.Context, hash string, defaults *entities.Payment) (*entities.Payment, bool, error)

	// GetByHash returns the record for the given normalized hash.
	GetByHash(ctx context.Context, hash string) (*entities.Payment, error)

	// GetByDownloadToken resolves a record by exact token match.
	GetByDownloadToken(ctx context.Context, token string) (*entities.Payment, error)

	// Create inserts a fully formed record (used by the fiat placeholder).
	Create(ctx context.Context, payment *entities.Payment) error

	// UpdateObservation persists the fields refreshed on every
	// verification attempt: sender, amounts, confirmations, status and,
	// on first confirmation, verifiedAt.
	UpdateObservation(ctx context.Context, payment *entities.Payment) error

	// AssignDownloadToken sets the token and expiry only while the record
	// has no token yet. Returns true when this call won the issuance.
	AssignDownloadToken(ctx context.Context, id uuid.UUID, token string, expiresAt time.Time) (bool, error)
}
