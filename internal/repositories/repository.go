package repositories

import (
	"context"

	"github.com/ArowuTest/voting-whitelist-loader/internal/models"
)

// WhitelistRepository defines the interface for Aadhaar whitelist operations
type WhitelistRepository interface {
	// EnsureIndexes creates the unique index on the Aadhaar number if missing.
	EnsureIndexes(ctx context.Context) error
	// InsertIfAbsent stores entry unless a record with the same Aadhaar
	// number exists. It reports whether a new record was created.
	InsertIfAbsent(ctx context.Context, entry *models.WhitelistEntry) (bool, error)
	FindByAadhaar(ctx context.Context, aadhaarNumber string) (*models.WhitelistEntry, error)
	Count(ctx context.Context) (int64, error)
}
