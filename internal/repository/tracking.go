package repository

import (
	"context"

	"github.com/jmehdipour/email-tracker/internal/model"
)

// TrackingRepository persists one open counter per (customer, tenant) pair.
type TrackingRepository interface {
	// RecordOpen inserts the pair with open_count=1 or increments the existing
	// record by exactly one, in a single atomic store call. last_seen_at is taken
	// from the store's clock inside that call. Failures are *tracking.Error values
	// of kind StoreUnavailable.
	RecordOpen(ctx context.Context, pair model.Pair) (model.Outcome, error)
	// Get returns nil, nil when no record exists for the pair.
	Get(ctx context.Context, pair model.Pair) (*model.TrackingRecord, error)
	Ping(ctx context.Context) error
}
