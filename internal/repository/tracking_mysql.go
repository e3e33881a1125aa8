package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmehdipour/email-tracker/internal/model"
	"github.com/jmehdipour/email-tracker/internal/tracking"
	"github.com/jmehdipour/email-tracker/internal/util"
	"github.com/jmoiron/sqlx"
)

// MySQLTrackingRepository relies on UNIQUE(customer_id, tenant_id) and
// INSERT ... ON DUPLICATE KEY UPDATE for atomicity.
type MySQLTrackingRepository struct {
	db *sqlx.DB

	upsertQ string
	getQ    string
}

var _ TrackingRepository = (*MySQLTrackingRepository)(nil)

func NewMySQLTrackingRepository(db *sqlx.DB, table string) *MySQLTrackingRepository {
	return &MySQLTrackingRepository{
		db: db,
		// MySQL reports 1 affected row for the insert branch and 2 for the update branch.
		// Timestamps come from the server clock, evaluated under the row lock.
		upsertQ: fmt.Sprintf(`
			INSERT INTO %s
			    (id, customer_id, tenant_id, open_count, last_seen_at,      created_at)
			VALUES
			    (?,  ?,           ?,         1,          UTC_TIMESTAMP(6),  UTC_TIMESTAMP(6))
			ON DUPLICATE KEY UPDATE
			    open_count   = open_count + 1,
			    last_seen_at = GREATEST(last_seen_at, UTC_TIMESTAMP(6))
		`, table),
		getQ: fmt.Sprintf(`
			SELECT id, customer_id, tenant_id, open_count, last_seen_at, created_at
			  FROM %s
			 WHERE customer_id = ? AND tenant_id = ?
			 LIMIT 1
		`, table),
	}
}

func (r *MySQLTrackingRepository) RecordOpen(ctx context.Context, pair model.Pair) (model.Outcome, error) {
	res, err := r.db.ExecContext(ctx, r.upsertQ, util.NewID(time.Now()), pair.CustomerID, pair.TenantID)
	if err != nil {
		return "", tracking.StoreUnavailable("upsert tracking record", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return "", tracking.StoreUnavailable("upsert tracking record", err)
	}

	switch n {
	case 1:
		return model.OutcomeCreated, nil
	case 2:
		return model.OutcomeUpdated, nil
	default:
		return "", tracking.StoreUnavailable("upsert tracking record",
			fmt.Errorf("unexpected affected rows: %d", n))
	}
}

func (r *MySQLTrackingRepository) Get(ctx context.Context, pair model.Pair) (*model.TrackingRecord, error) {
	var rec model.TrackingRecord
	err := r.db.GetContext(ctx, &rec, r.getQ, pair.CustomerID, pair.TenantID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, tracking.StoreUnavailable("get tracking record", err)
	}
	rec.LastSeenAt = rec.LastSeenAt.UTC()
	rec.CreatedAt = rec.CreatedAt.UTC()
	return &rec, nil
}

func (r *MySQLTrackingRepository) Ping(ctx context.Context) error {
	if err := r.db.PingContext(ctx); err != nil {
		return tracking.StoreUnavailable("ping mysql", err)
	}
	return nil
}
