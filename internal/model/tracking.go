package model

import "time"

// Outcome tells whether an open event created a record or updated an existing one.
type Outcome string

const (
	OutcomeCreated Outcome = "created"
	OutcomeUpdated Outcome = "updated"
)

func (o Outcome) String() string { return string(o) }

// Pair identifies one tracking subject.
type Pair struct {
	CustomerID string
	TenantID   string
}

// TrackingRecord is the DB entity persisted in the email tracking table.
type TrackingRecord struct {
	ID         string    `db:"id"           json:"id"`
	CustomerID string    `db:"customer_id"  json:"customer_id"`
	TenantID   string    `db:"tenant_id"    json:"tenant_id"`
	OpenCount  int64     `db:"open_count"   json:"open_count"`
	LastSeenAt time.Time `db:"last_seen_at" json:"last_seen_at"`
	CreatedAt  time.Time `db:"created_at"   json:"created_at"`
}
