package util

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// NewID returns a ULID stamped with t. Safe for concurrent use.
func NewID(t time.Time) string {
	return ulid.MustNew(ulid.Timestamp(t), ulid.DefaultEntropy()).String()
}
