package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jmehdipour/email-tracker/internal/model"
	"github.com/jmehdipour/email-tracker/internal/tracking"
	"github.com/jmehdipour/email-tracker/internal/util"
	"github.com/redis/go-redis/v9"
)

// recordOpenScript runs as one unit on the server and stamps last_seen_at
// with the server's TIME.
// KEYS[1] pair hash; ARGV: customer_id, tenant_id, id.
// Returns {created (0|1), open_count}.
var recordOpenScript = redis.NewScript(`
if redis.replicate_commands then redis.replicate_commands() end
local t = redis.call('TIME')
local now = tonumber(t[1]) * 1000000 + tonumber(t[2])
local created = redis.call('HSETNX', KEYS[1], 'open_count', '0')
local count = redis.call('HINCRBY', KEYS[1], 'open_count', '1')
local prev = tonumber(redis.call('HGET', KEYS[1], 'last_seen_at') or '0')
if now > prev then
  redis.call('HSET', KEYS[1], 'last_seen_at', string.format('%d', now))
end
if created == 1 then
  redis.call('HSET', KEYS[1], 'customer_id', ARGV[1], 'tenant_id', ARGV[2], 'id', ARGV[3], 'created_at', string.format('%d', now))
end
return {created, count}
`)

// RedisTrackingRepository keeps one hash per pair.
type RedisTrackingRepository struct {
	rdb       *redis.Client
	keyPrefix string
}

var _ TrackingRepository = (*RedisTrackingRepository)(nil)

func NewRedisTrackingRepository(rdb *redis.Client, keyPrefix string) *RedisTrackingRepository {
	return &RedisTrackingRepository{rdb: rdb, keyPrefix: keyPrefix}
}

// key length-prefixes the tenant so that ids containing ':' cannot make two
// pairs share a hash.
func (r *RedisTrackingRepository) key(pair model.Pair) string {
	return fmt.Sprintf("%s%d:%s:%s", r.keyPrefix, len(pair.TenantID), pair.TenantID, pair.CustomerID)
}

func (r *RedisTrackingRepository) RecordOpen(ctx context.Context, pair model.Pair) (model.Outcome, error) {
	res, err := recordOpenScript.Run(ctx, r.rdb, []string{r.key(pair)},
		pair.CustomerID, pair.TenantID, util.NewID(time.Now()),
	).Int64Slice()
	if err != nil {
		return "", tracking.StoreUnavailable("record open script", err)
	}
	if len(res) != 2 {
		return "", tracking.StoreUnavailable("record open script", fmt.Errorf("unexpected reply %v", res))
	}
	if res[0] == 1 {
		return model.OutcomeCreated, nil
	}
	return model.OutcomeUpdated, nil
}

func (r *RedisTrackingRepository) Get(ctx context.Context, pair model.Pair) (*model.TrackingRecord, error) {
	h, err := r.rdb.HGetAll(ctx, r.key(pair)).Result()
	if err != nil {
		return nil, tracking.StoreUnavailable("get tracking record", err)
	}
	if len(h) == 0 {
		return nil, nil
	}

	rec := &model.TrackingRecord{
		ID:         h["id"],
		CustomerID: h["customer_id"],
		TenantID:   h["tenant_id"],
	}
	var perr error
	parse := func(field string) int64 {
		n, err := strconv.ParseInt(h[field], 10, 64)
		if err != nil {
			perr = errors.Join(perr, fmt.Errorf("field %s: %w", field, err))
		}
		return n
	}
	rec.OpenCount = parse("open_count")
	rec.LastSeenAt = time.UnixMicro(parse("last_seen_at")).UTC()
	rec.CreatedAt = time.UnixMicro(parse("created_at")).UTC()
	if perr != nil {
		return nil, tracking.StoreUnavailable("decode tracking record", perr)
	}
	return rec, nil
}

func (r *RedisTrackingRepository) Ping(ctx context.Context) error {
	if err := r.rdb.Ping(ctx).Err(); err != nil {
		return tracking.StoreUnavailable("ping redis", err)
	}
	return nil
}
