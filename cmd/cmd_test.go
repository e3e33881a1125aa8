package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/jmehdipour/email-tracker/internal/model"
	"github.com/jmehdipour/email-tracker/internal/repository"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	_, err := rootCmd.ExecuteC()
	return out.String(), err
}

func TestMigrate_RedisDriverIsNoop(t *testing.T) {
	t.Setenv("EMAILTRACKER_STORE_DRIVER", "redis")

	out, err := runCLI(t, "migrate", "--config", "")
	require.NoError(t, err)
	assert.Contains(t, out, `store driver "redis" needs no migration`)
}

func TestShow_PrintsRecord(t *testing.T) {
	mr := miniredis.RunT(t)
	t.Setenv("EMAILTRACKER_STORE_DRIVER", "redis")
	t.Setenv("EMAILTRACKER_REDIS_ADDR", mr.Addr())
	t.Setenv("EMAILTRACKER_LOG_LEVEL", "error")

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()
	repo := repository.NewRedisTrackingRepository(rdb, "emailtracker:")
	pair := model.Pair{CustomerID: "C9", TenantID: "movido"}
	for i := 0; i < 3; i++ {
		_, err := repo.RecordOpen(context.Background(), pair)
		require.NoError(t, err)
	}

	out, err := runCLI(t, "show", "--config", "", "--customer", "C9", "--tenant", "movido")
	require.NoError(t, err)

	var rec model.TrackingRecord
	require.NoError(t, json.Unmarshal([]byte(out), &rec))
	assert.Equal(t, int64(3), rec.OpenCount)
	assert.Equal(t, "C9", rec.CustomerID)
}

func TestShow_RejectsUnknownTenant(t *testing.T) {
	mr := miniredis.RunT(t)
	t.Setenv("EMAILTRACKER_STORE_DRIVER", "redis")
	t.Setenv("EMAILTRACKER_REDIS_ADDR", mr.Addr())

	_, err := runCLI(t, "show", "--config", "", "--customer", "C9", "--tenant", "nope")
	assert.Error(t, err)
}

func TestLoadConfig_InvalidDriver(t *testing.T) {
	t.Setenv("EMAILTRACKER_STORE_DRIVER", "mongo")

	_, err := runCLI(t, "migrate", "--config", "")
	assert.ErrorContains(t, err, "unknown store.driver")
}
