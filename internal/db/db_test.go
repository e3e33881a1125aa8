package db

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeMySQLDSN(t *testing.T) {
	dsn, err := NormalizeMySQLDSN("tracker:secret@tcp(db:3306)/email_tracker_db")
	require.NoError(t, err)
	assert.Contains(t, dsn, "parseTime=true")
	assert.Contains(t, dsn, "tcp(db:3306)/email_tracker_db")

	_, err = NormalizeMySQLDSN("")
	assert.Error(t, err)

	_, err = NormalizeMySQLDSN("not a dsn")
	assert.Error(t, err)
}

func TestValidTableName(t *testing.T) {
	assert.True(t, ValidTableName("email_tracking"))
	assert.True(t, ValidTableName("_emails2"))
	assert.False(t, ValidTableName(""))
	assert.False(t, ValidTableName("2emails"))
	assert.False(t, ValidTableName("emails`; DROP"))
	assert.False(t, ValidTableName(strings.Repeat("a", 49)))
}

func TestMigrate(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS `emails` .* UNIQUE KEY uq_emails_pair \\(customer_id, tenant_id\\)").
		WillReturnResult(sqlmock.NewResult(0, 0))

	applied, err := Migrate(context.Background(), sqlx.NewDb(sqlDB, "mysql"), "emails")
	require.NoError(t, err)
	assert.Equal(t, []string{"migrations/001_email_tracking.sql"}, applied)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrate_RejectsBadTable(t *testing.T) {
	_, err := Migrate(context.Background(), nil, "x; DROP TABLE y")
	assert.Error(t, err)
}

func TestNewRedisClient(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()

	rdb, err := NewRedisClient(context.Background(), RedisOpts{
		Addr:         addr,
		DialTimeout:  time.Second,
		ReadTimeout:  300 * time.Millisecond,
		WriteTimeout: 400 * time.Millisecond,
		PoolSize:     7,
		MinIdleConns: 2,
		ClientName:   "email-tracker",
	})
	require.NoError(t, err)

	opts := rdb.Options()
	assert.Equal(t, 7, opts.PoolSize)
	assert.Equal(t, 2, opts.MinIdleConns)
	assert.Equal(t, 300*time.Millisecond, opts.ReadTimeout)
	assert.Equal(t, 400*time.Millisecond, opts.WriteTimeout)
	assert.Equal(t, "email-tracker", opts.ClientName)
	assert.NoError(t, rdb.Close())
}

func TestNewRedisClient_DefaultDialTimeout(t *testing.T) {
	mr := miniredis.RunT(t)

	rdb, err := NewRedisClient(context.Background(), RedisOpts{Addr: mr.Addr()})
	require.NoError(t, err)
	defer rdb.Close()
	assert.Equal(t, 5*time.Second, rdb.Options().DialTimeout)
}

func TestNewRedisClient_ServerDown(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	rdb, err := NewRedisClient(context.Background(), RedisOpts{Addr: addr, DialTimeout: 200 * time.Millisecond})
	assert.Error(t, err)
	assert.Nil(t, rdb)
}
