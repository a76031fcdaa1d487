package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/galafis/Modern-ETL-Pipeline/internal/config"
)

func TestOpen_SQLiteInMemory(t *testing.T) {
	db, err := Open(context.Background(), config.SourceConfig{
		Driver: "sqlite",
		DSN:    ":memory:",
	})
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	assert.NoError(t, db.Ping())
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	// Cancelled context keeps the retry loop from sleeping through backoff.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Open(ctx, config.SourceConfig{Driver: "postgres", DSN: "dsn"})
	require.Error(t, err)
}

func TestOpenTarget_SQLiteFile(t *testing.T) {
	db, err := OpenTarget(context.Background(), config.TargetConfig{
		Driver: "sqlite",
		DSN:    t.TempDir() + "/target.db",
	})
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	_, err = db.Exec("CREATE TABLE t (id INTEGER)")
	assert.NoError(t, err)
}
