package database

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAppliesMigrations(t *testing.T) {
	conn, err := Open(Config{Path: ":memory:"})
	require.NoError(t, err)
	defer conn.Close()

	for _, table := range []string{"tracks", "tile_reports", "analysis_tasks"} {
		var name string
		err := conn.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		require.NoError(t, err, table)
		assert.Equal(t, table, name)
	}

	// a second run is a no-op
	require.NoError(t, NewMigrationManager(conn, migrationFiles).RunMigrations())

	var count int
	require.NoError(t, conn.QueryRow("SELECT COUNT(*) FROM migrations").Scan(&count))
	assert.Equal(t, 1, count)
}

func TestTransactionRollsBack(t *testing.T) {
	conn, err := Open(Config{Path: ":memory:"})
	require.NoError(t, err)
	defer conn.Close()

	err = Transaction(conn, func(tx *sql.Tx) error {
		if _, err := tx.Exec(`INSERT INTO tracks (rider_id, recorded_at, point_count, polyline, created_at) VALUES ('r', 1, 0, '', 1)`); err != nil {
			return err
		}
		return assert.AnError
	})
	assert.ErrorIs(t, err, assert.AnError)

	var count int
	require.NoError(t, conn.QueryRow("SELECT COUNT(*) FROM tracks").Scan(&count))
	assert.Equal(t, 0, count)
}

func TestOpenCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "tiles.db")
	conn, err := Open(Config{Path: path})
	require.NoError(t, err)
	defer conn.Close()

	var mode string
	require.NoError(t, conn.QueryRow("PRAGMA journal_mode").Scan(&mode))
	assert.Equal(t, "wal", mode)
}
