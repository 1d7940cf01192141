package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitDB_InMemory(t *testing.T) {
	db, err := InitDB(":memory:")
	require.NoError(t, err)
	defer db.Close()

	var name string
	err = db.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = 'quote_cache'`).Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, "quote_cache", name)
}

func TestInitDB_FileIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache", "quotes.db")

	db, err := InitDB(path)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO quote_cache (symbol, price, sector, fetched_at) VALUES ('AAPL', 150, 'Technology', 0)`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	// Reabrir no debe fallar aunque las migraciones ya se hayan aplicado
	db, err = InitDB(path)
	require.NoError(t, err)
	defer db.Close()

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM quote_cache`).Scan(&count))
	assert.Equal(t, 1, count)
}
