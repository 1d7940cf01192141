package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AgusMolinaCode/Diversity_Api.git/internal/models"
)

func TestMemoryQuoteCache(t *testing.T) {
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	cache := NewMemoryQuoteCache(time.Minute)
	cache.now = func() time.Time { return now }

	_, ok, err := cache.GetIfFresh("AAPL")
	require.NoError(t, err)
	assert.False(t, ok)

	aapl := models.Stock{Symbol: "AAPL", Price: 150, Sector: "Technology"}
	require.NoError(t, cache.Store(aapl))

	got, ok, err := cache.GetIfFresh("AAPL")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, aapl, got)

	now = now.Add(time.Minute)
	_, ok, err = cache.GetIfFresh("AAPL")
	require.NoError(t, err)
	assert.False(t, ok)

	purged, err := cache.PurgeExpired()
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)
}

func TestMemoryQuoteCache_ZeroTTL(t *testing.T) {
	cache := NewMemoryQuoteCache(0)
	require.NoError(t, cache.Store(models.Stock{Symbol: "AAPL", Price: 150, Sector: "Technology"}))

	_, ok, err := cache.GetIfFresh("AAPL")
	require.NoError(t, err)
	assert.False(t, ok)
}
