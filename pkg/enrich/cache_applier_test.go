package enrich_test

import (
	"blocklot-enricher/pkg/enrich"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
	"time"
)

func TestCacheApplierGetOrSet(t *testing.T) {
	cache := enrich.NewCacheApplier()
	defer cache.Shutdown()

	created := 0
	factory := func() (*enrich.Applier, error) {
		created++
		return enrich.NewApplier(enrich.BestEffort), nil
	}

	first, err := cache.GetOrSet("source-1", factory)
	require.NoError(t, err)
	second, err := cache.GetOrSet("source-1", factory)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, created)
	assert.True(t, cache.Exists("source-1"))
	assert.False(t, cache.Exists("source-2"))

	cache.Remove("source-1")
	assert.False(t, cache.Exists("source-1"))
	assert.Nil(t, cache.Get("source-1"))
}

func TestCacheApplierIdleCleanup(t *testing.T) {
	// aggressive idle TTL and cleanup interval so the loop fires during the test
	cache := enrich.NewCacheApplierWithConfig(10*time.Millisecond, 20*time.Millisecond)
	defer cache.Shutdown()

	_, err := cache.GetOrSet("stale", func() (*enrich.Applier, error) {
		return enrich.NewApplier(enrich.BestEffort), nil
	})
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		return !cache.Exists("stale")
	}, time.Second, 10*time.Millisecond)
}
