package handler_test

import (
	"blocklot-enricher/pkg/enrich"
	"blocklot-enricher/pkg/handler"
	"github.com/stretchr/testify/assert"
	"testing"
	"time"
)

func TestConfigFromEnvDefaults(t *testing.T) {
	t.Setenv("ENRICH_POLICY", "")
	t.Setenv("DROP_BLOCK_LOT", "")
	t.Setenv("APPLIER_IDLE_TTL", "")
	t.Setenv("APPLIER_CLEANUP_INTERVAL", "")

	config := handler.ConfigFromEnv()
	assert.Equal(t, enrich.BestEffort, config.Policy)
	assert.False(t, config.DropBlockLot)
	assert.Equal(t, 2*time.Hour, config.ApplierIdleTTL)
	assert.Equal(t, 5*time.Minute, config.CleanupInterval)
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("ENRICH_POLICY", "fail-fast")
	t.Setenv("DROP_BLOCK_LOT", "true")
	t.Setenv("APPLIER_IDLE_TTL", "30m")
	t.Setenv("APPLIER_CLEANUP_INTERVAL", "1m")

	config := handler.ConfigFromEnv()
	assert.Equal(t, enrich.FailFast, config.Policy)
	assert.True(t, config.DropBlockLot)
	assert.Equal(t, 30*time.Minute, config.ApplierIdleTTL)
	assert.Equal(t, time.Minute, config.CleanupInterval)
}

func TestConfigFromEnvBadValues(t *testing.T) {
	t.Setenv("ENRICH_POLICY", "whatever")
	t.Setenv("APPLIER_IDLE_TTL", "not-a-duration")

	config := handler.ConfigFromEnv()
	assert.Equal(t, enrich.BestEffort, config.Policy)
	assert.Equal(t, 2*time.Hour, config.ApplierIdleTTL)
}
