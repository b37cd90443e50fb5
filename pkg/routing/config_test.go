package routing_test

import (
	"blocklot-enricher/pkg/routing"
	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"os"
	"path/filepath"
	"testing"
)

const routingYAML = `url: nats://nats.local:4222
routes:
  - selector: data/transformers/property/blocklot-split-1.0
    subject: data.transformers.property.blocklot-split
    queue: blocklot-split
  - selector: processor/monitor
    subject: processor.monitor
`

func TestParseConfig(t *testing.T) {
	cfg, err := routing.ParseConfig([]byte(routingYAML))
	require.NoError(t, err)

	assert.Equal(t, "nats://nats.local:4222", cfg.URL)
	require.Len(t, cfg.Routes, 2)

	route, err := cfg.FindRouteBySelector("data/transformers/property/blocklot-split-1.0")
	require.NoError(t, err)
	assert.Equal(t, "data.transformers.property.blocklot-split", route.Subject)
	assert.Equal(t, "blocklot-split", route.Queue)

	_, err = cfg.FindRouteBySelector("processor/state/sync")
	assert.Error(t, err)
}

func TestParseConfigDefaultURL(t *testing.T) {
	cfg, err := routing.ParseConfig([]byte("routes:\n  - selector: a\n    subject: a\n"))
	require.NoError(t, err)
	assert.Equal(t, nats.DefaultURL, cfg.URL)
}

func TestLoadConfigFromEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "routing.yaml")
	require.NoError(t, os.WriteFile(path, []byte(routingYAML), 0o644))
	t.Setenv(routing.EnvRoutingConfig, path)

	cfg, err := routing.LoadConfigFromEnv()
	require.NoError(t, err)
	assert.Len(t, cfg.Routes, 2)
}

func TestLoadConfigFromEnvUnset(t *testing.T) {
	t.Setenv(routing.EnvRoutingConfig, "")
	os.Unsetenv(routing.EnvRoutingConfig)

	_, err := routing.LoadConfigFromEnv()
	assert.Error(t, err)
}
