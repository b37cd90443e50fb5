package routing

import (
	"fmt"
	"github.com/nats-io/nats.go"
	"gopkg.in/yaml.v3"
	"os"
)

// EnvRoutingConfig names the environment variable holding the routing config path.
const EnvRoutingConfig = "ROUTING_CONFIG"

// RouteConfig describes one named route on the NATS server. The selector is
// the stable name code refers to, the subject is the wire-level address.
type RouteConfig struct {
	Selector string `yaml:"selector"`
	Subject  string `yaml:"subject"`
	Queue    string `yaml:"queue,omitempty"` // optional queue group for subscribers
}

// Config is the routing table for the service.
type Config struct {
	URL    string         `yaml:"url"`
	Routes []*RouteConfig `yaml:"routes"`
}

// ParseConfig parses a YAML routing table.
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("error parsing routing config: %v", err)
	}
	if cfg.URL == "" {
		cfg.URL = nats.DefaultURL
	}
	return &cfg, nil
}

// LoadConfig reads the routing table from a YAML file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading routing config %s: %v", path, err)
	}
	return ParseConfig(data)
}

// LoadConfigFromEnv loads the routing table from the file named by ROUTING_CONFIG.
func LoadConfigFromEnv() (*Config, error) {
	path, ok := os.LookupEnv(EnvRoutingConfig)
	if !ok {
		return nil, fmt.Errorf("%s environment variable not set", EnvRoutingConfig)
	}
	return LoadConfig(path)
}

// FindRouteBySelector returns the route registered under selector.
func (c *Config) FindRouteBySelector(selector string) (*RouteConfig, error) {
	for _, route := range c.Routes {
		if route.Selector == selector {
			return route, nil
		}
	}
	return nil, fmt.Errorf("no route found for selector: %s", selector)
}
