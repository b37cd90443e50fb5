package handler

import (
	"blocklot-enricher/pkg/enrich"
	"log"
	"os"
	"time"
)

// Config carries the env-tunable service settings.
type Config struct {
	Policy          enrich.Policy
	DropBlockLot    bool
	ApplierIdleTTL  time.Duration
	CleanupInterval time.Duration
}

// ConfigFromEnv reads the service configuration from the environment, falling
// back to defaults for anything unset or unparsable.
func ConfigFromEnv() Config {
	return Config{
		Policy:          parsePolicyWithDefault(os.Getenv("ENRICH_POLICY"), enrich.BestEffort),
		DropBlockLot:    os.Getenv("DROP_BLOCK_LOT") == "true",
		ApplierIdleTTL:  parseDurationWithDefault(os.Getenv("APPLIER_IDLE_TTL"), 2*time.Hour),
		CleanupInterval: parseDurationWithDefault(os.Getenv("APPLIER_CLEANUP_INTERVAL"), 5*time.Minute),
	}
}

// parseDurationWithDefault parses a duration string and returns default if parsing fails
func parseDurationWithDefault(durationStr string, defaultDuration time.Duration) time.Duration {
	if durationStr == "" {
		return defaultDuration
	}
	if duration, err := time.ParseDuration(durationStr); err == nil {
		return duration
	}
	log.Printf("[Handler] Failed to parse duration '%s', using default: %v", durationStr, defaultDuration)
	return defaultDuration
}

// parsePolicyWithDefault parses a policy string and returns default if parsing fails
func parsePolicyWithDefault(policyStr string, defaultPolicy enrich.Policy) enrich.Policy {
	if policyStr == "" {
		return defaultPolicy
	}
	policy, err := enrich.ParsePolicy(policyStr)
	if err != nil {
		log.Printf("[Handler] Failed to parse policy '%s', using default: %v", policyStr, defaultPolicy)
		return defaultPolicy
	}
	return policy
}
