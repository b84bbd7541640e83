package config

import "fmt"

// Validate checks a loaded Config for internal consistency before the
// server starts.
func Validate(c *Config) error {
	if !c.Flavor.Valid() {
		return fmt.Errorf("config: invalid flavor %q", c.Flavor)
	}
	if c.GRPCAddr == "" {
		return fmt.Errorf("config: grpc_addr must not be empty")
	}
	if c.Storage.Backend != "pebble" && c.Storage.Backend != "leveldb" {
		return fmt.Errorf("config: storage.backend must be \"pebble\" or \"leveldb\", got %q", c.Storage.Backend)
	}
	if c.Storage.Dir == "" {
		return fmt.Errorf("config: storage.dir must not be empty")
	}
	if c.Registry.MaxOperators <= 0 {
		return fmt.Errorf("config: registry.max_operators must be positive")
	}
	if c.Pricing.MinYears == 0 || c.Pricing.MinYears >= c.Pricing.MaxYears {
		return fmt.Errorf("config: pricing.min_years must be positive and less than max_years")
	}
	if c.Timing.HeartbeatInterval <= 0 {
		return fmt.Errorf("config: timing.heartbeat_interval must be positive")
	}
	if c.Timing.LockerTimeout <= 0 {
		return fmt.Errorf("config: timing.locker_timeout must be positive")
	}
	return nil
}
