// Package config loads icnamingd's configuration: layered defaults, an
// optional TOML file, then ICNAMING_-prefixed environment overrides.
package config

import "time"

// Config is the complete, validated runtime configuration of an icnamingd
// process.
type Config struct {
	Flavor Flavor `mapstructure:"flavor"`

	// GRPCAddr is the bind address for the RPC transport of §6.
	GRPCAddr string `mapstructure:"grpc_addr"`

	Storage  StorageConfig  `mapstructure:"storage"`
	Registry RegistryConfig `mapstructure:"registry"`
	Pricing  PricingConfig  `mapstructure:"pricing"`
	Timing   TimingConfig   `mapstructure:"timing"`

	// ImportWhitelistFile names a file of newline-separated SHA-256 digests
	// that is read from disk at startup; it is not embedded in the binary.
	// ReservedNamesFile is not read by any component: the reserved-name
	// list is compiled into package name.
	ReservedNamesFile   string `mapstructure:"reserved_names_file"`
	ImportWhitelistFile string `mapstructure:"import_whitelist_file"`

	configPath string
}

// StorageConfig selects and locates the KV backend for every persisted
// component store.
type StorageConfig struct {
	// Backend is "pebble" or "leveldb".
	Backend string `mapstructure:"backend"`
	// Dir is the root directory under which each component opens its own
	// namespaced database file.
	Dir string `mapstructure:"dir"`
}

// RegistryConfig carries the small numeric knobs of §3/§4.2.
type RegistryConfig struct {
	DefaultTTL       uint64 `mapstructure:"default_ttl"`
	MaxOperators     int    `mapstructure:"max_operators"`
	ResolverMaxItems int    `mapstructure:"resolver_max_items"`
	ResolverKeyMax   int    `mapstructure:"resolver_key_max"`
	ResolverValueMax int    `mapstructure:"resolver_value_max"`
}

// PricingConfig carries the registration-year bounds and the per-quota-class
// XDR schedule consumed by the Price Oracle (§4.4.1).
type PricingConfig struct {
	MinYears uint32           `mapstructure:"min_years"`
	MaxYears uint32           `mapstructure:"max_years"`
	XDRTable map[string]int64 `mapstructure:"xdr_table"` // quota class label -> XDR * 10^4 per year
}

// TimingConfig carries the concurrency-model durations of §5.
type TimingConfig struct {
	HeartbeatInterval   time.Duration `mapstructure:"heartbeat_interval"`
	OrderAvailableGrace time.Duration `mapstructure:"order_available_grace"`
	LockerTimeout       time.Duration `mapstructure:"locker_timeout"`
}

// ConfigPath returns the file the configuration was loaded from, if any.
func (c *Config) ConfigPath() string { return c.configPath }
