package config

import (
	"time"

	"github.com/spf13/viper"
)

// setDefaults gives every field a sane value before a file or environment
// variable can override it.
func setDefaults(v *viper.Viper) {
	v.SetDefault("flavor", string(FlavorDev))
	v.SetDefault("grpc_addr", "127.0.0.1:8420")

	v.SetDefault("storage.backend", "pebble")
	v.SetDefault("storage.dir", "./data")

	v.SetDefault("registry.default_ttl", uint64(600))
	v.SetDefault("registry.max_operators", 10)
	v.SetDefault("registry.resolver_max_items", 30)
	v.SetDefault("registry.resolver_key_max", 64)
	v.SetDefault("registry.resolver_value_max", 512)

	v.SetDefault("pricing.min_years", uint32(1))
	v.SetDefault("pricing.max_years", uint32(10))
	// Default XDR-per-year schedule keyed by quota-class label, expressed
	// as XDR * 10^4 (matching the ICP<->XDR rate's own fixed-point scale).
	// Shorter names cost more; length 7+ is the cheapest bucket. There are
	// no entries for lengths 1-3: priceoracle.Price charges any class
	// without an entry at the len_gte_7 rate.
	v.SetDefault("pricing.xdr_table", map[string]int64{
		"len_eq_4":  2_000_0000,
		"len_eq_5":  1_000_0000,
		"len_eq_6":  500_0000,
		"len_gte_7": 200_0000,
	})

	v.SetDefault("timing.heartbeat_interval", 10*time.Second)
	v.SetDefault("timing.order_available_grace", 2*time.Hour)
	v.SetDefault("timing.locker_timeout", 60*time.Second)

	v.SetDefault("reserved_names_file", "")
	v.SetDefault("import_whitelist_file", "")
}
