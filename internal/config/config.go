// Package config defines the small knob set this subsystem reads at
// startup, grounded on the pflag-based configuration style used
// elsewhere in the example pack (gridhouse, calvinalkan's task
// runner): a flag set built once, parsed from os.Args, with typed
// accessors instead of a bespoke ini/yaml loader.
package config

import (
	"github.com/spf13/pflag"

	"github.com/vpol/redis/internal/setobj"
)

// Config holds the tunables spec.md calls out by name: the
// intset-to-hashset promotion threshold and the log level for the
// bundled CLI.
type Config struct {
	IntsetMaxEntries int
	LogLevel         string
}

// Default returns the configuration spec.md assumes when a value
// isn't overridden: intset_max_entries = 512 (setobj.DefaultMaxIntsetEntries).
func Default() Config {
	return Config{
		IntsetMaxEntries: setobj.DefaultMaxIntsetEntries,
		LogLevel:         "info",
	}
}

// FlagSet builds a pflag.FlagSet bound to cfg's fields. Callers parse
// it themselves (cliapp does this against cobra's own flag set).
func FlagSet(cfg *Config) *pflag.FlagSet {
	fs := pflag.NewFlagSet("redis", pflag.ContinueOnError)
	fs.IntVar(&cfg.IntsetMaxEntries, "intset-max-entries", cfg.IntsetMaxEntries,
		"maximum cardinality of an intset-encoded set before it is promoted to a hashset")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel,
		"logrus level: debug, info, warn, error")
	return fs
}
