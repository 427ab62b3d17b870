package config

import (
	"os"
	"runtime"
	"time"

	"github.com/BurntSushi/toml"
)

// Config represents the complete susepkg configuration.
type Config struct {
	General GeneralConfig     `toml:"general"`
	Output  OutputConfig      `toml:"output"`
	Cache   CacheConfig       `toml:"cache"`
	Aliases map[string]string `toml:"aliases"`
}

// GeneralConfig contains general query settings.
type GeneralConfig struct {
	// Arch is the default architecture to search for.
	Arch string `toml:"arch"`

	// TimeoutSeconds bounds every HTTP request.
	TimeoutSeconds int `toml:"timeout_seconds"`

	// AllVersions keeps every matching version instead of only the
	// newest one per package.
	AllVersions bool `toml:"all_versions"`
}

// OutputConfig contains output formatting settings.
type OutputConfig struct {
	// Color enables colored output (respects NO_COLOR env var).
	Color bool `toml:"color"`

	// Unicode enables unicode symbols in output.
	Unicode bool `toml:"unicode"`

	// Verbose enables debug logging.
	Verbose bool `toml:"verbose"`
}

// CacheConfig controls the HTTP response cache.
type CacheConfig struct {
	// Enabled turns the on-disk response cache on.
	Enabled bool `toml:"enabled"`

	// TTLMinutes is how long a cached response stays valid.
	TTLMinutes int `toml:"ttl_minutes"`
}

// Architectures lists the values accepted for the arch setting.
var Architectures = []string{"aarch64", "ppc64le", "s390x", "x86_64"}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		General: GeneralConfig{
			Arch:           HostArch(),
			TimeoutSeconds: 180,
			AllVersions:    false,
		},
		Output: OutputConfig{
			Color:   true,
			Unicode: true,
			Verbose: false,
		},
		Cache: CacheConfig{
			Enabled:    true,
			TTLMinutes: 60,
		},
		Aliases: map[string]string{},
	}
}

// HostArch maps the Go runtime architecture to the RPM architecture
// naming used by the SUSE APIs.
func HostArch() string {
	switch runtime.GOARCH {
	case "amd64":
		return "x86_64"
	case "arm64":
		return "aarch64"
	default:
		return runtime.GOARCH
	}
}

// Load loads the configuration from the default path.
// If the config file doesn't exist, it returns the default configuration.
func Load() (*Config, error) {
	return LoadFrom(ConfigPath())
}

// LoadFrom loads the configuration from a specific path.
// If the config file doesn't exist, it returns the default configuration.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Timeout returns the HTTP timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.General.TimeoutSeconds) * time.Second
}

// CacheTTL returns the cache TTL as a duration.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Cache.TTLMinutes) * time.Minute
}

// ResolveAlias returns the product a selector is aliased to, or the
// selector itself when no alias is configured.
func (c *Config) ResolveAlias(selector string) string {
	if target, ok := c.Aliases[selector]; ok {
		return target
	}
	return selector
}

// ShouldUseColor returns true if colored output should be used.
// Respects the NO_COLOR environment variable.
func (c *Config) ShouldUseColor() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return c.Output.Color
}
