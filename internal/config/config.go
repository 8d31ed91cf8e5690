// handles serve flags and tunables
package config

import (
	"flag"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// The server always binds localhost:5500.
const (
	Host = "localhost"
	Port = 5500
)

// Config holds the options parsed from serve command-line flags.
type Config struct {
	Reload   bool
	Compress bool
}

// Load parses serve flags from args. The bind address is fixed and
// not a flag.
func Load(args []string) *Config {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	reloadFlag := fs.Bool("reload", true, "Enable live reload via /events")
	compressFlag := fs.Bool("compress", false, "Enable response compression")
	_ = fs.Parse(args)

	return &Config{
		Reload:   *reloadFlag,
		Compress: *compressFlag,
	}
}

// Tunables contains adjustable serve parameters
// These can be overridden via weft.yaml in the served directory
type Tunables struct {
	DebounceDuration time.Duration `yaml:"debounceDuration"` // File watcher debounce (default: 300ms)
	ShutdownTimeout  time.Duration `yaml:"shutdownTimeout"`  // Server shutdown timeout (default: 5s)
	NotFoundPage     string        `yaml:"notFoundPage"`     // Page served for missing paths (default: 404.html)
}

// DefaultTunables returns the default serve tunables
func DefaultTunables() *Tunables {
	return &Tunables{
		DebounceDuration: 300 * time.Millisecond,
		ShutdownTimeout:  5 * time.Second,
		NotFoundPage:     "404.html",
	}
}

// LoadTunables loads serve tunables from weft.yaml
// Returns defaults if file doesn't exist
func LoadTunables() *Tunables {
	cfg := DefaultTunables()

	data, err := os.ReadFile("weft.yaml")
	if err != nil {
		// File doesn't exist, use defaults
		return cfg
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		// Parse error, use defaults
		return DefaultTunables()
	}

	// Validate and clamp values
	cfg.validate()

	return cfg
}

// validate ensures tunable values are within reasonable bounds
func (c *Tunables) validate() {
	if c.DebounceDuration < 10*time.Millisecond {
		c.DebounceDuration = 10 * time.Millisecond
	}
	if c.DebounceDuration > 5*time.Second {
		c.DebounceDuration = 5 * time.Second
	}
	if c.ShutdownTimeout < 1*time.Second {
		c.ShutdownTimeout = 1 * time.Second
	}
	if c.ShutdownTimeout > 60*time.Second {
		c.ShutdownTimeout = 60 * time.Second
	}
	if c.NotFoundPage == "" {
		c.NotFoundPage = "404.html"
	}
}
