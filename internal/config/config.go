// Package config holds the run configuration and resolves the directories
// to scan and to leave alone.
package config

import (
	"os"

	"github.com/mattn/go-isatty"

	"github.com/upsuper/deja-dup-auto-ignore/internal/logger"
)

// AppName names the tool's config and cache directories
const AppName = "deja-dup-auto-ignore"

// Config holds all application configuration settings
type Config struct {
	// Directory settings. Include replaces the configured roots when set;
	// Exclude is added to the configured exclusions.
	Include    []string
	Exclude    []string
	ConfigFile string

	// Action settings
	DryRun      bool
	ShowSkipped bool

	// Logging settings
	Verbose   bool
	Quiet     bool
	LogLevel  string
	NoColor   bool
	UseColors bool

	// Dry-run output
	OutputFile     string
	JSONOutput     bool
	MarkdownOutput bool

	// Run lock
	LockFile string
	NoLock   bool

	// Version info
	Version string
}

// New creates a Config with default values
func New() *Config {
	return &Config{
		Version: "dev",
	}
}

// Finalize derives settings that depend on other settings or on the
// environment. Call it once flags have been parsed.
func (c *Config) Finalize() {
	c.UseColors = !c.NoColor && isatty.IsTerminal(os.Stderr.Fd())
}

// EffectiveLevel returns the log level to run with. An explicit LogLevel
// wins over the verbose and quiet switches.
func (c *Config) EffectiveLevel() logger.LogLevel {
	if c.LogLevel != "" {
		if level, ok := logger.ParseLevel(c.LogLevel); ok {
			return level
		}
	}
	switch {
	case c.Verbose:
		return logger.LevelDebug
	case c.Quiet:
		return logger.LevelWarn
	default:
		return logger.LevelInfo
	}
}
