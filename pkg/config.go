package volt

import (
	"os"

	"github.com/mattn/go-isatty"
	"gopkg.in/yaml.v3"

	"github.com/pkg/errors"
)

// LevelConfig gates which zap levels a component's logger is constructed
// at. A freshly-built Config suppresses "trace" and enables everything
// else.
type LevelConfig map[string]bool

var defaultLevels = LevelConfig{
	"trace": false,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Enabled reports whether name is turned on, defaulting to true for any
// level not explicitly present (an unrecognized or newly-added level fails
// open rather than going silently missing).
func (l LevelConfig) Enabled(name string) bool {
	if v, ok := l[name]; ok {
		return v
	}
	return true
}

// Config holds the recognized startup options plus the terminal-capability
// detection the diagnostic renderer consults.
type Config struct {
	NoColor bool
	Levels  LevelConfig
	IsTTY   bool
}

// FromEnv builds a Config from the process environment: NO_COLOR (any
// non-empty value disables color, per the https://no-color.org convention)
// and a go-isatty check on stderr.
func FromEnv() Config {
	levels := make(LevelConfig, len(defaultLevels))
	for k, v := range defaultLevels {
		levels[k] = v
	}
	return Config{
		NoColor: os.Getenv("NO_COLOR") != "",
		Levels:  levels,
		IsTTY:   isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd()),
	}
}

// WithLevel returns a copy of c with name's enablement overridden.
func (c Config) WithLevel(name string, enabled bool) Config {
	levels := make(LevelConfig, len(c.Levels)+1)
	for k, v := range c.Levels {
		levels[k] = v
	}
	levels[name] = enabled
	c.Levels = levels
	return c
}

// Colorize reports whether the diagnostic renderer should emit ANSI escapes:
// colorization requires both a terminal and the absence of NO_COLOR.
func (c Config) Colorize() bool {
	return c.IsTTY && !c.NoColor
}

// fileConfig is the on-disk shape LoadFile expects: a small, optional
// override of the level map, nothing more. NoColor/TTY stay
// environment/terminal-derived even when a file is present.
type fileConfig struct {
	Levels map[string]bool `yaml:"levels"`
}

// LoadFile reads a YAML document at path and merges its "levels" map over
// base's, returning the merged Config. File-backed toggles layer
// underneath FromEnv's environment-derived fields rather than replacing
// them.
func LoadFile(path string, base Config) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, errors.Wrapf(err, "volt: reading config file %q", path)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return base, errors.Wrapf(err, "volt: parsing config file %q", path)
	}

	merged := base
	levels := make(LevelConfig, len(base.Levels)+len(fc.Levels))
	for k, v := range base.Levels {
		levels[k] = v
	}
	for k, v := range fc.Levels {
		levels[k] = v
	}
	merged.Levels = levels
	return merged, nil
}
