// Package config defines the session configuration for the GRASS GIS
// wrapper: where the toolsuite is installed, which location/mapset to work
// in, and how commands are echoed, logged and error-checked.
package config

import (
	"os"
	"path/filepath"

	"github.com/jgoizueta/grass-gis/pkg/errors"
)

// ErrorMode controls how command failures propagate out of a session.
type ErrorMode string

const (
	// ErrorsRaise returns an error from Execute for launch failures and
	// non-zero exits. This is the default.
	ErrorsRaise ErrorMode = "raise"
	// ErrorsConsole never returns an error; classification info is printed
	// to the error console and the session log.
	ErrorsConsole ErrorMode = "console"
	// ErrorsQuiet never returns an error; callers poll the history for the
	// error state.
	ErrorsQuiet ErrorMode = "quiet"
	// ErrorsSilent is an alias of ErrorsQuiet.
	ErrorsSilent ErrorMode = "silent"
)

// Valid reports whether the mode is one of the recognized values.
func (m ErrorMode) Valid() bool {
	switch m {
	case ErrorsRaise, ErrorsConsole, ErrorsQuiet, ErrorsSilent:
		return true
	}
	return false
}

// Relaxed reports whether failures are recorded without propagating.
func (m ErrorMode) Relaxed() bool {
	return m == ErrorsQuiet || m == ErrorsSilent
}

// EchoMode controls what Execute writes to the console.
type EchoMode string

const (
	// EchoCommands writes each command's textual form. This is the default.
	EchoCommands EchoMode = "commands"
	// EchoOutput writes the command text and the captured output.
	EchoOutput EchoMode = "output"
	// EchoNone disables console echo.
	EchoNone EchoMode = "none"
)

// Valid reports whether the mode is one of the recognized values.
func (m EchoMode) Valid() bool {
	switch m {
	case EchoCommands, EchoOutput, EchoNone:
		return true
	}
	return false
}

// Commands reports whether command text is echoed.
func (m EchoMode) Commands() bool { return m == EchoCommands || m == EchoOutput }

// Output reports whether captured output is echoed.
func (m EchoMode) Output() bool { return m == EchoOutput }

// Config is the flat session configuration. GisBase and Location are
// mandatory; everything else has a default applied once at session creation.
type Config struct {
	// GisBase is the GRASS installation directory (mandatory).
	GisBase string `koanf:"gisbase" toml:"gisbase"`
	// GisDBase is the GRASS data directory; defaults to $HOME/grassdata.
	GisDBase string `koanf:"gisdbase" toml:"gisdbase"`
	// Location is the working location inside GisDBase (mandatory).
	Location string `koanf:"location" toml:"location"`
	// Mapset is the working mapset; defaults to $USER, then PERMANENT.
	Mapset string `koanf:"mapset" toml:"mapset"`

	Version       string `koanf:"version" toml:"version"`
	MessageFormat string `koanf:"message_format" toml:"message_format"`
	TrueColor     bool   `koanf:"true_color" toml:"true_color"`
	Transparent   bool   `koanf:"transparent" toml:"transparent"`
	PNGAutoWrite  bool   `koanf:"png_auto_write" toml:"png_auto_write"`
	Gnuplot       string `koanf:"gnuplot" toml:"gnuplot"`
	GUI           string `koanf:"gui" toml:"gui"`

	Errors ErrorMode `koanf:"errors" toml:"errors"`
	Echo   EchoMode  `koanf:"echo" toml:"echo"`

	// Log is a file accumulating timestamped command text and error detail.
	Log string `koanf:"log" toml:"log,omitempty"`
	// History is a file accumulating bare command text.
	History string `koanf:"history" toml:"history,omitempty"`

	// DryRun skips process execution; every command reports success.
	DryRun bool `koanf:"dry_run" toml:"dry_run"`

	// WorkDir is the working directory for launched tools; empty inherits
	// the caller's.
	WorkDir string `koanf:"workdir" toml:"workdir,omitempty"`

	// Locals are caller-chosen named values exposed read-only inside the
	// session block.
	Locals map[string]interface{} `koanf:"locals" toml:"locals,omitempty"`
}

// Default returns a Config with every defaultable field populated. GisBase
// and Location are left empty and must be filled in by the caller.
func Default() Config {
	cfg := Config{
		Version:       "7.0.0",
		MessageFormat: "plain",
		TrueColor:     true,
		Transparent:   true,
		PNGAutoWrite:  true,
		Gnuplot:       "gnuplot -persist",
		GUI:           "text",
		Errors:        ErrorsRaise,
		Echo:          EchoCommands,
	}
	applyFallbacks(&cfg)
	return cfg
}

// applyFallbacks fills the environment-derived defaults that cannot live in
// the embedded defaults file.
func applyFallbacks(cfg *Config) {
	if cfg.GisDBase == "" {
		if home, err := os.UserHomeDir(); err == nil {
			cfg.GisDBase = filepath.Join(home, "grassdata")
		}
	}
	if cfg.Mapset == "" {
		cfg.Mapset = os.Getenv("USER")
	}
	if cfg.Mapset == "" {
		cfg.Mapset = "PERMANENT"
	}
	if cfg.Errors == "" {
		cfg.Errors = ErrorsRaise
	}
	if cfg.Echo == "" {
		cfg.Echo = EchoCommands
	}
}

// Validate checks the mandatory keys and enumerated modes.
func (c *Config) Validate() error {
	if c.GisBase == "" {
		return errors.New(errors.ErrConfigValid, "gisbase is required")
	}
	if c.Location == "" {
		return errors.New(errors.ErrConfigValid, "location is required")
	}
	if !c.Errors.Valid() {
		return errors.Newf(errors.ErrConfigValid,
			"invalid errors mode %q (want raise, console, quiet or silent)", c.Errors)
	}
	if !c.Echo.Valid() {
		return errors.Newf(errors.ErrConfigValid,
			"invalid echo mode %q (want commands, output or none)", c.Echo)
	}
	return nil
}

// Resolve applies the fallback defaults and validates the result. It is the
// single defaulting step the session performs at creation.
func (c *Config) Resolve() error {
	applyFallbacks(c)
	return c.Validate()
}
