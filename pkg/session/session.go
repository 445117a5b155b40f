// Package session owns the GRASS GIS session lifecycle: it allocates the
// scoped resources the toolsuite expects (the GISRC resource file and a set
// of environment variables), dispatches tool invocations, records a
// per-session history, classifies failures and restores the prior
// environment on disposal.
//
// Sessions assume single-writer discipline over the process environment:
// exactly one active context per process, no protection against concurrent
// contexts in separate goroutines.
package session

import (
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/jgoizueta/grass-gis/pkg/command"
	"github.com/jgoizueta/grass-gis/pkg/config"
	"github.com/jgoizueta/grass-gis/pkg/errors"
	"github.com/jgoizueta/grass-gis/pkg/logging"
	"github.com/jgoizueta/grass-gis/pkg/runner"
)

// Context is the scoped, mutable owner of one GRASS session: the resolved
// configuration, the GISRC temp file, the snapshot of overridden environment
// variables and the append-only command history.
type Context struct {
	cfg    config.Config
	runner runner.Runner
	logger zerolog.Logger

	out    io.Writer
	errOut io.Writer

	gisrc     string
	saved     map[string]*string
	history   []*command.Command
	modules   map[string]*Module
	allocated bool
	closed    bool
}

// New creates a context from the configuration, applying defaults once and
// validating the mandatory keys. The context is not yet allocated: no
// resources are acquired and the environment is untouched.
func New(cfg config.Config) (*Context, error) {
	if err := cfg.Resolve(); err != nil {
		return nil, err
	}
	return &Context{
		cfg:     cfg,
		runner:  runner.NewExec(),
		logger:  logging.GetLogger("session"),
		out:     os.Stdout,
		errOut:  os.Stderr,
		saved:   make(map[string]*string),
		modules: make(map[string]*Module),
	}, nil
}

// Start creates and allocates a context. The caller must Close it.
func Start(cfg config.Config) (*Context, error) {
	c, err := New(cfg)
	if err != nil {
		return nil, err
	}
	if err := c.allocate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Session runs the block inside an allocated context. Disposal runs
// unconditionally, even when the block returns an error; the block's error
// wins over a disposal error.
func Session(cfg config.Config, block func(*Context) error) (err error) {
	c, err := Start(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return block(c)
}

// Config returns a copy of the resolved configuration.
func (c *Context) Config() config.Config { return c.cfg }

// SetRunner substitutes the process runner. Intended for tests and dry
// wiring; must be called before any Execute.
func (c *Context) SetRunner(r runner.Runner) { c.runner = r }

// SetOutput redirects the console echo (out) and the error console (errOut).
func (c *Context) SetOutput(out, errOut io.Writer) {
	if out != nil {
		c.out = out
	}
	if errOut != nil {
		c.errOut = errOut
	}
}

// Local returns the value of an injected local binding. Bindings are
// read-only named values supplied in the configuration and visible only
// through the context.
func (c *Context) Local(name string) (interface{}, bool) {
	v, ok := c.cfg.Locals[name]
	return v, ok
}

// GisrcPath returns the path of the allocated resource file, empty before
// allocation or after disposal.
func (c *Context) GisrcPath() string { return c.gisrc }

// allocate acquires the GISRC resource file and mutates the session
// environment variables, recording their prior values for restoration.
func (c *Context) allocate() error {
	if c.allocated {
		return errors.New(errors.ErrSessionAlloc, "session already allocated")
	}

	gisrc, err := writeGisrc(c.cfg)
	if err != nil {
		return err
	}
	c.gisrc = gisrc

	vars := Environment(c.cfg)
	vars = append(vars, EnvVar{Name: "GISRC", Value: gisrc})
	for _, v := range vars {
		c.snapshot(v.Name)
		if err := os.Setenv(v.Name, v.Value); err != nil {
			c.restoreEnv()
			_ = os.Remove(c.gisrc)
			c.gisrc = ""
			return errors.Wrapf(err, errors.ErrSessionAlloc, "cannot set %s", v.Name)
		}
	}

	c.allocated = true
	c.logger.Debug().
		Str("gisrc", gisrc).
		Str("location", c.cfg.Location).
		Str("mapset", c.cfg.Mapset).
		Msg("Session allocated")
	return nil
}

// Close disposes the session: the resource file is removed (a missing file
// is tolerated) and every mutated environment variable is restored to its
// exact prior value or absence. Close is idempotent.
func (c *Context) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true

	if c.gisrc != "" {
		if err := os.Remove(c.gisrc); err != nil && !os.IsNotExist(err) {
			c.logger.Warn().Err(err).Str("gisrc", c.gisrc).Msg("Failed to remove resource file")
		}
		c.gisrc = ""
	}

	c.restoreEnv()
	c.logger.Debug().Int("commands", len(c.history)).Msg("Session disposed")
	return nil
}

// snapshot records the current value (or absence) of an environment
// variable the first time it is about to be overridden.
func (c *Context) snapshot(name string) {
	if _, done := c.saved[name]; done {
		return
	}
	if value, ok := os.LookupEnv(name); ok {
		v := value
		c.saved[name] = &v
	} else {
		c.saved[name] = nil
	}
}

// restoreEnv puts every snapshot variable back, unsetting the ones that did
// not exist before allocation.
func (c *Context) restoreEnv() {
	for name, prior := range c.saved {
		if prior == nil {
			_ = os.Unsetenv(name)
		} else {
			_ = os.Setenv(name, *prior)
		}
	}
	c.saved = make(map[string]*string)
}
