// Package runner executes external processes, capturing standard output and
// error output separately and distinguishing "could not be launched" from
// "ran but exited non-zero".
package runner

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"time"

	"github.com/rs/zerolog"

	grasserr "github.com/jgoizueta/grass-gis/pkg/errors"
	"github.com/jgoizueta/grass-gis/pkg/logging"
)

// Options control how a single process is run.
type Options struct {
	// Dir is the working directory; empty means inherit the caller's.
	Dir string
	// Env holds extra KEY=VALUE pairs appended to the inherited environment.
	Env []string
	// Stdin is fed to the process when non-empty.
	Stdin string
}

// Result is the captured outcome of a process that was actually started.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Duration time.Duration
}

// Runner runs external commands. The session package depends on this
// interface so tests can substitute a fake.
type Runner interface {
	// Run starts the named program with the given argument vector. A non-nil
	// error means the process could not be started (launch failure); a
	// non-zero exit status is reported through Result.ExitCode with a nil
	// error.
	Run(ctx context.Context, name string, args []string, opts Options) (Result, error)
}

// execRunner is the os/exec-backed Runner used outside of tests.
type execRunner struct {
	logger zerolog.Logger
}

// NewExec returns the standard os/exec-backed runner.
func NewExec() Runner {
	return &execRunner{logger: logging.GetLogger("runner")}
}

func (r *execRunner) Run(ctx context.Context, name string, args []string, opts Options) (Result, error) {
	logging.LogCommand(name, args)
	start := time.Now()

	cmd := exec.CommandContext(ctx, name, args...)
	if opts.Dir != "" {
		if _, err := os.Stat(opts.Dir); os.IsNotExist(err) {
			return Result{}, grasserr.Newf(grasserr.ErrLaunchFailed,
				"working directory does not exist: %s", opts.Dir)
		}
		cmd.Dir = opts.Dir
	}

	cmd.Env = os.Environ()
	cmd.Env = append(cmd.Env, opts.Env...)

	if opts.Stdin != "" {
		cmd.Stdin = bytes.NewBufferString(opts.Stdin)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := Result{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
			r.logger.Debug().
				Str("command", name).
				Int("exitCode", result.ExitCode).
				Dur("duration", result.Duration).
				Msg("Command exited non-zero")
			return result, nil
		}

		r.logger.Error().
			Err(err).
			Str("command", name).
			Strs("args", args).
			Msg("Command could not be started")
		return result, grasserr.Wrapf(err, grasserr.ErrLaunchFailed,
			"cannot start %s", name)
	}

	r.logger.Debug().
		Str("command", name).
		Dur("duration", result.Duration).
		Msg("Command executed successfully")
	return result, nil
}
