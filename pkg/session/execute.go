package session

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jgoizueta/grass-gis/pkg/command"
	"github.com/jgoizueta/grass-gis/pkg/config"
	"github.com/jgoizueta/grass-gis/pkg/errors"
	"github.com/jgoizueta/grass-gis/pkg/runner"
)

// Run builds a command for the dotted tool name and executes it.
func (c *Context) Run(name string, args ...command.Arg) (*command.Command, error) {
	return c.Execute(command.New(name, args...))
}

// Execute dispatches a command: it is appended to the history, echoed and
// logged per configuration, run through the process runner (or skipped in
// dry-run mode), classified, and returned. Whether a failure also comes back
// as an error depends on the configured error mode.
func (c *Context) Execute(cmd *command.Command) (*command.Command, error) {
	return c.ExecuteContext(context.Background(), cmd)
}

// ExecuteContext is Execute with a caller-supplied context for the external
// process. There is no other cancellation mechanism: a hung tool blocks the
// caller until the context expires.
func (c *Context) ExecuteContext(ctx context.Context, cmd *command.Command) (*command.Command, error) {
	if c.closed {
		return cmd, errors.New(errors.ErrSessionClosed, "session already disposed")
	}
	if !c.allocated {
		return cmd, errors.New(errors.ErrSessionAlloc, "session not allocated")
	}

	c.history = append(c.history, cmd)

	text := cmd.String()
	if c.cfg.Echo.Commands() {
		fmt.Fprintln(c.out, text)
	}
	c.appendHistoryFile(text)
	c.appendLog(fmt.Sprintf("# %s\n%s", time.Now().Format(time.RFC3339), text))

	if c.cfg.DryRun {
		// Success-shaped result, process never started.
		if err := cmd.SetResult(command.Result{Skipped: true}); err != nil {
			return cmd, err
		}
		c.logger.Debug().Str("command", text).Msg("Dry run - command not executed")
		return cmd, nil
	}

	res, runErr := c.runner.Run(ctx, cmd.Name(), cmd.Argv(), runner.Options{
		Dir: c.cfg.WorkDir,
	})
	if err := cmd.SetResult(command.Result{
		Stdout:    res.Stdout,
		Stderr:    res.Stderr,
		ExitCode:  res.ExitCode,
		Duration:  res.Duration,
		LaunchErr: runErr,
	}); err != nil {
		return cmd, err
	}

	if c.cfg.Echo.Output() {
		if res.Stdout != "" {
			fmt.Fprint(c.out, res.Stdout)
		}
		if res.Stderr != "" {
			fmt.Fprint(c.errOut, res.Stderr)
		}
	}

	return cmd, c.classify(cmd)
}

// classify applies the error taxonomy to an executed command and honors the
// configured error mode.
func (c *Context) classify(cmd *command.Command) error {
	outcome := cmd.Outcome()
	if outcome == command.OutcomeSuccess || outcome == command.OutcomePending {
		return nil
	}

	info := cmd.ErrorInfo()
	c.logger.Debug().
		Str("command", cmd.Name()).
		Str("outcome", outcome.String()).
		Msg("Command failed")

	switch c.cfg.Errors {
	case config.ErrorsConsole:
		fmt.Fprintln(c.errOut, info)
		c.appendLog(info)
		return nil
	case config.ErrorsQuiet, config.ErrorsSilent:
		return nil
	default: // raise
		if outcome == command.OutcomeLaunchFailure {
			return errors.Wrapf(cmd.Result().LaunchErr, errors.ErrLaunchFailed,
				"%s: launch failure", cmd.Name())
		}
		return errors.Newf(errors.ErrNonZeroExit, "%s: %s", cmd.Name(), info).
			WithDetail("exit_code", cmd.Result().ExitCode)
	}
}

// appendLog appends an entry to the session log file when one is configured.
func (c *Context) appendLog(entry string) {
	c.appendFile(c.cfg.Log, entry)
}

// appendHistoryFile appends a command's textual form to the history log file
// when one is configured.
func (c *Context) appendHistoryFile(text string) {
	c.appendFile(c.cfg.History, text)
}

func (c *Context) appendFile(path, entry string) {
	if path == "" {
		return
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		c.logger.Warn().Err(err).Str("path", path).Msg("Cannot open session log file")
		return
	}
	defer func() { _ = f.Close() }()
	if !strings.HasSuffix(entry, "\n") {
		entry += "\n"
	}
	if _, err := f.WriteString(entry); err != nil {
		c.logger.Warn().Err(err).Str("path", path).Msg("Cannot write session log file")
	}
}
