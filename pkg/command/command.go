// Package command builds invocations of GRASS GIS modules. A Command is a
// pure data record: the dotted tool name ("r.resamp.stats"), its flags and
// its key=value options. Building one never touches the process table; the
// session package is responsible for running it.
package command

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jgoizueta/grass-gis/pkg/errors"
)

// Outcome classifies a command after execution.
type Outcome int

const (
	// OutcomePending means the command has not been executed yet.
	OutcomePending Outcome = iota
	// OutcomeSuccess means the process ran and exited with status zero.
	OutcomeSuccess
	// OutcomeNonZeroExit means the process ran but exited with a non-zero status.
	OutcomeNonZeroExit
	// OutcomeLaunchFailure means the process could not be started at all.
	OutcomeLaunchFailure
)

// String returns a human-readable label for the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeNonZeroExit:
		return "non-zero exit"
	case OutcomeLaunchFailure:
		return "launch failure"
	default:
		return "pending"
	}
}

// Result captures what happened when a command was executed.
type Result struct {
	Stdout    string
	Stderr    string
	ExitCode  int
	Duration  time.Duration
	LaunchErr error
	// Skipped is set when the command was not actually run (dry-run mode).
	Skipped bool
}

type option struct {
	key   string
	value string
}

// Command is an immutable-after-construction record of a tool invocation.
// Once executed it additionally carries the captured Result.
type Command struct {
	name    string
	flags   []string
	options []option
	result  *Result
}

// Arg configures a Command under construction.
type Arg interface {
	apply(*Command)
}

type flagArg string

func (f flagArg) apply(c *Command) {
	c.flags = append(c.flags, string(f))
}

// Flag adds a flag to the command. The name is given without the leading
// dash: Flag("p") renders as "-p". A name that itself starts with a dash
// produces a long flag: Flag("-interface-description") renders as
// "--interface-description".
func Flag(name string) Arg {
	return flagArg(name)
}

type optionArg option

func (o optionArg) apply(c *Command) {
	c.options = append(c.options, option(o))
}

// Option adds a key=value option. Values are formatted per the GRASS
// conventions: slices are joined with commas, booleans render as the tool
// expects ("true"/"false").
func Option(key string, value interface{}) Arg {
	return optionArg{key: key, value: FormatValue(value)}
}

type optionsArg map[string]interface{}

func (m optionsArg) apply(c *Command) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		c.options = append(c.options, option{key: k, value: FormatValue(m[k])})
	}
}

// Options adds a set of key=value options. Keys are emitted in sorted order
// so the textual form is deterministic.
func Options(kv map[string]interface{}) Arg {
	return optionsArg(kv)
}

// New builds a command for the given dotted tool name.
func New(name string, args ...Arg) *Command {
	c := &Command{name: name}
	for _, a := range args {
		a.apply(c)
	}
	return c
}

// Name returns the dotted tool name.
func (c *Command) Name() string { return c.name }

// Flags returns the flag names (without the leading dash).
func (c *Command) Flags() []string {
	out := make([]string, len(c.flags))
	copy(out, c.flags)
	return out
}

// OptionValue returns the formatted value of the named option.
func (c *Command) OptionValue(key string) (string, bool) {
	for _, o := range c.options {
		if o.key == key {
			return o.value, true
		}
	}
	return "", false
}

// Argv returns the argument vector passed to the process, excluding the
// tool name. Values are unquoted: quoting is only a property of the textual
// form, os/exec passes arguments verbatim.
func (c *Command) Argv() []string {
	argv := make([]string, 0, len(c.flags)+len(c.options))
	for _, f := range c.flags {
		argv = append(argv, "-"+f)
	}
	for _, o := range c.options {
		argv = append(argv, o.key+"="+o.value)
	}
	return argv
}

// String renders the command in its textual form:
// <module>.<name> <flag>... key=value...
// with values quoted when they contain characters requiring it.
func (c *Command) String() string {
	var b strings.Builder
	b.WriteString(c.name)
	for _, f := range c.flags {
		b.WriteString(" -")
		b.WriteString(f)
	}
	for _, o := range c.options {
		b.WriteString(" ")
		b.WriteString(o.key)
		b.WriteString("=")
		b.WriteString(Quote(o.value))
	}
	return b.String()
}

// SetResult attaches the execution result. It returns an error if the
// command already carries one; commands are executed at most once.
func (c *Command) SetResult(r Result) error {
	if c.result != nil {
		return errors.Newf(errors.ErrInternal, "command %q already executed", c.name)
	}
	c.result = &r
	return nil
}

// Result returns the execution result, or nil if the command has not been
// executed.
func (c *Command) Result() *Result { return c.result }

// Outcome classifies the command: launch failure, non-zero exit or success.
func (c *Command) Outcome() Outcome {
	switch {
	case c.result == nil:
		return OutcomePending
	case c.result.LaunchErr != nil:
		return OutcomeLaunchFailure
	case c.result.ExitCode != 0:
		return OutcomeNonZeroExit
	default:
		return OutcomeSuccess
	}
}

// Failed reports whether the command's classification is non-success.
func (c *Command) Failed() bool {
	o := c.Outcome()
	return o == OutcomeNonZeroExit || o == OutcomeLaunchFailure
}

// ErrorInfo returns the classification text: for a launch failure, an
// error-kind label plus the underlying message; for a non-zero exit, the
// exit code plus captured error output when present. Empty for success or
// a pending command.
func (c *Command) ErrorInfo() string {
	switch c.Outcome() {
	case OutcomeLaunchFailure:
		return fmt.Sprintf("launch failure: %v", c.result.LaunchErr)
	case OutcomeNonZeroExit:
		info := fmt.Sprintf("exit code %d", c.result.ExitCode)
		if c.result.Stderr != "" {
			info += "\n" + strings.TrimRight(c.result.Stderr, "\n")
		}
		return info
	default:
		return ""
	}
}

// FormatValue renders an option value per the GRASS command-line
// conventions. Multiple values are joined with commas.
func FormatValue(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case []string:
		return strings.Join(v, ",")
	case []interface{}:
		parts := make([]string, len(v))
		for i, e := range v {
			parts[i] = FormatValue(e)
		}
		return strings.Join(parts, ",")
	case bool:
		if v {
			return "true"
		}
		return "false"
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

// quoteNeeded lists the characters that force a value into double quotes in
// the textual form.
const quoteNeeded = " \t\n\"'\\$&;|<>()[]{}*?~#"

// Quote wraps a value in double quotes when it contains whitespace or
// shell-special characters, escaping embedded quotes and backslashes.
func Quote(value string) string {
	if value != "" && !strings.ContainsAny(value, quoteNeeded) {
		return value
	}
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range value {
		if r == '"' || r == '\\' {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	b.WriteByte('"')
	return b.String()
}
