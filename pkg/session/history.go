package session

import "github.com/jgoizueta/grass-gis/pkg/command"

// History returns the ordered sequence of commands dispatched through this
// context. It is never cleared before disposal.
func (c *Context) History() []*command.Command {
	out := make([]*command.Command, len(c.history))
	copy(out, c.history)
	return out
}

// Errors returns the subsequence of history whose classification is
// non-success.
func (c *Context) Errors() []*command.Command {
	var out []*command.Command
	for _, cmd := range c.history {
		if cmd.Failed() {
			out = append(out, cmd)
		}
	}
	return out
}

// Last returns the most recent history entry, or nil when nothing has run.
func (c *Context) Last() *command.Command {
	if len(c.history) == 0 {
		return nil
	}
	return c.history[len(c.history)-1]
}

// Failed reports whether the most recent command failed. This is how callers
// poll for errors under the quiet/silent error modes.
func (c *Context) Failed() bool {
	last := c.Last()
	return last != nil && last.Failed()
}

// ErrorInfo returns the classification text of the most recent command,
// empty when it succeeded or nothing has run.
func (c *Context) ErrorInfo() string {
	last := c.Last()
	if last == nil {
		return ""
	}
	return last.ErrorInfo()
}
