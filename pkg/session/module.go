package session

import "github.com/jgoizueta/grass-gis/pkg/command"

// Module is a dispatcher for one segment of a dotted tool name. Dispatchers
// are built lazily, one per name segment, and cached on the context, so
// repeated access returns the same object:
//
//	r := ctx.Module("r")
//	cmd, err := r.Module("resamp").Module("stats").Run(
//		command.Option("input", "map1"),
//		command.Option("output", "map2"),
//	)
type Module struct {
	ctx  *Context
	name string
	subs map[string]*Module
}

// Module returns the lazily constructed dispatcher for a root module name
// ("r", "g", "v", ...).
func (c *Context) Module(name string) *Module {
	m, ok := c.modules[name]
	if !ok {
		m = &Module{ctx: c, name: name, subs: make(map[string]*Module)}
		c.modules[name] = m
	}
	return m
}

// Name returns the dotted name accumulated so far.
func (m *Module) Name() string { return m.name }

// Module descends one name segment, reusing a cached child dispatcher when
// the segment has been visited before.
func (m *Module) Module(name string) *Module {
	sub, ok := m.subs[name]
	if !ok {
		sub = &Module{ctx: m.ctx, name: m.name + "." + name, subs: make(map[string]*Module)}
		m.subs[name] = sub
	}
	return sub
}

// Run executes the accumulated dotted tool name through the owning context.
func (m *Module) Run(args ...command.Arg) (*command.Command, error) {
	return m.ctx.Run(m.name, args...)
}
