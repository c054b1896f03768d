package sim

import (
	"sync"

	"github.com/soar/xgamepad/internal/logger"
	"github.com/soar/xgamepad/internal/xplane"
)

// CommandHook observes every phase delivered to a command.
type CommandHook func(name string, phase xplane.Phase)

// Invocation records one phase of a command for inspection.
type Invocation struct {
	Name  string
	Phase xplane.Phase
}

type command struct {
	name        string
	description string
	handler     xplane.CommandHandler
	custom      bool
}

// Commands is the in-memory command registry. Refs start at 1 so that the
// zero value of an assignment slot means "unassigned".
type Commands struct {
	mu     sync.Mutex
	byName map[string]xplane.CommandRef
	cmds   []*command // index ref-1
	hooks  []CommandHook
	log    []Invocation
	record bool
}

func NewCommands() *Commands {
	c := &Commands{byName: make(map[string]xplane.CommandRef)}
	for _, name := range xplane.BuiltinCommands {
		c.register(name, "", false)
	}
	return c
}

func (c *Commands) register(name, description string, custom bool) xplane.CommandRef {
	if ref, ok := c.byName[name]; ok {
		return ref
	}
	c.cmds = append(c.cmds, &command{name: name, description: description, custom: custom})
	ref := xplane.CommandRef(len(c.cmds))
	c.byName[name] = ref
	return ref
}

func (c *Commands) Find(name string) xplane.CommandRef {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.byName[name]
}

func (c *Commands) Create(name, description string) xplane.CommandRef {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.register(name, description, true)
}

func (c *Commands) Handle(ref xplane.CommandRef, h xplane.CommandHandler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if cmd := c.lookup(ref); cmd != nil {
		cmd.handler = h
	}
}

func (c *Commands) Unhandle(ref xplane.CommandRef) {
	c.Handle(ref, nil)
}

func (c *Commands) Once(ref xplane.CommandRef) {
	c.Begin(ref)
	c.End(ref)
}

func (c *Commands) Begin(ref xplane.CommandRef) {
	c.Invoke(ref, xplane.PhaseBegin)
}

func (c *Commands) End(ref xplane.CommandRef) {
	c.Invoke(ref, xplane.PhaseEnd)
}

// Invoke delivers one phase to a command's handler and hooks. Handlers run
// without the registry lock held, so they may invoke other commands.
func (c *Commands) Invoke(ref xplane.CommandRef, phase xplane.Phase) {
	c.mu.Lock()
	cmd := c.lookup(ref)
	if cmd == nil {
		c.mu.Unlock()
		return
	}
	if c.record {
		c.log = append(c.log, Invocation{Name: cmd.name, Phase: phase})
	}
	handler, hooks, name := cmd.handler, c.hooks, cmd.name
	c.mu.Unlock()

	logger.Debugf("command %s %s", name, phase)
	if handler != nil {
		handler(ref, phase)
	}
	for _, h := range hooks {
		h(name, phase)
	}
}

// Name returns the name of a registered command or "".
func (c *Commands) Name(ref xplane.CommandRef) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if cmd := c.lookup(ref); cmd != nil {
		return cmd.name
	}
	return ""
}

// IsCustom reports whether ref was created through Create rather than being
// a simulator command.
func (c *Commands) IsCustom(ref xplane.CommandRef) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	cmd := c.lookup(ref)
	return cmd != nil && cmd.custom
}

// OnInvoke adds a hook called for every delivered phase.
func (c *Commands) OnInvoke(h CommandHook) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hooks = append(c.hooks, h)
}

// Record starts keeping an invocation log.
func (c *Commands) Record() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.record = true
	c.log = nil
}

// Invocations returns and clears the recorded log.
func (c *Commands) Invocations() []Invocation {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := c.log
	c.log = nil
	return out
}

func (c *Commands) lookup(ref xplane.CommandRef) *command {
	i := int(ref) - 1
	if i < 0 || i >= len(c.cmds) {
		return nil
	}
	return c.cmds[i]
}
