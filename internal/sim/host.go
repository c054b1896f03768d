// Package sim is an in-process stand-in for the flight simulator: a dataref
// store, a command registry, joystick button dispatch and a flight loop.
// The daemon runs the session against it and optionally mirrors it into a
// running X-Plane through the web API.
package sim

import (
	"context"
	"sync"
	"time"

	"github.com/soar/xgamepad/internal/gamepad"
	"github.com/soar/xgamepad/internal/logger"
	"github.com/soar/xgamepad/internal/xplane"
)

// FlightLoop is called once per tick with the seconds since the last tick.
type FlightLoop func(elapsed float32)

// MessageHandler receives host messages on the flight loop.
type MessageHandler func(msg xplane.Message)

type Options struct {
	// Rate is the flight loop frequency in Hz.
	Rate     float64
	Plugins  []string
	Aircraft Aircraft
}

// Host implements xplane.Host. Everything the session touches runs on the
// goroutine executing Run; other goroutines hand work over through Post,
// SetFrame and Send.
type Host struct {
	store    *Store
	commands *Commands
	rate     float64

	plugins  map[string]bool // fixed by New
	aircraft Aircraft

	loops    []FlightLoop
	handlers []MessageHandler

	mu       sync.Mutex
	frame    gamepad.Frame
	hasFrame bool
	actions  []func()
	messages []xplane.Message

	elapsed time.Duration

	// pressed holds, per button slot, the command that received Begin and
	// still owes an End.
	pressed [xplane.NumButtons]xplane.CommandRef
}

var _ xplane.Host = (*Host)(nil)

func New(opts Options) *Host {
	h := &Host{
		store:    NewStore(),
		commands: NewCommands(),
		rate:     opts.Rate,
		plugins:  make(map[string]bool),
	}
	if h.rate <= 0 {
		h.rate = 60
	}
	for _, sig := range opts.Plugins {
		h.plugins[sig] = true
	}
	defineJoystick(h.store)
	defineView(h.store)
	h.loadAircraft(opts.Aircraft)
	return h
}

func (h *Host) Store() xplane.Store       { return h.store }
func (h *Host) Commands() xplane.Commands { return h.commands }

// LocalStore and LocalCommands expose the concrete types for the bridge and
// tests.
func (h *Host) LocalStore() *Store       { return h.store }
func (h *Host) LocalCommands() *Commands { return h.commands }

func (h *Host) PluginEnabled(signature string) bool {
	return h.plugins[signature]
}

func (h *Host) AircraftPath() string {
	return h.aircraft.Path
}

func (h *Host) Elapsed() time.Duration {
	return h.elapsed
}

// LoadAircraft replaces the user aircraft and queues a plane loaded message.
func (h *Host) LoadAircraft(a Aircraft) {
	h.Post(func() {
		h.loadAircraft(a)
	})
	h.Send(xplane.MsgPlaneLoaded)
}

// RegisterFlightLoop adds a callback invoked every tick.
func (h *Host) RegisterFlightLoop(fn FlightLoop) {
	h.loops = append(h.loops, fn)
}

// OnMessage adds a receiver for host messages.
func (h *Host) OnMessage(fn MessageHandler) {
	h.handlers = append(h.handlers, fn)
}

// Post queues fn to run on the flight loop before the next tick.
func (h *Host) Post(fn func()) {
	h.mu.Lock()
	h.actions = append(h.actions, fn)
	h.mu.Unlock()
}

// Send queues a host message for delivery on the flight loop.
func (h *Host) Send(msg xplane.Message) {
	h.mu.Lock()
	h.messages = append(h.messages, msg)
	h.mu.Unlock()
}

// SetFrame hands the latest joystick frame to the flight loop.
func (h *Host) SetFrame(f gamepad.Frame) {
	h.mu.Lock()
	h.frame = f
	h.hasFrame = true
	h.mu.Unlock()
}

// Feed forwards frames from a reader until ctx is done or the channel closes.
func (h *Host) Feed(ctx context.Context, frames <-chan gamepad.Frame) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case f, ok := <-frames:
			if !ok {
				return nil
			}
			h.SetFrame(f)
		}
	}
}

// Run drives the flight loop at the configured rate until ctx is done.
func (h *Host) Run(ctx context.Context) error {
	interval := time.Duration(float64(time.Second) / h.rate)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	logger.Infof("flight loop running at %.0f Hz", h.rate)
	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			h.drain()
			return nil
		case now := <-ticker.C:
			h.Step(now.Sub(last))
			last = now
		}
	}
}

// Step runs one flight loop iteration: queued actions, the joystick frame,
// button dispatch, host messages and the registered callbacks.
func (h *Host) Step(dt time.Duration) {
	h.elapsed += dt
	h.drain()

	h.mu.Lock()
	frame, hasFrame := h.frame, h.hasFrame
	msgs := h.messages
	h.messages = nil
	h.mu.Unlock()

	if hasFrame {
		h.applyFrame(frame)
	}
	h.dispatchButtons()

	for _, msg := range msgs {
		logger.Infof("host message: %s", msg)
		for _, fn := range h.handlers {
			fn(msg)
		}
	}
	for _, fn := range h.loops {
		fn(float32(dt.Seconds()))
	}
}

func (h *Host) drain() {
	h.mu.Lock()
	actions := h.actions
	h.actions = nil
	h.mu.Unlock()
	for _, fn := range actions {
		fn()
	}
}

func (h *Host) applyFrame(f gamepad.Frame) {
	axes := make([]float32, xplane.NumAxes)
	for i := range axes {
		axes[i] = gamepad.Center
	}
	copy(axes, f.Axes)
	h.store.Mirror(xplane.JoystickAxisValues, 0, toFloat64s(axes))

	buttons := make([]int, xplane.NumButtons)
	for i, pressed := range f.Buttons {
		if i >= len(buttons) {
			break
		}
		if pressed {
			buttons[i] = 1
		}
	}
	h.store.Mirror(xplane.JoystickButtonValues, 0, intsToFloat64s(buttons))

	hasJoystick := 0
	if f.Connected {
		hasJoystick = 1
	}
	h.store.Mirror(xplane.HasJoystick, 0, []float64{float64(hasJoystick)})
}

// dispatchButtons turns button levels into command phases through the
// assignment table: Begin on press, Continue while held, End on release.
// The command that began receives the End even if the slot was rebound in
// between.
func (h *Host) dispatchButtons() {
	values := make([]int, xplane.NumButtons)
	assignments := make([]int, xplane.NumButtons)
	h.store.Ints(xplane.JoystickButtonValues, values, 0)
	h.store.Ints(xplane.JoystickButtonAssignments, assignments, 0)

	for i := range values {
		held := h.pressed[i]
		switch {
		case values[i] != 0 && held == xplane.NoCommand:
			ref := xplane.CommandRef(assignments[i])
			if ref == xplane.NoCommand {
				continue
			}
			h.pressed[i] = ref
			h.commands.Invoke(ref, xplane.PhaseBegin)
		case values[i] != 0:
			h.commands.Invoke(held, xplane.PhaseContinue)
		case held != xplane.NoCommand:
			h.pressed[i] = xplane.NoCommand
			h.commands.Invoke(held, xplane.PhaseEnd)
		}
	}
}

func toFloat64s(src []float32) []float64 {
	out := make([]float64, len(src))
	for i, v := range src {
		out[i] = float64(v)
	}
	return out
}

func intsToFloat64s(src []int) []float64 {
	out := make([]float64, len(src))
	for i, v := range src {
		out[i] = float64(v)
	}
	return out
}
