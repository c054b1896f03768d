// Package mode tracks which modifier the gamepad is in. Exactly one mode is
// active at a time; entering a mode is only allowed from the modes listed in
// its transition entry.
package mode

// Mode is what the sticks and rebound buttons currently control.
type Mode int

const (
	Default Mode = iota
	Look
	SwitchView
	Prop
	Mixture
	Cowl
	Trim
	Speedbrake
	Mouse
	Keyboard
)

func (m Mode) String() string {
	switch m {
	case Default:
		return "default"
	case Look:
		return "look"
	case SwitchView:
		return "switch_view"
	case Prop:
		return "prop"
	case Mixture:
		return "mixture"
	case Cowl:
		return "cowl"
	case Trim:
		return "trim"
	case Speedbrake:
		return "speedbrake"
	case Mouse:
		return "mouse"
	case Keyboard:
		return "keyboard"
	default:
		return "unknown"
	}
}

// transitions lists, per mode, the modes it may be entered from.
var transitions = map[Mode][]Mode{
	Look:       {Default},
	SwitchView: {Default},
	Prop:       {Default},
	Mixture:    {Default},
	Cowl:       {Default},
	Trim:       {Default},
	Speedbrake: {Default},
	Mouse:      {Default},
	Keyboard:   {Default},
}

// CanEnter reports whether m may be entered while from is active.
func CanEnter(from, m Mode) bool {
	for _, allowed := range transitions[m] {
		if allowed == from {
			return true
		}
	}
	return false
}

// Machine holds the active mode.
type Machine struct {
	active Mode
}

func (m *Machine) Active() Mode {
	return m.active
}

func (m *Machine) Is(mode Mode) bool {
	return m.active == mode
}

// Begin enters mode and reports whether the transition was allowed. A
// rejected Begin changes nothing.
func (m *Machine) Begin(mode Mode) bool {
	if !CanEnter(m.active, mode) {
		return false
	}
	m.active = mode
	return true
}

// End leaves mode for Default. Ending a mode that is not active is a no-op
// and returns false.
func (m *Machine) End(mode Mode) bool {
	if mode == Default || m.active != mode {
		return false
	}
	m.active = Default
	return true
}

// Toggle ends mode when it is active and begins it otherwise. It returns
// whether mode is active afterwards.
func (m *Machine) Toggle(mode Mode) bool {
	if m.active == mode {
		m.End(mode)
		return false
	}
	return m.Begin(mode)
}

// Reset forces Default without running any exit side effects.
func (m *Machine) Reset() {
	m.active = Default
}
