// Package xplane describes the surface of the flight simulator the gamepad
// session drives: named datarefs, commands and plugin detection. The session
// only ever talks to these interfaces.
package xplane

import "time"

// Store is the host's dataref surface. Reads of unknown names return zero
// values, writes to unknown names are dropped; callers that care check Has.
type Store interface {
	Has(name string) bool

	Float(name string) float32
	SetFloat(name string, v float32)
	Int(name string) int
	SetInt(name string, v int)

	// Floats copies len(dst) elements starting at offset into dst and returns
	// how many were copied.
	Floats(name string, dst []float32, offset int) int
	SetFloats(name string, src []float32, offset int)
	Ints(name string, dst []int, offset int) int
	SetInts(name string, src []int, offset int)

	Bytes(name string) []byte
}

// CommandRef identifies a host command. NoCommand is never a valid command.
type CommandRef int

const NoCommand CommandRef = 0

// Phase is the phase of a command invocation.
type Phase int

const (
	PhaseBegin Phase = iota
	PhaseContinue
	PhaseEnd
)

func (p Phase) String() string {
	switch p {
	case PhaseBegin:
		return "begin"
	case PhaseContinue:
		return "continue"
	case PhaseEnd:
		return "end"
	default:
		return "unknown"
	}
}

// CommandHandler is invoked for every phase of a command the handler is
// registered for.
type CommandHandler func(ref CommandRef, phase Phase)

// Commands is the host's command surface.
type Commands interface {
	Find(name string) CommandRef
	Create(name, description string) CommandRef
	Handle(ref CommandRef, h CommandHandler)
	Unhandle(ref CommandRef)

	Once(ref CommandRef)
	Begin(ref CommandRef)
	End(ref CommandRef)
}

// Message is a notification the host sends to the session.
type Message int

const (
	MsgPlaneLoaded Message = iota + 1
	MsgAirportLoaded
	MsgEnteredVR
	MsgExitingVR
)

func (m Message) String() string {
	switch m {
	case MsgPlaneLoaded:
		return "plane_loaded"
	case MsgAirportLoaded:
		return "airport_loaded"
	case MsgEnteredVR:
		return "entered_vr"
	case MsgExitingVR:
		return "exiting_vr"
	default:
		return "unknown"
	}
}

// Host bundles everything the session needs from the simulator.
type Host interface {
	Store() Store
	Commands() Commands

	// PluginEnabled reports whether a plugin with the given signature is
	// loaded and enabled.
	PluginEnabled(signature string) bool

	// AircraftPath returns the path of the user aircraft's .acf file, or ""
	// when none is loaded.
	AircraftPath() string

	// Elapsed returns the simulator's elapsed wall time.
	Elapsed() time.Duration
}
