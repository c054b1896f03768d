package session

import (
	"github.com/soar/xgamepad/internal/xplane"
)

// Indicators are the lever positions the status page draws next to the
// flight display.
type Indicators struct {
	Visible       bool     `json:"visible"`
	Throttle      float32  `json:"throttle"`
	Prop          *float32 `json:"prop,omitempty"`
	Mixture       *float32 `json:"mixture,omitempty"`
	PropLevers    int      `json:"propLevers"`
	MixtureLevers int      `json:"mixtureLevers"`
}

type KeyboardState struct {
	Visible  bool     `json:"visible"`
	Selected string   `json:"selected"`
	Pressed  []string `json:"pressed,omitempty"`
}

// Snapshot is a read-only view of the session for telemetry.
type Snapshot struct {
	Running           bool          `json:"running"`
	Mode              string        `json:"mode"`
	ControllerType    string        `json:"controllerType"`
	Profile           string        `json:"profile"`
	CalibrationStep   string        `json:"calibrationStep"`
	CalibrationStatus string        `json:"calibrationStatus"`
	AxisOffset        int           `json:"axisOffset"`
	ButtonOffset      int           `json:"buttonOffset"`
	StackDepth        int           `json:"stackDepth"`
	Reverser          bool          `json:"reverser"`
	ShowIndicators    bool          `json:"showIndicators"`
	Joystick          bool          `json:"joystick"`
	ViewType          int           `json:"viewType"`
	Indicators        Indicators    `json:"indicators"`
	Keyboard          KeyboardState `json:"keyboard"`
}

// Snapshot builds a fresh view. It must run on the flight loop; other
// goroutines use Latest.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Running:           s.started,
		Mode:              s.modes.Active().String(),
		ControllerType:    s.settings.ControllerType.String(),
		CalibrationStep:   s.scanner.Step().String(),
		CalibrationStatus: s.scanner.Status(),
		AxisOffset:        s.settings.AxisOffset,
		ButtonOffset:      s.settings.ButtonOffset,
		StackDepth:        s.stack.Depth(),
		Reverser:          s.reverser,
		ShowIndicators:    s.settings.ShowIndicators,
		Joystick:          s.store.Int(xplane.HasJoystick) != 0,
		ViewType:          s.store.Int(xplane.ViewType),
		Indicators: Indicators{
			Visible:       s.indicatorsVisible(),
			Throttle:      s.throttleRatio(s.throttleDataref()),
			PropLevers:    s.propLevers,
			MixtureLevers: s.mixtureLevers,
		},
		Keyboard: KeyboardState{
			Visible:  s.overlay.Visible(),
			Selected: s.kb.Selected().ID,
		},
	}
	if s.remap.Profile != nil {
		snap.Profile = s.remap.Profile.Name
	}
	if s.isGliderWithSpeedbrakes() {
		snap.Indicators.Throttle = s.store.Float(xplane.SpeedbrakeRatio)
	}
	if s.propLevers > 0 {
		v := s.propIndicator()
		snap.Indicators.Prop = &v
	}
	if s.mixtureLevers > 0 {
		v := s.store.Float(xplane.MixtureRatioAll)
		snap.Indicators.Mixture = &v
	}
	for _, k := range s.kb.Keys() {
		if k.State.Pressed() {
			snap.Keyboard.Pressed = append(snap.Keyboard.Pressed, k.ID)
		}
	}
	return snap
}

// propIndicator is the prop lever position in 0..1: collective pitch for
// helicopters and rotation speed otherwise.
func (s *Session) propIndicator() float32 {
	if s.isHelicopter() {
		lo, hi := make([]float32, 1), make([]float32, 1)
		pitch := make([]float32, 1)
		s.store.Floats(xplane.AcfMinPitch, lo, 0)
		s.store.Floats(xplane.AcfMaxPitch, hi, 0)
		s.store.Floats(xplane.PropPitchDeg, pitch, 0)
		return ratio(pitch[0], lo[0], hi[0])
	}
	return ratio(s.store.Float(xplane.PropRotationSpeedRadSecAll),
		s.store.Float(xplane.AcfFeatheredPitch), s.store.Float(xplane.AcfRSCRedlinePrp))
}

func ratio(v, lo, hi float32) float32 {
	if hi <= lo {
		return 0
	}
	return min(max((v-lo)/(hi-lo), 0), 1)
}

func (s *Session) publish() {
	snap := s.Snapshot()
	s.latest.Store(&snap)
}

// Latest returns the snapshot published by the most recent tick. It is safe
// to call from any goroutine.
func (s *Session) Latest() Snapshot {
	if p := s.latest.Load(); p != nil {
		return *p
	}
	return Snapshot{}
}
