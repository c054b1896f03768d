package sim

import "github.com/soar/xgamepad/internal/xplane"

// Aircraft holds the user aircraft properties the session reads.
type Aircraft struct {
	Path           string
	ICAO           string
	NumEngines     int
	CockpitType    int
	PropType       int // applied to every engine
	EngineType     int // applied to every engine
	HasBeta        bool
	HasReverse     bool
	HasSpeedbrake  bool
	RedlineRadSec  float32
	FeatheredPitch float32
	MinPitch       float32
	MaxPitch       float32
	APType         int
	PilotEye       [3]float32
	// ToLiss adds the AirbusFBW throttle input dataref.
	ToLiss bool
}

// DefaultAircraft is a single engine piston with a constant speed prop.
func DefaultAircraft() Aircraft {
	return Aircraft{
		ICAO:           "C172",
		NumEngines:     1,
		PropType:       1,
		EngineType:     0,
		RedlineRadSec:  282.7,
		FeatheredPitch: 0,
		MinPitch:       -2,
		MaxPitch:       15,
		APType:         1,
		PilotEye:       [3]float32{-0.35, 0.25, -1.05},
	}
}

func defineJoystick(s *Store) {
	axes := make([]float32, xplane.NumAxes)
	for i := range axes {
		axes[i] = 0.5
	}
	s.DefineFloats(xplane.JoystickAxisValues, axes...)
	s.DefineInts(xplane.JoystickAxisAssignments, make([]int, xplane.NumAxes)...)
	s.DefineInts(xplane.JoystickAxisReverse, make([]int, xplane.NumAxes)...)
	s.DefineInts(xplane.JoystickButtonValues, make([]int, xplane.NumButtons)...)
	s.DefineInts(xplane.JoystickButtonAssignments, make([]int, xplane.NumButtons)...)
	s.DefineInts(xplane.HasJoystick, 0)

	s.DefineFloats(xplane.JoystickPitchNullzone, 0.1)
	s.DefineFloats(xplane.JoystickRollNullzone, 0.1)
	s.DefineFloats(xplane.JoystickHeadingNullzone, 0.1)
	s.DefineFloats(xplane.JoystickPitchSensitivity, 1)
	s.DefineFloats(xplane.JoystickRollSensitivity, 1)
	s.DefineFloats(xplane.JoystickHeadingSensitivity, 1)
	s.DefineInts(xplane.OverrideToeBrakes, 0)
	s.DefineFloats(xplane.LeftBrakeRatio, 0)
	s.DefineFloats(xplane.RightBrakeRatio, 0)
}

func defineView(s *Store) {
	s.DefineInts(xplane.ViewType, xplane.View3DCockpitCommandLook)
	s.DefineInts(xplane.VREnabled, 0)
	s.DefineInts(xplane.CinemaVerite, 1)
	s.DefineFloats(xplane.PilotsHeadPsi, 0)
	s.DefineFloats(xplane.PilotsHeadThe, 0)
}

func engines(n int, v float32) []float32 {
	out := make([]float32, xplane.MaxEngines)
	for i := 0; i < n && i < len(out); i++ {
		out[i] = v
	}
	return out
}

func engineInts(n, v int) []int {
	out := make([]int, xplane.MaxEngines)
	for i := 0; i < n && i < len(out); i++ {
		out[i] = v
	}
	return out
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func (h *Host) loadAircraft(a Aircraft) {
	h.aircraft = a
	s := h.store

	s.DefineBytes(xplane.AcfICAO, []byte(a.ICAO))
	s.DefineInts(xplane.AcfNumEngines, a.NumEngines)
	s.DefineInts(xplane.AcfCockpitType, a.CockpitType)
	s.DefineInts(xplane.AcfPropType, engineInts(a.NumEngines, a.PropType)...)
	s.DefineInts(xplane.AcfEnType, engineInts(a.NumEngines, a.EngineType)...)
	s.DefineInts(xplane.AcfHasBeta, boolInt(a.HasBeta))
	s.DefineInts(xplane.AcfRevthrustEq, boolInt(a.HasReverse))
	s.DefineInts(xplane.AcfSbrkEQ, boolInt(a.HasSpeedbrake))
	s.DefineFloats(xplane.AcfRSCRedlinePrp, a.RedlineRadSec)
	s.DefineFloats(xplane.AcfFeatheredPitch, a.FeatheredPitch)
	s.DefineFloats(xplane.AcfMinPitch, engines(a.NumEngines, a.MinPitch)...)
	s.DefineFloats(xplane.AcfMaxPitch, engines(a.NumEngines, a.MaxPitch)...)
	s.DefineInts(xplane.PreconfiguredAPType, a.APType)
	s.DefineFloats(xplane.AcfPeX, a.PilotEye[0])
	s.DefineFloats(xplane.AcfPeY, a.PilotEye[1])
	s.DefineFloats(xplane.AcfPeZ, a.PilotEye[2])

	s.DefineFloats(xplane.ThrottleRatioAll, 0)
	s.DefineFloats(xplane.ThrottleBetaRevRatioAll, 0)
	s.DefineFloats(xplane.ThrottleJetRevRatioAll, 0)
	s.DefineFloats(xplane.PropRotationSpeedRadSecAll, a.RedlineRadSec)
	s.DefineFloats(xplane.PropPitchDeg, engines(a.NumEngines, a.MinPitch)...)
	s.DefineFloats(xplane.MixtureRatioAll, 1)
	s.DefineFloats(xplane.CowlFlapRatio, make([]float32, xplane.MaxEngines)...)
	s.DefineFloats(xplane.SpeedbrakeRatio, 0)
	s.DefineFloats(xplane.SpeedbrakeRequest, 0)

	if a.ToLiss {
		s.DefineFloats(xplane.AirbusThrottleInput, make([]float32, 5)...)
	} else {
		s.Undefine(xplane.AirbusThrottleInput)
	}
}
