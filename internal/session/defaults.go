package session

import (
	"github.com/soar/xgamepad/internal/gamepad"
	"github.com/soar/xgamepad/internal/mode"
	"github.com/soar/xgamepad/internal/xplane"
)

const (
	defaultNullzone    = 0.1
	defaultSensitivity = 1.0
)

// SetDefaultAssignments installs the stock axis and button layout for the
// configured controller. It refuses while a modifier has rebound anything
// or without a joystick, and reports whether it applied.
func (s *Session) SetDefaultAssignments() bool {
	if s.store.Int(xplane.HasJoystick) == 0 || !s.modes.Is(mode.Default) {
		return false
	}

	axes := []axisAssignment{
		s.axis(gamepad.AxisLeftX, xplane.AxisYaw),
		s.axis(gamepad.AxisLeftY, xplane.AxisNone),
		s.axis(gamepad.AxisRightX, xplane.AxisRoll),
		s.axis(gamepad.AxisRightY, xplane.AxisPitch),
	}
	switch s.settings.ControllerType {
	case gamepad.Xbox360:
		axes = append(axes,
			s.axis(gamepad.AxisLeftTrigger, xplane.AxisNone),
			s.axis(gamepad.AxisRightTrigger, xplane.AxisNone))
	case gamepad.DS4:
		axes = append(axes,
			s.axis(gamepad.AxisLeftTrigger, xplane.AxisLeftToeBrake),
			s.axis(gamepad.AxisRightTrigger, xplane.AxisRightToeBrake))
	}
	s.assignAxes(axes...)

	s.bind(
		binding{gamepad.ButtonDpadLeft, xplane.CmdFlapsUp},
		binding{gamepad.ButtonDpadRight, xplane.CmdFlapsDown},
		binding{gamepad.ButtonDpadUp, CmdToggleArmSpeedBrakeOrToggleCarbHeat},
		binding{gamepad.ButtonDpadDown, xplane.CmdLandingGearToggle},
		binding{gamepad.ButtonDpadLeftUp, xplane.CmdNone},
		binding{gamepad.ButtonDpadLeftDown, xplane.CmdNone},
		binding{gamepad.ButtonDpadRightUp, xplane.CmdNone},
		binding{gamepad.ButtonDpadRightDown, xplane.CmdNone},
		binding{gamepad.ButtonFaceLeft, CmdCycleResetView},
		binding{gamepad.ButtonFaceRight, CmdMixtureControlModifier},
		binding{gamepad.ButtonFaceUp, CmdPropPitchThrottleModifier},
		binding{gamepad.ButtonFaceDown, CmdCowlFlapModifier},
		binding{gamepad.ButtonCenterLeft, CmdToggleReverse},
		binding{gamepad.ButtonCenterRight, xplane.CmdBrakesToggleMax},
		binding{gamepad.ButtonBumperLeft, CmdTrimModifier},
		binding{gamepad.ButtonBumperRight, CmdLookModifier},
		binding{gamepad.ButtonStickLeft, xplane.CmdGeneralZoomOut},
		binding{gamepad.ButtonStickRight, xplane.CmdGeneralZoomIn},
		binding{gamepad.ButtonTriggerLeft, xplane.CmdNone},
		binding{gamepad.ButtonTriggerRight, xplane.CmdNone},
		binding{gamepad.ButtonGuide, CmdToggleMouseOrKeyboardControl},
	)

	for _, name := range []string{xplane.JoystickPitchNullzone, xplane.JoystickRollNullzone, xplane.JoystickHeadingNullzone} {
		s.store.SetFloat(name, defaultNullzone)
	}
	for _, name := range []string{xplane.JoystickPitchSensitivity, xplane.JoystickRollSensitivity, xplane.JoystickHeadingSensitivity} {
		s.store.SetFloat(name, defaultSensitivity)
	}
	return true
}
