package session

import (
	"github.com/soar/xgamepad/internal/inject"
	"github.com/soar/xgamepad/internal/keyboard"
	"github.com/soar/xgamepad/internal/logger"
	"github.com/soar/xgamepad/internal/mode"
	"github.com/soar/xgamepad/internal/xplane"
)

// Custom command names.
const (
	CmdCycleResetView                      = "x_gamepad/cycle_reset_view"
	CmdToggleArmSpeedBrakeOrToggleCarbHeat = "x_gamepad/toggle_arm_speed_brake_or_toggle_carb_heat"
	CmdCWSOrDisconnectAutopilot            = "x_gamepad/cws_or_disconnect_autopilot"
	CmdLookModifier                        = "x_gamepad/look_modifier"
	CmdPropPitchThrottleModifier           = "x_gamepad/prop_pitch_throttle_modifier"
	CmdMixtureControlModifier              = "x_gamepad/mixture_control_modifier"
	CmdCowlFlapModifier                    = "x_gamepad/cowl_flap_modifier"
	CmdTrimModifier                        = "x_gamepad/trim_modifier"
	CmdTrimReset                           = "x_gamepad/trim_reset"
	CmdToggleReverse                       = "x_gamepad/toggle_reverse"
	CmdToggleMouseOrKeyboardControl        = "x_gamepad/toggle_mouse_or_keyboard_control"
	CmdPushToTalk                          = "x_gamepad/push_to_talk"
	CmdToggleLeftMouseButton               = "x_gamepad/toggle_left_mouse_button"
	CmdToggleRightMouseButton              = "x_gamepad/toggle_right_mouse_button"
	CmdScrollUp                            = "x_gamepad/scroll_up"
	CmdScrollDown                          = "x_gamepad/scroll_down"
	CmdKeyboardSelectorUp                  = "x_gamepad/keyboard_selector_up"
	CmdKeyboardSelectorDown                = "x_gamepad/keyboard_selector_down"
	CmdKeyboardSelectorLeft                = "x_gamepad/keyboard_selector_left"
	CmdKeyboardSelectorRight               = "x_gamepad/keyboard_selector_right"
	CmdPressKeyboardKey                    = "x_gamepad/press_keyboard_key"
	CmdLockKeyboardKey                     = "x_gamepad/lock_keyboard_key"
)

const (
	longPressTime        = 1.0
	scrollRepeatInterval = 0.1
	reverserOnEngagement = -0.15
)

type commandDef struct {
	name        string
	description string
	handler     func(s *Session, phase xplane.Phase)
}

var commandDefs = []commandDef{
	{CmdCycleResetView, "Cycle / Reset View", (*Session).cycleResetView},
	{CmdToggleArmSpeedBrakeOrToggleCarbHeat, "Toggle Arm Speed Brake / Toggle Carb Heat", (*Session).speedbrakeOrCarbHeat},
	{CmdCWSOrDisconnectAutopilot, "CWS / Disconnect Autopilot", (*Session).cwsOrDisconnectAutopilot},
	{CmdLookModifier, "Look Modifier", (*Session).lookModifier},
	{CmdPropPitchThrottleModifier, "Prop Pitch / Throttle Modifier", func(s *Session, p xplane.Phase) { s.toggleMode(mode.Prop, p) }},
	{CmdMixtureControlModifier, "Mixture Control Modifier", func(s *Session, p xplane.Phase) { s.toggleMode(mode.Mixture, p) }},
	{CmdCowlFlapModifier, "Cowl Flap Modifier", func(s *Session, p xplane.Phase) { s.toggleMode(mode.Cowl, p) }},
	{CmdTrimModifier, "Trim Modifier", (*Session).trimModifier},
	{CmdTrimReset, "Trim Reset", (*Session).trimReset},
	{CmdToggleReverse, "Toggle Reverse", (*Session).toggleReverse},
	{CmdToggleMouseOrKeyboardControl, "Toggle Mouse or Keyboard Control", (*Session).toggleMouseOrKeyboard},
	{CmdPushToTalk, "Push-To-Talk", (*Session).pushToTalk},
	{CmdToggleLeftMouseButton, "Toggle Left Mouse Button", func(s *Session, p xplane.Phase) { s.mouseButton(inject.PointerButtonLeft, p) }},
	{CmdToggleRightMouseButton, "Toggle Right Mouse Button", func(s *Session, p xplane.Phase) { s.mouseButton(inject.PointerButtonRight, p) }},
	{CmdScrollUp, "Scroll Up", func(s *Session, p xplane.Phase) { s.scroll(p, 1) }},
	{CmdScrollDown, "Scroll Down", func(s *Session, p xplane.Phase) { s.scroll(p, -1) }},
	{CmdKeyboardSelectorUp, "Keyboard Selector Up", func(s *Session, p xplane.Phase) { s.kb.Move(keyboard.Above, p, s.now()) }},
	{CmdKeyboardSelectorDown, "Keyboard Selector Down", func(s *Session, p xplane.Phase) { s.kb.Move(keyboard.Below, p, s.now()) }},
	{CmdKeyboardSelectorLeft, "Keyboard Selector Left", func(s *Session, p xplane.Phase) { s.kb.Move(keyboard.Left, p, s.now()) }},
	{CmdKeyboardSelectorRight, "Keyboard Selector Right", func(s *Session, p xplane.Phase) { s.kb.Move(keyboard.Right, p, s.now()) }},
	{CmdPressKeyboardKey, "Press Keyboard Key", func(s *Session, p xplane.Phase) { s.kb.Press(p) }},
	{CmdLockKeyboardKey, "Lock Keyboard Key", func(s *Session, p xplane.Phase) { s.kb.Lock(p) }},
}

// toggleMode is the plain modifier: held means active, no rebinding.
func (s *Session) toggleMode(m mode.Mode, phase xplane.Phase) {
	if phase == xplane.PhaseEnd {
		s.modes.End(m)
		return
	}
	s.modes.Begin(m)
}

func (s *Session) cwsOrDisconnectAutopilot(phase xplane.Phase) {
	if phase == xplane.PhaseContinue {
		return
	}
	var name string
	switch s.store.Int(xplane.PreconfiguredAPType) {
	case 0:
		switch {
		case s.host.PluginEnabled(xplane.SigToLiss):
			name = xplane.CmdFlightDirDown
		case s.host.PluginEnabled(xplane.SigZibo):
			name = xplane.CmdZiboCaptDiscoPress
		default:
			name = xplane.CmdServosOffAny
		}
	case 1:
		name = xplane.CmdServosOffAny
	default:
		name = xplane.CmdControlWheelSteer
	}
	if phase == xplane.PhaseBegin {
		s.begin(name)
	} else {
		s.end(name)
	}
}

func (s *Session) toggleReverse(phase xplane.Phase) {
	if phase != xplane.PhaseBegin {
		return
	}
	switch {
	case s.reverser:
		s.store.SetFloat(xplane.ThrottleBetaRevRatioAll, 0)
		s.setToLissThrottle(0)
	case s.store.Int(xplane.AcfHasBeta) != 0:
		s.store.SetFloat(xplane.ThrottleBetaRevRatioAll, reverserOnEngagement)
	case s.store.Int(xplane.AcfRevthrustEq) != 0:
		s.store.SetFloat(xplane.ThrottleJetRevRatioAll, reverserOnEngagement)
		s.setToLissThrottle(reverserOnEngagement)
	default:
		return
	}
	s.reverser = !s.reverser
}

func (s *Session) pushToTalk(phase xplane.Phase) {
	if phase == xplane.PhaseContinue {
		return
	}
	if s.host.PluginEnabled(xplane.SigXIvAp) || s.host.PluginEnabled(xplane.SigXSquawkBox) {
		s.kb.PushToTalk(phase == xplane.PhaseBegin)
	}
}

func (s *Session) mouseButton(b inject.PointerButton, phase xplane.Phase) {
	if phase == xplane.PhaseContinue {
		return
	}
	s.setMouseButton(b, phase == xplane.PhaseBegin)
}

func (s *Session) setMouseButton(b inject.PointerButton, down bool) {
	if s.mouseDown[b] == down {
		return
	}
	s.mouseDown[b] = down
	if err := s.injector.PointerButton(b, down); err != nil {
		logger.Warningf("%s mouse button down=%v: %v", b, down, err)
	}
}

func (s *Session) releaseMouseButtons() {
	s.setMouseButton(inject.PointerButtonLeft, false)
	s.setMouseButton(inject.PointerButtonRight, false)
}

func (s *Session) scroll(phase xplane.Phase, clicks int) {
	now := s.now()
	if phase == xplane.PhaseEnd {
		return
	}
	if phase == xplane.PhaseBegin || now-s.lastScroll >= scrollRepeatInterval {
		if err := s.injector.Scroll(clicks); err != nil {
			logger.Warningf("scroll %d: %v", clicks, err)
		}
		s.lastScroll = now
	}
}

// toggleMouseOrKeyboard tells a short press (mouse) from a long one
// (keyboard). The long press fires while the button is still held.
func (s *Session) toggleMouseOrKeyboard(phase xplane.Phase) {
	switch phase {
	case xplane.PhaseBegin:
		s.toggleBegin = s.now()
		s.toggleConsumed = false
	case xplane.PhaseContinue:
		if !s.toggleConsumed && s.now()-s.toggleBegin >= longPressTime {
			s.toggleKeyboardControl()
			s.toggleConsumed = true
		}
	case xplane.PhaseEnd:
		if !s.toggleConsumed && s.now()-s.toggleBegin < longPressTime {
			s.toggleMouseControl()
		}
		s.toggleConsumed = false
	}
}

func (s *Session) trimReset(phase xplane.Phase) {
	if phase != xplane.PhaseBegin {
		return
	}
	switch {
	case s.host.PluginEnabled(xplane.SigDreamFoilAS350):
		s.end(xplane.CmdAS350ForceTrim)
		s.once(xplane.CmdAS350TrimRelease)
	case s.host.PluginEnabled(xplane.SigDreamFoilB407):
		s.end(xplane.CmdB407ForceTrim)
		s.once(xplane.CmdB407TrimRelease)
	default:
		s.once(xplane.CmdAileronTrimCenter)
		s.once(xplane.CmdRudderTrimCenter)
	}
	s.once(xplane.CmdRudderTrimCenter)
}
