package session

import (
	"math"

	"github.com/soar/xgamepad/internal/gamepad"
	"github.com/soar/xgamepad/internal/mode"
	"github.com/soar/xgamepad/internal/xplane"
)

const (
	autoCenterDistanceLimit = 0.03
	autoCenterAngleLimit    = 1.5
)

// binding assigns a command to an abstract button.
type binding struct {
	button  gamepad.AbstractButton
	command string
}

// enterMode switches to m, snapshots the button table and installs the
// bindings. It does nothing when m cannot be entered from the active mode.
func (s *Session) enterMode(m mode.Mode, bindings ...binding) bool {
	if !s.modes.Begin(m) {
		return false
	}
	s.stack.Push()
	s.bind(bindings...)
	return true
}

// leaveMode restores the button table pushed by enterMode.
func (s *Session) leaveMode(m mode.Mode) bool {
	if !s.modes.End(m) {
		return false
	}
	s.stack.Pop()
	return true
}

func (s *Session) bind(bindings ...binding) {
	if len(bindings) == 0 {
		return
	}
	table := make([]int, xplane.NumButtons)
	s.store.Ints(xplane.JoystickButtonAssignments, table, 0)
	for _, b := range bindings {
		idx := s.remap.ButtonIndex(b.button)
		if b.button >= gamepad.ButtonGuide {
			idx = s.remap.ExtraButtonIndex(b.button)
		}
		if idx < 0 || idx >= len(table) {
			continue
		}
		table[idx] = int(s.ref(b.command))
	}
	s.store.SetInts(xplane.JoystickButtonAssignments, table, 0)
}

// axisAssignment is a write to the axis assignment table at a raw index.
type axisAssignment struct {
	index int
	value int
}

func (s *Session) assignAxes(assignments ...axisAssignment) {
	table := make([]int, xplane.NumAxes)
	s.store.Ints(xplane.JoystickAxisAssignments, table, 0)
	for _, a := range assignments {
		if a.index < 0 || a.index >= len(table) {
			continue
		}
		table[a.index] = a.value
	}
	s.store.SetInts(xplane.JoystickAxisAssignments, table, 0)
}

func (s *Session) axis(a gamepad.AbstractAxis, value int) axisAssignment {
	return axisAssignment{index: s.remap.AxisIndex(a), value: value}
}

func (s *Session) overrideCameraControls() {
	s.cinemaVerite = s.store.Int(xplane.CinemaVerite) != 0
	if s.cinemaVerite {
		s.store.SetInt(xplane.CinemaVerite, 0)
	}
	if s.host.PluginEnabled(xplane.SigHeadShake) {
		s.once(xplane.CmdHeadShakeStop)
	}
}

func (s *Session) restoreCameraControls() {
	if s.cinemaVerite {
		s.store.SetInt(xplane.CinemaVerite, 1)
	}
}

func (s *Session) lookModifier(phase xplane.Phase) {
	ds4 := s.settings.ControllerType == gamepad.DS4
	if phase == xplane.PhaseEnd {
		if !s.modes.Is(mode.Look) {
			return
		}
		s.autoCenterView()
		assignments := []axisAssignment{
			s.axis(gamepad.AxisLeftX, xplane.AxisYaw),
			s.axis(gamepad.AxisLeftY, xplane.AxisNone),
		}
		if ds4 {
			assignments = append(assignments,
				s.axis(gamepad.AxisLeftTrigger, xplane.AxisLeftToeBrake),
				s.axis(gamepad.AxisRightTrigger, xplane.AxisRightToeBrake))
		}
		s.assignAxes(assignments...)
		s.leaveMode(mode.Look)
		s.restoreCameraControls()
		return
	}
	if !mode.CanEnter(s.modes.Active(), mode.Look) {
		return
	}
	assignments := []axisAssignment{
		s.axis(gamepad.AxisLeftX, xplane.AxisNone),
		s.axis(gamepad.AxisLeftY, xplane.AxisNone),
	}
	if ds4 {
		assignments = append(assignments,
			s.axis(gamepad.AxisLeftTrigger, xplane.AxisNone),
			s.axis(gamepad.AxisRightTrigger, xplane.AxisNone))
	}
	s.assignAxes(assignments...)
	bindings := []binding{
		{gamepad.ButtonDpadLeft, xplane.CmdGeneralLeft},
		{gamepad.ButtonDpadRight, xplane.CmdGeneralRight},
		{gamepad.ButtonDpadUp, xplane.CmdGeneralUp},
		{gamepad.ButtonDpadDown, xplane.CmdGeneralDown},
		{gamepad.ButtonFaceLeft, xplane.CmdGeneralRotLeft},
		{gamepad.ButtonFaceRight, xplane.CmdGeneralRotRight},
		{gamepad.ButtonFaceUp, xplane.CmdGeneralForward},
		{gamepad.ButtonFaceDown, xplane.CmdGeneralBackward},
	}
	if ds4 {
		bindings = append(bindings,
			binding{gamepad.ButtonTriggerLeft, CmdPushToTalk},
			binding{gamepad.ButtonTriggerRight, CmdCWSOrDisconnectAutopilot})
	}
	s.enterMode(mode.Look, bindings...)
	s.overrideCameraControls()
}

// autoCenterView snaps the 3D cockpit head back to its default position when
// it is already close to it.
func (s *Session) autoCenterView() {
	if s.store.Int(xplane.ViewType) != xplane.View3DCockpitCommandLook || !s.headCaptured {
		return
	}
	eye := s.pilotEye()
	for i := range eye {
		if math.Abs(float64(s.defaultHead[i]-eye[i])) > autoCenterDistanceLimit {
			return
		}
	}
	s.store.SetFloat(xplane.AcfPeX, s.defaultHead[0])
	s.store.SetFloat(xplane.AcfPeY, s.defaultHead[1])
	s.store.SetFloat(xplane.AcfPeZ, s.defaultHead[2])

	psi := s.store.Float(xplane.PilotsHeadPsi)
	the := s.store.Float(xplane.PilotsHeadThe)
	if (psi >= 360-autoCenterAngleLimit || psi <= autoCenterAngleLimit) && math.Abs(float64(the)) <= autoCenterAngleLimit {
		s.store.SetFloat(xplane.PilotsHeadPsi, 0)
		s.store.SetFloat(xplane.PilotsHeadThe, 0)
	}
}

func (s *Session) pilotEye() [3]float32 {
	return [3]float32{
		s.store.Float(xplane.AcfPeX),
		s.store.Float(xplane.AcfPeY),
		s.store.Float(xplane.AcfPeZ),
	}
}

func (s *Session) cycleResetView(phase xplane.Phase) {
	if phase == xplane.PhaseEnd {
		s.leaveMode(mode.SwitchView)
		return
	}
	if !s.modes.Is(mode.Default) {
		return
	}
	switch s.store.Int(xplane.ViewType) {
	case xplane.ViewForwardsWithPanel:
		s.once(xplane.CmdView3DCockpitLook)
		s.once(xplane.CmdViewForwardWith2DPanel)
	case xplane.View3DCockpitCommandLook:
		s.once(xplane.CmdViewForwardWith2DPanel)
		s.once(xplane.CmdView3DCockpitLook)
	case xplane.ViewChase:
		s.once(xplane.CmdViewCircle)
		s.once(xplane.CmdViewChase)
	}
	up, down := xplane.CmdViewForwardWith2DPanel, xplane.CmdView3DCockpitLook
	if !s.has2DPanel() {
		up, down = down, up
	}
	s.enterMode(mode.SwitchView,
		binding{gamepad.ButtonDpadLeft, xplane.CmdViewChase},
		binding{gamepad.ButtonDpadRight, xplane.CmdViewForwardWithHUD},
		binding{gamepad.ButtonDpadUp, up},
		binding{gamepad.ButtonDpadDown, down},
	)
}

func (s *Session) trimModifier(phase xplane.Phase) {
	as350 := s.host.PluginEnabled(xplane.SigDreamFoilAS350)
	b407 := s.host.PluginEnabled(xplane.SigDreamFoilB407)
	if phase == xplane.PhaseEnd {
		if !s.leaveMode(mode.Trim) {
			return
		}
		switch {
		case as350:
			s.end(xplane.CmdAS350ForceTrim)
		case b407:
			s.end(xplane.CmdB407ForceTrim)
		}
		return
	}

	helicopterTrim := []binding{
		{gamepad.ButtonFaceLeft, xplane.CmdRudderTrimLeft},
		{gamepad.ButtonFaceRight, xplane.CmdRudderTrimRight},
		{gamepad.ButtonCenterLeft, CmdTrimReset},
	}
	switch {
	case as350:
		if s.enterMode(mode.Trim, helicopterTrim...) {
			s.begin(xplane.CmdAS350ForceTrim)
		}
	case b407:
		if s.enterMode(mode.Trim, helicopterTrim...) {
			s.begin(xplane.CmdB407ForceTrim)
		}
	case s.host.PluginEnabled(xplane.SigRotorSimEC135):
		s.enterMode(mode.Trim,
			binding{gamepad.ButtonDpadLeft, xplane.CmdEC135BeepLeft},
			binding{gamepad.ButtonDpadRight, xplane.CmdEC135BeepRight},
			binding{gamepad.ButtonDpadUp, xplane.CmdEC135BeepFwd},
			binding{gamepad.ButtonDpadDown, xplane.CmdEC135BeepAft},
		)
	default:
		s.enterMode(mode.Trim,
			binding{gamepad.ButtonDpadLeft, xplane.CmdAileronTrimLeft},
			binding{gamepad.ButtonDpadRight, xplane.CmdAileronTrimRight},
			binding{gamepad.ButtonDpadUp, xplane.CmdPitchTrimDown},
			binding{gamepad.ButtonDpadDown, xplane.CmdPitchTrimUp},
			binding{gamepad.ButtonFaceLeft, xplane.CmdRudderTrimLeft},
			binding{gamepad.ButtonFaceRight, xplane.CmdRudderTrimRight},
			binding{gamepad.ButtonCenterLeft, CmdTrimReset},
		)
	}
}

// speedbrakeOrCarbHeat is a modifier on aircraft with a speedbrake and a
// carb heat toggle on everything else.
func (s *Session) speedbrakeOrCarbHeat(phase xplane.Phase) {
	if s.store.Int(xplane.AcfSbrkEQ) == 0 {
		if phase == xplane.PhaseBegin {
			s.once(xplane.CmdCarbHeatToggle)
		}
		return
	}
	if phase == xplane.PhaseEnd {
		s.leaveMode(mode.Speedbrake)
		return
	}
	s.enterMode(mode.Speedbrake,
		binding{gamepad.ButtonFaceUp, xplane.CmdSpeedBrakesUpOne},
		binding{gamepad.ButtonFaceDown, xplane.CmdSpeedBrakesDownOne},
	)
}

// toggleMouseControl enters or leaves mouse mode. From keyboard mode it
// leaves keyboard mode instead.
func (s *Session) toggleMouseControl() {
	switch s.modes.Active() {
	case mode.Keyboard:
		s.toggleKeyboardControl()
	case mode.Default:
		s.assignAxes(
			s.axis(gamepad.AxisLeftX, xplane.AxisNone),
			s.axis(gamepad.AxisLeftY, xplane.AxisNone),
		)
		s.enterMode(mode.Mouse,
			binding{gamepad.ButtonFaceDown, CmdToggleLeftMouseButton},
			binding{gamepad.ButtonFaceRight, CmdToggleRightMouseButton},
			binding{gamepad.ButtonDpadUp, CmdScrollUp},
			binding{gamepad.ButtonDpadDown, CmdScrollDown},
		)
		s.overrideCameraControls()
	case mode.Mouse:
		s.releaseMouseButtons()
		s.assignAxes(
			s.axis(gamepad.AxisLeftX, xplane.AxisYaw),
			s.axis(gamepad.AxisLeftY, xplane.AxisNone),
		)
		s.leaveMode(mode.Mouse)
		s.restoreCameraControls()
	}
}

// toggleKeyboardControl shows or hides the on-screen keyboard. From mouse
// mode it leaves mouse mode instead. A held key keeps keyboard mode active.
func (s *Session) toggleKeyboardControl() {
	switch s.modes.Active() {
	case mode.Mouse:
		s.toggleMouseControl()
	case mode.Default:
		s.enterMode(mode.Keyboard,
			binding{gamepad.ButtonDpadUp, CmdKeyboardSelectorUp},
			binding{gamepad.ButtonDpadDown, CmdKeyboardSelectorDown},
			binding{gamepad.ButtonDpadLeft, CmdKeyboardSelectorLeft},
			binding{gamepad.ButtonDpadRight, CmdKeyboardSelectorRight},
			binding{gamepad.ButtonFaceDown, CmdPressKeyboardKey},
			binding{gamepad.ButtonFaceRight, CmdLockKeyboardKey},
		)
		s.overlay.Show()
	case mode.Keyboard:
		if !s.kb.KeyPressActive() {
			s.endKeyboardMode()
		}
	}
}

func (s *Session) endKeyboardMode() {
	s.kb.ReleaseAll()
	s.leaveMode(mode.Keyboard)
	s.overlay.Hide()
}
