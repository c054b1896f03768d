package session

import (
	"github.com/soar/xgamepad/internal/calibrate"
	"github.com/soar/xgamepad/internal/gamepad"
	"github.com/soar/xgamepad/internal/logger"
	"github.com/soar/xgamepad/internal/mode"
	"github.com/soar/xgamepad/internal/xplane"
)

const (
	relativeControlMultiplier = 2.0
	lookSensitivity           = 225.0
	mousePointerSensitivity   = 30.0
	maxHeadPitch              = 89.9

	// triggerThreshold is the XInput trigger threshold (30 of 255).
	triggerThreshold = 30.0 / 255.0

	speedbrakeArmed = -0.5
)

type triggerState struct {
	left, right           bool
	prevMode              mode.Mode
	leftBrake, rightBrake float32
}

// Tick runs one flight loop iteration. elapsed is the time since the
// previous tick in seconds.
func (s *Session) Tick(elapsed float32) {
	if !s.started {
		return
	}
	defer s.publish()

	s.kb.Pump(s.now())
	if s.modes.Is(mode.Keyboard) && !s.overlay.Visible() {
		s.endKeyboardMode()
	}
	if !s.headCaptured {
		s.defaultHead = s.pilotEye()
		s.headCaptured = true
	}
	if s.switchTo3D {
		s.once(xplane.CmdView3DCockpitLook)
		s.switchTo3D = false
	}
	if s.reverser && s.throttleRatio(s.throttleDataref()) > 0 {
		s.reverser = false
		logger.Debugf("throttle moved forward, reverser off")
	}

	if s.store.Int(xplane.HasJoystick) == 0 {
		return
	}
	axes := make([]float32, xplane.NumAxes)
	s.store.Floats(xplane.JoystickAxisValues, axes, 0)
	raw := make([]int, xplane.NumButtons)
	s.store.Ints(xplane.JoystickButtonValues, raw, 0)
	buttons := make([]bool, len(raw))
	for i, v := range raw {
		buttons[i] = v != 0
	}

	s.updateTriggers(axes)

	if r := s.scanner.Scan(s.remap.Profile, calibrate.Centered(axes), buttons); r.Consumed {
		if r.Finished {
			s.finishCalibration(r)
		}
		return
	}
	s.dispatch(axes, elapsed)
}

// triggerTravel maps an analog trigger from the host's axis scale, where
// the released trigger rests at center, to 0..1.
func triggerTravel(v float32) float32 {
	return max(gamepad.Normalize(v, gamepad.Center, 1, 0, 1), 0)
}

// updateTriggers drives the toe brakes from the Xbox 360 analog triggers.
// In look mode the triggers are push-to-talk and CWS instead.
func (s *Session) updateTriggers(axes []float32) {
	if s.settings.ControllerType != gamepad.Xbox360 {
		return
	}
	li, ri := s.remap.TriggerAxisIndex(false), s.remap.TriggerAxisIndex(true)
	if li == ri || li < 0 || ri < 0 || li >= len(axes) || ri >= len(axes) {
		return
	}
	t := &s.triggers
	lt, rt := triggerTravel(axes[li]), triggerTravel(axes[ri])
	leftDown, rightDown := lt > triggerThreshold, rt > triggerThreshold

	var leftBrake, rightBrake float32
	if s.modes.Is(mode.Look) {
		switch {
		case leftDown && !t.left:
			s.begin(CmdPushToTalk)
		case !leftDown && t.left:
			s.end(CmdPushToTalk)
		}
		switch {
		case rightDown && !t.right:
			s.begin(CmdCWSOrDisconnectAutopilot)
		case !rightDown && t.right:
			s.end(CmdCWSOrDisconnectAutopilot)
		}
	} else {
		if s.modes.Active() != t.prevMode {
			if t.left {
				s.end(CmdPushToTalk)
			}
			if t.right {
				s.end(CmdCWSOrDisconnectAutopilot)
			}
		}
		if leftDown {
			leftBrake = gamepad.Normalize(lt, triggerThreshold, 1, 0, 1)
		}
		if rightDown {
			rightBrake = gamepad.Normalize(rt, triggerThreshold, 1, 0, 1)
		}
	}
	if leftBrake != t.leftBrake {
		s.store.SetFloat(xplane.LeftBrakeRatio, leftBrake)
		t.leftBrake = leftBrake
	}
	if rightBrake != t.rightBrake {
		s.store.SetFloat(xplane.RightBrakeRatio, rightBrake)
		t.rightBrake = rightBrake
	}
	t.prevMode = s.modes.Active()
	t.left, t.right = leftDown, rightDown
}

func (s *Session) dispatch(axes []float32, elapsed float32) {
	lx, ly := s.remap.AxisIndex(gamepad.AxisLeftX), s.remap.AxisIndex(gamepad.AxisLeftY)
	if lx < 0 || ly < 0 || lx >= len(axes) || ly >= len(axes) {
		return
	}
	nullzone := s.store.Float(xplane.JoystickPitchNullzone)

	x := axes[lx]
	if x > 0 {
		s.leftXCalibrated = true
	}

	// An unmoved axis may report 0 or 1 instead of center until it has been
	// seen on both sides.
	y := axes[ly]
	s.leftYMin = min(s.leftYMin, y)
	s.leftYMax = max(s.leftYMax, y)
	if gamepad.FloatEqual(s.leftYMin, 1) || gamepad.FloatEqual(s.leftYMax, 0) {
		y = gamepad.Center
	}

	if !s.leftXCalibrated {
		return
	}

	if s.modes.Is(mode.Look) {
		s.end(xplane.CmdServosOffAny)
		s.look(x, y, nullzone, elapsed)
		return
	}
	s.end(CmdPushToTalk)

	mult := relativeControlMultiplier * elapsed
	switch {
	case s.modes.Is(mode.Prop) && !s.isHelicopter():
		s.moveProp(y, nullzone, mult)
	case s.modes.Is(mode.Mixture):
		s.moveMixture(y, nullzone, mult)
	case s.modes.Is(mode.Cowl):
		s.moveCowlFlaps(y, nullzone, mult)
	case s.modes.Is(mode.Mouse):
		s.moveMouse(x, y, nullzone, elapsed)
	case s.modes.Is(mode.Default) && s.isHelicopter():
		s.moveCollective(y, nullzone, mult)
	case s.isGliderWithSpeedbrakes():
		s.moveSpeedbrake(y, nullzone, mult)
	default:
		s.moveThrottle(y, nullzone, mult)
	}
}

func (s *Session) look(x, y, nullzone, elapsed float32) {
	switch s.store.Int(xplane.ViewType) {
	case xplane.View3DCockpitCommandLook:
		mult := lookSensitivity * elapsed
		dirX, dx := gamepad.StickDelta(x, nullzone, 1)
		dirY, dy := gamepad.StickDelta(y, nullzone, 1)
		psi := s.store.Float(xplane.PilotsHeadPsi) + float32(dirX)*dx*mult
		the := s.store.Float(xplane.PilotsHeadThe) - float32(dirY)*dy*mult
		s.store.SetFloat(xplane.PilotsHeadPsi, psi)
		s.store.SetFloat(xplane.PilotsHeadThe, min(max(the, -maxHeadPitch), maxHeadPitch))

	case xplane.ViewForwardsWithPanel, xplane.ViewChase:
		s.repeatPan(x, nullzone, xplane.CmdGeneralLeft, xplane.CmdGeneralRight)
		s.repeatPan(y, nullzone, xplane.CmdGeneralUp, xplane.CmdGeneralDown)
	}
}

// repeatPan fires the pan command a number of times that grows with the
// square of the deflection.
func (s *Session) repeatPan(v, nullzone float32, negative, positive string) {
	var name string
	var d float32
	switch gamepad.Deflection(v, nullzone) {
	case -1:
		name, d = negative, gamepad.Normalize(v, gamepad.Center, 0, 0, 1)
	case 1:
		name, d = positive, gamepad.Normalize(v, gamepad.Center, 1, 0, 1)
	default:
		return
	}
	n := int(2*d*2*d + 0.5)
	for range n {
		s.once(name)
	}
}

func (s *Session) moveProp(y, nullzone, mult float32) {
	feathered := s.store.Float(xplane.AcfFeatheredPitch)
	redline := s.store.Float(xplane.AcfRSCRedlinePrp)
	dir, d := gamepad.StickDelta(y, nullzone, redline-feathered)
	if dir == 0 {
		return
	}
	v := s.store.Float(xplane.PropRotationSpeedRadSecAll)
	if dir < 0 {
		v = min(v+mult*d, redline)
	} else {
		v = max(v-mult*d, feathered)
	}
	s.store.SetFloat(xplane.PropRotationSpeedRadSecAll, v)
}

func (s *Session) moveMixture(y, nullzone, mult float32) {
	dir, d := gamepad.StickDelta(y, nullzone, 1)
	if dir == 0 {
		return
	}
	v := s.store.Float(xplane.MixtureRatioAll)
	s.store.SetFloat(xplane.MixtureRatioAll, min(max(v-float32(dir)*mult*d, 0), 1))
}

// moveCowlFlaps opens the cowl flaps with the stick pulled back.
func (s *Session) moveCowlFlaps(y, nullzone, mult float32) {
	dir, d := gamepad.StickDelta(y, nullzone, 1)
	n := s.numEngines()
	if dir == 0 || n == 0 {
		return
	}
	ratios := make([]float32, n)
	s.store.Floats(xplane.CowlFlapRatio, ratios, 0)
	for i := range ratios {
		ratios[i] = min(max(ratios[i]+float32(dir)*mult*d, 0), 1)
	}
	s.store.SetFloats(xplane.CowlFlapRatio, ratios, 0)
}

func (s *Session) moveCollective(y, nullzone, mult float32) {
	if gamepad.Deflection(y, nullzone) == 0 {
		return
	}
	n := s.numEngines()
	minPitch := make([]float32, xplane.MaxEngines)
	maxPitch := make([]float32, xplane.MaxEngines)
	s.store.Floats(xplane.AcfMinPitch, minPitch, 0)
	s.store.Floats(xplane.AcfMaxPitch, maxPitch, 0)
	pitch := make([]float32, n)
	s.store.Floats(xplane.PropPitchDeg, pitch, 0)
	for i := range pitch {
		dir, d := gamepad.StickDelta(y, nullzone, maxPitch[i]-minPitch[i])
		if dir < 0 {
			pitch[i] = min(pitch[i]+mult*d, maxPitch[i])
		} else {
			pitch[i] = max(pitch[i]-mult*d, minPitch[i])
		}
	}
	s.store.SetFloats(xplane.PropPitchDeg, pitch, 0)
}

// moveSpeedbrake extends the speedbrake with the stick pulled back. Moving
// an armed speedbrake de-arms it first.
func (s *Session) moveSpeedbrake(y, nullzone, mult float32) {
	dir, d := gamepad.StickDelta(y, nullzone, 1)
	if dir == 0 {
		return
	}
	v := s.store.Float(xplane.SpeedbrakeRatio)
	if gamepad.FloatEqual(v, speedbrakeArmed) {
		v = 0
	}
	s.store.SetFloat(xplane.SpeedbrakeRatio, min(max(v+float32(dir)*mult*d, 0), 1))
}

func (s *Session) moveThrottle(y, nullzone, mult float32) {
	dir, d := gamepad.StickDelta(y, nullzone, 1)
	if dir == 0 {
		return
	}
	name := s.throttleDataref()
	v := s.throttleRatio(name)
	if dir < 0 {
		v = min(v+mult*d, 1)
	} else {
		var lower float32
		if s.reverser {
			lower = -1
			if name == xplane.ThrottleBetaRevRatioAll {
				lower = -2
			}
		}
		v = max(v-mult*d, lower)
	}
	s.store.SetFloat(name, v)
	s.setToLissThrottle(v)
}

func (s *Session) moveMouse(x, y, nullzone, elapsed float32) {
	distance := func(v float32) int {
		dir, d := gamepad.StickDelta(v, nullzone, 1)
		step := d * mousePointerSensitivity
		return dir * int(step*step*elapsed)
	}
	dx, dy := s.pointer.Move(distance(x), distance(y))
	if dx == 0 && dy == 0 {
		return
	}
	if err := s.injector.PointerMove(dx, dy); err != nil {
		logger.Warningf("pointer move %d,%d: %v", dx, dy, err)
	}
}
