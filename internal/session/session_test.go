package session

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/soar/xgamepad/internal/gamepad"
	"github.com/soar/xgamepad/internal/inject"
	"github.com/soar/xgamepad/internal/keyboard"
	"github.com/soar/xgamepad/internal/mode"
	"github.com/soar/xgamepad/internal/settings"
	"github.com/soar/xgamepad/internal/sim"
	"github.com/soar/xgamepad/internal/xplane"
)

// Raw indices of the Xbox 360 layout on Linux with zero offsets.
const (
	axisLeftX       = 0
	axisLeftY       = 1
	axisLeftTrigger = 2
	buttonFaceDown  = 0
	buttonBack      = 6
	buttonBumperL   = 4
	buttonBumperR   = 5
	buttonGuide     = 8
	buttonDpadRight = 13
	buttonDpadLeft  = 17
	buttonDpadUp    = 11
	tick            = 100 * time.Millisecond
	floatTolerance  = 1e-4
	keyCodeO        = 24
)

type memSaver struct {
	saved []settings.Settings
}

func (m *memSaver) Save(s settings.Settings) error {
	m.saved = append(m.saved, s)
	return nil
}

type fixture struct {
	t       *testing.T
	host    *sim.Host
	session *Session
	rec     *inject.Recorder
	overlay *keyboard.Flag
	saver   *memSaver
}

func newFixture(t *testing.T, a sim.Aircraft, plugins ...string) *fixture {
	t.Helper()
	f := &fixture{
		t:       t,
		host:    sim.New(sim.Options{Rate: 10, Plugins: plugins, Aircraft: a}),
		rec:     &inject.Recorder{},
		overlay: &keyboard.Flag{},
		saver:   &memSaver{},
	}
	f.session = New(f.host, Options{
		Settings: settings.Defaults(),
		Saver:    f.saver,
		Injector: f.rec,
		Overlay:  f.overlay,
		GOOS:     "linux",
	})
	f.host.RegisterFlightLoop(f.session.Tick)
	f.host.OnMessage(f.session.HandleMessage)
	f.session.Start()
	return f
}

// configured returns a fixture with a connected controller and the default
// assignments installed.
func configured(t *testing.T, a sim.Aircraft, plugins ...string) *fixture {
	t.Helper()
	f := newFixture(t, a, plugins...)
	f.step(frame(nil))
	if !f.session.SetDefaultAssignments() {
		t.Fatal("SetDefaultAssignments refused")
	}
	return f
}

func frame(axes map[int]float32, buttons ...int) gamepad.Frame {
	f := gamepad.Frame{
		Connected: true,
		Axes:      make([]float32, 12),
		Buttons:   make([]bool, 32),
	}
	for i := range f.Axes {
		f.Axes[i] = gamepad.Center
	}
	for i, v := range axes {
		f.Axes[i] = v
	}
	for _, b := range buttons {
		f.Buttons[b] = true
	}
	return f
}

func (f *fixture) step(fr gamepad.Frame) {
	f.host.SetFrame(fr)
	f.host.Step(tick)
}

func (f *fixture) steps(n int, fr gamepad.Frame) {
	for range n {
		f.step(fr)
	}
}

func (f *fixture) float(name string) float32 {
	return f.host.LocalStore().Float(name)
}

func (f *fixture) floats(name string, n int) []float32 {
	out := make([]float32, n)
	f.host.LocalStore().Floats(name, out, 0)
	return out
}

func (f *fixture) buttonAssignments() []int {
	out := make([]int, xplane.NumButtons)
	f.host.LocalStore().Ints(xplane.JoystickButtonAssignments, out, 0)
	return out
}

func (f *fixture) axisAssignments() []int {
	out := make([]int, xplane.NumAxes)
	f.host.LocalStore().Ints(xplane.JoystickAxisAssignments, out, 0)
	return out
}

func (f *fixture) cmd(name string) int {
	return int(f.host.LocalCommands().Find(name))
}

func (f *fixture) wantMode(m mode.Mode) {
	f.t.Helper()
	if got := f.session.Mode(); got != m {
		f.t.Fatalf("mode = %s, want %s", got, m)
	}
}

func TestStartAndStop(t *testing.T) {
	f := newFixture(t, sim.DefaultAircraft())
	cmds := f.host.LocalCommands()
	for _, def := range commandDefs {
		ref := cmds.Find(def.name)
		if ref == xplane.NoCommand || !cmds.IsCustom(ref) {
			t.Errorf("%s not registered as a custom command", def.name)
		}
	}
	if got := f.host.LocalStore().Int(xplane.OverrideToeBrakes); got != 1 {
		t.Errorf("toe brake override = %d, want 1 for Xbox 360", got)
	}

	if n := f.session.Stop(); n != 0 {
		t.Errorf("Stop unwound %d snapshots, want 0", n)
	}
	if got := f.host.LocalStore().Int(xplane.OverrideToeBrakes); got != 0 {
		t.Errorf("toe brake override after Stop = %d", got)
	}
	cmds.Invoke(cmds.Find(CmdTrimModifier), xplane.PhaseBegin)
	f.wantMode(mode.Default)
}

func TestDefaultAssignments(t *testing.T) {
	f := newFixture(t, sim.DefaultAircraft())
	if f.session.SetDefaultAssignments() {
		t.Fatal("SetDefaultAssignments applied without a joystick")
	}
	f.step(frame(nil))
	if !f.session.SetDefaultAssignments() {
		t.Fatal("SetDefaultAssignments refused")
	}

	wantAxes := []int{xplane.AxisYaw, xplane.AxisNone, xplane.AxisNone, xplane.AxisRoll, xplane.AxisPitch, xplane.AxisNone}
	if diff := cmp.Diff(wantAxes, f.axisAssignments()[:6]); diff != "" {
		t.Errorf("axis assignments mismatch (-want +got):\n%s", diff)
	}

	buttons := f.buttonAssignments()
	want := map[int]string{
		buttonFaceDown:  CmdCowlFlapModifier,
		1:               CmdMixtureControlModifier,
		2:               CmdCycleResetView,
		3:               CmdPropPitchThrottleModifier,
		buttonBumperL:   CmdTrimModifier,
		buttonBumperR:   CmdLookModifier,
		buttonBack:      CmdToggleReverse,
		7:               xplane.CmdBrakesToggleMax,
		buttonGuide:     CmdToggleMouseOrKeyboardControl,
		9:               xplane.CmdGeneralZoomOut,
		10:              xplane.CmdGeneralZoomIn,
		buttonDpadUp:    CmdToggleArmSpeedBrakeOrToggleCarbHeat,
		buttonDpadRight: xplane.CmdFlapsDown,
		15:              xplane.CmdLandingGearToggle,
		buttonDpadLeft:  xplane.CmdFlapsUp,
	}
	for idx, name := range want {
		if buttons[idx] != f.cmd(name) {
			t.Errorf("button %d = %d, want %s (%d)", idx, buttons[idx], name, f.cmd(name))
		}
	}
	if got := f.float(xplane.JoystickHeadingNullzone); got != defaultNullzone {
		t.Errorf("heading nullzone = %v", got)
	}
}

func TestLookRejectedWhileTrimming(t *testing.T) {
	f := configured(t, sim.DefaultAircraft())
	defaults := f.buttonAssignments()

	f.step(frame(nil, buttonBumperL))
	f.wantMode(mode.Trim)
	if got := f.buttonAssignments()[buttonDpadUp]; got != f.cmd(xplane.CmdPitchTrimDown) {
		t.Errorf("trim d-pad up = %d, want pitch trim down", got)
	}

	f.step(frame(nil, buttonBumperL, buttonBumperR))
	f.wantMode(mode.Trim)
	if d := f.session.stack.Depth(); d != 1 {
		t.Errorf("stack depth = %d, want 1", d)
	}

	// Releasing trim while look is still held hands over to look.
	f.step(frame(nil, buttonBumperR))
	f.wantMode(mode.Look)
	if d := f.session.stack.Depth(); d != 1 {
		t.Errorf("stack depth = %d, want 1", d)
	}
	if got := f.buttonAssignments()[buttonDpadLeft]; got != f.cmd(xplane.CmdGeneralLeft) {
		t.Errorf("look d-pad left = %d, want general left", got)
	}

	f.step(frame(nil))
	f.wantMode(mode.Default)
	if diff := cmp.Diff(defaults, f.buttonAssignments()); diff != "" {
		t.Errorf("assignments not restored (-want +got):\n%s", diff)
	}
}

func TestThrottleNullzoneBoundary(t *testing.T) {
	f := configured(t, sim.DefaultAircraft())

	f.steps(3, frame(map[int]float32{axisLeftY: 0.4}))
	if got := f.float(xplane.ThrottleRatioAll); got != 0 {
		t.Fatalf("throttle at nullzone edge = %v, want 0", got)
	}

	f.step(frame(map[int]float32{axisLeftY: 0.3}))
	if got := f.float(xplane.ThrottleRatioAll); got <= 0 {
		t.Errorf("throttle just outside nullzone = %v, want > 0", got)
	}
}

func TestJetReverserRange(t *testing.T) {
	a := sim.DefaultAircraft()
	a.HasReverse = true
	f := configured(t, a)

	f.step(frame(nil, buttonBack))
	f.step(frame(nil))
	if !f.session.Latest().Reverser {
		t.Fatal("reverser not engaged")
	}
	if got := f.float(xplane.ThrottleJetRevRatioAll); got != reverserOnEngagement {
		t.Errorf("jet reverse on engagement = %v", got)
	}

	f.steps(10, frame(map[int]float32{axisLeftY: 1}))
	if got := f.float(xplane.ThrottleJetRevRatioAll); got != -1 {
		t.Errorf("reverse thrust = %v, want -1", got)
	}

	f.steps(8, frame(map[int]float32{axisLeftY: 0}))
	if f.session.Latest().Reverser {
		t.Error("reverser still engaged with forward throttle")
	}

	f.steps(10, frame(map[int]float32{axisLeftY: 1}))
	if got := f.float(xplane.ThrottleJetRevRatioAll); got != 0 {
		t.Errorf("throttle after reverser off = %v, want 0", got)
	}
}

func TestBetaLowerBound(t *testing.T) {
	a := sim.DefaultAircraft()
	a.HasBeta = true
	f := configured(t, a)

	f.step(frame(nil, buttonBack))
	f.steps(15, frame(map[int]float32{axisLeftY: 1}))
	if got := f.float(xplane.ThrottleBetaRevRatioAll); got != -2 {
		t.Errorf("beta range = %v, want -2", got)
	}
}

func TestToLissThrottleInput(t *testing.T) {
	a := sim.DefaultAircraft()
	a.HasReverse = true
	a.ToLiss = true
	f := configured(t, a)

	f.step(frame(map[int]float32{axisLeftY: 0}))
	want := []float32{0.2, 0.2, 0, 0, 0.2}
	if diff := cmp.Diff(want, f.floats(xplane.AirbusThrottleInput, 5), cmpopts.EquateApprox(0, floatTolerance)); diff != "" {
		t.Errorf("throttle input mismatch (-want +got):\n%s", diff)
	}
}

func TestXboxTriggersDriveToeBrakes(t *testing.T) {
	f := configured(t, sim.DefaultAircraft())
	f.step(frame(map[int]float32{axisLeftTrigger: 1}))
	if got := f.float(xplane.LeftBrakeRatio); got != 1 {
		t.Errorf("left brake = %v, want 1", got)
	}
	f.step(frame(nil))
	if got := f.float(xplane.LeftBrakeRatio); got != 0 {
		t.Errorf("left brake after release = %v, want 0", got)
	}
}

func TestMouseMode(t *testing.T) {
	f := configured(t, sim.DefaultAircraft())

	f.step(frame(nil, buttonGuide))
	f.step(frame(nil))
	f.wantMode(mode.Mouse)
	f.rec.Events()

	f.step(frame(map[int]float32{axisLeftX: 1}))
	f.step(frame(nil, buttonFaceDown))
	f.step(frame(nil))
	want := []string{"move 90 0", "left down", "left up"}
	if diff := cmp.Diff(want, f.rec.Events()); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}

	f.step(frame(nil, buttonGuide))
	f.step(frame(nil))
	f.wantMode(mode.Default)
	if got := f.axisAssignments()[axisLeftX]; got != xplane.AxisYaw {
		t.Errorf("left X after mouse mode = %d, want yaw", got)
	}
}

func TestKeyboardLongPress(t *testing.T) {
	f := configured(t, sim.DefaultAircraft())

	f.steps(12, frame(nil, buttonGuide))
	f.step(frame(nil))
	f.wantMode(mode.Keyboard)
	if !f.overlay.Visible() {
		t.Fatal("keyboard overlay hidden")
	}

	f.step(frame(nil, buttonDpadRight))
	f.step(frame(nil))
	kb := f.session.Keyboard()
	if got := kb.Selected().ID; got != "l" {
		t.Fatalf("selected = %q, want l", got)
	}
	f.rec.Events()

	code := kb.Key("l").Code
	f.step(frame(nil, buttonFaceDown))
	f.step(frame(nil))
	want := []string{
		keyEvent(code, true), keyEvent(code, false),
		keyEvent(code, false),
	}
	if diff := cmp.Diff(want, f.rec.Events()); diff != "" {
		t.Errorf("key events mismatch (-want +got):\n%s", diff)
	}

	f.overlay.Hide()
	f.step(frame(nil))
	f.wantMode(mode.Default)
	if d := f.session.stack.Depth(); d != 0 {
		t.Errorf("stack depth = %d, want 0", d)
	}
}

func keyEvent(code int, down bool) string {
	rec := &inject.Recorder{}
	rec.KeyEvent(code, down)
	return rec.Events()[0]
}

func TestCalibration(t *testing.T) {
	f := newFixture(t, sim.DefaultAircraft())
	f.step(frame(nil))
	f.session.StartConfiguration()

	f.step(frame(map[int]float32{7: 1}))
	f.step(frame(map[int]float32{7: 0}))
	if got := f.session.scanner.Step().String(); got != "buttons" {
		t.Fatalf("step = %s, want buttons", got)
	}

	f.step(frame(nil))
	f.step(frame(nil, 5))
	f.step(frame(nil))

	got := f.session.Settings()
	if got.AxisOffset != 3 || got.ButtonOffset != 3 {
		t.Errorf("offsets = %d/%d, want 3/3", got.AxisOffset, got.ButtonOffset)
	}
	if len(f.saver.saved) == 0 || f.saver.saved[len(f.saver.saved)-1].AxisOffset != 3 {
		t.Errorf("calibration not saved: %+v", f.saver.saved)
	}
	if a := f.axisAssignments(); a[3] != xplane.AxisYaw || a[7] != xplane.AxisPitch {
		t.Errorf("axis assignments at offset 3 = %v", a[:10])
	}
	if b := f.buttonAssignments(); b[buttonBumperR+3] != f.cmd(CmdLookModifier) {
		t.Errorf("look modifier not bound at offset 3")
	}
}

func TestStopUnwindsModifiers(t *testing.T) {
	f := configured(t, sim.DefaultAircraft())
	defaults := f.buttonAssignments()

	f.step(frame(nil, buttonBumperL))
	f.wantMode(mode.Trim)

	if n := f.session.Stop(); n != 1 {
		t.Errorf("Stop unwound %d snapshots, want 1", n)
	}
	f.wantMode(mode.Default)
	if diff := cmp.Diff(defaults, f.buttonAssignments()); diff != "" {
		t.Errorf("assignments not restored (-want +got):\n%s", diff)
	}
}

func TestPushToTalkFromTriggerInLookMode(t *testing.T) {
	f := configured(t, sim.DefaultAircraft(), xplane.SigXIvAp)

	f.step(frame(nil, buttonBumperR))
	f.wantMode(mode.Look)
	f.rec.Events()

	f.step(frame(map[int]float32{axisLeftTrigger: 1}, buttonBumperR))
	f.step(frame(nil, buttonBumperR))
	f.step(frame(nil, buttonBumperR))
	want := []string{
		keyEvent(keyCodeO, true), keyEvent(keyCodeO, false),
		keyEvent(keyCodeO, false),
	}
	if diff := cmp.Diff(want, f.rec.Events()); diff != "" {
		t.Errorf("push-to-talk events mismatch (-want +got):\n%s", diff)
	}
}

func TestSwitchTo3DAfterPlaneLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Cessna.acf")
	content := "I\n1100 version\nP acf/_new_plot_XP3D_cock/0 1\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	f := newFixture(t, sim.DefaultAircraft())
	a := sim.DefaultAircraft()
	a.Path = path

	cmds := f.host.LocalCommands()
	cmds.Record()
	f.host.LoadAircraft(a)
	f.host.Step(tick)

	want := []sim.Invocation{
		{Name: xplane.CmdView3DCockpitLook, Phase: xplane.PhaseBegin},
		{Name: xplane.CmdView3DCockpitLook, Phase: xplane.PhaseEnd},
	}
	if diff := cmp.Diff(want, cmds.Invocations()); diff != "" {
		t.Errorf("invocations mismatch (-want +got):\n%s", diff)
	}
}

func TestLookIn3DCockpit(t *testing.T) {
	f := configured(t, sim.DefaultAircraft())
	store := f.host.LocalStore()

	f.step(frame(map[int]float32{axisLeftX: 1}, buttonBumperR))
	f.wantMode(mode.Look)
	if got := store.Int(xplane.CinemaVerite); got != 0 {
		t.Errorf("cinema verite in look mode = %d", got)
	}
	approx := cmpopts.EquateApprox(0, floatTolerance)
	if diff := cmp.Diff(float32(22.5), store.Float(xplane.PilotsHeadPsi), approx); diff != "" {
		t.Errorf("psi mismatch (-want +got):\n%s", diff)
	}

	// Nearly centered views snap back on release.
	store.SetFloat(xplane.PilotsHeadPsi, 359)
	store.SetFloat(xplane.PilotsHeadThe, 0.5)
	f.step(frame(nil))
	f.wantMode(mode.Default)
	if psi, the := store.Float(xplane.PilotsHeadPsi), store.Float(xplane.PilotsHeadThe); psi != 0 || the != 0 {
		t.Errorf("head = %v/%v, want centered", psi, the)
	}
	if got := store.Int(xplane.CinemaVerite); got != 1 {
		t.Errorf("cinema verite not restored")
	}
}

const (
	buttonFaceRight = 1
	buttonFaceUp    = 3
)

func TestRelativeControlRoutes(t *testing.T) {
	c172 := sim.DefaultAircraft()
	glider := sim.DefaultAircraft()
	glider.NumEngines = 0
	glider.HasSpeedbrake = true
	heli := sim.DefaultAircraft()
	heli.CockpitType = 5

	tests := []struct {
		name     string
		aircraft sim.Aircraft
		setup    func(*sim.Store)
		hold     []int
		y        float32
		steps    int
		dataref  string
		want     float32
	}{
		{name: "prop down", aircraft: c172, hold: []int{buttonFaceUp}, y: 1, steps: 1,
			dataref: xplane.PropRotationSpeedRadSecAll, want: 282.7 * 0.8},
		{name: "prop clamps at feathered", aircraft: c172, hold: []int{buttonFaceUp}, y: 1, steps: 10,
			dataref: xplane.PropRotationSpeedRadSecAll, want: 0},
		{name: "prop clamps at redline", aircraft: c172, hold: []int{buttonFaceUp}, y: 0, steps: 3,
			dataref: xplane.PropRotationSpeedRadSecAll, want: 282.7},
		{name: "mixture lean", aircraft: c172, hold: []int{buttonFaceRight}, y: 1, steps: 1,
			dataref: xplane.MixtureRatioAll, want: 0.8},
		{name: "mixture clamps at cutoff", aircraft: c172, hold: []int{buttonFaceRight}, y: 1, steps: 10,
			dataref: xplane.MixtureRatioAll, want: 0},
		{name: "mixture rich", aircraft: c172, hold: []int{buttonFaceRight}, y: 0, steps: 5,
			setup:   func(s *sim.Store) { s.SetFloat(xplane.MixtureRatioAll, 0.5) },
			dataref: xplane.MixtureRatioAll, want: 1},
		{name: "cowl flaps close with stick up", aircraft: c172, hold: []int{buttonFaceDown}, y: 0, steps: 1,
			setup:   func(s *sim.Store) { s.SetFloats(xplane.CowlFlapRatio, []float32{1}, 0) },
			dataref: xplane.CowlFlapRatio, want: 0.8},
		{name: "cowl flaps open with stick down", aircraft: c172, hold: []int{buttonFaceDown}, y: 1, steps: 2,
			dataref: xplane.CowlFlapRatio, want: 0.4},
		{name: "armed speedbrake de-arms", aircraft: glider, y: 1, steps: 1,
			setup:   func(s *sim.Store) { s.SetFloat(xplane.SpeedbrakeRatio, speedbrakeArmed) },
			dataref: xplane.SpeedbrakeRatio, want: 0.2},
		{name: "armed speedbrake retracts", aircraft: glider, y: 0, steps: 1,
			setup:   func(s *sim.Store) { s.SetFloat(xplane.SpeedbrakeRatio, speedbrakeArmed) },
			dataref: xplane.SpeedbrakeRatio, want: 0},
		{name: "collective up", aircraft: heli, y: 0, steps: 1,
			dataref: xplane.PropPitchDeg, want: -2 + 0.2*17},
		{name: "collective clamps at max pitch", aircraft: heli, y: 0, steps: 10,
			dataref: xplane.PropPitchDeg, want: 15},
		{name: "collective clamps at min pitch", aircraft: heli, y: 1, steps: 3,
			dataref: xplane.PropPitchDeg, want: -2},
	}
	approx := cmpopts.EquateApprox(0, 0.01)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := configured(t, tt.aircraft)
			if tt.setup != nil {
				tt.setup(f.host.LocalStore())
			}
			f.steps(tt.steps, frame(map[int]float32{axisLeftY: tt.y}, tt.hold...))
			if diff := cmp.Diff(tt.want, f.floats(tt.dataref, 1)[0], approx); diff != "" {
				t.Errorf("%s mismatch (-want +got):\n%s", tt.dataref, diff)
			}
			if got := f.float(xplane.ThrottleRatioAll); got != 0 {
				t.Errorf("throttle moved to %v", got)
			}
		})
	}
}

func TestSteppedPanIn2DView(t *testing.T) {
	tests := []struct {
		name    string
		view    int
		axes    map[int]float32
		command string
		want    int
	}{
		{"full right", xplane.ViewForwardsWithPanel, map[int]float32{axisLeftX: 1}, xplane.CmdGeneralRight, 4},
		{"half right", xplane.ViewForwardsWithPanel, map[int]float32{axisLeftX: 0.75}, xplane.CmdGeneralRight, 1},
		{"full left", xplane.ViewForwardsWithPanel, map[int]float32{axisLeftX: 0}, xplane.CmdGeneralLeft, 4},
		{"full up", xplane.ViewChase, map[int]float32{axisLeftY: 0}, xplane.CmdGeneralUp, 4},
		{"inside nullzone", xplane.ViewChase, map[int]float32{axisLeftY: 0.55}, xplane.CmdGeneralDown, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := configured(t, sim.DefaultAircraft())
			f.host.LocalStore().SetInt(xplane.ViewType, tt.view)
			f.step(frame(nil, buttonBumperR))
			f.wantMode(mode.Look)

			cmds := f.host.LocalCommands()
			cmds.Record()
			f.step(frame(tt.axes, buttonBumperR))
			n := 0
			for _, inv := range cmds.Invocations() {
				if inv.Name == tt.command && inv.Phase == xplane.PhaseBegin {
					n++
				}
			}
			if n != tt.want {
				t.Errorf("%s fired %d times, want %d", tt.command, n, tt.want)
			}
		})
	}
}

func TestUnmovedLeftYReadsAsCentered(t *testing.T) {
	for _, rest := range []float32{0, 1} {
		f := newFixture(t, sim.DefaultAircraft())
		f.step(frame(map[int]float32{axisLeftY: rest}))
		if !f.session.SetDefaultAssignments() {
			t.Fatal("SetDefaultAssignments refused")
		}

		f.steps(5, frame(map[int]float32{axisLeftY: rest}))
		if got := f.float(xplane.ThrottleRatioAll); got != 0 {
			t.Errorf("rest %v: throttle after unmoved stick = %v, want 0", rest, got)
		}

		// Once the stick has been seen away from its rest value the raw
		// reading is trusted.
		f.step(frame(nil))
		f.step(frame(map[int]float32{axisLeftY: 0}))
		if got := f.float(xplane.ThrottleRatioAll); got <= 0 {
			t.Errorf("rest %v: throttle after calibration = %v, want > 0", rest, got)
		}
	}
}
