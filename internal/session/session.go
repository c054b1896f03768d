// Package session is the gamepad plugin proper: it owns the settings, the
// mode machine, the assignment stack, the calibration scanner and the
// on-screen keyboard, registers the x_gamepad commands with the host and
// runs the per-frame dispatcher from the host's flight loop.
//
// Everything in a Session runs on the flight loop goroutine. Other
// goroutines hand work over through the host (sim.Host.Post) and read state
// through Latest.
package session

import (
	"runtime"
	"sync/atomic"

	"github.com/soar/xgamepad/internal/assign"
	"github.com/soar/xgamepad/internal/calibrate"
	"github.com/soar/xgamepad/internal/gamepad"
	"github.com/soar/xgamepad/internal/inject"
	"github.com/soar/xgamepad/internal/keyboard"
	"github.com/soar/xgamepad/internal/logger"
	"github.com/soar/xgamepad/internal/mode"
	"github.com/soar/xgamepad/internal/settings"
	"github.com/soar/xgamepad/internal/xplane"
)

// Saver persists the settings record.
type Saver interface {
	Save(settings.Settings) error
}

type Options struct {
	Settings settings.Settings
	Saver    Saver
	Injector inject.Injector
	Overlay  keyboard.Overlay
	// Displays bound the emulated mouse pointer.
	Displays []inject.Rect
	// GOOS selects the controller tables; empty means runtime.GOOS.
	GOOS string
}

type Session struct {
	host     xplane.Host
	store    xplane.Store
	cmds     xplane.Commands
	saver    Saver
	injector inject.Injector
	overlay  keyboard.Overlay
	pointer  *inject.Pointer
	goos     string

	settings settings.Settings
	remap    gamepad.Remapper
	modes    mode.Machine
	stack    *assign.Stack
	scanner  *calibrate.Scanner
	kb       *keyboard.Keyboard

	refs    map[string]xplane.CommandRef
	started bool

	// dispatcher
	leftXCalibrated    bool
	leftYMin, leftYMax float32
	triggers           triggerState

	reverser       bool
	cinemaVerite   bool
	headCaptured   bool
	defaultHead    [3]float32
	switchTo3D     bool
	toggleBegin    float64
	toggleConsumed bool
	lastScroll     float64
	mouseDown      [2]bool
	propLevers     int
	mixtureLevers  int

	latest atomic.Pointer[Snapshot]
}

func New(host xplane.Host, opts Options) *Session {
	s := &Session{
		host:     host,
		store:    host.Store(),
		cmds:     host.Commands(),
		saver:    opts.Saver,
		injector: opts.Injector,
		overlay:  opts.Overlay,
		pointer:  inject.NewPointer(opts.Displays),
		goos:     opts.GOOS,
		settings: opts.Settings,
		scanner:  calibrate.New(),
		refs:     make(map[string]xplane.CommandRef),
		leftYMin: 1,
		leftYMax: 0,
	}
	if s.goos == "" {
		s.goos = runtime.GOOS
	}
	if s.injector == nil {
		s.injector, _, _ = inject.Open("null")
	}
	if s.overlay == nil {
		s.overlay = &keyboard.Flag{}
	}
	s.stack = assign.NewStack(s.store)
	s.kb = keyboard.New(s.injector)
	s.updateRemapper()
	s.publish()
	return s
}

// Start creates and handles the custom commands and takes over the toe
// brakes when the controller needs it.
func (s *Session) Start() {
	if s.started {
		return
	}
	for _, def := range commandDefs {
		ref := s.cmds.Create(def.name, def.description)
		handler := def.handler
		s.cmds.Handle(ref, func(_ xplane.CommandRef, phase xplane.Phase) {
			handler(s, phase)
		})
		s.refs[def.name] = ref
	}
	s.updateToeBrakeControl()
	s.refreshIndicators()
	s.started = true
	logger.Infof("session started: %s, axis offset %d, button offset %d",
		s.remap.Profile.Name, s.settings.AxisOffset, s.settings.ButtonOffset)
}

// Stop releases every key, reverts any remaining button assignments,
// unhandles the commands and gives the toe brakes back. It returns how many
// assignment snapshots were unwound.
func (s *Session) Stop() int {
	if !s.started {
		return 0
	}
	s.kb.ReleaseAll()
	s.releaseMouseButtons()
	if s.modes.Is(mode.Look) || s.modes.Is(mode.Mouse) {
		s.restoreCameraControls()
	}
	n := s.stack.Unwind()
	s.modes.Reset()
	s.overlay.Hide()
	for _, def := range commandDefs {
		s.cmds.Unhandle(s.refs[def.name])
	}
	s.store.SetInt(xplane.OverrideToeBrakes, 0)
	s.started = false
	s.publish()
	logger.Infof("session stopped, unwound %d assignment snapshots", n)
	return n
}

func (s *Session) Settings() settings.Settings {
	return s.settings
}

func (s *Session) Mode() mode.Mode {
	return s.modes.Active()
}

func (s *Session) Keyboard() *keyboard.Keyboard {
	return s.kb
}

func (s *Session) updateRemapper() {
	s.remap = gamepad.Remapper{
		Profile:      gamepad.ProfileFor(s.goos, s.settings.ControllerType),
		AxisOffset:   s.settings.AxisOffset,
		ButtonOffset: s.settings.ButtonOffset,
	}
}

// The Xbox 360 triggers are read as axes and turned into brake ratios by the
// session, so the host must not drive the toe brakes itself.
func (s *Session) updateToeBrakeControl() {
	override := 0
	if s.settings.ControllerType == gamepad.Xbox360 {
		override = 1
	}
	s.store.SetInt(xplane.OverrideToeBrakes, override)
}

func (s *Session) save() {
	if s.saver == nil {
		return
	}
	if err := s.saver.Save(s.settings); err != nil {
		logger.Errorf("saving settings: %v", err)
	}
}

// ApplySettings replaces the whole record, e.g. after the settings file was
// edited externally. It is not persisted again.
func (s *Session) ApplySettings(st settings.Settings) {
	if st.ControllerType != s.settings.ControllerType {
		s.scanner.Stop()
	}
	s.settings = st
	s.updateRemapper()
	if s.started {
		s.updateToeBrakeControl()
	}
	s.refreshIndicators()
}

// SetControllerType switches the controller layout, aborting a running
// calibration.
func (s *Session) SetControllerType(t gamepad.ControllerType) {
	s.scanner.Stop()
	s.settings.ControllerType = t
	s.updateRemapper()
	s.updateToeBrakeControl()
	s.save()
	logger.Infof("controller type set to %s", t)
}

func (s *Session) SetShowIndicators(show bool) {
	s.settings.ShowIndicators = show
	s.refreshIndicators()
	s.save()
}

// HideKeyboard closes the on-screen keyboard; the next tick leaves keyboard
// mode.
func (s *Session) HideKeyboard() {
	s.overlay.Hide()
}

// StartConfiguration begins a calibration scan, or aborts the one running.
func (s *Session) StartConfiguration() {
	if s.scanner.Scanning() {
		s.scanner.Stop()
	} else {
		s.scanner.Begin()
	}
	logger.Infof("calibration: %s", s.scanner.Status())
}

// StopConfiguration aborts a running scan and persists the settings, as
// closing the settings window does.
func (s *Session) StopConfiguration() {
	s.scanner.Stop()
	s.save()
}

func (s *Session) finishCalibration(r calibrate.Result) {
	s.settings.AxisOffset = r.AxisOffset
	s.settings.ButtonOffset = r.ButtonOffset
	s.updateRemapper()
	s.SetDefaultAssignments()
	s.save()
	logger.Infof("calibration done: axis offset %d, button offset %d", r.AxisOffset, r.ButtonOffset)
}

// HandleMessage reacts to host notifications.
func (s *Session) HandleMessage(msg xplane.Message) {
	switch msg {
	case xplane.MsgPlaneLoaded:
		s.headCaptured = false
		s.reverser = false
		s.refreshIndicators()
		s.switchTo3D = !s.has2DPanel()
	case xplane.MsgAirportLoaded:
		s.switchTo3D = !s.has2DPanel()
	case xplane.MsgEnteredVR, xplane.MsgExitingVR:
		// The overlay is rebuilt for the new display mode.
		if s.modes.Is(mode.Keyboard) && !s.kb.KeyPressActive() {
			s.endKeyboardMode()
			s.toggleKeyboardControl()
		}
	}
}

func (s *Session) now() float64 {
	return s.host.Elapsed().Seconds()
}

func (s *Session) ref(name string) xplane.CommandRef {
	if ref, ok := s.refs[name]; ok {
		return ref
	}
	return s.cmds.Find(name)
}

func (s *Session) once(name string) {
	if ref := s.ref(name); ref != xplane.NoCommand {
		s.cmds.Once(ref)
	}
}

func (s *Session) begin(name string) {
	if ref := s.ref(name); ref != xplane.NoCommand {
		s.cmds.Begin(ref)
	}
}

func (s *Session) end(name string) {
	if ref := s.ref(name); ref != xplane.NoCommand {
		s.cmds.End(ref)
	}
}
