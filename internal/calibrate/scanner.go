// Package calibrate discovers where the host placed the controller in its
// joystick arrays. The user moves the right stick and presses a face button;
// the scanner watches the raw arrays and derives the axis and button offsets
// relative to the selected profile.
package calibrate

import "github.com/soar/xgamepad/internal/gamepad"

// Step is the position of the calibration flow.
type Step int

const (
	Start Step = iota
	Axes
	Buttons
	Abort
	Done
)

func (s Step) String() string {
	switch s {
	case Start:
		return "start"
	case Axes:
		return "axes"
	case Buttons:
		return "buttons"
	case Abort:
		return "abort"
	case Done:
		return "done"
	default:
		return "unknown"
	}
}

// Thresholds apply to centered axis values in -1..1; see Centered.
const (
	markThreshold   = 0.75
	selectThreshold = -0.75
)

// Centered converts host axis values (0..1, rest at 0.5) to the -1..1 scale
// the scan thresholds are defined on.
func Centered(axes []float32) []float32 {
	out := make([]float32, len(axes))
	for i, v := range axes {
		out[i] = 2*v - 1
	}
	return out
}

// Result reports what one Scan tick did.
type Result struct {
	// Consumed is set while the scan needs exclusive use of the frame; the
	// axis dispatcher must skip the tick.
	Consumed bool
	// Finished is set on the tick that produced both offsets. The caller
	// applies the default assignments and persists the settings.
	Finished     bool
	AxisOffset   int
	ButtonOffset int
}

// Scanner is the calibration state machine.
type Scanner struct {
	step        Step
	axisMarks   []bool
	buttonMarks []bool

	axisOffset int
}

func New() *Scanner {
	return &Scanner{}
}

func (s *Scanner) Step() Step {
	return s.step
}

// Scanning reports whether the scan is waiting for input.
func (s *Scanner) Scanning() bool {
	return s.step == Axes || s.step == Buttons
}

// Begin starts a scan from any step.
func (s *Scanner) Begin() {
	s.clear()
	s.step = Axes
}

// Stop aborts a running scan; otherwise it returns to Start.
func (s *Scanner) Stop() {
	if s.Scanning() {
		s.step = Abort
		return
	}
	s.step = Start
}

func (s *Scanner) clear() {
	s.axisMarks = nil
	s.buttonMarks = nil
}

// Scan runs one tick against centered axis values and raw button states.
func (s *Scanner) Scan(p *gamepad.Profile, axes []float32, buttons []bool) Result {
	switch s.step {
	case Axes:
		if len(s.axisMarks) < len(axes) {
			s.axisMarks = append(s.axisMarks, make([]bool, len(axes)-len(s.axisMarks))...)
		}
		for i, v := range axes {
			if v > markThreshold {
				s.axisMarks[i] = true
				continue
			}
			if s.axisMarks[i] && v < selectThreshold {
				s.axisOffset = i - p.CalibrationAxis()
				s.clear()
				s.step = Buttons
				break
			}
		}
		return Result{Consumed: true}

	case Buttons:
		if len(s.buttonMarks) < len(buttons) {
			s.buttonMarks = append(s.buttonMarks, make([]bool, len(buttons)-len(s.buttonMarks))...)
		}
		for i, pressed := range buttons {
			if !pressed {
				s.buttonMarks[i] = true
				continue
			}
			if s.buttonMarks[i] {
				s.clear()
				s.step = Done
				return Result{
					Consumed:     true,
					Finished:     true,
					AxisOffset:   s.axisOffset,
					ButtonOffset: i - p.CalibrationButtonBase(),
				}
			}
		}
		return Result{Consumed: true}

	case Abort:
		s.clear()
		s.step = Start
		return Result{Consumed: true}
	}
	return Result{}
}

// Status is the user-facing caption for the current step.
func (s *Scanner) Status() string {
	switch s.step {
	case Axes:
		return "Move the right stick of your controller up and down."
	case Buttons:
		return "Now press and release the 'X'-Button on your controller."
	case Done:
		return "Success! Your controller is now fully configured."
	case Abort:
		return "Configuration aborted!"
	default:
		return "Click 'Start Configuration' to configure X-Plane for the selected controller type."
	}
}
