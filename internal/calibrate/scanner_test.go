package calibrate

import (
	"testing"

	"github.com/soar/xgamepad/internal/gamepad"
)

func axesWith(i int, v float32) []float32 {
	axes := make([]float32, 12)
	axes[i] = v
	return axes
}

func TestAxisScanSelectsMovedIndex(t *testing.T) {
	p := gamepad.ProfileFor("linux", gamepad.Xbox360)
	s := New()
	s.Begin()

	if r := s.Scan(p, axesWith(7, 0.9), nil); !r.Consumed || s.Step() != Axes {
		t.Fatalf("after rise: step = %s, consumed = %v", s.Step(), r.Consumed)
	}
	s.Scan(p, axesWith(7, 0), nil)
	if s.Step() != Axes {
		t.Fatalf("rest value advanced the scan to %s", s.Step())
	}
	s.Scan(p, axesWith(7, -0.9), nil)
	if s.Step() != Buttons {
		t.Fatalf("step = %s, want buttons", s.Step())
	}

	buttons := make([]bool, 20)
	s.Scan(p, nil, buttons)
	buttons[5] = true
	r := s.Scan(p, nil, buttons)
	if !r.Finished {
		t.Fatal("button press did not finish the scan")
	}
	if want := 7 - 4; r.AxisOffset != want {
		t.Errorf("AxisOffset = %d, want %d", r.AxisOffset, want)
	}
	if want := 5 - 2; r.ButtonOffset != want {
		t.Errorf("ButtonOffset = %d, want %d", r.ButtonOffset, want)
	}
	if s.Step() != Done || s.Scanning() {
		t.Errorf("step = %s, want done", s.Step())
	}
	if s.Status() != "Success! Your controller is now fully configured." {
		t.Errorf("Status = %q", s.Status())
	}
}

func TestUnmarkedDropIsIgnored(t *testing.T) {
	p := gamepad.ProfileFor("linux", gamepad.DS4)
	s := New()
	s.Begin()
	s.Scan(p, axesWith(3, -0.9), nil)
	if s.Step() != Axes {
		t.Errorf("drop without a prior rise selected an axis; step = %s", s.Step())
	}
}

func TestHeldButtonIsNotSelected(t *testing.T) {
	p := gamepad.ProfileFor("linux", gamepad.DS4)
	s := New()
	s.Begin()
	s.Scan(p, axesWith(4, 1), nil)
	s.Scan(p, axesWith(4, -1), nil)

	held := make([]bool, 16)
	held[2] = true
	s.Scan(p, nil, held)
	s.Scan(p, nil, held)
	if s.Step() != Buttons {
		t.Fatalf("a button held since the start finished the scan")
	}
	held[9] = true
	r := s.Scan(p, nil, held)
	if !r.Finished || r.ButtonOffset != 9 {
		t.Errorf("result = %+v, want button offset 9", r)
	}
}

func TestStopAbortsAndResets(t *testing.T) {
	p := gamepad.ProfileFor("linux", gamepad.Xbox360)
	s := New()
	s.Begin()
	s.Scan(p, axesWith(2, 0.9), nil)

	s.Stop()
	if s.Step() != Abort || s.Status() != "Configuration aborted!" {
		t.Fatalf("step = %s, status = %q", s.Step(), s.Status())
	}
	if r := s.Scan(p, nil, nil); !r.Consumed || s.Step() != Start {
		t.Fatalf("abort tick: step = %s", s.Step())
	}

	// Marks from the aborted run must not leak into the next one.
	s.Begin()
	s.Scan(p, axesWith(2, -0.9), nil)
	if s.Step() != Axes {
		t.Errorf("stale mark selected an axis; step = %s", s.Step())
	}

	s.Stop()
	s.Scan(p, nil, nil)
	s.Stop()
	if s.Step() != Start {
		t.Errorf("Stop outside a scan: step = %s, want start", s.Step())
	}
	if r := s.Scan(p, axesWith(0, 1), nil); r.Consumed {
		t.Error("idle scanner consumed the frame")
	}
}

func TestCentered(t *testing.T) {
	got := Centered([]float32{0, 0.5, 1})
	if got[0] != -1 || got[1] != 0 || got[2] != 1 {
		t.Errorf("Centered = %v", got)
	}
}
