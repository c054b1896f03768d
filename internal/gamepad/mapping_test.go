package gamepad

import "testing"

func TestRemapperAppliesOffsets(t *testing.T) {
	r := Remapper{Profile: ProfileFor("linux", Xbox360), AxisOffset: 3, ButtonOffset: 2}

	if got := r.AxisIndex(AxisRightY); got != 7 {
		t.Errorf("AxisIndex(RightY) = %d, want 7", got)
	}
	if got := r.ButtonIndex(ButtonFaceLeft); got != 4 {
		t.Errorf("ButtonIndex(FaceLeft) = %d, want 4", got)
	}
	if got := r.ButtonIndex(ButtonDpadLeftUp); got != Unsupported {
		t.Errorf("ButtonIndex(DpadLeftUp) = %d, want Unsupported", got)
	}
	if got := r.ExtraButtonIndex(ButtonGuide); got != 10 {
		t.Errorf("ExtraButtonIndex(Guide) = %d, want 10", got)
	}
	if got := r.ExtraButtonIndex(ButtonFaceDown); got != Unsupported {
		t.Errorf("ExtraButtonIndex(FaceDown) = %d, want Unsupported", got)
	}
}

func TestRemapperIsDeterministic(t *testing.T) {
	for _, goos := range []string{"linux", "windows", "darwin"} {
		for _, ct := range []ControllerType{Xbox360, DS4} {
			p := ProfileFor(goos, ct)
			r := Remapper{Profile: p, AxisOffset: 5, ButtonOffset: 9}
			for a := AbstractAxis(0); a < numAbstractAxes; a++ {
				want := p.Axes[a] + 5
				if p.Axes[a] == Unsupported {
					want = Unsupported
				}
				if got := r.AxisIndex(a); got != want || r.AxisIndex(a) != got {
					t.Errorf("%s/%s axis %d = %d, want %d", goos, ct, a, got, want)
				}
			}
			for b := AbstractButton(0); b < numAbstractButtons; b++ {
				want := p.Buttons[b] + 9
				if p.Buttons[b] == Unsupported {
					want = Unsupported
				}
				if got := r.ButtonIndex(b); got != want {
					t.Errorf("%s/%s button %d = %d, want %d", goos, ct, b, got, want)
				}
			}
		}
	}
}

func TestProfileTables(t *testing.T) {
	tests := []struct {
		goos    string
		ct      ControllerType
		rightY  int
		calBase int
		dpadL   int
	}{
		{"linux", Xbox360, 4, 2, 17},
		{"linux", DS4, 4, 0, 19},
		{"windows", Xbox360, 2, 2, 16},
		{"windows", DS4, 0, 1, 20},
	}
	for _, tt := range tests {
		p := ProfileFor(tt.goos, tt.ct)
		if p.CalibrationAxis() != tt.rightY {
			t.Errorf("%s/%s calibration axis = %d, want %d", tt.goos, tt.ct, p.CalibrationAxis(), tt.rightY)
		}
		if p.CalibrationButtonBase() != tt.calBase {
			t.Errorf("%s/%s calibration button = %d, want %d", tt.goos, tt.ct, p.CalibrationButtonBase(), tt.calBase)
		}
		if p.Buttons[ButtonDpadLeft] != tt.dpadL {
			t.Errorf("%s/%s dpad left = %d, want %d", tt.goos, tt.ct, p.Buttons[ButtonDpadLeft], tt.dpadL)
		}
	}
}

func TestNilProfileIsUnsupported(t *testing.T) {
	var r Remapper
	if r.AxisIndex(AxisLeftX) != Unsupported || r.ButtonIndex(ButtonFaceDown) != Unsupported {
		t.Error("remapper without a profile returned an index")
	}
}

func TestLookupType(t *testing.T) {
	if ct, ok := LookupType(0x054C, 0x09CC); !ok || ct != DS4 {
		t.Errorf("LookupType(DS4 v2) = %v, %v", ct, ok)
	}
	if ct, ok := LookupType(0x045E, 0x028E); !ok || ct != Xbox360 {
		t.Errorf("LookupType(Xbox 360) = %v, %v", ct, ok)
	}
	if _, ok := LookupType(0x1234, 0x5678); ok {
		t.Error("LookupType matched an unknown device")
	}
}

func TestParseControllerType(t *testing.T) {
	for _, ct := range []ControllerType{Xbox360, DS4} {
		got, ok := ParseControllerType(ct.String())
		if !ok || got != ct {
			t.Errorf("ParseControllerType(%q) = %v, %v", ct.String(), got, ok)
		}
	}
	if _, ok := ParseControllerType("n64"); ok {
		t.Error("ParseControllerType accepted n64")
	}
}
