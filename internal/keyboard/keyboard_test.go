package keyboard

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/soar/xgamepad/internal/xplane"
)

type events []string

func (e *events) KeyEvent(code int, down bool) error {
	*e = append(*e, fmt.Sprintf("%d:%v", code, down))
	return nil
}

func TestWiringIsComplete(t *testing.T) {
	kb := New(nil)
	if len(kb.Keys()) != len(wiring) {
		t.Fatalf("%d keys but %d wiring entries", len(kb.Keys()), len(wiring))
	}
	for _, k := range kb.Keys() {
		for d := Left; d <= Below; d++ {
			if k.Neighbor(d) == nil {
				t.Errorf("key %s has no neighbor in direction %d", k.ID, d)
			}
		}
		if k.Neighbor(Right).Neighbor(Left) == nil {
			t.Errorf("key %s right neighbor is unwired", k.ID)
		}
	}
	if rows := kb.Rows(); len(rows) != 6 {
		t.Errorf("Rows = %d, want 6", len(rows))
	}
}

func TestMoveSelection(t *testing.T) {
	kb := New(nil)
	if kb.Selected().ID != "k" {
		t.Fatalf("initial selection = %s", kb.Selected().ID)
	}
	kb.Move(Right, xplane.PhaseBegin, 0)
	if kb.Selected().ID != "l" {
		t.Errorf("after right: %s", kb.Selected().ID)
	}
	kb.Move(Right, xplane.PhaseContinue, 0.1)
	if kb.Selected().ID != "l" {
		t.Errorf("repeat before 0.15s moved to %s", kb.Selected().ID)
	}
	kb.Move(Right, xplane.PhaseContinue, 0.2)
	if kb.Selected().ID != "semicolon" {
		t.Errorf("repeat after 0.15s: %s", kb.Selected().ID)
	}
	kb.Move(Below, xplane.PhaseEnd, 1)
	if kb.Selected().ID != "semicolon" {
		t.Errorf("End moved the selection to %s", kb.Selected().ID)
	}
}

func TestPressPumpAndRepeat(t *testing.T) {
	var ev events
	kb := New(&ev)

	kb.Press(xplane.PhaseBegin)
	if !kb.KeyPressActive() || kb.Selected().State != NewDown {
		t.Fatalf("Begin: active=%v state=%s", kb.KeyPressActive(), kb.Selected().State)
	}
	kb.Move(Left, xplane.PhaseBegin, 0)
	if kb.Selected().ID != "k" {
		t.Error("selection moved while a key is pressed")
	}

	kb.Pump(1.0)
	kb.Pump(1.05)
	kb.Pump(1.2)
	kb.Press(xplane.PhaseEnd)
	kb.Pump(1.25)

	want := events{"37:true", "37:false", "37:true", "37:false"}
	if diff := cmp.Diff(want, ev); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
	if kb.KeyPressActive() || kb.Selected().State != Up {
		t.Errorf("after End: active=%v state=%s", kb.KeyPressActive(), kb.Selected().State)
	}
}

func TestLockKeyToggles(t *testing.T) {
	var ev events
	kb := New(&ev)
	kb.selected = kb.Key("capslock")

	kb.Press(xplane.PhaseBegin)
	if kb.KeyPressActive() {
		t.Error("lock key set keyPressActive")
	}
	kb.Pump(0)
	kb.Pump(5) // no repeat for lock keys
	kb.Press(xplane.PhaseEnd)
	kb.Press(xplane.PhaseBegin)
	kb.Pump(6)

	want := events{"58:true", "58:false", "58:true", "58:false"}
	if diff := cmp.Diff(want, ev); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestReleaseAll(t *testing.T) {
	var ev events
	kb := New(&ev)
	kb.Set("a", Down)
	kb.Set("b", NewUp)
	kb.Set("c", NewDown)
	kb.ReleaseAll()

	want := events{"30:false", "48:false"}
	if diff := cmp.Diff(want, ev); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
	if kb.Key("a").State != Up || kb.Key("c").State != NewDown {
		t.Error("ReleaseAll state mismatch")
	}
}

func TestPushToTalk(t *testing.T) {
	var ev events
	kb := New(&ev)
	kb.PushToTalk(true)
	kb.Pump(0)
	kb.PushToTalk(false)
	kb.Pump(0.01)
	want := events{"24:true", "24:false", "24:false"}
	if diff := cmp.Diff(want, ev); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestOverlayFlag(t *testing.T) {
	var o Overlay = &Flag{}
	o.Show()
	if !o.Visible() {
		t.Error("Show did not make the overlay visible")
	}
	o.Hide()
	if o.Visible() {
		t.Error("Hide left the overlay visible")
	}
}
