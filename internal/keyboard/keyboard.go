// Package keyboard is the on-screen keyboard driven by the gamepad: a PC
// layout with a selection cursor and per-key state that a pump turns into
// injected key events.
package keyboard

import (
	"github.com/soar/xgamepad/internal/logger"
	"github.com/soar/xgamepad/internal/xplane"
)

// State is the lifecycle of a key. NewDown and NewUp are pending transitions
// the next Pump turns into events.
type State int

const (
	Up State = iota
	Down
	NewDown
	NewUp
)

func (s State) String() string {
	switch s {
	case Up:
		return "up"
	case Down:
		return "down"
	case NewDown:
		return "new_down"
	case NewUp:
		return "new_up"
	default:
		return "unknown"
	}
}

// Pressed reports whether the key is down or about to go down.
func (s State) Pressed() bool {
	return s == Down || s == NewDown
}

const (
	keyRepeatInterval      = 0.1
	selectorRepeatInterval = 0.15
	defaultSelectedKeyID   = "k"
	pushToTalkKeyID        = "o"
	numNeighbors           = 4
)

// Direction moves the selection cursor.
type Direction int

const (
	Left Direction = iota
	Right
	Above
	Below
)

// Sender receives key events. inject.Injector satisfies it.
type Sender interface {
	KeyEvent(code int, down bool) error
}

// Key is one key of the layout.
type Key struct {
	ID       string
	Label    string
	Code     int
	Aspect   float32
	Position Position
	State    State

	lastInput float64
	neighbors [numNeighbors]*Key
}

func (k *Key) IsLock() bool {
	return lockCodes[k.Code]
}

// Neighbor returns the key the cursor moves to in direction d.
func (k *Key) Neighbor(d Direction) *Key {
	return k.neighbors[d]
}

// Keyboard holds the keys, the selection and the press bookkeeping.
type Keyboard struct {
	keys     []*Key
	byID     map[string]*Key
	selected *Key
	sender   Sender

	keyPressActive   bool
	lastSelectorMove float64
}

// New builds the keyboard and wires the neighbor graph.
func New(sender Sender) *Keyboard {
	kb := &Keyboard{
		keys:   make([]*Key, 0, len(layout)),
		byID:   make(map[string]*Key, len(layout)),
		sender: sender,
	}
	for _, def := range layout {
		k := &Key{ID: def.id, Label: def.label, Code: def.code, Aspect: def.aspect, Position: def.pos}
		kb.keys = append(kb.keys, k)
		kb.byID[def.id] = k
	}
	for id, n := range wiring {
		k := kb.byID[id]
		for d, neighbor := range n {
			k.neighbors[d] = kb.byID[neighbor]
		}
	}
	kb.selected = kb.byID[defaultSelectedKeyID]
	return kb
}

func (kb *Keyboard) Keys() []*Key {
	return kb.keys
}

// Key returns the key with the given id or nil.
func (kb *Keyboard) Key(id string) *Key {
	return kb.byID[id]
}

func (kb *Keyboard) Selected() *Key {
	return kb.selected
}

// KeyPressActive reports whether the press command is holding a key.
func (kb *Keyboard) KeyPressActive() bool {
	return kb.keyPressActive
}

// Rows splits the layout into display rows.
func (kb *Keyboard) Rows() [][]*Key {
	var rows [][]*Key
	var row []*Key
	for _, k := range kb.keys {
		row = append(row, k)
		if k.Position == RowEnd {
			rows = append(rows, row)
			row = nil
		}
	}
	return rows
}

// Move handles a selector command. While a key is held the selection is
// frozen; otherwise the cursor moves on Begin and repeats on Continue.
func (kb *Keyboard) Move(d Direction, phase xplane.Phase, now float64) {
	if kb.keyPressActive {
		return
	}
	if phase == xplane.PhaseBegin || (phase == xplane.PhaseContinue && now-kb.lastSelectorMove > selectorRepeatInterval) {
		if next := kb.selected.Neighbor(d); next != nil {
			kb.selected = next
		}
		kb.lastSelectorMove = now
	}
}

func toggle(k *Key) {
	switch k.State {
	case Up, NewUp:
		k.State = NewDown
	case Down, NewDown:
		k.State = NewUp
	}
}

// Press handles the press command for the selected key: Begin presses, End
// releases. Lock keys toggle instead.
func (kb *Keyboard) Press(phase xplane.Phase) {
	k := kb.selected
	if k.IsLock() {
		kb.Lock(phase)
		return
	}
	switch {
	case phase == xplane.PhaseBegin:
		toggle(k)
		kb.keyPressActive = true
	case phase == xplane.PhaseEnd && k.State.Pressed():
		k.State = NewUp
		kb.keyPressActive = false
	}
}

// Lock latches or unlatches the selected key on Begin.
func (kb *Keyboard) Lock(phase xplane.Phase) {
	if kb.keyPressActive || phase != xplane.PhaseBegin {
		return
	}
	toggle(kb.selected)
}

// Set forces a key state; push-to-talk drives the O key this way.
func (kb *Keyboard) Set(id string, s State) {
	if k := kb.byID[id]; k != nil {
		k.State = s
	}
}

// PushToTalk presses or releases the push-to-talk key. Releasing a key that
// is not down does nothing.
func (kb *Keyboard) PushToTalk(down bool) {
	if down {
		kb.Set(pushToTalkKeyID, NewDown)
		return
	}
	if k := kb.byID[pushToTalkKeyID]; k != nil && k.State.Pressed() {
		k.State = NewUp
	}
}

// Pump sends the events for pending transitions and repeats held keys.
func (kb *Keyboard) Pump(now float64) {
	for _, k := range kb.keys {
		switch k.State {
		case NewUp:
			if k.IsLock() {
				kb.send(k, true)
			}
			kb.send(k, false)
			k.State = Up
		case NewDown:
			kb.send(k, true)
			kb.send(k, false)
			k.State = Down
			k.lastInput = now
		case Down:
			if !k.IsLock() && now-k.lastInput > keyRepeatInterval {
				kb.send(k, true)
				k.lastInput = now
			}
		}
	}
}

// ReleaseAll sends key up for every key that is down or about to go up.
func (kb *Keyboard) ReleaseAll() {
	for _, k := range kb.keys {
		if k.State == NewUp || k.State == Down {
			kb.send(k, false)
			k.State = Up
		}
	}
}

func (kb *Keyboard) send(k *Key, down bool) {
	if kb.sender == nil {
		return
	}
	if err := kb.sender.KeyEvent(k.Code, down); err != nil {
		logger.Warningf("key %s (%d) down=%v: %v", k.ID, k.Code, down, err)
	}
}
