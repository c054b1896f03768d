package keyboard

import "sync/atomic"

// Overlay is the on-screen presentation of the keyboard.
type Overlay interface {
	Show()
	Hide()
	Visible() bool
}

// Flag is an Overlay that only records visibility. The status page reads it
// to decide whether to draw the keyboard.
type Flag struct {
	visible atomic.Bool
}

func (f *Flag) Show()         { f.visible.Store(true) }
func (f *Flag) Hide()         { f.visible.Store(false) }
func (f *Flag) Visible() bool { return f.visible.Load() }
