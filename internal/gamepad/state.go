package gamepad

import "math"

// Hat directions as reported by SDL.
const (
	hatUp    uint8 = 0x01
	hatRight uint8 = 0x02
	hatDown  uint8 = 0x04
	hatLeft  uint8 = 0x08
)

// hatPositions is the order in which a hat expands into eight extra buttons,
// clockwise from up.
var hatPositions = [8]uint8{
	hatUp,
	hatUp | hatRight,
	hatRight,
	hatDown | hatRight,
	hatDown,
	hatDown | hatLeft,
	hatLeft,
	hatUp | hatLeft,
}

// Frame is one sample of the active joystick in the host's raw layout: axis
// values on the 0..1 scale and button states with every hat appended as eight
// buttons after the regular ones.
type Frame struct {
	Connected bool      `json:"connected"`
	Name      string    `json:"name"`
	VendorID  uint16    `json:"vendorId"`
	ProductID uint16    `json:"productId"`
	Axes      []float32 `json:"axes"`
	Buttons   []bool    `json:"buttons"`
}

// ExpandHat writes the eight hat buttons for a hat value into dst, which must
// hold at least eight entries.
func ExpandHat(dst []bool, value uint8) {
	for i, pos := range hatPositions {
		dst[i] = value == pos
	}
}

const analogThreshold = 0.001

// Changed reports whether next differs from f enough to be worth emitting.
func (f Frame) Changed(next Frame) bool {
	if f.Connected != next.Connected || f.Name != next.Name ||
		len(f.Axes) != len(next.Axes) || len(f.Buttons) != len(next.Buttons) {
		return true
	}
	for i := range f.Buttons {
		if f.Buttons[i] != next.Buttons[i] {
			return true
		}
	}
	for i := range f.Axes {
		if math.Abs(float64(f.Axes[i]-next.Axes[i])) >= analogThreshold {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so the frame can cross goroutines.
func (f Frame) Clone() Frame {
	c := f
	c.Axes = append([]float32(nil), f.Axes...)
	c.Buttons = append([]bool(nil), f.Buttons...)
	return c
}
