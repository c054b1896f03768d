package gamepad

// Unsupported is returned for abstract controls the active profile does not
// define. Callers must check for it before indexing.
const Unsupported = -1

// ControllerType selects the physical layout of the gamepad.
type ControllerType int

const (
	Xbox360 ControllerType = iota
	DS4
)

func (c ControllerType) String() string {
	switch c {
	case Xbox360:
		return "xbox360"
	case DS4:
		return "ds4"
	default:
		return "unknown"
	}
}

// ParseControllerType maps the names produced by String back to a type.
func ParseControllerType(s string) (ControllerType, bool) {
	switch s {
	case "xbox360", "xbox":
		return Xbox360, true
	case "ds4", "dualshock4", "playstation":
		return DS4, true
	default:
		return Xbox360, false
	}
}

// AbstractAxis is a layout-independent stick axis.
type AbstractAxis int

const (
	AxisLeftX AbstractAxis = iota
	AxisLeftY
	AxisRightX
	AxisRightY
	AxisLeftTrigger
	AxisRightTrigger
	numAbstractAxes
)

// AbstractButton is a layout-independent button.
type AbstractButton int

const (
	ButtonDpadLeft AbstractButton = iota
	ButtonDpadRight
	ButtonDpadUp
	ButtonDpadDown
	ButtonDpadLeftUp
	ButtonDpadLeftDown
	ButtonDpadRightUp
	ButtonDpadRightDown
	ButtonFaceLeft
	ButtonFaceRight
	ButtonFaceUp
	ButtonFaceDown
	ButtonCenterLeft
	ButtonCenterRight
	ButtonBumperLeft
	ButtonBumperRight
	ButtonStickLeft
	ButtonStickRight
	// Buttons below exist only on some layouts.
	ButtonGuide
	ButtonTriggerLeft
	ButtonTriggerRight
	numAbstractButtons
)

// Profile is one row of the remapping table: the base hardware index of every
// abstract control for one controller type on one platform.
type Profile struct {
	Type    ControllerType
	Name    string
	Axes    [numAbstractAxes]int
	Buttons [numAbstractButtons]int
	// CalibrationButton is the face button the user presses during the
	// button step of the calibration scan.
	CalibrationButton AbstractButton
}

// Built-in layouts as reported by the host on Linux and macOS.

var xbox360Profile = Profile{
	Type: Xbox360,
	Name: "Xbox 360",
	Axes: [numAbstractAxes]int{
		AxisLeftX:        0,
		AxisLeftY:        1,
		AxisRightX:       3,
		AxisRightY:       4,
		AxisLeftTrigger:  2,
		AxisRightTrigger: 5,
	},
	Buttons: [numAbstractButtons]int{
		ButtonDpadLeft:      17,
		ButtonDpadRight:     13,
		ButtonDpadUp:        11,
		ButtonDpadDown:      15,
		ButtonDpadLeftUp:    Unsupported,
		ButtonDpadLeftDown:  Unsupported,
		ButtonDpadRightUp:   Unsupported,
		ButtonDpadRightDown: Unsupported,
		ButtonFaceLeft:      2, // X
		ButtonFaceRight:     1, // B
		ButtonFaceUp:        3, // Y
		ButtonFaceDown:      0, // A
		ButtonCenterLeft:    6, // Back
		ButtonCenterRight:   7, // Start
		ButtonBumperLeft:    4,
		ButtonBumperRight:   5,
		ButtonStickLeft:     9,
		ButtonStickRight:    10,
		ButtonGuide:         8,
		ButtonTriggerLeft:   Unsupported,
		ButtonTriggerRight:  Unsupported,
	},
	CalibrationButton: ButtonFaceLeft,
}

var ds4Profile = Profile{
	Type: DS4,
	Name: "DualShock 4",
	Axes: [numAbstractAxes]int{
		AxisLeftX:        0,
		AxisLeftY:        1,
		AxisRightX:       3,
		AxisRightY:       4,
		AxisLeftTrigger:  2,
		AxisRightTrigger: 5,
	},
	Buttons: [numAbstractButtons]int{
		ButtonDpadLeft:      19,
		ButtonDpadRight:     15,
		ButtonDpadUp:        13,
		ButtonDpadDown:      17,
		ButtonDpadLeftUp:    20,
		ButtonDpadLeftDown:  18,
		ButtonDpadRightUp:   14,
		ButtonDpadRightDown: 16,
		ButtonFaceLeft:      3, // Square
		ButtonFaceRight:     1, // Circle
		ButtonFaceUp:        2, // Triangle
		ButtonFaceDown:      0, // Cross
		ButtonCenterLeft:    8, // Share
		ButtonCenterRight:   9, // Options
		ButtonBumperLeft:    4,
		ButtonBumperRight:   5,
		ButtonStickLeft:     11,
		ButtonStickRight:    12,
		ButtonGuide:         10, // PS
		ButtonTriggerLeft:   6,
		ButtonTriggerRight:  7,
	},
	CalibrationButton: ButtonFaceDown,
}

// Windows layouts. The guide button is read through XInput there, so it has
// no joystick index.

var xbox360WindowsProfile = Profile{
	Type: Xbox360,
	Name: "Xbox 360",
	Axes: [numAbstractAxes]int{
		AxisLeftX:        1,
		AxisLeftY:        0,
		AxisRightX:       3,
		AxisRightY:       2,
		AxisLeftTrigger:  4, // both triggers share one axis
		AxisRightTrigger: 4,
	},
	Buttons: [numAbstractButtons]int{
		ButtonDpadLeft:      16,
		ButtonDpadRight:     12,
		ButtonDpadUp:        10,
		ButtonDpadDown:      14,
		ButtonDpadLeftUp:    Unsupported,
		ButtonDpadLeftDown:  Unsupported,
		ButtonDpadRightUp:   Unsupported,
		ButtonDpadRightDown: Unsupported,
		ButtonFaceLeft:      2,
		ButtonFaceRight:     1,
		ButtonFaceUp:        3,
		ButtonFaceDown:      0,
		ButtonCenterLeft:    6,
		ButtonCenterRight:   7,
		ButtonBumperLeft:    4,
		ButtonBumperRight:   5,
		ButtonStickLeft:     8,
		ButtonStickRight:    9,
		ButtonGuide:         Unsupported,
		ButtonTriggerLeft:   Unsupported,
		ButtonTriggerRight:  Unsupported,
	},
	CalibrationButton: ButtonFaceLeft,
}

var ds4WindowsProfile = Profile{
	Type: DS4,
	Name: "DualShock 4",
	Axes: [numAbstractAxes]int{
		AxisLeftX:        3,
		AxisLeftY:        2,
		AxisRightX:       1,
		AxisRightY:       0,
		AxisLeftTrigger:  5,
		AxisRightTrigger: 4,
	},
	Buttons: [numAbstractButtons]int{
		ButtonDpadLeft:      20,
		ButtonDpadRight:     16,
		ButtonDpadUp:        14,
		ButtonDpadDown:      18,
		ButtonDpadLeftUp:    21,
		ButtonDpadLeftDown:  19,
		ButtonDpadRightUp:   15,
		ButtonDpadRightDown: 17,
		ButtonFaceLeft:      0,
		ButtonFaceRight:     2,
		ButtonFaceUp:        3,
		ButtonFaceDown:      1,
		ButtonCenterLeft:    8,
		ButtonCenterRight:   9,
		ButtonBumperLeft:    4,
		ButtonBumperRight:   5,
		ButtonStickLeft:     10,
		ButtonStickRight:    11,
		ButtonGuide:         12,
		ButtonTriggerLeft:   6,
		ButtonTriggerRight:  7,
	},
	CalibrationButton: ButtonFaceDown,
}

var profiles = map[string]map[ControllerType]*Profile{
	"default": {
		Xbox360: &xbox360Profile,
		DS4:     &ds4Profile,
	},
	"windows": {
		Xbox360: &xbox360WindowsProfile,
		DS4:     &ds4WindowsProfile,
	},
}

// ProfileFor returns the profile for a controller type on a given GOOS.
// Platforms without their own table use the default one.
func ProfileFor(goos string, t ControllerType) *Profile {
	table, ok := profiles[goos]
	if !ok {
		table = profiles["default"]
	}
	if p, ok := table[t]; ok {
		return p
	}
	return table[Xbox360]
}

// Remapper translates abstract controls into indices of the host's raw
// joystick arrays for one profile and its calibration offsets.
type Remapper struct {
	Profile      *Profile
	AxisOffset   int
	ButtonOffset int
}

// AxisIndex returns the raw axis index of an abstract axis or Unsupported.
func (r Remapper) AxisIndex(a AbstractAxis) int {
	if r.Profile == nil || a < 0 || a >= numAbstractAxes {
		return Unsupported
	}
	base := r.Profile.Axes[a]
	if base == Unsupported {
		return Unsupported
	}
	return base + r.AxisOffset
}

// ButtonIndex returns the raw button index of an abstract button or
// Unsupported.
func (r Remapper) ButtonIndex(b AbstractButton) int {
	if r.Profile == nil || b < 0 || b >= numAbstractButtons {
		return Unsupported
	}
	base := r.Profile.Buttons[b]
	if base == Unsupported {
		return Unsupported
	}
	return base + r.ButtonOffset
}

// TriggerAxisIndex returns the raw index of the left or right trigger axis.
func (r Remapper) TriggerAxisIndex(right bool) int {
	if right {
		return r.AxisIndex(AxisRightTrigger)
	}
	return r.AxisIndex(AxisLeftTrigger)
}

// ExtraButtonIndex returns the raw index of a layout-specific button (guide,
// digital triggers). It is Unsupported for the regular 18 buttons.
func (r Remapper) ExtraButtonIndex(b AbstractButton) int {
	if b < ButtonGuide {
		return Unsupported
	}
	return r.ButtonIndex(b)
}

// CalibrationAxis is the base index of the axis the calibration scan asks the
// user to move.
func (p *Profile) CalibrationAxis() int {
	return p.Axes[AxisRightY]
}

// CalibrationButtonBase is the base index of the button the calibration scan
// asks the user to press.
func (p *Profile) CalibrationButtonBase() int {
	return p.Buttons[p.CalibrationButton]
}

// Known vendor/product IDs.
type deviceKey struct {
	VendorID  uint16
	ProductID uint16
}

var knownDevices = map[deviceKey]ControllerType{
	// Microsoft Xbox controllers
	{0x045E, 0x028E}: Xbox360, // Xbox 360
	{0x045E, 0x028F}: Xbox360, // Xbox 360 wireless
	{0x045E, 0x02FF}: Xbox360, // Xbox One
	{0x045E, 0x0B12}: Xbox360, // Xbox Series X|S
	{0x045E, 0x0B13}: Xbox360, // Xbox Series X|S (wireless)
	// Sony PlayStation controllers
	{0x054C, 0x05C4}: DS4, // DualShock 4 v1
	{0x054C, 0x09CC}: DS4, // DualShock 4 v2
	{0x054C, 0x0BA0}: DS4, // DualShock 4 wireless adapter
}

// LookupType suggests a controller type for a device identified by
// vendor/product ID.
func LookupType(vendorID, productID uint16) (ControllerType, bool) {
	t, ok := knownDevices[deviceKey{VendorID: vendorID, ProductID: productID}]
	return t, ok
}
