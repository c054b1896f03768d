package gamepad

import "math"

// Center is the rest position of a stick axis on the host's [0,1] scale.
const Center = 0.5

const relativeControlExponent = 3

// Normalize linearly maps value from [inMin, inMax] to [outMin, outMax]. The
// input range may be descending. An empty input range yields outMin.
func Normalize(value, inMin, inMax, outMin, outMax float32) float32 {
	oldRange := inMax - inMin
	if FloatEqual(oldRange, 0) {
		return outMin
	}
	return outMin + (value-inMin)*(outMax-outMin)/oldRange
}

// Exponentialize normalizes value into [0,1] over [inMin, inMax], applies the
// cubic response curve and scales the result into [outMin, outMax].
func Exponentialize(value, inMin, inMax, outMin, outMax float32) float32 {
	n := Normalize(value, inMin, inMax, 0, 1)
	curved := float32(math.Pow(float64(n), relativeControlExponent))
	return outMin + curved*(outMax-outMin)
}

// Deflection classifies an axis value against the nullzone around Center.
// It returns -1 below the zone, +1 above it and 0 inside it. The zone
// boundaries themselves count as inside.
func Deflection(value, nullzone float32) int {
	switch {
	case value < Center-nullzone:
		return -1
	case value > Center+nullzone:
		return 1
	default:
		return 0
	}
}

// StickDelta is the relative-control shaping used by the dispatcher: the
// deflection beyond center mapped through the cubic curve into [0, span].
// The sign follows the stick direction (-1 towards 0.0, +1 towards 1.0); the
// magnitude is 0 inside the nullzone.
func StickDelta(value, nullzone, span float32) (dir int, d float32) {
	dir = Deflection(value, nullzone)
	switch dir {
	case -1:
		return dir, Exponentialize(value, Center, 0, 0, span)
	case 1:
		return dir, Exponentialize(value, Center, 1, 0, span)
	default:
		return 0, 0
	}
}

// NormalizeAxis converts a raw SDL axis value (-32768..32767) to the host's
// 0.0..1.0 scale with the rest position at 0.5.
func NormalizeAxis(raw int16) float32 {
	v := (float32(raw) + 32768) / 65535
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	return v
}

const floatEpsilon = 1.1920929e-07

// FloatEqual compares two host floats within single precision epsilon.
func FloatEqual(a, b float32) bool {
	return math.Abs(float64(a-b)) < floatEpsilon
}
