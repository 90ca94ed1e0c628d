package cube

import "fmt"

// Axis is a one-hot orientation flag naming the axis the piece's
// reference sticker points along.
type Axis uint8

const (
	AxisNone Axis = 0 // only in DontCare codes
	AxisZ    Axis = 1 // top/bottom
	AxisY    Axis = 2 // front/back
	AxisX    Axis = 4 // left/right
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "X"
	case AxisY:
		return "Y"
	case AxisZ:
		return "Z"
	case AxisNone:
		return "-"
	default:
		return "?"
	}
}

// Valid reports whether exactly one axis bit is set.
func (a Axis) Valid() bool {
	return a == AxisX || a == AxisY || a == AxisZ
}

// SwapXY exchanges the X and Y bits. Rotation about Z.
func SwapXY(a Axis) Axis {
	return a&AxisZ | (a&AxisX)>>1 | (a&AxisY)<<1
}

// SwapXZ exchanges the X and Z bits. Rotation about Y.
func SwapXZ(a Axis) Axis {
	return a&AxisY | (a&AxisX)>>2 | (a&AxisZ)<<2
}

// SwapYZ exchanges the Y and Z bits. Rotation about X.
func SwapYZ(a Axis) Axis {
	return a&AxisX | (a&AxisY)>>1 | (a&AxisZ)<<1
}

// Cubie is the packed code of one piece: 5 high bits hold the piece's
// home slot, 3 low bits its orientation axis.
type Cubie uint8

const (
	positionShift = 3
	axisMask      = 0x07
)

// DontCare marks a slot whose piece is not tracked. Its orientation is
// AxisNone, which every swap leaves unchanged.
const DontCare Cubie = 31 << positionShift

// NewCubie packs a home slot and an axis.
func NewCubie(position int, a Axis) Cubie {
	return Cubie(position<<positionShift) | Cubie(a&axisMask)
}

// Position returns the home slot of the piece.
func (c Cubie) Position() int {
	return int(c >> positionShift)
}

// Axis returns the orientation axis.
func (c Cubie) Axis() Axis {
	return Axis(c & axisMask)
}

// WithAxis returns c with its orientation replaced.
func (c Cubie) WithAxis(a Axis) Cubie {
	return c&^axisMask | Cubie(a&axisMask)
}

func (c Cubie) String() string {
	if c == DontCare {
		return "--"
	}
	return fmt.Sprintf("%d%s", c.Position(), c.Axis())
}
