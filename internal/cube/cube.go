// Package cube provides a bit-packed 3x3 Rubik's cube model with the six
// quarter-turn operators.
//
// The cube is 20 slots. Slots 0-7 form the ring around the left face and
// slots 8-15 the ring around the right face; corners sit on even slots and
// edges on odd ones. Slots 16-19 hold the four edges touching neither
// side face. Axes: X runs left/right, Y front/back, Z top/bottom.
//
//	slot  left ring         slot  right ring        slot  middle
//	 0    L-Back-Top         8    R-Back-Top        16    Top-Front
//	 1    L-Top              9    R-Top             17    Front-Bottom
//	 2    L-Top-Front       10    R-Top-Front       18    Bottom-Back
//	 3    L-Front           11    R-Front           19    Back-Top
//	 4    L-Front-Bottom    12    R-Front-Bottom
//	 5    L-Bottom          13    R-Bottom
//	 6    L-Bottom-Back     14    R-Bottom-Back
//	 7    L-Back            15    R-Back
package cube

import (
	"fmt"
	"strings"

	"github.com/SeamusWaldron/gocube_solver/pkg/types"
)

const (
	// NumSlots is the number of movable pieces.
	NumSlots = 20
	// NumCorners is the number of corner pieces.
	NumCorners = 8
	// NumEdges is the number of edge pieces.
	NumEdges = 12
)

// Cube is a value type; assigning it copies the whole state.
type Cube struct {
	slots [NumSlots]Cubie
}

// Solved returns the cube in its goal state.
func Solved() Cube {
	var c Cube
	for s := 0; s < NumSlots; s++ {
		c.slots[s] = NewCubie(s, SolvedAxis(s))
	}
	return c
}

// Empty returns a cube with every slot set to DontCare.
func Empty() Cube {
	var c Cube
	for s := range c.slots {
		c.slots[s] = DontCare
	}
	return c
}

// SolvedAxis returns the orientation a piece has in slot s of the solved
// cube: Y when s%4 == 3 (the front and back edges), Z otherwise.
func SolvedAxis(s int) Axis {
	if s%4 == 3 {
		return AxisY
	}
	return AxisZ
}

// IsCornerSlot reports whether slot s holds a corner.
func IsCornerSlot(s int) bool {
	return s < 16 && s%2 == 0
}

// CornerSlot returns the slot of corner location i (0..7).
func CornerSlot(i int) int {
	return 2 * i
}

// CornerIndex returns the corner location index of a corner slot.
func CornerIndex(s int) int {
	return s / 2
}

// EdgeSlot returns the slot of edge location i (0..11).
func EdgeSlot(i int) int {
	if i < 8 {
		return 2*i + 1
	}
	return i + 8
}

// EdgeIndex returns the edge location index of an edge slot.
func EdgeIndex(s int) int {
	if s < 16 {
		return (s - 1) / 2
	}
	return s - 8
}

// Slot returns the cubie code in slot s.
func (c *Cube) Slot(s int) Cubie {
	return c.slots[s]
}

// SetSlot stores a cubie code in slot s. Outside of reconstruction of
// partial states, cubes should only change through turns.
func (c *Cube) SetSlot(s int, v Cubie) {
	c.slots[s] = v
}

// Left returns the ring of slots around the left face.
func (c *Cube) Left() [8]Cubie {
	return [8]Cubie(c.slots[0:8])
}

// Right returns the ring of slots around the right face.
func (c *Cube) Right() [8]Cubie {
	return [8]Cubie(c.slots[8:16])
}

// Middle returns the four edges touching neither side face.
func (c *Cube) Middle() [4]Cubie {
	return [4]Cubie(c.slots[16:20])
}

// IsSolved returns true if every slot holds its own piece in the solved
// orientation.
func (c *Cube) IsSolved() bool {
	for s := 0; s < NumSlots; s++ {
		if c.slots[s] != NewCubie(s, SolvedAxis(s)) {
			return false
		}
	}
	return true
}

// Validate checks that the cube is a legal arrangement of the 20 pieces
// that turns can reach: every piece present once, in a slot of its own
// type, with an axis its location can show, with no net corner twist or
// edge flip, and with matching corner and edge permutation parity.
func (c *Cube) Validate() error {
	var seen [NumSlots]bool
	for s := 0; s < NumSlots; s++ {
		v := c.slots[s]
		p := v.Position()
		if p >= NumSlots {
			return fmt.Errorf("slot %d: invalid piece %d", s, p)
		}
		if seen[p] {
			return fmt.Errorf("slot %d: piece %d appears twice", s, p)
		}
		seen[p] = true
		if IsCornerSlot(p) != IsCornerSlot(s) {
			return fmt.Errorf("slot %d: piece %d has the wrong type", s, p)
		}
		if !v.Axis().Valid() {
			return fmt.Errorf("slot %d: invalid orientation %03b", s, uint8(v.Axis()))
		}
		if !IsCornerSlot(s) && v.Axis()&EdgeAxes(s) == 0 {
			return fmt.Errorf("slot %d: edge cannot face axis %s", s, v.Axis())
		}
	}

	if t := c.twist(); t != 0 {
		return fmt.Errorf("corner twists sum to %d mod 3", t)
	}
	if c.flip() != 0 {
		return fmt.Errorf("odd number of flipped edges")
	}
	if c.cornerParity() != c.edgeParity() {
		return fmt.Errorf("corner and edge permutations differ in parity")
	}
	return nil
}

// twist returns the total corner twist mod 3.
func (c *Cube) twist() int {
	t := 0
	for i := 0; i < NumCorners; i++ {
		s := CornerSlot(i)
		t += cornerTwist(s, c.slots[s].Axis())
	}
	return t % 3
}

// cornerTwist is 0 for a corner pointing along Z and 1 or 2 otherwise.
// Neighbouring corner locations have opposite handedness, so X and Y
// trade values between them.
func cornerTwist(s int, a Axis) int {
	handed := (CornerIndex(s)%2 == 1) != (s >= 8)
	switch {
	case a == AxisZ:
		return 0
	case (a == AxisX) == handed:
		return 1
	default:
		return 2
	}
}

// flip returns the number of flipped edges mod 2. An edge's primary
// sticker is its top/bottom one, or front/back when it has none; a
// location's primary axis is picked the same way. The edge is flipped
// when the two do not line up.
func (c *Cube) flip() int {
	f := 0
	for i := 0; i < NumEdges; i++ {
		s := EdgeSlot(i)
		p, a := c.slots[s].Position(), c.slots[s].Axis()
		if SolvedAxis(p) != primaryAxis(EdgeAxes(p)) {
			a = EdgeAxes(s) &^ a
		}
		if a != primaryAxis(EdgeAxes(s)) {
			f++
		}
	}
	return f % 2
}

func primaryAxis(axes Axis) Axis {
	if axes&AxisZ != 0 {
		return AxisZ
	}
	return AxisY
}

func (c *Cube) cornerParity() int {
	var perm [NumCorners]int
	for i := range perm {
		perm[i] = CornerIndex(c.slots[CornerSlot(i)].Position())
	}
	return parity(perm[:])
}

func (c *Cube) edgeParity() int {
	var perm [NumEdges]int
	for i := range perm {
		perm[i] = EdgeIndex(c.slots[EdgeSlot(i)].Position())
	}
	return parity(perm[:])
}

// parity returns 0 for an even permutation and 1 for an odd one.
func parity(perm []int) int {
	seen := make([]bool, len(perm))
	p := 0
	for i := range perm {
		for j := i; !seen[j]; j = perm[j] {
			seen[j] = true
			if j != i {
				p ^= 1
			}
		}
	}
	return p
}

// EdgeAxes returns the two axes an edge in slot s can point along.
func EdgeAxes(s int) Axis {
	switch {
	case s >= 16:
		return AxisY | AxisZ
	case s%4 == 3:
		return AxisX | AxisY
	default:
		return AxisX | AxisZ
	}
}

// Equal reports whether two cubes are in the same state.
func (c *Cube) Equal(o *Cube) bool {
	return c.slots == o.slots
}

// String returns a text representation of the three slot groups.
func (c *Cube) String() string {
	var b strings.Builder
	groups := []struct {
		name string
		from int
		to   int
	}{
		{"left  ", 0, 8},
		{"right ", 8, 16},
		{"middle", 16, 20},
	}
	for _, g := range groups {
		b.WriteString(g.name)
		for s := g.from; s < g.to; s++ {
			fmt.Fprintf(&b, " %4s", c.slots[s].String())
		}
		b.WriteString("\n")
	}
	return b.String()
}

// Successors returns the 18 states one move away, in move order.
func (c *Cube) Successors() [types.NumMoves]Cube {
	var out [types.NumMoves]Cube
	for _, f := range types.Faces {
		next := *c
		for amount := 1; amount <= 3; amount++ {
			next.turn(f)
			out[types.NewMove(f, amount)] = next
		}
	}
	return out
}
