package cube

import (
	"math/rand"
	"testing"

	"github.com/SeamusWaldron/gocube_solver/pkg/types"
)

func TestNewCubeIsSolved(t *testing.T) {
	c := Solved()
	if !c.IsSolved() {
		t.Error("New cube should be solved")
	}
	if err := c.Validate(); err != nil {
		t.Errorf("solved cube failed validation: %v", err)
	}
}

func TestSolvedOrientation(t *testing.T) {
	c := Solved()
	for s := 0; s < NumSlots; s++ {
		want := AxisZ
		if s%4 == 3 {
			want = AxisY
		}
		if got := c.Slot(s).Axis(); got != want {
			t.Errorf("slot %d: axis %s, want %s", s, got, want)
		}
		if c.Slot(s).Position() != s {
			t.Errorf("slot %d: position %d", s, c.Slot(s).Position())
		}
	}
}

func TestSingleMoveBreaksSolved(t *testing.T) {
	for m := types.Move(0); m < types.NumMoves; m++ {
		c := Solved()
		c.ApplyMove(m)
		if c.IsSolved() {
			t.Errorf("Cube should not be solved after %v", m)
		}
	}
}

func TestFourQuarterTurnsAreIdentity(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	start, _ := Scramble(rng, 25)
	for _, f := range types.Faces {
		c := start
		for i := 0; i < 4; i++ {
			c.Turn(f, 1)
		}
		if !c.Equal(&start) {
			t.Errorf("%s x 4 should return to the start state", f.Name())
			t.Log(c.String())
		}

		c = start
		c.Turn(f, 1)
		if c.Equal(&start) {
			t.Errorf("%s x 1 left the cube unchanged", f.Name())
		}
	}
}

func TestHalfTurnTwiceIsIdentity(t *testing.T) {
	for _, f := range types.Faces {
		c := Solved()
		c.Turn(f, 2)
		c.Turn(f, 2)
		if !c.IsSolved() {
			t.Errorf("%s2 %s2 should return to solved", f, f)
		}
	}
}

func TestNamedTurnsMatchTurn(t *testing.T) {
	named := []func(*Cube){
		(*Cube).TurnLeft, (*Cube).TurnRight, (*Cube).TurnTop,
		(*Cube).TurnBottom, (*Cube).TurnFront, (*Cube).TurnBack,
	}
	for i, fn := range named {
		a, b := Solved(), Solved()
		fn(&a)
		b.Turn(types.Face(i), 1)
		if !a.Equal(&b) {
			t.Errorf("named turn %d differs from Turn", i)
		}
	}
}

func TestSexyMove_6Times_ReturnsToSolved(t *testing.T) {
	// (R U R' U') x 6 = identity
	c := Solved()
	for i := 0; i < 6; i++ {
		c.ApplyMoves([]types.Move{types.R, types.U, types.RPrime, types.UPrime})
	}
	if !c.IsSolved() {
		t.Error("Sexy move x 6 should return to solved")
		t.Log(c.String())
	}
}

func TestOppositeFacesCommute(t *testing.T) {
	pairs := [][2]types.Face{
		{types.FaceLeft, types.FaceRight},
		{types.FaceTop, types.FaceBottom},
		{types.FaceFront, types.FaceBack},
	}
	for _, p := range pairs {
		a, b := Solved(), Solved()
		a.Turn(p[0], 1)
		a.Turn(p[1], 1)
		b.Turn(p[1], 1)
		b.Turn(p[0], 1)
		if !a.Equal(&b) {
			t.Errorf("%s and %s should commute", p[0].Name(), p[1].Name())
		}
	}

	a, b := Solved(), Solved()
	a.ApplyMoves([]types.Move{types.L, types.U})
	b.ApplyMoves([]types.Move{types.U, types.L})
	if a.Equal(&b) {
		t.Error("L and U should not commute")
	}
}

func TestScrambleAndReverse(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	c, moves := Scramble(rng, 30)
	if err := c.Validate(); err != nil {
		t.Fatalf("scrambled cube failed validation: %v", err)
	}
	for i := 1; i < len(moves); i++ {
		if moves[i].Face() == moves[i-1].Face() {
			t.Errorf("moves %d and %d turn the same face", i-1, i)
		}
	}
	c.ApplyMoves(types.InverseMoves(moves))
	if !c.IsSolved() {
		t.Error("applying the inverse scramble should solve the cube")
	}
}

func TestSuccessors(t *testing.T) {
	c := Solved()
	succ := c.Successors()
	for m := types.Move(0); m < types.NumMoves; m++ {
		want := Solved()
		want.ApplyMove(m)
		if !succ[m].Equal(&want) {
			t.Errorf("successor %v differs from applying the move", m)
		}
	}
	if !c.IsSolved() {
		t.Error("Successors must not modify the receiver")
	}
}

// Corners only ever show the axes; edges only the two axes of their slot.
func TestTurnsPreserveInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	c := Solved()
	for i := 0; i < 500; i++ {
		c.ApplyMove(types.Move(rng.Intn(types.NumMoves)))
		if err := c.Validate(); err != nil {
			t.Fatalf("after %d moves: %v", i+1, err)
		}
	}
}

func TestValidateRejects(t *testing.T) {
	c := Solved()
	c.SetSlot(0, NewCubie(2, AxisZ))
	if c.Validate() == nil {
		t.Error("duplicate piece should fail validation")
	}

	c = Solved()
	c.SetSlot(0, NewCubie(1, AxisZ))
	c.SetSlot(1, NewCubie(0, AxisZ))
	if c.Validate() == nil {
		t.Error("edge in corner slot should fail validation")
	}

	c = Solved()
	c.SetSlot(16, NewCubie(16, AxisX))
	if c.Validate() == nil {
		t.Error("middle edge facing X should fail validation")
	}

	c = Solved()
	c.SetSlot(2, c.Slot(2).WithAxis(AxisNone))
	if c.Validate() == nil {
		t.Error("missing orientation should fail validation")
	}
}

func TestAxisSwaps(t *testing.T) {
	tests := []struct {
		name string
		swap func(Axis) Axis
		in   Axis
		want Axis
	}{
		{"XY x", SwapXY, AxisX, AxisY},
		{"XY y", SwapXY, AxisY, AxisX},
		{"XY z", SwapXY, AxisZ, AxisZ},
		{"XZ x", SwapXZ, AxisX, AxisZ},
		{"XZ y", SwapXZ, AxisY, AxisY},
		{"XZ z", SwapXZ, AxisZ, AxisX},
		{"YZ x", SwapYZ, AxisX, AxisX},
		{"YZ y", SwapYZ, AxisY, AxisZ},
		{"YZ z", SwapYZ, AxisZ, AxisY},
		{"none", SwapYZ, AxisNone, AxisNone},
	}
	for _, tt := range tests {
		if got := tt.swap(tt.in); got != tt.want {
			t.Errorf("%s: got %s, want %s", tt.name, got, tt.want)
		}
	}
}

func TestCubieEncoding(t *testing.T) {
	c := NewCubie(19, AxisY)
	if uint8(c) != 19<<3|2 {
		t.Errorf("encoding = %08b", uint8(c))
	}
	if c.Position() != 19 || c.Axis() != AxisY {
		t.Errorf("decoded %d/%s", c.Position(), c.Axis())
	}
	if c.WithAxis(AxisX).Axis() != AxisX || c.WithAxis(AxisX).Position() != 19 {
		t.Error("WithAxis changed the position")
	}
	if DontCare.Axis() != AxisNone {
		t.Error("DontCare should have no orientation")
	}
}

func TestSlotIndexMaps(t *testing.T) {
	for i := 0; i < NumCorners; i++ {
		s := CornerSlot(i)
		if !IsCornerSlot(s) || CornerIndex(s) != i {
			t.Errorf("corner %d -> slot %d", i, s)
		}
	}
	for i := 0; i < NumEdges; i++ {
		s := EdgeSlot(i)
		if IsCornerSlot(s) || EdgeIndex(s) != i {
			t.Errorf("edge %d -> slot %d", i, s)
		}
	}
}

func TestGroups(t *testing.T) {
	c := Solved()
	left, right, middle := c.Left(), c.Right(), c.Middle()
	if left[3].Position() != 3 || right[0].Position() != 8 || middle[3].Position() != 19 {
		t.Error("group views do not map to slots 0-7, 8-15, 16-19")
	}
}

// Clockwise quarter turns of two adjacent faces repeat with period 105
// on a real cube. A face turning the wrong way drops this to 63.
func TestAdjacentTurnOrder(t *testing.T) {
	for _, a := range types.Faces {
		for _, b := range types.Faces {
			if a == b || a == b.Partner() {
				continue
			}
			c := Solved()
			n := 0
			for {
				c.Turn(a, 1)
				c.Turn(b, 1)
				n++
				if c.IsSolved() || n > 200 {
					break
				}
			}
			if n != 105 {
				t.Errorf("order(%s %s) = %d, want 105", a, b, n)
			}
		}
	}
}

func TestTurnDirection(t *testing.T) {
	tests := []struct {
		face  types.Face
		from  int
		to    int
		axis  Axis
		where string
	}{
		{types.FaceLeft, 0, 2, AxisY, "L takes back-top to top-front"},
		{types.FaceRight, 10, 8, AxisY, "R takes top-front to back-top"},
		{types.FaceTop, 0, 8, AxisZ, "U takes left-back to right-back"},
		{types.FaceBottom, 4, 12, AxisZ, "D takes left-front to right-front"},
		{types.FaceFront, 2, 10, AxisX, "F takes left-top to right-top"},
		{types.FaceBack, 8, 0, AxisX, "B takes right-top to left-top"},
	}
	for _, tt := range tests {
		c := Solved()
		c.Turn(tt.face, 1)
		if got, want := c.Slot(tt.to), NewCubie(tt.from, tt.axis); got != want {
			t.Errorf("%s: slot %d = %s, want %s", tt.where, tt.to, got, want)
		}
	}
}

func TestValidateRejectsUnreachable(t *testing.T) {
	c := Solved()
	c.SetSlot(0, c.Slot(0).WithAxis(AxisX))
	if c.Validate() == nil {
		t.Error("single twisted corner should fail validation")
	}

	c = Solved()
	c.SetSlot(1, c.Slot(1).WithAxis(AxisX))
	if c.Validate() == nil {
		t.Error("single flipped edge should fail validation")
	}

	c = Solved()
	c.SetSlot(0, NewCubie(2, AxisZ))
	c.SetSlot(2, NewCubie(0, AxisZ))
	if c.Validate() == nil {
		t.Error("two swapped corners should fail validation")
	}

	// Opposite twists on two corners cancel out.
	c = Solved()
	c.SetSlot(0, c.Slot(0).WithAxis(AxisX))
	c.SetSlot(2, c.Slot(2).WithAxis(AxisX))
	if err := c.Validate(); err != nil {
		t.Errorf("balanced twists: %v", err)
	}

	// A corner swap together with an edge swap keeps the parities equal.
	c = Solved()
	c.SetSlot(0, NewCubie(2, AxisZ))
	c.SetSlot(2, NewCubie(0, AxisZ))
	c.SetSlot(1, NewCubie(5, AxisZ))
	c.SetSlot(5, NewCubie(1, AxisZ))
	if err := c.Validate(); err != nil {
		t.Errorf("paired swaps: %v", err)
	}
}
