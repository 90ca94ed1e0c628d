package cube

import "github.com/SeamusWaldron/gocube_solver/pkg/types"

// faceTurn describes one quarter turn, clockwise as seen looking at the
// face: the piece in cycle[i] moves to cycle[i+1], and every moved piece
// has its axis swapped.
type faceTurn struct {
	corners [4]int
	edges   [4]int
	swap    func(Axis) Axis
}

// faceTurns is indexed by types.Face.
var faceTurns = [types.NumFaces]faceTurn{
	types.FaceLeft:   {corners: [4]int{0, 2, 4, 6}, edges: [4]int{1, 3, 5, 7}, swap: SwapYZ},
	types.FaceRight:  {corners: [4]int{8, 14, 12, 10}, edges: [4]int{9, 15, 13, 11}, swap: SwapYZ},
	types.FaceTop:    {corners: [4]int{0, 8, 10, 2}, edges: [4]int{1, 19, 9, 16}, swap: SwapXY},
	types.FaceBottom: {corners: [4]int{4, 12, 14, 6}, edges: [4]int{5, 17, 13, 18}, swap: SwapXY},
	types.FaceFront:  {corners: [4]int{2, 10, 12, 4}, edges: [4]int{3, 16, 11, 17}, swap: SwapXZ},
	types.FaceBack:   {corners: [4]int{0, 6, 14, 8}, edges: [4]int{19, 7, 18, 15}, swap: SwapXZ},
}

// turn applies one quarter turn of face f.
func (c *Cube) turn(f types.Face) {
	ft := &faceTurns[f]
	c.cycle(ft.corners, ft.swap)
	c.cycle(ft.edges, ft.swap)
}

// cycle moves the contents of s[0]->s[1]->s[2]->s[3]->s[0].
func (c *Cube) cycle(s [4]int, swap func(Axis) Axis) {
	last := c.slots[s[3]]
	c.slots[s[3]] = c.rotated(c.slots[s[2]], swap)
	c.slots[s[2]] = c.rotated(c.slots[s[1]], swap)
	c.slots[s[1]] = c.rotated(c.slots[s[0]], swap)
	c.slots[s[0]] = c.rotated(last, swap)
}

func (c *Cube) rotated(v Cubie, swap func(Axis) Axis) Cubie {
	return v.WithAxis(swap(v.Axis()))
}

// Turn turns face f clockwise by amount quarter turns (1..3).
func (c *Cube) Turn(f types.Face, amount int) {
	for i := 0; i < amount; i++ {
		c.turn(f)
	}
}

// TurnLeft turns the left face one quarter.
func (c *Cube) TurnLeft() { c.turn(types.FaceLeft) }

// TurnRight turns the right face one quarter.
func (c *Cube) TurnRight() { c.turn(types.FaceRight) }

// TurnTop turns the top face one quarter.
func (c *Cube) TurnTop() { c.turn(types.FaceTop) }

// TurnBottom turns the bottom face one quarter.
func (c *Cube) TurnBottom() { c.turn(types.FaceBottom) }

// TurnFront turns the front face one quarter.
func (c *Cube) TurnFront() { c.turn(types.FaceFront) }

// TurnBack turns the back face one quarter.
func (c *Cube) TurnBack() { c.turn(types.FaceBack) }

// ApplyMove applies a types.Move to the cube.
func (c *Cube) ApplyMove(m types.Move) {
	if !m.Valid() {
		return
	}
	c.Turn(m.Face(), m.Amount())
}

// ApplyMoves applies a sequence of moves to the cube.
func (c *Cube) ApplyMoves(moves []types.Move) {
	for _, m := range moves {
		c.ApplyMove(m)
	}
}
