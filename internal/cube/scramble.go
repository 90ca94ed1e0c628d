package cube

import (
	"math/rand"

	"github.com/SeamusWaldron/gocube_solver/pkg/types"
)

// RandomMoves returns n random moves. Consecutive moves never turn the
// same face, so no prefix of the walk collapses into a shorter one.
func RandomMoves(rng *rand.Rand, n int) []types.Move {
	moves := make([]types.Move, 0, n)
	prev := types.NoMove
	for len(moves) < n {
		m := types.Move(rng.Intn(types.NumMoves))
		if prev.Valid() && m.Face() == prev.Face() {
			continue
		}
		moves = append(moves, m)
		prev = m
	}
	return moves
}

// Scramble returns a cube scrambled by n random moves, and the moves used.
func Scramble(rng *rand.Rand, n int) (Cube, []types.Move) {
	moves := RandomMoves(rng, n)
	c := Solved()
	c.ApplyMoves(moves)
	return c, moves
}
