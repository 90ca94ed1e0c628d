// Package types contains the move alphabet shared by the solver packages.
package types

import (
	"errors"
	"strings"
)

// ErrInvalidNotation is returned when a move string cannot be parsed.
var ErrInvalidNotation = errors.New("gocube: invalid move notation")

// Face identifies one of the six turnable faces, in canonical order.
type Face uint8

const (
	FaceLeft Face = iota
	FaceRight
	FaceTop
	FaceBottom
	FaceFront
	FaceBack
)

// NumFaces is the number of turnable faces.
const NumFaces = 6

// Faces lists every face in canonical order.
var Faces = [NumFaces]Face{FaceLeft, FaceRight, FaceTop, FaceBottom, FaceFront, FaceBack}

// String returns the notation letter for the face. Top and Bottom use the
// conventional U and D.
func (f Face) String() string {
	switch f {
	case FaceLeft:
		return "L"
	case FaceRight:
		return "R"
	case FaceTop:
		return "U"
	case FaceBottom:
		return "D"
	case FaceFront:
		return "F"
	case FaceBack:
		return "B"
	default:
		return "?"
	}
}

// Name returns the long face name.
func (f Face) Name() string {
	switch f {
	case FaceLeft:
		return "Left"
	case FaceRight:
		return "Right"
	case FaceTop:
		return "Top"
	case FaceBottom:
		return "Bottom"
	case FaceFront:
		return "Front"
	case FaceBack:
		return "Back"
	default:
		return "Unknown"
	}
}

// Partner returns the opposite face.
func (f Face) Partner() Face {
	return f ^ 1
}

// IsSecondOfPair reports whether f is the later face of its opposing pair
// (Right, Bottom, Back). Opposite faces commute, so search lets the
// second face of a pair follow the first, never the reverse.
func (f Face) IsSecondOfPair() bool {
	return f&1 == 1
}

// Move is one of the 18 face turns: face*3 + (quarter turns - 1).
type Move uint8

// NumMoves is the size of the move alphabet.
const NumMoves = 18

// NoMove is the action of a root node.
const NoMove Move = 0xFF

// labels holds the single-character code of every move, grouped by face.
const labels = "abcdefghijklmnopqr"

// Predefined moves. Amount 1 is a clockwise quarter turn, 2 a half turn,
// 3 a counter-clockwise quarter turn.
var (
	L      = NewMove(FaceLeft, 1)
	L2     = NewMove(FaceLeft, 2)
	LPrime = NewMove(FaceLeft, 3)

	R      = NewMove(FaceRight, 1)
	R2     = NewMove(FaceRight, 2)
	RPrime = NewMove(FaceRight, 3)

	U      = NewMove(FaceTop, 1)
	U2     = NewMove(FaceTop, 2)
	UPrime = NewMove(FaceTop, 3)

	D      = NewMove(FaceBottom, 1)
	D2     = NewMove(FaceBottom, 2)
	DPrime = NewMove(FaceBottom, 3)

	F      = NewMove(FaceFront, 1)
	F2     = NewMove(FaceFront, 2)
	FPrime = NewMove(FaceFront, 3)

	B      = NewMove(FaceBack, 1)
	B2     = NewMove(FaceBack, 2)
	BPrime = NewMove(FaceBack, 3)
)

// NewMove builds a move from a face and a quarter-turn amount in 1..3.
func NewMove(f Face, amount int) Move {
	if f >= NumFaces || amount < 1 || amount > 3 {
		return NoMove
	}
	return Move(int(f)*3 + amount - 1)
}

// Valid reports whether m is one of the 18 moves.
func (m Move) Valid() bool {
	return m < NumMoves
}

// Face returns the face turned by m.
func (m Move) Face() Face {
	return Face(m / 3)
}

// Amount returns the number of clockwise quarter turns (1..3).
func (m Move) Amount() int {
	return int(m%3) + 1
}

// Label returns the single-character code of the move, or '-' for NoMove.
func (m Move) Label() byte {
	if !m.Valid() {
		return '-'
	}
	return labels[m]
}

// Notation returns the standard cube notation string for this move.
// Examples: L, L2, L', U, U2, U'
func (m Move) Notation() string {
	if !m.Valid() {
		return "-"
	}
	suffix := ""
	switch m.Amount() {
	case 2:
		suffix = "2"
	case 3:
		suffix = "'"
	}
	return m.Face().String() + suffix
}

// String returns the notation string (alias for Notation).
func (m Move) String() string {
	return m.Notation()
}

// Inverse returns the move that undoes m.
// L becomes L', L' becomes L, L2 stays L2.
func (m Move) Inverse() Move {
	if !m.Valid() {
		return m
	}
	return NewMove(m.Face(), 4-m.Amount())
}

// MoveFromLabel decodes a single-character move code.
func MoveFromLabel(b byte) (Move, error) {
	i := strings.IndexByte(labels, b)
	if i < 0 {
		return NoMove, ErrInvalidNotation
	}
	return Move(i), nil
}

// ParseMove parses a standard notation string into a Move.
// Examples: L, L2, L', U (T is accepted for Top), D'
// A lone lowercase character is read as a move label.
func ParseMove(s string) (Move, error) {
	s = strings.TrimSpace(s)
	if len(s) == 0 {
		return NoMove, ErrInvalidNotation
	}

	var face Face
	switch s[0] {
	case 'L':
		face = FaceLeft
	case 'R':
		face = FaceRight
	case 'U', 'T':
		face = FaceTop
	case 'D':
		face = FaceBottom
	case 'F':
		face = FaceFront
	case 'B':
		face = FaceBack
	default:
		if len(s) == 1 {
			return MoveFromLabel(s[0])
		}
		return NoMove, ErrInvalidNotation
	}

	amount := 1
	if len(s) > 1 {
		switch s[1:] {
		case "'", "`", "3":
			amount = 3
		case "2", "2'", "2`":
			amount = 2
		default:
			return NoMove, ErrInvalidNotation
		}
	}

	return NewMove(face, amount), nil
}

// ParseMoves parses a space-separated sequence of moves.
// Example: "R U R' U'"
// Unlike single moves, any invalid token fails the whole sequence.
func ParseMoves(s string) ([]Move, error) {
	parts := strings.Fields(s)
	moves := make([]Move, 0, len(parts))

	for _, part := range parts {
		move, err := ParseMove(part)
		if err != nil {
			return nil, err
		}
		moves = append(moves, move)
	}

	return moves, nil
}

// FormatMoves formats a slice of moves as a space-separated notation string.
func FormatMoves(moves []Move) string {
	if len(moves) == 0 {
		return ""
	}

	parts := make([]string, len(moves))
	for i, m := range moves {
		parts[i] = m.Notation()
	}

	return strings.Join(parts, " ")
}

// Labels encodes moves as a string of single-character codes.
func Labels(moves []Move) string {
	b := make([]byte, len(moves))
	for i, m := range moves {
		b[i] = m.Label()
	}
	return string(b)
}

// ParseLabels decodes a string of single-character codes.
func ParseLabels(s string) ([]Move, error) {
	moves := make([]Move, 0, len(s))
	for i := 0; i < len(s); i++ {
		m, err := MoveFromLabel(s[i])
		if err != nil {
			return nil, err
		}
		moves = append(moves, m)
	}
	return moves, nil
}

// InverseMoves returns the sequence that undoes moves.
func InverseMoves(moves []Move) []Move {
	inv := make([]Move, len(moves))
	for i, m := range moves {
		inv[len(moves)-1-i] = m.Inverse()
	}
	return inv
}
