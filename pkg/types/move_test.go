package types

import (
	"errors"
	"testing"
)

func TestMoveAlphabet(t *testing.T) {
	seen := make(map[byte]bool)
	for m := Move(0); m < NumMoves; m++ {
		if seen[m.Label()] {
			t.Errorf("label %q used twice", m.Label())
		}
		seen[m.Label()] = true

		if got := NewMove(m.Face(), m.Amount()); got != m {
			t.Errorf("NewMove(%v, %d) = %d, want %d", m.Face(), m.Amount(), got, m)
		}
	}
	if L.Label() != 'a' || BPrime.Label() != 'r' {
		t.Errorf("labels not in canonical order: L=%q B'=%q", L.Label(), BPrime.Label())
	}
	if NoMove.Label() != '-' {
		t.Errorf("NoMove label = %q", NoMove.Label())
	}
}

func TestNotation(t *testing.T) {
	tests := []struct {
		move Move
		want string
	}{
		{L, "L"},
		{R2, "R2"},
		{UPrime, "U'"},
		{D, "D"},
		{F2, "F2"},
		{BPrime, "B'"},
	}
	for _, tt := range tests {
		if got := tt.move.Notation(); got != tt.want {
			t.Errorf("Notation() = %q, want %q", got, tt.want)
		}
	}
}

func TestInverse(t *testing.T) {
	if L.Inverse() != LPrime {
		t.Error("L inverse should be L'")
	}
	if LPrime.Inverse() != L {
		t.Error("L' inverse should be L")
	}
	if R2.Inverse() != R2 {
		t.Error("R2 should be its own inverse")
	}
	for m := Move(0); m < NumMoves; m++ {
		if m.Inverse().Inverse() != m {
			t.Errorf("double inverse of %v = %v", m, m.Inverse().Inverse())
		}
	}

	got := InverseMoves([]Move{L, U})
	if len(got) != 2 || got[0] != UPrime || got[1] != LPrime {
		t.Errorf("InverseMoves(L U) = %v, want [U' L']", got)
	}
}

func TestParseMoves(t *testing.T) {
	moves, err := ParseMoves("L R2 U' T D F2 B`")
	if err != nil {
		t.Fatalf("ParseMoves: %v", err)
	}
	want := []Move{L, R2, UPrime, U, D, F2, BPrime}
	if len(moves) != len(want) {
		t.Fatalf("got %d moves, want %d", len(moves), len(want))
	}
	for i := range want {
		if moves[i] != want[i] {
			t.Errorf("move %d = %v, want %v", i, moves[i], want[i])
		}
	}

	if got := FormatMoves(moves); got != "L R2 U' U D F2 B'" {
		t.Errorf("FormatMoves = %q", got)
	}

	if _, err := ParseMoves("L X"); !errors.Is(err, ErrInvalidNotation) {
		t.Errorf("expected ErrInvalidNotation, got %v", err)
	}
	if _, err := ParseMove("L4"); !errors.Is(err, ErrInvalidNotation) {
		t.Errorf("expected ErrInvalidNotation for L4, got %v", err)
	}
}

func TestLabelsRoundTrip(t *testing.T) {
	moves := []Move{L, RPrime, U2, DPrime, F, B2}
	s := Labels(moves)
	if s != "afhlmq" {
		t.Errorf("Labels = %q", s)
	}
	back, err := ParseLabels(s)
	if err != nil {
		t.Fatalf("ParseLabels: %v", err)
	}
	for i := range moves {
		if back[i] != moves[i] {
			t.Errorf("label %d decoded as %v, want %v", i, back[i], moves[i])
		}
	}
	if _, err := ParseLabels("az"); !errors.Is(err, ErrInvalidNotation) {
		t.Errorf("expected ErrInvalidNotation, got %v", err)
	}
}

func TestPairs(t *testing.T) {
	if FaceLeft.Partner() != FaceRight || FaceBack.Partner() != FaceFront {
		t.Error("wrong partner faces")
	}
	for _, f := range []Face{FaceRight, FaceBottom, FaceBack} {
		if !f.IsSecondOfPair() {
			t.Errorf("%s should be second of its pair", f.Name())
		}
	}
	for _, f := range []Face{FaceLeft, FaceTop, FaceFront} {
		if f.IsSecondOfPair() {
			t.Errorf("%s should be first of its pair", f.Name())
		}
	}
}
