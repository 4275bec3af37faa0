package testutil

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/lgbarn/movetx/internal/chess"
)

// MustLayout parses a placement string and returns the board.
// It calls t.Fatal if the layout is invalid.
func MustLayout(t *testing.T, placement string) *chess.Board {
	t.Helper()
	b, err := chess.ParseLayout(placement)
	if err != nil {
		t.Fatalf("failed to parse layout %q: %v", placement, err)
	}
	return b
}

// MustPiece returns the in-play piece with the given id.
func MustPiece(t *testing.T, b *chess.Board, id string) *chess.Piece {
	t.Helper()
	p, ok := b.PieceByID(id)
	if !ok {
		t.Fatalf("piece %q not on board", id)
	}
	return p
}

// MustSquare returns the square with the given algebraic name.
func MustSquare(t *testing.T, b *chess.Board, name string) *chess.Square {
	t.Helper()
	c, err := chess.ParseCoordinate(name)
	if err != nil {
		t.Fatalf("bad square name: %v", err)
	}
	sq, ok := b.SquareAt(c)
	if !ok {
		t.Fatalf("square %s not on board", name)
	}
	return sq
}

// AssertOccupant fails unless the named square holds the piece with
// wantID. An empty wantID asserts the square is empty.
func AssertOccupant(t *testing.T, b *chess.Board, square, wantID string) {
	t.Helper()
	got := ""
	if p := MustSquare(t, b, square).Occupant(); p != nil {
		got = p.ID
	}
	if got != wantID {
		t.Errorf("occupant of %s = %q, want %q", square, got, wantID)
	}
}

// AssertUnchanged fails if the board's current state differs from before.
func AssertUnchanged(t *testing.T, b *chess.Board, before chess.Snapshot) {
	t.Helper()
	if diff := cmp.Diff(before, b.Snapshot()); diff != "" {
		t.Errorf("board state changed (-before +after):\n%s", diff)
	}
}
