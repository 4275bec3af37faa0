// Package chess provides the board, square, team and piece types that move
// transactions operate on.
package chess

import (
	"fmt"
	"strconv"
	"strings"
)

// Colour represents the colour of a team.
type Colour int

const (
	Black Colour = iota
	White
)

// String returns the string representation of a colour.
func (c Colour) String() string {
	if c == White {
		return "White"
	}
	return "Black"
}

// Opposite returns the opposite colour.
func (c Colour) Opposite() Colour {
	if c == White {
		return Black
	}
	return White
}

// Kind is the rank of a piece. Movement capability per kind is decided
// outside this module.
type Kind int

const (
	NoKind Kind = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
	NumKinds
)

// String returns the string representation of a kind.
func (k Kind) String() string {
	names := []string{"None", "Pawn", "Knight", "Bishop", "Rook", "Queen", "King"}
	if k >= 0 && int(k) < len(names) {
		return names[k]
	}
	return "Unknown"
}

// Letter returns the single uppercase letter for a kind.
func (k Kind) Letter() byte {
	letters := []byte{' ', 'P', 'N', 'B', 'R', 'Q', 'K'}
	if k >= 0 && int(k) < len(letters) {
		return letters[k]
	}
	return '?'
}

// Valid reports whether k is a real piece kind.
func (k Kind) Valid() bool {
	return k > NoKind && k < NumKinds
}

// KindFromLetter converts a placement letter (either case) to a kind.
func KindFromLetter(c byte) Kind {
	switch c {
	case 'K', 'k':
		return King
	case 'Q', 'q':
		return Queen
	case 'R', 'r':
		return Rook
	case 'N', 'n':
		return Knight
	case 'B', 'b':
		return Bishop
	case 'P', 'p':
		return Pawn
	default:
		return NoKind
	}
}

// Coordinate addresses a square. Rank and File are 1-based; (1,1) is a1.
type Coordinate struct {
	Rank int
	File int
}

// At is shorthand for Coordinate{Rank: rank, File: file}.
func At(rank, file int) Coordinate {
	return Coordinate{Rank: rank, File: file}
}

// String returns the algebraic name of the coordinate when the file fits
// a letter, and "(rank,file)" otherwise.
func (c Coordinate) String() string {
	if c.File >= 1 && c.File <= 26 && c.Rank >= 1 {
		return fmt.Sprintf("%c%d", 'a'+c.File-1, c.Rank)
	}
	return fmt.Sprintf("(%d,%d)", c.Rank, c.File)
}

// ParseCoordinate parses an algebraic square name such as "e4".
func ParseCoordinate(s string) (Coordinate, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if len(s) < 2 || s[0] < 'a' || s[0] > 'z' {
		return Coordinate{}, fmt.Errorf("invalid coordinate %q", s)
	}
	if s[1] < '0' || s[1] > '9' {
		return Coordinate{}, fmt.Errorf("invalid coordinate %q", s)
	}
	rank, err := strconv.Atoi(s[1:])
	if err != nil || rank < 1 {
		return Coordinate{}, fmt.Errorf("invalid coordinate %q", s)
	}
	return Coordinate{Rank: rank, File: int(s[0]-'a') + 1}, nil
}

// Discovery records that a piece observed an obstruction at a coordinate.
type Discovery struct {
	At          Coordinate
	BlockerID   string
	BlockerKind Kind
	Friendly    bool
}
