package chess

import (
	"fmt"
	"sync"

	"github.com/lgbarn/movetx/internal/errors"
)

// Square is a single board cell.
type Square struct {
	Coord    Coordinate
	occupant *Piece
}

// Occupant returns the piece on the square, or nil.
func (s *Square) Occupant() *Piece {
	return s.occupant
}

// SetOccupant places p on the square. Passing nil empties it.
func (s *Square) SetOccupant(p *Piece) {
	s.occupant = p
}

// Clear empties the square.
func (s *Square) Clear() {
	s.occupant = nil
}

// IsEmpty reports whether the square has no occupant.
func (s *Square) IsEmpty() bool {
	return s.occupant == nil
}

// Board holds the squares, the teams, and the master set of in-play pieces.
type Board struct {
	ranks, files int
	squares      [][]*Square // squares[rank-1][file-1]
	teams        []*Team
	pieces       []*Piece

	// mu serialises transactions against this board.
	mu sync.Mutex
}

// NewBoard creates an empty board with the given dimensions.
func NewBoard(ranks, files int) *Board {
	if ranks < 1 {
		ranks = 1
	}
	if files < 1 {
		files = 1
	}
	b := &Board{ranks: ranks, files: files}
	b.squares = make([][]*Square, ranks)
	for r := 0; r < ranks; r++ {
		b.squares[r] = make([]*Square, files)
		for f := 0; f < files; f++ {
			b.squares[r][f] = &Square{Coord: Coordinate{Rank: r + 1, File: f + 1}}
		}
	}
	return b
}

// Ranks returns the number of ranks.
func (b *Board) Ranks() int { return b.ranks }

// Files returns the number of files.
func (b *Board) Files() int { return b.files }

// Lock acquires exclusive use of the board for one transaction.
func (b *Board) Lock() { b.mu.Lock() }

// Unlock releases the board.
func (b *Board) Unlock() { b.mu.Unlock() }

// InBounds reports whether c addresses a square of this board.
func (b *Board) InBounds(c Coordinate) bool {
	return c.Rank >= 1 && c.Rank <= b.ranks && c.File >= 1 && c.File <= b.files
}

// SquareAt returns the square at c.
func (b *Board) SquareAt(c Coordinate) (*Square, bool) {
	if !b.InBounds(c) {
		return nil, false
	}
	return b.squares[c.Rank-1][c.File-1], true
}

// Owns reports whether s is one of this board's squares.
func (b *Board) Owns(s *Square) bool {
	if s == nil {
		return false
	}
	got, ok := b.SquareAt(s.Coord)
	return ok && got == s
}

// OriginOf resolves the square p currently stands on. It reports false if
// p is not placed or the square at its position is not occupied by p.
func (b *Board) OriginOf(p *Piece) (*Square, bool) {
	pos, ok := p.Position()
	if !ok {
		return nil, false
	}
	sq, ok := b.SquareAt(pos)
	if !ok || sq.Occupant() != p {
		return nil, false
	}
	return sq, true
}

// AddTeam registers a team with the board.
func (b *Board) AddTeam(t *Team) {
	for _, existing := range b.teams {
		if existing == t {
			return
		}
	}
	b.teams = append(b.teams, t)
}

// Teams returns the registered teams in registration order.
func (b *Board) Teams() []*Team {
	return append([]*Team(nil), b.teams...)
}

// TeamByName returns the team with the given name.
func (b *Board) TeamByName(name string) (*Team, bool) {
	for _, t := range b.teams {
		if t.Name == name {
			return t, true
		}
	}
	return nil, false
}

// Place puts p on the square at c for the first time and adds it to the
// set of in-play pieces.
func (b *Board) Place(p *Piece, c Coordinate) error {
	sq, ok := b.SquareAt(c)
	if !ok {
		return fmt.Errorf("place %s at %s: %w", p, c, errors.ErrOutOfBounds)
	}
	if !sq.IsEmpty() {
		return fmt.Errorf("place %s at %s: %w", p, c, errors.ErrSquareOccupied)
	}
	if _, placed := p.Position(); placed {
		return fmt.Errorf("place %s at %s: piece already placed", p, c)
	}
	if p.Team != nil {
		b.AddTeam(p.Team)
	}
	sq.SetOccupant(p)
	p.PushPosition(c)
	b.AddPiece(p)
	return nil
}

// Pieces returns a copy of the in-play pieces.
func (b *Board) Pieces() []*Piece {
	return append([]*Piece(nil), b.pieces...)
}

// Contains reports whether p is in play on this board.
func (b *Board) Contains(p *Piece) bool {
	return indexOf(b.pieces, p) >= 0
}

// PieceByID returns the in-play piece with the given id.
func (b *Board) PieceByID(id string) (*Piece, bool) {
	for _, p := range b.pieces {
		if p.ID == id {
			return p, true
		}
	}
	return nil, false
}

// AddPiece appends p to the in-play set if it is not already present.
func (b *Board) AddPiece(p *Piece) {
	if !b.Contains(p) {
		b.pieces = append(b.pieces, p)
	}
}

// InsertPiece places p at index i of the in-play set. Any existing entry
// for p is removed first.
func (b *Board) InsertPiece(i int, p *Piece) {
	b.RemovePiece(p)
	b.pieces = insertAt(b.pieces, i, p)
}

// RemovePiece removes p from the in-play set and returns its former
// index, or -1 if it was absent.
func (b *Board) RemovePiece(p *Piece) int {
	var i int
	b.pieces, i = removeFrom(b.pieces, p)
	return i
}
