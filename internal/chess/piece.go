package chess

// Piece is a single game piece. Its current position is the last entry of
// its position history.
type Piece struct {
	ID   string
	Name string
	Team *Team
	Kind Kind

	history     []Coordinate
	captor      *Piece
	discoveries []Discovery
}

// NewPiece creates a piece and adds it to the team's roster.
func NewPiece(id, name string, kind Kind, team *Team) *Piece {
	p := &Piece{ID: id, Name: name, Kind: kind, Team: team}
	if team != nil {
		team.AddMember(p)
	}
	return p
}

// String returns the piece identifier.
func (p *Piece) String() string {
	if p == nil {
		return "<nil>"
	}
	return p.ID
}

// Position returns the current coordinate. It reports false before the
// first placement and after the piece has been captured.
func (p *Piece) Position() (Coordinate, bool) {
	if len(p.history) == 0 || p.captor != nil {
		return Coordinate{}, false
	}
	return p.history[len(p.history)-1], true
}

// History returns a copy of every coordinate the piece has occupied.
func (p *Piece) History() []Coordinate {
	return append([]Coordinate(nil), p.history...)
}

// HistoryLen returns the number of recorded positions.
func (p *Piece) HistoryLen() int {
	return len(p.history)
}

// PushPosition appends c to the position history.
func (p *Piece) PushPosition(c Coordinate) {
	p.history = append(p.history, c)
}

// TruncateHistory drops every history entry past the first n.
func (p *Piece) TruncateHistory(n int) {
	if n < 0 {
		n = 0
	}
	if n < len(p.history) {
		p.history = p.history[:n]
	}
}

// Captor returns the piece that captured p, or nil.
func (p *Piece) Captor() *Piece {
	return p.captor
}

// SetCaptor records the capturing piece. Passing nil clears it.
func (p *Piece) SetCaptor(captor *Piece) {
	p.captor = captor
}

// IsCaptured reports whether p has a captor.
func (p *Piece) IsCaptured() bool {
	return p.captor != nil
}

// IsKing reports whether p is a King.
func (p *Piece) IsKing() bool {
	return p.Kind == King
}

// IsFriend reports whether other belongs to the same team as p.
func (p *Piece) IsFriend(other *Piece) bool {
	return other != nil && p.Team != nil && p.Team == other.Team
}

// RecordDiscovery adds d to the discovery log. It returns false without
// changing anything when an identical discovery is already recorded.
func (p *Piece) RecordDiscovery(d Discovery) bool {
	for _, existing := range p.discoveries {
		if existing == d {
			return false
		}
	}
	p.discoveries = append(p.discoveries, d)
	return true
}

// Discoveries returns a copy of the discovery log.
func (p *Piece) Discoveries() []Discovery {
	return append([]Discovery(nil), p.discoveries...)
}
