package chess

// Team owns a roster of active pieces and keeps the enemy pieces it has
// captured as hostages.
type Team struct {
	Name   string
	Colour Colour

	roster   []*Piece
	hostages []*Piece
}

// NewTeam creates an empty team.
func NewTeam(name string, colour Colour) *Team {
	return &Team{Name: name, Colour: colour}
}

// Roster returns a copy of the active pieces.
func (t *Team) Roster() []*Piece {
	return append([]*Piece(nil), t.roster...)
}

// Hostages returns a copy of the captured enemy pieces.
func (t *Team) Hostages() []*Piece {
	return append([]*Piece(nil), t.hostages...)
}

// HasMember reports whether p is in the roster.
func (t *Team) HasMember(p *Piece) bool {
	return indexOf(t.roster, p) >= 0
}

// HasHostage reports whether p is held hostage.
func (t *Team) HasHostage(p *Piece) bool {
	return indexOf(t.hostages, p) >= 0
}

// AddMember appends p to the roster if it is not already present.
func (t *Team) AddMember(p *Piece) {
	if !t.HasMember(p) {
		t.roster = append(t.roster, p)
	}
}

// InsertMember places p at index i of the roster, clamping i to the
// roster bounds. Any existing entry for p is removed first.
func (t *Team) InsertMember(i int, p *Piece) {
	t.RemoveMember(p)
	t.roster = insertAt(t.roster, i, p)
}

// RemoveMember removes p from the roster and returns its former index,
// or -1 if it was not a member.
func (t *Team) RemoveMember(p *Piece) int {
	var i int
	t.roster, i = removeFrom(t.roster, p)
	return i
}

// AddHostage appends p to the hostages if it is not already present.
func (t *Team) AddHostage(p *Piece) {
	if !t.HasHostage(p) {
		t.hostages = append(t.hostages, p)
	}
}

// RemoveHostage removes p from the hostages and returns its former index,
// or -1 if it was not held.
func (t *Team) RemoveHostage(p *Piece) int {
	var i int
	t.hostages, i = removeFrom(t.hostages, p)
	return i
}

func indexOf(pieces []*Piece, p *Piece) int {
	for i, q := range pieces {
		if q == p {
			return i
		}
	}
	return -1
}

func removeFrom(pieces []*Piece, p *Piece) ([]*Piece, int) {
	i := indexOf(pieces, p)
	if i < 0 {
		return pieces, -1
	}
	out := make([]*Piece, 0, len(pieces)-1)
	out = append(out, pieces[:i]...)
	out = append(out, pieces[i+1:]...)
	return out, i
}

func insertAt(pieces []*Piece, i int, p *Piece) []*Piece {
	if i < 0 {
		i = 0
	}
	if i > len(pieces) {
		i = len(pieces)
	}
	out := make([]*Piece, 0, len(pieces)+1)
	out = append(out, pieces[:i]...)
	out = append(out, p)
	out = append(out, pieces[i:]...)
	return out
}
