package chess

import "reflect"

// PieceState is the observable state of one piece inside a Snapshot.
type PieceState struct {
	History []Coordinate
	Captor  string
}

// TeamState is the observable state of one team inside a Snapshot.
type TeamState struct {
	Roster   []string
	Hostages []string
}

// Snapshot captures the observable board state by identifier so that two
// points in time can be compared. Discovery logs are not part of it.
type Snapshot struct {
	Occupants map[Coordinate]string
	Pieces    []string
	Teams     map[string]TeamState
	States    map[string]PieceState
}

// Snapshot records the current state of the board, its teams and every
// piece reachable from them.
func (b *Board) Snapshot() Snapshot {
	s := Snapshot{
		Occupants: make(map[Coordinate]string),
		Teams:     make(map[string]TeamState, len(b.teams)),
		States:    make(map[string]PieceState),
	}

	record := func(p *Piece) {
		if _, seen := s.States[p.ID]; seen {
			return
		}
		state := PieceState{History: p.History()}
		if c := p.Captor(); c != nil {
			state.Captor = c.ID
		}
		s.States[p.ID] = state
	}

	for _, row := range b.squares {
		for _, sq := range row {
			if p := sq.Occupant(); p != nil {
				s.Occupants[sq.Coord] = p.ID
				record(p)
			}
		}
	}
	for _, p := range b.pieces {
		s.Pieces = append(s.Pieces, p.ID)
		record(p)
	}
	for _, t := range b.teams {
		var ts TeamState
		for _, p := range t.roster {
			ts.Roster = append(ts.Roster, p.ID)
			record(p)
		}
		for _, p := range t.hostages {
			ts.Hostages = append(ts.Hostages, p.ID)
			record(p)
		}
		s.Teams[t.Name] = ts
	}
	return s
}

// Equal reports whether two snapshots describe the same state.
func (s Snapshot) Equal(other Snapshot) bool {
	return reflect.DeepEqual(s, other)
}
