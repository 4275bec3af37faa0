package chess

import "testing"

func TestPiecePosition(t *testing.T) {
	team := NewTeam(WhiteTeam, White)
	p := NewPiece("p", "White Pawn", Pawn, team)

	if _, ok := p.Position(); ok {
		t.Error("Position() before placement reported true")
	}

	p.PushPosition(At(2, 4))
	p.PushPosition(At(3, 4))
	if pos, ok := p.Position(); !ok || pos != At(3, 4) {
		t.Errorf("Position() = %v, %v; want d3, true", pos, ok)
	}
	if p.HistoryLen() != 2 {
		t.Errorf("HistoryLen() = %d; want 2", p.HistoryLen())
	}

	p.TruncateHistory(1)
	if pos, _ := p.Position(); pos != At(2, 4) {
		t.Errorf("Position() after truncate = %v; want d2", pos)
	}
	p.TruncateHistory(5)
	if p.HistoryLen() != 1 {
		t.Errorf("TruncateHistory past length changed history to %d entries", p.HistoryLen())
	}

	captor := NewPiece("n", "Black Knight", Knight, NewTeam(BlackTeam, Black))
	p.SetCaptor(captor)
	if _, ok := p.Position(); ok {
		t.Error("Position() of captured piece reported true")
	}
	if !p.IsCaptured() || p.Captor() != captor {
		t.Errorf("Captor() = %v; want %v", p.Captor(), captor)
	}
	p.SetCaptor(nil)
	if p.IsCaptured() {
		t.Error("IsCaptured() after clearing captor = true")
	}
}

func TestPieceRecordDiscoveryIdempotent(t *testing.T) {
	p := NewPiece("p", "White Pawn", Pawn, NewTeam(WhiteTeam, White))
	d := Discovery{At: At(3, 4), BlockerID: "b", BlockerKind: Bishop, Friendly: true}

	if !p.RecordDiscovery(d) {
		t.Error("first RecordDiscovery() = false; want true")
	}
	if p.RecordDiscovery(d) {
		t.Error("repeat RecordDiscovery() = true; want false")
	}
	if got := len(p.Discoveries()); got != 1 {
		t.Errorf("len(Discoveries()) = %d; want 1", got)
	}

	other := d
	other.At = At(4, 4)
	if !p.RecordDiscovery(other) {
		t.Error("distinct RecordDiscovery() = false; want true")
	}
}

func TestTeamMembership(t *testing.T) {
	team := NewTeam(WhiteTeam, White)
	a := NewPiece("a", "A", Rook, team)
	b := NewPiece("b", "B", Rook, team)
	c := NewPiece("c", "C", Rook, team)

	if team.RemoveMember(b) != 1 {
		t.Fatal("RemoveMember(b) index != 1")
	}
	if team.HasMember(b) {
		t.Error("HasMember(b) after removal = true")
	}

	team.AddMember(b) // appended at the end
	team.InsertMember(1, b)
	roster := team.Roster()
	want := []*Piece{a, b, c}
	for i := range want {
		if roster[i] != want[i] {
			t.Errorf("Roster()[%d] = %v; want %v", i, roster[i], want[i])
		}
	}
	if len(roster) != 3 {
		t.Errorf("len(Roster()) = %d; want 3", len(roster))
	}

	enemy := NewPiece("e", "E", Knight, NewTeam(BlackTeam, Black))
	team.AddHostage(enemy)
	team.AddHostage(enemy)
	if got := len(team.Hostages()); got != 1 {
		t.Errorf("len(Hostages()) = %d; want 1", got)
	}
	if team.RemoveHostage(enemy) != 0 || team.HasHostage(enemy) {
		t.Error("RemoveHostage() did not remove the hostage")
	}
	if team.RemoveHostage(enemy) != -1 {
		t.Error("RemoveHostage() of absent piece should report -1")
	}
}

func TestPieceIsFriend(t *testing.T) {
	white := NewTeam(WhiteTeam, White)
	black := NewTeam(BlackTeam, Black)
	a := NewPiece("a", "A", Pawn, white)
	b := NewPiece("b", "B", Bishop, white)
	c := NewPiece("c", "C", Knight, black)

	if !a.IsFriend(b) {
		t.Error("IsFriend(same team) = false")
	}
	if a.IsFriend(c) {
		t.Error("IsFriend(enemy) = true")
	}
	if a.IsFriend(nil) {
		t.Error("IsFriend(nil) = true")
	}
}
