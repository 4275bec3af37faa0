package move

import (
	"context"
	"testing"
	"time"

	"github.com/lgbarn/movetx/internal/chess"
	"github.com/lgbarn/movetx/internal/errors"
	"github.com/lgbarn/movetx/internal/testutil"
	"github.com/lgbarn/movetx/internal/validation"
)

func newBuilder() *Builder {
	return NewBuilder(validation.Default())
}

func TestBuild_Classification(t *testing.T) {
	tests := []struct {
		name       string
		layout     string
		actor      string
		dest       string
		wantKind   Kind
		wantTarget string
	}{
		{
			name:     "empty destination relocates",
			layout:   "4k3/8/8/8/8/8/3P4/4K3",
			actor:    "white-pawn-d2",
			dest:     "d3",
			wantKind: Relocation,
		},
		{
			name:       "enemy knight is captured",
			layout:     "4k3/8/8/8/8/3n4/3P4/4K3",
			actor:      "white-pawn-d2",
			dest:       "d3",
			wantKind:   Capture,
			wantTarget: "black-knight-d3",
		},
		{
			name:       "friendly bishop blocks",
			layout:     "4k3/8/8/8/8/3B4/3P4/4K3",
			actor:      "white-pawn-d2",
			dest:       "d3",
			wantKind:   BlockedScan,
			wantTarget: "white-bishop-d3",
		},
		{
			name:       "enemy king blocks",
			layout:     "8/8/8/8/8/3k4/3P4/4K3",
			actor:      "white-pawn-d2",
			dest:       "d3",
			wantKind:   BlockedScan,
			wantTarget: "black-king-d3",
		},
		{
			name:       "black rook captures white queen",
			layout:     "r3k3/8/8/8/8/8/8/Q3K3",
			actor:      "black-rook-a8",
			dest:       "a1",
			wantKind:   Capture,
			wantTarget: "white-queen-a1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board := testutil.MustLayout(t, tt.layout)
			before := board.Snapshot()
			actor := testutil.MustPiece(t, board, tt.actor)
			dest := testutil.MustSquare(t, board, tt.dest)

			ev, err := newBuilder().Build(context.Background(), actor, dest, NewEnv(board))
			if err != nil {
				t.Fatalf("Build() error = %v", err)
			}
			if ev.Kind() != tt.wantKind {
				t.Errorf("Kind() = %v, want %v", ev.Kind(), tt.wantKind)
			}
			if ev.Actor() != actor || ev.Destination() != dest {
				t.Errorf("event fields = %v, %v; want %v, %v", ev.Actor(), ev.Destination(), actor, dest)
			}
			if origin, _ := board.OriginOf(actor); ev.Origin() != origin {
				t.Errorf("Origin() = %v, want actor's square", ev.Origin())
			}

			var target *chess.Piece
			switch ev.Kind() {
			case Capture:
				target = ev.Captured()
				if ev.Blocker() != nil {
					t.Error("capture carries a blocker")
				}
			case BlockedScan:
				target = ev.Blocker()
				if ev.Captured() != nil {
					t.Error("blocked scan carries a captured piece")
				}
			}
			gotTarget := ""
			if target != nil {
				gotTarget = target.ID
			}
			if gotTarget != tt.wantTarget {
				t.Errorf("target = %q, want %q", gotTarget, tt.wantTarget)
			}

			testutil.AssertUnchanged(t, board, before)
		})
	}
}

func TestBuild_Rejects(t *testing.T) {
	board := testutil.MustLayout(t, "4k3/8/8/8/8/3n4/3P4/4K3")
	pawn := testutil.MustPiece(t, board, "white-pawn-d2")
	d2 := testutil.MustSquare(t, board, "d2")
	d4 := testutil.MustSquare(t, board, "d4")
	env := NewEnv(board)

	foreign := chess.NewBoard(8, 8)
	foreignSquare, _ := foreign.SquareAt(chess.At(3, 4))

	offBoard := chess.NewPiece("white-rook-z9", "White Rook", chess.Rook, pawn.Team)

	tests := []struct {
		name  string
		actor *chess.Piece
		dest  *chess.Square
		env   *Env
		cause error
	}{
		{"nil actor", nil, d4, env, errors.ErrNilActor},
		{"nil destination", pawn, nil, env, errors.ErrNilDestination},
		{"nil env", pawn, d4, nil, errors.ErrNilBoard},
		{"no id source", pawn, d4, &Env{Board: board}, errors.ErrInvalidID},
		{"circular move", pawn, d2, env, errors.ErrCircularMove},
		{"foreign square", pawn, foreignSquare, env, errors.ErrOutOfBounds},
		{"actor not in play", offBoard, d4, env, errors.ErrActorNotInPlay},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, err := newBuilder().Build(context.Background(), tt.actor, tt.dest, tt.env)
			if ev != nil {
				t.Errorf("Build() event = %v, want nil", ev)
			}
			testutil.AssertKind(t, err, errors.KindBuild)
			testutil.AssertCause(t, err, tt.cause)
		})
	}
}

func TestBuild_OriginNotFound(t *testing.T) {
	board := testutil.MustLayout(t, "4k3/8/8/8/8/8/3P4/4K3")
	pawn := testutil.MustPiece(t, board, "white-pawn-d2")
	testutil.MustSquare(t, board, "d2").Clear()

	_, err := newBuilder().Build(context.Background(), pawn, testutil.MustSquare(t, board, "d3"), NewEnv(board))
	testutil.AssertKind(t, err, errors.KindBuild)
	testutil.AssertCause(t, err, errors.ErrOriginNotFound)
}

func TestBuild_SelfCapture(t *testing.T) {
	board := testutil.MustLayout(t, "4k3/8/8/8/8/8/3P4/4K3")
	pawn := testutil.MustPiece(t, board, "white-pawn-d2")
	// Inconsistent state: the pawn is also recorded on d3.
	testutil.MustSquare(t, board, "d3").SetOccupant(pawn)

	_, err := newBuilder().Build(context.Background(), pawn, testutil.MustSquare(t, board, "d3"), NewEnv(board))
	testutil.AssertKind(t, err, errors.KindBuild)
	testutil.AssertCause(t, err, errors.ErrSelfCapture)
}

func TestBuild_InvalidIdentity(t *testing.T) {
	board := testutil.MustLayout(t, "4k3/8/8/8/8/8/3P4/4K3")
	pawn := testutil.MustPiece(t, board, "white-pawn-d2")
	pawn.Name = ""

	_, err := newBuilder().Build(context.Background(), pawn, testutil.MustSquare(t, board, "d3"), NewEnv(board))
	testutil.AssertKind(t, err, errors.KindBuild)
	testutil.AssertCause(t, err, errors.ErrInvalidName)
}

func TestBuild_TimedOut(t *testing.T) {
	board := testutil.MustLayout(t, "4k3/8/8/8/8/8/3P4/4K3")
	pawn := testutil.MustPiece(t, board, "white-pawn-d2")

	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()

	_, err := newBuilder().Build(ctx, pawn, testutil.MustSquare(t, board, "d3"), NewEnv(board))
	testutil.AssertKind(t, err, errors.KindTimedOut)
}

func TestBuild_UsesEnvIDSource(t *testing.T) {
	board := testutil.MustLayout(t, "4k3/8/8/8/8/8/3P4/4K3")
	pawn := testutil.MustPiece(t, board, "white-pawn-d2")
	env := &Env{Board: board, IDs: NewCounter("game7")}
	b := newBuilder()

	first, err := b.Build(context.Background(), pawn, testutil.MustSquare(t, board, "d3"), env)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	second, err := b.Build(context.Background(), pawn, testutil.MustSquare(t, board, "d4"), env)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if first.ID() != "game7-000001" || second.ID() != "game7-000002" {
		t.Errorf("ids = %q, %q; want game7-000001, game7-000002", first.ID(), second.ID())
	}
}
