package worker

import (
	"context"
	"testing"

	"github.com/lgbarn/movetx/internal/chess"
	"github.com/lgbarn/movetx/internal/config"
	"github.com/lgbarn/movetx/internal/engine"
	"github.com/lgbarn/movetx/internal/errors"
	"github.com/lgbarn/movetx/internal/move"
	"github.com/lgbarn/movetx/internal/testutil"
	"github.com/lgbarn/movetx/internal/validation"
)

func newEngine(t *testing.T) *engine.Engine {
	t.Helper()
	e, err := engine.New(nil, validation.Default(), nil)
	if err != nil {
		t.Fatalf("engine.New() error = %v", err)
	}
	return e
}

func workers(n int) config.WorkerConfig {
	return config.WorkerConfig{Count: n, BufferSize: n}
}

func TestRun_ManyBoards(t *testing.T) {
	e := newEngine(t)
	const boards = 20

	var attempts []Attempt
	var envs []*move.Env
	for i := 0; i < boards; i++ {
		board := testutil.MustLayout(t, "4k3/8/8/8/8/3n4/3P4/4K3")
		env, err := e.NewEnv(board)
		if err != nil {
			t.Fatalf("NewEnv() error = %v", err)
		}
		envs = append(envs, env)
		attempts = append(attempts, Attempt{Env: env, ActorID: "white-pawn-d2", Destination: chess.At(3, 4)})
	}

	results := Run(context.Background(), e, attempts, workers(4))
	if len(results) != boards {
		t.Fatalf("results = %d; want %d", len(results), boards)
	}
	for i, r := range results {
		if r.Index != i {
			t.Errorf("results[%d].Index = %d", i, r.Index)
		}
		if !r.Result.Succeeded() {
			t.Errorf("results[%d] state = %v, err = %v", i, r.Result.State(), r.Result.Err())
			continue
		}
		if r.Result.Event().Kind() != move.Capture {
			t.Errorf("results[%d] kind = %v, want capture", i, r.Result.Event().Kind())
		}
		testutil.AssertOccupant(t, envs[i].Board, "d3", "white-pawn-d2")
	}
}

func TestRun_SharedBoard(t *testing.T) {
	e := newEngine(t)
	board := testutil.MustLayout(t, "4k3/8/8/8/8/8/PPPPPPPP/4K3")
	env, err := e.NewEnv(board)
	if err != nil {
		t.Fatalf("NewEnv() error = %v", err)
	}

	var attempts []Attempt
	for file := 1; file <= 8; file++ {
		id := "white-pawn-" + chess.At(2, file).String()
		attempts = append(attempts, Attempt{Env: env, ActorID: id, Destination: chess.At(3, file)})
	}

	for i, r := range Run(context.Background(), e, attempts, workers(4)) {
		if !r.Result.Succeeded() {
			t.Errorf("attempt %d err = %v", i, r.Result.Err())
		}
	}

	for file := 1; file <= 8; file++ {
		sq := chess.At(3, file).String()
		testutil.AssertOccupant(t, board, sq, "white-pawn-"+chess.At(2, file).String())
	}
}

func TestRun_UnresolvedAttempts(t *testing.T) {
	e := newEngine(t)
	board := testutil.MustLayout(t, "4k3/8/8/8/8/8/3P4/4K3")
	env, _ := e.NewEnv(board)
	before := board.Snapshot()

	attempts := []Attempt{
		{Env: env, ActorID: "white-queen-d1", Destination: chess.At(3, 4)},
		{Env: env, ActorID: "white-pawn-d2", Destination: chess.At(9, 4)},
		{ActorID: "white-pawn-d2", Destination: chess.At(3, 4)},
	}
	causes := []error{errors.ErrActorNotInPlay, errors.ErrOutOfBounds, errors.ErrNilBoard}

	for i, r := range Run(context.Background(), e, attempts, workers(2)) {
		if !r.Result.Failed() {
			t.Errorf("attempt %d state = %v, want failed", i, r.Result.State())
		}
		testutil.AssertKind(t, r.Result.Err(), errors.KindBuild)
		testutil.AssertCause(t, r.Result.Err(), causes[i])
	}
	testutil.AssertUnchanged(t, board, before)
}

func TestRun_Cancelled(t *testing.T) {
	e := newEngine(t)
	board := testutil.MustLayout(t, "4k3/8/8/8/8/8/3P4/4K3")
	env, _ := e.NewEnv(board)
	before := board.Snapshot()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := Run(ctx, e, []Attempt{{Env: env, ActorID: "white-pawn-d2", Destination: chess.At(3, 4)}}, workers(1))
	if len(results) != 1 {
		t.Fatalf("results = %d; want 1", len(results))
	}
	if !results[0].Result.Failed() {
		t.Errorf("state = %v, want failed", results[0].Result.State())
	}
	testutil.AssertCause(t, results[0].Result.Err(), context.Canceled)
	testutil.AssertUnchanged(t, board, before)
}

func TestRun_Empty(t *testing.T) {
	if got := Run(context.Background(), newEngine(t), nil, workers(2)); len(got) != 0 {
		t.Errorf("Run(nil) = %v, want empty", got)
	}
}
