package worker

import (
	"context"
	"fmt"

	"github.com/lgbarn/movetx/internal/config"
	"github.com/lgbarn/movetx/internal/engine"
	"github.com/lgbarn/movetx/internal/errors"
)

// Run executes attempts through eng on a pool sized by cfg and returns one
// result per attempt, in submission order. Attempts that share a board are
// serialised by the board's lock; attempts on different boards run in
// parallel. Once ctx is done, attempts not yet started are reported as
// failed without touching their board.
func Run(ctx context.Context, eng *engine.Engine, attempts []Attempt, cfg config.WorkerConfig) []ProcessResult {
	pool := NewPool(func(item WorkItem) ProcessResult {
		return ProcessResult{
			Index:   item.Index,
			Attempt: item.Attempt,
			Result:  attempt(ctx, eng, item.Attempt),
		}
	}, WithWorkers(cfg.Count), WithBufferSize(cfg.BufferSize))
	pool.Start()

	results := make([]ProcessResult, len(attempts))
	seen := make([]bool, len(attempts))
	collected := make(chan struct{})
	go func() {
		defer close(collected)
		for r := range pool.Results() {
			results[r.Index] = r
			seen[r.Index] = true
		}
	}()

	stop := context.AfterFunc(ctx, pool.Stop)
	defer stop()

	for i, a := range attempts {
		if ctx.Err() != nil {
			break
		}
		pool.Submit(WorkItem{Index: i, Attempt: a})
	}
	pool.Close()
	<-collected

	for i := range results {
		if !seen[i] {
			results[i] = ProcessResult{Index: i, Attempt: attempts[i], Result: engine.Rejected(cancelled(ctx))}
		}
	}
	return results
}

// attempt resolves the actor and destination on the attempt's board and
// runs the move.
func attempt(ctx context.Context, eng *engine.Engine, a Attempt) engine.Result {
	if a.Env == nil || a.Env.Board == nil {
		return engine.Rejected(errors.New(errors.KindBuild, "build", errors.ErrNilBoard))
	}
	board := a.Env.Board

	board.Lock()
	actor, found := board.PieceByID(a.ActorID)
	dest, inBounds := board.SquareAt(a.Destination)
	board.Unlock()

	switch {
	case !found:
		return engine.Rejected(errors.New(errors.KindBuild, "build",
			errors.Wrapf(errors.ErrActorNotInPlay, "no piece %q", a.ActorID)))
	case !inBounds:
		return engine.Rejected(errors.New(errors.KindBuild, "build",
			errors.Wrapf(errors.ErrOutOfBounds, "square %s", a.Destination)))
	}
	return eng.Move(ctx, actor, dest, a.Env)
}

func cancelled(ctx context.Context) error {
	cause := ctx.Err()
	if cause == nil {
		cause = fmt.Errorf("attempt not run")
	}
	kind := errors.KindUnhandled
	if errors.Is(cause, context.DeadlineExceeded) {
		kind = errors.KindTimedOut
	}
	return errors.New(kind, "run", cause)
}
