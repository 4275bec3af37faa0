// batch.go - Applying moves to several boards through the worker pool
package main

import (
	"context"

	"github.com/lgbarn/movetx/internal/config"
	"github.com/lgbarn/movetx/internal/engine"
	"github.com/lgbarn/movetx/internal/errors"
	"github.com/lgbarn/movetx/internal/move"
	"github.com/lgbarn/movetx/internal/worker"
)

// applyMoves plays moves on every board in envs. Each move is one round:
// the round's attempts, one per board, run in parallel on the worker pool,
// and the next round starts only when all of them are done, so every board
// sees the moves in command-line order. The returned reports are indexed by
// board, then by move.
func applyMoves(ctx context.Context, eng *engine.Engine, envs []*move.Env, moves []string, cfg config.WorkerConfig) [][]moveReport {
	reports := make([][]moveReport, len(envs))

	for _, arg := range moves {
		from, to, err := parseMove(arg)
		if err != nil {
			for i := range envs {
				reports[i] = append(reports[i], moveReport{Move: arg, State: "invalid", Error: err.Error()})
			}
			continue
		}

		results := make([]engine.Result, len(envs))
		var attempts []worker.Attempt
		var slots []int
		for i, env := range envs {
			origin, ok := env.Board.SquareAt(from)
			if !ok || origin.Occupant() == nil {
				results[i] = engine.Rejected(errors.New(errors.KindBuild, "build",
					errors.Wrapf(errors.ErrNilActor, "no piece on %s", from)))
				continue
			}
			attempts = append(attempts, worker.Attempt{Env: env, ActorID: origin.Occupant().ID, Destination: to})
			slots = append(slots, i)
		}

		for _, r := range worker.Run(ctx, eng, attempts, cfg) {
			results[slots[r.Index]] = r.Result
		}
		for i, res := range results {
			reports[i] = append(reports[i], reportMove(arg, res))
		}
	}
	return reports
}

func reportMove(arg string, res engine.Result) moveReport {
	mr := moveReport{Move: arg, State: res.State().String()}
	if ev := res.Event(); ev != nil {
		mr.Kind = ev.Kind().String()
	}
	if step, ok := res.Step(); ok {
		mr.Step = step.String()
	}
	if err := res.Err(); err != nil {
		mr.Error = err.Error()
	}
	return mr
}
