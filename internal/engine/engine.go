// Package engine executes move events as all-or-nothing transactions and
// runs the build, validate and execute pipeline.
package engine

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/lgbarn/movetx/internal/chess"
	"github.com/lgbarn/movetx/internal/config"
	"github.com/lgbarn/movetx/internal/errors"
	"github.com/lgbarn/movetx/internal/logging"
	"github.com/lgbarn/movetx/internal/move"
	"github.com/lgbarn/movetx/internal/validation"
)

// Engine runs a move attempt through the builder, the validator and the
// executor while holding the board's lock.
type Engine struct {
	builder   *move.Builder
	validator *move.Validator
	executor  *Executor
	log       logrus.FieldLogger
	cfg       config.Config
}

// New creates an Engine. A nil cfg means config.NewConfig() and a nil log
// discards output. opts are applied to the executor after the settings
// derived from cfg.
func New(cfg *config.Config, checks validation.Suite, log logrus.FieldLogger, opts ...Option) (*Engine, error) {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = logging.Discard()
	}

	execOpts := append([]Option{
		WithLogger(log),
		WithRollbackVerification(cfg.Engine.VerifyRollback),
	}, opts...)

	return &Engine{
		builder:   move.NewBuilder(checks),
		validator: move.NewValidator(checks),
		executor:  NewExecutor(execOpts...),
		log:       log,
		cfg:       *cfg,
	}, nil
}

// NewEnv returns an environment for board with an id source chosen by the
// engine's configuration.
func (e *Engine) NewEnv(board *chess.Board) (*move.Env, error) {
	ids, err := move.NewIDSource(e.cfg.IDs.Scheme, e.cfg.IDs.Prefix)
	if err != nil {
		return nil, err
	}
	return &move.Env{Board: board, IDs: ids}, nil
}

// Builder returns the engine's builder.
func (e *Engine) Builder() *move.Builder { return e.builder }

// Validator returns the engine's validator.
func (e *Engine) Validator() *move.Validator { return e.validator }

// Executor returns the engine's executor.
func (e *Engine) Executor() *Executor { return e.executor }

// Move builds, validates and executes a move of actor to destination.
// Collaborator checks share a deadline of the configured check timeout;
// once execution starts ctx is no longer consulted.
func (e *Engine) Move(ctx context.Context, actor *chess.Piece, destination *chess.Square, env *move.Env) Result {
	if env == nil || env.Board == nil {
		return failed(errors.New(errors.KindBuild, "build", errors.ErrNilBoard))
	}

	env.Board.Lock()
	defer env.Board.Unlock()

	ev, err := e.prepare(ctx, actor, destination, env)
	if err != nil {
		res := failed(err)
		entry := e.log.WithFields(logrus.Fields{
			"state": res.State().String(),
			"kind":  errors.KindOf(err).String(),
		}).WithError(err)
		if res.TimedOut() {
			entry.Warn("move timed out")
		} else {
			entry.Info("move rejected")
		}
		return res
	}
	return e.executor.execute(ev)
}

func (e *Engine) prepare(ctx context.Context, actor *chess.Piece, destination *chess.Square, env *move.Env) (*move.Event, error) {
	if d := e.cfg.Engine.CheckTimeout; d > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d)
		defer cancel()
	}

	ev, err := e.builder.Build(ctx, actor, destination, env)
	if err != nil {
		return nil, err
	}
	return e.validator.Validate(ctx, ev)
}
