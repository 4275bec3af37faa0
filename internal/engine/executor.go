package engine

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/lgbarn/movetx/internal/chess"
	"github.com/lgbarn/movetx/internal/errors"
	"github.com/lgbarn/movetx/internal/logging"
	"github.com/lgbarn/movetx/internal/move"
)

const opExecute = "execute"

// Probe is called after each step's mutation and before its post-check.
// A non-nil error aborts the transaction as an unhandled failure.
type Probe func(step Step) error

// Option configures an Executor.
type Option func(*Executor)

// WithLogger sets the logger. The default discards everything.
func WithLogger(log logrus.FieldLogger) Option {
	return func(x *Executor) {
		if log != nil {
			x.log = log
		}
	}
}

// WithProbe installs a step probe.
func WithProbe(p Probe) Option {
	return func(x *Executor) {
		x.probe = p
	}
}

// WithRollbackVerification makes the executor snapshot the board before
// mutating it and compare that snapshot with the state left by a rollback.
func WithRollbackVerification(on bool) Option {
	return func(x *Executor) {
		x.verify = on
	}
}

// Executor applies validated events to their board as all-or-nothing
// transactions.
type Executor struct {
	log    logrus.FieldLogger
	probe  Probe
	verify bool
}

// NewExecutor creates an Executor.
func NewExecutor(opts ...Option) *Executor {
	x := &Executor{log: logging.Discard()}
	for _, opt := range opts {
		opt(x)
	}
	return x
}

// Execute claims ev and applies it to its board while holding the board's
// lock. env, if it names a board, must name the event's board.
//
// The mutation sequence is not interruptible: ctx is not consulted once
// execution starts, and the result is always a success, a rollback or, when
// the event cannot be claimed, a failure.
func (x *Executor) Execute(ctx context.Context, ev *move.Event, env *move.Env) Result {
	if ev == nil {
		return failed(errors.New(errors.KindValidation, opExecute, errors.ErrNilEvent))
	}
	board := ev.Board()
	var missing error
	switch {
	case board == nil:
		missing = errors.ErrNilBoard
	case ev.Actor() == nil:
		missing = errors.ErrNilActor
	case ev.Origin() == nil:
		missing = errors.ErrOriginNotFound
	case ev.Destination() == nil:
		missing = errors.ErrNilDestination
	}
	if missing != nil {
		return failed(&errors.MoveError{Kind: errors.KindValidation, Op: opExecute, EventID: ev.ID(), Cause: missing})
	}
	if env != nil && env.Board != nil && env.Board != board {
		return failed(&errors.MoveError{
			Kind:    errors.KindValidation,
			Op:      opExecute,
			EventID: ev.ID(),
			Cause:   errors.Wrap(errors.ErrStaleEvent, "event belongs to another board"),
		})
	}

	board.Lock()
	defer board.Unlock()
	return x.execute(ev)
}

// execute runs ev against its board. The caller holds the board lock.
func (x *Executor) execute(ev *move.Event) (res Result) {
	log := x.log.WithFields(logrus.Fields{
		"event": ev.ID(),
		"kind":  ev.Kind().String(),
		"actor": ev.Actor().ID,
		"from":  ev.Origin().Coord.String(),
		"to":    ev.Destination().Coord.String(),
	})

	if !ev.Claim() {
		log.Debug("event already spent")
		return failed(&errors.MoveError{Kind: errors.KindValidation, Op: opExecute, EventID: ev.ID(), Cause: errors.ErrEventSpent})
	}

	if ev.Kind() == move.BlockedScan {
		return x.scan(ev, log)
	}

	var before chess.Snapshot
	if x.verify {
		before = ev.Board().Snapshot()
	}

	tx := newTxLog(log)
	defer func() {
		if r := recover(); r != nil {
			cause := fmt.Errorf("%w: %v", errors.ErrPanic, r)
			res = x.abort(ev, tx, &stepFailure{step: tx.current, kind: errors.KindUnhandled, cause: cause}, before, log)
		}
	}()

	var err error
	switch ev.Kind() {
	case move.Relocation:
		err = x.relocate(tx, ev, 0)
	case move.Capture:
		err = x.capture(tx, ev)
	default:
		return failed(&errors.MoveError{
			Kind:    errors.KindUnhandled,
			Op:      opExecute,
			EventID: ev.ID(),
			Cause:   fmt.Errorf("unknown event kind %d", ev.Kind()),
		})
	}

	if err != nil {
		sf, ok := err.(*stepFailure)
		if !ok {
			sf = &stepFailure{step: tx.current, kind: errors.KindUnhandled, cause: err}
		}
		return x.abort(ev, tx, sf, before, log)
	}

	log.WithField("steps", tx.Len()).Info("move committed")
	return succeeded(ev.Confirm())
}

// abort unwinds tx and reports the failure. With verification enabled, a
// board that does not match its pre-transaction snapshot yields a failed
// result instead of a rollback.
func (x *Executor) abort(ev *move.Event, tx *txLog, sf *stepFailure, before chess.Snapshot, log logrus.FieldLogger) Result {
	undone := tx.rollback()
	me := &errors.MoveError{
		Kind:     sf.kind,
		Op:       opExecute,
		EventID:  ev.ID(),
		Step:     sf.step.Number,
		SubStep:  sf.step.Sub,
		StepName: sf.step.Name,
		Cause:    sf.cause,
	}
	log = log.WithFields(logrus.Fields{"step": sf.step.String(), "undone": undone})

	if x.verify {
		if after := ev.Board().Snapshot(); !before.Equal(after) {
			me.Cause = fmt.Errorf("%w: %w", errors.ErrRollbackIncomplete, sf.cause)
			log.WithError(me).Error("rollback did not restore the board")
			return Result{state: StateFailed, err: me, step: sf.step, undone: undone}
		}
	}

	log.WithError(me).Warn("move rolled back")
	return rolledBack(me, sf.step, undone)
}

// stepFailure is a failure raised inside the mutation sequence.
type stepFailure struct {
	step  Step
	kind  errors.Kind
	cause error
}

func (f *stepFailure) Error() string {
	return fmt.Sprintf("%s: %v", f.step, f.cause)
}

func (f *stepFailure) Unwrap() error { return f.cause }

// run applies one mutation. apply performs it and returns its inverse, which
// is logged before the probe and check run so that a failed step is undone
// together with its predecessors.
func (x *Executor) run(tx *txLog, step Step, apply func() undo, check func() bool) error {
	tx.begin(step)
	tx.push(step, apply())
	tx.log.WithField("step", step.String()).Debug("step applied")

	if x.probe != nil {
		if err := x.probe(step); err != nil {
			return &stepFailure{step: step, kind: errors.KindUnhandled, cause: err}
		}
	}
	if !check() {
		return &stepFailure{step: step, kind: errors.KindRollback, cause: errors.ErrPostCondition}
	}
	return nil
}

// relocate moves the actor from origin to destination. parent is non-zero
// when the relocation runs as a nested step of a capture.
func (x *Executor) relocate(tx *txLog, ev *move.Event, parent int) error {
	actor, origin, dest := ev.Actor(), ev.Origin(), ev.Destination()

	err := x.run(tx, relocationStep(parent, 1),
		func() undo {
			prev := dest.Occupant()
			dest.SetOccupant(actor)
			return func() { dest.SetOccupant(prev) }
		},
		func() bool { return dest.Occupant() == actor })
	if err != nil {
		return err
	}

	err = x.run(tx, relocationStep(parent, 2),
		func() undo {
			prev := origin.Occupant()
			origin.Clear()
			return func() { origin.SetOccupant(prev) }
		},
		origin.IsEmpty)
	if err != nil {
		return err
	}

	return x.run(tx, relocationStep(parent, 3),
		func() undo {
			n := actor.HistoryLen()
			actor.PushPosition(dest.Coord)
			return func() { actor.TruncateHistory(n) }
		},
		func() bool {
			pos, ok := actor.Position()
			return ok && pos == dest.Coord
		})
}

// capture takes the captured piece hostage, removes it from play and then
// relocates the actor onto its square.
func (x *Executor) capture(tx *txLog, ev *move.Event) error {
	actor, captured, dest, board := ev.Actor(), ev.Captured(), ev.Destination(), ev.Board()
	steps := CaptureSteps()

	err := x.run(tx, steps[0],
		func() undo {
			prev := captured.Captor()
			captured.SetCaptor(actor)
			return func() { captured.SetCaptor(prev) }
		},
		func() bool { return captured.Captor() == actor })
	if err != nil {
		return err
	}

	roster := captured.Team
	err = x.run(tx, steps[1],
		func() undo {
			i := roster.RemoveMember(captured)
			return func() {
				if i >= 0 {
					roster.InsertMember(i, captured)
				} else {
					roster.RemoveMember(captured)
				}
			}
		},
		func() bool { return !roster.HasMember(captured) })
	if err != nil {
		return err
	}

	keeper := actor.Team
	err = x.run(tx, steps[2],
		func() undo {
			if keeper.HasHostage(captured) {
				return func() {}
			}
			keeper.AddHostage(captured)
			return func() { keeper.RemoveHostage(captured) }
		},
		func() bool { return keeper.HasHostage(captured) })
	if err != nil {
		return err
	}

	err = x.run(tx, steps[3],
		func() undo {
			i := board.RemovePiece(captured)
			return func() {
				if i >= 0 {
					board.InsertPiece(i, captured)
				} else {
					board.RemovePiece(captured)
				}
			}
		},
		func() bool { return !board.Contains(captured) })
	if err != nil {
		return err
	}

	err = x.run(tx, steps[4],
		func() undo {
			prev := dest.Occupant()
			dest.Clear()
			return func() { dest.SetOccupant(prev) }
		},
		dest.IsEmpty)
	if err != nil {
		return err
	}

	return x.relocate(tx, ev, captureRelocation)
}

// scan records the obstruction at the destination on the actor. The board
// is not touched.
func (x *Executor) scan(ev *move.Event, log logrus.FieldLogger) Result {
	actor, blocker := ev.Actor(), ev.Blocker()
	d := chess.Discovery{
		At:          ev.Destination().Coord,
		BlockerID:   blocker.ID,
		BlockerKind: blocker.Kind,
		Friendly:    actor.IsFriend(blocker),
	}
	added := actor.RecordDiscovery(d)
	log.WithFields(logrus.Fields{"blocker": blocker.ID, "new": added}).Info("move blocked")
	return succeeded(ev.Confirm())
}
