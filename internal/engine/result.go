package engine

import (
	"github.com/lgbarn/movetx/internal/errors"
	"github.com/lgbarn/movetx/internal/move"
)

// State is the outcome of a transaction.
type State int

// Transaction outcomes.
const (
	// StateSuccess means every step applied and the event was confirmed.
	StateSuccess State = iota + 1
	// StateRolledBack means a step failed and every applied step was undone.
	StateRolledBack
	// StateFailed means the move never started mutating the board, or a
	// rollback could not restore it.
	StateFailed
	// StateTimedOut means a collaborator exceeded its deadline before execution.
	StateTimedOut
)

// String returns the string representation of a state.
func (s State) String() string {
	switch s {
	case StateSuccess:
		return "success"
	case StateRolledBack:
		return "rolled back"
	case StateFailed:
		return "failed"
	case StateTimedOut:
		return "timed out"
	default:
		return "unknown"
	}
}

// Result reports how a move attempt ended.
type Result struct {
	state  State
	event  *move.Event
	err    error
	step   Step
	undone int
}

func succeeded(ev *move.Event) Result {
	return Result{state: StateSuccess, event: ev}
}

// failed returns a result for an attempt that never reached execution.
// Deadline failures from collaborators map to StateTimedOut.
func failed(err error) Result {
	if errors.KindOf(err) == errors.KindTimedOut {
		return Result{state: StateTimedOut, err: err}
	}
	return Result{state: StateFailed, err: err}
}

// Rejected returns the result of an attempt that never reached the
// executor because err stopped it.
func Rejected(err error) Result {
	return failed(err)
}

func rolledBack(err error, step Step, undone int) Result {
	return Result{state: StateRolledBack, err: err, step: step, undone: undone}
}

// State returns the outcome.
func (r Result) State() State { return r.state }

// Succeeded reports whether the move committed.
func (r Result) Succeeded() bool { return r.state == StateSuccess }

// RolledBack reports whether a mid-execution failure was undone.
func (r Result) RolledBack() bool { return r.state == StateRolledBack }

// TimedOut reports whether a collaborator deadline expired.
func (r Result) TimedOut() bool { return r.state == StateTimedOut }

// Failed reports whether the move was rejected or left the board unrestored.
func (r Result) Failed() bool { return r.state == StateFailed }

// Event returns the confirmed event of a successful move, or nil.
func (r Result) Event() *move.Event { return r.event }

// Err returns the failure, or nil on success.
func (r Result) Err() error { return r.err }

// Step returns the step at which execution failed. ok is false when the
// failure did not happen mid-execution.
func (r Result) Step() (step Step, ok bool) {
	return r.step, r.step.Number > 0
}

// Undone returns how many mutations rollback reverted.
func (r Result) Undone() int { return r.undone }
