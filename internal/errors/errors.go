// Package errors provides sentinel errors and the error type for the move engine.
// Every failure the engine reports is a *MoveError carrying one Kind and the
// underlying cause, so callers can inspect it with errors.Is() and errors.As().
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel causes. Use these with errors.Is() to check for a specific failure.
var (
	// ErrNilActor indicates a move attempt without an actor piece.
	ErrNilActor = errors.New("nil actor")

	// ErrNilDestination indicates a move attempt without a destination square.
	ErrNilDestination = errors.New("nil destination")

	// ErrNilEvent indicates that no event was supplied.
	ErrNilEvent = errors.New("nil event")

	// ErrNilBoard indicates that no board was supplied in the environment.
	ErrNilBoard = errors.New("nil board")

	// ErrActorNotInPlay indicates an actor that is captured or absent from the board.
	ErrActorNotInPlay = errors.New("actor not in play")

	// ErrCircularMove indicates a destination equal to the actor's position.
	ErrCircularMove = errors.New("circular move")

	// ErrOriginNotFound indicates the actor's origin square could not be resolved.
	ErrOriginNotFound = errors.New("origin square not found")

	// ErrSelfCapture indicates an actor targeting itself.
	ErrSelfCapture = errors.New("self capture")

	// ErrFriendlyCapture indicates a capture of a piece on the actor's own team.
	ErrFriendlyCapture = errors.New("friendly capture")

	// ErrKingCapture indicates an attempt to capture a King.
	ErrKingCapture = errors.New("king cannot be captured")

	// ErrInvalidID indicates a malformed identifier.
	ErrInvalidID = errors.New("invalid identifier")

	// ErrInvalidName indicates a malformed display name.
	ErrInvalidName = errors.New("invalid name")

	// ErrInvalidPiece indicates a piece that fails type checks.
	ErrInvalidPiece = errors.New("invalid piece")

	// ErrOutOfBounds indicates a square outside the board.
	ErrOutOfBounds = errors.New("square out of bounds")

	// ErrStaleEvent indicates an event whose board preconditions no longer hold.
	ErrStaleEvent = errors.New("stale event")

	// ErrEventSpent indicates an event that was already submitted for execution.
	ErrEventSpent = errors.New("event already executed")

	// ErrPostCondition indicates a mutation whose post-condition check failed.
	ErrPostCondition = errors.New("post-condition failed")

	// ErrPanic indicates a recovered panic during execution.
	ErrPanic = errors.New("panic during execution")

	// ErrRollbackIncomplete indicates that state differs from the pre-transaction state after rollback.
	ErrRollbackIncomplete = errors.New("rollback incomplete")

	// ErrInvalidLayout indicates a malformed board layout string.
	ErrInvalidLayout = errors.New("invalid layout")

	// ErrSquareOccupied indicates a placement onto an occupied square.
	ErrSquareOccupied = errors.New("square occupied")

	// ErrInvalidConfig indicates invalid configuration values.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// Kind classifies where in the pipeline an error arose.
type Kind int

const (
	// KindUnknown is the zero value and never produced by the engine.
	KindUnknown Kind = iota
	// KindBuild is a bad or inconsistent input detected before any mutation.
	KindBuild
	// KindValidation is a structural defect found in an already-built event.
	KindValidation
	// KindRollback is a post-condition failure mid-execution; rollback was performed.
	KindRollback
	// KindUnhandled is an unexpected failure, rolled back if it occurred mid-mutation.
	KindUnhandled
	// KindTimedOut is a collaborator that exceeded its deadline during build or validation.
	KindTimedOut
)

// String returns the string representation of a kind.
func (k Kind) String() string {
	switch k {
	case KindBuild:
		return "build"
	case KindValidation:
		return "validation"
	case KindRollback:
		return "rollback"
	case KindUnhandled:
		return "unhandled"
	case KindTimedOut:
		return "timed out"
	default:
		return "unknown"
	}
}

// MoveError wraps a cause with the pipeline kind and move context.
type MoveError struct {
	Kind     Kind   // Where the failure arose
	Op       string // Operation that failed (build, validate, execute)
	EventID  string // Event identifier, if one was assigned
	Step     int    // 1-based step number for mid-execution failures (0 otherwise)
	SubStep  int    // 1-based sub-step within Step (0 if none)
	StepName string // Human-readable step name
	Cause    error  // The underlying error
}

// Error returns a formatted message including all available context.
func (e *MoveError) Error() string {
	var parts []string

	if e.Op != "" {
		parts = append(parts, e.Op)
	}
	parts = append(parts, e.Kind.String()+" failure")

	if e.EventID != "" {
		parts = append(parts, fmt.Sprintf("event %s", e.EventID))
	}

	if e.Step > 0 {
		step := fmt.Sprintf("step %d", e.Step)
		if e.SubStep > 0 {
			step = fmt.Sprintf("step %d.%d", e.Step, e.SubStep)
		}
		if e.StepName != "" {
			step += fmt.Sprintf(" (%s)", e.StepName)
		}
		parts = append(parts, step)
	}

	context := strings.Join(parts, ", ")
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", context, e.Cause)
	}
	return context
}

// Unwrap returns the underlying cause.
func (e *MoveError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is a *MoveError of the same kind.
func (e *MoveError) Is(target error) bool {
	if t, ok := target.(*MoveError); ok {
		return t.Kind == e.Kind
	}
	return false
}

// New creates a MoveError of the given kind.
func New(kind Kind, op string, cause error) *MoveError {
	return &MoveError{Kind: kind, Op: op, Cause: cause}
}

// KindOf returns the kind of the first *MoveError in err's chain.
func KindOf(err error) Kind {
	var me *MoveError
	if errors.As(err, &me) {
		return me.Kind
	}
	return KindUnknown
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Wrap adds context to an error while preserving the underlying error
// for inspection with errors.Is() and errors.As().
func Wrap(err error, context string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", context, err)
}

// Wrapf adds formatted context to an error.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}
