package move

import (
	"context"

	"github.com/lgbarn/movetx/internal/chess"
	"github.com/lgbarn/movetx/internal/errors"
	"github.com/lgbarn/movetx/internal/validation"
)

const (
	opBuild    = "build"
	opValidate = "validate"
)

// Builder classifies a move attempt into exactly one event variant.
// It never mutates the board.
type Builder struct {
	checks validation.Suite
}

// NewBuilder returns a Builder that consults checks. Nil collaborators
// fall back to validation.Default().
func NewBuilder(checks validation.Suite) *Builder {
	return &Builder{checks: checks.WithDefaults()}
}

// Build inspects the destination occupant and returns a Relocation,
// BlockedScan or Capture event. Friendly occupants and enemy Kings block
// the move; any other enemy is captured.
func (b *Builder) Build(ctx context.Context, actor *chess.Piece, destination *chess.Square, env *Env) (*Event, error) {
	switch {
	case actor == nil:
		return nil, errors.New(errors.KindBuild, opBuild, errors.ErrNilActor)
	case destination == nil:
		return nil, errors.New(errors.KindBuild, opBuild, errors.ErrNilDestination)
	case env == nil || env.Board == nil:
		return nil, errors.New(errors.KindBuild, opBuild, errors.ErrNilBoard)
	case env.IDs == nil:
		return nil, errors.New(errors.KindBuild, opBuild, errors.Wrap(errors.ErrInvalidID, "no id source"))
	}
	board := env.Board

	if err := b.checks.CheckPiece(ctx, actor); err != nil {
		return nil, collaboratorError(opBuild, errors.KindBuild, err)
	}
	if err := b.checks.CheckSquare(ctx, board, destination); err != nil {
		return nil, collaboratorError(opBuild, errors.KindBuild, err)
	}

	if actor.IsCaptured() || !board.Contains(actor) {
		return nil, errors.New(errors.KindBuild, opBuild, errors.ErrActorNotInPlay)
	}
	if pos, ok := actor.Position(); ok && pos == destination.Coord {
		return nil, errors.New(errors.KindBuild, opBuild, errors.ErrCircularMove)
	}
	origin, ok := board.OriginOf(actor)
	if !ok {
		return nil, errors.New(errors.KindBuild, opBuild, errors.ErrOriginNotFound)
	}

	occupant := destination.Occupant()
	if occupant == actor {
		return nil, errors.New(errors.KindBuild, opBuild, errors.ErrSelfCapture)
	}
	if occupant != nil {
		if err := b.checks.CheckPiece(ctx, occupant); err != nil {
			return nil, collaboratorError(opBuild, errors.KindBuild, err)
		}
	}

	h := Header{
		ID:          env.IDs.NextID(),
		Board:       board,
		Actor:       actor,
		Origin:      origin,
		Destination: destination,
	}
	switch {
	case occupant == nil:
		return NewRelocation(h)
	case actor.IsFriend(occupant), occupant.IsKing():
		return NewBlockedScan(h, occupant)
	default:
		return NewCapture(h, occupant)
	}
}

// collaboratorError wraps a failure reported by a validation collaborator.
// Deadline expiry surfaces as KindTimedOut.
func collaboratorError(op string, kind errors.Kind, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		kind = errors.KindTimedOut
	}
	return errors.New(kind, op, err)
}
