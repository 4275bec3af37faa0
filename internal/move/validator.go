package move

import (
	"context"

	"github.com/lgbarn/movetx/internal/errors"
	"github.com/lgbarn/movetx/internal/validation"
)

// Validator re-checks a built event against the current board before
// execution. It never mutates anything, so repeated calls are harmless.
type Validator struct {
	checks validation.Suite
}

// NewValidator returns a Validator that consults checks. Nil collaborators
// fall back to validation.Default().
func NewValidator(checks validation.Suite) *Validator {
	return &Validator{checks: checks.WithDefaults()}
}

// Validate returns ev unchanged if it is still structurally sound.
func (v *Validator) Validate(ctx context.Context, ev *Event) (*Event, error) {
	if ev == nil {
		return nil, errors.New(errors.KindValidation, opValidate, errors.ErrNilEvent)
	}
	if err := v.validate(ctx, ev); err != nil {
		var me *errors.MoveError
		if errors.As(err, &me) {
			me.EventID = ev.ID()
			return nil, me
		}
		return nil, err
	}
	return ev, nil
}

func (v *Validator) validate(ctx context.Context, ev *Event) error {
	fail := func(cause error) error {
		return &errors.MoveError{Kind: errors.KindValidation, Op: opValidate, Cause: cause}
	}

	if ev.Spent() {
		return fail(errors.ErrEventSpent)
	}
	if err := v.checks.Identity.CheckID(ctx, ev.ID()); err != nil {
		return collaboratorError(opValidate, errors.KindValidation, err)
	}

	actor, origin, dest, board := ev.Actor(), ev.Origin(), ev.Destination(), ev.Board()
	switch {
	case actor == nil:
		return fail(errors.ErrNilActor)
	case dest == nil:
		return fail(errors.ErrNilDestination)
	case board == nil:
		return fail(errors.ErrNilBoard)
	case origin == nil:
		return fail(errors.ErrOriginNotFound)
	}

	if err := v.checks.CheckPiece(ctx, actor); err != nil {
		return collaboratorError(opValidate, errors.KindValidation, err)
	}
	if err := v.checks.CheckSquare(ctx, board, origin); err != nil {
		return collaboratorError(opValidate, errors.KindValidation, err)
	}
	if err := v.checks.CheckSquare(ctx, board, dest); err != nil {
		return collaboratorError(opValidate, errors.KindValidation, err)
	}

	if actor.IsCaptured() || !board.Contains(actor) {
		return fail(errors.ErrActorNotInPlay)
	}
	pos, ok := actor.Position()
	if !ok || pos != origin.Coord || origin.Occupant() != actor {
		return fail(errors.Wrap(errors.ErrStaleEvent, "actor left its origin"))
	}
	if origin == dest || pos == dest.Coord {
		return fail(errors.ErrCircularMove)
	}

	switch ev.Kind() {
	case Relocation:
		if !dest.IsEmpty() {
			return fail(errors.Wrap(errors.ErrStaleEvent, "destination no longer empty"))
		}
	case BlockedScan:
		blocker := ev.Blocker()
		if blocker == nil || dest.Occupant() != blocker {
			return fail(errors.Wrap(errors.ErrStaleEvent, "blocker no longer at destination"))
		}
		if !actor.IsFriend(blocker) && !blocker.IsKing() {
			return fail(errors.Wrap(errors.ErrStaleEvent, "blocker is capturable"))
		}
	case Capture:
		return v.validateCapture(ctx, ev, fail)
	default:
		return fail(errors.Wrapf(errors.ErrStaleEvent, "unknown event kind %d", ev.Kind()))
	}
	return nil
}

func (v *Validator) validateCapture(ctx context.Context, ev *Event, fail func(error) error) error {
	actor, captured, board := ev.Actor(), ev.Captured(), ev.Board()
	switch {
	case captured == nil:
		return fail(errors.Wrap(errors.ErrInvalidPiece, "nil captured piece"))
	case captured == actor:
		return fail(errors.ErrSelfCapture)
	case captured.IsKing():
		return fail(errors.ErrKingCapture)
	case actor.IsFriend(captured):
		return fail(errors.ErrFriendlyCapture)
	}
	if err := v.checks.CheckPiece(ctx, captured); err != nil {
		return collaboratorError(opValidate, errors.KindValidation, err)
	}
	switch {
	case captured.IsCaptured() || !board.Contains(captured):
		return fail(errors.Wrap(errors.ErrStaleEvent, "captured piece no longer in play"))
	case !captured.Team.HasMember(captured):
		return fail(errors.Wrap(errors.ErrStaleEvent, "captured piece left its roster"))
	case ev.Destination().Occupant() != captured:
		return fail(errors.Wrap(errors.ErrStaleEvent, "captured piece no longer at destination"))
	}
	return nil
}
