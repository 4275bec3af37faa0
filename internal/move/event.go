// Package move classifies move attempts into events and re-validates them
// before execution.
package move

import (
	"sync/atomic"

	"github.com/lgbarn/movetx/internal/chess"
	"github.com/lgbarn/movetx/internal/errors"
)

// Kind is the variant tag of an Event.
type Kind int

const (
	// Relocation is a move into an empty square.
	Relocation Kind = iota + 1
	// BlockedScan is a move halted by a friendly piece or an enemy King.
	BlockedScan
	// Capture removes an enemy non-King piece from play.
	Capture
)

// String returns the string representation of a kind.
func (k Kind) String() string {
	switch k {
	case Relocation:
		return "relocation"
	case BlockedScan:
		return "blocked-scan"
	case Capture:
		return "capture"
	default:
		return "unknown"
	}
}

// Header carries the fields common to every event variant.
type Header struct {
	ID          string
	Board       *chess.Board
	Actor       *chess.Piece
	Origin      *chess.Square
	Destination *chess.Square
}

// Event is one classified move attempt. Events are immutable once built
// and may be executed at most once.
type Event struct {
	header Header
	kind   Kind

	// Variant payload.
	blocker  *chess.Piece
	captured *chess.Piece

	confirmed bool
	spent     atomic.Bool
}

// NewRelocation builds a Relocation event.
func NewRelocation(h Header) (*Event, error) {
	if err := h.check(); err != nil {
		return nil, err
	}
	return &Event{header: h, kind: Relocation}, nil
}

// NewBlockedScan builds a BlockedScan event halted by blocker.
func NewBlockedScan(h Header, blocker *chess.Piece) (*Event, error) {
	if err := h.check(); err != nil {
		return nil, err
	}
	switch {
	case blocker == nil:
		return nil, errors.New(errors.KindBuild, opBuild, errors.Wrap(errors.ErrInvalidPiece, "nil blocker"))
	case blocker == h.Actor:
		return nil, errors.New(errors.KindBuild, opBuild, errors.ErrSelfCapture)
	}
	return &Event{header: h, kind: BlockedScan, blocker: blocker}, nil
}

// NewCapture builds a Capture event. It refuses to target the actor
// itself, a friendly piece, or a King.
func NewCapture(h Header, captured *chess.Piece) (*Event, error) {
	if err := h.check(); err != nil {
		return nil, err
	}
	switch {
	case captured == nil:
		return nil, errors.New(errors.KindBuild, opBuild, errors.Wrap(errors.ErrInvalidPiece, "nil captured piece"))
	case captured == h.Actor:
		return nil, errors.New(errors.KindBuild, opBuild, errors.ErrSelfCapture)
	case h.Actor.IsFriend(captured):
		return nil, errors.New(errors.KindBuild, opBuild, errors.ErrFriendlyCapture)
	case captured.IsKing():
		return nil, errors.New(errors.KindBuild, opBuild, errors.ErrKingCapture)
	}
	return &Event{header: h, kind: Capture, captured: captured}, nil
}

func (h Header) check() error {
	switch {
	case h.Actor == nil:
		return errors.New(errors.KindBuild, opBuild, errors.ErrNilActor)
	case h.Destination == nil:
		return errors.New(errors.KindBuild, opBuild, errors.ErrNilDestination)
	case h.Board == nil:
		return errors.New(errors.KindBuild, opBuild, errors.ErrNilBoard)
	case h.Origin == nil || !h.Board.Owns(h.Origin):
		return errors.New(errors.KindBuild, opBuild, errors.ErrOriginNotFound)
	case !h.Board.Owns(h.Destination):
		return errors.New(errors.KindBuild, opBuild, errors.ErrOutOfBounds)
	case h.Origin == h.Destination:
		return errors.New(errors.KindBuild, opBuild, errors.ErrCircularMove)
	}
	return nil
}

// ID returns the event identifier.
func (e *Event) ID() string { return e.header.ID }

// Kind returns the variant tag.
func (e *Event) Kind() Kind { return e.kind }

// Actor returns the moving piece.
func (e *Event) Actor() *chess.Piece { return e.header.Actor }

// Origin returns the square the actor starts on.
func (e *Event) Origin() *chess.Square { return e.header.Origin }

// Destination returns the targeted square.
func (e *Event) Destination() *chess.Square { return e.header.Destination }

// Board returns the board the event was built against.
func (e *Event) Board() *chess.Board { return e.header.Board }

// Blocker returns the obstructing piece of a BlockedScan, or nil.
func (e *Event) Blocker() *chess.Piece { return e.blocker }

// Captured returns the target of a Capture, or nil.
func (e *Event) Captured() *chess.Piece { return e.captured }

// Confirmed reports whether the event was returned by a committed transaction.
func (e *Event) Confirmed() bool { return e.confirmed }

// Claim marks the event as submitted for execution. It returns false if
// the event was already claimed.
func (e *Event) Claim() bool {
	return e.spent.CompareAndSwap(false, true)
}

// Spent reports whether the event has been claimed.
func (e *Event) Spent() bool {
	return e.spent.Load()
}

// Confirm returns a confirmed copy of the event. The copy is already spent.
func (e *Event) Confirm() *Event {
	c := &Event{
		header:    e.header,
		kind:      e.kind,
		blocker:   e.blocker,
		captured:  e.captured,
		confirmed: true,
	}
	c.spent.Store(true)
	return c
}

// String returns a short description such as "move-000003 capture d2->d3".
func (e *Event) String() string {
	if e == nil {
		return "<nil>"
	}
	s := e.header.ID + " " + e.kind.String()
	if e.header.Origin != nil && e.header.Destination != nil {
		s += " " + e.header.Origin.Coord.String() + "->" + e.header.Destination.Coord.String()
	}
	return s
}
