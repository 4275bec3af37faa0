// Package validation provides the identity and bounds checks the move
// builder and validator consult. Callers may supply their own
// implementations; Default returns pattern- and board-based checks.
package validation

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/lgbarn/movetx/internal/chess"
	"github.com/lgbarn/movetx/internal/errors"
)

// IdentityService checks identifiers and display names.
type IdentityService interface {
	CheckID(ctx context.Context, id string) error
	CheckName(ctx context.Context, name string) error
}

// BoundsChecker checks pieces and squares against a board.
type BoundsChecker interface {
	CheckPiece(ctx context.Context, p *chess.Piece) error
	CheckSquare(ctx context.Context, b *chess.Board, s *chess.Square) error
}

// Suite bundles the collaborators consulted during build and validation.
type Suite struct {
	Identity IdentityService
	Bounds   BoundsChecker
}

// Default returns the built-in collaborators.
func Default() Suite {
	return Suite{
		Identity: NewPatternIdentity(),
		Bounds:   BoardBounds{},
	}
}

// WithDefaults returns s with every nil collaborator replaced by the
// matching one from Default.
func (s Suite) WithDefaults() Suite {
	d := Default()
	if s.Identity == nil {
		s.Identity = d.Identity
	}
	if s.Bounds == nil {
		s.Bounds = d.Bounds
	}
	return s
}

// CheckPiece runs the identity and type checks for a piece.
func (s Suite) CheckPiece(ctx context.Context, p *chess.Piece) error {
	if p == nil {
		return errors.ErrInvalidPiece
	}
	if err := s.Identity.CheckID(ctx, p.ID); err != nil {
		return err
	}
	if err := s.Identity.CheckName(ctx, p.Name); err != nil {
		return err
	}
	return s.Bounds.CheckPiece(ctx, p)
}

// CheckSquare runs the bounds check for a square.
func (s Suite) CheckSquare(ctx context.Context, b *chess.Board, sq *chess.Square) error {
	return s.Bounds.CheckSquare(ctx, b, sq)
}

// MaxNameLength is the longest display name PatternIdentity accepts.
const MaxNameLength = 64

var defaultIDPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._:-]{0,127}$`)

// PatternIdentity accepts identifiers matching a regular expression and
// non-blank names up to MaxNameLength runes.
type PatternIdentity struct {
	pattern *regexp.Regexp
}

// NewPatternIdentity returns a PatternIdentity using the default pattern.
func NewPatternIdentity() *PatternIdentity {
	return &PatternIdentity{pattern: defaultIDPattern}
}

// NewPatternIdentityWith returns a PatternIdentity using a custom pattern.
func NewPatternIdentityWith(pattern *regexp.Regexp) *PatternIdentity {
	return &PatternIdentity{pattern: pattern}
}

// CheckID implements IdentityService.
func (v *PatternIdentity) CheckID(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !v.pattern.MatchString(id) {
		return fmt.Errorf("id %q: %w", id, errors.ErrInvalidID)
	}
	return nil
}

// CheckName implements IdentityService.
func (v *PatternIdentity) CheckName(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("blank name: %w", errors.ErrInvalidName)
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return fmt.Errorf("name longer than %d characters: %w", MaxNameLength, errors.ErrInvalidName)
	}
	return nil
}

// BoardBounds checks that pieces have a team and a real kind, and that
// squares belong to the board they are used with.
type BoardBounds struct{}

// CheckPiece implements BoundsChecker.
func (BoardBounds) CheckPiece(ctx context.Context, p *chess.Piece) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if p == nil {
		return errors.ErrInvalidPiece
	}
	if p.Team == nil {
		return fmt.Errorf("piece %s has no team: %w", p.ID, errors.ErrInvalidPiece)
	}
	if !p.Kind.Valid() {
		return fmt.Errorf("piece %s has kind %v: %w", p.ID, p.Kind, errors.ErrInvalidPiece)
	}
	return nil
}

// CheckSquare implements BoundsChecker.
func (BoardBounds) CheckSquare(ctx context.Context, b *chess.Board, s *chess.Square) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil {
		return errors.ErrNilDestination
	}
	if b == nil {
		return errors.ErrNilBoard
	}
	if !b.Owns(s) {
		return fmt.Errorf("square %v: %w", s.Coord, errors.ErrOutOfBounds)
	}
	return nil
}
