package move

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/lgbarn/movetx/internal/chess"
	"github.com/lgbarn/movetx/internal/config"
	"github.com/lgbarn/movetx/internal/errors"
)

// IDSource hands out event identifiers.
type IDSource interface {
	NextID() string
}

// Counter issues sequential identifiers such as "move-000001".
type Counter struct {
	prefix string
	next   atomic.Uint64
}

// NewCounter returns a counter whose ids start at 1.
func NewCounter(prefix string) *Counter {
	if prefix == "" {
		prefix = "move"
	}
	return &Counter{prefix: prefix}
}

// NextID implements IDSource.
func (c *Counter) NextID() string {
	return fmt.Sprintf("%s-%06d", c.prefix, c.next.Add(1))
}

// UUIDSource issues random UUIDs, optionally prefixed.
type UUIDSource struct {
	Prefix string
}

// NextID implements IDSource.
func (s UUIDSource) NextID() string {
	if s.Prefix == "" {
		return uuid.NewString()
	}
	return s.Prefix + "-" + uuid.NewString()
}

// NewIDSource returns the IDSource for one of the config.IDScheme* names.
func NewIDSource(scheme, prefix string) (IDSource, error) {
	switch scheme {
	case config.IDSchemeCounter, "":
		return NewCounter(prefix), nil
	case config.IDSchemeUUID:
		return UUIDSource{Prefix: prefix}, nil
	default:
		return nil, fmt.Errorf("unknown id scheme %q: %w", scheme, errors.ErrInvalidConfig)
	}
}

// Env is the execution context for one board: square lookup and the
// identifier source for events built against it.
type Env struct {
	Board *chess.Board
	IDs   IDSource
}

// NewEnv returns an Env with a fresh counter.
func NewEnv(board *chess.Board) *Env {
	return &Env{Board: board, IDs: NewCounter("")}
}
