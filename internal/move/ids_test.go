package move

import (
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/lgbarn/movetx/internal/config"
	"github.com/lgbarn/movetx/internal/errors"
	"github.com/lgbarn/movetx/internal/testutil"
)

func TestCounter(t *testing.T) {
	c := NewCounter("")
	if got := c.NextID(); got != "move-000001" {
		t.Errorf("NextID() = %q, want move-000001", got)
	}
	if got := c.NextID(); got != "move-000002" {
		t.Errorf("NextID() = %q, want move-000002", got)
	}

	other := NewCounter("board2")
	if got := other.NextID(); got != "board2-000001" {
		t.Errorf("independent counter NextID() = %q, want board2-000001", got)
	}
}

func TestCounter_Concurrent(t *testing.T) {
	c := NewCounter("x")
	const n = 100
	ids := make(chan string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ids <- c.NextID()
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[string]bool)
	for id := range ids {
		if seen[id] {
			t.Errorf("duplicate id %q", id)
		}
		seen[id] = true
	}
	if len(seen) != n {
		t.Errorf("unique ids = %d, want %d", len(seen), n)
	}
}

func TestUUIDSource(t *testing.T) {
	id := UUIDSource{}.NextID()
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("NextID() = %q is not a UUID: %v", id, err)
	}

	prefixed := UUIDSource{Prefix: "mv"}.NextID()
	if !strings.HasPrefix(prefixed, "mv-") {
		t.Errorf("NextID() = %q, want mv- prefix", prefixed)
	}
	if _, err := uuid.Parse(strings.TrimPrefix(prefixed, "mv-")); err != nil {
		t.Errorf("suffix of %q is not a UUID: %v", prefixed, err)
	}
}

func TestNewIDSource(t *testing.T) {
	tests := []struct {
		scheme  string
		wantErr bool
	}{
		{"", false},
		{config.IDSchemeCounter, false},
		{config.IDSchemeUUID, false},
		{"snowflake", true},
	}
	for _, tt := range tests {
		t.Run(tt.scheme, func(t *testing.T) {
			src, err := NewIDSource(tt.scheme, "p")
			if tt.wantErr {
				testutil.AssertCause(t, err, errors.ErrInvalidConfig)
				return
			}
			if err != nil {
				t.Fatalf("NewIDSource(%q) error = %v", tt.scheme, err)
			}
			if !strings.HasPrefix(src.NextID(), "p-") {
				t.Errorf("NewIDSource(%q) ids lack prefix", tt.scheme)
			}
		})
	}
}
