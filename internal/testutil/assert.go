// Package testutil provides shared test utilities for the movetx packages:
// board fixtures built from layout strings and assertions over board state.
package testutil

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/lgbarn/movetx/internal/errors"
)

// AssertEqual compares got and want using cmp.Diff and reports differences.
// The msgAndArgs are optional and provide additional context if the assertion fails.
func AssertEqual(t *testing.T, got, want interface{}, msgAndArgs ...interface{}) {
	t.Helper()
	if diff := cmp.Diff(want, got); diff != "" {
		if msg := formatMessage(msgAndArgs...); msg != "" {
			t.Errorf("%s: mismatch (-want +got):\n%s", msg, diff)
		} else {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	}
}

// AssertKind fails unless err carries the wanted error kind.
func AssertKind(t *testing.T, err error, want errors.Kind) {
	t.Helper()
	if err == nil {
		t.Errorf("error = nil, want %v failure", want)
		return
	}
	if got := errors.KindOf(err); got != want {
		t.Errorf("error kind = %v, want %v (error: %v)", got, want, err)
	}
}

// AssertCause fails unless target is in err's chain.
func AssertCause(t *testing.T, err, target error) {
	t.Helper()
	if !errors.Is(err, target) {
		t.Errorf("error = %v, want cause %v", err, target)
	}
}

// formatMessage formats optional message arguments into a string.
func formatMessage(msgAndArgs ...interface{}) string {
	if len(msgAndArgs) == 0 {
		return ""
	}
	if s, ok := msgAndArgs[0].(string); ok {
		if len(msgAndArgs) == 1 {
			return s
		}
		return fmt.Sprintf(s, msgAndArgs[1:]...)
	}
	return fmt.Sprintf("%v", msgAndArgs[0])
}
