package engine

import "github.com/sirupsen/logrus"

// undo restores one mutation.
type undo func()

type logEntry struct {
	step Step
	undo undo
}

// txLog records the inverse of every mutation applied by a transaction so
// that a failure at any step can restore the pre-transaction state.
type txLog struct {
	entries []logEntry
	current Step
	log     logrus.FieldLogger
}

func newTxLog(log logrus.FieldLogger) *txLog {
	return &txLog{entries: make([]logEntry, 0, len(CaptureSteps())), log: log}
}

// begin marks step as the one in progress.
func (l *txLog) begin(step Step) {
	l.current = step
}

// push records the inverse of the mutation just applied for step.
func (l *txLog) push(step Step, u undo) {
	l.entries = append(l.entries, logEntry{step: step, undo: u})
}

// Len returns the number of recorded inverses.
func (l *txLog) Len() int {
	return len(l.entries)
}

// rollback applies every recorded inverse in reverse order and empties the
// log. It returns the number of inverses applied.
func (l *txLog) rollback() int {
	n := len(l.entries)
	for i := n - 1; i >= 0; i-- {
		l.entries[i].undo()
	}
	l.entries = l.entries[:0]
	return n
}
