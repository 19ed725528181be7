package oplog

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/atomic"
)

// Level is the severity of one operation log event.
type Level int

const (
	Info Level = iota
	Warning
	Error
)

// String returns the level name.
func (l Level) String() string {
	switch l {
	case Info:
		return "INFO"
	case Warning:
		return "WARNING"
	case Error:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Log is an append-only, timestamped, leveled event sink. Record never
// fails; appends that cannot be persisted are counted and discarded.
type Log struct {
	sink    io.Writer
	runID   string
	step    atomic.Int64
	dropped atomic.Int64
	now     func() time.Time
}

// New creates a log appending to sink, stamped with a fresh run identifier.
// A nil sink discards all events.
func New(sink io.Writer) *Log {
	if sink == nil {
		sink = io.Discard
	}
	return &Log{
		sink:  sink,
		runID: uuid.Must(uuid.NewRandom()).String(),
		now:   time.Now,
	}
}

// Nop returns a log that discards everything, for tests.
func Nop() *Log {
	return New(io.Discard)
}

// RunID returns the identifier stamped on every line of this run.
func (l *Log) RunID() string {
	return l.runID
}

// Record appends one event. kv pairs are rendered as key=value fields after
// the message. Persistence failures are swallowed; logging is not part of
// the run's correctness.
func (l *Log) Record(level Level, msg string, kv ...string) {
	step := l.step.Inc()

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s run=%s step=%d %s",
		l.now().UTC().Format(time.RFC3339), level, l.runID, step, msg)
	for i := 0; i+1 < len(kv); i += 2 {
		fmt.Fprintf(&b, " %s=%q", kv[i], kv[i+1])
	}
	b.WriteByte('\n')

	if _, err := io.WriteString(l.sink, b.String()); err != nil {
		l.dropped.Inc()
	}
}

// Step returns the number of events recorded so far.
func (l *Log) Step() int64 {
	return l.step.Load()
}

// Dropped returns the number of events that could not be persisted.
func (l *Log) Dropped() int64 {
	return l.dropped.Load()
}
