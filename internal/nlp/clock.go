package nlp

import "time"

// Clock supplies the current time to everything that resolves relative dates
// ("today", "tomorrow", weekday names). Injecting it keeps extraction
// deterministic in tests.
type Clock interface {
	Now() time.Time
}

type wallClock struct{}

func (wallClock) Now() time.Time { return time.Now() }

// WallClock returns a Clock backed by the system clock.
func WallClock() Clock { return wallClock{} }

// FixedClock returns a Clock pinned to t.
func FixedClock(t time.Time) Clock { return fixedClock{t} }

type fixedClock struct{ t time.Time }

func (f fixedClock) Now() time.Time { return f.t }
