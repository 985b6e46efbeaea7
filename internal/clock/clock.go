// Package clock provides an injectable time source. The store reads the
// clock exactly once per logical operation, so overdue checks, completion
// timestamps and recurrence math inside one operation agree on "now";
// tests substitute a fixed clock to make date arithmetic deterministic.
package clock

import "time"

// Clock yields the current time.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// System returns a Clock backed by time.Now.
func System() Clock { return systemClock{} }

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

// Fixed returns a Clock that always reports t.
func Fixed(t time.Time) Clock { return fixedClock{t: t} }
