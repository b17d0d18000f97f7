package clock

import "time"

// Clock abstracts the current time so usecases can be tested with fixed timestamps.
type Clock interface {
	Now() time.Time
}

type RealClock struct{}

// Now returns the current time in UTC, truncated to microseconds (the store precision).
func (RealClock) Now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

type FakeClock struct {
	now time.Time
}

func NewFake(t time.Time) *FakeClock {
	return &FakeClock{now: t}
}

func (f *FakeClock) Now() time.Time {
	return f.now
}

func (f *FakeClock) Advance(d time.Duration) {
	f.now = f.now.Add(d)
}
