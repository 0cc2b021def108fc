package ports

import "time"

// Clock supplies wall-clock time. Token validity checks always go through it
// so tests can move time forward.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}
