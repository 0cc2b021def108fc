package ports

// Scheduler runs a callback off the caller without blocking it. GetToken uses
// it to kick off re-authentication asynchronously.
type Scheduler interface {
	Defer(fn func())
}

// GoScheduler runs deferred work on its own goroutine.
type GoScheduler struct{}

func (GoScheduler) Defer(fn func()) {
	go fn()
}
