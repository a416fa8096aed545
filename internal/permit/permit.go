// Package permit provides a small counting semaphore used to bound
// concurrent access to providers and the scoring backend.
package permit

import "context"

// Semaphore grants up to a fixed number of concurrent permits. A nil
// *Semaphore is valid and grants every request immediately.
type Semaphore struct {
	slots chan struct{}
}

// New returns a semaphore with the given capacity. Capacity below one
// yields a nil semaphore, meaning unbounded.
func New(capacity int) *Semaphore {
	if capacity < 1 {
		return nil
	}
	return &Semaphore{slots: make(chan struct{}, capacity)}
}

// Acquire blocks until a permit is available or ctx is done.
func (s *Semaphore) Acquire(ctx context.Context) error {
	if s == nil {
		return ctx.Err()
	}
	select {
	case s.slots <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Release returns a previously acquired permit.
func (s *Semaphore) Release() {
	if s == nil {
		return
	}
	<-s.slots
}

// InUse reports the number of permits currently held.
func (s *Semaphore) InUse() int {
	if s == nil {
		return 0
	}
	return len(s.slots)
}
