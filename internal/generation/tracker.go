// Package generation guarantees last-request-wins for overlapping loads.
// Each Begin starts a new generation and cancels the previous one; only the
// ticket of the newest generation may publish its result.
package generation

import (
	"context"
	"sync"
)

// Tracker hands out tickets. The zero value is ready to use.
type Tracker struct {
	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
}

// Ticket identifies one request generation.
type Ticket struct {
	tracker *Tracker
	gen     uint64
	cancel  context.CancelFunc
}

// Begin starts a new generation derived from ctx and cancels the context of
// the previous one. Call Done on the ticket when the request finishes.
func (t *Tracker) Begin(ctx context.Context) (context.Context, *Ticket) {
	ctx, cancel := context.WithCancel(ctx)

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.cancel != nil {
		t.cancel()
	}
	t.gen++
	t.cancel = cancel

	return ctx, &Ticket{tracker: t, gen: t.gen, cancel: cancel}
}

// Cancel invalidates the in-flight generation, if any.
func (t *Tracker) Cancel() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
	t.gen++
}

// Current reports whether no newer generation has started.
func (tk *Ticket) Current() bool {
	tk.tracker.mu.Lock()
	defer tk.tracker.mu.Unlock()
	return tk.gen == tk.tracker.gen
}

// Publish runs fn only if the ticket is still current. fn runs while the
// tracker is locked, so no newer generation can begin until it returns; it
// must not call back into the tracker.
func (tk *Ticket) Publish(fn func()) bool {
	tk.tracker.mu.Lock()
	defer tk.tracker.mu.Unlock()

	if tk.gen != tk.tracker.gen {
		return false
	}
	fn()
	return true
}

// Done releases the ticket's context.
func (tk *Ticket) Done() {
	tk.cancel()
}
