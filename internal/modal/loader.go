package modal

import (
	"context"
	"fmt"
	"sync"
)

// LoadFailure is an environmental error from a deferred load attempt
// (resource fetch, renderer initialization). Recoverable: a later Load for
// the same variant starts a fresh attempt. Retry policy belongs to the Host.
type LoadFailure struct {
	Variant Variant
	Err     error
}

func (e *LoadFailure) Error() string {
	return fmt.Sprintf("loading modal %q failed: %v", e.Variant, e.Err)
}

func (e *LoadFailure) Unwrap() error { return e.Err }

// loadSlot is the once-settled result of a single load attempt. Joiners wait
// on done and then read renderer/err; neither is written after done closes.
type loadSlot struct {
	done     chan struct{}
	renderer Renderer
	err      error
}

// Loader resolves variants to renderers, fetching each variant's renderer on
// first use and memoizing the result. Loads for one variant are serialized:
// overlapping calls share a single in-flight attempt and its outcome.
type Loader struct {
	registry *Registry

	mu    sync.Mutex
	slots map[Variant]*loadSlot
}

// NewLoader wraps a constructed registry.
func NewLoader(registry *Registry) *Loader {
	return &Loader{registry: registry, slots: make(map[Variant]*loadSlot)}
}

// Load returns the renderer for id, running the registry entry's load
// function on first call and handing back the memoized instance afterwards.
// The calling goroutine blocks until the attempt settles. On failure the
// error is a *LoadFailure and the memo is cleared, so a subsequent Load
// retries instead of replaying the stale failure.
func (l *Loader) Load(ctx context.Context, id Variant) (Renderer, error) {
	l.mu.Lock()
	if slot, ok := l.slots[id]; ok {
		l.mu.Unlock()
		<-slot.done
		return slot.renderer, slot.err
	}
	slot := &loadSlot{done: make(chan struct{})}
	l.slots[id] = slot
	entry := l.registry.Resolve(id)
	l.mu.Unlock()

	renderer, err := entry.Load(ctx)
	if err != nil {
		slot.err = &LoadFailure{Variant: id, Err: err}
		// Un-poison the memo before waking joiners: the next Load call
		// starts a fresh attempt in a fresh slot.
		l.mu.Lock()
		delete(l.slots, id)
		l.mu.Unlock()
	} else {
		slot.renderer = renderer
	}
	close(slot.done)
	return slot.renderer, slot.err
}
