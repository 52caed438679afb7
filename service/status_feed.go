package service

import (
	"context"
	"sync"

	"github.com/layer-3/keyring/core"
)

// StatusFeed broadcasts the current authentication status to any number of
// subscribers. It keeps only the latest value: a new subscriber immediately
// receives the current status, and a slow subscriber may skip intermediate
// values but always converges on the most recent one.
type StatusFeed struct {
	mu      sync.Mutex
	current core.Status
	subs    map[chan core.Status]struct{}
}

func NewStatusFeed() *StatusFeed {
	return &StatusFeed{
		current: core.StatusLoggedOut,
		subs:    make(map[chan core.Status]struct{}),
	}
}

// Current returns the latest published status.
func (f *StatusFeed) Current() core.Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.current
}

// Set overwrites the current status and notifies all subscribers.
// Re-publishing the same status is allowed.
func (f *StatusFeed) Set(status core.Status) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.current = status
	for ch := range f.subs {
		push(ch, status)
	}
}

// Subscribe returns a channel that yields the current status immediately
// and every subsequent change until ctx is done, at which point the channel
// is closed. Delivery order matches Set order.
func (f *StatusFeed) Subscribe(ctx context.Context) <-chan core.Status {
	ch := make(chan core.Status, 1)

	f.mu.Lock()
	f.subs[ch] = struct{}{}
	ch <- f.current
	f.mu.Unlock()

	go func() {
		<-ctx.Done()

		f.mu.Lock()
		delete(f.subs, ch)
		f.mu.Unlock()
		close(ch)
	}()

	return ch
}

// push delivers latest-wins: if the subscriber has not drained the previous
// value yet, it is replaced rather than blocking the publisher.
func push(ch chan core.Status, status core.Status) {
	for {
		select {
		case ch <- status:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}
