package desk

import (
	"context"
	"sync"
)

// Feed is an in-process change broadcaster for the messages collection.
// Subscribers receive a coalesced "reload" signal rather than a diff;
// clients are expected to re-query the queue on each signal.
type Feed struct {
	mu   sync.Mutex
	subs map[chan struct{}]struct{}
}

// NewFeed initializes an empty Feed.
func NewFeed() *Feed {
	return &Feed{subs: make(map[chan struct{}]struct{})}
}

// Subscribe registers a listener. The returned channel carries one
// pending signal at most; a signal arriving while one is pending is
// dropped, which is fine because subscribers reload the full set.
// The subscription is removed when ctx is done.
func (f *Feed) Subscribe(ctx context.Context) <-chan struct{} {
	ch := make(chan struct{}, 1)

	f.mu.Lock()
	f.subs[ch] = struct{}{}
	f.mu.Unlock()

	go func() {
		<-ctx.Done()
		f.mu.Lock()
		delete(f.subs, ch)
		f.mu.Unlock()
	}()

	return ch
}

// Publish signals every subscriber that the messages collection changed.
// Never blocks.
func (f *Feed) Publish() {
	f.mu.Lock()
	defer f.mu.Unlock()
	for ch := range f.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
