package desk

import (
	"context"
	"testing"
	"time"
)

func TestFeed_PublishReachesSubscribers(t *testing.T) {
	t.Parallel()

	f := NewFeed()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a := f.Subscribe(ctx)
	b := f.Subscribe(ctx)

	f.Publish()

	for name, ch := range map[string]<-chan struct{}{"a": a, "b": b} {
		select {
		case <-ch:
		case <-time.After(time.Second):
			t.Fatalf("subscriber %s did not receive signal", name)
		}
	}
}

func TestFeed_SignalsCoalesce(t *testing.T) {
	t.Parallel()

	f := NewFeed()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := f.Subscribe(ctx)

	// Multiple publishes while nobody is reading collapse into one
	// pending signal.
	f.Publish()
	f.Publish()
	f.Publish()

	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("no signal received")
	}
	select {
	case <-ch:
		t.Fatal("expected coalesced signals, got a second one")
	default:
	}
}

func TestFeed_UnsubscribeOnContextDone(t *testing.T) {
	t.Parallel()

	f := NewFeed()
	ctx, cancel := context.WithCancel(context.Background())
	ch := f.Subscribe(ctx)
	cancel()

	// Wait for the cleanup goroutine to drop the subscription.
	deadline := time.Now().Add(time.Second)
	for {
		f.mu.Lock()
		n := len(f.subs)
		f.mu.Unlock()
		if n == 0 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("subscription not removed after context cancel")
		}
		time.Sleep(5 * time.Millisecond)
	}

	// Publishing after unsubscribe must not signal the old channel.
	f.Publish()
	select {
	case <-ch:
		t.Fatal("received signal after unsubscribe")
	default:
	}
}

func TestFeed_PublishNeverBlocks(t *testing.T) {
	t.Parallel()

	f := NewFeed()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	f.Subscribe(ctx)

	done := make(chan struct{})
	go func() {
		for i := 0; i < 1000; i++ {
			f.Publish()
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Publish blocked with a slow subscriber")
	}
}
