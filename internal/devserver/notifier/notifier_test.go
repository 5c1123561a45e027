package notifier

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifier_SubscribeUnsubscribe(t *testing.T) {
	n := New()

	ch := n.Subscribe()
	require.NotNil(t, ch)
	assert.Equal(t, 1, n.Len())

	n.Unsubscribe(ch)
	assert.Equal(t, 0, n.Len())

	_, open := <-ch
	assert.False(t, open, "channel is closed on unsubscribe")

	// a second unsubscribe is a no-op
	n.Unsubscribe(ch)
}

func TestNotifier_Broadcast(t *testing.T) {
	n := New()
	ch1 := n.Subscribe()
	ch2 := n.Subscribe()
	defer n.Unsubscribe(ch1)
	defer n.Unsubscribe(ch2)

	n.Broadcast(Event{Generation: 3, Failed: true})

	for _, ch := range []chan Event{ch1, ch2} {
		select {
		case ev := <-ch:
			assert.Equal(t, Event{Generation: 3, Failed: true}, ev)
		case <-time.After(100 * time.Millisecond):
			t.Fatal("listener did not receive broadcast")
		}
	}
	assert.Equal(t, uint64(3), n.Last().Generation)
}

func TestNotifier_BroadcastNonBlocking(t *testing.T) {
	n := New()
	ch := n.Subscribe()
	defer n.Unsubscribe(ch)

	ch <- Event{Generation: 1}

	done := make(chan struct{})
	go func() {
		n.Broadcast(Event{Generation: 2})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(100 * time.Millisecond):
		t.Fatal("Broadcast blocked on a full channel")
	}
	assert.Equal(t, uint64(1), (<-ch).Generation, "pending event is kept")
}

func TestNotifier_Concurrent(t *testing.T) {
	n := New()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			ch := n.Subscribe()
			n.Unsubscribe(ch)
		}()
		go func(gen uint64) {
			defer wg.Done()
			n.Broadcast(Event{Generation: gen})
		}(uint64(i))
	}
	wg.Wait()
	assert.Equal(t, 0, n.Len())
}
