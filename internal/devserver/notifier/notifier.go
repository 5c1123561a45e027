// Package notifier fans out rebuild events to connected browsers.
package notifier

import "sync"

// Event announces a finished rebuild. Failed is set when the rebuild did not
// compile; clients reload either way to show the program or the error page.
type Event struct {
	Generation uint64
	Failed     bool
}

// Notifier broadcasts events to all subscribed listeners.
type Notifier struct {
	mu        sync.RWMutex
	listeners map[chan Event]struct{}
	last      Event
}

// New creates a new Notifier instance.
func New() *Notifier {
	return &Notifier{
		listeners: make(map[chan Event]struct{}),
	}
}

// Subscribe returns a channel that receives rebuild events. The caller must
// call Unsubscribe when done.
func (n *Notifier) Subscribe() chan Event {
	ch := make(chan Event, 1)
	n.mu.Lock()
	n.listeners[ch] = struct{}{}
	n.mu.Unlock()
	return ch
}

// Unsubscribe removes a listener channel and closes it.
func (n *Notifier) Unsubscribe(ch chan Event) {
	n.mu.Lock()
	if _, ok := n.listeners[ch]; ok {
		delete(n.listeners, ch)
		close(ch)
	}
	n.mu.Unlock()
}

// Broadcast records ev and sends it to every listener. A listener whose
// buffer is full keeps its pending event; it reloads once either way.
func (n *Notifier) Broadcast(ev Event) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.last = ev
	for ch := range n.listeners {
		select {
		case ch <- ev:
		default:
		}
	}
}

// Last returns the most recent event.
func (n *Notifier) Last() Event {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.last
}

// Len returns the number of listeners.
func (n *Notifier) Len() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.listeners)
}
