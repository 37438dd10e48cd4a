// Package realtime provides an in-process publish/subscribe hub that
// fans activity events out to multiple listeners (e.g. WebSocket
// sessions on the activity firehose).
//
// Fan-out is best effort: a listener whose buffer is full misses the
// event, so one slow consumer never backpressures the searchers.
package realtime

import (
	"sync"
	"time"
)

// EventKind classifies an activity event.
type EventKind string

const (
	EventSearch          EventKind = "search"
	EventBookmarkAdded   EventKind = "bookmark-added"
	EventBookmarkRemoved EventKind = "bookmark-removed"
)

// ActivityEvent is one observable user action. UID is empty for
// anonymous searches.
type ActivityEvent struct {
	Kind        EventKind `json:"kind"`
	Query       string    `json:"query,omitempty"`
	ResultCount int       `json:"result_count,omitempty"`
	UID         string    `json:"uid,omitempty"`
	ResourceID  string    `json:"resource_id,omitempty"`
	At          time.Time `json:"at"`
}

// Hub is a concurrency-safe fan-out dispatcher. Each listener gets
// its own buffered channel.
type Hub struct {
	mu        sync.RWMutex
	listeners map[uint64]chan ActivityEvent
	nextID    uint64
	bufSize   int
}

// NewHub constructs a hub with the given per-listener buffer size.
// Non-positive sizes default to 32.
func NewHub(bufSize int) *Hub {
	if bufSize <= 0 {
		bufSize = 32
	}
	return &Hub{
		listeners: make(map[uint64]chan ActivityEvent),
		bufSize:   bufSize,
	}
}

// Register adds a listener and returns its id and receive channel.
// Callers must Unregister the id when done.
func (h *Hub) Register() (uint64, <-chan ActivityEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := h.nextID
	h.nextID++
	ch := make(chan ActivityEvent, h.bufSize)
	h.listeners[id] = ch
	return id, ch
}

// Unregister removes a listener and closes its channel. Unknown ids
// are ignored.
func (h *Hub) Unregister(id uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if ch, ok := h.listeners[id]; ok {
		delete(h.listeners, id)
		close(ch)
	}
}

// Broadcast delivers an event to every listener that has buffer room.
// A zero At is stamped with the current time.
func (h *Hub) Broadcast(ev ActivityEvent) {
	if ev.At.IsZero() {
		ev.At = time.Now()
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, ch := range h.listeners {
		select {
		case ch <- ev:
		default:
			// Listener is full; drop for that listener only.
		}
	}
}

// Size returns the number of registered listeners.
func (h *Hub) Size() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.listeners)
}
