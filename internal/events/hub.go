package events

import (
	"sync"
	"time"
)

// Event names published by the batch runner.
const (
	EventResult    = "result"
	EventComplete  = "complete"
	EventCancelled = "cancelled"
)

const (
	// DefaultCapacity bounds the replay buffer.
	DefaultCapacity = 200
	// DefaultGraceWindow is how long a finished batch's events stay
	// replayable before a scheduled reset clears them.
	DefaultGraceWindow = 60 * time.Second
)

// Event is one broadcast record. Sequence increases monotonically per hub.
type Event struct {
	Sequence  uint64    `json:"seq"`
	Name      string    `json:"name"`
	Timestamp time.Time `json:"ts"`
	Payload   any       `json:"payload,omitempty"`
}

// Handler receives published events. Handlers run on the publisher's
// goroutine and must not call back into the hub.
type Handler func(Event)

// Hub stores recent events in a bounded buffer and broadcasts new events to
// every subscriber. A panicking handler never prevents delivery to the rest.
type Hub struct {
	mu         sync.Mutex
	capacity   int
	grace      time.Duration
	buffer     []Event
	nextSeq    uint64
	subs       map[int]Handler
	nextSubID  int
	resetTimer *time.Timer
}

// HubOption configures optional Hub behavior.
type HubOption func(*Hub)

// WithGraceWindow overrides how long ScheduleReset retains the buffer.
func WithGraceWindow(d time.Duration) HubOption {
	return func(h *Hub) {
		if d > 0 {
			h.grace = d
		}
	}
}

// NewHub constructs a hub with the given replay capacity. Non-positive
// capacity falls back to DefaultCapacity.
func NewHub(capacity int, opts ...HubOption) *Hub {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	h := &Hub{
		capacity: capacity,
		grace:    DefaultGraceWindow,
		subs:     make(map[int]Handler),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Publish appends an event to the replay buffer and delivers it to every
// subscriber in registration order. Delivery is best-effort.
func (h *Hub) Publish(name string, payload any) {
	if h == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	h.nextSeq++
	evt := Event{
		Sequence:  h.nextSeq,
		Name:      name,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
	if len(h.buffer) == h.capacity {
		copy(h.buffer, h.buffer[1:])
		h.buffer = h.buffer[:h.capacity-1]
	}
	h.buffer = append(h.buffer, evt)

	for _, id := range h.subscriberOrder() {
		invoke(h.subs[id], evt)
	}
}

// Subscribe registers a handler, first replaying every buffered event in
// original order. The returned function deregisters the handler.
func (h *Hub) Subscribe(handler Handler) func() {
	if h == nil || handler == nil {
		return func() {}
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, evt := range h.buffer {
		invoke(handler, evt)
	}

	h.nextSubID++
	id := h.nextSubID
	h.subs[id] = handler

	return func() {
		h.mu.Lock()
		delete(h.subs, id)
		h.mu.Unlock()
	}
}

// Reset clears the replay buffer and cancels any pending scheduled reset.
// The runner calls this at batch start so a new batch never replays a
// previous batch's history.
func (h *Hub) Reset() {
	if h == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clearLocked()
}

// ScheduleReset arms a deferred buffer clear after the grace window, giving
// tardy subscribers time to catch the finished batch's history. A subsequent
// Reset or ScheduleReset supersedes the pending one.
func (h *Hub) ScheduleReset() {
	if h == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.resetTimer != nil {
		h.resetTimer.Stop()
	}
	h.resetTimer = time.AfterFunc(h.grace, func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		h.clearLocked()
	})
}

// Buffered reports how many events are currently replayable.
func (h *Hub) Buffered() int {
	if h == nil {
		return 0
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.buffer)
}

func (h *Hub) clearLocked() {
	h.buffer = nil
	if h.resetTimer != nil {
		h.resetTimer.Stop()
		h.resetTimer = nil
	}
}

func (h *Hub) subscriberOrder() []int {
	ids := make([]int, 0, len(h.subs))
	for id := range h.subs {
		ids = append(ids, id)
	}
	for i := 1; i < len(ids); i++ {
		for j := i; j > 0 && ids[j] < ids[j-1]; j-- {
			ids[j], ids[j-1] = ids[j-1], ids[j]
		}
	}
	return ids
}

// invoke shields the hub from handler panics.
func invoke(handler Handler, evt Event) {
	defer func() {
		_ = recover()
	}()
	handler(evt)
}
