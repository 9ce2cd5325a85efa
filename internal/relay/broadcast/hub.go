// Package broadcast delivers relay events to the listeners subscribed to a context room.
package broadcast

import (
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

// Listener receives events. Deliver must not block; it reports false when the event
// was dropped (e.g. a full send buffer).
type Listener interface {
	ID() string
	Deliver(event string, payload any) bool
}

type subscription struct {
	listener Listener
	removed  atomic.Bool
}

// Hub tracks listeners and their room subscriptions.
type Hub struct {
	mu        sync.RWMutex
	listeners map[string]Listener
	rooms     map[string]map[string]*subscription
	log       logrus.FieldLogger
}

// NewHub returns an empty hub. log may be nil.
func NewHub(log logrus.FieldLogger) *Hub {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Hub{
		listeners: make(map[string]Listener),
		rooms:     make(map[string]map[string]*subscription),
		log:       log,
	}
}

// Register makes l addressable by Send and Subscribe.
func (h *Hub) Register(l Listener) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.listeners[l.ID()] = l
}

// Unregister drops every subscription held by listenerID and forgets it.
func (h *Hub) Unregister(listenerID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.unsubscribeAll(listenerID)
	delete(h.listeners, listenerID)
}

// Subscribe adds a registered listener to room. It reports false for unknown listeners.
func (h *Hub) Subscribe(room, listenerID string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	l, ok := h.listeners[listenerID]
	if !ok {
		return false
	}
	subs, ok := h.rooms[room]
	if !ok {
		subs = make(map[string]*subscription)
		h.rooms[room] = subs
	}
	if _, ok := subs[listenerID]; !ok {
		subs[listenerID] = &subscription{listener: l}
	}
	return true
}

// Unsubscribe removes listenerID from room. A publish already in flight to the room
// skips the listener from this point on.
func (h *Hub) Unsubscribe(room, listenerID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.unsubscribe(room, listenerID)
}

// UnsubscribeAll removes listenerID from every room.
func (h *Hub) UnsubscribeAll(listenerID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.unsubscribeAll(listenerID)
}

func (h *Hub) unsubscribe(room, listenerID string) {
	subs, ok := h.rooms[room]
	if !ok {
		return
	}
	if sub, ok := subs[listenerID]; ok {
		sub.removed.Store(true)
		delete(subs, listenerID)
	}
	if len(subs) == 0 {
		delete(h.rooms, room)
	}
}

func (h *Hub) unsubscribeAll(listenerID string) {
	for room := range h.rooms {
		h.unsubscribe(room, listenerID)
	}
}

// Publish delivers the event to a snapshot of room's subscribers and returns how many
// accepted it. Listeners subscribed after the snapshot do not receive it.
func (h *Hub) Publish(room, event string, payload any) int {
	h.mu.RLock()
	subs := make([]*subscription, 0, len(h.rooms[room]))
	for _, sub := range h.rooms[room] {
		subs = append(subs, sub)
	}
	h.mu.RUnlock()

	delivered := 0
	for _, sub := range subs {
		if sub.removed.Load() {
			continue
		}
		if sub.listener.Deliver(event, payload) {
			delivered++
		} else {
			h.log.WithFields(logrus.Fields{"room": room, "listener": sub.listener.ID(), "event": event}).Warn("broadcast: event dropped")
		}
	}
	return delivered
}

// Send delivers the event to one listener regardless of its rooms.
func (h *Hub) Send(listenerID, event string, payload any) bool {
	h.mu.RLock()
	l, ok := h.listeners[listenerID]
	h.mu.RUnlock()
	if !ok {
		return false
	}
	return l.Deliver(event, payload)
}

// Subscribers returns the number of listeners currently in room.
func (h *Hub) Subscribers(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}

// Rooms returns the rooms listenerID is subscribed to.
func (h *Hub) Rooms(listenerID string) []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	var out []string
	for room, subs := range h.rooms {
		if _, ok := subs[listenerID]; ok {
			out = append(out, room)
		}
	}
	return out
}
