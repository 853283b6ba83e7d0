package services

import (
	"log"
	"sync"
)

// Event is one fire-and-forget notification emitted when ledger data
// changes. Consumers (the front end's realtime bridge) subscribe to the hub;
// emitters never wait on them.
type Event struct {
	Topic   string `json:"topic"`
	Message string `json:"message"`
}

type notifierHub struct {
	mu          sync.RWMutex
	subscribers map[int]chan Event
	nextID      int
}

var hub = &notifierHub{subscribers: make(map[int]chan Event)}

// Notify broadcasts an event to all subscribers. Slow or absent subscribers
// are skipped, and delivery failure never reaches the caller; the financial
// operation that triggered the event has already committed.
func Notify(topic, message string) {
	hub.mu.RLock()
	defer hub.mu.RUnlock()

	for id, ch := range hub.subscribers {
		select {
		case ch <- Event{Topic: topic, Message: message}:
		default:
			log.Printf("notifier: dropping event %q for slow subscriber %d", topic, id)
		}
	}
}

// Subscribe registers a listener. The returned cancel func must be called
// when the listener goes away.
func Subscribe() (<-chan Event, func()) {
	hub.mu.Lock()
	defer hub.mu.Unlock()

	id := hub.nextID
	hub.nextID++
	ch := make(chan Event, 16)
	hub.subscribers[id] = ch

	cancel := func() {
		hub.mu.Lock()
		defer hub.mu.Unlock()
		if existing, ok := hub.subscribers[id]; ok {
			delete(hub.subscribers, id)
			close(existing)
		}
	}
	return ch, cancel
}
