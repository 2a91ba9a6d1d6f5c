// Package event is a minimal in-process publish/subscribe bus. It replaces
// ambient global event dispatch with an explicit dependency: publishers and
// subscribers both hold a *Bus handed to them at wire-up time.
package event

import "sync"

// Topic names the kinds of change notifications managers exchange.
type Topic string

const (
	// VehiclesChanged fires after the vehicle collection was mutated.
	VehiclesChanged Topic = "vehicles.changed"

	// HistoryChanged fires after a trip was recorded or history was cleared.
	HistoryChanged Topic = "history.changed"

	// LanguageChanged fires after the UI language setting changed.
	LanguageChanged Topic = "language.changed"
)

// Bus delivers published topics to all subscribers of that topic.
// Delivery is synchronous and in subscription order; handlers must be quick
// or hand off to their own goroutine (the stats debouncer does the latter).
type Bus struct {
	mu   sync.RWMutex
	subs map[Topic][]func()
}

// New returns an empty Bus.
func New() *Bus {
	return &Bus{subs: make(map[Topic][]func())}
}

// Subscribe registers fn to run on every publish of topic.
func (b *Bus) Subscribe(topic Topic, fn func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs[topic] = append(b.subs[topic], fn)
}

// Publish runs every handler subscribed to topic.
func (b *Bus) Publish(topic Topic) {
	b.mu.RLock()
	handlers := b.subs[topic]
	b.mu.RUnlock()

	for _, fn := range handlers {
		fn()
	}
}
