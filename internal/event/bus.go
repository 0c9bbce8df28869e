package event

import (
	"log/slog"
	"sync"
)

type HandlerFunc func(raw any)

type queued struct {
	name string
	evt  any
}

// Bus delivers events synchronously on the caller's goroutine, in
// subscription order. Producers on other goroutines use Enqueue; the
// owning loop calls Drain before each tick so handlers never run
// concurrently with it.
type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]HandlerFunc

	qmu     sync.Mutex
	pending []queued
}

func NewBus() *Bus {
	return &Bus{
		handlers: make(map[string][]HandlerFunc),
	}
}

func (b *Bus) Subscribe(eventName string, handler HandlerFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventName] = append(b.handlers[eventName], handler)
}

func (b *Bus) Publish(eventName string, evt any) {
	b.mu.RLock()
	handlers := make([]HandlerFunc, len(b.handlers[eventName]))
	copy(handlers, b.handlers[eventName])
	b.mu.RUnlock()

	for _, handler := range handlers {
		b.dispatch(eventName, handler, evt)
	}
}

func (b *Bus) dispatch(eventName string, h HandlerFunc, evt any) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Event handler panicked", "event", eventName, "panic", r)
		}
	}()
	h(evt)
}

// Enqueue records an event for the next Drain. Safe from any goroutine.
func (b *Bus) Enqueue(eventName string, evt any) {
	b.qmu.Lock()
	b.pending = append(b.pending, queued{name: eventName, evt: evt})
	b.qmu.Unlock()
}

// Drain publishes every queued event in arrival order and reports how
// many were delivered.
func (b *Bus) Drain() int {
	b.qmu.Lock()
	batch := b.pending
	b.pending = nil
	b.qmu.Unlock()

	for _, q := range batch {
		b.Publish(q.name, q.evt)
	}
	return len(batch)
}

func (b *Bus) Pending() int {
	b.qmu.Lock()
	defer b.qmu.Unlock()
	return len(b.pending)
}
