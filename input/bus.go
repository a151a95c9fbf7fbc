// Package input carries keyboard shortcuts from whichever view has focus to
// the components that registered for them.
package input

import (
	"strings"
	"sync"
)

// Key is a normalized shortcut name.
type Key string

const (
	Space Key = "space"
	Left  Key = "left"
	Right Key = "right"
)

// Parse normalizes a key name as reported by terminal libraries.
func Parse(name string) (Key, bool) {
	switch strings.ToLower(name) {
	case " ", "space":
		return Space, true
	case "left":
		return Left, true
	case "right":
		return Right, true
	}
	return "", false
}

// Handler reacts to a key press.
type Handler func(Key)

type subscription struct {
	id      int
	handler Handler
}

// Bus fans key presses out to subscribers in subscription order.
type Bus struct {
	mu     sync.Mutex
	subs   []subscription
	nextID int
}

// NewBus returns an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers h and returns a function that removes it.
// Calling the returned function more than once is harmless.
func (b *Bus) Subscribe(h Handler) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.subs = append(b.subs, subscription{id: id, handler: h})

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			for i, s := range b.subs {
				if s.id == id {
					b.subs = append(b.subs[:i], b.subs[i+1:]...)
					return
				}
			}
		})
	}
}

// Dispatch delivers k to every subscriber and reports whether there was any.
func (b *Bus) Dispatch(k Key) bool {
	b.mu.Lock()
	handlers := make([]Handler, len(b.subs))
	for i, s := range b.subs {
		handlers[i] = s.handler
	}
	b.mu.Unlock()

	for _, h := range handlers {
		h(k)
	}
	return len(handlers) > 0
}

// Len returns the number of subscribers.
func (b *Bus) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
