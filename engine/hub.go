package engine

import (
	"slices"
	"strconv"
)

// Token identifies a Hub subscription for later removal
type Token uint64

type hubEntry[T any] struct {
	token   Token
	handler func(T)
}

// Hub broadcasts values of type T to subscribers in subscription order
//
// Handlers may subscribe or unsubscribe from inside a Publish callback:
// the handler list is copy-on-write, so an in-flight Publish keeps iterating
// the list it started with. Not safe for concurrent use.
type Hub[T any] struct {
	handlers []hubEntry[T]
	next     Token
}

func NewHub[T any]() *Hub[T] {
	return &Hub[T]{}
}

// Subscribe registers handler and returns its removal token
// The same function may be subscribed more than once and is then invoked once per subscription
func (h *Hub[T]) Subscribe(handler func(T)) Token {
	h.next++
	tok := h.next
	// Clip capacity so append always allocates and never touches a list being published
	h.handlers = append(h.handlers[:len(h.handlers):len(h.handlers)], hubEntry[T]{token: tok, handler: handler})
	return tok
}

// Unsubscribe removes the subscription for tok
func (h *Hub[T]) Unsubscribe(tok Token) error {
	idx := slices.IndexFunc(h.handlers, func(e hubEntry[T]) bool { return e.token == tok })
	if idx < 0 {
		return &MissingBindingError{Name: strconv.FormatUint(uint64(tok), 10), Kind: "subscription"}
	}
	next := make([]hubEntry[T], 0, len(h.handlers)-1)
	next = append(next, h.handlers[:idx]...)
	next = append(next, h.handlers[idx+1:]...)
	h.handlers = next
	return nil
}

// Publish invokes every handler with ev
func (h *Hub[T]) Publish(ev T) {
	for _, e := range h.handlers {
		e.handler(ev)
	}
}

// Clear removes all handlers
func (h *Hub[T]) Clear() {
	h.handlers = nil
}

// Len returns the number of active subscriptions
func (h *Hub[T]) Len() int {
	return len(h.handlers)
}
