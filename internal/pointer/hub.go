// Package pointer holds the desktop-wide pointer listeners that a drag or
// resize gesture installs for its lifetime.
package pointer

import (
	"slices"

	"github.com/1broseidon/deskshell/internal/geometry"
)

// Handler receives a pointer position in viewport pixels.
type Handler func(geometry.Point)

type listener struct {
	token  int
	onMove Handler
	onUp   Handler
}

// Hub dispatches pointer-move and pointer-up events to subscribed gestures.
// Like the registry it is driven from a single event loop.
type Hub struct {
	listeners []listener
	next      int
}

// NewHub returns an empty hub.
func NewHub() *Hub {
	return &Hub{}
}

// Subscribe installs move and up handlers (either may be nil) and returns
// the function that removes them. Calling release more than once is safe.
func (h *Hub) Subscribe(onMove, onUp Handler) (release func()) {
	h.next++
	token := h.next
	h.listeners = append(h.listeners, listener{token: token, onMove: onMove, onUp: onUp})

	released := false
	return func() {
		if released {
			return
		}
		released = true
		h.listeners = slices.DeleteFunc(h.listeners, func(l listener) bool { return l.token == token })
	}
}

// Move dispatches a pointer-move to every live listener.
func (h *Hub) Move(p geometry.Point) {
	for _, l := range h.snapshot() {
		if l.onMove != nil && h.live(l.token) {
			l.onMove(p)
		}
	}
}

// Up dispatches a pointer-up to every live listener.
func (h *Hub) Up(p geometry.Point) {
	for _, l := range h.snapshot() {
		if l.onUp != nil && h.live(l.token) {
			l.onUp(p)
		}
	}
}

// Len returns the number of installed listeners.
func (h *Hub) Len() int {
	return len(h.listeners)
}

// snapshot lets handlers release themselves mid-dispatch.
func (h *Hub) snapshot() []listener {
	return slices.Clone(h.listeners)
}

func (h *Hub) live(token int) bool {
	return slices.ContainsFunc(h.listeners, func(l listener) bool { return l.token == token })
}
