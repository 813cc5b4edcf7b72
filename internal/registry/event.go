package registry

import (
	"log/slog"

	"github.com/1broseidon/deskshell/internal/geometry"
)

// EventKind names a registry mutation.
type EventKind int

const (
	EventOpened EventKind = iota
	EventClosed
	EventFocused
	EventMinimized
	EventMaximized
	EventMoved
	EventResized
)

// String returns the string representation of the event kind
func (k EventKind) String() string {
	switch k {
	case EventOpened:
		return "opened"
	case EventClosed:
		return "closed"
	case EventFocused:
		return "focused"
	case EventMinimized:
		return "minimized"
	case EventMaximized:
		return "maximized"
	case EventMoved:
		return "moved"
	case EventResized:
		return "resized"
	default:
		return "unknown"
	}
}

// Event describes a mutation after it has been applied.
type Event struct {
	Kind       EventKind
	ID         string
	StackOrder int
	Minimized  bool
	Maximized  bool
	Frame      geometry.Rect
}

// Observer is notified synchronously after each effective mutation.
type Observer interface {
	WindowEvent(Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Event)

// WindowEvent implements Observer.
func (f ObserverFunc) WindowEvent(e Event) { f(e) }

// LogObserver writes every event to logger at debug level, except moves
// and resizes which fire on every pointer tick.
func LogObserver(logger *slog.Logger) Observer {
	return ObserverFunc(func(e Event) {
		if e.Kind == EventMoved || e.Kind == EventResized {
			return
		}
		logger.Debug("window "+e.Kind.String(),
			"id", e.ID,
			"stack_order", e.StackOrder,
			"minimized", e.Minimized,
			"maximized", e.Maximized,
		)
	})
}

func (r *Registry) notify(kind EventKind, w Window) {
	if r.opts.Observer == nil {
		return
	}
	r.opts.Observer.WindowEvent(Event{
		Kind:       kind,
		ID:         w.ID,
		StackOrder: w.StackOrder,
		Minimized:  w.Minimized,
		Maximized:  w.Maximized,
		Frame:      w.Frame(),
	})
}
