// Package registry owns the state of every open window on the desktop.
//
// A Registry is created per desktop session and discarded on logout. It is
// not safe for concurrent use: callers serialize access on a single event
// loop. Every operation is total; an unknown id is a silent no-op and
// out-of-range sizes are clamped rather than rejected.
package registry

import (
	"math/rand/v2"
	"slices"

	"github.com/1broseidon/deskshell/internal/content"
	"github.com/1broseidon/deskshell/internal/geometry"
)

const (
	DefaultBaseStackOrder = 1000
	DefaultWidth          = 800
	DefaultHeight         = 600
)

// Window is one open window record.
type Window struct {
	ID         string
	Title      string
	Content    content.Ref
	Props      content.Props
	Minimized  bool
	Maximized  bool
	Position   geometry.Point
	Size       geometry.Size
	StackOrder int
}

// Frame returns the stored geometry as a rect.
func (w Window) Frame() geometry.Rect {
	return geometry.RectOf(w.Position, w.Size)
}

func (w Window) clone() Window {
	w.Props = w.Props.Clone()
	return w
}

// OffsetRange bounds the pseudo-random initial position of new windows:
// x in [MinX, MinX+SpanX), y in [MinY, MinY+SpanY).
type OffsetRange struct {
	MinX, SpanX int
	MinY, SpanY int
}

// Options configures a Registry.
type Options struct {
	BaseStackOrder int
	DefaultSize    geometry.Size
	Offset         OffsetRange
	// Intn returns a value in [0, n). Defaults to math/rand/v2.IntN.
	Intn     func(n int) int
	Observer Observer
}

// DefaultOptions returns the stock desktop settings.
func DefaultOptions() Options {
	return Options{
		BaseStackOrder: DefaultBaseStackOrder,
		DefaultSize:    geometry.Size{Width: DefaultWidth, Height: DefaultHeight},
		Offset:         OffsetRange{MinX: 100, SpanX: 200, MinY: 100, SpanY: 100},
	}
}

// Registry is the ordered collection of open windows plus the stacking
// counter that orders them.
type Registry struct {
	windows   []Window
	nextStack int
	opts      Options
}

// New creates an empty registry.
func New(opts Options) *Registry {
	if opts.BaseStackOrder == 0 {
		opts.BaseStackOrder = DefaultBaseStackOrder
	}
	if opts.DefaultSize == (geometry.Size{}) {
		opts.DefaultSize = geometry.Size{Width: DefaultWidth, Height: DefaultHeight}
	}
	opts.DefaultSize = geometry.ClampSize(opts.DefaultSize)
	if opts.Intn == nil {
		opts.Intn = rand.IntN
	}
	return &Registry{
		nextStack: opts.BaseStackOrder,
		opts:      opts,
	}
}

// SetObserver replaces the mutation observer. nil disables notifications.
func (r *Registry) SetObserver(o Observer) {
	r.opts.Observer = o
}

// Open creates a window for id, or focuses it when it is already open.
func (r *Registry) Open(id, title string, ref content.Ref, props content.Props) {
	if r.index(id) >= 0 {
		r.Focus(id)
		return
	}

	w := Window{
		ID:         id,
		Title:      title,
		Content:    ref,
		Props:      props.Clone(),
		Position:   r.initialPosition(),
		Size:       r.opts.DefaultSize,
		StackOrder: r.allocate(),
	}
	r.windows = append(r.windows, w)
	r.notify(EventOpened, w)
}

// Close removes the window. Its stack order is never handed out again.
func (r *Registry) Close(id string) {
	i := r.index(id)
	if i < 0 {
		return
	}
	w := r.windows[i]
	r.windows = slices.Delete(r.windows, i, i+1)
	r.notify(EventClosed, w)
}

// Minimize toggles the minimized flag.
func (r *Registry) Minimize(id string) {
	r.mutate(id, EventMinimized, func(w *Window) {
		w.Minimized = !w.Minimized
	})
}

// Maximize toggles the maximized flag. Stored position and size are left
// untouched so the toggle round-trips exactly.
func (r *Registry) Maximize(id string) {
	r.mutate(id, EventMaximized, func(w *Window) {
		w.Maximized = !w.Maximized
	})
}

// Focus raises the window above every other and un-minimizes it.
func (r *Registry) Focus(id string) {
	i := r.index(id)
	if i < 0 {
		return
	}
	w := &r.windows[i]
	w.StackOrder = r.allocate()
	w.Minimized = false
	r.notify(EventFocused, *w)
}

// UpdatePosition overwrites the stored position.
func (r *Registry) UpdatePosition(id string, p geometry.Point) {
	r.mutate(id, EventMoved, func(w *Window) {
		w.Position = p
	})
}

// UpdateSize overwrites the stored size, clamped to the size floor.
func (r *Registry) UpdateSize(id string, s geometry.Size) {
	r.mutate(id, EventResized, func(w *Window) {
		w.Size = geometry.ClampSize(s)
	})
}

// Get returns a copy of the window record.
func (r *Registry) Get(id string) (Window, bool) {
	i := r.index(id)
	if i < 0 {
		return Window{}, false
	}
	return r.windows[i].clone(), true
}

// Has reports whether id is open.
func (r *Registry) Has(id string) bool {
	return r.index(id) >= 0
}

// Len returns the number of open windows.
func (r *Registry) Len() int {
	return len(r.windows)
}

// Windows returns a snapshot of every record in open order.
func (r *Registry) Windows() []Window {
	out := make([]Window, len(r.windows))
	for i, w := range r.windows {
		out[i] = w.clone()
	}
	return out
}

// Topmost returns the visible window with the highest stack order.
func (r *Registry) Topmost() (Window, bool) {
	best := -1
	for i, w := range r.windows {
		if w.Minimized {
			continue
		}
		if best < 0 || w.StackOrder > r.windows[best].StackOrder {
			best = i
		}
	}
	if best < 0 {
		return Window{}, false
	}
	return r.windows[best].clone(), true
}

// NextStackOrder returns the value the next Open or Focus will assign.
func (r *Registry) NextStackOrder() int {
	return r.nextStack
}

func (r *Registry) allocate() int {
	v := r.nextStack
	r.nextStack++
	return v
}

func (r *Registry) initialPosition() geometry.Point {
	off := r.opts.Offset
	p := geometry.Point{X: off.MinX, Y: off.MinY}
	if off.SpanX > 0 {
		p.X += r.opts.Intn(off.SpanX)
	}
	if off.SpanY > 0 {
		p.Y += r.opts.Intn(off.SpanY)
	}
	return p
}

func (r *Registry) index(id string) int {
	return slices.IndexFunc(r.windows, func(w Window) bool { return w.ID == id })
}

func (r *Registry) mutate(id string, kind EventKind, fn func(*Window)) {
	i := r.index(id)
	if i < 0 {
		return
	}
	fn(&r.windows[i])
	r.notify(kind, r.windows[i])
}
