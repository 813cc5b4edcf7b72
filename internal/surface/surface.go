// Package surface binds a single window's interactive shell (title bar,
// controls, resize zones) to pointer gestures and reports the results to
// the window registry.
package surface

import (
	"github.com/1broseidon/deskshell/internal/geometry"
	"github.com/1broseidon/deskshell/internal/pointer"
	"github.com/1broseidon/deskshell/internal/registry"
)

// Registry is the subset of window operations a surface drives.
type Registry interface {
	Get(id string) (registry.Window, bool)
	Focus(id string)
	Minimize(id string)
	Maximize(id string)
	Close(id string)
	UpdatePosition(id string, p geometry.Point)
	UpdateSize(id string, s geometry.Size)
}

type gesture struct {
	dir     geometry.Direction
	start   geometry.Rect
	anchor  geometry.Point
	release func()
}

// Surface is the interactive shell of one window.
type Surface struct {
	id     string
	reg    Registry
	hub    *pointer.Hub
	active *gesture
}

// New binds a surface for window id.
func New(id string, reg Registry, hub *pointer.Hub) *Surface {
	return &Surface{id: id, reg: reg, hub: hub}
}

// ID returns the bound window id.
func (s *Surface) ID() string {
	return s.id
}

// Active reports whether a drag or resize gesture is in progress.
func (s *Surface) Active() bool {
	return s.active != nil
}

// Direction returns the tag of the gesture in progress, or "" when idle.
func (s *Surface) Direction() geometry.Direction {
	if s.active == nil {
		return ""
	}
	return s.active.dir
}

// PointerDown handles a press on handle h at viewport position p. The
// window is always focused first, so any interaction brings it to front.
func (s *Surface) PointerDown(h Handle, p geometry.Point) {
	s.reg.Focus(s.id)

	switch h.Kind {
	case HandleMinimize:
		s.reg.Minimize(s.id)
	case HandleMaximize:
		s.reg.Maximize(s.id)
	case HandleClose:
		s.Teardown()
		s.reg.Close(s.id)
	case HandleTitleBar:
		s.begin(geometry.Move, p)
	case HandleResize:
		if h.Dir.IsResize() {
			s.begin(h.Dir, p)
		}
	}
}

// Teardown removes any listeners a gesture left installed. It must be
// called when the surface goes away, including mid-gesture.
func (s *Surface) Teardown() {
	if s.active == nil {
		return
	}
	s.active.release()
	s.active = nil
}

func (s *Surface) begin(dir geometry.Direction, p geometry.Point) {
	w, ok := s.reg.Get(s.id)
	if !ok || w.Maximized {
		return
	}
	s.Teardown()

	g := &gesture{
		dir:    dir,
		start:  w.Frame(),
		anchor: p,
	}
	s.active = g
	g.release = s.hub.Subscribe(s.move, s.up)
}

func (s *Surface) move(p geometry.Point) {
	g := s.active
	if g == nil {
		return
	}
	if _, ok := s.reg.Get(s.id); !ok {
		// Closed from elsewhere mid-gesture.
		s.Teardown()
		return
	}

	next := geometry.Apply(g.start, p.X-g.anchor.X, p.Y-g.anchor.Y, g.dir)
	s.reg.UpdatePosition(s.id, next.Origin())
	if g.dir != geometry.Move {
		s.reg.UpdateSize(s.id, next.Dim())
	}
}

func (s *Surface) up(p geometry.Point) {
	s.move(p)
	s.Teardown()
}
