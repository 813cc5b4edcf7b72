// Package launcher implements the surfaces that ask for windows to be opened
// or brought forward: desktop icons, the taskbar, the mobile grid and the
// command palette.
package launcher

import (
	"github.com/1broseidon/deskshell/internal/content"
	"github.com/1broseidon/deskshell/internal/geometry"
)

// Action is what selecting an entry does.
type Action int

const (
	// ActionOpen opens (or focuses) the entry's window.
	ActionOpen Action = iota
	// ActionLogout ends the desktop session; it never opens a window.
	ActionLogout
)

// LogoutID is the reserved id of the palette's logout entry.
const LogoutID = "logout"

// Entry is one launchable item.
type Entry struct {
	ID       string
	Title    string
	Icon     string
	Keywords []string
	Content  content.Ref
	Props    content.Props
	Action   Action
}

// Catalog is the ordered set of entries a desktop offers.
type Catalog []Entry

// Find returns the entry with the given id.
func (c Catalog) Find(id string) (Entry, bool) {
	for _, e := range c {
		if e.ID == id {
			return e, true
		}
	}
	return Entry{}, false
}

// Windows returns the entries that open windows, in order.
func (c Catalog) Windows() Catalog {
	out := make(Catalog, 0, len(c))
	for _, e := range c {
		if e.Action == ActionOpen {
			out = append(out, e)
		}
	}
	return out
}

// Launcher is the window API every launch surface calls.
type Launcher interface {
	Open(id, title string, ref content.Ref, props content.Props)
	Focus(id string)
	Has(id string) bool
}

// Activate is the desktop icon, mobile grid and palette behaviour: open,
// which focuses when the window already exists.
func Activate(l Launcher, e Entry) {
	if e.Action != ActionOpen {
		return
	}
	l.Open(e.ID, e.Title, e.Content, e.Props)
}

// TaskbarActivate brings an existing window to front or opens it. It never
// minimizes.
func TaskbarActivate(l Launcher, e Entry) {
	if e.Action != ActionOpen {
		return
	}
	if l.Has(e.ID) {
		l.Focus(e.ID)
		return
	}
	l.Open(e.ID, e.Title, e.Content, e.Props)
}

// IconPlacement is a desktop icon and its top-left position.
type IconPlacement struct {
	Entry    Entry
	Position geometry.Point
}

// GridSpec lays icons out in columns.
type GridSpec struct {
	Origin    geometry.Point
	ColStep   int
	RowStep   int
	PerColumn int
}

// DefaultGridSpec reproduces the stock desktop: columns at x=100 and x=250,
// rows every 100px from y=100, four icons per column.
func DefaultGridSpec() GridSpec {
	return GridSpec{Origin: geometry.Point{X: 100, Y: 100}, ColStep: 150, RowStep: 100, PerColumn: 4}
}

// IconGrid places every window entry of the catalog.
func IconGrid(c Catalog, spec GridSpec) []IconPlacement {
	per := spec.PerColumn
	if per <= 0 {
		per = 1
	}
	entries := c.Windows()
	out := make([]IconPlacement, len(entries))
	for i, e := range entries {
		col, row := i/per, i%per
		out[i] = IconPlacement{
			Entry:    e,
			Position: spec.Origin.Add(col*spec.ColStep, row*spec.RowStep),
		}
	}
	return out
}

// MobileTaskbarSize is how many entries the small-form-factor taskbar shows.
const MobileTaskbarSize = 4

// MobileTaskbar returns the entries shown on the small-form-factor taskbar.
func MobileTaskbar(c Catalog) Catalog {
	w := c.Windows()
	if len(w) > MobileTaskbarSize {
		w = w[:MobileTaskbarSize]
	}
	return w
}
