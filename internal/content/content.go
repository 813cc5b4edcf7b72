// Package content defines the opaque, renderable units shown inside windows.
//
// A Ref pairs a kind identifier with a render capability. Window bookkeeping
// stores Refs and Props but never looks inside them.
package content

import (
	"maps"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Props is an optional property bag handed to a content renderer.
type Props map[string]any

// Clone returns a shallow copy of p, or nil when p is empty.
func (p Props) Clone() Props {
	if len(p) == 0 {
		return nil
	}
	return maps.Clone(p)
}

// RenderFunc draws content into a width×height cell area, one string per row.
type RenderFunc func(props Props, width, height int) []string

// Ref is a capability-tagged reference to renderable content.
type Ref struct {
	Kind   string
	render RenderFunc
}

// NewRef wraps a render function under the given kind.
func NewRef(kind string, render RenderFunc) Ref {
	return Ref{Kind: kind, render: render}
}

// Valid reports whether r can render.
func (r Ref) Valid() bool {
	return r.render != nil
}

// Render draws r. The result always has exactly height rows, each no wider
// than width cells.
func (r Ref) Render(props Props, width, height int) []string {
	if width <= 0 || height <= 0 {
		return nil
	}
	var lines []string
	if r.render != nil {
		lines = r.render(props, width, height)
	}
	return fit(lines, width, height)
}

// Static returns a Ref that renders fixed text, word-wrapped to the area.
func Static(kind string, lines ...string) Ref {
	body := append([]string(nil), lines...)
	return NewRef(kind, func(_ Props, width, _ int) []string {
		var out []string
		for _, line := range body {
			out = append(out, Wrap(line, width)...)
		}
		return out
	})
}

// Wrap breaks s into rows no wider than width cells, splitting on spaces
// where possible. An empty line stays a single empty row.
func Wrap(s string, width int) []string {
	if width <= 0 {
		return nil
	}
	if runewidth.StringWidth(s) <= width {
		return []string{s}
	}

	var out []string
	var cur strings.Builder
	curWidth := 0
	flush := func() {
		out = append(out, cur.String())
		cur.Reset()
		curWidth = 0
	}

	for _, word := range strings.Fields(s) {
		ww := runewidth.StringWidth(word)
		for ww > width {
			if curWidth > 0 {
				flush()
			}
			head := runewidth.Truncate(word, width, "")
			if head == "" {
				// A single rune wider than the area.
				head = string([]rune(word)[:1])
			}
			out = append(out, head)
			word = word[len(head):]
			ww = runewidth.StringWidth(word)
		}
		if ww == 0 {
			continue
		}
		sep := 0
		if curWidth > 0 {
			sep = 1
		}
		if curWidth+sep+ww > width {
			flush()
			sep = 0
		}
		if sep == 1 {
			cur.WriteByte(' ')
		}
		cur.WriteString(word)
		curWidth += sep + ww
	}
	if curWidth > 0 {
		flush()
	}
	return out
}

func fit(lines []string, width, height int) []string {
	out := make([]string, height)
	for i := 0; i < height && i < len(lines); i++ {
		out[i] = runewidth.Truncate(lines[i], width, "")
	}
	return out
}
