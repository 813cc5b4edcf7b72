package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/1broseidon/deskshell/internal/launcher"
)

const paletteMaxResults = 8

// palette is the command palette overlay: a query input over a filtered
// list of catalog entries.
type palette struct {
	open     bool
	input    textinput.Model
	catalog  launcher.Catalog
	fuzzy    bool
	results  launcher.Catalog
	selected int
}

func newPalette(c launcher.Catalog, fuzzy bool) palette {
	ti := textinput.New()
	ti.Placeholder = "Search apps and actions..."
	ti.Prompt = "› "
	ti.CharLimit = 64
	ti.Width = 40
	return palette{input: ti, catalog: c, fuzzy: fuzzy}
}

func (p *palette) show() tea.Cmd {
	p.open = true
	p.input.SetValue("")
	p.refresh()
	return tea.Batch(p.input.Focus(), textinput.Blink)
}

func (p *palette) hide() {
	p.open = false
	p.input.Blur()
}

func (p *palette) refresh() {
	p.results = launcher.Search(p.catalog, p.input.Value(), p.fuzzy)
	p.selected = 0
}

// update handles a key while the palette is open. It returns the entry the
// user chose, if any.
func (p *palette) update(msg tea.KeyMsg) (launcher.Entry, bool, tea.Cmd) {
	switch msg.String() {
	case "esc":
		p.hide()
		return launcher.Entry{}, false, nil
	case "up", "ctrl+p":
		if p.selected > 0 {
			p.selected--
		}
		return launcher.Entry{}, false, nil
	case "down", "ctrl+n":
		if p.selected < len(p.results)-1 {
			p.selected++
		}
		return launcher.Entry{}, false, nil
	case "enter":
		if len(p.results) == 0 {
			return launcher.Entry{}, false, nil
		}
		e := p.results[p.selected]
		p.hide()
		return e, true, nil
	}

	before := p.input.Value()
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	if p.input.Value() != before {
		p.refresh()
	}
	return launcher.Entry{}, false, cmd
}

func (p *palette) view() string {
	var b strings.Builder
	b.WriteString(p.input.View())
	b.WriteString("\n")

	if len(p.results) == 0 {
		b.WriteString(paletteEmptyStyle.Render("No matches"))
		return overlayStyle.Render(b.String())
	}

	// Keep the selection inside the visible window.
	start := 0
	if p.selected >= paletteMaxResults {
		start = p.selected - paletteMaxResults + 1
	}
	end := min(len(p.results), start+paletteMaxResults)
	for i := start; i < end; i++ {
		e := p.results[i]
		line := " " + e.Icon + "  " + e.Title
		if i == p.selected {
			b.WriteString(paletteSelectedStyle.Width(p.input.Width + 2).Render(line))
		} else {
			b.WriteString(paletteItemStyle.Render(line))
		}
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	return overlayStyle.Render(b.String())
}
