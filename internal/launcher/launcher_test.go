package launcher

import (
	"testing"

	"github.com/1broseidon/deskshell/internal/content"
	"github.com/1broseidon/deskshell/internal/geometry"
	"github.com/1broseidon/deskshell/internal/registry"
)

func testCatalog() Catalog {
	return Catalog{
		{ID: "about", Title: "About Me", Keywords: []string{"about", "profile", "bio", "me"}, Content: content.Static("about")},
		{ID: "skills", Title: "Skills", Keywords: []string{"skills", "abilities", "tech", "programming"}, Content: content.Static("skills")},
		{ID: "portfolio", Title: "Portfolio", Keywords: []string{"portfolio", "projects", "work", "showcase"}, Content: content.Static("portfolio")},
		{ID: "contact", Title: "Contact", Keywords: []string{"contact", "email", "reach", "message"}, Content: content.Static("contact")},
		{ID: "experience", Title: "Experience", Keywords: []string{"experience", "work", "career", "history"}, Content: content.Static("experience")},
		{ID: "terminal", Title: "Terminal", Keywords: []string{"terminal", "console", "command", "cli"}, Content: content.Static("terminal")},
		{ID: LogoutID, Title: "Logout", Keywords: []string{"logout", "sign out", "exit", "log out"}, Action: ActionLogout},
	}
}

func newRegistry() *registry.Registry {
	opts := registry.DefaultOptions()
	opts.Intn = func(int) int { return 0 }
	return registry.New(opts)
}

func TestTaskbarActivate_FocusesExistingOrOpens(t *testing.T) {
	reg := newRegistry()
	c := testCatalog()
	about, _ := c.Find("about")
	skills, _ := c.Find("skills")

	TaskbarActivate(reg, about)
	TaskbarActivate(reg, skills)
	if reg.Len() != 2 {
		t.Fatalf("Len = %d, want 2", reg.Len())
	}

	reg.Minimize("about")
	TaskbarActivate(reg, about)
	w, _ := reg.Get("about")
	if w.Minimized {
		t.Fatalf("taskbar click should restore, not toggle minimize")
	}
	if top, _ := reg.Topmost(); top.ID != "about" {
		t.Fatalf("Topmost = %q, want about", top.ID)
	}

	TaskbarActivate(reg, about)
	if w, _ := reg.Get("about"); w.Minimized {
		t.Fatalf("second taskbar click minimized the window")
	}
	if reg.Len() != 2 {
		t.Fatalf("taskbar created a duplicate")
	}
}

func TestActivate_IsIdempotentOpen(t *testing.T) {
	reg := newRegistry()
	about, _ := testCatalog().Find("about")

	Activate(reg, about)
	Activate(reg, about)
	if reg.Len() != 1 {
		t.Fatalf("Len = %d, want 1", reg.Len())
	}
}

func TestActivate_LogoutNeverOpens(t *testing.T) {
	reg := newRegistry()
	logout, _ := testCatalog().Find(LogoutID)

	Activate(reg, logout)
	TaskbarActivate(reg, logout)
	if reg.Len() != 0 {
		t.Fatalf("logout entry opened a window")
	}
}

func TestIconGrid_DefaultColumns(t *testing.T) {
	grid := IconGrid(testCatalog(), DefaultGridSpec())
	if len(grid) != 6 {
		t.Fatalf("len = %d, want 6 (logout excluded)", len(grid))
	}
	want := map[string]geometry.Point{
		"about":      {X: 100, Y: 100},
		"skills":     {X: 100, Y: 200},
		"contact":    {X: 100, Y: 400},
		"experience": {X: 250, Y: 100},
		"terminal":   {X: 250, Y: 200},
	}
	for _, p := range grid {
		if w, ok := want[p.Entry.ID]; ok && p.Position != w {
			t.Errorf("%s at %+v, want %+v", p.Entry.ID, p.Position, w)
		}
	}
}

func TestMobileTaskbar_FirstFour(t *testing.T) {
	got := MobileTaskbar(testCatalog())
	if len(got) != 4 || got[0].ID != "about" || got[3].ID != "contact" {
		t.Fatalf("MobileTaskbar = %+v", got)
	}
}

func TestSearch(t *testing.T) {
	c := testCatalog()

	tests := []struct {
		name  string
		query string
		fuzzy bool
		first string
		count int
	}{
		{"empty returns all", "", false, "about", len(c)},
		{"title substring", "cont", false, "contact", 1},
		{"keyword substring", "WORK", false, "portfolio", 2},
		{"sign out", "sign", false, LogoutID, 1},
		{"no match without fuzzy", "trml", false, "", 0},
		{"fuzzy fallback", "trml", true, "terminal", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Search(c, tt.query, tt.fuzzy)
			if len(got) != tt.count {
				t.Fatalf("Search(%q) returned %d entries, want %d", tt.query, len(got), tt.count)
			}
			if tt.count > 0 && got[0].ID != tt.first {
				t.Fatalf("Search(%q)[0] = %q, want %q", tt.query, got[0].ID, tt.first)
			}
		})
	}
}

func TestSearch_SubstringBeforeFuzzy(t *testing.T) {
	got := Search(testCatalog(), "me", true)
	if len(got) == 0 || got[0].ID != "about" {
		t.Fatalf("Search(me)[0] = %v, want about first", got)
	}
}
