// Package panels turns configured panels into the launcher catalog.
package panels

import (
	"github.com/1broseidon/deskshell/internal/config"
	"github.com/1broseidon/deskshell/internal/content"
	"github.com/1broseidon/deskshell/internal/launcher"
)

// Kind is the content kind of every configured text panel.
const Kind = "panel"

// Catalog returns the enabled panels in order. It never includes the
// logout entry; see PaletteCatalog.
func Catalog(cfg *config.Config) launcher.Catalog {
	ids := cfg.PanelIDs()
	out := make(launcher.Catalog, 0, len(ids))
	for _, id := range ids {
		p := cfg.Panels[id]
		out = append(out, launcher.Entry{
			ID:       id,
			Title:    p.Title,
			Icon:     p.Icon,
			Keywords: append([]string(nil), p.Keywords...),
			Content:  content.Static(Kind, p.Body...),
		})
	}
	return out
}

// PaletteCatalog is Catalog plus the logout entry.
func PaletteCatalog(cfg *config.Config) launcher.Catalog {
	return append(Catalog(cfg), Logout())
}

// Logout is the palette's session-ending entry.
func Logout() launcher.Entry {
	return launcher.Entry{
		ID:       launcher.LogoutID,
		Title:    "Logout",
		Icon:     "⏻",
		Keywords: []string{"logout", "sign out", "exit", "log out"},
		Action:   launcher.ActionLogout,
	}
}
