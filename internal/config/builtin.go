package config

// defaultPanels is the stock desktop: the same eight windows, titles and
// search keywords the desktop has always shipped with.
func defaultPanels() map[string]Panel {
	return map[string]Panel{
		"about": {
			Title:    "About Me",
			Icon:     "☺",
			Keywords: []string{"about", "profile", "bio", "me"},
			Order:    10,
			Body: []string{
				"Hello! I build things for the web and the terminal.",
				"",
				"Edit the panels section of config.yaml to tell visitors about yourself.",
			},
		},
		"skills": {
			Title:    "Skills",
			Icon:     "⌘",
			Keywords: []string{"skills", "abilities", "tech", "programming"},
			Order:    20,
			Body: []string{
				"Frontend Development",
				"  TypeScript, HTML, CSS, responsive design",
				"Backend Development",
				"  Go, Node.js, REST and GraphQL APIs",
				"Database & Cloud",
				"  PostgreSQL, Redis, Docker, CI/CD pipelines",
			},
		},
		"portfolio": {
			Title:    "Portfolio",
			Icon:     "▤",
			Keywords: []string{"portfolio", "projects", "work", "showcase"},
			Order:    30,
			Body: []string{
				"deskshell",
				"  A desktop-style window manager that runs in your terminal.",
			},
		},
		"contact": {
			Title:    "Contact",
			Icon:     "✉",
			Keywords: []string{"contact", "email", "reach", "message"},
			Order:    40,
			Body: []string{
				"Get In Touch",
				"",
				"Add an email address or other contact details here.",
			},
		},
		"experience": {
			Title:    "Experience",
			Icon:     "◷",
			Keywords: []string{"experience", "work", "career", "history"},
			Order:    50,
			Body: []string{
				"2023 - Present  Developer",
				"2022 - 2023     Self-taught web development",
			},
		},
		"socials": {
			Title:    "Socials",
			Icon:     "⇄",
			Keywords: []string{"social", "links", "profiles", "network"},
			Order:    60,
			Body: []string{
				"GitHub",
				"LinkedIn",
				"Discord",
			},
		},
		"terminal": {
			Title:    "Terminal",
			Icon:     "▶",
			Keywords: []string{"terminal", "console", "command", "cli"},
			Order:    70,
			Body: []string{
				"$ help",
				"Open the command palette with ctrl+k to launch any window,",
				"or type logout there to end the session.",
			},
		},
		"tech-stack": {
			Title:    "Tech Stack",
			Icon:     "⚙",
			Keywords: []string{"tech", "stack", "technology", "tools"},
			Order:    80,
			Body: []string{
				"Languages:  Go, TypeScript",
				"Tools:      git, tmux, neovim",
			},
		},
	}
}
