package tui

import "github.com/charmbracelet/lipgloss"

// styleID indexes cellStyles. Canvas cells carry an id rather than a full
// lipgloss.Style so a frame stays cheap to build.
type styleID uint8

const (
	styleNone styleID = iota
	styleDesktop
	styleIcon
	styleIconLabel
	styleFrame
	styleFrameFocused
	styleTitle
	styleTitleFocused
	styleControl
	styleClose
	styleBody
	styleTaskbar
	styleTaskbarOpen
	styleTaskbarFocused
	styleTaskbarClock
	styleLogout
	styleTile
	styleHeader
)

var cellStyles = []lipgloss.Style{
	styleNone:           lipgloss.NewStyle(),
	styleDesktop:        lipgloss.NewStyle().Background(lipgloss.Color("23")),
	styleIcon:           lipgloss.NewStyle().Background(lipgloss.Color("23")).Foreground(lipgloss.Color("229")).Bold(true),
	styleIconLabel:      lipgloss.NewStyle().Background(lipgloss.Color("23")).Foreground(lipgloss.Color("255")),
	styleFrame:          lipgloss.NewStyle().Background(lipgloss.Color("236")).Foreground(lipgloss.Color("245")),
	styleFrameFocused:   lipgloss.NewStyle().Background(lipgloss.Color("236")).Foreground(lipgloss.Color("205")),
	styleTitle:          lipgloss.NewStyle().Background(lipgloss.Color("238")).Foreground(lipgloss.Color("250")),
	styleTitleFocused:   lipgloss.NewStyle().Background(lipgloss.Color("62")).Foreground(lipgloss.Color("230")).Bold(true),
	styleControl:        lipgloss.NewStyle().Background(lipgloss.Color("240")).Foreground(lipgloss.Color("255")),
	styleClose:          lipgloss.NewStyle().Background(lipgloss.Color("160")).Foreground(lipgloss.Color("255")).Bold(true),
	styleBody:           lipgloss.NewStyle().Background(lipgloss.Color("235")).Foreground(lipgloss.Color("252")),
	styleTaskbar:        lipgloss.NewStyle().Background(lipgloss.Color("237")).Foreground(lipgloss.Color("250")),
	styleTaskbarOpen:    lipgloss.NewStyle().Background(lipgloss.Color("239")).Foreground(lipgloss.Color("255")).Underline(true),
	styleTaskbarFocused: lipgloss.NewStyle().Background(lipgloss.Color("62")).Foreground(lipgloss.Color("230")).Bold(true),
	styleTaskbarClock:   lipgloss.NewStyle().Background(lipgloss.Color("237")).Foreground(lipgloss.Color("241")),
	styleLogout:         lipgloss.NewStyle().Background(lipgloss.Color("88")).Foreground(lipgloss.Color("255")),
	styleTile:           lipgloss.NewStyle().Background(lipgloss.Color("24")).Foreground(lipgloss.Color("255")),
	styleHeader:         lipgloss.NewStyle().Background(lipgloss.Color("23")).Foreground(lipgloss.Color("205")).Bold(true),
}

// Login screen and overlay styles.
var (
	loginClockStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("255"))

	loginDateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250"))

	loginNameStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginTop(1)

	loginHintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1)

	overlayStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1)

	paletteItemStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("252"))

	paletteSelectedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("229")).
				Background(lipgloss.Color("62")).
				Bold(true)

	paletteEmptyStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("241")).
				Italic(true)
)
