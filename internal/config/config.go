package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/1broseidon/deskshell/internal/geometry"
	"github.com/1broseidon/deskshell/internal/registry"
	"github.com/1broseidon/deskshell/internal/runtimepath"
)

// WindowConfig controls where and how big new windows open.
type WindowConfig struct {
	DefaultWidth   int `yaml:"default_width"`
	DefaultHeight  int `yaml:"default_height"`
	OffsetXMin     int `yaml:"offset_x_min"`
	OffsetXSpan    int `yaml:"offset_x_span"`
	OffsetYMin     int `yaml:"offset_y_min"`
	OffsetYSpan    int `yaml:"offset_y_span"`
	BaseStackOrder int `yaml:"base_stack_order"`
}

// LoggingConfig configures the log file used while the desktop owns the
// terminal.
type LoggingConfig struct {
	// Enabled turns file logging on/off
	Enabled bool `yaml:"enabled"`
	// File is the log file path (default: $XDG_STATE_HOME/deskshell/deskshell.log)
	File string `yaml:"file,omitempty"`
	// MaxSizeMB is the maximum log file size before rotation (default: 10)
	MaxSizeMB int `yaml:"max_size_mb,omitempty"`
	// MaxFiles is the number of rotated files to keep (default: 3)
	MaxFiles int `yaml:"max_files,omitempty"`
}

// Owner is shown on the login screen and the mobile header.
type Owner struct {
	Name    string `yaml:"name"`
	Tagline string `yaml:"tagline,omitempty"`
}

// Panel describes one launchable window.
type Panel struct {
	Title    string   `yaml:"title"`
	Icon     string   `yaml:"icon,omitempty"`
	Keywords []string `yaml:"keywords,omitempty"`
	Body     []string `yaml:"body,omitempty"`
	Order    int      `yaml:"order"`
	Disabled bool     `yaml:"disabled,omitempty"`
}

// Config is the effective deskshell configuration.
type Config struct {
	CellWidthPx          int              `yaml:"cell_width_px"`
	CellHeightPx         int              `yaml:"cell_height_px"`
	MobileWidthPx        int              `yaml:"mobile_width_px"`
	Window               WindowConfig     `yaml:"window"`
	LoginDelayMs         int              `yaml:"login_delay_ms"`
	PaletteHotkey        string           `yaml:"palette_hotkey"`
	PaletteFuzzyMatching bool             `yaml:"palette_fuzzy_matching"`
	LogLevel             string           `yaml:"log_level"`
	Logging              LoggingConfig    `yaml:"logging"`
	Owner                Owner            `yaml:"owner"`
	Panels               map[string]Panel `yaml:"panels"`
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		CellWidthPx:   10,
		CellHeightPx:  20,
		MobileWidthPx: 768,
		Window: WindowConfig{
			DefaultWidth:   registry.DefaultWidth,
			DefaultHeight:  registry.DefaultHeight,
			OffsetXMin:     100,
			OffsetXSpan:    200,
			OffsetYMin:     100,
			OffsetYSpan:    100,
			BaseStackOrder: registry.DefaultBaseStackOrder,
		},
		LoginDelayMs:         2000,
		PaletteHotkey:        "ctrl+k",
		PaletteFuzzyMatching: true,
		LogLevel:             "info",
		Logging: LoggingConfig{
			Enabled:   false,
			MaxSizeMB: 10,
			MaxFiles:  3,
		},
		Owner: Owner{
			Name:    "Guest",
			Tagline: "Welcome to deskshell",
		},
		Panels: defaultPanels(),
	}
}

// LoginDelay is how long the login screen shows its progress state.
func (c *Config) LoginDelay() time.Duration {
	return time.Duration(c.LoginDelayMs) * time.Millisecond
}

// RegistryOptions converts the window section into registry options.
func (c *Config) RegistryOptions() registry.Options {
	opts := registry.DefaultOptions()
	opts.BaseStackOrder = c.Window.BaseStackOrder
	opts.DefaultSize = geometry.Size{Width: c.Window.DefaultWidth, Height: c.Window.DefaultHeight}
	opts.Offset = registry.OffsetRange{
		MinX:  c.Window.OffsetXMin,
		SpanX: c.Window.OffsetXSpan,
		MinY:  c.Window.OffsetYMin,
		SpanY: c.Window.OffsetYSpan,
	}
	return opts
}

// PanelIDs returns enabled panel ids ordered by their order key, then id.
func (c *Config) PanelIDs() []string {
	ids := make([]string, 0, len(c.Panels))
	for id, p := range c.Panels {
		if p.Disabled {
			continue
		}
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		pi, pj := c.Panels[ids[i]], c.Panels[ids[j]]
		if pi.Order != pj.Order {
			return pi.Order < pj.Order
		}
		return ids[i] < ids[j]
	})
	return ids
}

// GetLoggingConfig returns the logging section with defaults filled in.
func (c *Config) GetLoggingConfig() LoggingConfig {
	lc := c.Logging
	if lc.File == "" {
		lc.File = runtimepath.LogFile()
	}
	if lc.MaxSizeMB <= 0 {
		lc.MaxSizeMB = 10
	}
	if lc.MaxFiles <= 0 {
		lc.MaxFiles = 3
	}
	return lc
}


// Save writes the configuration to the standard location.
func (c *Config) Save() error {
	path, err := DefaultConfigPath()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo writes the configuration to path, creating its directory.
//
// Note: this marshals the effective config and will not preserve comments
// from the original YAML.
func (c *Config) SaveTo(path string) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate checks the effective configuration. Errors name the offending key.
func (c *Config) Validate() error {
	if c.CellWidthPx <= 0 {
		return &ValidationError{Path: "cell_width_px", Err: fmt.Errorf("cell_width_px must be > 0")}
	}
	if c.CellHeightPx <= 0 {
		return &ValidationError{Path: "cell_height_px", Err: fmt.Errorf("cell_height_px must be > 0")}
	}
	if c.MobileWidthPx <= 0 {
		return &ValidationError{Path: "mobile_width_px", Err: fmt.Errorf("mobile_width_px must be > 0")}
	}
	if c.Window.DefaultWidth < geometry.MinWidth {
		return &ValidationError{Path: "window.default_width", Err: fmt.Errorf("window.default_width must be >= %d", geometry.MinWidth)}
	}
	if c.Window.DefaultHeight < geometry.MinHeight {
		return &ValidationError{Path: "window.default_height", Err: fmt.Errorf("window.default_height must be >= %d", geometry.MinHeight)}
	}
	if c.Window.OffsetXSpan < 0 {
		return &ValidationError{Path: "window.offset_x_span", Err: fmt.Errorf("window.offset_x_span must be >= 0")}
	}
	if c.Window.OffsetYSpan < 0 {
		return &ValidationError{Path: "window.offset_y_span", Err: fmt.Errorf("window.offset_y_span must be >= 0")}
	}
	if c.LoginDelayMs < 0 {
		return &ValidationError{Path: "login_delay_ms", Err: fmt.Errorf("login_delay_ms must be >= 0")}
	}
	if strings.TrimSpace(c.PaletteHotkey) == "" {
		return &ValidationError{Path: "palette_hotkey", Err: fmt.Errorf("palette_hotkey is required")}
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "warning", "error":
	default:
		return &ValidationError{Path: "log_level", Err: fmt.Errorf("log_level must be one of: debug, info, warning, error")}
	}
	if c.Logging.MaxSizeMB < 0 {
		return &ValidationError{Path: "logging.max_size_mb", Err: fmt.Errorf("logging.max_size_mb must be >= 0")}
	}
	if c.Logging.MaxFiles < 0 {
		return &ValidationError{Path: "logging.max_files", Err: fmt.Errorf("logging.max_files must be >= 0")}
	}
	if len(c.PanelIDs()) == 0 {
		return &ValidationError{Path: "panels", Err: fmt.Errorf("at least one panel must be enabled")}
	}
	for id, p := range c.Panels {
		if strings.TrimSpace(id) == "" || strings.ContainsAny(id, " \t\n") {
			return &ValidationError{Path: "panels", Err: fmt.Errorf("panel id %q must be a non-empty word", id)}
		}
		if id == "logout" {
			return &ValidationError{Path: "panels.logout", Err: fmt.Errorf("panel id %q is reserved", id)}
		}
		if strings.TrimSpace(p.Title) == "" {
			return &ValidationError{Path: "panels." + id + ".title", Err: fmt.Errorf("panel title is required")}
		}
	}
	return nil
}
