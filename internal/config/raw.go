package config

// Raw* types mirror the YAML schema with pointer fields so that a key left
// out of the file keeps its default instead of zeroing it.

type RawWindow struct {
	DefaultWidth   *int `yaml:"default_width"`
	DefaultHeight  *int `yaml:"default_height"`
	OffsetXMin     *int `yaml:"offset_x_min"`
	OffsetXSpan    *int `yaml:"offset_x_span"`
	OffsetYMin     *int `yaml:"offset_y_min"`
	OffsetYSpan    *int `yaml:"offset_y_span"`
	BaseStackOrder *int `yaml:"base_stack_order"`
}

type RawLogging struct {
	Enabled   *bool   `yaml:"enabled"`
	File      *string `yaml:"file"`
	MaxSizeMB *int    `yaml:"max_size_mb"`
	MaxFiles  *int    `yaml:"max_files"`
}

type RawOwner struct {
	Name    *string `yaml:"name"`
	Tagline *string `yaml:"tagline"`
}

type RawPanel struct {
	Title    *string   `yaml:"title"`
	Icon     *string   `yaml:"icon"`
	Keywords *[]string `yaml:"keywords"`
	Body     *[]string `yaml:"body"`
	Order    *int      `yaml:"order"`
	Disabled *bool     `yaml:"disabled"`
}

type RawConfig struct {
	CellWidthPx          *int                `yaml:"cell_width_px"`
	CellHeightPx         *int                `yaml:"cell_height_px"`
	MobileWidthPx        *int                `yaml:"mobile_width_px"`
	Window               *RawWindow          `yaml:"window"`
	LoginDelayMs         *int                `yaml:"login_delay_ms"`
	PaletteHotkey        *string             `yaml:"palette_hotkey"`
	PaletteFuzzyMatching *bool               `yaml:"palette_fuzzy_matching"`
	LogLevel             *string             `yaml:"log_level"`
	Logging              *RawLogging         `yaml:"logging"`
	Owner                *RawOwner           `yaml:"owner"`
	Panels               map[string]RawPanel `yaml:"panels"`
}

// BuildEffectiveConfig overlays raw on the defaults.
func BuildEffectiveConfig(raw RawConfig) *Config {
	cfg := DefaultConfig()

	setInt(&cfg.CellWidthPx, raw.CellWidthPx)
	setInt(&cfg.CellHeightPx, raw.CellHeightPx)
	setInt(&cfg.MobileWidthPx, raw.MobileWidthPx)
	setInt(&cfg.LoginDelayMs, raw.LoginDelayMs)
	setString(&cfg.PaletteHotkey, raw.PaletteHotkey)
	setBool(&cfg.PaletteFuzzyMatching, raw.PaletteFuzzyMatching)
	setString(&cfg.LogLevel, raw.LogLevel)

	if w := raw.Window; w != nil {
		setInt(&cfg.Window.DefaultWidth, w.DefaultWidth)
		setInt(&cfg.Window.DefaultHeight, w.DefaultHeight)
		setInt(&cfg.Window.OffsetXMin, w.OffsetXMin)
		setInt(&cfg.Window.OffsetXSpan, w.OffsetXSpan)
		setInt(&cfg.Window.OffsetYMin, w.OffsetYMin)
		setInt(&cfg.Window.OffsetYSpan, w.OffsetYSpan)
		setInt(&cfg.Window.BaseStackOrder, w.BaseStackOrder)
	}
	if l := raw.Logging; l != nil {
		setBool(&cfg.Logging.Enabled, l.Enabled)
		setString(&cfg.Logging.File, l.File)
		setInt(&cfg.Logging.MaxSizeMB, l.MaxSizeMB)
		setInt(&cfg.Logging.MaxFiles, l.MaxFiles)
	}
	if o := raw.Owner; o != nil {
		setString(&cfg.Owner.Name, o.Name)
		setString(&cfg.Owner.Tagline, o.Tagline)
	}

	// Panels merge per id: a panel named in the file overrides only the
	// fields it sets on the stock panel of the same id, or starts empty.
	for id, rp := range raw.Panels {
		p := cfg.Panels[id]
		setString(&p.Title, rp.Title)
		setString(&p.Icon, rp.Icon)
		if rp.Keywords != nil {
			p.Keywords = append([]string(nil), (*rp.Keywords)...)
		}
		if rp.Body != nil {
			p.Body = append([]string(nil), (*rp.Body)...)
		}
		setInt(&p.Order, rp.Order)
		setBool(&p.Disabled, rp.Disabled)
		cfg.Panels[id] = p
	}

	return cfg
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}
