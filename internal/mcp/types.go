package mcp

// WindowInput is the input for the per-window tools.
type WindowInput struct {
	ID string `json:"id" jsonschema:"Panel id, e.g. about, skills, terminal. See list_panels."`
}

// WindowOutput reports the outcome of a per-window tool.
type WindowOutput struct {
	ID    string `json:"id"`
	Found bool   `json:"found"`
}

// ListWindowsInput is the input for the list_windows tool.
type ListWindowsInput struct{}

// WindowInfo describes one open window.
type WindowInfo struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	X          int    `json:"x"`
	Y          int    `json:"y"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	StackOrder int    `json:"stack_order"`
	Minimized  bool   `json:"minimized"`
	Maximized  bool   `json:"maximized"`
	Focused    bool   `json:"focused"`
}

// ListWindowsOutput is the output for the list_windows tool.
type ListWindowsOutput struct {
	Windows []WindowInfo `json:"windows"`
}

// ListPanelsInput is the input for the list_panels tool.
type ListPanelsInput struct {
	Query string `json:"query,omitempty" jsonschema:"Optional filter, matched like the command palette (title or keyword)"`
}

// PanelInfo describes one launchable panel.
type PanelInfo struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Keywords []string `json:"keywords,omitempty"`
	Open     bool     `json:"open"`
}

// ListPanelsOutput is the output for the list_panels tool.
type ListPanelsOutput struct {
	Panels []PanelInfo `json:"panels"`
}
