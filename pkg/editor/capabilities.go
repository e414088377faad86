package editor

// Capabilities switches the optional parts of the editor on or off. The
// zero value disables everything; DefaultCapabilities enables everything.
type Capabilities struct {
	// Merge enables merging and unmerging selected cells.
	Merge bool `mapstructure:"merge" json:"merge"`
	// Blank enables blanking and unblanking selected cells.
	Blank bool `mapstructure:"blank" json:"blank"`
	// Checkbox enables the per-cell checkbox and with it the blocked state.
	Checkbox bool `mapstructure:"checkbox" json:"checkbox"`
	// Edit enables free-text editing of cell values.
	Edit bool `mapstructure:"edit" json:"edit"`
	// AddRow exposes the "add row" entry point.
	AddRow bool `mapstructure:"addRow" json:"addRow"`
	// AddColumn exposes the "add column" entry point.
	AddColumn bool `mapstructure:"addColumn" json:"addColumn"`
	// Generate exposes the "generate table" entry point.
	Generate bool `mapstructure:"generate" json:"generate"`
}

// DefaultCapabilities enables every capability.
func DefaultCapabilities() Capabilities {
	return Capabilities{
		Merge:     true,
		Blank:     true,
		Checkbox:  true,
		Edit:      true,
		AddRow:    true,
		AddColumn: true,
		Generate:  true,
	}
}

// SelectionAllowed reports whether any capability needs a selection.
func (c Capabilities) SelectionAllowed() bool {
	return c.Merge || c.Blank
}
