package excel

// RawRowData represents a row of raw cell text keyed by column header
type RawRowData map[string]string

// RawTable is the header and rows of a loaded file before typing
type RawTable struct {
	Headers []string     // Column headers, trimmed, BOM removed
	Rows    []RawRowData // Data rows
}

// HasColumn reports whether the header row contains name.
func (t *RawTable) HasColumn(name string) bool {
	for _, h := range t.Headers {
		if h == name {
			return true
		}
	}
	return false
}

// MissingColumns returns the required names absent from the header, in the order given.
func (t *RawTable) MissingColumns(required []string) []string {
	var missing []string
	for _, name := range required {
		if !t.HasColumn(name) {
			missing = append(missing, name)
		}
	}
	return missing
}
