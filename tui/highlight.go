package tui

import (
	"bytes"
	"strings"

	"github.com/alecthomas/chroma/quick"

	"github.com/jedipunkz/fieldlens/value"
)

// HighlightJSON colors JSON text for a terminal. On failure the input comes
// back unchanged.
func HighlightJSON(s string) string {
	var highlighted bytes.Buffer
	if err := quick.Highlight(&highlighted, s, "json", "terminal", "monokai"); err != nil {
		return s
	}
	return highlighted.String()
}

// prettyValue is the indented JSON of v, or a placeholder when v is undefined.
func prettyValue(v *value.Value) string {
	if v == nil {
		return "No matching data found."
	}
	return strings.TrimRight(value.Pretty(v), "\n")
}
