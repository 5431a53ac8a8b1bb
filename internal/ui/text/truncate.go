package text

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Truncate shortens s to maxWidth columns, appending "…" when cut.
// ANSI-aware: escape codes are not counted toward visual width and
// will not be broken by the truncation.
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if ansi.StringWidth(s) <= maxWidth {
		return s
	}
	return ansi.Truncate(s, maxWidth, "…")
}

// PadRight pads s with spaces to exactly width columns. Wider strings
// are returned unchanged. ANSI-aware.
func PadRight(s string, width int) string {
	w := ansi.StringWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}
