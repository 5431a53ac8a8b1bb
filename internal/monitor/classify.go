package monitor

import "strings"

// tagged maps the exact bracket tags recognized at the start of a line.
// Matching is case-sensitive; "[warn]" or "WARNING:" do not classify.
var tagged = []struct {
	tag      string
	severity Severity
}{
	{"[EVENT]", Event},
	{"[INFO]", Info},
	{"[WARNING]", Warning},
	{"[ERROR]", Error},
	{"[DEBUG]", Debug},
}

// Classify maps a raw line to its severity and display text. A line
// beginning with a recognized bracket tag yields that severity with the
// tag and leading whitespace stripped; anything else is Info with the
// line unchanged.
func Classify(line string) (Severity, string) {
	for _, t := range tagged {
		rest, ok := strings.CutPrefix(line, t.tag)
		if !ok {
			continue
		}
		// A bare tag ("[ERROR]") classifies with empty text; a tag
		// glued to text ("[ERROR]x") does not classify at all.
		if rest != "" && rest[0] != ' ' {
			break
		}
		return t.severity, strings.TrimLeft(rest, " ")
	}
	return Info, line
}
