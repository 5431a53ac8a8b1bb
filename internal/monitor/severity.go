// Package monitor holds the stream-side model of the application:
// severity classification, the bounded log and timeline buffers, live
// statistics, triggers, and the session that pumps source lines into
// all of them.
package monitor

// Severity classifies a log line. The zero value is Info, matching the
// default for untagged lines.
type Severity int

const (
	Info Severity = iota
	Event
	Warning
	Error
	Debug
)

// Severities lists all severities in declaration order. Iteration over
// per-severity data uses this slice so ordering is stable.
var Severities = []Severity{Event, Info, Warning, Error, Debug}

// String returns the tag name as it appears on the wire, without
// brackets.
func (s Severity) String() string {
	switch s {
	case Event:
		return "EVENT"
	case Info:
		return "INFO"
	case Warning:
		return "WARNING"
	case Error:
		return "ERROR"
	case Debug:
		return "DEBUG"
	default:
		return "UNKNOWN"
	}
}

// Badge returns the fixed-width label used in the log panel so message
// text starts in the same column for every severity.
func (s Severity) Badge() string {
	switch s {
	case Event:
		return "[EVENT]"
	case Info:
		return "[INFO] "
	case Warning:
		return "[WARN] "
	case Error:
		return "[ERROR]"
	case Debug:
		return "[DEBUG]"
	default:
		return "[???]  "
	}
}

// Ordinal returns the timeline chart row for the severity: higher means
// more severe, with Error on top.
func (s Severity) Ordinal() int {
	switch s {
	case Debug:
		return 1
	case Info:
		return 2
	case Event:
		return 3
	case Warning:
		return 4
	case Error:
		return 5
	default:
		return 2
	}
}
