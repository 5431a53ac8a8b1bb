package layout

// Layout holds the computed dimensions for all panels.
type Layout struct {
	TermWidth  int
	TermHeight int
	TooSmall   bool

	LogViewWidth  int
	LogViewHeight int

	TimelineWidth  int
	TimelineHeight int

	StatusBarWidth int
}

const (
	MinWidth  = 80
	MinHeight = 24

	LogColWeight      = 0.60
	TimelineColWeight = 0.40
)

// Calculate computes panel dimensions from terminal size.
// Subtracts 1 row for the status bar before splitting.
// Returns Layout with TooSmall=true if under minimum.
func Calculate(termWidth, termHeight int) Layout {
	l := Layout{
		TermWidth:  termWidth,
		TermHeight: termHeight,
	}

	if termWidth < MinWidth || termHeight < MinHeight {
		l.TooSmall = true
		return l
	}

	usableHeight := termHeight - 1 // status bar

	logWidth := int(float64(termWidth) * LogColWeight)
	timelineWidth := termWidth - logWidth

	l.LogViewWidth = logWidth
	l.LogViewHeight = usableHeight
	l.TimelineWidth = timelineWidth
	l.TimelineHeight = usableHeight

	l.StatusBarWidth = termWidth

	return l
}
