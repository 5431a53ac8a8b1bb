package panels

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/uartium/uartium/internal/monitor"
	"github.com/uartium/uartium/internal/ui/border"
	"github.com/uartium/uartium/internal/ui/styles"
	"github.com/uartium/uartium/internal/ui/text"
)

// timelineRows is the fixed top-to-bottom row order of the chart.
// Highest ordinal on top so errors sit at the top of the panel.
var timelineRows = []monitor.Severity{
	monitor.Error,
	monitor.Warning,
	monitor.Event,
	monitor.Info,
	monitor.Debug,
}

const timelineMark = "∙"

// rowLabel returns the fixed-width gutter label for a severity row.
func rowLabel(sev monitor.Severity) string {
	if sev == monitor.Warning {
		return "WARN"
	}
	return sev.String()
}

// Timeline renders one dot-matrix row per severity: each recorded
// entry becomes a mark at its elapsed-time column, giving a scatter
// view of when each severity occurred over the stream.
type Timeline struct {
	width   int
	height  int
	data    *monitor.Timeline
	focused bool
	hidden  map[monitor.Severity]bool
}

func NewTimeline(data *monitor.Timeline) Timeline {
	return Timeline{
		data:   data,
		hidden: make(map[monitor.Severity]bool),
	}
}

func (t *Timeline) SetSize(w, h int) {
	t.width = w
	t.height = h
}

func (t *Timeline) SetFocused(focused bool) {
	t.focused = focused
}

// SetSeverityVisible hides or shows one severity's marks. The row stays
// in place so the chart does not reflow, only its marks disappear.
func (t *Timeline) SetSeverityVisible(sev monitor.Severity, visible bool) {
	t.hidden[sev] = !visible
}

func (t Timeline) View() string {
	innerW := t.width - 2
	innerH := t.height - 2
	// Five severity rows plus the two axis rows must fit.
	if innerW < 10 || innerH < len(timelineRows)+2 {
		return border.RenderPanel("Timeline", "", nil, t.width, t.height, t.focused)
	}

	content := t.renderChart(innerW, innerH)
	return border.RenderPanel("Timeline", content, nil, t.width, t.height, t.focused)
}

// renderChart lays out label column, one plot row per severity, and an
// elapsed-seconds axis along the bottom.
func (t *Timeline) renderChart(innerW, innerH int) string {
	const labelWidth = 6 // "ERROR " etc.
	plotWidth := innerW - labelWidth - 1
	if plotWidth < 1 {
		plotWidth = 1
	}

	span := t.data.Span()
	if span <= 0 {
		span = 1
	}

	var rows []string

	// Severity rows are spread over the available height so the chart
	// fills the panel on tall terminals.
	rowGap := 0
	if innerH-1 > 2*len(timelineRows) {
		rowGap = 1
	}

	for _, sev := range timelineRows {
		color := styles.SeverityColor(sev)
		labelStyle := lipgloss.NewStyle().Foreground(color).Bold(true)
		markStyle := lipgloss.NewStyle().Foreground(color)
		if t.hidden[sev] {
			labelStyle = styles.TextDimStyle
		}

		cells := make([]bool, plotWidth)
		if !t.hidden[sev] {
			for _, p := range t.data.Series(sev) {
				col := int(p.X / span * float64(plotWidth-1))
				if col < 0 {
					col = 0
				}
				if col >= plotWidth {
					col = plotWidth - 1
				}
				cells[col] = true
			}
		}

		var plot strings.Builder
		for _, hit := range cells {
			if hit {
				plot.WriteString(markStyle.Render(timelineMark))
			} else {
				plot.WriteString(" ")
			}
		}

		label := text.PadRight(rowLabel(sev), labelWidth-1)
		row := labelStyle.Render(label) + styles.TextDimStyle.Render("│") + plot.String()
		rows = append(rows, row)
		if rowGap > 0 {
			rows = append(rows, strings.Repeat(" ", labelWidth-1)+styles.TextDimStyle.Render("│"))
		}
	}

	rows = append(rows, t.renderAxis(labelWidth, plotWidth, span))
	return strings.Join(rows, "\n")
}

// renderAxis draws the bottom rule with a start, middle, and end label
// in elapsed seconds.
func (t *Timeline) renderAxis(labelWidth, plotWidth int, span float64) string {
	rule := strings.Repeat(" ", labelWidth-1) + "╰" + strings.Repeat("─", plotWidth)

	start := "0s"
	mid := text.FormatSeconds(span / 2)
	end := text.FormatSeconds(span)

	labels := make([]byte, plotWidth)
	for i := range labels {
		labels[i] = ' '
	}
	placeLabel(labels, 0, start)
	placeLabel(labels, plotWidth/2-len(mid)/2, mid)
	placeLabel(labels, plotWidth-len(end), end)

	return styles.TextDimStyle.Render(rule) + "\n" +
		strings.Repeat(" ", labelWidth) + styles.TextDimStyle.Render(string(labels))
}

func placeLabel(buf []byte, at int, label string) {
	if at < 0 {
		at = 0
	}
	for i := 0; i < len(label) && at+i < len(buf); i++ {
		buf[at+i] = label[i]
	}
}
