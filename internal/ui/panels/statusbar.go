package panels

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/uartium/uartium/internal/monitor"
	"github.com/uartium/uartium/internal/ui/styles"
	"github.com/uartium/uartium/internal/ui/text"
)

const flashDurationVal = 5 * time.Second

var statusSpinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Version is set via -ldflags at build time. Falls back to "dev".
var Version = "dev"

// FlashDuration returns how long the status bar flash is shown.
func FlashDuration() time.Duration { return flashDurationVal }

// FlashLevel controls the icon and color of a status bar flash message.
type FlashLevel int

const (
	FlashInfo    FlashLevel = iota // blue ●
	FlashSuccess                   // green ✓
	FlashWarning                   // yellow ⚠
	FlashError                     // red ✗
)

// StatusBar is the single-row summary at the bottom of the screen:
// run state, source description, counts, message rate, and uptime.
type StatusBar struct {
	width      int
	session    *monitor.Session
	flash      string
	flashLevel FlashLevel
	flashUntil time.Time
	tickStep   int
}

func NewStatusBar(session *monitor.Session) StatusBar {
	return StatusBar{session: session}
}

func (s StatusBar) View() string {
	sep := styles.TextDimStyle.Render(" │ ")
	running := s.session.Running()

	appName := "uartium " + Version
	if running {
		frame := statusSpinnerFrames[s.tickStep%len(statusSpinnerFrames)]
		appName = lipgloss.NewStyle().Foreground(styles.StatusRunning).Render(frame) + " " + appName
	}
	version := styles.TextSecondaryStyle.Render(appName)

	var state string
	if running {
		state = lipgloss.NewStyle().Foreground(styles.StatusRunning).Bold(true).Render("● RUN")
	} else {
		state = lipgloss.NewStyle().Foreground(styles.StatusStopped).Bold(true).Render("■ STOP")
	}

	source := styles.TextSecondaryStyle.Render(s.session.Source().Describe())

	snap := s.session.Stats().Snapshot()
	counts := fmt.Sprintf("%s %s",
		styles.TextSecondaryStyle.Render(fmt.Sprintf("%s msgs", text.FormatCount(snap.Total))),
		lipgloss.NewStyle().Foreground(styles.SeverityError).Render(fmt.Sprintf("%d err", snap.Errors)),
	)

	rate := styles.TextSecondaryStyle.Render(text.FormatRate(snap.Rate))

	left := " " + version + sep + state + sep + source + sep + counts + sep + rate

	if running {
		uptime := text.FormatElapsed(time.Since(s.session.StartedAt()))
		left += sep + styles.TextSecondaryStyle.Render("up "+uptime)
	}

	if s.flash != "" && time.Now().Before(s.flashUntil) {
		var icon string
		var color lipgloss.TerminalColor
		switch s.flashLevel {
		case FlashSuccess:
			icon, color = "✓", styles.SeverityEvent
		case FlashError:
			icon, color = "✗", styles.SeverityError
		case FlashWarning:
			icon, color = "⚠", styles.SeverityWarning
		default: // FlashInfo
			icon, color = "●", styles.StatusRunning
		}
		flashStr := lipgloss.NewStyle().Foreground(color).Bold(true).Render(icon + " " + s.flash)
		left += sep + flashStr
	}

	right := styles.TextSecondaryStyle.Render("?:help") + " "

	gap := s.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}

	return left + strings.Repeat(" ", gap) + right
}

func (s *StatusBar) SetFlash(msg string) {
	s.SetFlashWithLevel(msg, FlashInfo)
}

func (s *StatusBar) SetFlashWithLevel(msg string, level FlashLevel) {
	s.flash = msg
	s.flashLevel = level
	s.flashUntil = time.Now().Add(flashDurationVal)
}

func (s *StatusBar) ClearFlash() {
	s.flash = ""
	s.flashLevel = FlashInfo
	s.flashUntil = time.Time{}
}

func (s *StatusBar) SetSize(w int) {
	s.width = w
}

// Tick advances the animation frame for the status bar spinner.
func (s *StatusBar) Tick() {
	s.tickStep++
}
