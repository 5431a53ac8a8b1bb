package ui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/uartium/uartium/internal/config"
	"github.com/uartium/uartium/internal/monitor"
	"github.com/uartium/uartium/internal/ui/clipboard"
	"github.com/uartium/uartium/internal/ui/layout"
	"github.com/uartium/uartium/internal/ui/panels"
	"github.com/uartium/uartium/internal/ui/styles"
)

const (
	panelLog      = 0
	panelTimeline = 1
	numPanels     = 2
)

const spinnerInterval = 200 * time.Millisecond

// TickMsg drives the status bar spinner and uptime while running.
type TickMsg struct{}

// StartRequestMsg asks the app to start the stream (sent at launch).
type StartRequestMsg struct{}

// severityKeys maps the number row to severity filter toggles.
var severityKeys = map[string]monitor.Severity{
	"1": monitor.Event,
	"2": monitor.Info,
	"3": monitor.Warning,
	"4": monitor.Error,
	"5": monitor.Debug,
}

type App struct {
	config       *config.Config
	session      *monitor.Session
	width        int
	height       int
	layout       layout.Layout
	focusedPanel int
	logView      panels.LogView
	timeline     panels.Timeline
	statusBar    panels.StatusBar
	helpOverlay  *panels.HelpOverlay
	keys         KeyMap
	ready        bool
	ticking      bool
}

func NewApp(cfg *config.Config, session *monitor.Session) App {
	lv := panels.NewLogView(session.Entries())
	lv.SetFocused(true)
	if cfg.UI.ShowTimestamps != nil {
		lv.SetShowTimestamps(*cfg.UI.ShowTimestamps)
	}
	if cfg.UI.FollowOnStart != nil {
		lv.SetFollow(*cfg.UI.FollowOnStart)
	}

	return App{
		config:    cfg,
		session:   session,
		logView:   lv,
		timeline:  panels.NewTimeline(session.Timeline()),
		statusBar: panels.NewStatusBar(session),
		keys:      DefaultKeyMap(),
	}
}

func (a App) Init() tea.Cmd {
	// Try to open the source immediately so a demo session is live on
	// launch; a failed serial open just flashes and stays stopped.
	return func() tea.Msg { return StartRequestMsg{} }
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.layout = layout.Calculate(msg.Width, msg.Height)
		a.propagateSizes()
		return a, nil

	case StartRequestMsg:
		return a.startStream()

	case TickMsg:
		if !a.session.Running() {
			a.ticking = false
			return a, nil
		}
		a.statusBar.Tick()
		return a, tickCmd()

	case monitor.LogLineMsg:
		a.logView.Refresh()
		return a, nil

	case monitor.SessionStoppedMsg:
		a.logView.SetActive(false)
		a.logView.Refresh()
		a.statusBar.SetFlashWithLevel(fmt.Sprintf("Connection lost: %v", msg.Err), panels.FlashError)
		return a, flashClearCmd()

	case monitor.TriggerFiredMsg:
		if len(msg.Events) > 0 {
			a.statusBar.SetFlashWithLevel(msg.Events[0].Message, panels.FlashWarning)
		}
		return a, flashClearCmd()

	case YankMsg:
		if err := clipboard.Copy(msg.Text); err != nil {
			a.statusBar.SetFlashWithLevel("Copy failed: "+err.Error(), panels.FlashError)
		} else {
			a.statusBar.SetFlashWithLevel("Copied to clipboard", panels.FlashSuccess)
		}
		return a, flashClearCmd()

	case ClearFlashMsg:
		a.statusBar.ClearFlash()
		return a, nil

	case CloseModalMsg:
		a.helpOverlay = nil
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	return a.routeMsg(msg)
}

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.helpOverlay != nil {
		var cmd tea.Cmd
		*a.helpOverlay, cmd = a.helpOverlay.Update(msg)
		return a, cmd
	}

	if msg.String() == "ctrl+c" {
		a.session.Stop()
		return a, tea.Quit
	}

	// Search input and copy mode swallow everything, including the
	// global bindings below.
	if a.focusedPanel == panelLog && a.logView.ConsumesKeys() {
		return a.routeMsg(msg)
	}

	switch {
	case key.Matches(msg, a.keys.Quit):
		a.session.Stop()
		return a, tea.Quit
	case key.Matches(msg, a.keys.Start):
		return a.startStream()
	case key.Matches(msg, a.keys.Stop):
		if a.session.Running() {
			a.session.Stop()
			a.logView.SetActive(false)
			a.logView.Refresh()
			a.statusBar.SetFlash("Stopped")
			return a, flashClearCmd()
		}
		return a, nil
	case key.Matches(msg, a.keys.Clear):
		a.session.Clear()
		a.logView.Refresh()
		a.statusBar.SetFlash("Cleared")
		return a, flashClearCmd()
	case key.Matches(msg, a.keys.FocusNext):
		a.focusedPanel = (a.focusedPanel + 1) % numPanels
		a.updateFocusState()
		return a, nil
	case key.Matches(msg, a.keys.Left):
		a.focusedPanel = panelLog
		a.updateFocusState()
		return a, nil
	case key.Matches(msg, a.keys.Right):
		a.focusedPanel = panelTimeline
		a.updateFocusState()
		return a, nil
	case key.Matches(msg, a.keys.Help):
		if a.helpOverlay == nil {
			a.helpOverlay = panels.NewHelpOverlay()
		} else {
			a.helpOverlay = nil
		}
		return a, nil
	}

	if sev, ok := severityKeys[msg.String()]; ok {
		shown := a.logView.ToggleSeverity(sev)
		a.timeline.SetSeverityVisible(sev, shown)
		if shown {
			a.statusBar.SetFlash(sev.String() + " shown")
		} else {
			a.statusBar.SetFlash(sev.String() + " hidden")
		}
		return a, flashClearCmd()
	}

	return a.routeMsg(msg)
}

func (a App) startStream() (tea.Model, tea.Cmd) {
	if a.session.Running() {
		return a, nil
	}
	if err := a.session.Start(); err != nil {
		a.statusBar.SetFlashWithLevel(err.Error(), panels.FlashError)
		return a, flashClearCmd()
	}
	a.logView.SetActive(true)
	a.logView.Refresh()
	a.statusBar.SetFlash("Monitoring " + a.session.Source().Describe())
	cmds := []tea.Cmd{flashClearCmd()}
	if !a.ticking {
		a.ticking = true
		cmds = append(cmds, tickCmd())
	}
	return a, tea.Batch(cmds...)
}

func (a App) routeMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	if a.focusedPanel == panelLog {
		var cmd tea.Cmd
		a.logView, cmd = a.logView.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a App) View() string {
	if !a.ready {
		return lipgloss.Place(a.width, a.height,
			lipgloss.Center, lipgloss.Center, "Loading...")
	}

	if a.layout.TooSmall {
		msg := fmt.Sprintf("Terminal too small (%d×%d)\nMinimum: %d×%d",
			a.width, a.height, layout.MinWidth, layout.MinHeight)
		return lipgloss.Place(a.width, a.height,
			lipgloss.Center, lipgloss.Center, msg)
	}

	row := lipgloss.JoinHorizontal(lipgloss.Top, a.logView.View(), a.timeline.View())
	full := lipgloss.JoinVertical(lipgloss.Left, row, a.statusBar.View())

	if a.helpOverlay != nil {
		full = lipgloss.Place(a.width, a.height,
			lipgloss.Center, lipgloss.Center, a.helpOverlay.View(),
			lipgloss.WithWhitespaceChars(" "),
			lipgloss.WithWhitespaceForeground(styles.TextDim),
		)
	}

	return full
}

// Session exposes the underlying session, used by main to wire the
// program handle after tea.NewProgram.
func (a App) Session() *monitor.Session {
	return a.session
}

func (a *App) propagateSizes() {
	l := a.layout
	a.logView.SetSize(l.LogViewWidth, l.LogViewHeight)
	a.timeline.SetSize(l.TimelineWidth, l.TimelineHeight)
	a.statusBar.SetSize(l.StatusBarWidth)
}

func (a *App) updateFocusState() {
	a.logView.SetFocused(a.focusedPanel == panelLog)
	a.timeline.SetFocused(a.focusedPanel == panelTimeline)
}

func tickCmd() tea.Cmd {
	return tea.Tick(spinnerInterval, func(time.Time) tea.Msg {
		return TickMsg{}
	})
}

func flashClearCmd() tea.Cmd {
	return tea.Tick(panels.FlashDuration(), func(time.Time) tea.Msg {
		return ClearFlashMsg{}
	})
}
