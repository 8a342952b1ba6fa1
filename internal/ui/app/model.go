package app

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"gazesim/internal/ui/components"
	"gazesim/internal/ui/theme"
	resultsview "gazesim/internal/ui/views/results"
	trackingview "gazesim/internal/ui/views/tracking"
)

type tabID int

const (
	tabTracking tabID = iota
	tabResults
	tabCount
)

var tabLabels = [tabCount]string{"Tracking", "Results"}

type keyMap struct {
	Tab     key.Binding
	Help    key.Binding
	Palette key.Binding
	Quit    key.Binding
	Start   key.Binding
	Refresh key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Start:   key.NewBinding(key.WithKeys("s", "enter"), key.WithHelp("s", "start session")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload results")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Start, k.Refresh},
		{k.Help, k.Palette, k.Quit},
	}
}

// Model is the root Bubble Tea model. It routes keys between the two tabs
// and always forwards page events to the tracking view, whichever tab is
// showing, so the event listener keeps running.
type Model struct {
	trackView   trackingview.Model
	resultsView resultsview.Model

	activeTab tabID
	keys      keyMap
	help      help.Model
	showHelp  bool
	palette   components.Palette
	status    string
	width     int
	height    int
}

func NewModel(tracking trackingview.TrackingPort, bridge *trackingview.Bridge, results resultsview.ResultsPort) Model {
	return Model{
		trackView:   trackingview.New(tracking, bridge),
		resultsView: resultsview.New(results),
		activeTab:   tabTracking,
		keys:        defaultKeys(),
		help:        help.New(),
		palette:     components.NewPalette(),
		status:      "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.trackView.Init(), m.resultsView.Init())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.palette.Visible() {
		if _, isKey := msg.(tea.KeyMsg); isKey {
			var cmd tea.Cmd
			m.palette, cmd = m.palette.Update(msg)
			return m, cmd
		}
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 72))
		m.help.Width = m.width
		sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
		m.trackView, _ = m.trackView.Update(sz)
		m.resultsView, _ = m.resultsView.Update(sz)
		return m, nil

	case trackingview.NavigatedMsg:
		var cmd tea.Cmd
		m.trackView, cmd = m.trackView.Update(msg)
		m.activeTab = tabResults
		m.status = "summary accepted"
		return m, tea.Batch(cmd, m.resultsView.Reload())

	case trackingview.AlertMsg:
		m.activeTab = tabTracking
		m.status = "submission failed"
		var cmd tea.Cmd
		m.trackView, cmd = m.trackView.Update(msg)
		return m, cmd

	case trackingview.CountdownMsg, trackingview.MarkerMsg, trackingview.ClearedMsg,
		trackingview.TriggerMsg, trackingview.PanelMsg, trackingview.StartedMsg:
		var cmd tea.Cmd
		m.trackView, cmd = m.trackView.Update(msg)
		return m, cmd

	case resultsview.LoadedMsg, resultsview.NoteLoadedMsg:
		var cmd tea.Cmd
		m.resultsView, cmd = m.resultsView.Update(msg)
		return m, cmd

	case components.PaletteSubmitMsg:
		return m.runCommand(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"
		return m, nil

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}
		// The notice blocks everything until dismissed.
		if m.trackView.Alerting() {
			var cmd tea.Cmd
			m.trackView, cmd = m.trackView.Update(msg)
			return m, cmd
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
			return m, nil
		case "shift+tab":
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
			return m, nil
		case "?":
			m.showHelp = true
			return m, nil
		case ":":
			return m, m.palette.Open()
		case "r":
			if m.activeTab == tabResults {
				return m, m.resultsView.Reload()
			}
		}
	}

	var cmd tea.Cmd
	// Anything else (spinner ticks, cursor blinks) goes everywhere; each
	// component ignores ids it does not own.
	if _, isKey := msg.(tea.KeyMsg); !isKey {
		cmds := make([]tea.Cmd, 0, 3)
		m.trackView, cmd = m.trackView.Update(msg)
		cmds = append(cmds, cmd)
		m.resultsView, cmd = m.resultsView.Update(msg)
		cmds = append(cmds, cmd)
		if m.palette.Visible() {
			m.palette, cmd = m.palette.Update(msg)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)
	}
	switch m.activeTab {
	case tabTracking:
		m.trackView, cmd = m.trackView.Update(msg)
	case tabResults:
		m.resultsView, cmd = m.resultsView.Update(msg)
	}
	return m, cmd
}

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	contentH := m.height - lipgloss.Height(tabBar) - lipgloss.Height(statusBar)
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH, lipgloss.Center, lipgloss.Center, m.palette.View())
	case m.activeTab == tabResults:
		content = m.resultsView.View()
	default:
		content = m.trackView.View()
	}
	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		style := theme.Muted
		if i == m.activeTab {
			style = theme.Hot
		}
		parts[i] = style.Render(" " + tabLabels[i] + " ")
	}
	bar := "gazesim  " + strings.Join(parts, theme.Muted.Render(" │ "))
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	right := theme.Muted.Render("?:help  tab:switch  :::palette  q:quit")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).
		Render(left+strings.Repeat(" ", gap)+right)
}

func (m Model) runCommand(input string) (tea.Model, tea.Cmd) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return m, nil
	}
	switch parts[0] {
	case "session:start":
		seconds := 0
		if len(parts) > 1 {
			n, err := strconv.Atoi(parts[1])
			if err != nil || n <= 0 || n >= 60 {
				m.status = "usage: session:start [1-59]"
				return m, nil
			}
			seconds = n
		}
		m.activeTab = tabTracking
		return m, m.trackView.Start(seconds)
	case "results:refresh":
		m.activeTab = tabResults
		return m, m.resultsView.Reload()
	case "results:latest":
		m.activeTab = tabResults
		return m, m.resultsView.SelectLatest()
	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, nil
}
