package tracking

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	trackingdto "gazesim/internal/modules/tracking/dto"
	"gazesim/internal/ui/theme"
)

type TrackingPort interface {
	Start(ctx context.Context, lengthSeconds int) (trackingdto.StartOutput, error)
	Snapshot(ctx context.Context) trackingdto.SnapshotOutput
}

type StartedMsg struct {
	Out trackingdto.StartOutput
	Err error
}

type Model struct {
	port       TrackingPort
	bridge     *Bridge
	spinner    spinner.Model
	countdown  string
	markers    int
	enabled    bool
	panel      bool
	submitting bool
	alert      string
	status     string
	width      int
	height     int
}

// New returns a view bound to port. A nil port means the simulator declined
// to attach; the view then only shows the empty page.
func New(port TrackingPort, bridge *Bridge) Model {
	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)
	return Model{
		port:      port,
		bridge:    bridge,
		spinner:   sp,
		countdown: "00:30",
		enabled:   port != nil,
	}
}

func (m Model) Init() tea.Cmd {
	if m.bridge == nil {
		return nil
	}
	return tea.Batch(m.Listen(), m.spinner.Tick)
}

// Listen waits for the next page event. It is re-issued after every event.
func (m Model) Listen() tea.Cmd {
	events := m.bridge.events
	return func() tea.Msg {
		return <-events
	}
}

// Alerting reports whether the blocking notice is open.
func (m Model) Alerting() bool { return m.alert != "" }

// Start is a no-op while the trigger is disabled.
func (m *Model) Start(lengthSeconds int) tea.Cmd {
	if m.port == nil || !m.enabled {
		return nil
	}
	m.enabled = false
	port := m.port
	return func() tea.Msg {
		out, err := port.Start(context.Background(), lengthSeconds)
		return StartedMsg{Out: out, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case StartedMsg:
		if msg.Err != nil {
			m.status = "start: " + msg.Err.Error()
			m.enabled = true
			return m, nil
		}
		m.status = "session " + shortID(msg.Out.SessionID)
		m.countdown = msg.Out.Countdown
		return m, nil

	case CountdownMsg:
		m.countdown = msg.Text
		return m, m.Listen()
	case MarkerMsg:
		m.markers = msg.Count
		return m, m.Listen()
	case ClearedMsg:
		m.markers = 0
		return m, m.Listen()
	case TriggerMsg:
		m.enabled = msg.Enabled
		return m, m.Listen()
	case PanelMsg:
		m.panel = msg.Visible
		m.submitting = msg.Visible
		return m, m.Listen()
	case AlertMsg:
		m.alert = msg.Message
		m.submitting = false
		return m, m.Listen()
	case NavigatedMsg:
		m.submitting = false
		m.status = "submitted, results at " + msg.Location
		return m, m.Listen()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.alert != "" {
			switch msg.String() {
			case "enter", "esc":
				m.alert = ""
			}
			return m, nil
		}
		switch msg.String() {
		case "s", "enter":
			return m, m.Start(0)
		}
	}
	return m, nil
}

func (m Model) View() string {
	if m.port == nil {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			theme.Muted.Render("no drawing surface"))
	}
	if m.alert != "" {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			theme.Alert.Render(m.alert+"\n\n"+theme.Muted.Render("enter: ok")))
	}

	frame := theme.Canvas
	if !m.enabled {
		frame = theme.CanvasActive
	}
	var grid strings.Builder
	for i, line := range m.bridge.Lines() {
		if i > 0 {
			grid.WriteByte('\n')
		}
		grid.WriteString(theme.Marker.Render(line))
	}
	canvas := frame.Render(grid.String())

	return lipgloss.JoinVertical(lipgloss.Left, m.header(), canvas, m.footer())
}

func (m Model) header() string {
	trigger := theme.Good.Render("[ start ]")
	if !m.enabled {
		trigger = theme.Muted.Render("[ start ]")
	}
	return fmt.Sprintf("%s  %s  %s", trigger, theme.Hot.Render(m.countdown),
		theme.Muted.Render(strconv.Itoa(m.markers)+" markers"))
}

func (m Model) footer() string {
	var parts []string
	if m.panel {
		line := theme.Title.Render("Results")
		if m.submitting {
			line += " " + m.spinner.View() + " submitting"
		}
		parts = append(parts, line)
	}
	if m.status != "" {
		parts = append(parts, theme.Muted.Render(m.status))
	}
	if m.enabled {
		parts = append(parts, theme.Muted.Render("s: start session"))
	}
	return strings.Join(parts, "\n")
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
