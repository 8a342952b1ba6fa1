package results

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	resultsdto "gazesim/internal/modules/results/dto"
	"gazesim/internal/ui/theme"
)

const listLimit = 50

type ResultsPort interface {
	List(ctx context.Context, limit int) ([]resultsdto.SubmissionOutput, error)
	Note(ctx context.Context, id string) (resultsdto.NoteOutput, error)
}

type LoadedMsg struct {
	Submissions []resultsdto.SubmissionOutput
	Err         error
}

type NoteLoadedMsg struct {
	Note resultsdto.NoteOutput
	Err  error
}

type submissionItem struct {
	sub resultsdto.SubmissionOutput
}

func (i submissionItem) Title() string {
	return i.sub.ReceivedAt.Local().Format("2006-01-02 15:04:05")
}

func (i submissionItem) Description() string {
	g := i.sub.GazeData
	return fmt.Sprintf("fix %d  sac %d  pupil %.1f", g.Fixations, g.Saccades, g.PupilDilation)
}

func (i submissionItem) FilterValue() string { return i.sub.ID }

type Model struct {
	port    ResultsPort
	list    list.Model
	detail  resultsdto.SubmissionOutput
	note    string
	preview viewport.Model
	spinner spinner.Model
	loading bool
	width   int
	height  int
}

func New(port ResultsPort) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Results"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)

	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().Background(theme.Mantle).Foreground(theme.Text).Padding(1)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	return Model{port: port, list: l, preview: vp, spinner: sp, loading: true}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.Reload(), m.spinner.Tick)
}

// Reload fetches the newest submissions.
func (m Model) Reload() tea.Cmd {
	port := m.port
	return func() tea.Msg {
		subs, err := port.List(context.Background(), listLimit)
		return LoadedMsg{Submissions: subs, Err: err}
	}
}

// SelectLatest moves the cursor to the newest submission.
func (m *Model) SelectLatest() tea.Cmd {
	if len(m.list.Items()) == 0 {
		return nil
	}
	m.list.Select(0)
	return m.loadNoteCmd(m.list.Items()[0].(submissionItem).sub)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case LoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.list.Title = "Results: " + msg.Err.Error()
			return m, nil
		}
		m.list.Title = "Results"
		items := make([]list.Item, len(msg.Submissions))
		for i, s := range msg.Submissions {
			items[i] = submissionItem{sub: s}
		}
		cmds = append(cmds, m.list.SetItems(items))
		if len(msg.Submissions) > 0 {
			m.list.Select(0)
			cmds = append(cmds, m.loadNoteCmd(msg.Submissions[0]))
		} else {
			m.detail = resultsdto.SubmissionOutput{}
			m.preview.SetContent(m.renderDetail())
		}
		return m, tea.Batch(cmds...)

	case NoteLoadedMsg:
		if msg.Err != nil {
			m.note = theme.Muted.Render("note unavailable: " + msg.Err.Error())
		} else {
			m.note = msg.Note.Body
		}
		m.preview.SetContent(m.renderDetail())
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	if m.loading {
		return m, nil
	}
	prev := m.list.Index()
	var lCmd tea.Cmd
	m.list, lCmd = m.list.Update(msg)
	cmds = append(cmds, lCmd)
	if m.list.Index() != prev {
		if item, ok := m.list.SelectedItem().(submissionItem); ok {
			cmds = append(cmds, m.loadNoteCmd(item.sub))
		}
	}
	var vCmd tea.Cmd
	m.preview, vCmd = m.preview.Update(msg)
	cmds = append(cmds, vCmd)
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading results…")
	}
	listW := m.width * 4 / 10
	listPane := lipgloss.NewStyle().Width(listW).Height(m.height).Render(m.list.View())
	detailPane := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Surface1).
		Background(theme.Mantle).
		Width(m.width - listW - 2).
		Height(m.height - 2).
		Render(m.preview.View())
	return lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane)
}

func (m *Model) resize() {
	listW := m.width * 4 / 10
	m.list.SetSize(listW, m.height)
	m.preview.Width = m.width - listW - 4
	m.preview.Height = m.height - 4
}

func (m *Model) loadNoteCmd(sub resultsdto.SubmissionOutput) tea.Cmd {
	m.detail = sub
	m.note = ""
	m.preview.SetContent(m.renderDetail())
	port := m.port
	return func() tea.Msg {
		note, err := port.Note(context.Background(), sub.ID)
		return NoteLoadedMsg{Note: note, Err: err}
	}
}

func (m Model) renderDetail() string {
	d := m.detail
	if d.ID == "" {
		return theme.Muted.Render("No submissions yet. Run a session from the Tracking tab.")
	}
	g := d.GazeData
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Submission "+d.ID) + "\n\n")
	sb.WriteString(theme.Muted.Render("received: ") + d.ReceivedAt.Local().Format("2006-01-02 15:04:05") + "\n")
	sb.WriteString(fmt.Sprintf("%s%d\n", theme.Muted.Render("fixations: "), g.Fixations))
	sb.WriteString(fmt.Sprintf("%s%d\n", theme.Muted.Render("saccades:  "), g.Saccades))
	sb.WriteString(fmt.Sprintf("%s%.1f\n", theme.Muted.Render("pupil:     "), g.PupilDilation))
	sb.WriteString(fmt.Sprintf("%seyes %d%%  mouth %d%%  objects %d%%\n",
		theme.Muted.Render("areas:     "), g.AttentionAreas.Eyes, g.AttentionAreas.Mouth, g.AttentionAreas.Objects))
	if d.NotePath != "" {
		sb.WriteString(theme.Muted.Render("note:      ") + d.NotePath + "\n")
	}
	if m.note != "" {
		sb.WriteString("\n" + m.note)
	}
	return sb.String()
}
