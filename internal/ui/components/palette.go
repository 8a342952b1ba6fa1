package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"gazesim/internal/ui/theme"
)

// PaletteSubmitMsg carries the confirmed command line.
type PaletteSubmitMsg struct{ Input string }

type PaletteCancelMsg struct{}

type hint struct {
	command string
	about   string
}

// hints mirror the commands handled in app/model.go runCommand.
var hints = []hint{
	{"session:start [seconds]", "start a tracking session"},
	{"results:refresh", "reload submitted results"},
	{"results:latest", "jump to the newest result"},
}

var (
	frameStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Peach).
			Background(theme.Mantle).
			Foreground(theme.Text).
			Padding(0, 1)

	aboutStyle = lipgloss.NewStyle().Foreground(theme.Subtext0)
)

// Palette is a single-line command prompt shown over the active tab.
type Palette struct {
	input   textinput.Model
	visible bool
	width   int
}

func NewPalette() Palette {
	ti := textinput.New()
	ti.Placeholder = "command"
	ti.CharLimit = 128
	return Palette{input: ti}
}

func (p Palette) Visible() bool { return p.visible }

func (p *Palette) Open() tea.Cmd {
	p.visible = true
	p.input.SetValue("")
	return p.input.Focus()
}

func (p *Palette) SetWidth(w int) { p.width = w }

func (p *Palette) close() {
	p.visible = false
	p.input.Blur()
}

func (p Palette) Update(msg tea.Msg) (Palette, tea.Cmd) {
	if !p.visible {
		return p, nil
	}
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEsc:
			p.close()
			return p, func() tea.Msg { return PaletteCancelMsg{} }
		case tea.KeyEnter:
			line := strings.TrimSpace(p.input.Value())
			p.close()
			return p, func() tea.Msg { return PaletteSubmitMsg{Input: line} }
		}
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

func (p Palette) View() string {
	if !p.visible {
		return ""
	}
	typed := strings.ToLower(strings.TrimSpace(p.input.Value()))
	lines := []string{theme.Title.Render("Command"), ": " + p.input.View()}
	for _, h := range hints {
		if typed != "" && !strings.Contains(h.command, typed) {
			continue
		}
		lines = append(lines, "  "+h.command+"  "+aboutStyle.Render(h.about))
	}
	w := p.width
	if w < 24 {
		w = 56
	}
	return frameStyle.Width(w - 2).Render(strings.Join(lines, "\n"))
}
