package report

import (
	"fmt"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"airtime/internal/ui/theme"
)

// Model previews the markdown report of the current meeting.
type Model struct {
	viewport viewport.Model
	renderer *glamour.TermRenderer
	markdown string
	width    int
	height   int
}

func New() Model {
	r, _ := glamour.NewTermRenderer(
		glamour.WithStylePath("dark"),
		glamour.WithWordWrap(0),
	)
	return Model{viewport: viewport.New(0, 0), renderer: r}
}

func (m Model) Init() tea.Cmd { return nil }

// SetMarkdown re-renders only when the source changed.
func (m *Model) SetMarkdown(md string) {
	if md == m.markdown {
		return
	}
	m.markdown = md
	m.viewport.SetContent(m.render())
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if sz, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = sz.Width
		m.height = sz.Height
		m.viewport.Width = sz.Width
		m.viewport.Height = sz.Height - 3
		if m.viewport.Height < 1 {
			m.viewport.Height = 1
		}
		if r, err := glamour.NewTermRenderer(
			glamour.WithStylePath("dark"),
			glamour.WithWordWrap(sz.Width),
		); err == nil {
			m.renderer = r
		}
		m.viewport.SetContent(m.render())
		return m, nil
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	header := theme.Title.Render("Report preview") + theme.Muted.Render("  :export writes it to disk  :archive saves a summary")
	footer := theme.Muted.Render(fmt.Sprintf("%.0f%%", m.viewport.ScrollPercent()*100))
	return lipgloss.JoinVertical(lipgloss.Left, header+"\n", m.viewport.View(), footer)
}

func (m Model) render() string {
	if m.markdown == "" {
		return theme.Muted.Render("(nothing to preview)")
	}
	if m.renderer != nil {
		if out, err := m.renderer.Render(m.markdown); err == nil {
			return out
		}
	}
	return m.markdown
}
