package notes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	sessiondto "airtime/internal/modules/session/dto"
	"airtime/internal/ui/theme"
)

// SubmitMsg asks the app to add a note. The app owns the note log; this view
// only collects input.
type SubmitMsg struct {
	Topic string
	Text  string
}

type field int

const (
	fieldNone field = iota
	fieldTopic
	fieldText
)

type Model struct {
	topic  textinput.Model
	text   textinput.Model
	focus  field
	notes  []sessiondto.NoteOutput
	list   viewport.Model
	width  int
	height int
}

func New() Model {
	topic := textinput.New()
	topic.Placeholder = "topic (optional)"
	topic.CharLimit = 80
	topic.Prompt = "topic › "

	text := textinput.New()
	text.Placeholder = "what was said or decided"
	text.CharLimit = 1000
	text.Prompt = "note  › "

	return Model{topic: topic, text: text, list: viewport.New(0, 0)}
}

func (m Model) Init() tea.Cmd { return nil }

// Editing reports whether an input has focus. The app yields its global keys
// while this is true.
func (m Model) Editing() bool { return m.focus != fieldNone }

// Focus puts the cursor in the topic field.
func (m *Model) Focus() tea.Cmd {
	m.focus = fieldTopic
	m.text.Blur()
	return m.topic.Focus()
}

func (m *Model) SetNotes(notes []sessiondto.NoteOutput) {
	m.notes = notes
	m.list.SetContent(m.renderNotes())
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.topic.Width = msg.Width - 12
		m.text.Width = msg.Width - 12
		m.list.Width = msg.Width
		m.list.Height = msg.Height - 5
		if m.list.Height < 1 {
			m.list.Height = 1
		}
		m.list.SetContent(m.renderNotes())
		return m, nil

	case tea.KeyMsg:
		if !m.Editing() {
			switch msg.String() {
			case "n", "enter":
				return m, m.Focus()
			}
			var cmd tea.Cmd
			m.list, cmd = m.list.Update(msg)
			return m, cmd
		}
		switch msg.String() {
		case "esc":
			m.blur()
			return m, nil
		case "tab", "shift+tab":
			return m, m.swapField()
		case "enter":
			if m.focus == fieldTopic {
				return m, m.swapField()
			}
			submit := SubmitMsg{Topic: m.topic.Value(), Text: m.text.Value()}
			m.topic.SetValue("")
			m.text.SetValue("")
			m.blur()
			return m, func() tea.Msg { return submit }
		}
	}

	var cmd tea.Cmd
	switch m.focus {
	case fieldTopic:
		m.topic, cmd = m.topic.Update(msg)
	case fieldText:
		m.text, cmd = m.text.Update(msg)
	}
	return m, cmd
}

func (m Model) View() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Notes") + theme.Muted.Render(fmt.Sprintf("  %d taken", len(m.notes))) + "\n")
	sb.WriteString(m.topic.View() + "\n")
	sb.WriteString(m.text.View() + "\n")
	if m.Editing() {
		sb.WriteString(theme.Muted.Render("enter: next/add  tab: switch field  esc: cancel") + "\n")
	} else {
		sb.WriteString(theme.Muted.Render("n: new note  ↑/↓: scroll") + "\n")
	}
	sb.WriteString(m.list.View())
	return sb.String()
}

func (m *Model) blur() {
	m.focus = fieldNone
	m.topic.Blur()
	m.text.Blur()
}

func (m *Model) swapField() tea.Cmd {
	if m.focus == fieldTopic {
		m.focus = fieldText
		m.topic.Blur()
		return m.text.Focus()
	}
	m.focus = fieldTopic
	m.text.Blur()
	return m.topic.Focus()
}

func (m Model) renderNotes() string {
	if len(m.notes) == 0 {
		return theme.Muted.Render("No notes yet.")
	}
	stamp := lipgloss.NewStyle().Foreground(theme.Sapphire)
	var sb strings.Builder
	for _, n := range m.notes {
		sb.WriteString(stamp.Render("["+n.Clock+"]") + " " + theme.Hot.Render(n.Topic) + "\n")
		if n.Text != "" {
			sb.WriteString("  " + n.Text + "\n")
		}
	}
	return sb.String()
}
