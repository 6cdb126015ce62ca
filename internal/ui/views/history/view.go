package history

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	sessiondto "airtime/internal/modules/session/dto"
	"airtime/internal/ui/theme"
)

const pageSize = 100

// ─── port ────────────────────────────────────────────────────────────────────

type Port interface {
	History(ctx context.Context, limit int) ([]sessiondto.ArchiveOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type LoadedMsg struct {
	Entries []sessiondto.ArchiveOutput
	Err     error
}

// ─── list item ───────────────────────────────────────────────────────────────

type entryItem struct {
	entry sessiondto.ArchiveOutput
}

func (i entryItem) Title() string {
	return fmt.Sprintf("%s  %s", i.entry.ArchivedAt.Local().Format("2006-01-02 15:04"), i.entry.FormattedCost)
}

func (i entryItem) Description() string {
	e := i.entry
	return fmt.Sprintf("%s  %d+%d people  %.2f%% O₂  %.0f m  %d notes",
		e.ElapsedClock, e.OnsitePeople, e.RemotePeople, e.OxygenPercent, e.AltitudeMeters, e.NoteCount)
}

func (i entryItem) FilterValue() string {
	return i.entry.ArchivedAt.Format("2006-01-02") + " " + i.entry.CurrencyCode
}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port    Port
	list    list.Model
	spinner spinner.Model
	loading bool
	err     error
	width   int
	height  int
}

func New(port Port) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Archived meetings"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	return Model{port: port, list: l, spinner: sp, loading: port != nil}
}

func (m Model) Init() tea.Cmd {
	if m.port == nil {
		return nil
	}
	return tea.Batch(m.Reload(), m.spinner.Tick)
}

// Reload fetches the archive again; the result arrives as a LoadedMsg.
func (m Model) Reload() tea.Cmd {
	if m.port == nil {
		return nil
	}
	port := m.port
	return func() tea.Msg {
		entries, err := port.History(context.Background(), pageSize)
		return LoadedMsg{Entries: entries, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width, msg.Height)

	case LoadedMsg:
		m.loading = false
		m.err = msg.Err
		if msg.Err != nil {
			return m, nil
		}
		items := make([]list.Item, len(msg.Entries))
		for i, e := range msg.Entries {
			items[i] = entryItem{entry: e}
		}
		cmds = append(cmds, m.list.SetItems(items))

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	if !m.loading {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	switch {
	case m.port == nil:
		return theme.Muted.Render("Archive is not configured.")
	case m.loading:
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading archive…")
	case m.err != nil:
		return theme.Danger.Render("archive: " + m.err.Error())
	case len(m.list.Items()) == 0:
		return theme.Muted.Render("No archived meetings yet. Use :archive to save one.")
	}
	return m.list.View()
}

// Filtering reports whether the list's search filter is currently active.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

// Len is the number of loaded entries.
func (m Model) Len() int { return len(m.list.Items()) }
