package app

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	sessiondto "airtime/internal/modules/session/dto"
	apperrors "airtime/internal/platform/errors"
	"airtime/internal/ui/components"
	"airtime/internal/ui/theme"
	historyview "airtime/internal/ui/views/history"
	meterview "airtime/internal/ui/views/meter"
	notesview "airtime/internal/ui/views/notes"
	reportview "airtime/internal/ui/views/report"
)

// ─── ports ───────────────────────────────────────────────────────────────────

// MeetingPort is the live meeting. Intent methods are only called from Update.
type MeetingPort interface {
	Start() bool
	Pause() bool
	ToggleRunning() bool
	Reset()
	Tick() bool

	SetOnsitePeople(n float64)
	SetRemotePeople(n float64)
	SetRoomArea(m2 float64)
	SetO2ConsumptionRate(lpm float64)
	SetHourlyCostPerPerson(v float64)
	SetCurrency(code string)

	AddNote(topic, text string) (sessiondto.NoteOutput, bool)
	AddNoteLine(raw string) (sessiondto.NoteOutput, bool)
	ClearNotes()
	Snapshot() sessiondto.Snapshot

	PreviewReport(snapshot sessiondto.Snapshot) string
	Export(ctx context.Context, snapshot sessiondto.Snapshot) (sessiondto.ExportOutput, error)
	Archive(ctx context.Context, snapshot sessiondto.Snapshot) (sessiondto.ArchiveOutput, error)
	History(ctx context.Context, limit int) ([]sessiondto.ArchiveOutput, error)
}

// Publisher receives every snapshot the UI renders.
type Publisher interface {
	Publish(snapshot sessiondto.Snapshot)
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabMeter tabID = iota
	tabNotes
	tabReport
	tabHistory
	tabCount
)

var tabLabels = [tabCount]string{
	"Meter", "Notes", "Report", "History",
}

// ─── async messages ───────────────────────────────────────────────────────────

// tickMsg belongs to the tick loop armed under epoch. Every start, pause and
// reset opens a new epoch, so at most one loop is ever live.
type tickMsg struct {
	epoch int
	at    time.Time
}

type exportedMsg struct {
	out sessiondto.ExportOutput
	err error
}

type archivedMsg struct {
	out sessiondto.ArchiveOutput
	err error
}

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Tab     key.Binding
	Toggle  key.Binding
	Reset   key.Binding
	Note    key.Binding
	Help    key.Binding
	Palette key.Binding
	Quit    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Toggle:  key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "start/pause")),
		Reset:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset clock")),
		Note:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new note")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Tab, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Toggle, k.Reset, k.Note},
		{k.Tab, k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It is the only caller of the meeting's
// intent methods; background commands only ever see snapshots.
type Model struct {
	meeting   MeetingPort
	publisher Publisher
	interval  time.Duration
	epoch     int
	snap      sessiondto.Snapshot

	meterView   meterview.Model
	notesView   notesview.Model
	reportView  reportview.Model
	historyView historyview.Model

	activeTab tabID
	keys      keyMap
	help      help.Model
	showHelp  bool
	palette   components.Palette
	status    string
	width     int
	height    int
}

// ─── constructor ─────────────────────────────────────────────────────────────

// NewModel wires the UI to a meeting. publisher may be nil.
func NewModel(meeting MeetingPort, publisher Publisher, interval time.Duration) Model {
	if interval <= 0 {
		interval = time.Second
	}
	m := Model{
		meeting:     meeting,
		publisher:   publisher,
		interval:    interval,
		meterView:   meterview.New(),
		notesView:   notesview.New(),
		reportView:  reportview.New(),
		historyView: historyview.New(historyPortBridge{p: meeting}),
		activeTab:   tabMeter,
		keys:        defaultKeys(),
		help:        help.New(),
		palette:     components.NewPalette(),
		status:      "ready",
	}
	m.refresh()
	return m
}

func (m Model) Init() tea.Cmd {
	return m.historyView.Init()
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// The palette takes keystrokes while open; ticks and async results
	// still reach the switch below.
	if key, ok := msg.(tea.KeyMsg); ok && m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(key)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()
		return m, nil

	case tickMsg:
		if msg.epoch != m.epoch || !m.snap.Running {
			// stale loop: drop without re-arming
			return m, nil
		}
		m.meeting.Tick()
		m.refresh()
		return m, m.tickCmd()

	case notesview.SubmitMsg:
		if note, ok := m.meeting.AddNote(msg.Topic, msg.Text); ok {
			m.status = fmt.Sprintf("note added at %s", note.Clock)
		} else {
			m.status = "empty note ignored"
		}
		m.refresh()
		return m, nil

	case exportedMsg:
		if msg.err != nil {
			m.status = "export failed: " + msg.err.Error()
		} else {
			m.status = "report written: " + msg.out.Path
		}
		return m, nil

	case archivedMsg:
		switch {
		case errors.Is(msg.err, apperrors.ErrNothingToArchive):
			m.status = "nothing to archive yet"
		case msg.err != nil:
			m.status = "archive failed: " + msg.err.Error()
		default:
			m.status = fmt.Sprintf("meeting archived (%s, %s)", msg.out.ElapsedClock, msg.out.FormattedCost)
			return m, m.historyView.Reload()
		}
		return m, nil

	case historyview.LoadedMsg:
		var cmd tea.Cmd
		m.historyView, cmd = m.historyView.Update(msg)
		return m, cmd

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

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

		// Yield to the active view while it takes free text.
		if m.subViewCapturing() {
			break
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
			m.refresh()
			return m, nil
		case "shift+tab":
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
			m.refresh()
			return m, nil
		case "?":
			m.showHelp = !m.showHelp
			return m, nil
		case ":":
			return m, m.palette.Open()
		case " ":
			return m, m.toggle()
		case "r":
			m.reset()
			return m, nil
		}
	}

	// Propagate the message to the active tab's sub-view.
	var tabCmd tea.Cmd
	switch m.activeTab {
	case tabMeter:
		m.meterView, tabCmd = m.meterView.Update(msg)
	case tabNotes:
		m.notesView, tabCmd = m.notesView.Update(msg)
	case tabReport:
		m.reportView, tabCmd = m.reportView.Update(msg)
	case tabHistory:
		m.historyView, tabCmd = m.historyView.Update(msg)
	}
	cmds = append(cmds, tabCmd)
	if m.palette.Visible() {
		var paletteCmd tea.Cmd
		m.palette, paletteCmd = m.palette.Update(msg)
		cmds = append(cmds, paletteCmd)
	}

	return m, tea.Batch(cmds...)
}

// ─── clock intents ───────────────────────────────────────────────────────────

func (m *Model) start() tea.Cmd {
	if !m.meeting.Start() {
		return nil
	}
	m.epoch++
	m.refresh()
	m.status = "clock running"
	return m.tickCmd()
}

func (m *Model) pause() {
	if m.meeting.Pause() {
		m.epoch++
		m.status = "clock paused"
	}
	m.refresh()
}

func (m *Model) toggle() tea.Cmd {
	if m.snap.Running {
		m.pause()
		return nil
	}
	return m.start()
}

func (m *Model) reset() {
	m.meeting.Reset()
	m.epoch++
	m.status = "clock reset"
	m.refresh()
}

func (m Model) tickCmd() tea.Cmd {
	epoch := m.epoch
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg{epoch: epoch, at: t}
	})
}

// refresh pulls a fresh snapshot and pushes it to the views and publisher.
func (m *Model) refresh() {
	m.snap = m.meeting.Snapshot()
	m.meterView.SetSnapshot(m.snap)
	m.notesView.SetNotes(m.snap.Notes)
	if m.activeTab == tabReport {
		m.reportView.SetMarkdown(m.meeting.PreviewReport(m.snap))
	}
	if m.publisher != nil {
		m.publisher.Publish(m.snap)
	}
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	tabBarH := lipgloss.Height(tabBar)
	statusBarH := lipgloss.Height(statusBar)

	contentH := m.height - tabBarH - statusBarH
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).
			Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		content = m.activeView()
	}

	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) activeView() string {
	switch m.activeTab {
	case tabMeter:
		return m.meterView.View()
	case tabNotes:
		return m.notesView.View()
	case tabReport:
		return m.reportView.View()
	case tabHistory:
		return m.historyView.View()
	}
	return ""
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		label := tabLabels[i]
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + label + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + label + " ")
		}
	}
	sep := theme.Muted.Render(" │ ")
	bar := "airtime  " + strings.Join(parts, sep)
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	if m.snap.Running {
		left = theme.Hot.Render("● "+m.snap.ElapsedClock+"  "+m.snap.FormattedCost) + "  " + left
	}
	if m.snap.DeadZone {
		left = theme.Badge.Render("DEAD ZONE") + " " + left
	}
	right := theme.Muted.Render("?:help  space:start/pause  tab:switch  :::palette  q:quit")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── palette execution ────────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	if strings.TrimSpace(input) == "" {
		return m, nil
	}
	parts := strings.Fields(input)
	arg := strings.TrimSpace(strings.TrimPrefix(input, parts[0]))

	switch parts[0] {
	case "start":
		return m, m.start()
	case "pause":
		m.pause()
		return m, nil
	case "reset":
		m.reset()
		return m, nil

	case "onsite", "remote", "area", "o2", "rate":
		if arg == "" {
			m.status = "usage: " + parts[0] + " <number>"
			return m, nil
		}
		v, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			m.status = "invalid number: " + arg
			return m, nil
		}
		m.applyNumber(parts[0], v)
		m.refresh()
		return m, nil

	case "currency":
		m.meeting.SetCurrency(arg)
		m.refresh()
		m.status = "currency " + m.snap.CurrencyCode
		return m, nil

	case "note":
		if note, ok := m.meeting.AddNoteLine(arg); ok {
			m.status = fmt.Sprintf("note added at %s", note.Clock)
		} else {
			m.status = "usage: note <topic> | <text>"
		}
		m.refresh()
		return m, nil

	case "notes:clear":
		m.meeting.ClearNotes()
		m.refresh()
		m.status = "notes cleared"
		return m, nil

	case "export":
		m.status = "exporting report…"
		return m, m.exportCmd(m.snap)

	case "archive":
		m.status = "archiving meeting…"
		return m, m.archiveCmd(m.snap)

	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, nil
}

func (m *Model) applyNumber(name string, v float64) {
	switch name {
	case "onsite":
		m.meeting.SetOnsitePeople(v)
	case "remote":
		m.meeting.SetRemotePeople(v)
	case "area":
		m.meeting.SetRoomArea(v)
	case "o2":
		m.meeting.SetO2ConsumptionRate(v)
	case "rate":
		m.meeting.SetHourlyCostPerPerson(v)
	}
	m.status = name + " updated"
}

// ─── helpers ─────────────────────────────────────────────────────────────────

// subViewCapturing reports whether the active tab is taking free text, in
// which case global key bindings must yield.
func (m Model) subViewCapturing() bool {
	switch m.activeTab {
	case tabNotes:
		return m.notesView.Editing()
	case tabHistory:
		return m.historyView.Filtering()
	}
	return false
}

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	m.meterView, _ = m.meterView.Update(sz)
	m.notesView, _ = m.notesView.Update(sz)
	m.reportView, _ = m.reportView.Update(sz)
	m.historyView, _ = m.historyView.Update(sz)
}

// ─── async commands ───────────────────────────────────────────────────────────

func (m Model) exportCmd(snapshot sessiondto.Snapshot) tea.Cmd {
	meeting := m.meeting
	return func() tea.Msg {
		out, err := meeting.Export(context.Background(), snapshot)
		return exportedMsg{out: out, err: err}
	}
}

func (m Model) archiveCmd(snapshot sessiondto.Snapshot) tea.Cmd {
	meeting := m.meeting
	return func() tea.Msg {
		out, err := meeting.Archive(context.Background(), snapshot)
		return archivedMsg{out: out, err: err}
	}
}

// ─── port bridges ─────────────────────────────────────────────────────────────

type historyPortBridge struct{ p MeetingPort }

func (b historyPortBridge) History(ctx context.Context, limit int) ([]sessiondto.ArchiveOutput, error) {
	return b.p.History(ctx, limit)
}
