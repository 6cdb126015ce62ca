package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"airtime/internal/ui/theme"
)

// PaletteSubmitMsg is emitted when the user confirms a command.
type PaletteSubmitMsg struct{ Input string }

// PaletteCancelMsg is emitted when the user presses esc.
type PaletteCancelMsg struct{}

const (
	maxHints   = 6
	maxHistory = 32
)

var (
	paletteStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Peach).
			Background(theme.Mantle).
			Foreground(theme.Text).
			Padding(0, 1)

	hintStyle  = lipgloss.NewStyle().Foreground(theme.Subtext0)
	usageStyle = lipgloss.NewStyle().Foreground(theme.Sapphire)
)

type Hint struct {
	Usage string
	Help  string
}

// Name is the command word of the hint.
func (h Hint) Name() string {
	name, _, _ := strings.Cut(h.Usage, " ")
	return name
}

// hints must stay in sync with the switch in app/model.go executePalette.
var paletteHints = []Hint{
	{"start", "start the clock"},
	{"pause", "pause the clock"},
	{"reset", "stop and zero the clock"},
	{"onsite <n>", "people in the room"},
	{"remote <n>", "people dialled in"},
	{"area <m2>", "room floor area"},
	{"o2 <lpm>", "oxygen use per person, l/min"},
	{"rate <amount>", "hourly cost per person"},
	{"currency <code>", "ISO 4217 code, e.g. EUR"},
	{"note <topic> | <text>", "add a note at the current time"},
	{"notes:clear", "delete every note"},
	{"export", "write a markdown report"},
	{"archive", "save a summary to history"},
}

// MatchHints returns the hints whose command starts with the first word of
// input, at most limit of them.
func MatchHints(input string, limit int) []Hint {
	fields := strings.Fields(strings.ToLower(input))
	var out []Hint
	for _, h := range paletteHints {
		if len(fields) > 0 && !strings.HasPrefix(h.Name(), fields[0]) {
			continue
		}
		out = append(out, h)
		if len(out) == limit {
			break
		}
	}
	return out
}

// Palette is a command-palette overlay backed by bubbles/textinput. It keeps
// the last submitted commands for recall with up/down.
type Palette struct {
	input   textinput.Model
	visible bool
	width   int
	history []string
	cursor  int
}

// NewPalette creates an inactive Palette ready to be opened.
func NewPalette() Palette {
	ti := textinput.New()
	ti.Placeholder = "type a command…"
	ti.CharLimit = 256
	return Palette{input: ti}
}

// Visible reports whether the palette is currently shown.
func (p Palette) Visible() bool { return p.visible }

// Open shows the palette, clears the input, and returns the focus command.
func (p *Palette) Open() tea.Cmd {
	p.visible = true
	p.cursor = len(p.history)
	p.input.SetValue("")
	return p.input.Focus()
}

// SetWidth sets the render width for the overlay.
func (p *Palette) SetWidth(w int) { p.width = w }

func (p Palette) Update(msg tea.Msg) (Palette, tea.Cmd) {
	if !p.visible {
		return p, nil
	}
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc":
			p.visible = false
			p.input.Blur()
			return p, func() tea.Msg { return PaletteCancelMsg{} }
		case "enter":
			val := strings.TrimSpace(p.input.Value())
			p.visible = false
			p.input.Blur()
			p.remember(val)
			return p, func() tea.Msg { return PaletteSubmitMsg{Input: val} }
		case "up":
			if p.cursor > 0 {
				p.cursor--
				p.input.SetValue(p.history[p.cursor])
				p.input.CursorEnd()
			}
			return p, nil
		case "down":
			if p.cursor < len(p.history) {
				p.cursor++
			}
			if p.cursor == len(p.history) {
				p.input.SetValue("")
			} else {
				p.input.SetValue(p.history[p.cursor])
			}
			p.input.CursorEnd()
			return p, nil
		case "tab":
			// complete the command word when exactly one hint matches
			if m := MatchHints(p.input.Value(), 2); len(m) == 1 && !strings.Contains(p.input.Value(), " ") {
				p.input.SetValue(m[0].Name() + " ")
				p.input.CursorEnd()
			}
			return p, nil
		}
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

func (p *Palette) remember(val string) {
	if val == "" {
		return
	}
	if n := len(p.history); n > 0 && p.history[n-1] == val {
		return
	}
	p.history = append(p.history, val)
	if len(p.history) > maxHistory {
		p.history = p.history[len(p.history)-maxHistory:]
	}
}

func (p Palette) View() string {
	if !p.visible {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Command Palette") + "\n")
	sb.WriteString(": " + p.input.View() + "\n")
	if matching := MatchHints(p.input.Value(), maxHints); len(matching) > 0 {
		sb.WriteString("\n")
		for _, h := range matching {
			sb.WriteString("  " + usageStyle.Render(h.Usage) + "  " + hintStyle.Render(h.Help) + "\n")
		}
	}

	w := p.width
	if w < 20 {
		w = 64
	}
	return paletteStyle.Width(w - 2).Render(sb.String())
}
