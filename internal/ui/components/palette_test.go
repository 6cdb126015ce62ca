package components_test

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"airtime/internal/ui/components"
)

func TestMatchHints(t *testing.T) {
	t.Parallel()
	if got := components.MatchHints("", 100); len(got) != 13 {
		t.Fatalf("empty input must list every hint, got %d", len(got))
	}
	got := components.MatchHints("no", 5)
	if len(got) != 2 || got[0].Name() != "note" || got[1].Name() != "notes:clear" {
		t.Fatalf("unexpected matches: %+v", got)
	}
	if got := components.MatchHints("onsite 12", 5); len(got) != 1 || got[0].Name() != "onsite" {
		t.Fatalf("arguments must not affect matching: %+v", got)
	}
	if got := components.MatchHints("zzz", 5); len(got) != 0 {
		t.Fatalf("expected no matches, got %+v", got)
	}
}

func submit(t *testing.T, p components.Palette, text string) components.Palette {
	t.Helper()
	p.Open()
	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	p, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	msg, ok := cmd().(components.PaletteSubmitMsg)
	if !ok || msg.Input != text {
		t.Fatalf("expected submit of %q, got %#v", text, msg)
	}
	return p
}

func TestPaletteRecallsHistory(t *testing.T) {
	t.Parallel()
	p := components.NewPalette()
	p = submit(t, p, "onsite 5")
	p = submit(t, p, "rate 90")

	p.Open()
	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyUp})
	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyUp})
	p, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if msg := cmd().(components.PaletteSubmitMsg); msg.Input != "onsite 5" {
		t.Fatalf("expected recalled command, got %q", msg.Input)
	}
	if p.Visible() {
		t.Fatalf("palette must close on submit")
	}
}

func TestPaletteTabCompletesCommand(t *testing.T) {
	t.Parallel()
	p := components.NewPalette()
	p.Open()
	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("cur")})
	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyTab})
	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("eur")})
	_, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if msg := cmd().(components.PaletteSubmitMsg); msg.Input != "currency eur" {
		t.Fatalf("unexpected completion %q", msg.Input)
	}
}

func TestPaletteEscCancels(t *testing.T) {
	t.Parallel()
	p := components.NewPalette()
	p.Open()
	p, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if p.Visible() {
		t.Fatalf("esc must hide the palette")
	}
	if _, ok := cmd().(components.PaletteCancelMsg); !ok {
		t.Fatalf("esc must emit a cancel message")
	}
}
