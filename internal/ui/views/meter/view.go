package meter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	meterdomain "airtime/internal/modules/meter/domain"
	sessiondto "airtime/internal/modules/session/dto"
	"airtime/internal/ui/theme"
)

// Altitude above which the gauge turns yellow; most people notice thinner
// air from here on.
const warnAltitudeM = 2500

type Severity int

const (
	SeverityOk Severity = iota
	SeverityWarn
	SeverityDanger
)

func SeverityFor(s sessiondto.Snapshot) Severity {
	switch {
	case s.DeadZone:
		return SeverityDanger
	case s.AltitudeMeters >= warnAltitudeM:
		return SeverityWarn
	}
	return SeverityOk
}

// Model renders the live figures of the current snapshot. It holds no meeting
// state of its own.
type Model struct {
	snap     sessiondto.Snapshot
	oxygen   progress.Model
	altitude progress.Model
	width    int
	height   int
}

func New() Model {
	return Model{
		oxygen:   progress.New(progress.WithGradient(string(theme.Red), string(theme.Green)), progress.WithoutPercentage()),
		altitude: progress.New(progress.WithGradient(string(theme.Green), string(theme.Red)), progress.WithoutPercentage()),
	}
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if sz, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = sz.Width
		m.height = sz.Height
		w := sz.Width - 24
		if w < 10 {
			w = 10
		}
		if w > 60 {
			w = 60
		}
		m.oxygen.Width = w
		m.altitude.Width = w
	}
	return m, nil
}

func (m *Model) SetSnapshot(s sessiondto.Snapshot) { m.snap = s }

func (m Model) View() string {
	s := m.snap
	var sb strings.Builder

	clock := theme.Title.Render(s.ElapsedClock)
	state := theme.Muted.Render("paused")
	if s.Running {
		state = theme.Ok.Render("● running")
	}
	sb.WriteString(clock + "  " + state + "\n\n")

	sb.WriteString(label("cost") + theme.Hot.Render(s.FormattedCost) + "\n")
	sb.WriteString(label("people") + fmt.Sprintf("%d onsite + %d remote = %d", s.OnsitePeople, s.RemotePeople, s.TotalParticipants) + "\n")
	sb.WriteString(label("rate") + fmt.Sprintf("%.2f %s / person / hour", s.HourlyCostPerPerson, s.CurrencyCode) + "\n")
	sb.WriteString(label("room") + fmt.Sprintf("%.0f m² × %.1f m = %.0f m³", s.RoomAreaM2, s.CeilingHeightM, s.RoomVolumeM3) + "\n\n")

	sb.WriteString(label("oxygen") + m.oxygen.ViewAs(oxygenRatio(s.OxygenFraction)) + "  " +
		fmt.Sprintf("%.2f%%", s.OxygenPercent) + theme.Muted.Render(fmt.Sprintf("  %.1f l used at %.2f l/min", s.ConsumedLiters, s.O2ConsumptionLpm)) + "\n")
	sb.WriteString(label("altitude") + m.altitude.ViewAs(altitudeRatio(s.AltitudeMeters)) + "  " +
		severityStyle(SeverityFor(s)).Render(fmt.Sprintf("%.0f m", s.AltitudeMeters)))
	if s.DeadZone {
		sb.WriteString("  " + theme.Badge.Render("DEAD ZONE"))
	}
	sb.WriteString("\n\n" + theme.Muted.Render("space: start/pause  r: reset  :: palette"))

	return lipgloss.NewStyle().Padding(1, 2).Render(sb.String())
}

func label(s string) string {
	return theme.Muted.Render(fmt.Sprintf("%-9s", s))
}

func severityStyle(sev Severity) lipgloss.Style {
	switch sev {
	case SeverityDanger:
		return theme.Danger
	case SeverityWarn:
		return theme.Warn
	}
	return theme.Ok
}

func oxygenRatio(fraction float64) float64 {
	span := meterdomain.AtmosphericO2Fraction - meterdomain.MinO2Fraction
	return clamp01((fraction - meterdomain.MinO2Fraction) / span)
}

func altitudeRatio(m float64) float64 {
	return clamp01(m / meterdomain.SummitAltitudeM)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
