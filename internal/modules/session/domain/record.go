package domain

import (
	"fmt"
	"strings"
	"time"
)

const SchemaVersion = 1

// MeetingRecord is a frozen copy of a meeting's figures, detached from the
// live state so it can cross goroutines and be written out.
type MeetingRecord struct {
	ElapsedSeconds      float64
	OnsitePeople        int
	RemotePeople        int
	RoomAreaM2          float64
	CeilingHeightM      float64
	RoomVolumeM3        float64
	O2ConsumptionLpm    float64
	HourlyCostPerPerson float64
	CurrencyCode        string
	OxygenPercent       float64
	ConsumedLiters      float64
	AltitudeMeters      float64
	DeadZone            bool
	LiveCost            float64
	FormattedCost       string
	Notes               []Note
}

// Empty reports whether nothing happened in the meeting yet.
func (r MeetingRecord) Empty() bool {
	return r.ElapsedSeconds <= 0 && len(r.Notes) == 0
}

type Report struct {
	ID          string
	Title       string
	GeneratedAt time.Time
	Record      MeetingRecord
}

type ArchiveEntry struct {
	ID             string
	ArchivedAt     time.Time
	ElapsedSeconds float64
	OnsitePeople   int
	RemotePeople   int
	LiveCost       float64
	CurrencyCode   string
	OxygenPercent  float64
	AltitudeMeters float64
	NoteCount      int
}

// FormatClock renders seconds as H:MM:SS, or M:SS under an hour.
func FormatClock(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	total := int64(seconds)
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

// RenderReportBody is the markdown body of a report; notes are listed in the
// order they were taken.
func RenderReportBody(r Report) string {
	rec := r.Record
	b := strings.Builder{}
	fmt.Fprintf(&b, "# %s\n\n", r.Title)
	fmt.Fprintf(&b, "- Duration: %s\n", FormatClock(rec.ElapsedSeconds))
	fmt.Fprintf(&b, "- Participants: %d onsite, %d remote\n", rec.OnsitePeople, rec.RemotePeople)
	fmt.Fprintf(&b, "- Cost: %s\n", rec.FormattedCost)
	fmt.Fprintf(&b, "- Room: %.0f m² × %.1f m (%.0f m³)\n", rec.RoomAreaM2, rec.CeilingHeightM, rec.RoomVolumeM3)
	fmt.Fprintf(&b, "- Oxygen: %.2f%% (%.1f l consumed)\n", rec.OxygenPercent, rec.ConsumedLiters)
	fmt.Fprintf(&b, "- Feels like: %.0f m", rec.AltitudeMeters)
	if rec.DeadZone {
		b.WriteString(" (dead zone)")
	}
	b.WriteString("\n\n## Notes\n\n")
	if len(rec.Notes) == 0 {
		b.WriteString("_No notes taken._\n")
		return b.String()
	}
	for i := len(rec.Notes) - 1; i >= 0; i-- {
		n := rec.Notes[i]
		fmt.Fprintf(&b, "### [%s] %s\n\n", FormatClock(n.TimestampSeconds), n.Topic)
		if n.Text != "" {
			b.WriteString(n.Text + "\n\n")
		}
	}
	return b.String()
}
