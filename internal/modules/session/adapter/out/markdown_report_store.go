package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"airtime/internal/modules/session/domain"
	sessionout "airtime/internal/modules/session/port/out"
	"airtime/internal/platform/markdown"
	"airtime/internal/platform/slug"
)

type MarkdownReportStore struct {
	reportDir string
}

func NewMarkdownReportStore(reportDir string) sessionout.ReportStore {
	return &MarkdownReportStore{reportDir: reportDir}
}

func (s *MarkdownReportStore) Save(_ context.Context, report domain.Report) (string, error) {
	date := report.GeneratedAt
	dir := filepath.Join(s.reportDir, date.Format("2006"), date.Format("01"), date.Format("02"))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create report dir: %w", err)
	}
	name := fmt.Sprintf("%s-%s.md", date.Format("150405"), slug.Make(report.Title))
	path := filepath.Join(dir, name)

	rec := report.Record
	meta := map[string]any{
		"schema_version":         domain.SchemaVersion,
		"id":                     report.ID,
		"title":                  report.Title,
		"generated_at":           date.Format(time.RFC3339),
		"elapsed_seconds":        rec.ElapsedSeconds,
		"onsite_people":          rec.OnsitePeople,
		"remote_people":          rec.RemotePeople,
		"room_area_m2":           rec.RoomAreaM2,
		"ceiling_height_m":       rec.CeilingHeightM,
		"o2_consumption_lpm":     rec.O2ConsumptionLpm,
		"hourly_cost_per_person": rec.HourlyCostPerPerson,
		"currency":               rec.CurrencyCode,
		"live_cost":              rec.LiveCost,
		"oxygen_percent":         rec.OxygenPercent,
		"altitude_meters":        rec.AltitudeMeters,
		"dead_zone":              rec.DeadZone,
		"note_count":             len(rec.Notes),
	}
	rendered, err := markdown.RenderFrontmatter(meta, domain.RenderReportBody(report))
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(rendered), 0o644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	return path, nil
}
