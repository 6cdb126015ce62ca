package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/hashicorp/go-hclog"

	"airtime/internal/modules/session/domain"
	sessionout "airtime/internal/modules/session/port/out"
	"airtime/internal/platform/clock"
	apperrors "airtime/internal/platform/errors"
	"airtime/internal/platform/id"
)

const defaultReportTitle = "Meeting report"

// RecordService turns frozen meeting records into reports and archive rows.
// It holds no meeting state and is safe to call from background commands.
type RecordService struct {
	clock   clock.Clock
	idGen   id.Generator
	log     hclog.Logger
	reports sessionout.ReportStore
	archive sessionout.ArchiveStore
}

func NewRecordService(clk clock.Clock, idGen id.Generator, log hclog.Logger, reports sessionout.ReportStore, archive sessionout.ArchiveStore) *RecordService {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	return &RecordService{clock: clk, idGen: idGen, log: log.Named("records"), reports: reports, archive: archive}
}

// BuildReport assigns an id and timestamp without writing anything.
func (s *RecordService) BuildReport(title string, record domain.MeetingRecord) domain.Report {
	title = strings.TrimSpace(title)
	if title == "" {
		title = defaultReportTitle
	}
	return domain.Report{
		ID:          s.idGen.New(),
		Title:       title,
		GeneratedAt: s.clock.Now(),
		Record:      record,
	}
}

func (s *RecordService) Export(ctx context.Context, title string, record domain.MeetingRecord) (domain.Report, string, error) {
	if s.reports == nil {
		return domain.Report{}, "", fmt.Errorf("report store is not configured")
	}
	report := s.BuildReport(title, record)
	path, err := s.reports.Save(ctx, report)
	if err != nil {
		return domain.Report{}, "", err
	}
	s.log.Info("report exported", "id", report.ID, "path", path, "notes", len(record.Notes))
	return report, path, nil
}

func (s *RecordService) Archive(ctx context.Context, record domain.MeetingRecord) (domain.ArchiveEntry, error) {
	if s.archive == nil {
		return domain.ArchiveEntry{}, fmt.Errorf("archive store is not configured")
	}
	if record.Empty() {
		return domain.ArchiveEntry{}, apperrors.ErrNothingToArchive
	}
	entry := domain.ArchiveEntry{
		ID:             s.idGen.New(),
		ArchivedAt:     s.clock.Now(),
		ElapsedSeconds: record.ElapsedSeconds,
		OnsitePeople:   record.OnsitePeople,
		RemotePeople:   record.RemotePeople,
		LiveCost:       record.LiveCost,
		CurrencyCode:   record.CurrencyCode,
		OxygenPercent:  record.OxygenPercent,
		AltitudeMeters: record.AltitudeMeters,
		NoteCount:      len(record.Notes),
	}
	if err := s.archive.Append(ctx, entry); err != nil {
		return domain.ArchiveEntry{}, err
	}
	s.log.Info("meeting archived", "id", entry.ID, "elapsed", entry.ElapsedSeconds, "cost", entry.LiveCost)
	return entry, nil
}

func (s *RecordService) List(ctx context.Context, limit int) ([]domain.ArchiveEntry, error) {
	if s.archive == nil {
		return nil, fmt.Errorf("archive store is not configured")
	}
	return s.archive.List(ctx, limit)
}

func (s *RecordService) Get(ctx context.Context, id string) (domain.ArchiveEntry, error) {
	if s.archive == nil {
		return domain.ArchiveEntry{}, fmt.Errorf("archive store is not configured")
	}
	if strings.TrimSpace(id) == "" {
		return domain.ArchiveEntry{}, fmt.Errorf("archive id is required: %w", apperrors.ErrInvalidInput)
	}
	return s.archive.Get(ctx, id)
}
