package usecase

import (
	"context"

	meter "airtime/internal/modules/meter/domain"
	"airtime/internal/modules/session/domain"
	sessiondto "airtime/internal/modules/session/dto"
	sessionin "airtime/internal/modules/session/port/in"
	"airtime/internal/modules/session/service"
	"airtime/internal/platform/clock"
)

type Interactor struct {
	meeting *service.MeetingService
	records *service.RecordService
	wall    clock.Clock
}

func NewInteractor(meeting *service.MeetingService, records *service.RecordService, wall clock.Clock) sessionin.Usecase {
	return &Interactor{meeting: meeting, records: records, wall: wall}
}

func (i *Interactor) Start() bool         { return i.meeting.Start() }
func (i *Interactor) Pause() bool         { return i.meeting.Pause() }
func (i *Interactor) ToggleRunning() bool { return i.meeting.ToggleRunning() }
func (i *Interactor) Reset()              { i.meeting.Reset() }
func (i *Interactor) Tick() bool          { return i.meeting.Tick() }

func (i *Interactor) SetOnsitePeople(n float64)        { i.meeting.SetOnsitePeople(n) }
func (i *Interactor) SetRemotePeople(n float64)        { i.meeting.SetRemotePeople(n) }
func (i *Interactor) SetRoomArea(m2 float64)           { i.meeting.SetRoomArea(m2) }
func (i *Interactor) SetO2ConsumptionRate(lpm float64) { i.meeting.SetO2ConsumptionRate(lpm) }
func (i *Interactor) SetHourlyCostPerPerson(v float64) { i.meeting.SetHourlyCostPerPerson(v) }
func (i *Interactor) SetCurrency(code string)          { i.meeting.SetCurrency(code) }

func (i *Interactor) AddNote(topic, text string) (sessiondto.NoteOutput, bool) {
	note, ok := i.meeting.AddNote(topic, text)
	if !ok {
		return sessiondto.NoteOutput{}, false
	}
	return noteOutput(note), true
}

// AddNoteLine accepts the "topic | text" form.
func (i *Interactor) AddNoteLine(raw string) (sessiondto.NoteOutput, bool) {
	return i.AddNote(domain.SplitNote(raw))
}

func (i *Interactor) ClearNotes() { i.meeting.ClearNotes() }

func (i *Interactor) Snapshot() sessiondto.Snapshot {
	return snapshotFromReading(i.meeting.Reading(), i.meeting.Notes(), i.wall.Now())
}

// Calculate evaluates the models for fixed inputs without touching the live meeting.
func (i *Interactor) Calculate(input sessiondto.CalculateInput) sessiondto.Snapshot {
	params := meter.NewParameters(
		input.OnsitePeople,
		input.RemotePeople,
		input.RoomAreaM2,
		input.CeilingHeightM,
		input.HourlyCostPerPerson,
		input.Currency,
		input.O2ConsumptionLpm,
	)
	elapsed := input.Elapsed
	if elapsed < 0 {
		elapsed = 0
	}
	reading := meter.Evaluate(meter.ClockState{Elapsed: elapsed}, params)
	return snapshotFromReading(reading, nil, i.wall.Now())
}

func (i *Interactor) PreviewReport(input sessiondto.ExportInput) string {
	report := i.records.BuildReport(input.Title, recordFromExport(input))
	return domain.RenderReportBody(report)
}

func (i *Interactor) Export(ctx context.Context, input sessiondto.ExportInput) (sessiondto.ExportOutput, error) {
	report, path, err := i.records.Export(ctx, input.Title, recordFromExport(input))
	if err != nil {
		return sessiondto.ExportOutput{}, err
	}
	return sessiondto.ExportOutput{ReportID: report.ID, Path: path}, nil
}

func (i *Interactor) Archive(ctx context.Context, snapshot sessiondto.Snapshot) (sessiondto.ArchiveOutput, error) {
	entry, err := i.records.Archive(ctx, recordFromSnapshot(snapshot))
	if err != nil {
		return sessiondto.ArchiveOutput{}, err
	}
	return archiveOutput(entry), nil
}

func (i *Interactor) ListArchived(ctx context.Context, limit int) ([]sessiondto.ArchiveOutput, error) {
	entries, err := i.records.List(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]sessiondto.ArchiveOutput, 0, len(entries))
	for _, e := range entries {
		out = append(out, archiveOutput(e))
	}
	return out, nil
}

func (i *Interactor) GetArchived(ctx context.Context, id string) (sessiondto.ArchiveOutput, error) {
	entry, err := i.records.Get(ctx, id)
	if err != nil {
		return sessiondto.ArchiveOutput{}, err
	}
	return archiveOutput(entry), nil
}
