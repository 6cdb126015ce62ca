package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	meter "airtime/internal/modules/meter/domain"
	sessionadapter "airtime/internal/modules/session/adapter/out"
	sessiondto "airtime/internal/modules/session/dto"
	sessionin "airtime/internal/modules/session/port/in"
	"airtime/internal/modules/session/service"
	"airtime/internal/modules/session/usecase"
	apperrors "airtime/internal/platform/errors"
)

var t0 = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

type manualClock struct {
	now time.Time
}

func (c *manualClock) Now() time.Time { return c.now }

func (c *manualClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type seqID struct {
	prefix string
	n      int
}

func (s *seqID) New() string {
	s.n++
	return fmt.Sprintf("%s-%d", s.prefix, s.n)
}

type fixture struct {
	uc   sessionin.Usecase
	mono *manualClock
	dir  string
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	dir := t.TempDir()
	mono := &manualClock{now: t0}
	wall := &manualClock{now: t0}
	archive, err := sessionadapter.NewSQLiteArchiveStore(filepath.Join(dir, "airtime.db"))
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}
	t.Cleanup(func() { _ = archive.Close() })
	meeting := service.NewMeetingService(mono, &seqID{prefix: "note"}, nil, meter.DefaultParameters())
	records := service.NewRecordService(wall, &seqID{prefix: "rec"}, nil, sessionadapter.NewMarkdownReportStore(filepath.Join(dir, "reports")), archive)
	return fixture{uc: usecase.NewInteractor(meeting, records, wall), mono: mono, dir: dir}
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func TestMeetingOfTenMinutesWithDefaults(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	if !f.uc.Start() {
		t.Fatalf("start must report a transition")
	}
	for i := 0; i < 600; i++ {
		f.mono.Advance(time.Second)
		f.uc.Tick()
	}
	snap := f.uc.Snapshot()
	if !snap.Running {
		t.Fatalf("clock must be running")
	}
	if !approx(snap.ElapsedSeconds, 600) {
		t.Fatalf("expected 600s elapsed, got %v", snap.ElapsedSeconds)
	}
	if snap.TotalParticipants != 6 {
		t.Fatalf("expected 6 participants, got %d", snap.TotalParticipants)
	}
	// 6 people * 80/h * 1/6 h
	if !approx(snap.LiveCost, 80) {
		t.Fatalf("expected cost 80, got %v", snap.LiveCost)
	}
	if snap.FormattedCost != "USD 80.00" {
		t.Fatalf("unexpected formatted cost %q", snap.FormattedCost)
	}
	// 4 onsite * 0.6 l/min * 10 min
	if !approx(snap.ConsumedLiters, 24) {
		t.Fatalf("expected 24 liters consumed, got %v", snap.ConsumedLiters)
	}
	if snap.OxygenPercent >= 20.9 || snap.AltitudeMeters <= 0 || snap.DeadZone {
		t.Fatalf("unexpected oxygen figures: %+v", snap)
	}
}

func TestPauseFreezesElapsedAndResetZeroes(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.uc.Start()
	f.mono.Advance(10 * time.Second)
	f.uc.Tick()
	f.mono.Advance(5 * time.Second)
	if f.uc.ToggleRunning() {
		t.Fatalf("toggle from running must pause")
	}
	paused := f.uc.Snapshot().ElapsedSeconds
	if !approx(paused, 15) {
		t.Fatalf("pause must fold in time since the last tick, got %v", paused)
	}
	f.mono.Advance(time.Minute)
	if f.uc.Tick() {
		t.Fatalf("tick while paused must be a no-op")
	}
	if got := f.uc.Snapshot().ElapsedSeconds; !approx(got, 15) {
		t.Fatalf("elapsed moved while paused: %v", got)
	}
	if f.uc.Pause() {
		t.Fatalf("second pause must not transition")
	}
	f.uc.Reset()
	snap := f.uc.Snapshot()
	if snap.ElapsedSeconds != 0 || snap.Running || snap.LiveCost != 0 {
		t.Fatalf("reset must zero the meeting: %+v", snap)
	}
	if !approx(snap.OxygenFraction, meter.AtmosphericO2Fraction) {
		t.Fatalf("reset must restore atmospheric oxygen, got %v", snap.OxygenFraction)
	}
}

func TestShortStretchesBeforePauseStillCount(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	for i := 0; i < 4; i++ {
		f.uc.Start()
		f.mono.Advance(30 * time.Millisecond)
		f.uc.Pause()
	}
	if got := f.uc.Snapshot().ElapsedSeconds; !approx(got, 0.12) {
		t.Fatalf("expected 0.12s from four 30ms runs, got %v", got)
	}
}

func TestSettersCoerceAndFeedSnapshot(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.uc.SetOnsitePeople(-3)
	f.uc.SetRemotePeople(2.9)
	f.uc.SetRoomArea(1)
	f.uc.SetO2ConsumptionRate(0)
	f.uc.SetHourlyCostPerPerson(math.NaN())
	f.uc.SetCurrency(" eur ")
	snap := f.uc.Snapshot()
	if snap.OnsitePeople != 0 || snap.RemotePeople != 2 || snap.TotalParticipants != 2 {
		t.Fatalf("unexpected people: %+v", snap)
	}
	if snap.RoomAreaM2 != meter.MinRoomAreaM2 || snap.O2ConsumptionLpm != meter.MinO2ConsumptionLpm {
		t.Fatalf("unexpected floors: area %v o2 %v", snap.RoomAreaM2, snap.O2ConsumptionLpm)
	}
	if snap.HourlyCostPerPerson != meter.DefaultParameters().HourlyCostPerPerson {
		t.Fatalf("NaN hourly must fall back to default, got %v", snap.HourlyCostPerPerson)
	}
	if snap.CurrencyCode != "EUR" || !strings.HasPrefix(snap.FormattedCost, "EUR ") {
		t.Fatalf("unexpected currency: %q %q", snap.CurrencyCode, snap.FormattedCost)
	}
}

func TestNotesAreStampedNewestFirstAndCleared(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	if _, ok := f.uc.AddNote("  ", "\t"); ok {
		t.Fatalf("blank note must be rejected")
	}
	f.uc.Start()
	f.mono.Advance(30 * time.Second)
	f.uc.Tick()
	first, ok := f.uc.AddNote("", "kickoff")
	if !ok || first.Topic != "General" || !approx(first.TimestampSeconds, 30) {
		t.Fatalf("unexpected first note: %+v", first)
	}
	f.mono.Advance(90 * time.Second)
	f.uc.Tick()
	if _, ok := f.uc.AddNote(" Risks ", " vendor delay "); !ok {
		t.Fatalf("second note rejected")
	}
	snap := f.uc.Snapshot()
	if len(snap.Notes) != 2 || snap.Notes[0].Topic != "Risks" || snap.Notes[0].Text != "vendor delay" {
		t.Fatalf("notes must be newest first: %+v", snap.Notes)
	}
	line, ok := f.uc.AddNoteLine("Actions | book room")
	if !ok || line.Topic != "Actions" || line.Text != "book room" {
		t.Fatalf("unexpected note line: %+v", line)
	}
	if snap.ElapsedClock != "2:00" {
		t.Fatalf("unexpected clock %q", snap.ElapsedClock)
	}
	f.uc.ClearNotes()
	if n := len(f.uc.Snapshot().Notes); n != 0 {
		t.Fatalf("expected notes cleared, got %d", n)
	}
	if len(snap.Notes) != 2 {
		t.Fatalf("earlier snapshot must keep its notes")
	}
}

func TestCalculateLeavesLiveMeetingAlone(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	snap := f.uc.Calculate(sessiondto.CalculateInput{
		OnsitePeople:        4,
		RemotePeople:        2,
		RoomAreaM2:          30,
		CeilingHeightM:      3,
		HourlyCostPerPerson: 80,
		Currency:            "jpy",
		O2ConsumptionLpm:    0.6,
		Elapsed:             10 * time.Minute,
	})
	if !approx(snap.LiveCost, 80) || snap.FormattedCost != "JPY 80" {
		t.Fatalf("unexpected calculation: %v %q", snap.LiveCost, snap.FormattedCost)
	}
	if snap.Running {
		t.Fatalf("calculated snapshot must not be running")
	}
	if live := f.uc.Snapshot(); live.ElapsedSeconds != 0 {
		t.Fatalf("live meeting changed: %+v", live)
	}
}

func TestExportWritesReport(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.uc.Start()
	f.mono.Advance(2 * time.Minute)
	f.uc.Tick()
	f.uc.AddNote("Decisions", "ship friday")
	snap := f.uc.Snapshot()

	preview := f.uc.PreviewReport(sessiondto.ExportInput{Snapshot: snap})
	if !strings.HasPrefix(preview, "# Meeting report") || !strings.Contains(preview, "### [2:00] Decisions") {
		t.Fatalf("unexpected preview:\n%s", preview)
	}

	out, err := f.uc.Export(context.Background(), sessiondto.ExportInput{Title: "Weekly sync", Snapshot: snap})
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if out.ReportID == "" || !strings.HasSuffix(out.Path, "-weekly-sync.md") {
		t.Fatalf("unexpected export output: %+v", out)
	}
	raw, err := os.ReadFile(out.Path)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	if !strings.Contains(string(raw), "ship friday") {
		t.Fatalf("report must contain notes:\n%s", raw)
	}
}

func TestArchiveRoundTripAndEmptyMeeting(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	if _, err := f.uc.Archive(ctx, f.uc.Snapshot()); !errors.Is(err, apperrors.ErrNothingToArchive) {
		t.Fatalf("expected nothing to archive, got %v", err)
	}

	f.uc.Start()
	f.mono.Advance(10 * time.Minute)
	f.uc.Tick()
	f.uc.AddNote("", "done")
	archived, err := f.uc.Archive(ctx, f.uc.Snapshot())
	if err != nil {
		t.Fatalf("archive: %v", err)
	}
	if archived.NoteCount != 1 || archived.FormattedCost != "USD 80.00" {
		t.Fatalf("unexpected archive output: %+v", archived)
	}

	listed, err := f.uc.ListArchived(ctx, 10)
	if err != nil {
		t.Fatalf("list archived: %v", err)
	}
	if len(listed) != 1 || listed[0].ID != archived.ID {
		t.Fatalf("unexpected list: %+v", listed)
	}
	got, err := f.uc.GetArchived(ctx, archived.ID)
	if err != nil {
		t.Fatalf("get archived: %v", err)
	}
	if !approx(got.ElapsedSeconds, 600) || got.OnsitePeople != 4 || got.RemotePeople != 2 {
		t.Fatalf("unexpected archived entry: %+v", got)
	}
	if _, err := f.uc.GetArchived(ctx, " "); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	if _, err := f.uc.GetArchived(ctx, "missing"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
