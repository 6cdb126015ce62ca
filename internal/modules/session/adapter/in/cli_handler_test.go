package in_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	meter "airtime/internal/modules/meter/domain"
	sessioninadapter "airtime/internal/modules/session/adapter/in"
	sessionadapter "airtime/internal/modules/session/adapter/out"
	sessiondto "airtime/internal/modules/session/dto"
	"airtime/internal/modules/session/service"
	"airtime/internal/modules/session/usecase"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type constID struct{}

func (constID) New() string { return "id-1" }

func TestCLIExportAttachesNotesOldestFirst(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	clk := fixedClock{now: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)}
	records := service.NewRecordService(clk, constID{}, nil, sessionadapter.NewMarkdownReportStore(dir), nil)
	meeting := service.NewMeetingService(clk, constID{}, nil, meter.DefaultParameters())
	cli := sessioninadapter.NewCLIHandler(usecase.NewInteractor(meeting, records, clk))

	out, err := cli.Export(context.Background(), "Standup", sessiondto.CalculateInput{
		OnsitePeople:        3,
		RoomAreaM2:          20,
		CeilingHeightM:      3,
		HourlyCostPerPerson: 60,
		Currency:            "usd",
		O2ConsumptionLpm:    0.6,
		Elapsed:             15 * time.Minute,
	}, []string{"Blockers | none", "   ", "follow up"})
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if filepath.Dir(out.Path) != filepath.Join(dir, "2026", "03", "02") {
		t.Fatalf("unexpected path %s", out.Path)
	}
	raw, err := os.ReadFile(out.Path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	body := string(raw)
	if !strings.Contains(body, "- Cost: USD 45.00") {
		t.Fatalf("unexpected cost line:\n%s", body)
	}
	blockers := strings.Index(body, "### [15:00] Blockers")
	general := strings.Index(body, "### [15:00] General")
	if blockers < 0 || general < 0 || blockers > general {
		t.Fatalf("notes must keep flag order:\n%s", body)
	}
}
