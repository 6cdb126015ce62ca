package in

import (
	"context"

	"airtime/internal/modules/session/dto"
)

// Meeting carries the live widget intents. Implementations hold mutable
// state and must be driven from a single goroutine.
type Meeting interface {
	Start() bool
	Pause() bool
	ToggleRunning() bool
	Reset()
	Tick() bool

	SetOnsitePeople(n float64)
	SetRemotePeople(n float64)
	SetRoomArea(m2 float64)
	SetO2ConsumptionRate(lpm float64)
	SetHourlyCostPerPerson(amount float64)
	SetCurrency(code string)

	AddNote(topic, text string) (dto.NoteOutput, bool)
	AddNoteLine(raw string) (dto.NoteOutput, bool)
	ClearNotes()

	Snapshot() dto.Snapshot
}

// Records works on frozen snapshots only and may be called from any goroutine.
type Records interface {
	Calculate(input dto.CalculateInput) dto.Snapshot
	PreviewReport(input dto.ExportInput) string
	Export(ctx context.Context, input dto.ExportInput) (dto.ExportOutput, error)
	Archive(ctx context.Context, snapshot dto.Snapshot) (dto.ArchiveOutput, error)
	ListArchived(ctx context.Context, limit int) ([]dto.ArchiveOutput, error)
	GetArchived(ctx context.Context, id string) (dto.ArchiveOutput, error)
}

type Usecase interface {
	Meeting
	Records
}
