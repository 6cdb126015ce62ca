package in

import (
	"context"

	sessiondto "airtime/internal/modules/session/dto"
	sessionin "airtime/internal/modules/session/port/in"
)

// TUIHandler adapts the usecase to the terminal UI. Intent methods mutate the
// live meeting and must run on the bubbletea update goroutine; the record
// methods take snapshots and may run inside commands.
type TUIHandler struct {
	usecase sessionin.Usecase
}

func NewTUIHandler(usecase sessionin.Usecase) TUIHandler {
	return TUIHandler{usecase: usecase}
}

func (h TUIHandler) Start() bool         { return h.usecase.Start() }
func (h TUIHandler) Pause() bool         { return h.usecase.Pause() }
func (h TUIHandler) ToggleRunning() bool { return h.usecase.ToggleRunning() }
func (h TUIHandler) Reset()              { h.usecase.Reset() }
func (h TUIHandler) Tick() bool          { return h.usecase.Tick() }

func (h TUIHandler) SetOnsitePeople(n float64)        { h.usecase.SetOnsitePeople(n) }
func (h TUIHandler) SetRemotePeople(n float64)        { h.usecase.SetRemotePeople(n) }
func (h TUIHandler) SetRoomArea(m2 float64)           { h.usecase.SetRoomArea(m2) }
func (h TUIHandler) SetO2ConsumptionRate(lpm float64) { h.usecase.SetO2ConsumptionRate(lpm) }
func (h TUIHandler) SetHourlyCostPerPerson(v float64) { h.usecase.SetHourlyCostPerPerson(v) }
func (h TUIHandler) SetCurrency(code string)          { h.usecase.SetCurrency(code) }

func (h TUIHandler) AddNote(topic, text string) (sessiondto.NoteOutput, bool) {
	return h.usecase.AddNote(topic, text)
}

// AddNoteLine accepts the palette form "topic | text".
func (h TUIHandler) AddNoteLine(raw string) (sessiondto.NoteOutput, bool) {
	return h.usecase.AddNoteLine(raw)
}

func (h TUIHandler) ClearNotes() { h.usecase.ClearNotes() }

func (h TUIHandler) Snapshot() sessiondto.Snapshot { return h.usecase.Snapshot() }

func (h TUIHandler) PreviewReport(snapshot sessiondto.Snapshot) string {
	return h.usecase.PreviewReport(sessiondto.ExportInput{Snapshot: snapshot})
}

func (h TUIHandler) Export(ctx context.Context, snapshot sessiondto.Snapshot) (sessiondto.ExportOutput, error) {
	return h.usecase.Export(ctx, sessiondto.ExportInput{Snapshot: snapshot})
}

func (h TUIHandler) Archive(ctx context.Context, snapshot sessiondto.Snapshot) (sessiondto.ArchiveOutput, error) {
	return h.usecase.Archive(ctx, snapshot)
}

func (h TUIHandler) History(ctx context.Context, limit int) ([]sessiondto.ArchiveOutput, error) {
	return h.usecase.ListArchived(ctx, limit)
}
