package in

import (
	"context"

	sessiondto "airtime/internal/modules/session/dto"
	sessionin "airtime/internal/modules/session/port/in"
)

type CLIHandler struct {
	usecase sessionin.Usecase
}

func NewCLIHandler(usecase sessionin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Calculate(input sessiondto.CalculateInput) sessiondto.Snapshot {
	return h.usecase.Calculate(input)
}

// Export writes a report for fixed inputs. Each note is "topic | text".
func (h CLIHandler) Export(ctx context.Context, title string, input sessiondto.CalculateInput, notes []string) (sessiondto.ExportOutput, error) {
	return h.usecase.Export(ctx, sessiondto.ExportInput{
		Title:     title,
		Snapshot:  h.usecase.Calculate(input),
		NoteLines: notes,
	})
}

func (h CLIHandler) ListArchived(ctx context.Context, limit int) ([]sessiondto.ArchiveOutput, error) {
	return h.usecase.ListArchived(ctx, limit)
}

func (h CLIHandler) GetArchived(ctx context.Context, id string) (sessiondto.ArchiveOutput, error) {
	return h.usecase.GetArchived(ctx, id)
}
