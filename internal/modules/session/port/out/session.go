package out

import (
	"context"

	"airtime/internal/modules/session/domain"
)

type ReportStore interface {
	Save(ctx context.Context, report domain.Report) (string, error)
}

type ArchiveStore interface {
	Append(ctx context.Context, entry domain.ArchiveEntry) error
	List(ctx context.Context, limit int) ([]domain.ArchiveEntry, error)
	Get(ctx context.Context, id string) (domain.ArchiveEntry, error)
}
