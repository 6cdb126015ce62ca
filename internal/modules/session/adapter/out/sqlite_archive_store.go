package out

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"airtime/internal/modules/session/domain"
	apperrors "airtime/internal/platform/errors"

	_ "modernc.org/sqlite"
)

const defaultListLimit = 50

// fixed-width so archived_at sorts as text
const archivedAtLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SQLiteArchiveStore keeps one summary row per archived meeting. Notes are
// not stored, only their count.
type SQLiteArchiveStore struct {
	db *sql.DB
}

func NewSQLiteArchiveStore(dbPath string) (*SQLiteArchiveStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	store := &SQLiteArchiveStore{db: db}
	if err := store.ensureSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

func (s *SQLiteArchiveStore) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS meetings (
  id TEXT PRIMARY KEY,
  archived_at TEXT NOT NULL,
  elapsed_seconds REAL NOT NULL,
  onsite_people INTEGER NOT NULL,
  remote_people INTEGER NOT NULL,
  live_cost REAL NOT NULL,
  currency TEXT NOT NULL,
  oxygen_percent REAL NOT NULL,
  altitude_meters REAL NOT NULL,
  note_count INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_meetings_archived_at ON meetings(archived_at);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create meetings table: %w", err)
	}
	return nil
}

func (s *SQLiteArchiveStore) Append(ctx context.Context, entry domain.ArchiveEntry) error {
	const stmt = `
INSERT INTO meetings (id, archived_at, elapsed_seconds, onsite_people, remote_people, live_cost, currency, oxygen_percent, altitude_meters, note_count)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
`
	_, err := s.db.ExecContext(ctx, stmt,
		entry.ID,
		entry.ArchivedAt.UTC().Format(archivedAtLayout),
		entry.ElapsedSeconds,
		entry.OnsitePeople,
		entry.RemotePeople,
		entry.LiveCost,
		entry.CurrencyCode,
		entry.OxygenPercent,
		entry.AltitudeMeters,
		entry.NoteCount,
	)
	if err != nil {
		return fmt.Errorf("insert meeting: %w", err)
	}
	return nil
}

// List returns the newest meetings first; a non-positive limit uses the default.
func (s *SQLiteArchiveStore) List(ctx context.Context, limit int) ([]domain.ArchiveEntry, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	rows, err := s.db.QueryContext(ctx, `
SELECT id, archived_at, elapsed_seconds, onsite_people, remote_people, live_cost, currency, oxygen_percent, altitude_meters, note_count
FROM meetings ORDER BY archived_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list meetings: %w", err)
	}
	defer rows.Close()

	out := []domain.ArchiveEntry{}
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate meetings: %w", err)
	}
	return out, nil
}

func (s *SQLiteArchiveStore) Get(ctx context.Context, id string) (domain.ArchiveEntry, error) {
	row := s.db.QueryRowContext(ctx, `
SELECT id, archived_at, elapsed_seconds, onsite_people, remote_people, live_cost, currency, oxygen_percent, altitude_meters, note_count
FROM meetings WHERE id = ?`, id)
	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ArchiveEntry{}, fmt.Errorf("meeting %s: %w", id, apperrors.ErrNotFound)
	}
	return entry, err
}

func (s *SQLiteArchiveStore) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (domain.ArchiveEntry, error) {
	var (
		entry      domain.ArchiveEntry
		archivedAt string
	)
	err := row.Scan(
		&entry.ID,
		&archivedAt,
		&entry.ElapsedSeconds,
		&entry.OnsitePeople,
		&entry.RemotePeople,
		&entry.LiveCost,
		&entry.CurrencyCode,
		&entry.OxygenPercent,
		&entry.AltitudeMeters,
		&entry.NoteCount,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ArchiveEntry{}, err
		}
		return domain.ArchiveEntry{}, fmt.Errorf("scan meeting: %w", err)
	}
	entry.ArchivedAt, err = time.Parse(archivedAtLayout, archivedAt)
	if err != nil {
		return domain.ArchiveEntry{}, fmt.Errorf("parse archived_at: %w", err)
	}
	return entry, nil
}
