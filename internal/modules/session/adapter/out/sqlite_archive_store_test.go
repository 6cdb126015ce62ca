package out_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	sessionadapter "airtime/internal/modules/session/adapter/out"
	"airtime/internal/modules/session/domain"
	apperrors "airtime/internal/platform/errors"
)

func TestSQLiteArchiveStoreAppendListGet(t *testing.T) {
	t.Parallel()
	store, err := sessionadapter.NewSQLiteArchiveStore(filepath.Join(t.TempDir(), "state", "airtime.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()
	ctx := context.Background()

	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	entries := []domain.ArchiveEntry{
		{ID: "m1", ArchivedAt: base, ElapsedSeconds: 600, OnsitePeople: 4, RemotePeople: 2, LiveCost: 80, CurrencyCode: "USD", OxygenPercent: 20.4, AltitudeMeters: 170, NoteCount: 1},
		{ID: "m2", ArchivedAt: base.Add(500 * time.Millisecond), ElapsedSeconds: 60, OnsitePeople: 1, CurrencyCode: "EUR", OxygenPercent: 20.9},
		{ID: "m3", ArchivedAt: base.Add(time.Hour), ElapsedSeconds: 3600, OnsitePeople: 10, RemotePeople: 5, LiveCost: 1200, CurrencyCode: "USD", OxygenPercent: 18, AltitudeMeters: 1050, NoteCount: 4},
	}
	for _, e := range entries {
		if err := store.Append(ctx, e); err != nil {
			t.Fatalf("append %s: %v", e.ID, err)
		}
	}

	listed, err := store.List(ctx, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(listed) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(listed))
	}
	if listed[0].ID != "m3" || listed[1].ID != "m2" || listed[2].ID != "m1" {
		t.Fatalf("entries must be newest first, got %s %s %s", listed[0].ID, listed[1].ID, listed[2].ID)
	}

	limited, err := store.List(ctx, 1)
	if err != nil {
		t.Fatalf("list limited: %v", err)
	}
	if len(limited) != 1 || limited[0].ID != "m3" {
		t.Fatalf("unexpected limited list: %+v", limited)
	}

	got, err := store.Get(ctx, "m1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !got.ArchivedAt.Equal(base) || got.LiveCost != 80 || got.NoteCount != 1 || got.CurrencyCode != "USD" {
		t.Fatalf("unexpected entry: %+v", got)
	}
}

func TestSQLiteArchiveStoreGetMissingIsNotFound(t *testing.T) {
	t.Parallel()
	store, err := sessionadapter.NewSQLiteArchiveStore(filepath.Join(t.TempDir(), "airtime.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()
	_, err = store.Get(context.Background(), "nope")
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestSQLiteArchiveStoreDuplicateIDFails(t *testing.T) {
	t.Parallel()
	store, err := sessionadapter.NewSQLiteArchiveStore(filepath.Join(t.TempDir(), "airtime.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()
	entry := domain.ArchiveEntry{ID: "dup", ArchivedAt: time.Now(), CurrencyCode: "USD"}
	if err := store.Append(context.Background(), entry); err != nil {
		t.Fatalf("first append: %v", err)
	}
	if err := store.Append(context.Background(), entry); err == nil {
		t.Fatalf("expected primary key violation")
	}
}
