package store_test

import (
	"errors"
	"testing"
	"time"

	"github.com/AndersStabell/anderschess-backend/internal/store"
	"github.com/google/go-cmp/cmp"
)

func openTestArchive(t *testing.T) *store.Archive {
	t.Helper()
	archive, err := store.Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() {
		if err := archive.Close(); err != nil {
			t.Errorf("Close: %v", err)
		}
	})
	return archive
}

func TestSaveAndGet(t *testing.T) {
	archive := openTestArchive(t)
	record := store.GameRecord{
		ID:       "g1",
		White:    "alice",
		Black:    "bob",
		Moves:    []string{"f3", "e5", "g4", "Qh4#"},
		FinalFEN: "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3",
		Result:   "0-1",
		EndedAt:  time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	if err := archive.Save(record); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := archive.Get("g1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if diff := cmp.Diff(record, got); diff != "" {
		t.Fatalf("round trip (-want +got):\n%s", diff)
	}
}

func TestGetMissing(t *testing.T) {
	archive := openTestArchive(t)
	if _, err := archive.Get("nope"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("Get(missing) = %v, want ErrNotFound", err)
	}
}

func TestListIDs(t *testing.T) {
	archive := openTestArchive(t)
	for _, id := range []string{"a", "b", "c"} {
		if err := archive.Save(store.GameRecord{ID: id, Result: "*"}); err != nil {
			t.Fatalf("Save(%s): %v", id, err)
		}
	}
	ids, err := archive.ListIDs()
	if err != nil {
		t.Fatalf("ListIDs: %v", err)
	}
	if diff := cmp.Diff([]string{"a", "b", "c"}, ids); diff != "" {
		t.Fatalf("ids (-want +got):\n%s", diff)
	}
}
