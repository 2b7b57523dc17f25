package progress

import (
	"os"
	"path/filepath"
	"testing"
)

func tempPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "progress.json")
}

func TestLoadMissingFileStartsFresh(t *testing.T) {
	s := Load(tempPath(t))

	if s.IsComplete(1) {
		t.Errorf("fresh store must have no completed listings")
	}
	if snap := s.Snapshot(); snap.CompletedListings != 0 {
		t.Errorf("expected empty snapshot, got %+v", snap)
	}
}

func TestMarkCompletePersistsAcrossReload(t *testing.T) {
	path := tempPath(t)

	s := Load(path)
	if err := s.MarkComplete(7, 3); err != nil {
		t.Fatalf("mark complete: %v", err)
	}
	if err := s.MarkComplete(9, 0); err != nil {
		t.Fatalf("mark complete: %v", err)
	}

	reloaded := Load(path)
	if !reloaded.IsComplete(7) || !reloaded.IsComplete(9) {
		t.Errorf("completed listings lost across reload")
	}
	if reloaded.IsComplete(8) {
		t.Errorf("listing 8 was never completed")
	}

	snap := reloaded.Snapshot()
	if snap.CompletedListings != 2 {
		t.Errorf("expected 2 completed listings, got %d", snap.CompletedListings)
	}
	if snap.Session.MessagesSent != 3 {
		t.Errorf("expected 3 messages sent in session counters, got %d", snap.Session.MessagesSent)
	}
}

func TestMarkCompleteIsIdempotent(t *testing.T) {
	s := Load(tempPath(t))

	if err := s.MarkComplete(7, 2); err != nil {
		t.Fatalf("mark complete: %v", err)
	}
	if err := s.MarkComplete(7, 2); err != nil {
		t.Fatalf("repeat mark complete: %v", err)
	}

	snap := s.Snapshot()
	if snap.CompletedListings != 1 {
		t.Errorf("expected 1 completed listing, got %d", snap.CompletedListings)
	}
	if snap.Session.ListingsProcessed != 1 || snap.Session.MessagesSent != 2 {
		t.Errorf("counters double-counted: %+v", snap.Session)
	}
}

func TestLoadCorruptFileFailsOpen(t *testing.T) {
	path := tempPath(t)
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write corrupt file: %v", err)
	}

	s := Load(path)
	if s.IsComplete(1) {
		t.Errorf("corrupt file must yield an empty completed set")
	}

	// The store still works after the bad load.
	if err := s.MarkComplete(1, 0); err != nil {
		t.Fatalf("mark complete after corrupt load: %v", err)
	}
	if !Load(path).IsComplete(1) {
		t.Errorf("store did not recover from corrupt file")
	}
}

func TestRecordErrorAndSkippedCounters(t *testing.T) {
	path := tempPath(t)

	s := Load(path)
	if err := s.RecordError("send failed for reservation 5"); err != nil {
		t.Fatalf("record error: %v", err)
	}
	if err := s.NoteSkipped(); err != nil {
		t.Fatalf("note skipped: %v", err)
	}

	snap := Load(path).Snapshot()
	if len(snap.Session.Errors) != 1 {
		t.Errorf("expected 1 persisted error, got %v", snap.Session.Errors)
	}
	if snap.Session.ListingsSkipped != 1 {
		t.Errorf("expected 1 skipped listing, got %d", snap.Session.ListingsSkipped)
	}
}

func TestResetClearsStateAndFile(t *testing.T) {
	path := tempPath(t)

	s := Load(path)
	if err := s.MarkComplete(7, 1); err != nil {
		t.Fatalf("mark complete: %v", err)
	}
	if err := s.Reset(); err != nil {
		t.Fatalf("reset: %v", err)
	}

	if s.IsComplete(7) {
		t.Errorf("reset must clear the completed set")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("reset must delete the progress file, stat err: %v", err)
	}

	// Resetting an already-clean store is fine.
	if err := s.Reset(); err != nil {
		t.Errorf("second reset: %v", err)
	}
}
