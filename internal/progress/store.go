package progress

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/mhuescar/hostify-broadcast-message/pkg/logger"
)

// SessionCounters are the running totals for the current campaign.
type SessionCounters struct {
	ListingsProcessed int       `json:"listings_processed"`
	ListingsSkipped   int       `json:"listings_skipped"`
	MessagesSent      int       `json:"messages_sent"`
	Errors            []string  `json:"errors"`
	StartedAt         time.Time `json:"started_at"`
}

// fileState is the on-disk shape. The whole object is rewritten after
// every state-changing event, never appended.
type fileState struct {
	CompletedListingIDs []int64         `json:"completed_listing_ids"`
	UpdatedAt           time.Time       `json:"updated_at"`
	Session             SessionCounters `json:"session"`
}

// Snapshot is a read-only view for status reporting.
type Snapshot struct {
	CompletedListings int             `json:"completedListings"`
	UpdatedAt         time.Time       `json:"updatedAt"`
	Session           SessionCounters `json:"session"`
}

// Store is the durable idempotency ledger for a campaign, keyed by
// listing id. The orchestrator is the only writer; the lock exists so the
// status endpoint can read concurrently.
type Store struct {
	mu        sync.RWMutex
	path      string
	completed map[int64]bool
	order     []int64
	updatedAt time.Time
	session   SessionCounters
}

// Load opens the ledger at path. A missing or corrupt file yields an
// empty completed set: the campaign fails open and treats every listing
// as unprocessed.
func Load(path string) *Store {
	s := &Store{
		path:      path,
		completed: make(map[int64]bool),
		session:   SessionCounters{StartedAt: time.Now()},
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warnf("Could not read progress file %s, starting fresh: %v", path, err)
		}
		return s
	}

	var state fileState
	if err := json.Unmarshal(data, &state); err != nil {
		logger.Warnf("Progress file %s is corrupt, starting fresh: %v", path, err)
		return s
	}

	for _, id := range state.CompletedListingIDs {
		if !s.completed[id] {
			s.completed[id] = true
			s.order = append(s.order, id)
		}
	}
	s.updatedAt = state.UpdatedAt
	s.session = state.Session
	if s.session.StartedAt.IsZero() {
		s.session.StartedAt = time.Now()
	}

	logger.Infof("Loaded progress from %s: %d listings already complete", path, len(s.order))

	return s
}

func (s *Store) IsComplete(listingID int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.completed[listingID]
}

// MarkComplete adds the listing to the completed set and persists
// immediately, so a crash after this call never re-processes the listing
// and a crash before it retries the listing from scratch. Idempotent.
func (s *Store) MarkComplete(listingID int64, messagesSent int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.completed[listingID] {
		return nil
	}

	s.completed[listingID] = true
	s.order = append(s.order, listingID)
	s.session.ListingsProcessed++
	s.session.MessagesSent += messagesSent

	return s.persist()
}

// NoteSkipped counts a listing skipped because it was already complete.
func (s *Store) NoteSkipped() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session.ListingsSkipped++

	return s.persist()
}

// RecordError appends to the session error log and persists. Errors never
// retroactively change a listing's completion status.
func (s *Store) RecordError(msg string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session.Errors = append(s.session.Errors, msg)

	return s.persist()
}

// Reset clears the completed set and deletes the persisted state. Only
// ever called on explicit operator request.
func (s *Store) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.completed = make(map[int64]bool)
	s.order = nil
	s.session = SessionCounters{StartedAt: time.Now()}
	s.updatedAt = time.Time{}

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove progress file %s: %w", s.path, err)
	}

	return nil
}

func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{
		CompletedListings: len(s.order),
		UpdatedAt:         s.updatedAt,
		Session:           s.session,
	}
	snap.Session.Errors = append([]string(nil), s.session.Errors...)

	return snap
}

// persist rewrites the whole file. Callers hold the write lock.
func (s *Store) persist() error {
	s.updatedAt = time.Now()

	state := fileState{
		CompletedListingIDs: append([]int64(nil), s.order...),
		UpdatedAt:           s.updatedAt,
		Session:             s.session,
	}
	if state.CompletedListingIDs == nil {
		state.CompletedListingIDs = []int64{}
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal progress state: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write progress file %s: %w", s.path, err)
	}

	return nil
}
