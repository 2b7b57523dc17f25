package service

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"github.com/mhuescar/hostify-broadcast-message/internal/domain"
	"github.com/mhuescar/hostify-broadcast-message/internal/template"
	"github.com/mhuescar/hostify-broadcast-message/pkg/hostify"
	"github.com/mhuescar/hostify-broadcast-message/pkg/logger"
)

// Small package-internal interfaces so the orchestrator is testable with
// in-memory fakes.

type catalogResolver interface {
	Resolve(ctx context.Context) (*domain.Catalog, error)
}

type reservationCollector interface {
	Collect(ctx context.Context, listingID int64) ([]domain.Reservation, error)
}

type messageSender interface {
	SendMessage(ctx context.Context, threadID int64, message string) (*hostify.SendResponse, error)
}

type progressLedger interface {
	IsComplete(listingID int64) bool
	MarkComplete(listingID int64, messagesSent int) error
	NoteSkipped() error
	RecordError(msg string) error
}

type linkResolver interface {
	SignupLink(ctx context.Context, reservationID int64) (string, bool)
	Available() bool
}

type messageLog interface {
	Record(ctx context.Context, rec *domain.MessageRecord) error
}

// BroadcastService drives a campaign across the listing catalog: for each
// listing not yet marked complete it collects eligible reservations,
// renders the template per reservation, sends, and marks the listing
// complete. Completion means "attempted", not "fully succeeded"; the
// error log is the record of failures inside a completed listing.
type BroadcastService struct {
	resolver   catalogResolver
	collector  reservationCollector
	sender     messageSender
	progress   progressLedger
	links      linkResolver
	messageLog messageLog // optional, nil disables the audit trail

	// Inter-listing pacing. Burst 1 lets the first listing start
	// immediately and spaces every later one; nothing waits after the
	// final listing.
	limiter *rate.Limiter
}

func NewBroadcastService(
	resolver catalogResolver,
	collector reservationCollector,
	sender messageSender,
	progressStore progressLedger,
	links linkResolver,
	msgLog messageLog,
	pacing time.Duration,
) *BroadcastService {
	var limiter *rate.Limiter
	if pacing > 0 {
		limiter = rate.NewLimiter(rate.Every(pacing), 1)
	}

	return &BroadcastService{
		resolver:   resolver,
		collector:  collector,
		sender:     sender,
		progress:   progressStore,
		links:      links,
		messageLog: msgLog,
		limiter:    limiter,
	}
}

// ResolveCatalog exposes discovery separately so a caller can preview a
// campaign and then pass the same catalog to BroadcastAll, avoiding a
// second discovery pass.
func (s *BroadcastService) ResolveCatalog(ctx context.Context) (*domain.Catalog, error) {
	return s.resolver.Resolve(ctx)
}

// BroadcastAll runs the progress-tracked campaign over the full catalog.
// A nil catalog triggers discovery. Listings already in the progress
// ledger are skipped without any network traffic, which is what makes a
// killed run resumable.
func (s *BroadcastService) BroadcastAll(ctx context.Context, tpl string, catalog *domain.Catalog) (*domain.BroadcastResult, error) {
	result := s.newResult()

	if catalog == nil {
		resolved, err := s.resolver.Resolve(ctx)
		if err != nil {
			cerr := &domain.CampaignError{Kind: domain.ErrDiscovery, Err: err}
			result.Errors = append(result.Errors, cerr.Error())
			result.FinishedAt = time.Now()
			return result, cerr
		}
		catalog = resolved
	}

	result.ListingsDiscovered = catalog.Size()
	logger.Infof("Campaign started: %d listings in catalog", result.ListingsDiscovered)

	for i := range catalog.Listings {
		listing := catalog.Listings[i]

		if s.progress.IsComplete(listing.ID) {
			result.ListingsSkipped++
			if err := s.progress.NoteSkipped(); err != nil {
				logger.Warnf("Could not persist skip counter: %v", err)
			}
			logger.Debugf("Listing %d already complete, skipping", listing.ID)
			continue
		}

		if s.limiter != nil {
			if err := s.limiter.Wait(ctx); err != nil {
				result.FinishedAt = time.Now()
				return result, fmt.Errorf("campaign interrupted: %w", err)
			}
		}

		sent, bookings, err := s.processListing(ctx, listing.ID, tpl, result, true)
		result.TotalBookings += bookings
		result.MessagesSent += sent
		if err != nil {
			// Shutdown mid-listing. The listing stays incomplete so the
			// next run retries it whole; a listing is only ever marked
			// complete after every reservation got a real attempt.
			result.FinishedAt = time.Now()
			return result, fmt.Errorf("campaign interrupted: %w", err)
		}
		result.ListingsProcessed++

		// Marked unconditionally after all reservations were attempted,
		// success or partial failure. Persisted immediately so a crash
		// from here on never re-processes this listing.
		if err := s.progress.MarkComplete(listing.ID, sent); err != nil {
			logger.Errorf("Could not persist completion of listing %d: %v", listing.ID, err)
		}
	}

	result.FinishedAt = time.Now()
	logger.Infof("Campaign done: %d processed, %d skipped, %d messages sent, %d errors",
		result.ListingsProcessed, result.ListingsSkipped, result.MessagesSent, len(result.Errors))

	return result, nil
}

// BroadcastListing messages every eligible reservation of one listing,
// ignoring and not touching campaign progress.
func (s *BroadcastService) BroadcastListing(ctx context.Context, listingID int64, tpl string) (*domain.BroadcastResult, error) {
	result := s.newResult()
	result.ListingsDiscovered = 1

	// Errors stay in the result only; one-off broadcasts do not touch
	// the campaign session ledger.
	sent, bookings, err := s.processListing(ctx, listingID, tpl, result, false)
	result.TotalBookings = bookings
	result.MessagesSent = sent
	result.ListingsProcessed = 1
	result.FinishedAt = time.Now()
	if err != nil {
		return result, fmt.Errorf("broadcast interrupted: %w", err)
	}

	return result, nil
}

// PreviewResult shows what a broadcast against one listing would send.
type PreviewResult struct {
	ListingID     int64                `json:"listingId"`
	TotalBookings int                  `json:"totalBookings"`
	Preview       string               `json:"preview,omitempty"`
	Deliverable   bool                 `json:"deliverable"`
	Reservations  []domain.Reservation `json:"reservations"`
}

// Preview collects a listing's eligible reservations and renders the
// template against the first one without sending anything.
func (s *BroadcastService) Preview(ctx context.Context, listingID int64, tpl string) (*PreviewResult, error) {
	reservations, err := s.collector.Collect(ctx, listingID)
	if err != nil {
		return nil, &domain.CampaignError{Kind: domain.ErrCollection, ListingID: listingID, Err: err}
	}

	preview := &PreviewResult{
		ListingID:     listingID,
		TotalBookings: len(reservations),
		Reservations:  reservations,
	}

	if len(reservations) > 0 {
		rendered, ok := template.Render(ctx, tpl, &reservations[0], s.links)
		preview.Preview = rendered
		preview.Deliverable = ok
	}

	return preview, nil
}

// processListing attempts delivery to every eligible reservation of one
// listing. Undeliverable renders are skipped silently; send failures are
// recorded and the loop continues. Returns messages sent, bookings seen
// and a non-nil error only when the context was cancelled before every
// reservation got its attempt.
func (s *BroadcastService) processListing(ctx context.Context, listingID int64, tpl string, result *domain.BroadcastResult, persist bool) (sent, bookings int, _ error) {
	reservations, err := s.collector.Collect(ctx, listingID)
	if err != nil {
		// End-of-data for this listing; whatever was collected before
		// the failure is still processed.
		s.recordError(result, &domain.CampaignError{Kind: domain.ErrCollection, ListingID: listingID, Err: err}, persist)
	}

	bookings = len(reservations)
	if bookings == 0 {
		logger.Infof("Listing %d: no eligible reservations", listingID)
		return 0, 0, ctx.Err()
	}

	for i := range reservations {
		if err := ctx.Err(); err != nil {
			return sent, bookings, err
		}

		r := &reservations[i]

		rendered, ok := template.Render(ctx, tpl, r, s.links)
		if !ok {
			// Render gate: no valid check-in link. Not a send, not an
			// error; the rest of the listing still attempts delivery.
			logger.Infof("Skipping reservation %d: no check-in link available", r.ID)
			continue
		}

		if s.deliver(ctx, listingID, r, rendered, result, persist) {
			sent++
		}
	}

	// A cancellation during the final send also leaves that reservation
	// without a real attempt.
	return sent, bookings, ctx.Err()
}

// deliver sends one rendered message and records the attempt.
func (s *BroadcastService) deliver(ctx context.Context, listingID int64, r *domain.Reservation, rendered string, result *domain.BroadcastResult, persist bool) bool {
	threadID := r.ThreadID()
	if threadID == 0 {
		s.recordError(result, &domain.CampaignError{
			Kind: domain.ErrSend, ListingID: listingID, ReservationID: r.ID,
			Err: fmt.Errorf("no message thread on reservation"),
		}, persist)
		return false
	}

	_, err := s.sender.SendMessage(ctx, threadID, rendered)
	if err != nil {
		if ctx.Err() != nil {
			// The send died because shutdown cancelled the context, not
			// because delivery failed. Not logged as a send error: the
			// whole listing is retried on the next run.
			return false
		}
		s.recordError(result, &domain.CampaignError{
			Kind: domain.ErrSend, ListingID: listingID, ReservationID: r.ID, Err: err,
		}, persist)
		s.logAttempt(ctx, listingID, r, threadID, rendered, domain.StatusFailed, err)
		return false
	}

	logger.Infof("Message sent to reservation %d (thread %d)", r.ID, threadID)
	s.logAttempt(ctx, listingID, r, threadID, rendered, domain.StatusSent, nil)

	return true
}

func (s *BroadcastService) logAttempt(ctx context.Context, listingID int64, r *domain.Reservation, threadID int64, content string, status domain.MessageStatus, sendErr error) {
	if s.messageLog == nil {
		return
	}

	rec := &domain.MessageRecord{
		ListingID:     listingID,
		ReservationID: r.ID,
		ThreadID:      threadID,
		Content:       content,
		Status:        status,
	}
	if status == domain.StatusSent {
		now := time.Now()
		rec.SentAt = &now
	}
	if sendErr != nil {
		msg := sendErr.Error()
		rec.Error = &msg
	}

	if err := s.messageLog.Record(ctx, rec); err != nil {
		logger.Warnf("Could not record message attempt for reservation %d: %v", r.ID, err)
	}
}

// recordError appends to the in-memory result and, for progress-tracked
// campaigns, to the durable session error log.
func (s *BroadcastService) recordError(result *domain.BroadcastResult, cerr *domain.CampaignError, persist bool) {
	msg := cerr.Error()
	logger.Errorf("%s", msg)
	result.Errors = append(result.Errors, msg)
	if persist {
		if err := s.progress.RecordError(msg); err != nil {
			logger.Warnf("Could not persist error log: %v", err)
		}
	}
}

func (s *BroadcastService) newResult() *domain.BroadcastResult {
	return &domain.BroadcastResult{
		Errors:          []string{},
		ChekinAvailable: s.links != nil && s.links.Available(),
		StartedAt:       time.Now(),
	}
}
