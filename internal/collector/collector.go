package collector

import (
	"context"
	"time"

	"github.com/mhuescar/hostify-broadcast-message/internal/domain"
	"github.com/mhuescar/hostify-broadcast-message/pkg/hostify"
	"github.com/mhuescar/hostify-broadcast-message/pkg/logger"
)

// reservationAPI is the slice of the Hostify client the collector needs.
type reservationAPI interface {
	ListReservations(ctx context.Context, listingID int64, page, perPage int) (*hostify.ReservationsPage, error)
	GetReservation(ctx context.Context, reservationID int64) (*hostify.ReservationDetail, error)
}

// Collector retrieves every reservation eligible for messaging on one
// listing: accepted status and a check-in date that has not passed,
// enriched best-effort with the detail payload.
type Collector struct {
	api      reservationAPI
	pageSize int
	now      func() time.Time
}

func NewCollector(api reservationAPI, pageSize int) *Collector {
	if pageSize <= 0 {
		pageSize = 50
	}
	return &Collector{
		api:      api,
		pageSize: pageSize,
		now:      time.Now,
	}
}

// Collect pages through a listing's reservations and returns the eligible
// ones. A page-fetch failure ends pagination for the listing: everything
// collected so far is still returned, alongside the error so the caller
// can record it.
func (c *Collector) Collect(ctx context.Context, listingID int64) ([]domain.Reservation, error) {
	today := truncateToDay(c.now())

	var eligible []domain.Reservation

	for page := 1; ; page++ {
		resp, err := c.api.ListReservations(ctx, listingID, page, c.pageSize)
		if err != nil {
			logger.Warnf("Reservation page %d failed for listing %d: %v", page, listingID, err)
			return eligible, err
		}

		for i := range resp.Reservations {
			r := resp.Reservations[i]
			if !c.eligible(&r, today) {
				continue
			}
			c.enrich(ctx, &r)
			eligible = append(eligible, r)
		}

		// A short or empty raw page is the only trustworthy end-of-data
		// signal; the reported total can include records the filter
		// rejects.
		if len(resp.Reservations) < c.pageSize {
			break
		}
	}

	logger.Infof("Listing %d: %d eligible reservations", listingID, len(eligible))

	return eligible, nil
}

// eligible applies the campaign filter on raw server records. The API's
// own status/date filters are not trusted. Unparseable check-in dates
// exclude the record silently.
func (c *Collector) eligible(r *domain.Reservation, today time.Time) bool {
	if r.Status != domain.ReservationAccepted {
		return false
	}
	checkIn, ok := r.CheckInDate()
	if !ok {
		return false
	}
	return !checkIn.Before(today)
}

// enrich merges the detail payload into the reservation. Best-effort: a
// failed fetch leaves the base fields in place.
func (c *Collector) enrich(ctx context.Context, r *domain.Reservation) {
	detail, err := c.api.GetReservation(ctx, r.ID)
	if err != nil {
		logger.Warnf("Could not enrich reservation %d: %v", r.ID, err)
		return
	}

	if detail.Guest != nil {
		r.GuestDetail = detail.Guest
	}
	if detail.Listing != nil {
		r.PropertyDetail = detail.Listing
	}
	if detail.BookingDetails != nil {
		r.BookingDetails = detail.BookingDetails
	}
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
