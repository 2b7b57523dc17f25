package collector

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mhuescar/hostify-broadcast-message/internal/domain"
	"github.com/mhuescar/hostify-broadcast-message/pkg/hostify"
)

type fakeReservationAPI struct {
	pages    []*hostify.ReservationsPage
	pageErrs map[int]error

	details   map[int64]*hostify.ReservationDetail
	detailErr error

	listCalls   int
	detailCalls []int64
}

func (f *fakeReservationAPI) ListReservations(ctx context.Context, listingID int64, page, perPage int) (*hostify.ReservationsPage, error) {
	f.listCalls++
	if err, ok := f.pageErrs[page]; ok {
		return nil, err
	}
	if page > len(f.pages) {
		return &hostify.ReservationsPage{}, nil
	}
	return f.pages[page-1], nil
}

func (f *fakeReservationAPI) GetReservation(ctx context.Context, reservationID int64) (*hostify.ReservationDetail, error) {
	f.detailCalls = append(f.detailCalls, reservationID)
	if f.detailErr != nil {
		return nil, f.detailErr
	}
	if d, ok := f.details[reservationID]; ok {
		return d, nil
	}
	return &hostify.ReservationDetail{}, nil
}

// fixedNow pins "today" so date-boundary cases are deterministic.
var fixedNow = time.Date(2026, 9, 1, 15, 30, 0, 0, time.UTC)

func newTestCollector(api *fakeReservationAPI, pageSize int) *Collector {
	c := NewCollector(api, pageSize)
	c.now = func() time.Time { return fixedNow }
	return c
}

func accepted(id int64, checkIn string) domain.Reservation {
	return domain.Reservation{ID: id, Status: domain.ReservationAccepted, CheckIn: checkIn}
}

func TestCollectFiltersEligibility(t *testing.T) {
	api := &fakeReservationAPI{
		pages: []*hostify.ReservationsPage{
			{Reservations: []domain.Reservation{
				accepted(1, "2026-09-01"),                // today: stays
				accepted(2, "2026-08-31"),                // yesterday: out
				accepted(3, "2026-12-24"),                // future: stays
				accepted(4, "2026-09-10T14:00:00+02:00"), // datetime string: stays
				accepted(5, "not-a-date"),                // unparseable: out
				accepted(6, ""),                          // empty: out
				{ID: 7, Status: domain.ReservationPending, CheckIn: "2026-12-24"}, // wrong status: out
			}},
		},
	}

	got, err := newTestCollector(api, 50).Collect(context.Background(), 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantIDs := []int64{1, 3, 4}
	if len(got) != len(wantIDs) {
		t.Fatalf("expected %d eligible reservations, got %d", len(wantIDs), len(got))
	}
	for i, want := range wantIDs {
		if got[i].ID != want {
			t.Errorf("position %d: got id %d, want %d", i, got[i].ID, want)
		}
	}
}

func TestCollectStopsOnShortPage(t *testing.T) {
	full := make([]domain.Reservation, 3)
	for i := range full {
		full[i] = accepted(int64(i+1), "2026-12-01")
	}
	api := &fakeReservationAPI{
		pages: []*hostify.ReservationsPage{
			// The server's total is a lie; only the short page ends paging.
			{Reservations: full, Total: 100},
			{Reservations: full[:2], Total: 100},
		},
	}

	got, err := newTestCollector(api, 3).Collect(context.Background(), 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 5 {
		t.Errorf("expected 5 reservations across both pages, got %d", len(got))
	}
	if api.listCalls != 2 {
		t.Errorf("expected paging to stop after the short page, got %d calls", api.listCalls)
	}
}

func TestCollectPageFailureReturnsPartial(t *testing.T) {
	full := make([]domain.Reservation, 2)
	for i := range full {
		full[i] = accepted(int64(i+1), "2026-12-01")
	}
	api := &fakeReservationAPI{
		pages:    []*hostify.ReservationsPage{{Reservations: full}},
		pageErrs: map[int]error{2: errors.New("boom")},
	}

	got, err := newTestCollector(api, 2).Collect(context.Background(), 10)
	if err == nil {
		t.Fatalf("expected the page error to surface")
	}
	if len(got) != 2 {
		t.Errorf("expected the first page to be kept, got %d reservations", len(got))
	}
}

func TestCollectEnrichesEligibleOnly(t *testing.T) {
	api := &fakeReservationAPI{
		pages: []*hostify.ReservationsPage{
			{Reservations: []domain.Reservation{
				accepted(1, "2026-12-01"),
				accepted(2, "2020-01-01"), // past, never enriched
			}},
		},
		details: map[int64]*hostify.ReservationDetail{
			1: {
				Guest:   &domain.GuestDetail{FirstName: "Iris", LastName: "Mora"},
				Listing: &domain.PropertyDetail{Name: "Casa Sol"},
			},
		},
	}

	got, err := newTestCollector(api, 50).Collect(context.Background(), 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 eligible reservation, got %d", len(got))
	}
	if got[0].GuestDetail == nil || got[0].GuestDetail.FirstName != "Iris" {
		t.Errorf("guest detail not merged: %+v", got[0].GuestDetail)
	}
	if got[0].PropertyDetail == nil || got[0].PropertyDetail.Name != "Casa Sol" {
		t.Errorf("property detail not merged: %+v", got[0].PropertyDetail)
	}
	if len(api.detailCalls) != 1 || api.detailCalls[0] != 1 {
		t.Errorf("expected exactly one detail fetch for reservation 1, got %v", api.detailCalls)
	}
}

func TestCollectEnrichmentFailureIsBestEffort(t *testing.T) {
	r := accepted(1, "2026-12-01")
	r.GuestName = "Directo"
	api := &fakeReservationAPI{
		pages:     []*hostify.ReservationsPage{{Reservations: []domain.Reservation{r}}},
		detailErr: errors.New("boom"),
	}

	got, err := newTestCollector(api, 50).Collect(context.Background(), 10)
	if err != nil {
		t.Fatalf("enrichment failure must not surface: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected the reservation to survive, got %d", len(got))
	}
	if got[0].GuestName != "Directo" {
		t.Errorf("base fields must be untouched, got %+v", got[0])
	}
}
