package domain

import (
	"strings"
	"time"
)

// ReservationStatus values as returned by the property-management API.
// Only accepted reservations are ever messaged.
type ReservationStatus string

const (
	ReservationAccepted ReservationStatus = "accepted"
	ReservationPending  ReservationStatus = "pending"
)

// Reservation is one booking as returned by the reservations listing
// endpoint, optionally enriched with the detail sub-objects. Different
// booking channels populate different subsets of the synonymous name
// fields, which is why lookups go through the accessor chains below
// instead of reading a single field.
type Reservation struct {
	ID        int64             `json:"id"`
	ListingID int64             `json:"listing_id"`
	Status    ReservationStatus `json:"status"`
	CheckIn   string            `json:"checkIn"`
	CheckOut  string            `json:"checkOut"`
	Guests    int               `json:"guests"`
	Source    string            `json:"source"`

	// The inbox thread used for sending; message_id wins over inbox_id.
	MessageID int64 `json:"message_id"`
	InboxID   int64 `json:"inbox_id"`

	// Synonymous guest-name keys.
	GuestName    string `json:"guest_name"`
	GuestNameAlt string `json:"guestName"`
	Guest        string `json:"guest"`
	PrimaryGuest string `json:"primary_guest"`
	CustomerName string `json:"customer_name"`

	// Synonymous property-name keys.
	Name         string `json:"name"`
	Title        string `json:"title"`
	PropertyName string `json:"property_name"`
	ListingName  string `json:"listing_name"`

	// Enrichment bundle, merged in by the collector from the detail
	// endpoint. Best-effort: any of these may be nil.
	GuestDetail    *GuestDetail    `json:"detailed_guest_info,omitempty"`
	PropertyDetail *PropertyDetail `json:"property_details,omitempty"`
	BookingDetails map[string]any  `json:"booking_details,omitempty"`
}

type GuestDetail struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Name      string `json:"name"`
}

type PropertyDetail struct {
	Name         string `json:"name"`
	Title        string `json:"title"`
	PropertyName string `json:"property_name"`
	ListingName  string `json:"listing_name"`
}

// ThreadID returns the inbox thread to send to, or zero when the
// reservation carries no usable thread.
func (r *Reservation) ThreadID() int64 {
	if r.MessageID != 0 {
		return r.MessageID
	}
	return r.InboxID
}

// CheckInDate parses the check-in value as a calendar date. The API mixes
// plain dates with datetime strings depending on the channel.
func (r *Reservation) CheckInDate() (time.Time, bool) {
	return parseDate(r.CheckIn)
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if len(s) > 10 {
		s = s[:10]
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// GuestNameAccessors is the fixed-priority chain of direct guest-name
// fields tried before falling back to the enrichment bundle.
var GuestNameAccessors = []func(*Reservation) string{
	func(r *Reservation) string { return r.GuestName },
	func(r *Reservation) string { return r.GuestNameAlt },
	func(r *Reservation) string { return r.Guest },
	func(r *Reservation) string { return r.PrimaryGuest },
	func(r *Reservation) string { return r.CustomerName },
}

// PropertyNameAccessors tries the direct fields first, then the matching
// property-detail fields from enrichment.
var PropertyNameAccessors = []func(*Reservation) string{
	func(r *Reservation) string { return r.Name },
	func(r *Reservation) string { return r.Title },
	func(r *Reservation) string { return r.PropertyName },
	func(r *Reservation) string { return r.ListingName },
	func(r *Reservation) string {
		if r.PropertyDetail == nil {
			return ""
		}
		return r.PropertyDetail.Name
	},
	func(r *Reservation) string {
		if r.PropertyDetail == nil {
			return ""
		}
		return r.PropertyDetail.Title
	},
	func(r *Reservation) string {
		if r.PropertyDetail == nil {
			return ""
		}
		return r.PropertyDetail.PropertyName
	},
	func(r *Reservation) string {
		if r.PropertyDetail == nil {
			return ""
		}
		return r.PropertyDetail.ListingName
	},
}

// FirstNonEmpty runs an accessor chain against a reservation and returns
// the first trimmed non-empty value.
func FirstNonEmpty(r *Reservation, chain []func(*Reservation) string) string {
	for _, get := range chain {
		if v := strings.TrimSpace(get(r)); v != "" {
			return v
		}
	}
	return ""
}
