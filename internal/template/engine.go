package template

import (
	"context"
	"strconv"
	"strings"

	"github.com/mhuescar/hostify-broadcast-message/internal/domain"
)

// Recognized placeholders. The two link spellings behave identically; the
// misspelled "chekin" variant is the historical one and still in use in
// saved templates.
const (
	PlaceholderGuestName      = "{{guest_name}}"
	PlaceholderChekinLink     = "{{chekin_signup_form_link}}"
	PlaceholderCheckinLink    = "{{checkin_signup_form_link}}"
	PlaceholderCheckinDate    = "{{checkin_date}}"
	PlaceholderCheckoutDate   = "{{checkout_date}}"
	PlaceholderReservationID  = "{{reservation_id}}"
	PlaceholderGuestsCount    = "{{guests_count}}"
	PlaceholderPropertyName   = "{{property_name}}"
	PlaceholderBookingSource  = "{{booking_source}}"

	defaultGuestName    = "Estimado huésped"
	defaultPropertyName = "Su alojamiento"
	missingValue        = "N/A"
)

// LinkResolver yields a guest check-in link for a reservation. The second
// return is false when no valid link exists.
type LinkResolver interface {
	SignupLink(ctx context.Context, reservationID int64) (string, bool)
}

// NeedsCheckinLink reports whether a template references either link
// placeholder and therefore hits the render gate.
func NeedsCheckinLink(tpl string) bool {
	return strings.Contains(tpl, PlaceholderChekinLink) ||
		strings.Contains(tpl, PlaceholderCheckinLink)
}

// Render substitutes every recognized placeholder and returns the final
// message. The second return is false when the message is undeliverable:
// the template needs a check-in link and none resolves. An undeliverable
// message is never partially rendered.
//
// Unrecognized tokens pass through unmodified.
func Render(ctx context.Context, tpl string, r *domain.Reservation, links LinkResolver) (string, bool) {
	link := ""
	if NeedsCheckinLink(tpl) {
		if links == nil {
			return "", false
		}
		resolved, ok := links.SignupLink(ctx, r.ID)
		if !ok {
			return "", false
		}
		link = resolved
	}

	replacements := map[string]string{
		PlaceholderGuestName:     guestName(r),
		PlaceholderChekinLink:    link,
		PlaceholderCheckinLink:   link,
		PlaceholderCheckinDate:   orMissing(r.CheckIn),
		PlaceholderCheckoutDate:  orMissing(r.CheckOut),
		PlaceholderReservationID: strconv.FormatInt(r.ID, 10),
		PlaceholderGuestsCount:   guestsCount(r),
		PlaceholderPropertyName:  propertyName(r),
		PlaceholderBookingSource: orMissing(r.Source),
	}

	out := tpl
	for token, value := range replacements {
		out = strings.ReplaceAll(out, token, value)
	}

	return out, true
}

func guestName(r *domain.Reservation) string {
	if name := domain.FirstNonEmpty(r, domain.GuestNameAccessors); name != "" {
		return name
	}

	if d := r.GuestDetail; d != nil {
		first := strings.TrimSpace(d.FirstName)
		if first == "" {
			first = strings.TrimSpace(d.Name)
		}
		if first != "" {
			return strings.TrimSpace(first + " " + strings.TrimSpace(d.LastName))
		}
	}

	return defaultGuestName
}

func propertyName(r *domain.Reservation) string {
	if name := domain.FirstNonEmpty(r, domain.PropertyNameAccessors); name != "" {
		return name
	}
	return defaultPropertyName
}

func guestsCount(r *domain.Reservation) string {
	if r.Guests <= 0 {
		return missingValue
	}
	return strconv.Itoa(r.Guests)
}

func orMissing(s string) string {
	if strings.TrimSpace(s) == "" {
		return missingValue
	}
	return s
}
