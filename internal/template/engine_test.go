package template

import (
	"context"
	"strings"
	"testing"

	"github.com/mhuescar/hostify-broadcast-message/internal/domain"
)

type fakeLinks struct {
	link string
	ok   bool

	calls []int64
}

func (f *fakeLinks) SignupLink(ctx context.Context, reservationID int64) (string, bool) {
	f.calls = append(f.calls, reservationID)
	return f.link, f.ok
}

func baseReservation() *domain.Reservation {
	return &domain.Reservation{
		ID:       42,
		Status:   domain.ReservationAccepted,
		CheckIn:  "2026-10-01",
		CheckOut: "2026-10-05",
		Guests:   3,
		Source:   "airbnb",
	}
}

func TestRenderSubstitutesAllPlaceholders(t *testing.T) {
	r := baseReservation()
	r.GuestName = "Maria Lopez"
	r.Name = "Casa Azul"

	tpl := "Hola {{guest_name}}, su reserva {{reservation_id}} en {{property_name}}" +
		" del {{checkin_date}} al {{checkout_date}} para {{guests_count}} personas via {{booking_source}}."

	out, ok := Render(context.Background(), tpl, r, nil)
	if !ok {
		t.Fatalf("expected deliverable render")
	}

	want := "Hola Maria Lopez, su reserva 42 en Casa Azul del 2026-10-01 al 2026-10-05 para 3 personas via airbnb."
	if out != want {
		t.Errorf("unexpected render:\n got: %s\nwant: %s", out, want)
	}
}

func TestRenderLinkGateBothSpellings(t *testing.T) {
	for _, tpl := range []string{
		"Link: {{chekin_signup_form_link}}",
		"Link: {{checkin_signup_form_link}}",
	} {
		links := &fakeLinks{link: "https://chekin.example/abc", ok: true}
		out, ok := Render(context.Background(), tpl, baseReservation(), links)
		if !ok {
			t.Fatalf("template %q: expected deliverable render", tpl)
		}
		if out != "Link: https://chekin.example/abc" {
			t.Errorf("template %q: got %q", tpl, out)
		}
		if len(links.calls) != 1 || links.calls[0] != 42 {
			t.Errorf("template %q: expected one lookup for reservation 42, got %v", tpl, links.calls)
		}
	}
}

func TestRenderUndeliverableWhenLinkMissing(t *testing.T) {
	tpl := "Hola {{guest_name}}: {{chekin_signup_form_link}}"

	// Resolver says no link.
	out, ok := Render(context.Background(), tpl, baseReservation(), &fakeLinks{ok: false})
	if ok {
		t.Fatalf("expected undeliverable render")
	}
	if out != "" {
		t.Errorf("undeliverable render must be empty, got %q", out)
	}

	// No resolver wired at all.
	if _, ok := Render(context.Background(), tpl, baseReservation(), nil); ok {
		t.Errorf("expected undeliverable render with nil resolver")
	}
}

func TestRenderNoLinkPlaceholderSkipsLookup(t *testing.T) {
	links := &fakeLinks{link: "https://chekin.example/abc", ok: true}

	_, ok := Render(context.Background(), "Hola {{guest_name}}", baseReservation(), links)
	if !ok {
		t.Fatalf("expected deliverable render")
	}
	if len(links.calls) != 0 {
		t.Errorf("expected no link lookups, got %v", links.calls)
	}
}

func TestRenderGuestNameFallbackChain(t *testing.T) {
	tests := []struct {
		name  string
		setup func(r *domain.Reservation)
		want  string
	}{
		{
			name:  "direct field wins",
			setup: func(r *domain.Reservation) { r.GuestName = "Ana" },
			want:  "Ana",
		},
		{
			name: "alternate key",
			setup: func(r *domain.Reservation) {
				r.GuestNameAlt = "Bruno"
			},
			want: "Bruno",
		},
		{
			name: "priority order among direct keys",
			setup: func(r *domain.Reservation) {
				r.Guest = "Carla"
				r.CustomerName = "Dario"
			},
			want: "Carla",
		},
		{
			name: "enrichment first plus last name",
			setup: func(r *domain.Reservation) {
				r.GuestDetail = &domain.GuestDetail{FirstName: "Eva", LastName: "Gomez"}
			},
			want: "Eva Gomez",
		},
		{
			name: "enrichment single name field",
			setup: func(r *domain.Reservation) {
				r.GuestDetail = &domain.GuestDetail{Name: "Franco"}
			},
			want: "Franco",
		},
		{
			name:  "nothing set falls back to default",
			setup: func(r *domain.Reservation) {},
			want:  "Estimado huésped",
		},
		{
			name: "whitespace only values are skipped",
			setup: func(r *domain.Reservation) {
				r.GuestName = "   "
				r.PrimaryGuest = "Gloria"
			},
			want: "Gloria",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := baseReservation()
			tt.setup(r)

			out, ok := Render(context.Background(), "{{guest_name}}", r, nil)
			if !ok {
				t.Fatalf("expected deliverable render")
			}
			if out != tt.want {
				t.Errorf("got %q, want %q", out, tt.want)
			}
		})
	}
}

func TestRenderPropertyNameFallsBackToEnrichment(t *testing.T) {
	r := baseReservation()
	r.PropertyDetail = &domain.PropertyDetail{Title: "Loft Centro"}

	out, ok := Render(context.Background(), "{{property_name}}", r, nil)
	if !ok {
		t.Fatalf("expected deliverable render")
	}
	if out != "Loft Centro" {
		t.Errorf("got %q, want Loft Centro", out)
	}

	r.PropertyDetail = nil
	out, _ = Render(context.Background(), "{{property_name}}", r, nil)
	if out != "Su alojamiento" {
		t.Errorf("got %q, want default property name", out)
	}
}

func TestRenderMissingValues(t *testing.T) {
	r := baseReservation()
	r.CheckOut = ""
	r.Guests = 0
	r.Source = "  "

	out, ok := Render(context.Background(), "{{checkout_date}}|{{guests_count}}|{{booking_source}}", r, nil)
	if !ok {
		t.Fatalf("expected deliverable render")
	}
	if out != "N/A|N/A|N/A" {
		t.Errorf("got %q, want N/A for every blank field", out)
	}
}

func TestRenderLeavesUnknownTokensAlone(t *testing.T) {
	out, ok := Render(context.Background(), "{{mystery_token}} y {{guest_name}}", baseReservation(), nil)
	if !ok {
		t.Fatalf("expected deliverable render")
	}
	if !strings.HasPrefix(out, "{{mystery_token}}") {
		t.Errorf("unknown token must pass through, got %q", out)
	}
}

func TestNeedsCheckinLink(t *testing.T) {
	if !NeedsCheckinLink("x {{chekin_signup_form_link}} y") {
		t.Errorf("historical spelling not detected")
	}
	if !NeedsCheckinLink("x {{checkin_signup_form_link}} y") {
		t.Errorf("corrected spelling not detected")
	}
	if NeedsCheckinLink("plain {{guest_name}} template") {
		t.Errorf("false positive on template without link placeholder")
	}
}
