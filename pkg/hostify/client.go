package hostify

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/mhuescar/hostify-broadcast-message/environments"
	"github.com/mhuescar/hostify-broadcast-message/internal/domain"
)

// Client talks to the Hostify property-management API. All campaign
// traffic (listing discovery, reservation collection, chat sends) goes
// through it.
type Client struct {
	httpClient *resty.Client
}

func NewClient(cfg environments.HostifyConfig) *Client {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetRetryCount(3).
		SetRetryWaitTime(500*time.Millisecond).
		SetRetryMaxWaitTime(2*time.Second).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetHeader("x-api-key", cfg.APIKey)

	return &Client{httpClient: client}
}

// Listing is the wire shape of one listing record. Channel exports are
// inconsistent about id and name keys, hence the paired fields.
type Listing struct {
	ID        int64  `json:"id"`
	ListingID int64  `json:"listing_id"`
	Name      string `json:"name"`
	Title     string `json:"title"`
}

func (l Listing) EffectiveID() int64 {
	if l.ID != 0 {
		return l.ID
	}
	return l.ListingID
}

func (l Listing) DisplayName() string {
	if l.Name != "" {
		return l.Name
	}
	return l.Title
}

// ListingsPage is one page of the listings index. NextPage is absent on
// the final page.
type ListingsPage struct {
	Listings []Listing `json:"listings"`
	Total    int       `json:"total"`
	NextPage *int      `json:"next_page"`
}

// ChannelListingsPage is one page of a listing's channel projections.
type ChannelListingsPage struct {
	ChannelListings []Listing `json:"channel_listings"`
	Total           int       `json:"total"`
	NextPage        *int      `json:"next_page"`
}

// ReservationsPage is one page of a listing's reservations. Total may
// count records the campaign filter later rejects, so pagination must not
// rely on it alone.
type ReservationsPage struct {
	Reservations []domain.Reservation `json:"reservations"`
	Total        int                  `json:"total"`
}

// ReservationDetail is the enrichment payload for one reservation.
type ReservationDetail struct {
	Guest          *domain.GuestDetail    `json:"guest"`
	Listing        *domain.PropertyDetail `json:"listing"`
	BookingDetails map[string]any         `json:"booking_details"`
}

// SendResponse is the inbox reply result. The API reports logical
// failures in-band with a 200.
type SendResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func (c *Client) ListListings(ctx context.Context, page int) (*ListingsPage, error) {
	var result ListingsPage

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"status": "active",
			"page":   strconv.Itoa(page),
		}).
		SetResult(&result).
		Get("/listings")
	if err != nil {
		return nil, fmt.Errorf("failed to list listings (page %d): %w", page, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d listing listings (page %d): %s", resp.StatusCode(), page, resp.String())
	}

	return &result, nil
}

func (c *Client) ListChannelListings(ctx context.Context, parentID int64, page int) (*ChannelListingsPage, error) {
	var result ChannelListingsPage

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"listing_id": strconv.FormatInt(parentID, 10),
			"page":       strconv.Itoa(page),
		}).
		SetResult(&result).
		Get("/channel_listings")
	if err != nil {
		return nil, fmt.Errorf("failed to list channel listings for %d (page %d): %w", parentID, page, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d listing channel listings for %d: %s", resp.StatusCode(), parentID, resp.String())
	}

	return &result, nil
}

func (c *Client) ListReservations(ctx context.Context, listingID int64, page, perPage int) (*ReservationsPage, error) {
	var result ReservationsPage

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"listing_id": strconv.FormatInt(listingID, 10),
			"page":       strconv.Itoa(page),
			"per_page":   strconv.Itoa(perPage),
			"status":     "accepted",
		}).
		SetResult(&result).
		Get("/reservations")
	if err != nil {
		return nil, fmt.Errorf("failed to list reservations for listing %d (page %d): %w", listingID, page, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d listing reservations for listing %d: %s", resp.StatusCode(), listingID, resp.String())
	}

	return &result, nil
}

func (c *Client) GetReservation(ctx context.Context, reservationID int64) (*ReservationDetail, error) {
	var result ReservationDetail

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetResult(&result).
		Get(fmt.Sprintf("/reservations/%d", reservationID))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch reservation %d: %w", reservationID, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d fetching reservation %d: %s", resp.StatusCode(), reservationID, resp.String())
	}

	return &result, nil
}

// SendMessage posts a chat message into the reservation's inbox thread.
func (c *Client) SendMessage(ctx context.Context, threadID int64, message string) (*SendResponse, error) {
	payload := map[string]any{
		"thread_id": threadID,
		"message":   message,
		"send_by":   "channel",
	}

	var result SendResponse

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(payload).
		SetResult(&result).
		Post("/inbox/reply")
	if err != nil {
		return nil, fmt.Errorf("failed to send message to thread %d: %w", threadID, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d sending message to thread %d: %s", resp.StatusCode(), threadID, resp.String())
	}
	if result.Error != "" {
		return &result, fmt.Errorf("send rejected for thread %d: %s", threadID, result.Error)
	}

	return &result, nil
}
