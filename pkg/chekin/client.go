package chekin

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker"

	"github.com/mhuescar/hostify-broadcast-message/environments"
	"github.com/mhuescar/hostify-broadcast-message/pkg/logger"
)

// Client talks to the Chekin guest check-in API. Authentication exchanges
// the configured API key for a short-lived JWT once at startup; when that
// exchange fails the client stays in degraded mode and every link lookup
// reports "no link" instead of failing the campaign.
type Client struct {
	httpClient *resty.Client
	apiKey     string
	breaker    *gobreaker.CircuitBreaker

	mu        sync.RWMutex
	token     string
	available bool
}

type authResponse struct {
	Token string `json:"token"`
}

type reservationsResponse struct {
	Results []struct {
		SignupFormLink string `json:"signup_form_link"`
	} `json:"results"`
}

func NewClient(cfg environments.ChekinConfig) *Client {
	httpClient := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "*/*")

	// Stop hammering Chekin after a run of lookup failures; an open
	// breaker degrades to "no link", same as an auth failure.
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "chekin-lookup",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(c gobreaker.Counts) bool {
			return c.ConsecutiveFailures >= 5
		},
	})

	return &Client{
		httpClient: httpClient,
		apiKey:     cfg.APIKey,
		breaker:    breaker,
	}
}

// Authenticate exchanges the API key for a JWT. Called once at startup;
// failure is not fatal and leaves the client unavailable.
func (c *Client) Authenticate(ctx context.Context) error {
	if c.apiKey == "" {
		return fmt.Errorf("chekin API key not configured")
	}

	var result authResponse

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(map[string]string{"api_key": c.apiKey}).
		SetResult(&result).
		Post("/auth/api-key/")
	if err != nil {
		return fmt.Errorf("chekin authentication failed: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return fmt.Errorf("chekin authentication failed with status %d", resp.StatusCode())
	}
	if result.Token == "" {
		return fmt.Errorf("chekin authentication returned an empty token")
	}

	c.mu.Lock()
	c.token = result.Token
	c.available = true
	c.mu.Unlock()

	return nil
}

func (c *Client) Available() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.available
}

// SignupLink looks up the check-in signup link for a Hostify reservation
// id (used as the external correlation key). The second return is false
// whenever no valid http(s) link exists, for any reason.
func (c *Client) SignupLink(ctx context.Context, reservationID int64) (string, bool) {
	c.mu.RLock()
	token := c.token
	available := c.available
	c.mu.RUnlock()

	if !available || token == "" {
		return "", false
	}

	link, err := c.breaker.Execute(func() (any, error) {
		return c.lookup(ctx, token, reservationID)
	})
	if err != nil {
		logger.Warnf("Chekin lookup failed for reservation %d: %v", reservationID, err)
		return "", false
	}

	s, _ := link.(string)
	if !strings.HasPrefix(s, "http") {
		return "", false
	}

	return s, true
}

func (c *Client) lookup(ctx context.Context, token string, reservationID int64) (string, error) {
	var result reservationsResponse

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetHeader("Authorization", "JWT "+token).
		SetQueryParams(map[string]string{
			"external_id": strconv.FormatInt(reservationID, 10),
			"limit":       "1",
		}).
		SetResult(&result).
		Get("/reservations")
	if err != nil {
		return "", err
	}
	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode())
	}
	if len(result.Results) == 0 {
		return "", nil
	}

	return result.Results[0].SignupFormLink, nil
}
