package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/mhuescar/hostify-broadcast-message/environments"
	"github.com/mhuescar/hostify-broadcast-message/pkg/logger"
)

// Client caches resolved check-in links so a campaign that renders the
// same reservation more than once (preview then send, or a re-run after a
// crash) does not hit Chekin again. TTL-bounded because signup links are
// replaced when a reservation changes.
type Client struct {
	client valkey.Client
	ttl    time.Duration
}

const checkinLinkKeyPrefix = "checkin_link:"

func NewRedisClient(cfg environments.RedisConfig, ttl time.Duration) (*Client, error) {
	client, err := valkey.NewClient(valkey.ClientOption{
		InitAddress: []string{fmt.Sprintf("%s:%s", cfg.Host, cfg.Port)},
		Password:    cfg.Password,
		SelectDB:    cfg.DB,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Valkey client: %w", err)
	}

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		client.Close()

		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Infof("Connected to Redis (via Valkey client)")

	return &Client{client: client, ttl: ttl}, nil
}

func (c *Client) CacheCheckinLink(ctx context.Context, reservationID int64, link string) error {
	key := fmt.Sprintf("%s%d", checkinLinkKeyPrefix, reservationID)

	err := c.client.Do(ctx, c.client.B().Set().Key(key).Value(link).Ex(c.ttl).Build()).Error()
	if err != nil {
		return fmt.Errorf("failed to cache check-in link: %w", err)
	}

	logger.Debugf("Cached check-in link for reservation %d", reservationID)

	return nil
}

// GetCheckinLink returns the cached link for a reservation, or false when
// none is cached.
func (c *Client) GetCheckinLink(ctx context.Context, reservationID int64) (string, bool, error) {
	key := fmt.Sprintf("%s%d", checkinLinkKeyPrefix, reservationID)

	result := c.client.Do(ctx, c.client.B().Get().Key(key).Build())
	if result.Error() != nil {
		if valkey.IsValkeyNil(result.Error()) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to get cached link: %w", result.Error())
	}

	link, err := result.ToString()
	if err != nil {
		return "", false, fmt.Errorf("failed to read cached link: %w", err)
	}

	return link, true, nil
}

func (c *Client) Close() error {
	c.client.Close()
	return nil
}

func (c *Client) Ping(ctx context.Context) error {
	return c.client.Do(ctx, c.client.B().Ping().Build()).Error()
}
