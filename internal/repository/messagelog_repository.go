package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/mhuescar/hostify-broadcast-message/internal/domain"
)

// MessageLogRepository persists the audit trail of send attempts. The
// campaign works fine without it; it exists so failed sends inside a
// completed listing remain discoverable after the run.
type MessageLogRepository struct {
	db *sqlx.DB
}

func NewMessageLogRepository(db *sqlx.DB) *MessageLogRepository {
	return &MessageLogRepository{db: db}
}

// Record inserts one send attempt.
func (r *MessageLogRepository) Record(ctx context.Context, rec *domain.MessageRecord) error {
	query := `
		INSERT INTO broadcast_messages
			(listing_id, reservation_id, thread_id, content, status, error, sent_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
	`

	_, err := r.db.ExecContext(ctx, query,
		rec.ListingID, rec.ReservationID, rec.ThreadID, rec.Content, rec.Status, rec.Error, rec.SentAt)
	if err != nil {
		return fmt.Errorf("failed to record message attempt: %w", err)
	}

	return nil
}

// GetAll returns attempts newest-first, optionally filtered by status.
func (r *MessageLogRepository) GetAll(
	ctx context.Context,
	status *domain.MessageStatus,
	page, pageSize int,
) ([]domain.MessageRecord, int64, error) {
	offset := (page - 1) * pageSize
	var totalCount int64
	var records []domain.MessageRecord

	if status != nil {
		countQuery := "SELECT COUNT(*) FROM broadcast_messages WHERE status = ?"
		if err := r.db.GetContext(ctx, &totalCount, countQuery, *status); err != nil {
			return nil, 0, fmt.Errorf("failed to count messages: %w", err)
		}

		query := `
			SELECT id, listing_id, reservation_id, thread_id, content, status, error, sent_at, created_at
			FROM broadcast_messages
			WHERE status = ?
			ORDER BY created_at DESC
			LIMIT ? OFFSET ?
		`
		if err := r.db.SelectContext(ctx, &records, query, *status, pageSize, offset); err != nil {
			return nil, 0, fmt.Errorf("failed to get messages: %w", err)
		}
	} else {
		countQuery := "SELECT COUNT(*) FROM broadcast_messages"
		if err := r.db.GetContext(ctx, &totalCount, countQuery); err != nil {
			return nil, 0, fmt.Errorf("failed to count messages: %w", err)
		}

		query := `
			SELECT id, listing_id, reservation_id, thread_id, content, status, error, sent_at, created_at
			FROM broadcast_messages
			ORDER BY created_at DESC
			LIMIT ? OFFSET ?
		`
		if err := r.db.SelectContext(ctx, &records, query, pageSize, offset); err != nil {
			return nil, 0, fmt.Errorf("failed to get messages: %w", err)
		}
	}

	return records, totalCount, nil
}

// GetByListing returns every attempt against one listing, oldest first,
// so an operator can re-target the failed reservations manually.
func (r *MessageLogRepository) GetByListing(ctx context.Context, listingID int64) ([]domain.MessageRecord, error) {
	query := `
		SELECT id, listing_id, reservation_id, thread_id, content, status, error, sent_at, created_at
		FROM broadcast_messages
		WHERE listing_id = ?
		ORDER BY created_at ASC
	`

	var records []domain.MessageRecord
	if err := r.db.SelectContext(ctx, &records, query, listingID); err != nil {
		return nil, fmt.Errorf("failed to get messages for listing %d: %w", listingID, err)
	}

	return records, nil
}

// GetStats returns sent/failed totals across the log.
func (r *MessageLogRepository) GetStats(ctx context.Context) (sent, failed int64, err error) {
	query := `
		SELECT
			COALESCE(SUM(CASE WHEN status = 'sent' THEN 1 ELSE 0 END), 0)   AS sent,
			COALESCE(SUM(CASE WHEN status = 'failed' THEN 1 ELSE 0 END), 0) AS failed
		FROM broadcast_messages
	`

	var stats struct {
		Sent   int64 `db:"sent"`
		Failed int64 `db:"failed"`
	}

	if err := r.db.GetContext(ctx, &stats, query); err != nil {
		return 0, 0, fmt.Errorf("failed to get stats: %w", err)
	}

	return stats.Sent, stats.Failed, nil
}
