package domain

import "time"

// MessageStatus is the terminal state of one send attempt in the audit
// log. Unlike a queue there is no pending state: attempts are recorded
// after the fact.
type MessageStatus string

const (
	StatusSent   MessageStatus = "sent"
	StatusFailed MessageStatus = "failed"
)

// MessageRecord is one row of the broadcast audit log.
type MessageRecord struct {
	ID            int64         `db:"id" json:"id"`
	ListingID     int64         `db:"listing_id" json:"listingId"`
	ReservationID int64         `db:"reservation_id" json:"reservationId"`
	ThreadID      int64         `db:"thread_id" json:"threadId"`
	Content       string        `db:"content" json:"content"`
	Status        MessageStatus `db:"status" json:"status"`
	Error         *string       `db:"error" json:"error,omitempty"`
	SentAt        *time.Time    `db:"sent_at" json:"sentAt,omitempty"`
	CreatedAt     time.Time     `db:"created_at" json:"createdAt"`
}
