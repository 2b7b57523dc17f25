package domain

import (
	"fmt"
	"time"
)

// BroadcastResult is the aggregate outcome of one campaign run. It is
// returned to the caller and never persisted.
type BroadcastResult struct {
	ListingsDiscovered int       `json:"listingsDiscovered"`
	ListingsProcessed  int       `json:"listingsProcessed"`
	ListingsSkipped    int       `json:"listingsSkipped"`
	TotalBookings      int       `json:"totalBookings"`
	MessagesSent       int       `json:"messagesSent"`
	Errors             []string  `json:"errors"`
	ChekinAvailable    bool      `json:"chekinAvailable"`
	StartedAt          time.Time `json:"startedAt"`
	FinishedAt         time.Time `json:"finishedAt"`
}

// ErrorKind tags the failure classes the orchestrator handles explicitly.
type ErrorKind string

const (
	ErrDiscovery  ErrorKind = "discovery"
	ErrCollection ErrorKind = "collection"
	ErrEnrichment ErrorKind = "enrichment"
	ErrSend       ErrorKind = "send"
	ErrConfig     ErrorKind = "config"
)

// CampaignError carries enough context (listing/reservation id) to act on
// a failure manually after the campaign finishes.
type CampaignError struct {
	Kind          ErrorKind
	ListingID     int64
	ReservationID int64
	Err           error
}

func (e *CampaignError) Error() string {
	switch {
	case e.ReservationID != 0:
		return fmt.Sprintf("%s error on reservation %d (listing %d): %v", e.Kind, e.ReservationID, e.ListingID, e.Err)
	case e.ListingID != 0:
		return fmt.Sprintf("%s error on listing %d: %v", e.Kind, e.ListingID, e.Err)
	default:
		return fmt.Sprintf("%s error: %v", e.Kind, e.Err)
	}
}

func (e *CampaignError) Unwrap() error {
	return e.Err
}
