// Package events carries the registry notification stream. Every successful
// registry operation emits exactly one event per triggering effect; observers
// (an off-chain matcher, a UI, a reward service) consume the stream through
// sinks.
package events

import (
	"time"

	"github.com/google/uuid"
)

// Type names an event on the stream.
type Type string

const (
	TypeReportCreated  Type = "report_created"
	TypePotentialMatch Type = "potential_match"
	TypeClaimInitiated Type = "claim_initiated"
	TypeItemReturned   Type = "item_returned"
)

// Event is a single entry on the notification stream. Only the fields
// relevant to the event's Type are populated.
type Event struct {
	ID        uuid.UUID `json:"id"`
	Type      Type      `json:"type"`
	Timestamp time.Time `json:"timestamp"`

	// report_created
	ReportID         int64  `json:"report_id,omitempty"`
	Kind             string `json:"kind,omitempty"`
	ReporterIdentity string `json:"reporter_identity,omitempty"`

	// potential_match, claim_initiated, item_returned
	LostID  int64 `json:"lost_id,omitempty"`
	FoundID int64 `json:"found_id,omitempty"`

	// potential_match
	Score int `json:"score,omitempty"`

	// claim_initiated
	ClaimantIdentity string `json:"claimant_identity,omitempty"`
}
