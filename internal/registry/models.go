package registry

import (
	"encoding/hex"
	"fmt"
	"time"
)

// Kind classifies a report as a lost-item or found-item submission.
type Kind string

const (
	KindLost  Kind = "lost"
	KindFound Kind = "found"
)

// Valid reports whether the kind is one of the two known values.
func (k Kind) Valid() bool {
	return k == KindLost || k == KindFound
}

// Status tracks a report through its lifecycle. Transitions never return a
// report to Open; Claimed and Closed are terminal.
type Status string

const (
	StatusOpen    Status = "open"
	StatusMatched Status = "matched"
	StatusClaimed Status = "claimed"
	StatusClosed  Status = "closed"
)

// Confidence bounds. Confidence is a fixed-point probability scaled by 10000
// (10000 = 100%), computed externally and stored opaquely.
const MaxConfidence = 10000

// MatchThreshold is the minimum confidence and minimum similarity score
// required before a potential match is emitted.
const MatchThreshold = 8500

// DigestSize is the byte length of a feature digest.
const DigestSize = 32

// FeatureDigest summarizes an externally computed feature vector. It is only
// ever compared, never decoded.
type FeatureDigest [DigestSize]byte

// ParseFeatureDigest decodes a hex-encoded digest.
func ParseFeatureDigest(s string) (FeatureDigest, error) {
	var d FeatureDigest
	raw, err := hex.DecodeString(s)
	if err != nil {
		return d, fmt.Errorf("decode feature digest: %w", err)
	}
	if len(raw) != DigestSize {
		return d, fmt.Errorf("feature digest must be %d bytes, got %d", DigestSize, len(raw))
	}
	copy(d[:], raw)
	return d, nil
}

func (d FeatureDigest) String() string {
	return hex.EncodeToString(d[:])
}

// Report is the sole registry entity. All fields except Status and
// MatchedWith are immutable after creation.
type Report struct {
	ID               int64
	ReporterIdentity string
	Kind             Kind
	Category         string
	Description      string
	MediaReference   string
	FeatureDigest    FeatureDigest
	Confidence       int
	Location         string
	CreatedAt        time.Time
	Status           Status
	MatchedWith      int64
}

// CreateReportInput carries the caller-supplied fields for a new report.
// Identity, id, timestamps, and status are assigned by the service.
type CreateReportInput struct {
	Kind           Kind
	Category       string
	Description    string
	MediaReference string
	FeatureDigest  FeatureDigest
	Confidence     int
	Location       string
}
