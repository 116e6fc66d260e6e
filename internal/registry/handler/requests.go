package handler

import (
	"lostfound/internal/registry"
	dErrors "lostfound/pkg/domain-errors"
)

// CreateReportRequest is the JSON body for POST /reports. The feature digest
// travels hex-encoded; confidence uses the registry's 0..10000 fixed-point
// scale.
type CreateReportRequest struct {
	Kind           string `json:"kind"`
	Category       string `json:"category"`
	Description    string `json:"description"`
	MediaReference string `json:"media_reference"`
	FeatureDigest  string `json:"feature_digest"`
	Confidence     int    `json:"confidence"`
	Location       string `json:"location"`
}

func (r CreateReportRequest) toInput() (registry.CreateReportInput, error) {
	digest, err := registry.ParseFeatureDigest(r.FeatureDigest)
	if err != nil {
		return registry.CreateReportInput{}, dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid feature digest")
	}
	return registry.CreateReportInput{
		Kind:           registry.Kind(r.Kind),
		Category:       r.Category,
		Description:    r.Description,
		MediaReference: r.MediaReference,
		FeatureDigest:  digest,
		Confidence:     r.Confidence,
		Location:       r.Location,
	}, nil
}

// ClaimRequest is the JSON body for POST /claims and POST /claims/handover.
type ClaimRequest struct {
	LostID  int64 `json:"lost_id"`
	FoundID int64 `json:"found_id"`
}
