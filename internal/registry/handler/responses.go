package handler

import (
	"time"

	"lostfound/internal/events"
	"lostfound/internal/registry"
)

type CreateReportResponse struct {
	ID int64 `json:"id"`
}

type ReportResponse struct {
	ID               int64     `json:"id"`
	ReporterIdentity string    `json:"reporter_identity"`
	Kind             string    `json:"kind"`
	Category         string    `json:"category"`
	Description      string    `json:"description"`
	MediaReference   string    `json:"media_reference"`
	FeatureDigest    string    `json:"feature_digest"`
	Confidence       int       `json:"confidence"`
	Location         string    `json:"location"`
	CreatedAt        time.Time `json:"created_at"`
	Status           string    `json:"status"`
	MatchedWith      int64     `json:"matched_with,omitempty"`
}

func toReportResponse(report registry.Report) ReportResponse {
	return ReportResponse{
		ID:               report.ID,
		ReporterIdentity: report.ReporterIdentity,
		Kind:             string(report.Kind),
		Category:         report.Category,
		Description:      report.Description,
		MediaReference:   report.MediaReference,
		FeatureDigest:    report.FeatureDigest.String(),
		Confidence:       report.Confidence,
		Location:         report.Location,
		CreatedAt:        report.CreatedAt,
		Status:           string(report.Status),
		MatchedWith:      report.MatchedWith,
	}
}

type EventsResponse struct {
	Events []events.Event `json:"events"`
}
