package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"lostfound/internal/registry"
)

// DefaultCacheTTL bounds how long a cached report may serve reads. Reports
// are mostly immutable, so the TTL only matters as a safety net after missed
// invalidations.
const DefaultCacheTTL = 5 * time.Minute

// CachedStore decorates a ReportStore with a Redis read-through cache for
// Get. Pair mutations invalidate both sides before hitting the backing
// store so a failed invalidation surfaces instead of serving stale state.
type CachedStore struct {
	registry.ReportStore
	client *redis.Client
	ttl    time.Duration
}

func NewCachedStore(backing registry.ReportStore, client *redis.Client, ttl time.Duration) *CachedStore {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &CachedStore{ReportStore: backing, client: client, ttl: ttl}
}

func (s *CachedStore) Get(ctx context.Context, id int64) (registry.Report, error) {
	key := reportKey(id)
	raw, err := s.client.Get(ctx, key).Bytes()
	if err == nil {
		var payload cachedReport
		if err := json.Unmarshal(raw, &payload); err == nil {
			return payload.toReport(), nil
		}
		// Corrupt entry: fall through to the backing store and overwrite.
	} else if !errors.Is(err, redis.Nil) {
		return registry.Report{}, fmt.Errorf("redis get report: %w", err)
	}

	report, err := s.ReportStore.Get(ctx, id)
	if err != nil {
		return registry.Report{}, err
	}

	if raw, err := json.Marshal(toCachedReport(report)); err == nil {
		if err := s.client.Set(ctx, key, raw, s.ttl).Err(); err != nil {
			return registry.Report{}, fmt.Errorf("redis cache report: %w", err)
		}
	}
	return report, nil
}

func (s *CachedStore) SetMatched(ctx context.Context, lostID, foundID int64) error {
	if err := s.invalidate(ctx, lostID, foundID); err != nil {
		return err
	}
	return s.ReportStore.SetMatched(ctx, lostID, foundID)
}

func (s *CachedStore) SetReturned(ctx context.Context, lostID, foundID int64) error {
	if err := s.invalidate(ctx, lostID, foundID); err != nil {
		return err
	}
	return s.ReportStore.SetReturned(ctx, lostID, foundID)
}

func (s *CachedStore) invalidate(ctx context.Context, ids ...int64) error {
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = reportKey(id)
	}
	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("redis invalidate reports: %w", err)
	}
	return nil
}

func reportKey(id int64) string {
	return fmt.Sprintf("lostfound:report:%d", id)
}

// cachedReport is the Redis JSON shape; the digest travels hex-encoded.
type cachedReport struct {
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
	MatchedWith      int64     `json:"matched_with"`
}

func toCachedReport(report registry.Report) cachedReport {
	return cachedReport{
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

func (c cachedReport) toReport() registry.Report {
	digest, _ := registry.ParseFeatureDigest(c.FeatureDigest)
	return registry.Report{
		ID:               c.ID,
		ReporterIdentity: c.ReporterIdentity,
		Kind:             registry.Kind(c.Kind),
		Category:         c.Category,
		Description:      c.Description,
		MediaReference:   c.MediaReference,
		FeatureDigest:    digest,
		Confidence:       c.Confidence,
		Location:         c.Location,
		CreatedAt:        c.CreatedAt,
		Status:           registry.Status(c.Status),
		MatchedWith:      c.MatchedWith,
	}
}
