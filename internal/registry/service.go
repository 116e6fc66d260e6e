package registry

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"lostfound/internal/events"
	"lostfound/internal/registry/metrics"
	dErrors "lostfound/pkg/domain-errors"
)

// EventPublisher receives one event per successful registry effect.
type EventPublisher interface {
	Emit(ctx context.Context, event events.Event)
}

// Service owns the report registry: identity allocation, the match scan, and
// the claim/handover state machine. The original execution environment ran
// every operation serially; mu reproduces that single mutual-exclusion domain
// here, regardless of which store backs the service.
type Service struct {
	mu        sync.RWMutex
	store     ReportStore
	scorer    SimilarityScorer
	publisher EventPublisher
	logger    *slog.Logger
	metrics   *metrics.Metrics
	now       func() time.Time
}

// New wires a registry service. A nil scorer falls back to the built-in
// DigestScorer placeholder.
func New(store ReportStore, scorer SimilarityScorer, publisher EventPublisher, logger *slog.Logger, m *metrics.Metrics) *Service {
	if scorer == nil {
		scorer = DigestScorer{}
	}
	return &Service{
		store:     store,
		scorer:    scorer,
		publisher: publisher,
		logger:    logger,
		metrics:   m,
		now:       time.Now,
	}
}

// CreateReport validates the confidence range, allocates the next id, and
// stores an Open report owned by caller. Emits report_created.
func (s *Service) CreateReport(ctx context.Context, input CreateReportInput, caller string) (int64, error) {
	if input.Confidence < 0 || input.Confidence > MaxConfidence {
		return 0, dErrors.New(dErrors.CodeInvalidConfidence, "confidence must be in [0, 10000]")
	}
	if !input.Kind.Valid() {
		return 0, dErrors.New(dErrors.CodeBadRequest, "kind must be lost or found")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	report := Report{
		ReporterIdentity: caller,
		Kind:             input.Kind,
		Category:         input.Category,
		Description:      input.Description,
		MediaReference:   input.MediaReference,
		FeatureDigest:    input.FeatureDigest,
		Confidence:       input.Confidence,
		Location:         input.Location,
		CreatedAt:        s.now(),
		Status:           StatusOpen,
	}

	id, err := s.store.Create(ctx, report)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "store report")
	}

	s.metrics.IncReportsCreated(string(input.Kind))
	s.publisher.Emit(ctx, events.Event{
		Type:             events.TypeReportCreated,
		ReportID:         id,
		Kind:             string(input.Kind),
		ReporterIdentity: caller,
	})

	s.logger.InfoContext(ctx, "report created",
		"report_id", id,
		"kind", input.Kind,
		"category", input.Category,
	)
	return id, nil
}

// ScanForMatches compares the given report against every other report in the
// registry and emits potential_match for each candidate whose similarity
// score clears the threshold. The scan is a deliberate O(n) linear pass; real
// matching lives in an external service behind SimilarityScorer.
func (s *Service) ScanForMatches(ctx context.Context, newReportID int64) error {
	start := s.now()

	s.mu.RLock()
	defer s.mu.RUnlock()

	newReport, err := s.getReport(ctx, newReportID)
	if err != nil {
		return err
	}

	candidates, err := s.store.List(ctx)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "list reports")
	}

	for _, rep := range candidates {
		if rep.ID == newReport.ID {
			continue
		}
		if rep.Kind == newReport.Kind {
			continue
		}
		if rep.Status != StatusOpen {
			continue
		}
		if rep.Category != newReport.Category {
			continue
		}
		if rep.Confidence < MatchThreshold || newReport.Confidence < MatchThreshold {
			continue
		}

		score := s.scorer.Score(rep.FeatureDigest, newReport.FeatureDigest, rep.Confidence, newReport.Confidence)
		if score < MatchThreshold {
			continue
		}

		lostID, foundID := pairIDs(rep, newReport)
		s.metrics.IncPotentialMatches()
		s.publisher.Emit(ctx, events.Event{
			Type:    events.TypePotentialMatch,
			LostID:  lostID,
			FoundID: foundID,
			Score:   score,
		})
	}

	s.metrics.ObserveScanLatency(s.now().Sub(start))
	return nil
}

// InitiateClaim moves an Open lost/found pair to Matched with symmetric
// cross-references. Only the lost report's owner may initiate, and both
// reports must still be Open; a report that is already matched or settled
// cannot be claimed again. Emits claim_initiated. All checks run before any
// mutation so a rejected claim leaves both reports untouched.
func (s *Service) InitiateClaim(ctx context.Context, lostID, foundID int64, caller string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	lost, err := s.getReport(ctx, lostID)
	if err != nil {
		return err
	}
	found, err := s.getReport(ctx, foundID)
	if err != nil {
		return err
	}

	if lost.Kind != KindLost {
		return dErrors.New(dErrors.CodeWrongReportKind, "first report must be a lost report")
	}
	if found.Kind != KindFound {
		return dErrors.New(dErrors.CodeWrongReportKind, "second report must be a found report")
	}
	if lost.Status != StatusOpen || found.Status != StatusOpen {
		return dErrors.New(dErrors.CodeNotMatched, "both reports must be open to initiate a claim")
	}
	if lost.ReporterIdentity != caller {
		return dErrors.New(dErrors.CodeUnauthorized, "only the lost report's owner may initiate a claim")
	}

	if err := s.store.SetMatched(ctx, lostID, foundID); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "mark reports matched")
	}

	s.metrics.IncClaimsInitiated()
	s.publisher.Emit(ctx, events.Event{
		Type:             events.TypeClaimInitiated,
		LostID:           lostID,
		FoundID:          foundID,
		ClaimantIdentity: caller,
	})

	s.logger.InfoContext(ctx, "claim initiated",
		"lost_id", lostID,
		"found_id", foundID,
	)
	return nil
}

// ConfirmHandover closes out a matched pair: lost side becomes Claimed, found
// side Closed. Either reporter may confirm. Re-confirming an already settled
// pair is rejected; the pair must still be in Matched status. Emits
// item_returned.
func (s *Service) ConfirmHandover(ctx context.Context, lostID, foundID int64, caller string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	lost, err := s.getReport(ctx, lostID)
	if err != nil {
		return err
	}
	found, err := s.getReport(ctx, foundID)
	if err != nil {
		return err
	}

	if lost.MatchedWith != foundID || found.MatchedWith != lostID {
		return dErrors.New(dErrors.CodeNotMatched, "reports are not a matched pair")
	}
	if lost.Status != StatusMatched || found.Status != StatusMatched {
		return dErrors.New(dErrors.CodeNotMatched, "pair has already been settled")
	}
	if caller != lost.ReporterIdentity && caller != found.ReporterIdentity {
		return dErrors.New(dErrors.CodeUnauthorized, "only a reporter of the pair may confirm handover")
	}

	if err := s.store.SetReturned(ctx, lostID, foundID); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "mark reports returned")
	}

	s.metrics.IncItemsReturned()
	s.publisher.Emit(ctx, events.Event{
		Type:    events.TypeItemReturned,
		LostID:  lostID,
		FoundID: foundID,
	})

	s.logger.InfoContext(ctx, "item returned",
		"lost_id", lostID,
		"found_id", foundID,
	)
	return nil
}

// GetReport returns the report at id or not_found.
func (s *Service) GetReport(ctx context.Context, id int64) (Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getReport(ctx, id)
}

// getReport assumes the caller holds mu.
func (s *Service) getReport(ctx context.Context, id int64) (Report, error) {
	if id <= 0 {
		return Report{}, dErrors.New(dErrors.CodeNotFound, "unknown report id")
	}
	report, err := s.store.Get(ctx, id)
	if err != nil {
		if dErrors.Is(err, dErrors.CodeNotFound) {
			return Report{}, err
		}
		return Report{}, dErrors.Wrap(err, dErrors.CodeInternal, "load report")
	}
	return report, nil
}

// pairIDs orders a candidate pair by kind: the Lost report's id is the lost
// id regardless of which report triggered the scan.
func pairIDs(a, b Report) (lostID, foundID int64) {
	if a.Kind == KindLost {
		return a.ID, b.ID
	}
	return b.ID, a.ID
}
