package athlete

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/scoutline/scoutline-api/internal/domain/completion"
	"github.com/scoutline/scoutline-api/internal/pkg/logger"
	"github.com/scoutline/scoutline-api/internal/pkg/metrics"
	"github.com/scoutline/scoutline-api/internal/pkg/storage"
)

// Service handles completion, scoring and publishing of athlete profiles
type Service struct {
	repo             Repository
	loader           *SnapshotLoader
	stats            *StatsStore
	storage          storage.Storage
	metrics          *metrics.Manager
	publishThreshold int
}

// NewService creates athlete service. m may be nil when metrics are disabled.
func NewService(repo Repository, stats *StatsStore, store storage.Storage, m *metrics.Manager, publishThreshold int) *Service {
	return &Service{
		repo:             repo,
		loader:           NewSnapshotLoader(repo),
		stats:            stats,
		storage:          store,
		metrics:          m,
		publishThreshold: publishThreshold,
	}
}

// PublishThreshold is the minimum completion needed to publish
func (s *Service) PublishThreshold() int {
	return s.publishThreshold
}

func (s *Service) compute(source string, snap completion.Snapshot) completion.Result {
	result := completion.Compute(snap)
	s.metrics.ObserveCompletion(source, result.Completion, contributingSections(result))
	return result
}

func contributingSections(result completion.Result) []string {
	sections := result.Breakdown.Sections()
	names := make([]string, 0, len(sections))
	for _, name := range completion.SectionNames {
		if sections[name].Contributes {
			names = append(names, name)
		}
	}
	return names
}

// Completion computes the live completion of a stored profile
func (s *Service) Completion(ctx context.Context, id uuid.UUID) (*CompletionView, error) {
	snap, _, err := s.loader.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	return newCompletionView(s.compute(metrics.SourceRead, snap), s.publishThreshold), nil
}

// Preview scores an unsaved wizard state posted by the client
func (s *Service) Preview(raw map[string]any) *CompletionView {
	return newCompletionView(s.compute(metrics.SourcePreview, completion.FromMap(raw)), s.publishThreshold)
}

// Score returns the star rating. It reads the stored completion percentage,
// which RefreshCompletion and Publish keep current.
func (s *Service) Score(ctx context.Context, id uuid.UUID) (*ScoreView, error) {
	var (
		a        *Athlete
		contacts *ContactsVerification
		stats    completion.EngagementStats
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		a, err = s.repo.GetAthlete(gctx, id)
		return err
	})
	g.Go(func() (err error) {
		contacts, err = s.repo.GetContacts(gctx, id)
		return err
	})
	g.Go(func() (err error) {
		stats, err = s.stats.Engagement(gctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	segments := completion.ScoreSegments(completion.ScoreInput{
		Athlete:  toAthlete(a),
		Stats:    stats,
		Contacts: toContacts(contacts),
	})

	return &ScoreView{
		Segments: segments,
		Stars:    completion.StarFills(segments),
		Stats:    stats,
	}, nil
}

// RefreshCompletion recomputes and stores the completion percentage
func (s *Service) RefreshCompletion(ctx context.Context, id uuid.UUID) (*CompletionView, error) {
	snap, _, err := s.loader.Load(ctx, id)
	if err != nil {
		return nil, err
	}

	result := s.compute(metrics.SourceRefresh, snap)
	if err := s.repo.UpdateCompletion(ctx, id, result.Completion); err != nil {
		return nil, err
	}
	return newCompletionView(result, s.publishThreshold), nil
}

// Publish makes the profile visible in the directory. The completion is
// recomputed first; below the threshold ErrCompletionTooLow is returned
// together with the breakdown so the client can show what is missing.
func (s *Service) Publish(ctx context.Context, id, userID uuid.UUID) (*CompletionView, error) {
	snap, a, err := s.loader.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !a.IsOwnedBy(userID) {
		return nil, ErrNotOwner
	}

	result := s.compute(metrics.SourcePublish, snap)
	view := newCompletionView(result, s.publishThreshold)

	if !view.CanPublish {
		s.metrics.ObservePublish(metrics.PublishRejected)
		if err := s.repo.UpdateCompletion(ctx, id, result.Completion); err != nil {
			logger.LogError(ctx, err, "Failed to store completion after rejected publish", "athlete_id", id)
		}
		return view, ErrCompletionTooLow
	}

	if err := s.repo.SetPublished(ctx, id, true, result.Completion); err != nil {
		return nil, err
	}
	s.metrics.ObservePublish(metrics.PublishAccepted)
	logger.LogInfo(ctx, "Athlete profile published", "athlete_id", id, "completion", result.Completion)

	return view, nil
}

// Unpublish hides the profile
func (s *Service) Unpublish(ctx context.Context, id, userID uuid.UUID) (*PublishStatus, error) {
	a, err := s.repo.GetAthlete(ctx, id)
	if err != nil {
		return nil, err
	}
	if !a.IsOwnedBy(userID) {
		return nil, ErrNotOwner
	}

	pct := 0
	if a.CompletionPercentage.Valid {
		pct = int(a.CompletionPercentage.Int32)
	}
	if err := s.repo.SetPublished(ctx, id, false, pct); err != nil {
		return nil, err
	}
	return &PublishStatus{AthleteID: id, IsPublished: false, Completion: pct}, nil
}

// RecordView counts one profile view
func (s *Service) RecordView(ctx context.Context, id uuid.UUID) (*ViewCount, error) {
	n, err := s.stats.IncrementViews(ctx, id)
	if err != nil {
		return nil, err
	}
	return &ViewCount{ProfileViews: n}, nil
}

// ListMedia returns the athlete's media with public URLs. A non-empty
// category keeps only items whose canonical category matches.
func (s *Service) ListMedia(ctx context.Context, id uuid.UUID, category string) ([]*MediaItem, error) {
	if _, err := s.repo.GetAthlete(ctx, id); err != nil {
		return nil, err
	}

	items, err := s.repo.ListMedia(ctx, id)
	if err != nil {
		return nil, err
	}

	category = completion.CanonicalStatus(category)
	result := make([]*MediaItem, 0, len(items))
	for _, item := range items {
		if category != "" && completion.CanonicalStatus(item.Category) != category {
			continue
		}
		item.URL = s.storage.GetURL(item.StorageKey)
		result = append(result, item)
	}
	return result, nil
}

// ReviewContacts stores an operator's review verdict and refreshes the
// stored completion, since only approved contacts contribute.
func (s *Service) ReviewContacts(ctx context.Context, id uuid.UUID, status string) (*CompletionView, error) {
	if _, err := s.repo.GetAthlete(ctx, id); err != nil {
		return nil, err
	}
	if err := s.repo.SetReviewStatus(ctx, id, completion.CanonicalStatus(status)); err != nil {
		return nil, err
	}
	return s.RefreshCompletion(ctx, id)
}

// DeleteMedia removes a media item and its stored object, then refreshes
// the stored completion since the media section may have dropped out.
func (s *Service) DeleteMedia(ctx context.Context, id, mediaID, userID uuid.UUID) error {
	a, err := s.repo.GetAthlete(ctx, id)
	if err != nil {
		return err
	}
	if !a.IsOwnedBy(userID) {
		return ErrNotOwner
	}

	item, err := s.repo.GetMediaItem(ctx, mediaID)
	if err != nil {
		return err
	}
	if item.AthleteID != id {
		return ErrMediaNotFound
	}

	if err := s.storage.Delete(ctx, item.StorageKey); err != nil {
		return fmt.Errorf("delete media object: %w", err)
	}
	if err := s.repo.DeleteMediaItem(ctx, mediaID); err != nil {
		return err
	}

	if _, err := s.RefreshCompletion(ctx, id); err != nil {
		logger.LogError(ctx, err, "Failed to refresh completion after media delete", "athlete_id", id)
	}
	return nil
}

// RecomputeAll walks every athlete in id order and recomputes its completion.
// Per-athlete failures are reported through fn and do not stop the run.
func (s *Service) RecomputeAll(ctx context.Context, opts RecomputeOptions, fn func(RecomputeOutcome)) (int, error) {
	if opts.Batch <= 0 {
		return 0, ErrInvalidBatchSize
	}

	processed := 0
	after := uuid.Nil
	for {
		ids, err := s.repo.ListAthleteIDs(ctx, after, opts.Batch)
		if err != nil {
			return processed, err
		}
		for _, id := range ids {
			if err := ctx.Err(); err != nil {
				return processed, err
			}
			fn(s.RecomputeOne(ctx, id, opts.DryRun))
			processed++
		}
		if len(ids) < opts.Batch {
			return processed, nil
		}
		after = ids[len(ids)-1]
	}
}

// RecomputeOne recomputes a single athlete, persisting unless dryRun is set
func (s *Service) RecomputeOne(ctx context.Context, id uuid.UUID, dryRun bool) RecomputeOutcome {
	out := RecomputeOutcome{AthleteID: id}

	snap, _, err := s.loader.Load(ctx, id)
	if err != nil {
		out.Err = err
		return out
	}
	out.Previous = snap.Athlete.CompletionPercentage

	result := s.compute(metrics.SourceRecompute, snap)
	out.Completion = result.Completion

	if dryRun || !out.Changed() {
		return out
	}
	out.Err = s.repo.UpdateCompletion(ctx, id, result.Completion)
	return out
}
