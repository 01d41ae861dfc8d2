package research

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/creatorlift/creatorlift-backend/internal/ideas"
	"github.com/creatorlift/creatorlift-backend/internal/usage"
	"github.com/creatorlift/creatorlift-backend/pkg/config"
	"github.com/creatorlift/creatorlift-backend/pkg/db/models"
	"github.com/creatorlift/creatorlift-backend/pkg/enums"
	pkgerrors "github.com/creatorlift/creatorlift-backend/pkg/errors"
	"github.com/creatorlift/creatorlift-backend/pkg/logger"
	"github.com/creatorlift/creatorlift-backend/pkg/metrics"
	"github.com/creatorlift/creatorlift-backend/pkg/youtube"
)

// FetchCost is the quota price of one full research pass: one search call
// plus one batched statistics call.
const FetchCost = youtube.CostSearch + youtube.CostVideoStats

// SearchClient is the slice of the YouTube client the orchestrator consumes.
type SearchClient interface {
	Search(ctx context.Context, query string) (*youtube.SearchResult, error)
	VideoStats(ctx context.Context, videoIDs []string) (*youtube.StatsResult, error)
}

// Service runs the research pipeline for an idea: budget checks, external
// fetch, metric aggregation, scoring, and persistence.
type Service interface {
	// FetchAndScore produces a current score for the idea, serving a cached
	// snapshot when one is fresh enough unless forceRefresh is set. userID is
	// optional; when present the caller's daily allowance is enforced and
	// charged.
	FetchAndScore(ctx context.Context, ideaID uuid.UUID, userID *uuid.UUID, forceRefresh bool) (*Result, error)
	// LatestScore returns the stored score and its backing snapshot without
	// triggering any external calls.
	LatestScore(ctx context.Context, ideaID uuid.UUID) (*Result, error)
}

// Result is a score together with the snapshot it was computed from.
type Result struct {
	Score    *models.IdeaScore
	Snapshot *models.ResearchSnapshot
	Fresh    bool
	Cached   bool
}

// RateLimitDetails is attached to rate limit errors so clients can render the
// allowance without a second request.
type RateLimitDetails struct {
	Remaining int `json:"remaining"`
	Limit     int `json:"limit"`
}

// QuotaDetails is attached to quota errors.
type QuotaDetails struct {
	UnitsNeeded int `json:"unitsNeeded"`
	UnitsUsed   int `json:"unitsUsed"`
	DailyLimit  int `json:"dailyLimit"`
}

// ServiceParams carries the orchestrator's dependencies. Client may be nil
// when no API key is configured; the service then refuses fetches with a
// NOT_CONFIGURED error instead of failing at startup.
type ServiceParams struct {
	Repo    Repository
	Ideas   ideas.Repository
	Tracker usage.Tracker
	Client  SearchClient
	Config  config.ResearchConfig
	Logger  *logger.Logger
	Metrics *metrics.ResearchMetrics
}

type service struct {
	repo    Repository
	ideas   ideas.Repository
	tracker usage.Tracker
	client  SearchClient
	maxAge  time.Duration
	quota   int
	logger  *logger.Logger
	metrics *metrics.ResearchMetrics
	now     func() time.Time
}

// NewService wires the research orchestrator.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("research repository required")
	}
	if params.Ideas == nil {
		return nil, fmt.Errorf("ideas repository required")
	}
	if params.Tracker == nil {
		return nil, fmt.Errorf("usage tracker required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	maxAge := params.Config.SnapshotMaxAge
	if maxAge <= 0 {
		maxAge = config.DefaultSnapshotMaxAge
	}
	quota := params.Config.DailyQuotaLimit
	if quota <= 0 {
		quota = usage.DefaultDailyQuotaLimit
	}
	return &service{
		repo:    params.Repo,
		ideas:   params.Ideas,
		tracker: params.Tracker,
		client:  params.Client,
		maxAge:  maxAge,
		quota:   quota,
		logger:  params.Logger,
		metrics: params.Metrics,
		now:     time.Now,
	}, nil
}

func (s *service) FetchAndScore(ctx context.Context, ideaID uuid.UUID, userID *uuid.UUID, forceRefresh bool) (*Result, error) {
	ctx = s.logger.WithIdeaID(ctx, ideaID.String())
	if userID != nil {
		ctx = s.logger.WithUserID(ctx, userID.String())
	}

	if s.client == nil {
		s.metrics.IncOutcome("not_configured")
		return nil, pkgerrors.New(pkgerrors.CodeNotConfigured, "research requires a YouTube API key")
	}

	if !forceRefresh {
		cached, err := s.cachedResult(ctx, ideaID)
		if err != nil {
			return nil, err
		}
		if cached != nil {
			s.metrics.IncOutcome("cache_hit")
			s.logger.Info(ctx, "serving cached research result")
			return cached, nil
		}
	}

	// Per-user allowance comes before anything costing global quota, so a
	// throttled user cannot drain the shared budget.
	if userID != nil {
		allowed, err := s.tracker.CanRequest(ctx, *userID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "checking user research allowance")
		}
		if !allowed {
			s.metrics.IncOutcome("rate_limited")
			return nil, pkgerrors.New(pkgerrors.CodeRateLimit, "daily research limit reached").
				WithDetails(RateLimitDetails{Remaining: 0, Limit: s.tracker.UserDailyLimit()})
		}
	}

	idea, err := s.ideas.Get(ctx, ideaID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading idea")
	}
	if idea == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "idea not found")
	}

	affordable, err := s.tracker.CanAfford(ctx, FetchCost)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "checking quota budget")
	}
	if !affordable {
		used, usedErr := s.tracker.UsageToday(ctx)
		if usedErr != nil {
			used = 0
		}
		s.metrics.IncOutcome("quota_exhausted")
		return nil, pkgerrors.New(pkgerrors.CodeQuotaExceeded, "daily research quota exhausted").
			WithDetails(QuotaDetails{UnitsNeeded: FetchCost, UnitsUsed: used, DailyLimit: s.quota})
	}

	// The user pays for the attempt whether or not the upstream calls
	// succeed, so the counter is bumped before fetching.
	if userID != nil {
		if err := s.tracker.RecordRequest(ctx, *userID); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "recording user research request")
		}
	}

	query := youtube.BuildQueryTerm(idea.Title)
	ctx = s.logger.WithField(ctx, "query_term", query)

	started := s.now()
	search, err := s.client.Search(ctx, query)
	s.metrics.ObserveUpstream("search", s.now().Sub(started))
	if err != nil {
		return nil, s.failFetch(ctx, ideaID, query, err)
	}
	if err := s.spendUnits(ctx, youtube.CostSearch); err != nil {
		return nil, err
	}

	if len(search.Items) == 0 {
		s.logger.Info(ctx, "search returned no videos, persisting empty snapshot")
		result, err := s.persistResult(ctx, idea, query, Metrics{}, rawPayload(search.Raw, nil))
		if err != nil {
			return nil, err
		}
		s.metrics.IncOutcome("fetched_empty")
		return result, nil
	}

	videoIDs := make([]string, 0, len(search.Items))
	for _, item := range search.Items {
		videoIDs = append(videoIDs, item.VideoID)
	}

	started = s.now()
	stats, err := s.client.VideoStats(ctx, videoIDs)
	s.metrics.ObserveUpstream("videos", s.now().Sub(started))
	if err != nil {
		return nil, s.failFetch(ctx, ideaID, query, err)
	}
	if err := s.spendUnits(ctx, youtube.CostVideoStats); err != nil {
		return nil, err
	}

	result, err := s.persistResult(ctx, idea, query, ComputeMetrics(search, stats, s.now()), rawPayload(search.Raw, stats.Raw))
	if err != nil {
		return nil, err
	}
	s.metrics.IncOutcome("fetched")
	s.logger.Info(ctx, "research fetch scored and persisted")
	return result, nil
}

func (s *service) LatestScore(ctx context.Context, ideaID uuid.UUID) (*Result, error) {
	score, err := s.repo.GetScore(ctx, ideaID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading idea score")
	}
	if score == nil {
		latest, latestErr := s.repo.LatestSnapshot(ctx, ideaID)
		if latestErr != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, latestErr, "loading latest snapshot")
		}
		if latest != nil && latest.Status == enums.SnapshotStatusError {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no score available: last research attempt failed")
		}
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "idea has not been researched yet")
	}
	result := &Result{Score: score}
	if score.SnapshotID != nil {
		snapshot, err := s.repo.GetSnapshot(ctx, *score.SnapshotID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading research snapshot")
		}
		result.Snapshot = snapshot
		result.Fresh = s.isFresh(snapshot)
	}
	return result, nil
}

// cachedResult returns the existing score when its backing snapshot is still
// within the freshness window, nil otherwise. A score without a snapshot is
// never treated as fresh.
func (s *service) cachedResult(ctx context.Context, ideaID uuid.UUID) (*Result, error) {
	score, err := s.repo.GetScore(ctx, ideaID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading idea score")
	}
	if score == nil || score.SnapshotID == nil {
		return nil, nil
	}
	snapshot, err := s.repo.GetSnapshot(ctx, *score.SnapshotID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading research snapshot")
	}
	if !s.isFresh(snapshot) {
		return nil, nil
	}
	return &Result{Score: score, Snapshot: snapshot, Fresh: true, Cached: true}, nil
}

func (s *service) isFresh(snapshot *models.ResearchSnapshot) bool {
	if snapshot == nil || snapshot.Status != enums.SnapshotStatusSuccess {
		return false
	}
	return s.now().Sub(snapshot.FetchedAt) < s.maxAge
}

// spendUnits appends to the quota ledger. Persistence failures abort the
// request: an unrecorded spend would silently erode the daily budget.
func (s *service) spendUnits(ctx context.Context, units int) error {
	if err := s.tracker.RecordUsage(ctx, units); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "recording quota usage")
	}
	s.metrics.AddQuotaUnits(units)
	return nil
}

// persistResult writes one success snapshot and upserts the derived score.
func (s *service) persistResult(ctx context.Context, idea *models.Idea, query string, m Metrics, raw json.RawMessage) (*Result, error) {
	snapshot := &models.ResearchSnapshot{
		ID:             uuid.New(),
		IdeaID:         idea.ID,
		QueryTerm:      query,
		VideoCount:     m.VideoCount,
		AvgViews:       m.AvgViews,
		MedianViews:    m.MedianViews,
		MaxViews:       m.MaxViews,
		AvgViewsPerDay: m.AvgViewsPerDay,
		UniqueChannels: m.UniqueChannels,
		TopChannels:    m.TopChannels,
		RawResponse:    raw,
		Status:         enums.SnapshotStatusSuccess,
		FetchedAt:      s.now(),
	}
	if err := s.repo.CreateSnapshot(ctx, snapshot); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "persisting research snapshot")
	}

	demand := DemandScore(m.VideoCount, m.AvgViews, m.AvgViewsPerDay)
	competition := CompetitionScore(m.VideoCount, m.AvgViews, m.UniqueChannels)
	opportunity := OpportunityScore(demand, competition)
	demandLabel := ScoreBand(demand)
	competitionLabel := ScoreBand(competition)
	opportunityLabel := OpportunityBand(opportunity)

	score := &models.IdeaScore{
		ID:               uuid.New(),
		IdeaID:           idea.ID,
		SnapshotID:       &snapshot.ID,
		DemandScore:      demand,
		DemandLabel:      demandLabel,
		CompetitionScore: competition,
		CompetitionLabel: competitionLabel,
		OpportunityScore: opportunity,
		OpportunityLabel: opportunityLabel,
		CompositeLabel:   CompositeFor(PopularitySignal(idea.Votes), opportunity),
		Explanation:      BuildExplanation(m, demandLabel, competitionLabel, opportunityLabel),
	}
	if err := s.repo.UpsertScore(ctx, score); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "upserting idea score")
	}

	// Re-read after the upsert so callers see the canonical row, including
	// the surviving primary key when an existing score was updated in place.
	stored, err := s.repo.GetScore(ctx, idea.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reloading idea score")
	}
	return &Result{Score: stored, Snapshot: snapshot, Fresh: true}, nil
}

// failFetch records a zeroed error snapshot for the attempt and returns the
// upstream failure. The existing score row is left untouched so stale data
// keeps serving.
func (s *service) failFetch(ctx context.Context, ideaID uuid.UUID, query string, cause error) error {
	message := cause.Error()
	if typed := pkgerrors.As(cause); typed != nil {
		message = typed.Message()
	}
	snapshot := &models.ResearchSnapshot{
		ID:           uuid.New(),
		IdeaID:       ideaID,
		QueryTerm:    query,
		Status:       enums.SnapshotStatusError,
		ErrorMessage: &message,
		FetchedAt:    s.now(),
	}
	if err := s.repo.CreateSnapshot(ctx, snapshot); err != nil {
		s.logger.Error(ctx, "persisting error snapshot failed", err)
	}
	s.metrics.IncOutcome("failed")
	s.logger.Error(ctx, "research fetch failed", cause)
	if typed := pkgerrors.As(cause); typed != nil {
		return typed
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, cause, "research fetch failed")
}

// rawPayload bundles both upstream responses for snapshot auditing.
func rawPayload(search, videos json.RawMessage) json.RawMessage {
	payload := map[string]json.RawMessage{}
	if len(search) > 0 {
		payload["search"] = search
	}
	if len(videos) > 0 {
		payload["videos"] = videos
	}
	if len(payload) == 0 {
		return nil
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil
	}
	return raw
}
