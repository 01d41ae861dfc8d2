package controllers

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/creatorlift/creatorlift-backend/api/middleware"
	"github.com/creatorlift/creatorlift-backend/api/responses"
	"github.com/creatorlift/creatorlift-backend/api/validators"
	"github.com/creatorlift/creatorlift-backend/internal/research"
	"github.com/creatorlift/creatorlift-backend/pkg/db/models"
	"github.com/creatorlift/creatorlift-backend/pkg/logger"
	"github.com/creatorlift/creatorlift-backend/pkg/types"
)

type triggerResearchRequest struct {
	Force bool `json:"force"`
}

type researchResponse struct {
	IdeaID   uuid.UUID        `json:"ideaId"`
	Cached   bool             `json:"cached"`
	Fresh    bool             `json:"fresh"`
	Score    *scorePayload    `json:"score,omitempty"`
	Snapshot *snapshotPayload `json:"snapshot,omitempty"`
}

type scorePayload struct {
	Demand           int               `json:"demand"`
	DemandLabel      string            `json:"demandLabel"`
	Competition      int               `json:"competition"`
	CompetitionLabel string            `json:"competitionLabel"`
	Opportunity      int               `json:"opportunity"`
	OpportunityLabel string            `json:"opportunityLabel"`
	CompositeLabel   string            `json:"compositeLabel"`
	Explanation      types.Explanation `json:"explanation"`
	UpdatedAt        time.Time         `json:"updatedAt"`
}

type snapshotPayload struct {
	ID             uuid.UUID          `json:"id"`
	QueryTerm      string             `json:"queryTerm"`
	VideoCount     int                `json:"videoCount"`
	AvgViews       int64              `json:"avgViews"`
	MedianViews    int64              `json:"medianViews"`
	MaxViews       int64              `json:"maxViews"`
	AvgViewsPerDay float64            `json:"avgViewsPerDay"`
	UniqueChannels int                `json:"uniqueChannels"`
	TopChannels    types.ChannelStats `json:"topChannels,omitempty"`
	Status         string             `json:"status"`
	FetchedAt      time.Time          `json:"fetchedAt"`
}

// TriggerResearch runs the research pipeline for an idea. force can come
// from the query string or the JSON body; either form wins.
func TriggerResearch(svc research.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		ideaID, err := validators.ParseUUIDParam(r, "ideaID")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		force, err := validators.ParseQueryBool(r, "force", false)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		var body triggerResearchRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		force = force || body.Force

		result, err := svc.FetchAndScore(ctx, ideaID, middleware.UserIDFromContext(ctx), force)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, buildResearchResponse(ideaID, result))
	}
}

// GetResearch returns the stored score without spending any quota.
func GetResearch(svc research.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		ideaID, err := validators.ParseUUIDParam(r, "ideaID")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		result, err := svc.LatestScore(ctx, ideaID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, buildResearchResponse(ideaID, result))
	}
}

func buildResearchResponse(ideaID uuid.UUID, result *research.Result) researchResponse {
	out := researchResponse{IdeaID: ideaID, Cached: result.Cached, Fresh: result.Fresh}
	if result.Score != nil {
		out.Score = buildScorePayload(result.Score)
	}
	if result.Snapshot != nil {
		out.Snapshot = buildSnapshotPayload(result.Snapshot)
	}
	return out
}

func buildScorePayload(score *models.IdeaScore) *scorePayload {
	return &scorePayload{
		Demand:           score.DemandScore,
		DemandLabel:      string(score.DemandLabel),
		Competition:      score.CompetitionScore,
		CompetitionLabel: string(score.CompetitionLabel),
		Opportunity:      score.OpportunityScore,
		OpportunityLabel: string(score.OpportunityLabel),
		CompositeLabel:   string(score.CompositeLabel),
		Explanation:      score.Explanation,
		UpdatedAt:        score.UpdatedAt,
	}
}

func buildSnapshotPayload(snapshot *models.ResearchSnapshot) *snapshotPayload {
	return &snapshotPayload{
		ID:             snapshot.ID,
		QueryTerm:      snapshot.QueryTerm,
		VideoCount:     snapshot.VideoCount,
		AvgViews:       snapshot.AvgViews,
		MedianViews:    snapshot.MedianViews,
		MaxViews:       snapshot.MaxViews,
		AvgViewsPerDay: snapshot.AvgViewsPerDay,
		UniqueChannels: snapshot.UniqueChannels,
		TopChannels:    snapshot.TopChannels,
		Status:         string(snapshot.Status),
		FetchedAt:      snapshot.FetchedAt,
	}
}
