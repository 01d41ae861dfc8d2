package controllers

import (
	"net/http"

	"github.com/creatorlift/creatorlift-backend/api/middleware"
	"github.com/creatorlift/creatorlift-backend/api/responses"
	"github.com/creatorlift/creatorlift-backend/internal/usage"
	pkgerrors "github.com/creatorlift/creatorlift-backend/pkg/errors"
	"github.com/creatorlift/creatorlift-backend/pkg/logger"
)

type quotaUsagePayload struct {
	Used      int `json:"used"`
	Limit     int `json:"limit"`
	Remaining int `json:"remaining"`
}

type usageResponse struct {
	Quota quotaUsagePayload  `json:"quota"`
	User  *quotaUsagePayload `json:"user,omitempty"`
}

// GetUsage reports today's global quota spend and, for identified callers,
// their personal allowance.
func GetUsage(tracker usage.Tracker, dailyQuotaLimit int, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		used, err := tracker.UsageToday(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading quota usage"))
			return
		}
		remaining := dailyQuotaLimit - used
		if remaining < 0 {
			remaining = 0
		}
		payload := usageResponse{
			Quota: quotaUsagePayload{Used: used, Limit: dailyQuotaLimit, Remaining: remaining},
		}

		if userID := middleware.UserIDFromContext(ctx); userID != nil {
			requests, err := tracker.DailyUsage(ctx, *userID)
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading user usage"))
				return
			}
			left, err := tracker.Remaining(ctx, *userID)
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading user allowance"))
				return
			}
			payload.User = &quotaUsagePayload{
				Used:      requests,
				Limit:     tracker.UserDailyLimit(),
				Remaining: left,
			}
		}

		responses.WriteSuccess(w, payload)
	}
}
