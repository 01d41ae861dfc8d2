package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/creatorlift/creatorlift-backend/api/responses"
	pkgerrors "github.com/creatorlift/creatorlift-backend/pkg/errors"
	"github.com/creatorlift/creatorlift-backend/pkg/logger"
)

const userIDHeader = "X-User-Id"

// Identity reads the caller identity the edge gateway forwards in X-User-Id.
// Anonymous requests pass through without one; a malformed header is rejected
// rather than silently treated as anonymous, since that would skip the
// per-user allowance.
func Identity(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get(userIDHeader))
			if raw == "" {
				next.ServeHTTP(w, r)
				return
			}

			userID, err := uuid.Parse(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.New(pkgerrors.CodeValidation, "X-User-Id must be a UUID"))
				return
			}

			ctx := WithUserID(r.Context(), userID)
			if logg != nil {
				ctx = logg.WithUserID(ctx, userID.String())
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
