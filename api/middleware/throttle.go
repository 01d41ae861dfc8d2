package middleware

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/creatorlift/creatorlift-backend/api/responses"
	pkgerrors "github.com/creatorlift/creatorlift-backend/pkg/errors"
	"github.com/creatorlift/creatorlift-backend/pkg/logger"
)

type throttleStore interface {
	IncrWithTTL(context.Context, string, time.Duration) (int64, error)
}

// ThrottlePolicy defines the per-IP fixed-window limit for a traffic surface.
type ThrottlePolicy struct {
	name    string
	window  time.Duration
	ipLimit int
}

// NewThrottlePolicy builds a policy with the supplied window and limit.
func NewThrottlePolicy(name string, window time.Duration, ipLimit int) ThrottlePolicy {
	return ThrottlePolicy{
		name:    strings.ToLower(strings.TrimSpace(name)),
		window:  window,
		ipLimit: ipLimit,
	}
}

func (p ThrottlePolicy) enabled() bool {
	return p.window > 0 && p.ipLimit > 0
}

func (p ThrottlePolicy) normalizedName() string {
	if p.name == "" {
		return "default"
	}
	return p.name
}

func (p ThrottlePolicy) ipKey(ip string) string {
	if ip == "" {
		return ""
	}
	return fmt.Sprintf("rl:ip:%s:%s", p.normalizedName(), ip)
}

// Throttle enforces a per-IP counter on the wrapped surface. This is edge
// abuse protection; the per-user research allowance is enforced separately in
// the service layer.
func Throttle(policy ThrottlePolicy, store throttleStore, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !policy.enabled() || store == nil {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			ip := clientIP(r)
			key := policy.ipKey(ip)
			if key == "" {
				next.ServeHTTP(w, r)
				return
			}

			count, err := store.IncrWithTTL(ctx, key, policy.window)
			if err != nil {
				responses.WriteError(ctx, nil, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rate limiting"))
				return
			}
			if count > int64(policy.ipLimit) {
				if logg != nil {
					logCtx := logg.WithFields(ctx, map[string]any{
						"policy":         policy.normalizedName(),
						"ip":             ip,
						"attempts":       count,
						"limit":          policy.ipLimit,
						"window_seconds": int(policy.window.Seconds()),
					})
					logg.Warn(logCtx, "throttle.blocked")
				}
				responses.WriteError(ctx, nil, w, pkgerrors.New(pkgerrors.CodeRateLimit, "rate limit exceeded"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	if r == nil {
		return ""
	}
	if header := r.Header.Get("X-Forwarded-For"); header != "" {
		for _, part := range strings.Split(header, ",") {
			if ip := strings.TrimSpace(part); ip != "" {
				return ip
			}
		}
	}
	if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); ip != "" {
		return ip
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && host != "" {
		return host
	}
	return r.RemoteAddr
}
