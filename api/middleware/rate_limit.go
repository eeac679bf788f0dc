package middleware

import (
	"context"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/aromacraft/storefront-backend/api/responses"
	pkgerrors "github.com/aromacraft/storefront-backend/pkg/errors"
	"github.com/aromacraft/storefront-backend/pkg/logger"
)

type fixedWindowLimiter interface {
	FixedWindowAllow(ctx context.Context, scope string, limit int64, window time.Duration) (bool, int64, error)
}

// FormRateLimitPolicy throttles anonymous form submissions per client IP.
type FormRateLimitPolicy struct {
	name   string
	window time.Duration
	limit  int
}

func NewFormRateLimitPolicy(name string, window time.Duration, limit int) FormRateLimitPolicy {
	return FormRateLimitPolicy{
		name:   strings.ToLower(strings.TrimSpace(name)),
		window: window,
		limit:  limit,
	}
}

func (p FormRateLimitPolicy) enabled() bool {
	return p.window > 0 && p.limit > 0
}

func (p FormRateLimitPolicy) normalizedName() string {
	if p.name == "" {
		return "forms"
	}
	return p.name
}

// FormRateLimit enforces the policy against the events and newsletter
// endpoints, the only surfaces an anonymous visitor can write through
// without a cart.
func FormRateLimit(policy FormRateLimitPolicy, limiter fixedWindowLimiter, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !policy.enabled() || limiter == nil {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			ip := clientIP(r)
			scope := policy.normalizedName() + ":" + ip
			allowed, count, err := limiter.FixedWindowAllow(ctx, scope, int64(policy.limit), policy.window)
			if err != nil {
				responses.WriteError(ctx, nil, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rate limiting"))
				return
			}
			if !allowed {
				if logg != nil {
					logCtx := logg.WithFields(ctx, map[string]any{
						"policy":         policy.normalizedName(),
						"ip":             ip,
						"attempts":       count,
						"limit":          policy.limit,
						"window_seconds": int(policy.window.Seconds()),
					})
					logg.Warn(logCtx, "forms.rate_limit.blocked")
				}
				responses.WriteError(ctx, nil, w, pkgerrors.New(pkgerrors.CodeRateLimit, "too many submissions, please try again later"))
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
