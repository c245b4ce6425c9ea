package middleware

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/deskforge/authcore/audit"
	"github.com/deskforge/authcore/auth"
	"github.com/deskforge/authcore/observe"
	"github.com/deskforge/authcore/ratelimit"
	"github.com/deskforge/authcore/tenant"
)

// ActivityRecorder updates a principal's last-activity timestamp.
// Fire-and-forget: failures are logged, never surfaced to the request.
type ActivityRecorder interface {
	Touch(ctx context.Context, identityID string, at time.Time) error
}

// Options configures one wrapped route class.
type Options struct {
	// Config is the resolution policy for this route class.
	Config auth.Config

	// Optional invokes the core handler with an absent identity on
	// resolution failure instead of rejecting the request.
	Optional bool

	// Scoper, when set, constructs an organization-scoped store handle
	// and attaches it to the request context.
	Scoper *tenant.Scoper

	// Activity, when set, records last-activity timestamps.
	Activity ActivityRecorder

	// RateLimit, when set, is checked before the core handler runs.
	// Backend errors fail open.
	RateLimit       ratelimit.Backend
	RateLimitPolicy ratelimit.Policy

	// Audit, when set, receives one event per admitted request.
	Audit audit.Sink

	// Logger for stage diagnostics. Default: NopLogger.
	Logger observe.Logger

	// Metrics for rate-limit rejections. Optional.
	Metrics *observe.Metrics
}

// Handler wraps HTTP handlers with the configured resolution and
// cross-cutting stages.
func Handler(resolver *auth.Resolver, opts Options) func(http.Handler) http.Handler {
	log := opts.Logger
	if log == nil {
		log = observe.NopLogger()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			req := auth.FromHTTP(r)

			res := resolver.Authenticate(ctx, req, opts.Config)
			if !res.Authenticated {
				if opts.Optional {
					next.ServeHTTP(w, r)
					return
				}
				writeJSON(w, http.StatusUnauthorized, map[string]any{
					"error": res.Reason,
				})
				return
			}

			ctx = auth.WithIdentity(ctx, res.Identity)
			ctx = auth.WithResult(ctx, res)

			if opts.Scoper != nil {
				scoped, err := opts.Scoper.Scope(ctx, res.Identity)
				if err != nil {
					log.Debug(ctx, "tenant scope refused", observe.F("reason", err.Error()))
					writeJSON(w, http.StatusForbidden, map[string]any{
						"error": "Forbidden",
					})
					return
				}
				ctx = tenant.WithStore(ctx, scoped)
			}

			if opts.Activity != nil && res.Identity != nil {
				if err := opts.Activity.Touch(ctx, res.Identity.ID, time.Now()); err != nil {
					log.Debug(ctx, "activity update failed", observe.F("error", err.Error()))
				}
			}

			if opts.RateLimit != nil {
				dec, err := opts.RateLimit.Check(ctx, rateSubject(res, req), opts.RateLimitPolicy)
				switch {
				case err != nil:
					// Fail open: availability over strictness.
					log.Warn(ctx, "rate limiter unavailable, failing open",
						observe.F("error", err.Error()))
				case !dec.Allowed:
					opts.Metrics.RecordRateLimited(ctx)
					recordAudit(ctx, opts.Audit, log, res, req, "rate_limited")
					retry := retryAfterSeconds(dec)
					w.Header().Set("Retry-After", strconv.Itoa(retry))
					writeJSON(w, http.StatusTooManyRequests, map[string]any{
						"error":               "Rate limit exceeded",
						"retry_after_seconds": retry,
					})
					return
				}
			}

			recordAudit(ctx, opts.Audit, log, res, req, "allowed")

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// rateSubject picks the rate-limit subject: the resolved principal, or the
// client address when the identity carries no id.
func rateSubject(res *auth.Result, req *auth.Request) string {
	if res.Identity != nil && res.Identity.ID != "" {
		return res.Identity.ID
	}
	return req.ClientIP()
}

func retryAfterSeconds(dec ratelimit.Decision) int {
	secs := int(math.Ceil(dec.RetryAfter(time.Now()).Seconds()))
	if secs < 1 {
		secs = 1
	}
	return secs
}

func recordAudit(ctx context.Context, sink audit.Sink, log observe.Logger, res *auth.Result, req *auth.Request, outcome string) {
	if sink == nil {
		return
	}
	e := audit.NewEvent()
	e.OrganizationID = res.OrganizationID
	e.AuthMethod = string(res.Method)
	e.RequestMethod = req.Method
	e.Path = req.Path
	e.ClientIP = res.Metadata.ClientIP
	e.UserAgent = res.Metadata.UserAgent
	e.Outcome = outcome
	if res.Identity != nil {
		e.Principal = res.Identity.ID
	}
	if err := sink.Record(ctx, e); err != nil {
		log.Debug(ctx, "audit record failed", observe.F("error", err.Error()))
	}
}

func writeJSON(w http.ResponseWriter, status int, body map[string]any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
