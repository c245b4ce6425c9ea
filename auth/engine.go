package auth

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/deskforge/authcore/observe"
)

const tracerName = "github.com/deskforge/authcore/auth"

// Resolver orchestrates extractor and validator registries over an ordered
// method chain. Build it once; it is safe for concurrent use.
type Resolver struct {
	extractors map[AuthMethod]Extractor
	validators map[AuthMethod]Validator
	log        observe.Logger
	metrics    *observe.Metrics
	tracer     trace.Tracer
}

// ResolverOption customizes a Resolver.
type ResolverOption func(*Resolver)

// WithLogger sets the resolver's logger. Default: NopLogger.
func WithLogger(l observe.Logger) ResolverOption {
	return func(r *Resolver) {
		if l != nil {
			r.log = l
		}
	}
}

// WithMetrics sets the resolver's metric instruments. Default: none.
func WithMetrics(m *observe.Metrics) ResolverOption {
	return func(r *Resolver) {
		r.metrics = m
	}
}

// NewResolver creates a resolver over the given registries.
func NewResolver(extractors map[AuthMethod]Extractor, validators map[AuthMethod]Validator, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		extractors: extractors,
		validators: validators,
		log:        observe.NopLogger(),
		tracer:     otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Authenticate resolves the request against the configured method chain.
//
// Methods are tried strictly in cfg.Methods order. Per method: extract a
// candidate token (absence is not an error), validate it via the method's
// external verifier, then check the organization and permission constraints.
// The first method passing every step wins and no further methods are tried.
// A validation failure or (by default) a constraint violation falls through
// to the next method.
//
// On terminal failure the returned result carries only the opaque terminal
// message; which methods were attempted and why they failed is never exposed
// to callers.
func (r *Resolver) Authenticate(ctx context.Context, req *Request, cfg Config) *Result {
	ctx, span := r.tracer.Start(ctx, "auth.Authenticate")
	defer span.End()
	start := time.Now()

	for _, method := range cfg.Methods {
		// Abandon remaining candidates once the request is cancelled. The
		// cancellation cause stays on Err for callers; Reason carries only
		// the opaque terminal message, like any other terminal failure.
		select {
		case <-ctx.Done():
			r.debug(ctx, cfg, "auth resolution cancelled", method, ctx.Err().Error())
			res := r.terminal(ctx, cfg, start)
			res.Err = fmt.Errorf("%w: %w", res.Err, ctx.Err())
			return res
		default:
		}

		extract, ok := r.extractors[method]
		if !ok {
			continue
		}
		token, ok := extract(req)
		if !ok {
			continue
		}
		validate, ok := r.validators[method]
		if !ok {
			continue
		}

		r.metrics.RecordAttempt(ctx, string(method))
		res := validate(ctx, token, req)
		if !res.Authenticated {
			r.metrics.RecordFailure(ctx, string(method))
			r.debug(ctx, cfg, "auth method rejected", method, res.Reason)
			continue
		}

		org := res.OrganizationID
		if org == "" && res.Identity != nil {
			org = res.Identity.OrganizationID
		}
		if cfg.RequireOrganization && org == "" {
			r.debug(ctx, cfg, "auth constraint violated", method, ErrOrganizationRequired.Error())
			if cfg.FailFastOnConstraint {
				return r.terminal(ctx, cfg, start)
			}
			continue
		}
		if len(cfg.RequiredPermissions) > 0 &&
			(res.Identity == nil || !res.Identity.HasAnyPermission(cfg.RequiredPermissions...)) {
			r.debug(ctx, cfg, "auth constraint violated", method, ErrPermissionDenied.Error())
			if cfg.FailFastOnConstraint {
				return r.terminal(ctx, cfg, start)
			}
			continue
		}

		res.OrganizationID = org
		res.Method = method
		attachRequestMetadata(res, req)

		span.SetAttributes(
			attribute.String("auth.method", string(method)),
			attribute.Bool("auth.ok", true),
		)
		r.metrics.RecordResolution(ctx, string(method), time.Since(start), true)
		return res
	}

	span.SetAttributes(attribute.Bool("auth.ok", false))
	return r.terminal(ctx, cfg, start)
}

// terminal returns the single opaque failure for an unresolved request.
func (r *Resolver) terminal(ctx context.Context, cfg Config, start time.Time) *Result {
	r.metrics.RecordResolution(ctx, "", time.Since(start), false)
	if cfg.Required {
		return Failure(ErrAuthenticationRequired, "")
	}
	return Failure(ErrNoValidAuthentication, "")
}

func (r *Resolver) debug(ctx context.Context, cfg Config, msg string, method AuthMethod, reason string) {
	if !cfg.Debug {
		return
	}
	r.log.Debug(ctx, msg,
		observe.F("method", string(method)),
		observe.F("reason", reason),
	)
}

// attachRequestMetadata enriches a successful result with request metadata.
// Token metadata set by the validator is preserved.
func attachRequestMetadata(res *Result, req *Request) {
	res.Metadata.Origin = req.Origin()
	res.Metadata.UserAgent = req.UserAgent()
	res.Metadata.ClientIP = req.ClientIP()
	if res.Identity != nil {
		if res.Metadata.IssuedAt.IsZero() {
			res.Metadata.IssuedAt = res.Identity.IssuedAt
		}
		if res.Metadata.ExpiresAt.IsZero() {
			res.Metadata.ExpiresAt = res.Identity.ExpiresAt
		}
	}
}
