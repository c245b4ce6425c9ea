package middleware

import (
	"net/http"

	"github.com/deskforge/authcore/auth"
)

// Named policy wrappers. Each fixes the resolution policy for a route class
// and leaves the cross-cutting stages to the caller's Options.

// Dashboard wraps first-party dashboard routes: session credentials only,
// organization required.
func Dashboard(r *auth.Resolver, opts Options) func(http.Handler) http.Handler {
	opts.Config = auth.DashboardConfig()
	return Handler(r, opts)
}

// Widget wraps embeddable-widget routes: widget and bearer tokens,
// organization required.
func Widget(r *auth.Resolver, opts Options) func(http.Handler) http.Handler {
	opts.Config = auth.WidgetConfig()
	return Handler(r, opts)
}

// API wraps machine-to-machine routes: API keys first, then bearer tokens.
func API(r *auth.Resolver, opts Options) func(http.Handler) http.Handler {
	opts.Config = auth.APIConfig()
	return Handler(r, opts)
}

// Flexible wraps routes that accept any configured credential scheme.
func Flexible(r *auth.Resolver, opts Options) func(http.Handler) http.Handler {
	opts.Config = auth.FlexibleConfig()
	return Handler(r, opts)
}

// Optional wraps routes that behave differently for known and anonymous
// callers without requiring authentication: resolution still runs, but a
// failed resolution invokes the handler with an absent identity.
func Optional(r *auth.Resolver, opts Options) func(http.Handler) http.Handler {
	opts.Config = auth.FlexibleConfig()
	opts.Config.Required = false
	opts.Optional = true
	return Handler(r, opts)
}
