// Package middleware wraps the resolution engine with the cross-cutting
// stages a route class needs: last-activity updates, rate limiting, and
// audit logging. Stages run in a fixed order after authentication:
// scoped-store construction, activity update, rate-limit check, audit
// record, then the core handler. A rate-limit rejection short-circuits
// before the core handler with a 429 carrying retry-after metadata; a
// rate-limiter backend failure fails open. The optional-auth variant runs
// the same resolution but invokes the handler with an absent identity
// instead of rejecting.
package middleware
