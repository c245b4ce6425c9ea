// Package observe provides the observability surface for the authentication
// core: a structured JSON logger, OpenTelemetry metric instruments for the
// resolution engine, and an optional provider setup for hosts that do not
// configure OpenTelemetry themselves.
//
// Everything here is safe for concurrent use and noop-safe: a nil Metrics or
// the NopLogger can be used anywhere the real thing is expected.
package observe
