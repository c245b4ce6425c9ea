// Package auth implements the unified request-authentication resolution core.
//
// Several independent credential schemes (first-party session tokens,
// embeddable-widget tokens, API keys, raw bearer tokens, cookie- and
// query-carried tokens) share the same header/cookie real estate on an inbound
// request. The Resolver tries the configured methods in a fixed priority
// order: a pure extractor pulls a candidate token out of the request, a
// validator delegates to the external verifier for that method, and the first
// candidate that passes validation plus the configured organization and
// permission constraints wins. When nothing qualifies, callers receive a
// single opaque failure that never reveals which methods were attempted.
//
// Extractor and validator registries are built once and are read-only
// thereafter; the Resolver is safe for concurrent use from any number of
// request goroutines.
package auth
