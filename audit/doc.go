// Package audit defines the audit-log collaborator. Recording is
// fire-and-forget from the middleware's perspective: a sink failure must
// never fail the request it describes.
package audit
