// Package ratelimit defines the rate-limiter collaborator consumed by the
// middleware layer. The engine treats the backend as opaque: it implements
// no locking or storage of its own, and backend failures are handled
// fail-open by the caller, never here.
package ratelimit
