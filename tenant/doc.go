// Package tenant constrains data access to a resolved identity's
// organization. The Scoper validates the identity's standing with the
// organization (human identities need an active membership, widget-visitor
// identities only need the organization to exist and be active) and hands
// back a ScopedStore: a proxy over a caller-supplied Store whose every read
// and write is conjoined with an organization-id equality filter. No caller
// of the scoped handle can observe or mutate rows outside that organization.
package tenant
