package tenant

import (
	"context"
	"sync"
)

// Organization statuses.
const (
	StatusActive    = "active"
	StatusSuspended = "suspended"
	StatusDeleted   = "deleted"
)

// Organization is a tenant record.
type Organization struct {
	ID     string
	Name   string
	Status string
}

// Active reports whether the organization may be used.
func (o *Organization) Active() bool {
	return o.Status == StatusActive
}

// Directory resolves organization ids to records.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Lookup returns ErrOrganizationNotFound for unknown ids.
type Directory interface {
	Lookup(ctx context.Context, orgID string) (*Organization, error)
}

// MembershipStore answers whether a principal is an active member of an
// organization. Widget-visitor identities bypass this check.
type MembershipStore interface {
	IsActiveMember(ctx context.Context, orgID, userID string) (bool, error)
}

// MemoryDirectory is an in-memory Directory for development and tests.
type MemoryDirectory struct {
	mu   sync.RWMutex
	orgs map[string]*Organization
}

// NewMemoryDirectory creates an empty directory.
func NewMemoryDirectory() *MemoryDirectory {
	return &MemoryDirectory{orgs: make(map[string]*Organization)}
}

// Add registers an organization.
func (d *MemoryDirectory) Add(org *Organization) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.orgs[org.ID] = org
}

// Lookup resolves an organization by id.
func (d *MemoryDirectory) Lookup(_ context.Context, orgID string) (*Organization, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	org, ok := d.orgs[orgID]
	if !ok {
		return nil, ErrOrganizationNotFound
	}
	return org, nil
}

// MemoryMemberships is an in-memory MembershipStore for development and
// tests. Keys are orgID/userID pairs.
type MemoryMemberships struct {
	mu      sync.RWMutex
	members map[[2]string]bool
}

// NewMemoryMemberships creates an empty membership store.
func NewMemoryMemberships() *MemoryMemberships {
	return &MemoryMemberships{members: make(map[[2]string]bool)}
}

// Add marks a principal as an active member of an organization.
func (m *MemoryMemberships) Add(orgID, userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.members[[2]string{orgID, userID}] = true
}

// IsActiveMember reports active membership.
func (m *MemoryMemberships) IsActiveMember(_ context.Context, orgID, userID string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.members[[2]string{orgID, userID}], nil
}

var (
	_ Directory       = (*MemoryDirectory)(nil)
	_ MembershipStore = (*MemoryMemberships)(nil)
)
