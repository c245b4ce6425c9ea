package tenant

import (
	"context"
	"fmt"

	"github.com/deskforge/authcore/auth"
)

// Scoper produces organization-constrained store handles for resolved
// identities. Build it once; it is safe for concurrent use.
type Scoper struct {
	directory Directory
	members   MembershipStore
	store     Store
}

// NewScoper creates a scoper over the given collaborators. members may be
// nil only when every identity passed to Scope is a widget identity.
func NewScoper(directory Directory, members MembershipStore, store Store) *Scoper {
	return &Scoper{
		directory: directory,
		members:   members,
		store:     store,
	}
}

// Scope validates the identity against its organization and returns a store
// handle constrained to it.
//
// Human identities require an active membership in the organization. Widget
// identities skip the membership check (a deliberately narrower trust path
// for anonymous visitor-facing flows), but the organization must still exist
// and be active.
func (s *Scoper) Scope(ctx context.Context, id *auth.Identity) (*ScopedStore, error) {
	if id == nil || id.OrganizationID == "" {
		return nil, ErrNoOrganization
	}

	org, err := s.directory.Lookup(ctx, id.OrganizationID)
	if err != nil {
		return nil, err
	}
	if !org.Active() {
		return nil, ErrOrganizationInactive
	}

	if !id.IsWidget {
		if s.members == nil {
			return nil, ErrNotAMember
		}
		ok, err := s.members.IsActiveMember(ctx, org.ID, id.ID)
		if err != nil {
			return nil, fmt.Errorf("tenant: membership lookup: %w", err)
		}
		if !ok {
			return nil, ErrNotAMember
		}
	}

	return &ScopedStore{store: s.store, orgID: org.ID}, nil
}

// ScopedStore wraps a Store so that every operation is constrained to one
// organization. Reads outside the organization report ErrRecordNotFound
// rather than ErrScopeViolation so callers cannot probe for the existence
// of other tenants' rows.
type ScopedStore struct {
	store Store
	orgID string
}

// OrganizationID returns the organization this handle is constrained to.
func (s *ScopedStore) OrganizationID() string {
	return s.orgID
}

// Get fetches a record, reporting not-found for rows outside the scope.
func (s *ScopedStore) Get(ctx context.Context, collection, id string) (Record, error) {
	rec, err := s.store.Get(ctx, collection, id)
	if err != nil {
		return nil, err
	}
	if rec[OrgField] != s.orgID {
		return nil, ErrRecordNotFound
	}
	return rec, nil
}

// List queries records with the organization filter conjoined. A caller's
// own organization filter is overwritten, never widened.
func (s *ScopedStore) List(ctx context.Context, collection string, filter Filter) ([]Record, error) {
	scoped := make(Filter, len(filter)+1)
	for k, v := range filter {
		scoped[k] = v
	}
	scoped[OrgField] = s.orgID
	return s.store.List(ctx, collection, scoped)
}

// Insert stores a record stamped with the organization id. Records already
// claiming a different organization are refused.
func (s *ScopedStore) Insert(ctx context.Context, collection string, rec Record) (string, error) {
	if owner, ok := rec[OrgField]; ok && owner != s.orgID {
		return "", ErrScopeViolation
	}
	stamped := make(Record, len(rec)+1)
	for k, v := range rec {
		stamped[k] = v
	}
	stamped[OrgField] = s.orgID
	return s.store.Insert(ctx, collection, stamped)
}

// Update modifies a record after verifying it is in scope. Attempts to move
// a record to another organization are refused.
func (s *ScopedStore) Update(ctx context.Context, collection, id string, changes Record) error {
	if _, err := s.Get(ctx, collection, id); err != nil {
		return err
	}
	if owner, ok := changes[OrgField]; ok && owner != s.orgID {
		return ErrScopeViolation
	}
	return s.store.Update(ctx, collection, id, changes)
}

// Delete removes a record after verifying it is in scope.
func (s *ScopedStore) Delete(ctx context.Context, collection, id string) error {
	if _, err := s.Get(ctx, collection, id); err != nil {
		return err
	}
	return s.store.Delete(ctx, collection, id)
}

// Context plumbing for the scoped handle.
type contextKey int

const storeKey contextKey = iota

// WithStore attaches a scoped store to the context.
func WithStore(ctx context.Context, s *ScopedStore) context.Context {
	return context.WithValue(ctx, storeKey, s)
}

// StoreFromContext retrieves the scoped store, or nil.
func StoreFromContext(ctx context.Context) *ScopedStore {
	s, _ := ctx.Value(storeKey).(*ScopedStore)
	return s
}
