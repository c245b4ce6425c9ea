package tenant

import "errors"

var (
	ErrNoOrganization       = errors.New("tenant: identity has no organization")
	ErrOrganizationNotFound = errors.New("tenant: organization not found")
	ErrOrganizationInactive = errors.New("tenant: organization is not active")
	ErrNotAMember           = errors.New("tenant: identity is not an active member")
	ErrRecordNotFound       = errors.New("tenant: record not found")
	ErrScopeViolation       = errors.New("tenant: record belongs to another organization")
)
