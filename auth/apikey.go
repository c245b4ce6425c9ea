package auth

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"sync"
	"time"
)

// KeyInfo describes a registered API key.
type KeyInfo struct {
	// ID is a unique identifier for this key.
	ID string

	// KeyHash is the hashed key material (SHA-256 hex).
	KeyHash string

	// OwnerID is the principal this key acts as.
	OwnerID string

	// OrganizationID is the organization this key is scoped to.
	OrganizationID string

	// Role is the role granted to this key.
	Role string

	// Permissions are explicit permissions granted to this key.
	Permissions []string

	// RateLimitPolicy names the rate-limit policy applied to this key.
	RateLimitPolicy string

	// ExpiresAt is when this key expires (zero = never).
	ExpiresAt time.Time

	// Metadata contains additional key metadata.
	Metadata map[string]any
}

// KeyStore owns persistent API key storage.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Lookup returns (nil, nil) when no key matches the hash.
type KeyStore interface {
	Lookup(ctx context.Context, keyHash string) (*KeyInfo, error)
}

// HashKey hashes API key material with SHA-256 for storage and lookup.
func HashKey(key string) string {
	hash := sha256.Sum256([]byte(key))
	return hex.EncodeToString(hash[:])
}

// ConstantTimeCompare performs constant-time comparison of two strings.
func ConstantTimeCompare(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

// MemoryKeyStore is an in-memory KeyStore for development and tests.
type MemoryKeyStore struct {
	mu   sync.RWMutex
	keys map[string]*KeyInfo // keyed by hash
}

// NewMemoryKeyStore creates an empty in-memory key store.
func NewMemoryKeyStore() *MemoryKeyStore {
	return &MemoryKeyStore{
		keys: make(map[string]*KeyInfo),
	}
}

// Lookup retrieves an API key by its hash.
func (s *MemoryKeyStore) Lookup(_ context.Context, keyHash string) (*KeyInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.keys[keyHash], nil
}

// Add registers an API key.
func (s *MemoryKeyStore) Add(info *KeyInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keys[info.KeyHash] = info
}

// Remove deletes an API key by its hash.
func (s *MemoryKeyStore) Remove(keyHash string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.keys, keyHash)
}

var _ KeyStore = (*MemoryKeyStore)(nil)
