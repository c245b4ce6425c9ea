package auth

import (
	"context"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// KeyProvider retrieves signing keys for token verification.
type KeyProvider interface {
	// GetKey returns the key for the given key ID.
	GetKey(ctx context.Context, keyID string) (any, error)
}

// StaticKeyProvider provides a static HMAC signing key.
type StaticKeyProvider struct {
	key []byte
}

// NewStaticKeyProvider creates a static key provider.
func NewStaticKeyProvider(key []byte) *StaticKeyProvider {
	return &StaticKeyProvider{key: key}
}

// GetKey returns the static key.
func (p *StaticKeyProvider) GetKey(_ context.Context, _ string) (any, error) {
	return p.key, nil
}

// RemoteKeyConfig configures the remote key provider.
type RemoteKeyConfig struct {
	// URL is the JWKS endpoint of the identity provider.
	URL string

	// CacheTTL is how long fetched keys stay fresh. Default: 1 hour.
	CacheTTL time.Duration

	// HTTPClient is the client used for fetches.
	// If nil, a default client with a 30s timeout is used.
	HTTPClient *http.Client
}

// RemoteKeyProvider fetches RSA verification keys from a JWKS endpoint,
// caching them with a TTL. A stale copy of the last successful fetch is kept
// so verification degrades gracefully when the endpoint is unreachable.
type RemoteKeyProvider struct {
	config RemoteKeyConfig

	mu        sync.RWMutex
	keys      map[string]*rsa.PublicKey
	stale     map[string]*rsa.PublicKey
	fetchedAt time.Time

	group singleflight.Group
}

// NewRemoteKeyProvider creates a remote key provider.
func NewRemoteKeyProvider(config RemoteKeyConfig) *RemoteKeyProvider {
	if config.CacheTTL == 0 {
		config.CacheTTL = time.Hour
	}
	if config.HTTPClient == nil {
		config.HTTPClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &RemoteKeyProvider{
		config: config,
		keys:   make(map[string]*rsa.PublicKey),
		stale:  make(map[string]*rsa.PublicKey),
	}
}

// GetKey returns the key for the given key ID, refreshing the cache when
// needed. With an empty keyID and exactly one cached key, that key is used.
func (p *RemoteKeyProvider) GetKey(ctx context.Context, keyID string) (any, error) {
	p.mu.RLock()
	fresh := time.Since(p.fetchedAt) < p.config.CacheTTL
	key := lookupKey(p.keys, keyID)
	p.mu.RUnlock()

	if fresh && key != nil {
		return key, nil
	}

	// Single refresh regardless of how many requests miss at once.
	_, err, _ := p.group.Do("refresh", func() (any, error) {
		return nil, p.refresh(ctx)
	})
	if err != nil {
		p.mu.RLock()
		key := lookupKey(p.keys, keyID)
		if key == nil {
			key = lookupKey(p.stale, keyID)
		}
		p.mu.RUnlock()
		if key != nil {
			return key, nil
		}
		return nil, err
	}

	p.mu.RLock()
	key = lookupKey(p.keys, keyID)
	p.mu.RUnlock()
	if key == nil {
		return nil, ErrKeyNotFound
	}
	return key, nil
}

func lookupKey(keys map[string]*rsa.PublicKey, keyID string) *rsa.PublicKey {
	if keyID == "" {
		if len(keys) == 1 {
			for _, key := range keys {
				return key
			}
		}
		return nil
	}
	return keys[keyID]
}

func (p *RemoteKeyProvider) refresh(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.config.URL, nil)
	if err != nil {
		return fmt.Errorf("auth: build key request: %w", err)
	}

	resp, err := p.config.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("auth: fetch keys: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("auth: key endpoint status %d", resp.StatusCode)
	}

	var doc struct {
		Keys []jwkKey `json:"keys"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return fmt.Errorf("auth: decode keys: %w", err)
	}

	keys := make(map[string]*rsa.PublicKey)
	for _, k := range doc.Keys {
		if k.Kty != "RSA" {
			continue
		}
		pub, err := k.rsaPublicKey()
		if err != nil {
			continue
		}
		keys[k.Kid] = pub
	}

	p.mu.Lock()
	p.keys = keys
	p.fetchedAt = time.Now()
	for kid, key := range keys {
		p.stale[kid] = key
	}
	p.mu.Unlock()

	return nil
}

type jwkKey struct {
	Kty string `json:"kty"`
	Kid string `json:"kid"`
	N   string `json:"n"`
	E   string `json:"e"`
}

func (k jwkKey) rsaPublicKey() (*rsa.PublicKey, error) {
	if k.N == "" || k.E == "" {
		return nil, fmt.Errorf("auth: jwk missing modulus or exponent")
	}
	nBytes, err := base64.RawURLEncoding.DecodeString(k.N)
	if err != nil {
		return nil, fmt.Errorf("auth: decode jwk modulus: %w", err)
	}
	eBytes, err := base64.RawURLEncoding.DecodeString(k.E)
	if err != nil {
		return nil, fmt.Errorf("auth: decode jwk exponent: %w", err)
	}
	return &rsa.PublicKey{
		N: new(big.Int).SetBytes(nBytes),
		E: int(new(big.Int).SetBytes(eBytes).Int64()),
	}, nil
}

var (
	_ KeyProvider = (*StaticKeyProvider)(nil)
	_ KeyProvider = (*RemoteKeyProvider)(nil)
)
