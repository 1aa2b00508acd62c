package storage

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Package storage persists the bearer token the client authenticates with.

// Store keeps a single bearer token. Token reports ok=false when no token is
// stored or the stored one has expired.
type Store interface {
	Close() error
	Token() (token string, ok bool, err error)
	SaveToken(token string) error
	ClearToken() error
}

// Options controls retention characteristics for concrete store implementations.
type Options struct {
	TokenTTL time.Duration
	// Now overrides the clock; nil means time.Now.
	Now func() time.Time
}

const defaultTokenTTL = 30 * 24 * time.Hour

// NewStore creates the configured storage backend.
func NewStore(typ, path string, opts Options) (Store, error) {
	typ = strings.TrimSpace(strings.ToLower(typ))
	opts = normalizeOptions(opts)

	switch typ {
	case "", "none", "disabled":
		return noopStore{}, nil
	case "memory":
		return newMemoryStore(opts), nil
	case "bbolt":
		if strings.TrimSpace(path) == "" {
			return nil, fmt.Errorf("bbolt storage requires a path")
		}
		return openBolt(path, opts)
	default:
		return nil, fmt.Errorf("unsupported storage type %q", typ)
	}
}

func normalizeOptions(opts Options) Options {
	if opts.TokenTTL <= 0 {
		opts.TokenTTL = defaultTokenTTL
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return opts
}

func validateToken(token string) error {
	if strings.TrimSpace(token) == "" {
		return fmt.Errorf("token must not be empty")
	}
	return nil
}

type noopStore struct{}

func (noopStore) Close() error                 { return nil }
func (noopStore) Token() (string, bool, error) { return "", false, nil }
func (noopStore) SaveToken(token string) error { return validateToken(token) }
func (noopStore) ClearToken() error            { return nil }

// memoryStore keeps the token for the lifetime of the process.
type memoryStore struct {
	mu      sync.RWMutex
	token   string
	expires time.Time
	ttl     time.Duration
	now     func() time.Time
}

func newMemoryStore(opts Options) *memoryStore {
	return &memoryStore{ttl: opts.TokenTTL, now: opts.Now}
}

func (m *memoryStore) Close() error { return nil }

func (m *memoryStore) Token() (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.token == "" || !m.expires.After(m.now()) {
		return "", false, nil
	}
	return m.token, true, nil
}

func (m *memoryStore) SaveToken(token string) error {
	if err := validateToken(token); err != nil {
		return err
	}
	m.mu.Lock()
	m.token = token
	m.expires = m.now().Add(m.ttl)
	m.mu.Unlock()
	return nil
}

func (m *memoryStore) ClearToken() error {
	m.mu.Lock()
	m.token = ""
	m.expires = time.Time{}
	m.mu.Unlock()
	return nil
}
