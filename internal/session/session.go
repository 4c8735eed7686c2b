// Package session holds the bearer token shared by every authenticated
// API call.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/erazemk/popis/internal/auth"
)

// ErrNoToken is returned when no usable token is stored.
var ErrNoToken = errors.New("not logged in")

// TokenStore persists a single bearer token.
type TokenStore interface {
	LoadToken(ctx context.Context) (string, error)
	SaveToken(ctx context.Context, token string) error
	ClearToken(ctx context.Context) error
}

// Session is the auth context injected into the API client. It reads the
// token from its store on every call, so a login or logout through another
// Session sharing the store is picked up.
type Session struct {
	store TokenStore
	now   func() time.Time
}

// New returns a Session backed by store.
func New(store TokenStore) *Session {
	return &Session{store: store, now: time.Now}
}

// Token returns the current bearer token. A JWT whose exp claim has passed
// is treated as absent.
func (s *Session) Token(ctx context.Context) (string, error) {
	token, err := s.store.LoadToken(ctx)
	if err != nil {
		return "", fmt.Errorf("loading token: %w", err)
	}
	if token == "" {
		return "", ErrNoToken
	}
	if exp, ok := auth.ExpiresAt(token); ok && !s.now().Before(exp) {
		return "", fmt.Errorf("%w: token expired at %s", ErrNoToken, exp.Format(time.RFC3339))
	}
	return token, nil
}

// Set stores a freshly issued token.
func (s *Session) Set(ctx context.Context, token string) error {
	if token == "" {
		return errors.New("empty token")
	}
	if err := s.store.SaveToken(ctx, token); err != nil {
		return fmt.Errorf("saving token: %w", err)
	}
	return nil
}

// Clear forgets the token.
func (s *Session) Clear(ctx context.Context) error {
	if err := s.store.ClearToken(ctx); err != nil {
		return fmt.Errorf("clearing token: %w", err)
	}
	return nil
}

// MemoryStore is a TokenStore that keeps the token in memory.
type MemoryStore struct {
	mu    sync.Mutex
	token string
}

// LoadToken implements TokenStore.
func (m *MemoryStore) LoadToken(context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, nil
}

// SaveToken implements TokenStore.
func (m *MemoryStore) SaveToken(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	return nil
}

// ClearToken implements TokenStore.
func (m *MemoryStore) ClearToken(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	return nil
}
