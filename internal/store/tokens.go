package store

import (
	"context"
	"database/sql"
)

const sessionTokenKey = "session_token"

// TokenStore persists the client's bearer token in the local state database.
type TokenStore struct {
	DB *sql.DB
}

// LoadToken returns the stored token, or "" if none is stored.
func (s *TokenStore) LoadToken(ctx context.Context) (string, error) {
	token, _, err := GetSetting(ctx, s.DB, sessionTokenKey)
	return token, err
}

// SaveToken replaces the stored token.
func (s *TokenStore) SaveToken(ctx context.Context, token string) error {
	return SetSetting(ctx, s.DB, sessionTokenKey, token)
}

// ClearToken removes the stored token.
func (s *TokenStore) ClearToken(ctx context.Context) error {
	return DeleteSetting(ctx, s.DB, sessionTokenKey)
}
