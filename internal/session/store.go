// Package session keeps the logged-in user's bearer token and username in a
// persistent key/value store, the way the browser pages kept them in
// localStorage.
package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/ziadkadry99/interview-assistant/internal/db"
)

// Storage keys, unchanged from the browser pages.
const (
	KeyAccessToken = "access_token"
	KeyUsername    = "username"
)

// Session is the client-held pair identifying the logged-in user.
type Session struct {
	Token    string
	Username string
}

// Valid reports whether both halves of the session are present.
func (s Session) Valid() bool {
	return s.Token != "" && s.Username != ""
}

// KV is the persistent store backing a session. *db.DB satisfies it.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	SetMany(ctx context.Context, pairs map[string]string) error
	Delete(ctx context.Context, keys ...string) error
}

// Store reads and writes the session.
type Store struct {
	kv KV
}

// NewStore creates a Store over kv.
func NewStore(kv KV) *Store {
	return &Store{kv: kv}
}

// Current returns the stored session. Missing keys yield empty fields.
func (s *Store) Current(ctx context.Context) (Session, error) {
	token, err := s.get(ctx, KeyAccessToken)
	if err != nil {
		return Session{}, err
	}
	username, err := s.get(ctx, KeyUsername)
	if err != nil {
		return Session{}, err
	}
	return Session{Token: token, Username: username}, nil
}

// IsAuthenticated is true iff both token and username are present.
func (s *Store) IsAuthenticated(ctx context.Context) (bool, error) {
	sess, err := s.Current(ctx)
	if err != nil {
		return false, err
	}
	return sess.Valid(), nil
}

// Login stores token and username, overwriting prior values.
func (s *Store) Login(ctx context.Context, token, username string) error {
	err := s.kv.SetMany(ctx, map[string]string{
		KeyAccessToken: token,
		KeyUsername:    username,
	})
	if err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	return nil
}

// Logout removes both keys. Calling it without a session is a no-op.
func (s *Store) Logout(ctx context.Context) error {
	if err := s.kv.Delete(ctx, KeyAccessToken, KeyUsername); err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}
	return nil
}

// Token returns the stored bearer token, or "" when logged out.
func (s *Store) Token(ctx context.Context) (string, error) {
	return s.get(ctx, KeyAccessToken)
}

func (s *Store) get(ctx context.Context, key string) (string, error) {
	v, err := s.kv.Get(ctx, key)
	if errors.Is(err, db.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("loading session: %w", err)
	}
	return v, nil
}
