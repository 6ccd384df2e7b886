// Package session persists the authenticated session: an opaque API token
// and the signed-in user's profile. It is the only durable local state the
// client keeps.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Josesitobb/adcu-client/model"
	"github.com/golang-jwt/jwt/v5"
)

// ErrNoSession is returned when no session has been stored.
var ErrNoSession = errors.New("no active session")

// Store is a file-backed session store. Safe for use from a single process;
// writes are atomic (temp file + rename).
type Store struct {
	path string
}

type sessionFile struct {
	Token   string      `json:"token"`
	Profile *model.User `json:"profile,omitempty"`
	SavedAt time.Time   `json:"savedAt"`
}

// NewStore returns a store persisting to the given file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Token returns the stored API token. ErrNoSession when nothing is stored.
func (s *Store) Token() (string, error) {
	f, err := s.read()
	if err != nil {
		return "", err
	}
	if f.Token == "" {
		return "", ErrNoSession
	}
	return f.Token, nil
}

// Profile returns the stored user profile. ErrNoSession when nothing is
// stored.
func (s *Store) Profile() (*model.User, error) {
	f, err := s.read()
	if err != nil {
		return nil, err
	}
	if f.Profile == nil {
		return nil, ErrNoSession
	}
	return f.Profile, nil
}

// Set persists the token and profile, replacing any previous session.
func (s *Store) Set(token string, profile *model.User) error {
	data, err := json.Marshal(sessionFile{
		Token:   token,
		Profile: profile,
		SavedAt: time.Now(),
	})
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Clear removes the persisted session. Clearing an absent session is not an
// error.
func (s *Store) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

// ExpiresAt reports when the stored token expires. The token is decoded
// without signature verification; the client never holds the signing secret.
// Tokens without an exp claim report a zero time.
func (s *Store) ExpiresAt() (time.Time, error) {
	token, err := s.Token()
	if err != nil {
		return time.Time{}, err
	}

	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return time.Time{}, fmt.Errorf("failed to decode token: %w", err)
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, nil
	}
	return exp.Time, nil
}

func (s *Store) read() (*sessionFile, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoSession
		}
		return nil, fmt.Errorf("failed to read session: %w", err)
	}

	var f sessionFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	return &f, nil
}
