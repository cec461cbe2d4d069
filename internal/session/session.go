// Package session owns the authenticated identity and its persisted credential.
//
// The credential lives in a single JSON slot on disk with a 7-day expiry
// stamp. It is read once at startup and held in memory; collection stores
// read it through the [SessionStore] accessor rather than re-parsing the slot
// per call.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/tobyfell/movx/internal/models"
	"github.com/tobyfell/movx/internal/services"
	"github.com/tobyfell/movx/internal/shared"
)

// CredentialTTL is how long a persisted credential slot stays valid.
const CredentialTTL = 7 * 24 * time.Hour

// CredentialStore persists a single credential slot as JSON.
type CredentialStore struct {
	path string
}

// NewCredentialStore creates a store at path. An empty path defaults to
// credential.json inside the movx state directory.
func NewCredentialStore(path string) (*CredentialStore, error) {
	if path == "" {
		dir, err := shared.StateDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(dir, "credential.json")
	}

	return &CredentialStore{path: path}, nil
}

// Load reads the persisted credential.
//
// Returns (nil, nil) when the slot is absent, unparseable, or past its expiry
// stamp; a stale slot is indistinguishable from no slot. The server is never
// consulted.
func (s *CredentialStore) Load() (*models.Credential, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read credential slot: %w", err)
	}

	var cred models.Credential
	if err := json.Unmarshal(data, &cred); err != nil {
		return nil, nil
	}

	if !cred.ExpiresAt.IsZero() && time.Now().After(cred.ExpiresAt) {
		return nil, nil
	}

	return &cred, nil
}

// Save writes the credential to the slot, stamping its expiry.
func (s *CredentialStore) Save(cred *models.Credential) error {
	cred.ExpiresAt = time.Now().Add(CredentialTTL)

	data, err := json.MarshalIndent(cred, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal credential: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create credential directory: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write credential slot: %w", err)
	}

	return nil
}

// Clear removes the persisted slot. Removing an absent slot is not an error.
func (s *CredentialStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove credential slot: %w", err)
	}
	return nil
}

// SessionStore owns the current authenticated identity.
type SessionStore struct {
	mu       sync.Mutex
	api      services.Catalog
	creds    *CredentialStore
	notifier shared.Notifier
	current  *models.Credential

	// Navigate, when set, is invoked with a destination after login,
	// registration, and logout. The CLI leaves it nil; the TUI hooks it.
	Navigate func(dest string)
}

// NewSessionStore creates a session store and adopts any persisted credential
// as the initial authenticated state, without re-validating it server-side.
func NewSessionStore(api services.Catalog, creds *CredentialStore, notifier shared.Notifier) (*SessionStore, error) {
	if notifier == nil {
		notifier = shared.NewLogNotifier(nil)
	}

	initial, err := creds.Load()
	if err != nil {
		return nil, err
	}

	return &SessionStore{
		api:      api,
		creds:    creds,
		notifier: notifier,
		current:  initial,
	}, nil
}

// Current returns a copy of the authenticated credential, or nil.
func (s *SessionStore) Current() *models.Credential {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return nil
	}
	cred := *s.current
	return &cred
}

// Token returns the bearer token for outgoing requests.
// ok is false when no identity is held.
func (s *SessionStore) Token() (token string, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil || s.current.AccessToken == "" {
		return "", false
	}
	return s.current.AccessToken, true
}

// Login authenticates with email and password.
//
// On success the credential is held in memory, persisted to the slot, a
// success notification fires, and Navigate (if set) is called with
// "dashboard". Failures surface the backend's detail message when present.
func (s *SessionStore) Login(ctx context.Context, email, password string) error {
	cred, err := s.api.Login(ctx, email, password)
	if err != nil {
		s.notifyAuthFailure(err, "An unexpected error occurred while logging in.")
		return fmt.Errorf("%w: %v", shared.ErrAuthFailed, err)
	}

	s.adopt(cred)
	s.notifier.Success("Login successful!")
	s.navigate("dashboard")

	return nil
}

// Register creates an account. Side effects mirror [SessionStore.Login].
func (s *SessionStore) Register(ctx context.Context, username, email, password string) error {
	cred, err := s.api.Register(ctx, username, email, password)
	if err != nil {
		s.notifyAuthFailure(err, "An unexpected error occurred while registering.")
		return fmt.Errorf("%w: %v", shared.ErrAuthFailed, err)
	}

	s.adopt(cred)
	s.notifier.Success("Registration successful!")
	s.navigate("dashboard")

	return nil
}

// Logout clears the in-memory identity and the persisted slot. Never fails;
// a slot removal problem is reported through the notifier only.
func (s *SessionStore) Logout() {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()

	if err := s.creds.Clear(); err != nil {
		s.notifier.Error("Failed to remove stored credential: %v", err)
	}

	s.notifier.Success("Logout successful!")
	s.navigate("home")
}

// adopt stores the credential in memory and persists it.
func (s *SessionStore) adopt(cred *models.Credential) {
	s.mu.Lock()
	s.current = cred
	s.mu.Unlock()

	if err := s.creds.Save(cred); err != nil {
		s.notifier.Error("Failed to persist credential: %v", err)
	}
}

func (s *SessionStore) navigate(dest string) {
	if s.Navigate != nil {
		s.Navigate(dest)
	}
}

// notifyAuthFailure surfaces the backend detail field verbatim when present,
// falling back to a generic message.
func (s *SessionStore) notifyAuthFailure(err error, generic string) {
	var apiErr *services.APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		s.notifier.Error("%s", apiErr.Detail)
		return
	}
	s.notifier.Error("%s", generic)
}
