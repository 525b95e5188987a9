// Package session keeps the client-side identity: a stable anonymous
// session identifier plus the optional authenticated token and cached
// user. Everything is persisted to a local profile file; no network
// calls originate here.
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hansshop/storefront/internal/models"
)

const profileFile = "profile.json"

// profile is the on-disk shape of the persisted identity state.
type profile struct {
	SessionID     string       `json:"sessionId,omitempty"`
	AuthToken     string       `json:"authToken,omitempty"`
	User          *models.User `json:"user,omitempty"`
	CustomerEmail string       `json:"customerEmail,omitempty"`
}

// Store owns the persisted identity state. All methods are safe for
// concurrent use; writers persist the profile before returning.
type Store struct {
	mu   sync.Mutex
	path string
	p    profile
}

// Open loads the profile stored in dir, creating the directory and a
// fresh profile when none exists. An empty dir means the current
// working directory. The session identifier is minted here, so a
// storage path that cannot be written fails Open instead of losing the
// identity silently later.
func Open(dir string) (*Store, error) {
	path := profileFile
	if dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create profile dir: %w", err)
		}
		path = filepath.Join(dir, profileFile)
	}
	s := &Store{path: path}
	f, err := os.Open(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("open profile: %w", err)
	}
	if err == nil {
		defer f.Close()
		if err := json.NewDecoder(f).Decode(&s.p); err != nil {
			return nil, fmt.Errorf("decode profile: %w", err)
		}
	}
	if s.p.SessionID == "" {
		suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
		s.p.SessionID = fmt.Sprintf("session_%d_%s", time.Now().UnixMilli(), suffix)
		if err := s.save(); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// save persists the profile. Callers must hold s.mu.
func (s *Store) save() error {
	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("write profile: %w", err)
	}
	defer f.Close()
	return json.NewEncoder(f).Encode(&s.p)
}

// SessionID returns the persisted session identifier. It is minted
// once when the profile is created and survives logouts; only wiping
// the profile file yields a new one.
func (s *Store) SessionID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.p.SessionID
}

// Token returns the stored auth token, or "" when anonymous.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.p.AuthToken
}

// SetIdentity stores the token and user atomically and persists them.
func (s *Store) SetIdentity(token string, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.p.AuthToken = token
	s.p.User = user
	if user != nil && user.Email != "" {
		s.p.CustomerEmail = user.Email
	}
	return s.save()
}

// ClearIdentity removes the token, the cached user and the remembered
// email together. The session identifier survives a logout.
func (s *Store) ClearIdentity() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.p.AuthToken = ""
	s.p.User = nil
	s.p.CustomerEmail = ""
	return s.save()
}

// CurrentUser returns a copy of the cached user, or nil when anonymous.
func (s *Store) CurrentUser() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.p.User == nil {
		return nil
	}
	u := *s.p.User
	return &u
}

// IsAuthenticated reports whether an auth token is present.
func (s *Store) IsAuthenticated() bool {
	return s.Token() != ""
}

// IsAdmin reports whether the cached user has the Admin role.
func (s *Store) IsAdmin() bool {
	u := s.CurrentUser()
	return u != nil && u.Role == models.RoleAdmin
}

// RememberEmail stores the last email used for login or checkout. The
// API's user payload does not always carry an email, so the orders view
// falls back to this value.
func (s *Store) RememberEmail(email string) error {
	if email == "" {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.p.CustomerEmail = email
	return s.save()
}

// CustomerEmail resolves the best-known customer email: the cached
// user's email when present, otherwise the remembered one. Empty means
// no email is resolvable.
func (s *Store) CustomerEmail() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.p.User != nil && s.p.User.Email != "" {
		return s.p.User.Email
	}
	return s.p.CustomerEmail
}
