package session

import (
	"context"
	"sync"

	"github.com/reftrack/refadmin/internal/errors"
	"github.com/reftrack/refadmin/internal/log"
)

// Store is the single source of truth for "who is logged in".
//
// It mirrors durable storage into memory: every mutation writes through to
// storage before the in-memory state changes, so a crash between the two
// leaves storage authoritative on the next Initialize.
//
// Consumers read snapshots; they never mutate the store directly.
type Store struct {
	storage Storage
	logger  *log.Logger

	mu         sync.RWMutex
	credential string
	profile    *Profile
	loading    bool

	initOnce sync.Once
}

// Snapshot is an immutable view of the session for guard decisions and
// screen rendering.
type Snapshot struct {
	Loading    bool
	Credential string
	Profile    *Profile
}

// Authenticated reports whether a credential is present.
func (s Snapshot) Authenticated() bool {
	return s.Credential != ""
}

// NewStore creates a Store in the loading state. Initialize must run before
// the first guard decision.
func NewStore(storage Storage, logger *log.Logger) *Store {
	return &Store{
		storage: storage,
		logger:  logger,
		loading: true,
	}
}

// Initialize populates the session from durable storage. The loading flag
// flips to false exactly once, whether or not a session was found.
//
// A corrupt session file initializes as an empty session rather than an
// error: the user can simply log in again.
func (s *Store) Initialize(ctx context.Context) error {
	s.initOnce.Do(func() {
		credential, profile, err := s.storage.Load(ctx)
		if err != nil {
			s.logger.WithError(err).Warn("discarding unreadable session state")
			credential, profile = "", nil
		}

		s.mu.Lock()
		s.credential = credential
		s.profile = profile
		s.loading = false
		s.mu.Unlock()

		if credential != "" {
			s.logger.Debug("session restored", "user", profile.Email)
		}
	})
	return nil
}

// Loading reports whether Initialize has completed.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Login persists the credential and profile, then swaps them into memory.
// No reader ever observes one field set without the other.
func (s *Store) Login(ctx context.Context, credential string, profile *Profile) error {
	if credential == "" || profile == nil {
		return errors.New(errors.ErrCodeStorePartial, "login requires both credential and profile")
	}

	if err := s.storage.Save(ctx, credential, profile); err != nil {
		return err
	}

	s.mu.Lock()
	s.credential = credential
	s.profile = profile.Clone()
	s.mu.Unlock()

	s.logger.Debug("session established", "user", profile.Email)
	return nil
}

// Logout clears durable storage, then memory. Idempotent.
func (s *Store) Logout(ctx context.Context) error {
	if err := s.storage.Clear(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	s.credential = ""
	s.profile = nil
	s.mu.Unlock()

	s.logger.Debug("session cleared")
	return nil
}

// Credential returns the bearer credential, if present.
func (s *Store) Credential() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.credential, s.credential != ""
}

// IsAdmin reports whether the logged-in profile carries the admin role.
// False when no profile is present; never an error.
func (s *Store) IsAdmin() bool {
	return s.HasRole(AdminRole)
}

// HasRole reports whether the logged-in profile carries the named role.
func (s *Store) HasRole(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile.HasRole(name)
}

// Snapshot returns an immutable copy of the current session state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Loading:    s.loading,
		Credential: s.credential,
		Profile:    s.profile.Clone(),
	}
}
