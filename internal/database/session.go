package database

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/umarali/bookregistry/internal/config"
	"github.com/umarali/bookregistry/internal/database/users"
	"github.com/umarali/bookregistry/internal/entities"
)

// ErrNotConnected is returned when an operation needs the store but no
// login (guest or user) has established a connection yet.
var ErrNotConnected = fmt.Errorf("%w: no connection, log in first", ErrUnavailable)

// Session tracks the identity context a caller operates under: either
// anonymous (guest) or a specific account. Every identity change tears
// down the connection and dials a fresh one. All state is guarded by a
// single lock; a Session is safe for concurrent use.
type Session struct {
	cfg config.Mongo

	mu      sync.Mutex
	db      *Database
	current *entities.User
}

// NewSession returns a disconnected session. Call LoginAsGuest or
// LoginAsUser before issuing operations.
func NewSession(cfg config.Mongo) *Session {
	return &Session{cfg: cfg}
}

// LoginAsGuest (re)establishes an anonymous connection and clears any
// current-user context. Safe to call repeatedly.
func (s *Session) LoginAsGuest(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reconnect(ctx, nil)
}

// LoginAsUser validates the credentials against the users collection
// and, on a match, reconnects with the matched account as the current
// user. No match returns users.ErrNotFound and leaves the session
// untouched.
func (s *Session) LoginAsUser(ctx context.Context, candidate entities.User) (entities.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		if err := s.reconnect(ctx, nil); err != nil {
			return entities.User{}, err
		}
	}

	repo := users.NewRepository(s.db.Users())
	ok, err := repo.Authenticate(ctx, candidate.Username, candidate.Password)
	if err != nil {
		return entities.User{}, err
	}
	if !ok {
		return entities.User{}, users.ErrNotFound
	}

	authenticated := entities.User{Username: candidate.Username, Password: candidate.Password}
	if err := s.reconnect(ctx, &authenticated); err != nil {
		return entities.User{}, err
	}
	return authenticated, nil
}

// Disconnect releases the connection and clears the identity context.
// Teardown failures are logged and swallowed so an orderly shutdown is
// never interrupted.
func (s *Session) Disconnect(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db != nil {
		if err := s.db.Close(ctx); err != nil {
			log.Printf("disconnect: %v", err)
		}
		s.db = nil
	}
	s.current = nil
}

// IsLoggedIn reports whether the session has a current user (false for
// guest or disconnected sessions).
func (s *Session) IsLoggedIn() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current != nil
}

// CurrentUser returns the current user, if any.
func (s *Session) CurrentUser() (entities.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return entities.User{}, false
	}
	return *s.current, true
}

// Database returns the live connection. The handle is replaced on every
// login, so callers should take it after establishing identity, not
// cache it across logins.
func (s *Session) Database() (*Database, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil, ErrNotConnected
	}
	return s.db, nil
}

// CreateAccount persists a new account. The username is normalized to
// lowercase; duplicate checking is the caller's job via
// IsUsernameAvailable.
func (s *Session) CreateAccount(ctx context.Context, user entities.User) (entities.User, error) {
	db, err := s.Database()
	if err != nil {
		return entities.User{}, err
	}
	return users.NewRepository(db.Users()).Create(ctx, user.Username, user.Password)
}

// IsUsernameAvailable reports whether no account exists with that exact
// username.
func (s *Session) IsUsernameAvailable(ctx context.Context, user entities.User) (bool, error) {
	db, err := s.Database()
	if err != nil {
		return false, err
	}
	return users.NewRepository(db.Users()).UsernameAvailable(ctx, user.Username)
}

// IsUser reports whether an account matches both username and password
// exactly.
func (s *Session) IsUser(ctx context.Context, user entities.User) (bool, error) {
	db, err := s.Database()
	if err != nil {
		return false, err
	}
	return users.NewRepository(db.Users()).Authenticate(ctx, user.Username, user.Password)
}

// reconnect closes any live connection and dials a fresh one under the
// given identity. Callers hold s.mu.
func (s *Session) reconnect(ctx context.Context, user *entities.User) error {
	if s.db != nil {
		if err := s.db.Close(ctx); err != nil {
			log.Printf("closing stale connection: %v", err)
		}
		s.db = nil
		s.current = nil
	}

	db, err := Connect(ctx, s.cfg)
	if err != nil {
		return err
	}
	s.db = db
	s.current = user
	return nil
}
