// Package session owns per-visitor server-side state: the resolved identity
// plus the interaction controllers and the notification slot bound to it.
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/ndelvaux/flickd/internal/config"
	"github.com/ndelvaux/flickd/internal/controllers"
	"github.com/ndelvaux/flickd/internal/models"
	"github.com/ndelvaux/flickd/internal/query"
	"github.com/ndelvaux/flickd/internal/services/backend"
	"github.com/ndelvaux/flickd/internal/services/identity"
	"github.com/sirupsen/logrus"
)

// CookieName is the session cookie the server issues
const CookieName = "flickd_session"

// State is one visitor's server-side state. Anonymous visitors get a state
// too: they can browse and search, and mutations short-circuit to a sign-in
// prompt.
type State struct {
	ID        string
	Notifier  *query.Notifier
	Search    *controllers.Search
	Ratings   *controllers.Ratings
	Watchlist *controllers.Watchlist

	mu       sync.Mutex
	user     *models.User
	lastSeen time.Time
}

func (s *State) touch() {
	s.mu.Lock()
	s.lastSeen = time.Now()
	s.mu.Unlock()
}

func (s *State) lastSeenBefore(t time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen.Before(t)
}

// User returns the signed-in identity, or nil for anonymous visitors
func (s *State) User() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// UserID returns the signed-in user id, or empty for anonymous visitors
func (s *State) UserID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return ""
	}
	return s.user.ID
}

// SetUser binds a resolved identity to the state
func (s *State) SetUser(u *models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = u
}

// Close tears down the state's controllers so nothing updates after the
// visitor is gone
func (s *State) Close() {
	s.Search.Close()
}

// Manager creates, restores and tears down visitor states. Signed-in
// sessions are persisted so a restart keeps visitors signed in; anonymous
// states live in memory only.
type Manager struct {
	mu       sync.Mutex
	cfg      *config.Config
	db       *models.Database
	backend  *backend.Client
	identity *identity.Client
	clock    query.Clock
	logger   *logrus.Logger
	states   map[string]*State
}

// NewManager creates a session manager
func NewManager(cfg *config.Config, db *models.Database, backendClient *backend.Client, identityClient *identity.Client, clock query.Clock, logger *logrus.Logger) *Manager {
	return &Manager{
		cfg:      cfg,
		db:       db,
		backend:  backendClient,
		identity: identityClient,
		clock:    clock,
		logger:   logger,
		states:   make(map[string]*State),
	}
}

func (m *Manager) newState(id string) *State {
	notifier := query.NewNotifier(m.cfg.ToastDuration, m.clock)
	return &State{
		ID:        id,
		Notifier:  notifier,
		Search:    controllers.NewSearch(m.backend, m.cfg.SearchDebounce, m.clock, m.logger),
		Ratings:   controllers.NewRatings(m.backend, notifier, m.logger),
		Watchlist: controllers.NewWatchlist(m.backend, notifier, m.logger),
		lastSeen:  time.Now(),
	}
}

// Begin creates a fresh anonymous state
func (m *Manager) Begin() *State {
	state := m.newState(uuid.NewString())
	m.mu.Lock()
	m.states[state.ID] = state
	m.mu.Unlock()
	return state
}

// Get returns the state behind a session cookie. Unknown ids fall back to a
// persisted session record (a signed-in visitor after a restart) and then
// to nil.
func (m *Manager) Get(id string) *State {
	m.mu.Lock()
	if state, ok := m.states[id]; ok {
		m.mu.Unlock()
		state.touch()
		return state
	}
	m.mu.Unlock()

	record, err := m.db.GetSession(id)
	if err != nil {
		if !models.IsNotFound(err) {
			m.logger.WithError(err).Warn("Failed to read session record")
		}
		return nil
	}

	state := m.newState(id)
	user := record.User
	state.SetUser(&user)

	// A concurrent Get may have restored the same id already; the existing
	// state wins and the duplicate is torn down.
	m.mu.Lock()
	if existing, ok := m.states[id]; ok {
		m.mu.Unlock()
		state.Close()
		existing.touch()
		return existing
	}
	m.states[id] = state
	m.mu.Unlock()

	if err := m.db.TouchSession(id); err != nil {
		m.logger.WithError(err).Debug("Failed to touch session record")
	}
	return state
}

// EvictIdle closes and drops in-memory states with no request activity past
// maxIdle. Signed-in visitors come back from their persisted record on the
// next request; anonymous states are simply gone.
func (m *Manager) EvictIdle(maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle)

	m.mu.Lock()
	var evicted []*State
	for id, state := range m.states {
		if state.lastSeenBefore(cutoff) {
			delete(m.states, id)
			evicted = append(evicted, state)
		}
	}
	m.mu.Unlock()

	for _, state := range evicted {
		state.Close()
	}
	if len(evicted) > 0 {
		m.logger.WithField("count", len(evicted)).Debug("Evicted idle session states")
	}
	return len(evicted)
}

// SignIn resolves a provider token, registers the identity with the backend
// and binds it to a new session state
func (m *Manager) SignIn(ctx context.Context, token string) (*State, error) {
	profile, err := m.identity.Resolve(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve identity: %w", err)
	}

	user := &models.User{
		ID:        profile.ID,
		Email:     profile.Email,
		FirstName: profile.FirstName,
		LastName:  profile.LastName,
		Username:  profile.Username,
		ImageURL:  profile.ImageURL,
	}

	// Registration is idempotent server-side; run it on every sign-in the
	// way the backend expects. A failure here is not fatal for the session.
	if _, err := m.backend.RegisterUser(ctx, backend.RegisterUserRequest{
		UserID:    user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		ImageURL:  user.ImageURL,
		Username:  user.Username,
	}); err != nil {
		m.logger.WithError(err).WithField("user_id", user.ID).Warn("User registration failed")
	}

	state := m.Begin()
	state.SetUser(user)

	if err := m.db.CreateSession(&models.Session{ID: state.ID, UserID: user.ID, User: *user}); err != nil {
		m.logger.WithError(err).Error("Failed to persist session")
	}

	m.logger.WithFields(logrus.Fields{
		"user_id":    user.ID,
		"session_id": state.ID,
	}).Info("User signed in")
	return state, nil
}

// SignOut tears down a session state and its persisted record
func (m *Manager) SignOut(id string) {
	m.mu.Lock()
	state, ok := m.states[id]
	delete(m.states, id)
	m.mu.Unlock()

	if ok {
		state.Close()
	}
	if err := m.db.DeleteSession(id); err != nil && !models.IsNotFound(err) {
		m.logger.WithError(err).Warn("Failed to delete session record")
	}
}
