package state

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

var (
	errMissingIDProvider = errors.New("id provider is required")
	noOpLogger           = zap.NewNop()
)

// Persister durably stores the partialized state snapshot. Save is
// best-effort: a failing save leaves the in-memory state authoritative.
type Persister interface {
	Save(snapshot State) error
	Load() (State, error)
}

// StoreConfig describes the dependencies for the central state container.
// Clock and Logger are optional; Persister may be nil for a purely
// in-memory store.
type StoreConfig struct {
	Persister  Persister
	Clock      func() time.Time
	IDProvider IDProvider
	Logger     *zap.Logger
}

// Store is the single source of truth for all domain and UI state. Every
// mutation is atomic with respect to readers: Snapshot always observes a
// fully applied state, and previously taken snapshots stay valid because
// mutations build new collections instead of editing in place.
type Store struct {
	mu         sync.RWMutex
	current    State
	persister  Persister
	clock      func() time.Time
	ids        IDProvider
	logger     *zap.Logger
	dispatcher *changeDispatcher
}

// NewStore constructs the container and hydrates it from the persister.
// A missing, corrupt, or version-incompatible stored snapshot falls back to
// the empty default state.
func NewStore(cfg StoreConfig) (*Store, error) {
	if cfg.IDProvider == nil {
		return nil, errMissingIDProvider
	}
	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}
	logger := cfg.Logger
	if logger == nil {
		logger = noOpLogger
	}

	store := &Store{
		current:    DefaultState(),
		persister:  cfg.Persister,
		clock:      clock,
		ids:        cfg.IDProvider,
		logger:     logger,
		dispatcher: newChangeDispatcher(),
	}

	if cfg.Persister != nil {
		loaded, err := cfg.Persister.Load()
		if err != nil {
			logger.Warn("state hydration failed, starting from defaults", zap.Error(err))
		} else {
			if loaded.CurrentView == "" {
				loaded.CurrentView = DefaultView
			}
			store.current = loaded
		}
	}

	return store, nil
}

// Snapshot returns a deep copy of the current state. Callers may hold it
// indefinitely; it never changes under them.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Clone()
}

// Subscribe registers for change events until ctx is cancelled or the
// returned cancel func is called. Events are delivered best-effort; slow
// consumers drop events rather than stalling mutations.
func (s *Store) Subscribe(ctx context.Context) (<-chan ChangeEvent, func()) {
	return s.dispatcher.subscribe(ctx)
}

// SetUser replaces the signed-in user; nil signs out.
func (s *Store) SetUser(user *User) {
	s.mutate(func(next *State) []ChangeScope {
		if user == nil {
			next.User = nil
		} else {
			copied := *user
			next.User = &copied
		}
		return []ChangeScope{ScopeUser}
	})
}

// SignIn creates the session user and stores it, returning a copy. An empty
// email or name is a silent no-op returning nil. The user is never part of
// the persisted snapshot; a restart starts signed out.
func (s *Store) SignIn(email, name, avatar string) *User {
	email = trimmed(email)
	name = trimmed(name)
	if email == "" || name == "" {
		return nil
	}
	var signed *User
	s.mutate(func(next *State) []ChangeScope {
		id := s.newID()
		if id == "" {
			return nil
		}
		next.User = &User{
			ID:        id,
			Email:     email,
			Name:      name,
			Avatar:    avatar,
			CreatedAt: s.now(),
		}
		copied := *next.User
		signed = &copied
		return []ChangeScope{ScopeUser}
	})
	return signed
}

// SignOut clears the session user.
func (s *Store) SignOut() {
	s.SetUser(nil)
}

// SetCurrentView switches the active widget. Empty names are ignored.
func (s *Store) SetCurrentView(view string) {
	name := trimmed(view)
	if name == "" {
		return
	}
	s.mutate(func(next *State) []ChangeScope {
		next.CurrentView = name
		return []ChangeScope{ScopeView}
	})
}

// SetSidebarOpen records the sidebar flag; it is transient and never
// persisted.
func (s *Store) SetSidebarOpen(open bool) {
	s.mutate(func(next *State) []ChangeScope {
		next.SidebarOpen = open
		return []ChangeScope{ScopeSidebar}
	})
}

// mutate applies one atomic copy-on-write mutation. The apply callback works
// on a private clone and returns the touched scopes, or nil to signal a
// no-op. An applied mutation is saved before the lock is released so no
// later mutation can persist ahead of it.
func (s *Store) mutate(apply func(next *State) []ChangeScope) {
	s.mu.Lock()
	next := s.current.Clone()
	scopes := apply(&next)
	if len(scopes) == 0 {
		s.mu.Unlock()
		return
	}
	s.current = next
	s.saveLocked()
	s.mu.Unlock()

	at := s.clock().UTC()
	for _, scope := range scopes {
		s.dispatcher.publish(ChangeEvent{Scope: scope, At: at})
	}
}

// saveLocked persists the current state. Failures degrade to "state not
// saved": they are logged and never surfaced to the mutating caller.
func (s *Store) saveLocked() {
	if s.persister == nil {
		return
	}
	if err := s.persister.Save(s.current); err != nil {
		s.logger.Warn("state snapshot not persisted", zap.Error(err))
	}
}

// newID issues an entity identifier, or "" when generation fails (the
// caller then drops the mutation).
func (s *Store) newID() string {
	id, err := s.ids.NewID()
	if err != nil {
		s.logger.Error("id generation failed", zap.Error(err))
		return ""
	}
	return id
}

func (s *Store) now() time.Time {
	return s.clock().UTC()
}
