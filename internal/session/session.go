// Package session holds the signed-in admin for the life of the process.
package session

import (
	"errors"
	"fmt"
	"io/fs"
	"sync"

	"github.com/kalpyotish/kalp-admin/internal/api"
	"github.com/kalpyotish/kalp-admin/internal/config"
)

// ErrNotInitialized is returned when the session is used before Init.
var ErrNotInitialized = errors.New("session not initialized")

// Store persists the admin record between runs.
type Store interface {
	LoadAdmin() (*api.Admin, error)
	SaveAdmin(admin *api.Admin) error
	ClearAdmin() error
}

// Accessor is the view of the session handed to pages and commands.
type Accessor interface {
	Current() (*api.Admin, bool)
	Login(admin *api.Admin) error
	Logout() error
}

// Session is the process-wide admin identity. Create one at startup, call
// Init, and pass it down as an Accessor.
type Session struct {
	mu          sync.RWMutex
	store       Store
	admin       *api.Admin
	initialized bool
}

// New returns an uninitialized session backed by store.
func New(store Store) *Session {
	return &Session{store: store}
}

// Init reads the persisted admin, if any.
func (s *Session) Init() error {
	admin, err := s.store.LoadAdmin()
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.admin = admin
	s.initialized = true
	return nil
}

// Current returns a copy of the signed-in admin.
func (s *Session) Current() (*api.Admin, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.admin == nil {
		return nil, false
	}
	cp := *s.admin
	return &cp, true
}

// Login stores admin as the current identity and persists it.
func (s *Session) Login(admin *api.Admin) error {
	if admin == nil {
		return errors.New("login: nil admin")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized {
		return ErrNotInitialized
	}
	cp := *admin
	if err := s.store.SaveAdmin(&cp); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	s.admin = &cp
	return nil
}

// Logout clears the identity in memory and on disk.
func (s *Session) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized {
		return ErrNotInitialized
	}
	if err := s.store.ClearAdmin(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	s.admin = nil
	return nil
}

// ConfigStore keeps the admin in the config file's admin block.
type ConfigStore struct{}

func (ConfigStore) LoadAdmin() (*api.Admin, error) {
	cfg, err := config.LoadOrDefault()
	if err != nil {
		return nil, err
	}
	return cfg.Admin, nil
}

func (ConfigStore) SaveAdmin(admin *api.Admin) error {
	cfg, err := config.LoadOrDefault()
	if err != nil {
		return err
	}
	cfg.Admin = admin
	return cfg.Save()
}

func (ConfigStore) ClearAdmin() error {
	cfg, err := config.Load()
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	cfg.Admin = nil
	return cfg.Save()
}

// MemoryStore is a Store that never touches disk.
type MemoryStore struct {
	mu    sync.Mutex
	admin *api.Admin
}

// NewMemoryStore returns a store seeded with admin, which may be nil.
func NewMemoryStore(admin *api.Admin) *MemoryStore {
	return &MemoryStore{admin: admin}
}

func (m *MemoryStore) LoadAdmin() (*api.Admin, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.admin, nil
}

func (m *MemoryStore) SaveAdmin(admin *api.Admin) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.admin = admin
	return nil
}

func (m *MemoryStore) ClearAdmin() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.admin = nil
	return nil
}
