package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
)

// Account is the authenticated visitor hydrated into the AuthStore.
type Account struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Token  string `json:"token"`
}

// Persister is the durable backing for the AuthStore. Saving happens on
// every mutation, never implicitly.
type Persister interface {
	Load() (Account, bool, error)
	Save(account Account) error
	Clear() error
}

// AuthStore holds cross-reload authentication state. Init hydrates from the
// persister; Login and Logout mutate and immediately persist.
type AuthStore struct {
	mu        sync.RWMutex
	persister Persister
	account   *Account
}

func NewAuthStore(persister Persister) *AuthStore {
	return &AuthStore{persister: persister}
}

func (s *AuthStore) Init() error {
	account, ok, err := s.persister.Load()
	if err != nil {
		return fmt.Errorf("hydrate auth store: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if ok {
		s.account = &account
	} else {
		s.account = nil
	}
	return nil
}

func (s *AuthStore) Login(account Account) error {
	if account.UserID == "" {
		return errors.New("auth store: account requires a user id")
	}
	if err := s.persister.Save(account); err != nil {
		return fmt.Errorf("persist login: %w", err)
	}

	s.mu.Lock()
	s.account = &account
	s.mu.Unlock()
	return nil
}

func (s *AuthStore) Logout() error {
	if err := s.persister.Clear(); err != nil {
		return fmt.Errorf("clear persisted auth: %w", err)
	}

	s.mu.Lock()
	s.account = nil
	s.mu.Unlock()
	return nil
}

func (s *AuthStore) Current() (Account, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.account == nil {
		return Account{}, false
	}
	return *s.account, true
}

// FilePersister stores the account as JSON at a fixed path. It is the
// process-local stand-in for the browser's persisted storage.
type FilePersister struct {
	Path string
}

func (p *FilePersister) Load() (Account, bool, error) {
	raw, err := os.ReadFile(p.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return Account{}, false, nil
		}
		return Account{}, false, err
	}

	var account Account
	if err := json.Unmarshal(raw, &account); err != nil {
		return Account{}, false, err
	}
	if account.UserID == "" {
		return Account{}, false, nil
	}
	return account, true, nil
}

func (p *FilePersister) Save(account Account) error {
	raw, err := json.Marshal(account)
	if err != nil {
		return err
	}
	return os.WriteFile(p.Path, raw, 0o600)
}

func (p *FilePersister) Clear() error {
	err := os.Remove(p.Path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
