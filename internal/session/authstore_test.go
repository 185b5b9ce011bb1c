package session

import (
	"path/filepath"
	"testing"
)

func TestAuthStorePersistsLoginAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "auth.json")

	store := NewAuthStore(&FilePersister{Path: path})
	if err := store.Init(); err != nil {
		t.Fatalf("init empty store: %v", err)
	}
	if _, ok := store.Current(); ok {
		t.Fatalf("fresh store should have no account")
	}

	account := Account{UserID: "user-7", Name: "Minh", Email: "minh@example.com", Token: "jwt"}
	if err := store.Login(account); err != nil {
		t.Fatalf("login: %v", err)
	}

	rehydrated := NewAuthStore(&FilePersister{Path: path})
	if err := rehydrated.Init(); err != nil {
		t.Fatalf("rehydrate: %v", err)
	}

	current, ok := rehydrated.Current()
	if !ok {
		t.Fatalf("expected persisted account")
	}
	if current.UserID != account.UserID || current.Token != account.Token {
		t.Fatalf("hydrated account mismatch: %+v", current)
	}
}

func TestAuthStoreLogoutClearsPersistedState(t *testing.T) {
	path := filepath.Join(t.TempDir(), "auth.json")

	store := NewAuthStore(&FilePersister{Path: path})
	if err := store.Login(Account{UserID: "user-7"}); err != nil {
		t.Fatalf("login: %v", err)
	}
	if err := store.Logout(); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, ok := store.Current(); ok {
		t.Fatalf("account survived logout")
	}

	rehydrated := NewAuthStore(&FilePersister{Path: path})
	if err := rehydrated.Init(); err != nil {
		t.Fatalf("rehydrate: %v", err)
	}
	if _, ok := rehydrated.Current(); ok {
		t.Fatalf("persisted account survived logout")
	}
}

func TestAuthStoreLoginRequiresUserID(t *testing.T) {
	store := NewAuthStore(&memoryPersister{})
	if err := store.Login(Account{}); err == nil {
		t.Fatalf("expected error for empty account")
	}
}
