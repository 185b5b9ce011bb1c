package auth

import (
	"context"
	"sync"
	"testing"
	"time"

	internaljwt "travel-market-backend/internal/jwt"
	"travel-market-backend/internal/model"
)

type memoryRepository struct {
	mu    sync.Mutex
	users map[string]model.UserItem
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{
		users: make(map[string]model.UserItem),
	}
}

func (m *memoryRepository) CreateUser(ctx context.Context, user model.UserItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.UserID] = user
	return nil
}

func (m *memoryRepository) GetUser(ctx context.Context, userID string) (model.UserItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[userID]
	if !ok {
		return model.UserItem{}, ErrNotFound
	}
	return user, nil
}

func (m *memoryRepository) FindUserByEmail(ctx context.Context, email string) (model.UserItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, user := range m.users {
		if user.Email == email {
			return user, nil
		}
	}
	return model.UserItem{}, ErrNotFound
}

func useStaticTokens(t *testing.T) {
	t.Helper()
	SetTokenIssuer(func(user internaljwt.User, role internaljwt.Role, validUntil int64) (internaljwt.TokenResponse, error) {
		return internaljwt.TokenResponse{
			AccessToken:  "access-" + user.Id,
			RefreshToken: "refresh-" + user.Id,
		}, nil
	})
	t.Cleanup(func() {
		SetTokenIssuer(nil)
	})
}

func TestRegisterAndLogin(t *testing.T) {
	repo := newMemoryRepository()
	now := time.Date(2026, 1, 5, 12, 0, 0, 0, time.UTC)
	svc := NewWithRepository(repo, func() time.Time { return now })
	useStaticTokens(t)

	result, err := svc.Register(context.Background(), RegisterParams{
		Name:     "Lan",
		Email:    "Lan@Example.com",
		Password: "secret-password",
	})
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if result.User.Email != "lan@example.com" {
		t.Fatalf("email not normalized: %s", result.User.Email)
	}
	if result.User.PasswordHash == "secret-password" {
		t.Fatal("password stored in plain text")
	}
	if result.Tokens.AccessToken == "" {
		t.Fatal("no access token issued")
	}

	login, err := svc.Login(context.Background(), LoginParams{
		Email:    "lan@example.com",
		Password: "secret-password",
	})
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if login.User.UserID != result.User.UserID {
		t.Fatalf("login resolved wrong account")
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	repo := newMemoryRepository()
	svc := NewWithRepository(repo, nil)
	useStaticTokens(t)

	params := RegisterParams{Name: "Lan", Email: "lan@example.com", Password: "pw-123456"}
	if _, err := svc.Register(context.Background(), params); err != nil {
		t.Fatalf("first Register error: %v", err)
	}

	_, err := svc.Register(context.Background(), params)
	if err == nil {
		t.Fatal("expected conflict for duplicate email")
	}
	svcErr, ok := err.(*Error)
	if !ok {
		t.Fatalf("expected *Error, got %T", err)
	}
	if svcErr.Code != ErrorCodeConflict {
		t.Fatalf("expected conflict, got %s", svcErr.Code)
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	repo := newMemoryRepository()
	svc := NewWithRepository(repo, nil)
	useStaticTokens(t)

	if _, err := svc.Register(context.Background(), RegisterParams{
		Name: "Lan", Email: "lan@example.com", Password: "correct-password",
	}); err != nil {
		t.Fatalf("Register error: %v", err)
	}

	_, err := svc.Login(context.Background(), LoginParams{
		Email:    "lan@example.com",
		Password: "wrong-password",
	})
	if err == nil {
		t.Fatal("expected unauthorized")
	}
	svcErr, ok := err.(*Error)
	if !ok {
		t.Fatalf("expected *Error, got %T", err)
	}
	if svcErr.Code != ErrorCodeUnauthorized {
		t.Fatalf("expected unauthorized, got %s", svcErr.Code)
	}
}

func TestIdentityFromAuthorizationHeader(t *testing.T) {
	repo := newMemoryRepository()
	svc := NewWithRepository(repo, nil)
	internaljwt.SetRoleSecret(internaljwt.RoleUser, "test-secret")

	token, err := internaljwt.CreateToken(internaljwt.User{
		Id:    "user-1",
		Email: "lan@example.com",
	}, internaljwt.RoleUser, time.Now().Add(time.Hour).Unix())
	if err != nil {
		t.Fatalf("CreateToken error: %v", err)
	}

	identity, err := svc.IdentityFromAuthorizationHeader("Bearer " + token)
	if err != nil {
		t.Fatalf("IdentityFromAuthorizationHeader error: %v", err)
	}
	if identity.UserID != "user-1" || identity.Email != "lan@example.com" {
		t.Fatalf("unexpected identity %+v", identity)
	}

	if _, err := svc.IdentityFromAuthorizationHeader("token-without-scheme"); err == nil {
		t.Fatal("expected error for malformed header")
	}
}
