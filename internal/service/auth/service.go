package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"travel-market-backend/internal/database"
	internaljwt "travel-market-backend/internal/jwt"
	"travel-market-backend/internal/model"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
	now  func() time.Time
}

var createTokenWithRefresh = internaljwt.CreateTokenWithRefresh

// SetTokenIssuer swaps the token issuing function, used by tests to avoid a
// live Redis refresh-token store.
func SetTokenIssuer(issuer func(internaljwt.User, internaljwt.Role, int64) (internaljwt.TokenResponse, error)) {
	if issuer == nil {
		createTokenWithRefresh = internaljwt.CreateTokenWithRefresh
		return
	}
	createTokenWithRefresh = issuer
}

func New(db *database.Database) *Service {
	return &Service{
		repo: NewDynamoRepository(db),
		now:  time.Now,
	}
}

func NewWithRepository(repo Repository, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		repo: repo,
		now:  now,
	}
}

func (s *Service) Register(ctx context.Context, params RegisterParams) (AuthResult, error) {
	email := normalizeEmail(params.Email)
	password := strings.TrimSpace(params.Password)
	name := strings.TrimSpace(params.Name)

	if email == "" || password == "" || name == "" {
		return AuthResult{}, newError(ErrorCodeValidation, "missing required fields", nil)
	}

	if _, err := s.repo.FindUserByEmail(ctx, email); err == nil {
		return AuthResult{}, newError(ErrorCodeConflict, "account already exists", nil)
	} else if !errors.Is(err, ErrNotFound) {
		return AuthResult{}, newError(ErrorCodeInternal, "failed to check existing account", err)
	}

	newUser, err := internaljwt.NewUser(internaljwt.RegisterUser{
		Email:    email,
		Password: password,
	})
	if err != nil {
		return AuthResult{}, newError(ErrorCodeInternal, "failed to prepare user", err)
	}
	newUser.Id = uuid.NewString()

	user := model.UserItem{
		UserID:       newUser.Id,
		Email:        email,
		Name:         name,
		Status:       "active",
		PasswordHash: newUser.PasswordHash,
		CreatedAt:    s.now().UTC().Format(time.RFC3339),
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		return AuthResult{}, newError(ErrorCodeInternal, "failed to save user", err)
	}

	tokens, err := createTokenWithRefresh(newUser, internaljwt.RoleUser, 0)
	if err != nil {
		return AuthResult{}, newError(ErrorCodeInternal, "failed to issue tokens", err)
	}

	return AuthResult{
		User:   user,
		Tokens: tokens,
	}, nil
}

func (s *Service) Login(ctx context.Context, params LoginParams) (AuthResult, error) {
	email := normalizeEmail(params.Email)
	password := strings.TrimSpace(params.Password)

	if email == "" || password == "" {
		return AuthResult{}, newError(ErrorCodeValidation, "email and password are required", nil)
	}

	user, err := s.repo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return AuthResult{}, newError(ErrorCodeUnauthorized, "invalid credentials", err)
		}
		return AuthResult{}, newError(ErrorCodeInternal, "failed to load account", err)
	}

	if !internaljwt.ValidatePassword(user.PasswordHash, password) {
		return AuthResult{}, newError(ErrorCodeUnauthorized, "invalid credentials", nil)
	}

	tokens, err := createTokenWithRefresh(internaljwt.User{
		Id:    user.UserID,
		Email: user.Email,
	}, internaljwt.RoleUser, 0)
	if err != nil {
		return AuthResult{}, newError(ErrorCodeInternal, "failed to issue tokens", err)
	}

	return AuthResult{
		User:   user,
		Tokens: tokens,
	}, nil
}

func (s *Service) Me(ctx context.Context, identity Identity) (ProfileResult, error) {
	if identity.UserID == "" {
		return ProfileResult{}, newError(ErrorCodeUnauthorized, "invalid user identity", nil)
	}

	user, err := s.repo.GetUser(ctx, identity.UserID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ProfileResult{}, newError(ErrorCodeNotFound, "account not found", err)
		}
		return ProfileResult{}, newError(ErrorCodeInternal, "failed to load account", err)
	}

	return ProfileResult{User: user}, nil
}

func (s *Service) IdentityFromAuthorizationHeader(header string) (Identity, error) {
	authHeader := strings.TrimSpace(header)
	if authHeader == "" {
		return Identity{}, newError(ErrorCodeUnauthorized, "missing authorization header", nil)
	}

	if !strings.HasPrefix(authHeader, "Bearer ") {
		return Identity{}, newError(ErrorCodeUnauthorized, "invalid authorization header format", nil)
	}

	token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	return s.identityFromToken(token)
}

func (s *Service) identityFromToken(token string) (Identity, error) {
	if token == "" {
		return Identity{}, newError(ErrorCodeUnauthorized, "empty token", nil)
	}

	claims, err := internaljwt.ParseToken(token, internaljwt.RoleUser)
	if err != nil {
		return Identity{}, newError(ErrorCodeUnauthorized, "invalid token", err)
	}

	userID, _ := claims["id"].(string)
	email, _ := claims["email"].(string)
	if userID == "" {
		return Identity{}, newError(ErrorCodeUnauthorized, "token missing subject", nil)
	}

	return Identity{
		UserID: userID,
		Email:  email,
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
