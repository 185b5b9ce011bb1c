package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	internaljwt "travel-market-backend/internal/jwt"
)

func issueToken(t *testing.T, role internaljwt.Role) string {
	t.Helper()

	token, err := internaljwt.CreateToken(internaljwt.User{
		Id:    "principal-1",
		Email: "principal@example.com",
	}, role, time.Now().Add(15*time.Minute).Unix())
	if err != nil {
		t.Fatalf("create token: %v", err)
	}
	return token
}

func callWithAuthorization(middleware func(http.HandlerFunc) http.HandlerFunc, header string) (int, bool) {
	handlerCalled := false
	handler := middleware(func(w http.ResponseWriter, r *http.Request) {
		handlerCalled = true
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/ws/v1/support/rooms", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	res := httptest.NewRecorder()
	handler(res, req)

	return res.Code, handlerCalled
}

func TestValidateAnyJWTAcceptsBothRoles(t *testing.T) {
	internaljwt.SetRoleSecret(internaljwt.RoleUser, "user-test-secret")
	internaljwt.SetRoleSecret(internaljwt.RoleAgent, "agent-test-secret")

	for name, role := range map[string]internaljwt.Role{
		"user":  internaljwt.RoleUser,
		"agent": internaljwt.RoleAgent,
	} {
		t.Run(name, func(t *testing.T) {
			code, called := callWithAuthorization(ValidateAnyJWT, "Bearer "+issueToken(t, role))
			if code != http.StatusOK || !called {
				t.Fatalf("expected %s token to pass, got status %d (handler called: %v)", name, code, called)
			}
		})
	}
}

func TestValidateAnyJWTRejectsGarbageToken(t *testing.T) {
	internaljwt.SetRoleSecret(internaljwt.RoleUser, "user-test-secret")
	internaljwt.SetRoleSecret(internaljwt.RoleAgent, "agent-test-secret")

	code, called := callWithAuthorization(ValidateAnyJWT, "Bearer not-a-token")
	if code != http.StatusUnauthorized || called {
		t.Fatalf("expected 401 for garbage token, got %d (handler called: %v)", code, called)
	}
}

func TestValidateJWTRejectsMalformedAuthorizationHeader(t *testing.T) {
	internaljwt.SetRoleSecret(internaljwt.RoleUser, "user-test-secret")

	// Shorter than the "Bearer " prefix; must 401, not panic.
	for _, header := range []string{"", "Token", "Bearer", "Basic abc"} {
		code, called := callWithAuthorization(ValidateUserJWT, header)
		if code != http.StatusUnauthorized || called {
			t.Fatalf("header %q: expected 401, got %d (handler called: %v)", header, code, called)
		}
	}
}
