package endpoints

import (
	"encoding/json"
	"fmt"
	"net/http"

	"travel-market-backend/internal/database"
	"travel-market-backend/internal/dto"
	internaljwt "travel-market-backend/internal/jwt"
	authsvc "travel-market-backend/internal/service/auth"
)

type AuthEndpoints interface {
	Register(http.ResponseWriter, *http.Request) error
	Login(http.ResponseWriter, *http.Request) error
	Me(http.ResponseWriter, *http.Request) error
	Refresh(http.ResponseWriter, *http.Request) error
}

type authEndpoints struct {
	service *authsvc.Service
}

func NewAuthEndpoints(db *database.Database) AuthEndpoints {
	return &authEndpoints{
		service: authsvc.New(db),
	}
}

func (h *authEndpoints) Register(w http.ResponseWriter, r *http.Request) error {
	return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
		http.MethodPost: h.handleRegister,
	})
}

func (h *authEndpoints) Login(w http.ResponseWriter, r *http.Request) error {
	return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
		http.MethodPost: h.handleLogin,
	})
}

func (h *authEndpoints) Me(w http.ResponseWriter, r *http.Request) error {
	return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
		http.MethodGet: h.handleMe,
	})
}

func (h *authEndpoints) Refresh(w http.ResponseWriter, r *http.Request) error {
	return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
		http.MethodPost: h.handleRefresh,
	})
}

func (h *authEndpoints) handleRefresh(w http.ResponseWriter, r *http.Request) error {
	var req dto.RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return &HTTPError{
			StatusCode: http.StatusBadRequest,
			Message:    "Invalid request payload",
			ErrorLog:   fmt.Errorf("decode refresh request: %w", err),
		}
	}

	accessToken, err := internaljwt.RefreshToken(req.RefreshToken, internaljwt.RoleUser)
	if err != nil {
		return &HTTPError{
			StatusCode: http.StatusUnauthorized,
			Message:    "Invalid refresh token",
			ErrorLog:   fmt.Errorf("refresh token: %w", err),
		}
	}

	return WriteJSON(w, http.StatusOK, dto.AuthResponse{
		Token:        accessToken,
		RefreshToken: req.RefreshToken,
	})
}

func (h *authEndpoints) handleRegister(w http.ResponseWriter, r *http.Request) error {
	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return &HTTPError{
			StatusCode: http.StatusBadRequest,
			Message:    "Invalid request payload",
			ErrorLog:   fmt.Errorf("decode register request: %w", err),
		}
	}

	result, err := h.service.Register(r.Context(), authsvc.RegisterParams{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return h.serviceError(err)
	}

	return WriteJSON(w, http.StatusCreated, toAuthResponse(result))
}

func (h *authEndpoints) handleLogin(w http.ResponseWriter, r *http.Request) error {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return &HTTPError{
			StatusCode: http.StatusBadRequest,
			Message:    "Invalid request payload",
			ErrorLog:   fmt.Errorf("decode login request: %w", err),
		}
	}

	result, err := h.service.Login(r.Context(), authsvc.LoginParams{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return h.serviceError(err)
	}

	return WriteJSON(w, http.StatusOK, toAuthResponse(result))
}

func (h *authEndpoints) handleMe(w http.ResponseWriter, r *http.Request) error {
	identity, err := h.service.IdentityFromAuthorizationHeader(r.Header.Get("Authorization"))
	if err != nil {
		return h.serviceError(err)
	}

	profile, err := h.service.Me(r.Context(), identity)
	if err != nil {
		return h.serviceError(err)
	}

	return WriteJSON(w, http.StatusOK, dto.ProfileResponse{
		UserID: profile.User.UserID,
		Name:   profile.User.Name,
		Email:  profile.User.Email,
	})
}

func (h *authEndpoints) serviceError(err error) error {
	if err == nil {
		return nil
	}

	svcErr, ok := err.(*authsvc.Error)
	if !ok {
		return &HTTPError{
			StatusCode: http.StatusInternalServerError,
			Message:    "Internal server error",
			ErrorLog:   fmt.Errorf("auth service: %w", err),
		}
	}

	var errorLog error
	if svcErr.Err != nil {
		errorLog = fmt.Errorf("%s: %w", svcErr.Message, svcErr.Err)
	} else {
		errorLog = svcErr
	}

	switch svcErr.Code {
	case authsvc.ErrorCodeValidation:
		return &HTTPError{
			StatusCode: http.StatusBadRequest,
			Message:    svcErr.Message,
			ErrorLog:   errorLog,
		}
	case authsvc.ErrorCodeUnauthorized:
		return &HTTPError{
			StatusCode: http.StatusUnauthorized,
			Message:    svcErr.Message,
			ErrorLog:   errorLog,
		}
	case authsvc.ErrorCodeNotFound:
		return &HTTPError{
			StatusCode: http.StatusNotFound,
			Message:    svcErr.Message,
			ErrorLog:   errorLog,
		}
	case authsvc.ErrorCodeConflict:
		return &HTTPError{
			StatusCode: http.StatusConflict,
			Message:    svcErr.Message,
			ErrorLog:   errorLog,
		}
	default:
		return &HTTPError{
			StatusCode: http.StatusInternalServerError,
			Message:    "Internal server error",
			ErrorLog:   errorLog,
		}
	}
}

func toAuthResponse(result authsvc.AuthResult) dto.AuthResponse {
	return dto.AuthResponse{
		UserID:       result.User.UserID,
		Name:         result.User.Name,
		Email:        result.User.Email,
		Token:        result.Tokens.AccessToken,
		RefreshToken: result.Tokens.RefreshToken,
	}
}
