package router

import (
	"net/http"

	"travel-market-backend/internal/api"
	"travel-market-backend/internal/api/endpoints"
	"travel-market-backend/internal/api/middleware"
)

func AuthRoutes(prefix string) api.RouteRegistrar {
	return func(mux *http.ServeMux, s *api.APIServer) {
		authEndpoints := endpoints.NewAuthEndpoints(s.Database())
		mux.HandleFunc(prefix+"/auth/register", s.MakeHTTPHandleFunc(authEndpoints.Register))
		mux.HandleFunc(prefix+"/auth/login", s.MakeHTTPHandleFunc(authEndpoints.Login))
		mux.HandleFunc(prefix+"/auth/refresh", s.MakeHTTPHandleFunc(authEndpoints.Refresh))
		mux.HandleFunc(prefix+"/auth/me", s.MakeHTTPHandleFunc(authEndpoints.Me, middleware.ValidateUserJWT))
	}
}
