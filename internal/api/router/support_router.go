package router

import (
	"net/http"

	"travel-market-backend/internal/api"
	"travel-market-backend/internal/api/endpoints"
	"travel-market-backend/internal/api/middleware"
	"travel-market-backend/internal/dto"
	supportsvc "travel-market-backend/internal/service/support"
)

// SupportPublicRoutes serves the storefront chat panel: on-duty agent lookup
// and per-visitor history.
func SupportPublicRoutes(prefix string) api.RouteRegistrar {
	return func(mux *http.ServeMux, s *api.APIServer) {
		service := supportsvc.New(s.Database())
		paths := endpoints.SupportPaths{
			HistoryPrefix: dto.SupportHistoryPrefix(prefix),
		}
		supportEndpoints := endpoints.NewSupportEndpoints(service, s.Handler(), paths)

		mux.HandleFunc(dto.SupportAgentPath(prefix), s.MakeHTTPHandleFunc(supportEndpoints.OnDutyAgent))
		mux.HandleFunc(dto.SupportHistoryPrefix(prefix), s.MakeHTTPHandleFunc(supportEndpoints.History))
	}
}

// SupportAgentRoutes serves the back-office side and requires an agent token.
func SupportAgentRoutes(prefix string) api.RouteRegistrar {
	return func(mux *http.ServeMux, s *api.APIServer) {
		service := supportsvc.New(s.Database())
		paths := endpoints.SupportPaths{
			HistoryPrefix: dto.SupportHistoryPrefix(prefix),
		}
		supportEndpoints := endpoints.NewSupportEndpoints(service, s.Handler(), paths)

		mux.HandleFunc(dto.SupportHistoryPrefix(prefix), s.MakeHTTPHandleFunc(supportEndpoints.History, middleware.ValidateAgentJWT))
		mux.HandleFunc(prefix+"/support/status", s.MakeHTTPHandleFunc(supportEndpoints.AgentStatus, middleware.ValidateAgentJWT))
		mux.HandleFunc(prefix+"/support/messages", s.MakeHTTPHandleFunc(supportEndpoints.SendMessage, middleware.ValidateAgentJWT))
	}
}

func SupportWebsocketRoutes(prefix string) api.RouteRegistrar {
	return func(mux *http.ServeMux, s *api.APIServer) {
		service := supportsvc.New(s.Database())
		paths := endpoints.SupportPaths{
			WebsocketPrefix: dto.SupportWebsocketPrefix(prefix),
		}
		supportEndpoints := endpoints.NewSupportEndpoints(service, s.Handler(), paths)

		mux.HandleFunc(dto.SupportWebsocketPrefix(prefix), s.MakeHTTPHandleFunc(supportEndpoints.Websocket))

		// Room inspection is for logged-in principals only, agent or user.
		mux.HandleFunc(prefix+"/support/rooms", s.MakeHTTPHandleFunc(func(w http.ResponseWriter, r *http.Request) error {
			s.Handler().GetRooms(w, r)
			return nil
		}, middleware.ValidateAnyJWT))
		mux.HandleFunc(prefix+"/support/clients", s.MakeHTTPHandleFunc(func(w http.ResponseWriter, r *http.Request) error {
			s.Handler().GetRoomClients(w, r)
			return nil
		}, middleware.ValidateAnyJWT))
	}
}
