package router

import (
	"net/http"

	"travel-market-backend/internal/api"
	"travel-market-backend/internal/api/endpoints"
	authsvc "travel-market-backend/internal/service/auth"
	bookingsvc "travel-market-backend/internal/service/booking"
)

func BookingRoutes(prefix string) api.RouteRegistrar {
	return func(mux *http.ServeMux, s *api.APIServer) {
		service := bookingsvc.New(s.Database())
		auth := authsvc.New(s.Database())
		bookingEndpoints := endpoints.NewBookingEndpoints(service, auth)

		mux.HandleFunc(prefix+"/tours/quote", s.MakeHTTPHandleFunc(bookingEndpoints.Quote))
		mux.HandleFunc(prefix+"/bookings", s.MakeHTTPHandleFunc(bookingEndpoints.Bookings))
	}
}
