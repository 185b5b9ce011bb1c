package endpoints

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"travel-market-backend/internal/dto"
	"travel-market-backend/internal/model"
	authsvc "travel-market-backend/internal/service/auth"
	bookingsvc "travel-market-backend/internal/service/booking"
)

type BookingEndpoints interface {
	Quote(http.ResponseWriter, *http.Request) error
	Bookings(http.ResponseWriter, *http.Request) error
}

type bookingEndpoints struct {
	service *bookingsvc.Service
	auth    *authsvc.Service
}

func NewBookingEndpoints(service *bookingsvc.Service, auth *authsvc.Service) BookingEndpoints {
	return &bookingEndpoints{
		service: service,
		auth:    auth,
	}
}

func (h *bookingEndpoints) Quote(w http.ResponseWriter, r *http.Request) error {
	return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
		http.MethodGet: h.handleQuote,
	})
}

func (h *bookingEndpoints) Bookings(w http.ResponseWriter, r *http.Request) error {
	return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
		http.MethodPost: h.handleCreateBooking,
		http.MethodGet:  h.handleListBookings,
	})
}

func (h *bookingEndpoints) handleQuote(w http.ResponseWriter, r *http.Request) error {
	tourID := r.URL.Query().Get("tourId")

	partySize, err := strconv.Atoi(r.URL.Query().Get("partySize"))
	if err != nil {
		return &HTTPError{
			StatusCode: http.StatusBadRequest,
			Message:    "Invalid party size",
			ErrorLog:   fmt.Errorf("parse partySize: %w", err),
		}
	}

	result, err := h.service.Quote(r.Context(), tourID, partySize)
	if err != nil {
		return h.serviceError(err)
	}

	return WriteJSON(w, http.StatusOK, dto.QuoteResponse{
		TourID:    result.Tour.TourID,
		Tier:      string(result.Quote.Tier),
		UnitPrice: result.Quote.UnitPrice,
		PartySize: result.Quote.PartySize,
		Total:     result.Quote.Total,
	})
}

func (h *bookingEndpoints) handleCreateBooking(w http.ResponseWriter, r *http.Request) error {
	var req dto.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return &HTTPError{
			StatusCode: http.StatusBadRequest,
			Message:    "Invalid request payload",
			ErrorLog:   fmt.Errorf("decode booking request: %w", err),
		}
	}

	// Bookings work for anonymous visitors too, so the identity is optional.
	userID := ""
	if header := r.Header.Get("Authorization"); header != "" {
		identity, err := h.auth.IdentityFromAuthorizationHeader(header)
		if err == nil {
			userID = identity.UserID
		}
	}

	booking, err := h.service.CreateBooking(r.Context(), bookingsvc.CreateBookingParams{
		TourID:       req.TourID,
		UserID:       userID,
		ContactName:  req.ContactName,
		ContactEmail: req.ContactEmail,
		TourDate:     req.TourDate,
		PartySize:    req.PartySize,
	})
	if err != nil {
		return h.serviceError(err)
	}

	return WriteJSON(w, http.StatusCreated, toBookingResponse(booking))
}

func (h *bookingEndpoints) handleListBookings(w http.ResponseWriter, r *http.Request) error {
	tourID := r.URL.Query().Get("tourId")

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			return &HTTPError{
				StatusCode: http.StatusBadRequest,
				Message:    "Invalid limit",
				ErrorLog:   fmt.Errorf("bookings limit %q", raw),
			}
		}
		limit = parsed
	}

	bookings, err := h.service.ListBookings(r.Context(), tourID, limit)
	if err != nil {
		return h.serviceError(err)
	}

	resp := make([]dto.BookingResponse, 0, len(bookings))
	for _, booking := range bookings {
		resp = append(resp, toBookingResponse(booking))
	}

	return WriteJSON(w, http.StatusOK, resp)
}

func (h *bookingEndpoints) serviceError(err error) error {
	if err == nil {
		return nil
	}

	svcErr, ok := err.(*bookingsvc.Error)
	if !ok {
		return &HTTPError{
			StatusCode: http.StatusInternalServerError,
			Message:    "Internal server error",
			ErrorLog:   fmt.Errorf("booking service: %w", err),
		}
	}

	var errorLog error
	if svcErr.Err != nil {
		errorLog = fmt.Errorf("%s: %w", svcErr.Message, svcErr.Err)
	} else {
		errorLog = svcErr
	}

	switch svcErr.Code {
	case bookingsvc.ErrorCodeValidation:
		return &HTTPError{
			StatusCode: http.StatusBadRequest,
			Message:    svcErr.Message,
			ErrorLog:   errorLog,
		}
	case bookingsvc.ErrorCodeNotFound:
		return &HTTPError{
			StatusCode: http.StatusNotFound,
			Message:    svcErr.Message,
			ErrorLog:   errorLog,
		}
	case bookingsvc.ErrorCodeConflict:
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

func toBookingResponse(booking model.BookingItem) dto.BookingResponse {
	return dto.BookingResponse{
		BookingID:    booking.BookingID,
		TourID:       booking.TourID,
		ContactName:  booking.ContactName,
		ContactEmail: booking.ContactEmail,
		TourDate:     booking.TourDate,
		PartySize:    booking.PartySize,
		Tier:         booking.Tier,
		UnitPrice:    booking.UnitPrice,
		Total:        booking.Total,
		Status:       booking.Status,
		CreatedAt:    booking.CreatedAt,
	}
}
