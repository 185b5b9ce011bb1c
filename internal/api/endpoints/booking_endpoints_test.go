package endpoints

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"travel-market-backend/internal/api"
	"travel-market-backend/internal/dto"
	"travel-market-backend/internal/model"
	"travel-market-backend/internal/queue"
	bookingsvc "travel-market-backend/internal/service/booking"
)

type bookingMemoryRepository struct {
	tours    map[string]model.TourItem
	bookings []model.BookingItem
}

func newBookingMemoryRepository() *bookingMemoryRepository {
	return &bookingMemoryRepository{
		tours: make(map[string]model.TourItem),
	}
}

func (m *bookingMemoryRepository) GetTour(ctx context.Context, tourID string) (model.TourItem, error) {
	tour, ok := m.tours[tourID]
	if !ok {
		return model.TourItem{}, bookingsvc.ErrNotFound
	}
	return tour, nil
}

func (m *bookingMemoryRepository) CreateBooking(ctx context.Context, booking model.BookingItem) error {
	m.bookings = append(m.bookings, booking)
	return nil
}

func (m *bookingMemoryRepository) ListBookings(ctx context.Context, tourID string, limit int) ([]model.BookingItem, error) {
	matched := make([]model.BookingItem, 0)
	for _, booking := range m.bookings {
		if tourID == "" || booking.TourID == tourID {
			matched = append(matched, booking)
		}
	}
	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

func bookingFixedTime() time.Time {
	return time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)
}

func floatPtr(v float64) *float64 { return &v }

func setupBookingHandler(t *testing.T, repo bookingsvc.Repository) (http.Handler, func()) {
	t.Helper()

	service := bookingsvc.NewWithRepository(repo, bookingFixedTime)
	bookingEndpoints := NewBookingEndpoints(service, nil)

	queueManager := queue.NewRequestQueueManager(10, 1)
	server := api.NewAPIServer(":0", queueManager, nil, nil)

	mux := http.NewServeMux()
	mux.HandleFunc("/api/tours/quote", server.MakeHTTPHandleFunc(bookingEndpoints.Quote))
	mux.HandleFunc("/api/bookings", server.MakeHTTPHandleFunc(bookingEndpoints.Bookings))

	return mux, func() {
		queueManager.Shutdown()
	}
}

func seedHalongTour(repo *bookingMemoryRepository) model.TourItem {
	tour := model.TourItem{
		TourID:        "tour-halong",
		Title:         "Ha Long Bay Cruise",
		Destination:   "Ha Long",
		PricePerSlot:  2200000,
		PriceGroup:    floatPtr(1800000),
		PriceDiscount: floatPtr(1500000),
		MaxSlots:      20,
		Status:        "active",
	}
	repo.tours[tour.TourID] = tour
	return tour
}

func TestQuoteEndpoint(t *testing.T) {
	repo := newBookingMemoryRepository()
	handler, cleanup := setupBookingHandler(t, repo)
	t.Cleanup(cleanup)

	seedHalongTour(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/tours/quote?tourId=tour-halong&partySize=3", nil)
	res := httptest.NewRecorder()

	handler.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", res.Code, res.Body.String())
	}

	var resp dto.QuoteResponse
	if err := json.Unmarshal(res.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if resp.Tier != "discount" {
		t.Fatalf("expected discount tier, got %s", resp.Tier)
	}
	if resp.Total != 4500000 {
		t.Fatalf("expected total 4500000, got %f", resp.Total)
	}
}

func TestQuoteEndpointRejectsBadPartySize(t *testing.T) {
	repo := newBookingMemoryRepository()
	handler, cleanup := setupBookingHandler(t, repo)
	t.Cleanup(cleanup)

	seedHalongTour(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/tours/quote?tourId=tour-halong&partySize=zero", nil)
	res := httptest.NewRecorder()

	handler.ServeHTTP(res, req)

	if res.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", res.Code, res.Body.String())
	}
}

func TestQuoteEndpointUnknownTour(t *testing.T) {
	repo := newBookingMemoryRepository()
	handler, cleanup := setupBookingHandler(t, repo)
	t.Cleanup(cleanup)

	req := httptest.NewRequest(http.MethodGet, "/api/tours/quote?tourId=tour-none&partySize=2", nil)
	res := httptest.NewRecorder()

	handler.ServeHTTP(res, req)

	if res.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", res.Code, res.Body.String())
	}
}

func TestCreateBookingEndpoint(t *testing.T) {
	repo := newBookingMemoryRepository()
	handler, cleanup := setupBookingHandler(t, repo)
	t.Cleanup(cleanup)

	seedHalongTour(repo)

	body, _ := json.Marshal(dto.CreateBookingRequest{
		TourID:       "tour-halong",
		ContactName:  "Lan Nguyen",
		ContactEmail: "Lan@Example.com",
		TourDate:     "2024-06-01",
		PartySize:    2,
	})

	req := httptest.NewRequest(http.MethodPost, "/api/bookings", bytes.NewReader(body))
	res := httptest.NewRecorder()

	handler.ServeHTTP(res, req)

	if res.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", res.Code, res.Body.String())
	}

	var resp dto.BookingResponse
	if err := json.Unmarshal(res.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if resp.BookingID == "" {
		t.Fatalf("expected a booking id")
	}
	if resp.ContactEmail != "lan@example.com" {
		t.Fatalf("expected normalized email, got %s", resp.ContactEmail)
	}
	if resp.Total != 3000000 {
		t.Fatalf("expected server-side total 3000000, got %f", resp.Total)
	}
}

func TestCreateBookingEndpointRejectsMissingContact(t *testing.T) {
	repo := newBookingMemoryRepository()
	handler, cleanup := setupBookingHandler(t, repo)
	t.Cleanup(cleanup)

	seedHalongTour(repo)

	body, _ := json.Marshal(dto.CreateBookingRequest{
		TourID:    "tour-halong",
		TourDate:  "2024-06-01",
		PartySize: 2,
	})

	req := httptest.NewRequest(http.MethodPost, "/api/bookings", bytes.NewReader(body))
	res := httptest.NewRecorder()

	handler.ServeHTTP(res, req)

	if res.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", res.Code, res.Body.String())
	}
}
