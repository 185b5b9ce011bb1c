package booking

import (
	"context"
	"errors"
	"strings"
	"time"

	"travel-market-backend/internal/database"
	"travel-market-backend/internal/model"
	"travel-market-backend/internal/pricing"

	"github.com/google/uuid"
)

type ErrorCode string

const (
	ErrorCodeValidation ErrorCode = "validation_error"
	ErrorCodeNotFound   ErrorCode = "not_found"
	ErrorCodeConflict   ErrorCode = "conflict"
	ErrorCodeInternal   ErrorCode = "internal_error"
)

type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(code ErrorCode, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

type CreateBookingParams struct {
	TourID       string
	UserID       string
	ContactName  string
	ContactEmail string
	TourDate     string
	PartySize    int
}

type QuoteResult struct {
	Tour  model.TourItem
	Quote pricing.Quote
}

type Service struct {
	repo Repository
	now  func() time.Time
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

// Quote re-resolves the price from the tour's current tier table. Nothing is
// cached between calls: a changed party size always goes through the full
// resolution again.
func (s *Service) Quote(ctx context.Context, tourID string, partySize int) (QuoteResult, error) {
	tourID = strings.TrimSpace(tourID)
	if tourID == "" {
		return QuoteResult{}, newError(ErrorCodeValidation, "tourId is required", nil)
	}

	tour, err := s.repo.GetTour(ctx, tourID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return QuoteResult{}, newError(ErrorCodeNotFound, "tour not found", err)
		}
		return QuoteResult{}, newError(ErrorCodeInternal, "failed to load tour", err)
	}

	quote, err := pricing.Resolve(priceTable(tour), partySize)
	if err != nil {
		return QuoteResult{}, newError(ErrorCodeValidation, "party size must be at least 1", err)
	}

	return QuoteResult{
		Tour:  tour,
		Quote: quote,
	}, nil
}

// CreateBooking recomputes the price server-side; the client's previewed
// quote is advisory only.
func (s *Service) CreateBooking(ctx context.Context, params CreateBookingParams) (model.BookingItem, error) {
	name := strings.TrimSpace(params.ContactName)
	email := strings.ToLower(strings.TrimSpace(params.ContactEmail))
	tourDate := strings.TrimSpace(params.TourDate)

	if name == "" || email == "" {
		return model.BookingItem{}, newError(ErrorCodeValidation, "contact name and email are required", nil)
	}
	if tourDate == "" {
		return model.BookingItem{}, newError(ErrorCodeValidation, "tour date is required", nil)
	}
	if _, err := time.Parse("2006-01-02", tourDate); err != nil {
		return model.BookingItem{}, newError(ErrorCodeValidation, "tour date must be YYYY-MM-DD", err)
	}

	result, err := s.Quote(ctx, params.TourID, params.PartySize)
	if err != nil {
		return model.BookingItem{}, err
	}

	if result.Tour.MaxSlots > 0 && params.PartySize > result.Tour.MaxSlots {
		return model.BookingItem{}, newError(ErrorCodeConflict, "party size exceeds available slots", nil)
	}

	now := s.now().UTC().Format(time.RFC3339)
	booking := model.BookingItem{
		BookingID:    uuid.NewString(),
		TourID:       result.Tour.TourID,
		UserID:       strings.TrimSpace(params.UserID),
		ContactName:  name,
		ContactEmail: email,
		TourDate:     tourDate,
		PartySize:    params.PartySize,
		Tier:         string(result.Quote.Tier),
		UnitPrice:    result.Quote.UnitPrice,
		Total:        result.Quote.Total,
		Status:       model.BookingStatusPending,
		CreatedAt:    now,
	}

	if err := s.repo.CreateBooking(ctx, booking); err != nil {
		return model.BookingItem{}, newError(ErrorCodeInternal, "failed to store booking", err)
	}

	return booking, nil
}

func (s *Service) ListBookings(ctx context.Context, tourID string, limit int) ([]model.BookingItem, error) {
	tourID = strings.TrimSpace(tourID)
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	bookings, err := s.repo.ListBookings(ctx, tourID, limit)
	if err != nil {
		return nil, newError(ErrorCodeInternal, "failed to list bookings", err)
	}
	return bookings, nil
}

func priceTable(tour model.TourItem) pricing.Table {
	return pricing.Table{
		PerSlot:  tour.PricePerSlot,
		Group:    tour.PriceGroup,
		Discount: tour.PriceDiscount,
	}
}
