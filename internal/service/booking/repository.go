package booking

import (
	"context"
	"errors"
	"sort"
	"strings"

	"travel-market-backend/internal/database"
	"travel-market-backend/internal/model"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

var ErrNotFound = errors.New("booking repository: not found")

type Repository interface {
	GetTour(ctx context.Context, tourID string) (model.TourItem, error)
	CreateBooking(ctx context.Context, booking model.BookingItem) error
	ListBookings(ctx context.Context, tourID string, limit int) ([]model.BookingItem, error)
}

type DynamoRepository struct {
	db *database.Database
}

func NewDynamoRepository(db *database.Database) Repository {
	return &DynamoRepository{db: db}
}

func (r *DynamoRepository) GetTour(ctx context.Context, tourID string) (model.TourItem, error) {
	var tour model.TourItem
	err := r.db.Client.GetItem(
		ctx,
		model.ToursTable,
		map[string]types.AttributeValue{
			"tourId": &types.AttributeValueMemberS{Value: tourID},
		},
		&tour,
	)
	if err != nil {
		if isNotFound(err) {
			return model.TourItem{}, ErrNotFound
		}
		return model.TourItem{}, err
	}
	return tour, nil
}

func (r *DynamoRepository) CreateBooking(ctx context.Context, booking model.BookingItem) error {
	return r.db.Client.PutItem(ctx, model.BookingsTable, booking)
}

func (r *DynamoRepository) ListBookings(ctx context.Context, tourID string, limit int) ([]model.BookingItem, error) {
	var items []map[string]types.AttributeValue
	var err error

	if tourID == "" {
		items, err = r.db.Client.ScanAll(ctx, model.BookingsTable)
	} else {
		items, err = r.db.Client.Scan(ctx, database.ScanParams{
			Table:  model.BookingsTable,
			Filter: "tourId = :tourId",
			Values: map[string]types.AttributeValue{
				":tourId": &types.AttributeValueMemberS{Value: tourID},
			},
		})
	}
	if err != nil {
		return nil, err
	}

	bookings := make([]model.BookingItem, 0, len(items))
	for _, item := range items {
		var booking model.BookingItem
		if err := attributevalue.UnmarshalMap(item, &booking); err != nil {
			return nil, err
		}
		bookings = append(bookings, booking)
	}

	sort.Slice(bookings, func(i, j int) bool {
		return bookings[i].CreatedAt > bookings[j].CreatedAt
	})

	if limit > 0 && len(bookings) > limit {
		bookings = bookings[:limit]
	}

	return bookings, nil
}

func isNotFound(err error) bool {
	return err != nil && strings.Contains(err.Error(), "item not found")
}
