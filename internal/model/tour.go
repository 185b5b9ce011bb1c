package model

// TourItem carries the tiered price table next to the catalog fields.
// PriceGroup and PriceDiscount are pointers: an absent tier is not the same
// as a tier priced at zero.
type TourItem struct {
	TourID        string   `dynamodbav:"tourId"`
	Title         string   `dynamodbav:"title"`
	Destination   string   `dynamodbav:"destination"`
	PricePerSlot  float64  `dynamodbav:"pricePerSlot"`
	PriceGroup    *float64 `dynamodbav:"priceGroup,omitempty"`
	PriceDiscount *float64 `dynamodbav:"priceDiscount,omitempty"`
	MaxSlots      int      `dynamodbav:"maxSlots"`
	Status        string   `dynamodbav:"status"`
	CreatedAt     string   `dynamodbav:"createdAt"`
	UpdatedAt     string   `dynamodbav:"updatedAt"`
}

type BookingItem struct {
	BookingID    string  `dynamodbav:"bookingId"`
	TourID       string  `dynamodbav:"tourId"`
	UserID       string  `dynamodbav:"userId,omitempty"`
	ContactName  string  `dynamodbav:"contactName"`
	ContactEmail string  `dynamodbav:"contactEmail"`
	TourDate     string  `dynamodbav:"tourDate"`
	PartySize    int     `dynamodbav:"partySize"`
	Tier         string  `dynamodbav:"tier"`
	UnitPrice    float64 `dynamodbav:"unitPrice"`
	Total        float64 `dynamodbav:"total"`
	Status       string  `dynamodbav:"status"`
	CreatedAt    string  `dynamodbav:"createdAt"`
}

const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
)
