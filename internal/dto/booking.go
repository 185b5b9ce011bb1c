package dto

type TourResponse struct {
	TourID        string   `json:"tourId"`
	Title         string   `json:"title"`
	Destination   string   `json:"destination"`
	PricePerSlot  float64  `json:"pricePerSlot"`
	PriceGroup    *float64 `json:"priceGroup,omitempty"`
	PriceDiscount *float64 `json:"priceDiscount,omitempty"`
	MaxSlots      int      `json:"maxSlots"`
	Status        string   `json:"status"`
}

type QuoteResponse struct {
	TourID    string  `json:"tourId"`
	Tier      string  `json:"tier"`
	UnitPrice float64 `json:"unitPrice"`
	PartySize int     `json:"partySize"`
	Total     float64 `json:"total"`
}

type CreateBookingRequest struct {
	TourID       string `json:"tourId"`
	ContactName  string `json:"contactName"`
	ContactEmail string `json:"contactEmail"`
	TourDate     string `json:"tourDate"`
	PartySize    int    `json:"partySize"`
}

type BookingResponse struct {
	BookingID    string  `json:"bookingId"`
	TourID       string  `json:"tourId"`
	ContactName  string  `json:"contactName"`
	ContactEmail string  `json:"contactEmail"`
	TourDate     string  `json:"tourDate"`
	PartySize    int     `json:"partySize"`
	Tier         string  `json:"tier"`
	UnitPrice    float64 `json:"unitPrice"`
	Total        float64 `json:"total"`
	Status       string  `json:"status"`
	CreatedAt    string  `json:"createdAt"`
}
