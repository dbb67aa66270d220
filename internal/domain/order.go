package domain

import "time"

type OrderStatus string

const (
	StatusReceived  OrderStatus = "received"
	StatusCooking   OrderStatus = "cooking"
	StatusCompleted OrderStatus = "completed"
)

// StatusActive is the synthetic filter value that expands to the set of
// statuses a store still has to act on.
const StatusActive = "active"

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusReceived, StatusCooking, StatusCompleted:
		return true
	}
	return false
}

// IsActive reports whether the order still sits in the fulfillment queue.
func (s OrderStatus) IsActive() bool {
	return s == StatusReceived || s == StatusCooking
}

// Next returns the following status in the fulfillment sequence. The server
// does not enforce this sequence; it exists for the store client's action
// buttons.
func (s OrderStatus) Next() (OrderStatus, bool) {
	switch s {
	case StatusReceived:
		return StatusCooking, true
	case StatusCooking:
		return StatusCompleted, true
	}
	return "", false
}

type DeliveryMethod string

const (
	DeliveryLocker DeliveryMethod = "locker"
	DeliverySeat   DeliveryMethod = "seat"
	DeliveryPickup DeliveryMethod = "pickup"
)

func (m DeliveryMethod) Valid() bool {
	switch m {
	case DeliveryLocker, DeliverySeat, DeliveryPickup:
		return true
	}
	return false
}

// RequiresSeat reports whether checkout needs a recorded seat location.
func (m DeliveryMethod) RequiresSeat() bool {
	return m == DeliveryLocker || m == DeliverySeat
}

type LineItem struct {
	ID       string            `json:"id"`
	Name     string            `json:"name"`
	Price    int64             `json:"price"`
	Quantity int               `json:"quantity"`
	Options  map[string]string `json:"options,omitempty"`
	Image    string            `json:"image,omitempty"`
}

type Order struct {
	ID             string         `json:"id"`
	UserID         string         `json:"userId,omitempty"`
	Items          []LineItem     `json:"items"`
	Total          int64          `json:"total"`
	DeliveryMethod DeliveryMethod `json:"deliveryMethod"`
	PaymentMethod  string         `json:"paymentMethod"`
	SeatBlock      string         `json:"seatBlock,omitempty"`
	SeatNumber     string         `json:"seatNumber,omitempty"`
	Status         OrderStatus    `json:"status"`
	BrandIDs       []string       `json:"brandIds,omitempty"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
}

// OrderFilter is a conjunction of optional predicates for listing orders.
// Status accepts an exact status or the synthetic value "active".
type OrderFilter struct {
	UserID  string
	Status  string
	BrandID string
}
