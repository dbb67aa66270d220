package consumer

import (
	"context"

	"foodlocker/internal/client"
	"foodlocker/internal/domain"
	apperrors "foodlocker/internal/errors"
)

const (
	lockerFee = 1000
	seatFee   = 2500
)

// OrderAPI is the slice of the backend client checkout needs.
type OrderAPI interface {
	CreateOrder(ctx context.Context, req client.CreateOrderRequest) (*domain.Order, error)
}

// Pricing is the checkout breakdown shown before payment. All amounts are
// whole KRW.
type Pricing struct {
	Subtotal    int64
	DeliveryFee int64
	Discount    int64
	Total       int64
}

// Checkout turns the persisted cart into an order. The cart is cleared only
// after the backend accepts the order, so a failed submission keeps the
// draft intact.
type Checkout struct {
	cart *Cart
	api  OrderAPI
}

func NewCheckout(cart *Cart, api OrderAPI) *Checkout {
	return &Checkout{cart: cart, api: api}
}

// Price computes the pricing breakdown for the given delivery method.
// The event discount is 10% of the menu subtotal, truncated to whole KRW,
// and applies before the delivery fee.
func (c *Checkout) Price(method domain.DeliveryMethod) (Pricing, error) {
	subtotal, err := c.cart.Total()
	if err != nil {
		return Pricing{}, err
	}

	fee := deliveryFee(method)
	discount := subtotal / 10

	return Pricing{
		Subtotal:    subtotal,
		DeliveryFee: fee,
		Discount:    discount,
		Total:       subtotal + fee - discount,
	}, nil
}

type SubmitInput struct {
	UserID         string
	DeliveryMethod domain.DeliveryMethod
	PaymentMethod  string
}

func (c *Checkout) Submit(ctx context.Context, input SubmitInput) (*domain.Order, error) {
	items, err := c.cart.Items()
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, apperrors.NewValidationError("cart is empty")
	}
	if !input.DeliveryMethod.Valid() {
		return nil, apperrors.NewValidationError("invalid delivery method")
	}
	if input.PaymentMethod == "" {
		return nil, apperrors.NewValidationError("payment method is required")
	}

	var seat Seat
	if input.DeliveryMethod.RequiresSeat() {
		var ok bool
		seat, ok, err = c.cart.Seat()
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, apperrors.NewValidationError("seat selection is required")
		}
	}

	pricing, err := c.Price(input.DeliveryMethod)
	if err != nil {
		return nil, err
	}

	req := client.CreateOrderRequest{
		UserID:         input.UserID,
		Items:          lineItems(items),
		Total:          pricing.Total,
		DeliveryMethod: string(input.DeliveryMethod),
		PaymentMethod:  input.PaymentMethod,
		SeatBlock:      seat.Block,
		SeatNumber:     seat.Number,
		BrandIDs:       brandIDs(items),
	}

	order, err := c.api.CreateOrder(ctx, req)
	if err != nil {
		return nil, err
	}

	if err := c.cart.Clear(); err != nil {
		return order, err
	}
	return order, nil
}

func deliveryFee(method domain.DeliveryMethod) int64 {
	switch method {
	case domain.DeliveryLocker:
		return lockerFee
	case domain.DeliverySeat:
		return seatFee
	default:
		return 0
	}
}

func lineItems(items []CartItem) []domain.LineItem {
	lines := make([]domain.LineItem, len(items))
	for i, it := range items {
		lines[i] = it.LineItem
	}
	return lines
}

// brandIDs collects the distinct brands in cart order, first occurrence wins.
func brandIDs(items []CartItem) []string {
	seen := map[string]bool{}
	var ids []string
	for _, it := range items {
		if it.BrandID == "" || seen[it.BrandID] {
			continue
		}
		seen[it.BrandID] = true
		ids = append(ids, it.BrandID)
	}
	return ids
}
