package consumer

import (
	"encoding/json"
	"fmt"

	"foodlocker/internal/domain"
)

const (
	cartKey = "food-locker-cart-storage"
	seatKey = "food-locker-seat-storage"
)

// CartItem is a cart line plus the brand it belongs to, so checkout can
// stamp the order with the brand scope the store client filters on.
type CartItem struct {
	domain.LineItem
	BrandID string `json:"brandId,omitempty"`
}

type Seat struct {
	Block  string `json:"seatBlock"`
	Number string `json:"seatNumber"`
}

// Cart is the persisted client-side order draft. Every mutation writes
// through to the injected Storage so state survives navigation.
type Cart struct {
	storage Storage
}

func NewCart(storage Storage) *Cart {
	return &Cart{storage: storage}
}

func (c *Cart) Items() ([]CartItem, error) {
	raw, ok, err := c.storage.Get(cartKey)
	if err != nil {
		return nil, fmt.Errorf("reading cart: %w", err)
	}
	if !ok {
		return []CartItem{}, nil
	}

	var items []CartItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decoding cart: %w", err)
	}
	return items, nil
}

// AddItem merges into an existing line when the item and its selected
// options are identical, otherwise appends a new line.
func (c *Cart) AddItem(item CartItem) error {
	items, err := c.Items()
	if err != nil {
		return err
	}

	merged := false
	for i := range items {
		if items[i].ID == item.ID && sameOptions(items[i].Options, item.Options) {
			items[i].Quantity += item.Quantity
			merged = true
			break
		}
	}
	if !merged {
		items = append(items, item)
	}

	return c.write(items)
}

func (c *Cart) RemoveItem(itemID string, options map[string]string) error {
	items, err := c.Items()
	if err != nil {
		return err
	}

	kept := items[:0]
	for _, it := range items {
		if it.ID == itemID {
			if options == nil || sameOptions(it.Options, options) {
				continue
			}
		}
		kept = append(kept, it)
	}

	return c.write(kept)
}

func (c *Cart) UpdateQuantity(itemID string, quantity int, options map[string]string) error {
	if quantity <= 0 {
		return c.RemoveItem(itemID, options)
	}

	items, err := c.Items()
	if err != nil {
		return err
	}

	for i := range items {
		if items[i].ID == itemID && (options == nil || sameOptions(items[i].Options, options)) {
			items[i].Quantity = quantity
		}
	}

	return c.write(items)
}

func (c *Cart) Clear() error {
	return c.storage.Delete(cartKey)
}

func (c *Cart) Total() (int64, error) {
	items, err := c.Items()
	if err != nil {
		return 0, err
	}

	var total int64
	for _, it := range items {
		total += it.Price * int64(it.Quantity)
	}
	return total, nil
}

func (c *Cart) ItemCount() (int, error) {
	items, err := c.Items()
	if err != nil {
		return 0, err
	}

	count := 0
	for _, it := range items {
		count += it.Quantity
	}
	return count, nil
}

func (c *Cart) SetSeat(seat Seat) error {
	raw, err := json.Marshal(seat)
	if err != nil {
		return fmt.Errorf("encoding seat: %w", err)
	}
	return c.storage.Set(seatKey, raw)
}

func (c *Cart) Seat() (Seat, bool, error) {
	raw, ok, err := c.storage.Get(seatKey)
	if err != nil || !ok {
		return Seat{}, false, err
	}

	var seat Seat
	if err := json.Unmarshal(raw, &seat); err != nil {
		return Seat{}, false, fmt.Errorf("decoding seat: %w", err)
	}
	return seat, seat.Block != "" && seat.Number != "", nil
}

func (c *Cart) write(items []CartItem) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encoding cart: %w", err)
	}
	return c.storage.Set(cartKey, raw)
}

func sameOptions(a, b map[string]string) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if b[k] != v {
			return false
		}
	}
	return true
}
