package consumer

import (
	"path/filepath"
	"testing"

	"foodlocker/internal/domain"
)

func testItem(id string, price int64, qty int, options map[string]string) CartItem {
	return CartItem{
		LineItem: domain.LineItem{
			ID:       id,
			Name:     "item " + id,
			Price:    price,
			Quantity: qty,
			Options:  options,
		},
		BrandID: "brand-" + id,
	}
}

func TestCart_AddItemMergesSameOptions(t *testing.T) {
	cart := NewCart(NewMemoryStorage())

	if err := cart.AddItem(testItem("i1", 5000, 1, map[string]string{"size": "L"})); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := cart.AddItem(testItem("i1", 5000, 2, map[string]string{"size": "L"})); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	items, err := cart.Items()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected one merged line, got %d", len(items))
	}
	if items[0].Quantity != 3 {
		t.Errorf("expected quantity 3, got %d", items[0].Quantity)
	}
}

func TestCart_AddItemKeepsDistinctOptionsApart(t *testing.T) {
	cart := NewCart(NewMemoryStorage())

	if err := cart.AddItem(testItem("i1", 5000, 1, map[string]string{"size": "L"})); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := cart.AddItem(testItem("i1", 5000, 1, map[string]string{"size": "M"})); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	items, err := cart.Items()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 2 {
		t.Errorf("expected two lines, got %d", len(items))
	}
}

func TestCart_UpdateQuantityZeroRemovesLine(t *testing.T) {
	cart := NewCart(NewMemoryStorage())

	if err := cart.AddItem(testItem("i1", 5000, 2, nil)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := cart.UpdateQuantity("i1", 0, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	items, err := cart.Items()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("expected empty cart, got %d lines", len(items))
	}
}

func TestCart_TotalAndItemCount(t *testing.T) {
	cart := NewCart(NewMemoryStorage())

	if err := cart.AddItem(testItem("i1", 5000, 2, nil)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := cart.AddItem(testItem("i2", 3000, 1, nil)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	total, err := cart.Total()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 13000 {
		t.Errorf("expected total 13000, got %d", total)
	}

	count, err := cart.ItemCount()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 3 {
		t.Errorf("expected count 3, got %d", count)
	}
}

func TestCart_SeatPersistence(t *testing.T) {
	cart := NewCart(NewMemoryStorage())

	if _, ok, err := cart.Seat(); err != nil || ok {
		t.Fatalf("expected no seat, got ok=%v err=%v", ok, err)
	}

	if err := cart.SetSeat(Seat{Block: "B", Number: "107"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	seat, ok, err := cart.Seat()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatal("expected a seat")
	}
	if seat.Block != "B" || seat.Number != "107" {
		t.Errorf("unexpected seat %+v", seat)
	}
}

func TestCart_FileStorageSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")

	cart := NewCart(NewFileStorage(path))
	if err := cart.AddItem(testItem("i1", 5000, 2, map[string]string{"size": "L"})); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	reopened := NewCart(NewFileStorage(path))
	items, err := reopened.Items()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected one line after reopen, got %d", len(items))
	}
	if items[0].BrandID != "brand-i1" || items[0].Options["size"] != "L" {
		t.Errorf("unexpected line after reopen: %+v", items[0])
	}
}
