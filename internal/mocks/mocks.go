// Package mocks holds shared testify mocks for the persistence ports.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"foodlocker/internal/domain"
	"foodlocker/internal/order/repository"
)

type OrderRepository struct {
	mock.Mock
}

func (m *OrderRepository) Insert(ctx context.Context, order *domain.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *OrderRepository) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	args := m.Called(ctx, id)
	if order := args.Get(0); order != nil {
		return order.(*domain.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *OrderRepository) List(ctx context.Context, q repository.ListQuery) ([]domain.Order, error) {
	args := m.Called(ctx, q)
	if orders := args.Get(0); orders != nil {
		return orders.([]domain.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *OrderRepository) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}
