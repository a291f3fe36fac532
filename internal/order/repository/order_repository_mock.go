package repository

import (
	"skillconnect-order-service/internal/order"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockOrderRepository adalah mock testify untuk OrderRepository.
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Save(ord *order.Order, actor order.ActorRole) (*order.Order, error) {
	args := m.Called(ord, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByID(id uuid.UUID) (*order.Order, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) TransitionStatus(id uuid.UUID, from, to order.OrderStatus, actor order.ActorRole, reason string) (*order.Order, error) {
	args := m.Called(id, from, to, actor, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) HistoryByOrderID(orderID uuid.UUID) ([]order.StatusHistoryEntry, error) {
	args := m.Called(orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.StatusHistoryEntry), args.Error(1)
}
