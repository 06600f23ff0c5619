package service_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"garmentloop-backend/internal/domain"
)

type MockRentalRepo struct {
	mock.Mock
}

func (m *MockRentalRepo) CreateWithOrder(ctx context.Context, order *domain.Order, rental *domain.Rental) error {
	args := m.Called(ctx, order, rental)
	return args.Error(0)
}

func (m *MockRentalRepo) GetByID(ctx context.Context, id int32) (*domain.Rental, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}

func (m *MockRentalRepo) Update(ctx context.Context, rental *domain.Rental) error {
	args := m.Called(ctx, rental)
	return args.Error(0)
}

func (m *MockRentalRepo) CountOverlapping(ctx context.Context, productID int32, variantID *int32, start, end time.Time, excludeRentalID int32) (int32, error) {
	args := m.Called(ctx, productID, variantID, start, end, excludeRentalID)
	return args.Get(0).(int32), args.Error(1)
}

func (m *MockRentalRepo) ListByUser(ctx context.Context, userID int32, status string, page, pageSize int32) ([]domain.Rental, int32, error) {
	args := m.Called(ctx, userID, status, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int32), args.Error(2)
	}
	return args.Get(0).([]domain.Rental), args.Get(1).(int32), args.Error(2)
}

type MockProductRepo struct {
	mock.Mock
}

func (m *MockProductRepo) GetByID(ctx context.Context, id int32) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockProductRepo) GetVariantByID(ctx context.Context, id int32) (*domain.ProductVariant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProductVariant), args.Error(1)
}

func (m *MockProductRepo) GetCurrentPricing(ctx context.Context, productID int32) (*domain.PricingSnapshot, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PricingSnapshot), args.Error(1)
}

type MockOrderRepo struct {
	mock.Mock
}

func (m *MockOrderRepo) CreateWithItems(ctx context.Context, order *domain.Order, items []domain.OrderItem) error {
	args := m.Called(ctx, order, items)
	return args.Error(0)
}

func (m *MockOrderRepo) GetByID(ctx context.Context, id int32) (*domain.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderRepo) GetItems(ctx context.Context, orderID int32) ([]domain.OrderItem, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.OrderItem), args.Error(1)
}

func (m *MockOrderRepo) ListByUser(ctx context.Context, userID int32, page, pageSize int32) ([]domain.Order, int32, error) {
	args := m.Called(ctx, userID, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int32), args.Error(2)
	}
	return args.Get(0).([]domain.Order), args.Get(1).(int32), args.Error(2)
}

func (m *MockOrderRepo) Cancel(ctx context.Context, order *domain.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

type MockCartRepo struct {
	mock.Mock
}

func (m *MockCartRepo) ListLines(ctx context.Context, userID int32) ([]domain.CartLine, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CartLine), args.Error(1)
}

type MockStockRepo struct {
	mock.Mock
}

func (m *MockStockRepo) ReserveForRental(ctx context.Context, variantID, qty int32) error {
	args := m.Called(ctx, variantID, qty)
	return args.Error(0)
}

func (m *MockStockRepo) ReleaseRentalHold(ctx context.Context, variantID, qty int32) error {
	args := m.Called(ctx, variantID, qty)
	return args.Error(0)
}

func (m *MockStockRepo) AddStock(ctx context.Context, variantID, qty int32) error {
	args := m.Called(ctx, variantID, qty)
	return args.Error(0)
}

func (m *MockStockRepo) DecrementForSale(ctx context.Context, variantID, qty int32) error {
	args := m.Called(ctx, variantID, qty)
	return args.Error(0)
}

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) RentalBooked(ctx context.Context, rental *domain.Rental) {
	m.Called(ctx, rental)
}

func (m *MockEventPublisher) RentalExtended(ctx context.Context, rental *domain.Rental) {
	m.Called(ctx, rental)
}

func (m *MockEventPublisher) RentalReturned(ctx context.Context, rental *domain.Rental) {
	m.Called(ctx, rental)
}

func (m *MockEventPublisher) OrderPlaced(ctx context.Context, order *domain.Order) {
	m.Called(ctx, order)
}

func (m *MockEventPublisher) OrderCancelled(ctx context.Context, order *domain.Order) {
	m.Called(ctx, order)
}
