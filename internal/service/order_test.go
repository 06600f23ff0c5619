package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"garmentloop-backend/internal/domain"
	"garmentloop-backend/internal/service"
)

func newOrderService(orderRepo *MockOrderRepo, cartRepo *MockCartRepo, events *MockEventPublisher) service.OrderService {
	return service.NewOrderService(orderRepo, cartRepo, events, service.OrderPolicy{TaxPercent: 18})
}

func price(cents int32) *int32 { return &cents }

func TestCreateOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		orderRepo := new(MockOrderRepo)
		cartRepo := new(MockCartRepo)
		events := new(MockEventPublisher)

		variantID := int32(3)
		cartRepo.On("ListLines", mock.Anything, int32(7)).Return([]domain.CartLine{
			{
				CartItemID:     1,
				ProductID:      1,
				ProductStatus:  domain.ProductStatusActive,
				VariantID:      &variantID,
				VariantFound:   true,
				StockQuantity:  10,
				Quantity:       2,
				UnitPriceCents: price(3000),
			},
			{
				CartItemID:     2,
				ProductID:      2,
				ProductStatus:  domain.ProductStatusActive,
				Quantity:       1,
				UnitPriceCents: price(4000),
			},
		}, nil)
		orderRepo.On("CreateWithItems", mock.Anything, mock.AnythingOfType("*domain.Order"), mock.AnythingOfType("[]domain.OrderItem")).
			Run(func(args mock.Arguments) {
				args.Get(1).(*domain.Order).ID = 10
			}).
			Return(nil)
		events.On("OrderPlaced", mock.Anything, mock.AnythingOfType("*domain.Order")).Return()

		svc := newOrderService(orderRepo, cartRepo, events)
		order, err := svc.CreateOrder(ctx, 7, "12 Main St", "12 Main St", "card", "")

		require.NoError(t, err)
		assert.Equal(t, int32(10), order.ID)
		assert.NotEmpty(t, order.OrderNumber)
		assert.Equal(t, domain.OrderTypeSale, order.Type)
		assert.Equal(t, domain.OrderStatusPending, order.Status)
		assert.Equal(t, int32(10000), order.SubtotalCents)
		assert.Equal(t, int32(1800), order.TaxCents)
		assert.Equal(t, int32(11800), order.TotalCents)
		orderRepo.AssertExpectations(t)
		events.AssertExpectations(t)
	})

	t.Run("EmptyCart", func(t *testing.T) {
		orderRepo := new(MockOrderRepo)
		cartRepo := new(MockCartRepo)
		events := new(MockEventPublisher)

		cartRepo.On("ListLines", mock.Anything, int32(7)).Return([]domain.CartLine{}, nil)

		svc := newOrderService(orderRepo, cartRepo, events)
		_, err := svc.CreateOrder(ctx, 7, "", "", "", "")

		assert.ErrorIs(t, err, domain.ErrCartEmpty)
		orderRepo.AssertNotCalled(t, "CreateWithItems", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("InactiveProduct", func(t *testing.T) {
		orderRepo := new(MockOrderRepo)
		cartRepo := new(MockCartRepo)
		events := new(MockEventPublisher)

		cartRepo.On("ListLines", mock.Anything, int32(7)).Return([]domain.CartLine{
			{ProductID: 1, ProductStatus: domain.ProductStatusInactive, Quantity: 1, UnitPriceCents: price(3000)},
		}, nil)

		svc := newOrderService(orderRepo, cartRepo, events)
		_, err := svc.CreateOrder(ctx, 7, "", "", "", "")

		assert.ErrorIs(t, err, domain.ErrProductUnavailable)
	})

	t.Run("PriceMissing", func(t *testing.T) {
		orderRepo := new(MockOrderRepo)
		cartRepo := new(MockCartRepo)
		events := new(MockEventPublisher)

		cartRepo.On("ListLines", mock.Anything, int32(7)).Return([]domain.CartLine{
			{ProductID: 1, ProductStatus: domain.ProductStatusActive, Quantity: 1},
		}, nil)

		svc := newOrderService(orderRepo, cartRepo, events)
		_, err := svc.CreateOrder(ctx, 7, "", "", "", "")

		assert.ErrorIs(t, err, domain.ErrPriceMissing)
	})

	t.Run("MissingVariant", func(t *testing.T) {
		orderRepo := new(MockOrderRepo)
		cartRepo := new(MockCartRepo)
		events := new(MockEventPublisher)

		variantID := int32(99)
		cartRepo.On("ListLines", mock.Anything, int32(7)).Return([]domain.CartLine{
			{
				ProductID:      1,
				ProductStatus:  domain.ProductStatusActive,
				VariantID:      &variantID,
				VariantFound:   false,
				Quantity:       1,
				UnitPriceCents: price(3000),
			},
		}, nil)

		svc := newOrderService(orderRepo, cartRepo, events)
		_, err := svc.CreateOrder(ctx, 7, "", "", "", "")

		assert.ErrorIs(t, err, domain.ErrVariantUnavailable)
	})

	t.Run("InsufficientStock", func(t *testing.T) {
		orderRepo := new(MockOrderRepo)
		cartRepo := new(MockCartRepo)
		events := new(MockEventPublisher)

		variantID := int32(3)
		cartRepo.On("ListLines", mock.Anything, int32(7)).Return([]domain.CartLine{
			{
				ProductID:      1,
				ProductStatus:  domain.ProductStatusActive,
				VariantID:      &variantID,
				VariantFound:   true,
				StockQuantity:  1,
				Quantity:       3,
				UnitPriceCents: price(3000),
			},
		}, nil)

		svc := newOrderService(orderRepo, cartRepo, events)
		_, err := svc.CreateOrder(ctx, 7, "", "", "", "")

		assert.ErrorIs(t, err, domain.ErrInsufficientStock)
		orderRepo.AssertNotCalled(t, "CreateWithItems", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("StockGuardFailsInTransaction", func(t *testing.T) {
		orderRepo := new(MockOrderRepo)
		cartRepo := new(MockCartRepo)
		events := new(MockEventPublisher)

		variantID := int32(3)
		cartRepo.On("ListLines", mock.Anything, int32(7)).Return([]domain.CartLine{
			{
				ProductID:      1,
				ProductStatus:  domain.ProductStatusActive,
				VariantID:      &variantID,
				VariantFound:   true,
				StockQuantity:  5,
				Quantity:       2,
				UnitPriceCents: price(3000),
			},
		}, nil)
		orderRepo.On("CreateWithItems", mock.Anything, mock.Anything, mock.Anything).
			Return(domain.ErrInsufficientStock)

		svc := newOrderService(orderRepo, cartRepo, events)
		_, err := svc.CreateOrder(ctx, 7, "", "", "", "")

		assert.ErrorIs(t, err, domain.ErrInsufficientStock)
		events.AssertNotCalled(t, "OrderPlaced", mock.Anything, mock.Anything)
	})
}

func TestGetOrder(t *testing.T) {
	ctx := context.Background()

	orderRepo := new(MockOrderRepo)
	order := &domain.Order{ID: 10, UserID: 7}
	orderRepo.On("GetByID", mock.Anything, int32(10)).Return(order, nil)
	orderRepo.On("GetItems", mock.Anything, int32(10)).Return([]domain.OrderItem{{OrderID: 10, ProductID: 1, Quantity: 2}}, nil)

	svc := newOrderService(orderRepo, new(MockCartRepo), new(MockEventPublisher))

	got, items, err := svc.GetOrder(ctx, 7, 10)
	require.NoError(t, err)
	assert.Equal(t, order, got)
	assert.Len(t, items, 1)

	_, _, err = svc.GetOrder(ctx, 8, 10)
	assert.ErrorIs(t, err, domain.ErrAccessDenied)
}

func TestCancelOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		orderRepo := new(MockOrderRepo)
		events := new(MockEventPublisher)

		order := &domain.Order{ID: 10, UserID: 7, Status: domain.OrderStatusPending}
		orderRepo.On("GetByID", mock.Anything, int32(10)).Return(order, nil)
		orderRepo.On("Cancel", mock.Anything, order).Return(nil)
		events.On("OrderCancelled", mock.Anything, order).Return()

		svc := newOrderService(orderRepo, new(MockCartRepo), events)
		_, err := svc.CancelOrder(ctx, 7, 10)

		require.NoError(t, err)
		events.AssertExpectations(t)
	})

	t.Run("NotCancellable", func(t *testing.T) {
		orderRepo := new(MockOrderRepo)
		events := new(MockEventPublisher)

		order := &domain.Order{ID: 10, UserID: 7, Status: domain.OrderStatusShipped}
		orderRepo.On("GetByID", mock.Anything, int32(10)).Return(order, nil)
		orderRepo.On("Cancel", mock.Anything, order).Return(domain.ErrOrderNotCancellable)

		svc := newOrderService(orderRepo, new(MockCartRepo), events)
		_, err := svc.CancelOrder(ctx, 7, 10)

		assert.ErrorIs(t, err, domain.ErrOrderNotCancellable)
		events.AssertNotCalled(t, "OrderCancelled", mock.Anything, mock.Anything)
	})

	t.Run("NotOwner", func(t *testing.T) {
		orderRepo := new(MockOrderRepo)

		order := &domain.Order{ID: 10, UserID: 7}
		orderRepo.On("GetByID", mock.Anything, int32(10)).Return(order, nil)

		svc := newOrderService(orderRepo, new(MockCartRepo), new(MockEventPublisher))
		_, err := svc.CancelOrder(ctx, 8, 10)

		assert.ErrorIs(t, err, domain.ErrAccessDenied)
		orderRepo.AssertNotCalled(t, "Cancel", mock.Anything, mock.Anything)
	})
}

func TestInventoryService(t *testing.T) {
	ctx := context.Background()

	t.Run("RejectsNonPositiveQuantity", func(t *testing.T) {
		svc := service.NewInventoryService(new(MockStockRepo), new(MockProductRepo))
		assert.ErrorIs(t, svc.AddStock(ctx, 3, 0), domain.ErrInvalidQuantity)
		assert.ErrorIs(t, svc.ReserveForRental(ctx, 3, -1), domain.ErrInvalidQuantity)
		assert.ErrorIs(t, svc.ReleaseRentalHold(ctx, 3, 0), domain.ErrInvalidQuantity)
	})

	t.Run("DelegatesToStockRepo", func(t *testing.T) {
		stockRepo := new(MockStockRepo)
		stockRepo.On("ReserveForRental", mock.Anything, int32(3), int32(2)).Return(nil)
		stockRepo.On("ReleaseRentalHold", mock.Anything, int32(3), int32(2)).Return(nil)

		svc := service.NewInventoryService(stockRepo, new(MockProductRepo))
		require.NoError(t, svc.ReserveForRental(ctx, 3, 2))
		require.NoError(t, svc.ReleaseRentalHold(ctx, 3, 2))
		stockRepo.AssertExpectations(t)
	})
}
