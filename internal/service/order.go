package service

import (
	"context"

	"github.com/google/uuid"

	"garmentloop-backend/internal/domain"
	"garmentloop-backend/internal/pricing"
	"garmentloop-backend/internal/repository"
)

// OrderPolicy carries the sale-path rules that used to live in catalog
// globals: the tax rate applied to every order.
type OrderPolicy struct {
	TaxPercent int32
}

type orderService struct {
	orderRepo repository.OrderRepository
	cartRepo  repository.CartRepository
	events    EventPublisher
	policy    OrderPolicy
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	cartRepo repository.CartRepository,
	events EventPublisher,
	policy OrderPolicy,
) OrderService {
	if policy.TaxPercent <= 0 {
		policy.TaxPercent = 18
	}
	return &orderService{
		orderRepo: orderRepo,
		cartRepo:  cartRepo,
		events:    events,
		policy:    policy,
	}
}

func (s *orderService) CreateOrder(ctx context.Context, userID int32, shippingAddress, billingAddress, paymentMethod, notes string) (*domain.Order, error) {
	lines, err := s.cartRepo.ListLines(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, domain.ErrCartEmpty
	}

	var subtotal int32
	items := make([]domain.OrderItem, 0, len(lines))
	for _, ln := range lines {
		if ln.ProductDeleted || ln.ProductStatus != domain.ProductStatusActive {
			return nil, domain.ErrProductUnavailable
		}
		if ln.UnitPriceCents == nil {
			return nil, domain.ErrPriceMissing
		}
		if ln.Quantity < 1 {
			return nil, domain.ErrInvalidQuantity
		}
		if ln.VariantID != nil {
			if !ln.VariantFound {
				return nil, domain.ErrVariantUnavailable
			}
			if ln.StockQuantity < ln.Quantity {
				return nil, domain.ErrInsufficientStock
			}
		}
		lineTotal := *ln.UnitPriceCents * ln.Quantity
		subtotal += lineTotal
		items = append(items, domain.OrderItem{
			ProductID:      ln.ProductID,
			VariantID:      ln.VariantID,
			Quantity:       ln.Quantity,
			UnitPriceCents: *ln.UnitPriceCents,
			LineTotalCents: lineTotal,
		})
	}

	tax, total := pricing.OrderTotals(subtotal, s.policy.TaxPercent)
	order := &domain.Order{
		OrderNumber:     uuid.NewString(),
		UserID:          userID,
		Type:            domain.OrderTypeSale,
		Status:          domain.OrderStatusPending,
		SubtotalCents:   subtotal,
		TaxCents:        tax,
		TotalCents:      total,
		ShippingAddress: shippingAddress,
		BillingAddress:  billingAddress,
		PaymentMethod:   paymentMethod,
		Notes:           notes,
	}

	// Order, items, stock decrement and cart clearing commit together;
	// a failed stock guard rolls everything back.
	if err := s.orderRepo.CreateWithItems(ctx, order, items); err != nil {
		return nil, err
	}

	s.events.OrderPlaced(ctx, order)
	return order, nil
}

func (s *orderService) GetOrder(ctx context.Context, userID, orderID int32) (*domain.Order, []domain.OrderItem, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}
	if order.UserID != userID {
		return nil, nil, domain.ErrAccessDenied
	}
	items, err := s.orderRepo.GetItems(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}
	return order, items, nil
}

func (s *orderService) ListUserOrders(ctx context.Context, userID int32, page, pageSize int32) ([]domain.Order, int32, error) {
	return s.orderRepo.ListByUser(ctx, userID, page, pageSize)
}

func (s *orderService) CancelOrder(ctx context.Context, userID, orderID int32) (*domain.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, domain.ErrAccessDenied
	}
	if err := s.orderRepo.Cancel(ctx, order); err != nil {
		return nil, err
	}
	s.events.OrderCancelled(ctx, order)
	return order, nil
}
