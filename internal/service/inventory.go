package service

import (
	"context"

	"garmentloop-backend/internal/domain"
	"garmentloop-backend/internal/repository"
)

type inventoryService struct {
	stockRepo   repository.StockRepository
	productRepo repository.ProductRepository
}

func NewInventoryService(stockRepo repository.StockRepository, productRepo repository.ProductRepository) InventoryService {
	return &inventoryService{stockRepo: stockRepo, productRepo: productRepo}
}

func (s *inventoryService) GetVariant(ctx context.Context, variantID int32) (*domain.ProductVariant, error) {
	return s.productRepo.GetVariantByID(ctx, variantID)
}

func (s *inventoryService) AddStock(ctx context.Context, variantID, qty int32) error {
	if qty < 1 {
		return domain.ErrInvalidQuantity
	}
	return s.stockRepo.AddStock(ctx, variantID, qty)
}

func (s *inventoryService) ReserveForRental(ctx context.Context, variantID, qty int32) error {
	if qty < 1 {
		return domain.ErrInvalidQuantity
	}
	return s.stockRepo.ReserveForRental(ctx, variantID, qty)
}

func (s *inventoryService) ReleaseRentalHold(ctx context.Context, variantID, qty int32) error {
	if qty < 1 {
		return domain.ErrInvalidQuantity
	}
	return s.stockRepo.ReleaseRentalHold(ctx, variantID, qty)
}
