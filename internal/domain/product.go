package domain

import "time"

type ProductStatus string

const (
	ProductStatusActive   ProductStatus = "ACTIVE"
	ProductStatusInactive ProductStatus = "INACTIVE"
)

type Product struct {
	ID          int32         `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Category    string        `json:"category"`
	IsRentable  bool          `json:"is_rentable"`
	IsSellable  bool          `json:"is_sellable"`
	Status      ProductStatus `json:"status"`
	CreatedOn   time.Time     `json:"created_on"`
	DeletedOn   *time.Time    `json:"deleted_on,omitempty"`
}

// ProductVariant is the inventory unit: one size/color combination owning
// the two stock counters. Invariant: 0 <= StockAllocated <= StockQuantity.
type ProductVariant struct {
	ID             int32  `json:"id"`
	ProductID      int32  `json:"product_id"`
	SKU            string `json:"sku"`
	Size           string `json:"size"`
	Color          string `json:"color"`
	StockQuantity  int32  `json:"stock_quantity"`
	StockAllocated int32  `json:"stock_allocated"`
}

// Available returns units neither sold nor held against pending rentals.
func (v *ProductVariant) Available() int32 {
	return v.StockQuantity - v.StockAllocated
}

// PricingSnapshot is the catalog pricing read model. Its values are copied
// onto a Rental at booking time so later catalog changes never affect an
// existing booking.
type PricingSnapshot struct {
	ID                   int32     `json:"id"`
	ProductID            int32     `json:"product_id"`
	DailyRateCents       int32     `json:"daily_rate_cents"`
	SecurityDepositCents int32     `json:"security_deposit_cents"`
	SalePriceCents       int32     `json:"sale_price_cents"`
	EffectiveFrom        time.Time `json:"effective_from"`
}
