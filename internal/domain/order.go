package domain

import "time"

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
	OrderStatusShipped   OrderStatus = "SHIPPED"
	OrderStatusDelivered OrderStatus = "DELIVERED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

type OrderType string

const (
	OrderTypeSale   OrderType = "SALE"
	OrderTypeRental OrderType = "RENTAL"
)

// Order is the transactional envelope shared by the sale and rental paths.
// For rentals it is a 1:1 placeholder created alongside the Rental.
type Order struct {
	ID              int32       `json:"id"`
	OrderNumber     string      `json:"order_number"`
	UserID          int32       `json:"user_id"`
	Type            OrderType   `json:"type"`
	Status          OrderStatus `json:"status"`
	SubtotalCents   int32       `json:"subtotal_cents"`
	TaxCents        int32       `json:"tax_cents"`
	ShippingCents   int32       `json:"shipping_cents"`
	DiscountCents   int32       `json:"discount_cents"`
	TotalCents      int32       `json:"total_cents"`
	ShippingAddress string      `json:"shipping_address"`
	BillingAddress  string      `json:"billing_address"`
	PaymentMethod   string      `json:"payment_method"`
	Notes           string      `json:"notes"`
	CreatedOn       time.Time   `json:"created_on"`
	UpdatedOn       time.Time   `json:"updated_on"`
}

type OrderItem struct {
	ID             int32  `json:"id"`
	OrderID        int32  `json:"order_id"`
	ProductID      int32  `json:"product_id"`
	VariantID      *int32 `json:"variant_id,omitempty"`
	Quantity       int32  `json:"quantity"`
	UnitPriceCents int32  `json:"unit_price_cents"`
	LineTotalCents int32  `json:"line_total_cents"`
}

// CartLine is a cart row joined with its product, variant and current
// price, as loaded for order creation.
type CartLine struct {
	CartItemID     int32         `json:"cart_item_id"`
	ProductID      int32         `json:"product_id"`
	ProductName    string        `json:"product_name"`
	ProductStatus  ProductStatus `json:"product_status"`
	ProductDeleted bool          `json:"product_deleted"`
	VariantID      *int32        `json:"variant_id,omitempty"`
	VariantFound   bool          `json:"variant_found"`
	StockQuantity  int32         `json:"stock_quantity"`
	Quantity       int32         `json:"quantity"`
	// UnitPriceCents is nil when the product has no current price row.
	UnitPriceCents *int32 `json:"unit_price_cents,omitempty"`
}
