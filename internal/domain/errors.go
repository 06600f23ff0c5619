package domain

import "errors"

// ErrorKind classifies domain errors into the closed set the API boundary
// maps to transport codes. Services never string-match on messages.
type ErrorKind string

const (
	KindNotFound       ErrorKind = "NOT_FOUND"
	KindValidation     ErrorKind = "VALIDATION"
	KindConflict       ErrorKind = "CONFLICT"
	KindAccessDenied   ErrorKind = "ACCESS_DENIED"
	KindInvalidState   ErrorKind = "INVALID_STATE"
	KindPricingMissing ErrorKind = "PRICING_MISSING"
	KindCartEmpty      ErrorKind = "CART_EMPTY"
)

// Error is a tagged domain error. Sentinels below are compared with
// errors.Is; the kind is recovered with KindOf at the caller.
type Error struct {
	Kind    ErrorKind
	Code    string
	Message string
}

func (e *Error) Error() string { return e.Message }

func newError(kind ErrorKind, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

var (
	ErrProductNotFound     = newError(KindNotFound, "PRODUCT_NOT_FOUND", "product not found")
	ErrVariantNotFound     = newError(KindNotFound, "VARIANT_NOT_FOUND", "product variant not found")
	ErrRentalNotFound      = newError(KindNotFound, "RENTAL_NOT_FOUND", "rental not found")
	ErrOrderNotFound       = newError(KindNotFound, "ORDER_NOT_FOUND", "order not found")
	ErrProductNotRentable  = newError(KindValidation, "PRODUCT_NOT_RENTABLE", "product is not available for rent")
	ErrInvalidDateRange    = newError(KindValidation, "INVALID_DATE_RANGE", "rental end date must be after start date")
	ErrInvalidQuantity     = newError(KindValidation, "INVALID_QUANTITY", "quantity must be positive")
	ErrNotAvailable        = newError(KindConflict, "NOT_AVAILABLE", "product is not available for the requested dates")
	ErrOutOfStock          = newError(KindConflict, "OUT_OF_STOCK", "product variant is out of stock")
	ErrInsufficientStock   = newError(KindConflict, "INSUFFICIENT_STOCK", "insufficient stock for requested quantity")
	ErrProductUnavailable  = newError(KindConflict, "PRODUCT_UNAVAILABLE", "product is inactive or deleted")
	ErrVariantUnavailable  = newError(KindConflict, "VARIANT_UNAVAILABLE", "product variant is unavailable")
	ErrVersionConflict     = newError(KindConflict, "VERSION_CONFLICT", "rental was modified concurrently")
	ErrTxConflict          = newError(KindConflict, "TX_CONFLICT", "transaction conflicted with a concurrent booking")
	ErrAccessDenied        = newError(KindAccessDenied, "ACCESS_DENIED", "rental does not belong to this user")
	ErrAlreadyReturned     = newError(KindInvalidState, "ALREADY_RETURNED", "rental has already been returned")
	ErrInvalidRentalState  = newError(KindInvalidState, "INVALID_RENTAL_STATE", "operation not allowed in the rental's current state")
	ErrInvalidTransition   = newError(KindInvalidState, "INVALID_TRANSITION", "rental status transition not allowed")
	ErrOrderNotCancellable = newError(KindInvalidState, "ORDER_NOT_CANCELLABLE", "order can no longer be cancelled")
	ErrPricingMissing      = newError(KindPricingMissing, "PRICING_MISSING", "no pricing configured for product")
	ErrPriceMissing        = newError(KindPricingMissing, "PRICE_MISSING", "cart item has no price")
	ErrCartEmpty           = newError(KindCartEmpty, "CART_EMPTY", "cart is empty")
)

// KindOf extracts the ErrorKind from err, unwrapping as needed.
// Returns an empty kind for non-domain errors.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}
