package domain

// Error codes reported by the order use cases. The boundary layer maps
// them onto client-facing responses; the codes themselves are stable.
const (
	// Validation: malformed input, rejected before any mutation
	ErrCodeInvalidQuantity  = "InvalidQuantity"
	ErrCodeInvalidPrice     = "InvalidPrice"
	ErrCodeEmptyOrder       = "EmptyOrder"
	ErrCodeInvalidProductID = "InvalidProductId"

	// Not-found: a referenced entity does not resolve
	ErrCodeRetailerNotFound = "RetailerNotFound"
	ErrCodeSupplierNotFound = "SupplierNotFound"
	ErrCodeVariantNotFound  = "VariantNotFound"
	ErrCodeOrderNotFound    = "OrderNotFound"

	// Conflict: uniqueness or prerequisite-state violation
	ErrCodeOrderNumberConflict = "OrderNumberConflict"
	ErrCodeVariantNotStocked   = "VariantNotStocked"

	// Capacity: business-rule rejection by the inventory ledger
	ErrCodeInsufficientStock     = "InsufficientStock"
	ErrCodeNotAvailable          = "NotAvailable"
	ErrCodeBelowMinOrderQuantity = "BelowMinOrderQuantity"

	// State: illegal lifecycle transition
	ErrCodeCannotCancel      = "CannotCancel"
	ErrCodeInvalidTransition = "InvalidTransition"

	// Anything unexpected; the details stay in the logs
	ErrCodeInternal = "InternalError"
)
