package kafka

import "time"

// OrderPlacedEvent is emitted after an order commits in PENDING state
type OrderPlacedEvent struct {
	EventID     string    `json:"event_id"`
	EventType   string    `json:"event_type"`
	OrderID     uint      `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	RetailerID  uint      `json:"retailer_id"`
	SupplierID  uint      `json:"supplier_id"`
	ItemCount   int       `json:"item_count"`
	TotalAmount string    `json:"total_amount"`
	Timestamp   time.Time `json:"timestamp"`
}

// OrderCancelledEvent is emitted after a cancellation commits
type OrderCancelledEvent struct {
	EventID     string    `json:"event_id"`
	EventType   string    `json:"event_type"`
	OrderID     uint      `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	RetailerID  uint      `json:"retailer_id"`
	Timestamp   time.Time `json:"timestamp"`
}

// LowStockEvent is emitted when a reservation leaves a ledger row at or
// below its reorder level
type LowStockEvent struct {
	EventID           string    `json:"event_id"`
	EventType         string    `json:"event_type"`
	SupplierID        uint      `json:"supplier_id"`
	VariantID         uint      `json:"variant_id"`
	AvailableQuantity int       `json:"available_quantity"`
	ReorderLevel      int       `json:"reorder_level"`
	Status            string    `json:"status"`
	Timestamp         time.Time `json:"timestamp"`
}

// Event types
const (
	EventTypeOrderPlaced    = "order.placed"
	EventTypeOrderCancelled = "order.cancelled"
	EventTypeLowStock       = "inventory.low_stock"
)

// Kafka topics
const (
	TopicOrderPlaced    = "order-placed"
	TopicOrderCancelled = "order-cancelled"
	TopicLowStock       = "inventory-low-stock"
)
