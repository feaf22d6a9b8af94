package command

import (
	"context"

	"github.com/tradehub/b2b-marketplace/kafka"
)

// EventPublisher is the outbound port for post-commit domain events.
// Publishing happens after the transaction commits and never fails the
// business operation; a nil publisher disables events entirely.
type EventPublisher interface {
	PublishOrderPlaced(ctx context.Context, event kafka.OrderPlacedEvent) error
	PublishOrderCancelled(ctx context.Context, event kafka.OrderCancelledEvent) error
	PublishLowStock(ctx context.Context, event kafka.LowStockEvent) error
}
