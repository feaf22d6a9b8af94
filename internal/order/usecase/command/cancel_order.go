package command

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	inventorydomain "github.com/tradehub/b2b-marketplace/internal/inventory/domain"
	"github.com/tradehub/b2b-marketplace/internal/metrics"
	"github.com/tradehub/b2b-marketplace/internal/order/domain"
	"github.com/tradehub/b2b-marketplace/kafka"
	"github.com/tradehub/b2b-marketplace/pkg/database"
	"github.com/tradehub/b2b-marketplace/pkg/logger"
)

// CancelOrderCommand represents the command to cancel an order
type CancelOrderCommand struct {
	OrderID uint
}

// CancelOrderResult is the structured outcome of a cancellation attempt
type CancelOrderResult struct {
	Success   bool   `json:"success"`
	OrderID   uint   `json:"order_id,omitempty"`
	ErrorCode string `json:"error_code,omitempty"`
	Message   string `json:"message,omitempty"`
}

func cancelFailure(code, message string) CancelOrderResult {
	return CancelOrderResult{Success: false, ErrorCode: code, Message: message}
}

// CancelOrderHandler cancels an order and releases its reservations
type CancelOrderHandler struct {
	orders     domain.OrderRepository
	inventory  inventorydomain.InventoryRepository
	transactor database.Transactor
	events     EventPublisher
}

// NewCancelOrderHandler creates a new cancel order handler
func NewCancelOrderHandler(
	orders domain.OrderRepository,
	inventory inventorydomain.InventoryRepository,
	transactor database.Transactor,
	events EventPublisher,
) *CancelOrderHandler {
	return &CancelOrderHandler{
		orders:     orders,
		inventory:  inventory,
		transactor: transactor,
		events:     events,
	}
}

// Handle executes the cancel order command. The status flip and every
// released reservation commit together; a failure on either side rolls
// back both.
func (h *CancelOrderHandler) Handle(ctx context.Context, cmd CancelOrderCommand) CancelOrderResult {
	if cmd.OrderID == 0 {
		return cancelFailure(domain.ErrCodeOrderNotFound, "order id is required")
	}

	var order *domain.Order
	err := h.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		order, err = h.orders.FindByID(ctx, cmd.OrderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &rejection{domain.ErrCodeOrderNotFound,
					fmt.Sprintf("order %d does not exist", cmd.OrderID)}
			}
			return err
		}

		if !order.CanCancel() {
			return &rejection{domain.ErrCodeCannotCancel,
				fmt.Sprintf("order %s in status %s cannot be cancelled", order.OrderNumber, order.Status)}
		}
		if err := order.Cancel(); err != nil {
			return err
		}

		// Give back the quantity reserved for each line at placement time
		for _, item := range order.Items {
			inventory, err := h.lockItemInventory(ctx, order.SupplierID, item)
			if err != nil {
				return err
			}
			if err := inventory.Release(item.Quantity); err != nil {
				return fmt.Errorf("release %d of variant %d: %w", item.Quantity, item.VariantID, err)
			}
			if err := h.inventory.Save(ctx, inventory); err != nil {
				return err
			}
		}

		return h.orders.Save(ctx, order)
	})
	if err != nil {
		var reject *rejection
		if errors.As(err, &reject) {
			return cancelFailure(reject.code, reject.message)
		}
		logger.Error(ctx).Err(err).Uint("order_id", cmd.OrderID).Msg("Order cancellation failed unexpectedly")
		return cancelFailure(domain.ErrCodeInternal, "order cancellation failed")
	}

	metrics.OrdersCancelled.Inc()

	if h.events != nil {
		if err := h.events.PublishOrderCancelled(ctx, kafka.OrderCancelledEvent{
			OrderID:     order.ID,
			OrderNumber: order.OrderNumber,
			RetailerID:  order.RetailerID,
		}); err != nil {
			logger.Warn(ctx).Err(err).Str("order_number", order.OrderNumber).Msg("Failed to publish order cancelled event")
		}
	}

	logger.Info(ctx).
		Str("order_number", order.OrderNumber).
		Int("items_released", len(order.Items)).
		Msg("Order cancelled")

	return CancelOrderResult{Success: true, OrderID: order.ID}
}

func (h *CancelOrderHandler) lockItemInventory(ctx context.Context, supplierID uint, item domain.OrderItem) (*inventorydomain.Inventory, error) {
	inventory, err := h.inventory.FindByVariantIDForUpdate(ctx, item.VariantID)
	if err == nil {
		return inventory, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	return h.inventory.FindBySupplierAndProductForUpdate(ctx, supplierID, item.ProductID)
}
