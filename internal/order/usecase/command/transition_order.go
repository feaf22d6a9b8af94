package command

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	inventorydomain "github.com/tradehub/b2b-marketplace/internal/inventory/domain"
	"github.com/tradehub/b2b-marketplace/internal/order/domain"
	"github.com/tradehub/b2b-marketplace/pkg/database"
	"github.com/tradehub/b2b-marketplace/pkg/logger"
)

// TransitionAction names a lifecycle step requested by an adjacent workflow
type TransitionAction string

const (
	ActionConfirm TransitionAction = "confirm"
	ActionProcess TransitionAction = "process"
	ActionShip    TransitionAction = "ship"
	ActionDeliver TransitionAction = "deliver"
)

// TransitionOrderCommand represents the command to advance an order's status
type TransitionOrderCommand struct {
	OrderID uint
	Action  TransitionAction
}

// TransitionOrderResult is the structured outcome of a transition attempt
type TransitionOrderResult struct {
	Success   bool          `json:"success"`
	Order     *domain.Order `json:"order,omitempty"`
	ErrorCode string        `json:"error_code,omitempty"`
	Message   string        `json:"message,omitempty"`
}

func transitionFailure(code, message string) TransitionOrderResult {
	return TransitionOrderResult{Success: false, ErrorCode: code, Message: message}
}

// TransitionOrderHandler advances an order along its lifecycle. Delivery
// additionally converts each line's reservation into a permanent stock
// deduction, in the same transaction as the status flip.
type TransitionOrderHandler struct {
	orders     domain.OrderRepository
	inventory  inventorydomain.InventoryRepository
	transactor database.Transactor
}

// NewTransitionOrderHandler creates a new transition order handler
func NewTransitionOrderHandler(
	orders domain.OrderRepository,
	inventory inventorydomain.InventoryRepository,
	transactor database.Transactor,
) *TransitionOrderHandler {
	return &TransitionOrderHandler{
		orders:     orders,
		inventory:  inventory,
		transactor: transactor,
	}
}

// Handle executes the transition order command
func (h *TransitionOrderHandler) Handle(ctx context.Context, cmd TransitionOrderCommand) TransitionOrderResult {
	if cmd.OrderID == 0 {
		return transitionFailure(domain.ErrCodeOrderNotFound, "order id is required")
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

		switch cmd.Action {
		case ActionConfirm:
			err = order.Confirm()
		case ActionProcess:
			err = order.MarkProcessing()
		case ActionShip:
			err = order.Ship()
		case ActionDeliver:
			err = order.Deliver()
		default:
			return &rejection{domain.ErrCodeInvalidTransition,
				fmt.Sprintf("unknown action %q", cmd.Action)}
		}
		if err != nil {
			var invalid *domain.InvalidTransitionError
			if errors.As(err, &invalid) {
				return &rejection{domain.ErrCodeInvalidTransition, invalid.Error()}
			}
			return err
		}

		if cmd.Action == ActionDeliver {
			if err := h.deductReservations(ctx, order); err != nil {
				return err
			}
		}

		return h.orders.Save(ctx, order)
	})
	if err != nil {
		var reject *rejection
		if errors.As(err, &reject) {
			return transitionFailure(reject.code, reject.message)
		}
		logger.Error(ctx).Err(err).
			Uint("order_id", cmd.OrderID).
			Str("action", string(cmd.Action)).
			Msg("Order transition failed unexpectedly")
		return transitionFailure(domain.ErrCodeInternal, "order transition failed")
	}

	logger.Info(ctx).
		Str("order_number", order.OrderNumber).
		Str("status", string(order.Status)).
		Msg("Order transitioned")

	return TransitionOrderResult{Success: true, Order: order}
}

// deductReservations turns the delivered order's reservations into
// permanent stock decreases
func (h *TransitionOrderHandler) deductReservations(ctx context.Context, order *domain.Order) error {
	for _, item := range order.Items {
		inventory, err := h.lockItemInventory(ctx, order.SupplierID, item)
		if err != nil {
			return err
		}
		if err := inventory.Deduct(item.Quantity); err != nil {
			return fmt.Errorf("deduct %d of variant %d: %w", item.Quantity, item.VariantID, err)
		}
		if err := h.inventory.Save(ctx, inventory); err != nil {
			return err
		}
	}
	return nil
}

func (h *TransitionOrderHandler) lockItemInventory(ctx context.Context, supplierID uint, item domain.OrderItem) (*inventorydomain.Inventory, error) {
	inventory, err := h.inventory.FindByVariantIDForUpdate(ctx, item.VariantID)
	if err == nil {
		return inventory, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	return h.inventory.FindBySupplierAndProductForUpdate(ctx, supplierID, item.ProductID)
}
