package command

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	catalogdomain "github.com/tradehub/b2b-marketplace/internal/catalog/domain"
	"github.com/tradehub/b2b-marketplace/internal/catalog/pricing"
	inventorydomain "github.com/tradehub/b2b-marketplace/internal/inventory/domain"
	"github.com/tradehub/b2b-marketplace/internal/metrics"
	"github.com/tradehub/b2b-marketplace/internal/order/domain"
	partnerdomain "github.com/tradehub/b2b-marketplace/internal/partner/domain"
	"github.com/tradehub/b2b-marketplace/kafka"
	"github.com/tradehub/b2b-marketplace/pkg/database"
	"github.com/tradehub/b2b-marketplace/pkg/logger"
)

// PlaceOrderItem is one requested order line
type PlaceOrderItem struct {
	VariantID      uint
	Quantity       int
	UnitPrice      decimal.Decimal // buyer-expected price, validated non-negative
	ProductName    string
	Specifications string
	Notes          string
}

// PlaceOrderCommand represents the command to place an order
type PlaceOrderCommand struct {
	OrderNumber     string
	RetailerID      uint
	SupplierID      uint
	ShippingAddress string
	Notes           string
	OrderDate       *time.Time
	Items           []PlaceOrderItem
}

// PlaceOrderResult is the structured outcome of a placement attempt.
// Expected business failures are reported through ErrorCode, never panics.
type PlaceOrderResult struct {
	Success   bool          `json:"success"`
	Order     *domain.Order `json:"order,omitempty"`
	ErrorCode string        `json:"error_code,omitempty"`
	Message   string        `json:"message,omitempty"`
}

func placeFailure(code, message string) PlaceOrderResult {
	metrics.OrderFailures.WithLabelValues(code).Inc()
	return PlaceOrderResult{Success: false, ErrorCode: code, Message: message}
}

// PlaceOrderHandler coordinates catalog lookup, pricing, inventory
// reservation and order persistence as one transaction
type PlaceOrderHandler struct {
	orders     domain.OrderRepository
	retailers  partnerdomain.RetailerRepository
	suppliers  partnerdomain.SupplierRepository
	products   catalogdomain.ProductRepository
	variants   catalogdomain.VariantRepository
	inventory  inventorydomain.InventoryRepository
	transactor database.Transactor
	events     EventPublisher
}

// NewPlaceOrderHandler creates a new place order handler
func NewPlaceOrderHandler(
	orders domain.OrderRepository,
	retailers partnerdomain.RetailerRepository,
	suppliers partnerdomain.SupplierRepository,
	products catalogdomain.ProductRepository,
	variants catalogdomain.VariantRepository,
	inventory inventorydomain.InventoryRepository,
	transactor database.Transactor,
	events EventPublisher,
) *PlaceOrderHandler {
	return &PlaceOrderHandler{
		orders:     orders,
		retailers:  retailers,
		suppliers:  suppliers,
		products:   products,
		variants:   variants,
		inventory:  inventory,
		transactor: transactor,
		events:     events,
	}
}

// Handle executes the place order command.
//
// Validation that needs no transaction runs first; the per-item resolve,
// price, reserve sequence then runs inside a single transaction so a
// failure on any line rolls back every earlier line's reservation and no
// partial order ever becomes visible.
func (h *PlaceOrderHandler) Handle(ctx context.Context, cmd PlaceOrderCommand) PlaceOrderResult {
	start := time.Now()
	defer func() {
		metrics.PlacementDuration.Observe(time.Since(start).Seconds())
	}()

	if cmd.OrderNumber == "" {
		cmd.OrderNumber = generateOrderNumber()
	}

	if result, ok := h.validate(ctx, cmd); !ok {
		return result
	}

	var (
		order    *domain.Order
		lowStock []inventorydomain.Inventory
	)

	err := h.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		orderDate := time.Now()
		if cmd.OrderDate != nil {
			orderDate = *cmd.OrderDate
		}
		order = domain.NewOrder(cmd.OrderNumber, cmd.RetailerID, cmd.SupplierID, cmd.ShippingAddress, orderDate)
		order.Notes = cmd.Notes

		// Items are processed in caller order; the first failing line
		// aborts the whole transaction.
		for _, item := range cmd.Items {
			variant, err := h.variants.FindByID(ctx, item.VariantID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return &rejection{domain.ErrCodeVariantNotFound,
						fmt.Sprintf("variant %d does not exist", item.VariantID)}
				}
				return err
			}

			product, err := h.products.FindByID(ctx, variant.ProductID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return &rejection{domain.ErrCodeVariantNotFound,
						fmt.Sprintf("product %d for variant %d does not exist", variant.ProductID, variant.ID)}
				}
				return err
			}

			if item.Quantity < product.MinOrderQuantity {
				return &rejection{domain.ErrCodeBelowMinOrderQuantity,
					fmt.Sprintf("variant %d requires a minimum order of %d, got %d",
						variant.ID, product.MinOrderQuantity, item.Quantity)}
			}

			inventory, err := h.lockInventory(ctx, cmd.SupplierID, variant)
			if err != nil {
				return err
			}

			quote, err := pricing.PriceLine(product.BasePrice, variant.PriceAdjustment, item.Quantity, product.PriceTiers)
			if err != nil {
				if errors.Is(err, pricing.ErrNegativeUnitPrice) {
					return &rejection{domain.ErrCodeInvalidPrice,
						fmt.Sprintf("variant %d prices below zero", variant.ID)}
				}
				return err
			}

			if err := inventory.Reserve(item.Quantity); err != nil {
				return reservationRejection(err)
			}
			if err := h.inventory.Save(ctx, inventory); err != nil {
				return err
			}
			metrics.Reservations.Inc()

			if inventory.Status == inventorydomain.StatusLowStock || inventory.Status == inventorydomain.StatusOutOfStock {
				lowStock = append(lowStock, *inventory)
			}

			productName := item.ProductName
			if productName == "" {
				productName = product.Name
			}

			order.AddItem(domain.OrderItem{
				ProductID:      product.ID,
				VariantID:      variant.ID,
				Quantity:       item.Quantity,
				UnitPrice:      quote.UnitPrice,
				LineTotal:      quote.LineTotal,
				ProductName:    productName,
				Specifications: item.Specifications,
				Notes:          item.Notes,
			})
		}

		if err := h.orders.Create(ctx, order); err != nil {
			// The pre-transaction uniqueness check races with concurrent
			// placements; the unique index on order_number is the arbiter,
			// so the loser gets a conflict rather than an internal error.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return &rejection{domain.ErrCodeOrderNumberConflict,
					fmt.Sprintf("order number %s already exists", cmd.OrderNumber)}
			}
			return err
		}
		return nil
	})
	if err != nil {
		var reject *rejection
		if errors.As(err, &reject) {
			return placeFailure(reject.code, reject.message)
		}
		logger.Error(ctx).Err(err).
			Str("order_number", cmd.OrderNumber).
			Msg("Order placement failed unexpectedly")
		return placeFailure(domain.ErrCodeInternal, "order placement failed")
	}

	metrics.OrdersPlaced.Inc()
	h.publishPlaced(ctx, order, lowStock)

	logger.Info(ctx).
		Str("order_number", order.OrderNumber).
		Uint("retailer_id", order.RetailerID).
		Uint("supplier_id", order.SupplierID).
		Int("items", len(order.Items)).
		Str("total", order.TotalAmount.String()).
		Msg("Order placed")

	return PlaceOrderResult{Success: true, Order: order}
}

// validate covers everything that must be rejected before any mutation;
// no transaction is opened for these checks
func (h *PlaceOrderHandler) validate(ctx context.Context, cmd PlaceOrderCommand) (PlaceOrderResult, bool) {
	if len(cmd.Items) == 0 {
		return placeFailure(domain.ErrCodeEmptyOrder, "order has no items"), false
	}

	for i, item := range cmd.Items {
		if item.VariantID == 0 {
			return placeFailure(domain.ErrCodeInvalidProductID,
				fmt.Sprintf("item %d: variant id is required", i)), false
		}
		if item.Quantity <= 0 {
			return placeFailure(domain.ErrCodeInvalidQuantity,
				fmt.Sprintf("item %d: quantity must be positive", i)), false
		}
		if item.UnitPrice.IsNegative() {
			return placeFailure(domain.ErrCodeInvalidPrice,
				fmt.Sprintf("item %d: unit price cannot be negative", i)), false
		}
	}

	exists, err := h.orders.ExistsByOrderNumber(ctx, cmd.OrderNumber)
	if err != nil {
		logger.Error(ctx).Err(err).Msg("Order number lookup failed")
		return placeFailure(domain.ErrCodeInternal, "order placement failed"), false
	}
	if exists {
		return placeFailure(domain.ErrCodeOrderNumberConflict,
			fmt.Sprintf("order number %s already exists", cmd.OrderNumber)), false
	}

	if ok, err := h.retailers.ExistsByID(ctx, cmd.RetailerID); err != nil {
		logger.Error(ctx).Err(err).Msg("Retailer lookup failed")
		return placeFailure(domain.ErrCodeInternal, "order placement failed"), false
	} else if !ok {
		return placeFailure(domain.ErrCodeRetailerNotFound,
			fmt.Sprintf("retailer %d does not exist", cmd.RetailerID)), false
	}

	if ok, err := h.suppliers.ExistsByID(ctx, cmd.SupplierID); err != nil {
		logger.Error(ctx).Err(err).Msg("Supplier lookup failed")
		return placeFailure(domain.ErrCodeInternal, "order placement failed"), false
	} else if !ok {
		return placeFailure(domain.ErrCodeSupplierNotFound,
			fmt.Sprintf("supplier %d does not exist", cmd.SupplierID)), false
	}

	return PlaceOrderResult{}, true
}

// lockInventory resolves the ledger row for a line under a row lock:
// variant-level first, then the supplier+product fallback for suppliers
// stocking at product granularity
func (h *PlaceOrderHandler) lockInventory(ctx context.Context, supplierID uint, variant *catalogdomain.ProductVariant) (*inventorydomain.Inventory, error) {
	inventory, err := h.inventory.FindByVariantIDForUpdate(ctx, variant.ID)
	if err == nil {
		return inventory, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	inventory, err = h.inventory.FindBySupplierAndProductForUpdate(ctx, supplierID, variant.ProductID)
	if err == nil {
		return inventory, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &rejection{domain.ErrCodeVariantNotStocked,
			fmt.Sprintf("supplier %d does not stock variant %d", supplierID, variant.ID)}
	}
	return nil, err
}

func (h *PlaceOrderHandler) publishPlaced(ctx context.Context, order *domain.Order, lowStock []inventorydomain.Inventory) {
	if h.events == nil {
		return
	}

	if err := h.events.PublishOrderPlaced(ctx, kafka.OrderPlacedEvent{
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		RetailerID:  order.RetailerID,
		SupplierID:  order.SupplierID,
		ItemCount:   len(order.Items),
		TotalAmount: order.TotalAmount.String(),
	}); err != nil {
		logger.Warn(ctx).Err(err).Str("order_number", order.OrderNumber).Msg("Failed to publish order placed event")
	}

	for _, inv := range lowStock {
		if err := h.events.PublishLowStock(ctx, kafka.LowStockEvent{
			SupplierID:        inv.SupplierID,
			VariantID:         inv.VariantID,
			AvailableQuantity: inv.AvailableQuantity,
			ReorderLevel:      inv.ReorderLevel,
			Status:            string(inv.Status),
		}); err != nil {
			logger.Warn(ctx).Err(err).Uint("variant_id", inv.VariantID).Msg("Failed to publish low stock event")
		}
	}
}

// rejection is an expected business failure travelling through the
// transaction closure; it triggers a rollback and maps onto a result code
type rejection struct {
	code    string
	message string
}

func (r *rejection) Error() string {
	return r.message
}

func reservationRejection(err error) error {
	var insufficient *inventorydomain.InsufficientStockError
	switch {
	case errors.As(err, &insufficient):
		metrics.ReservationConflicts.Inc()
		return &rejection{domain.ErrCodeInsufficientStock, insufficient.Error()}
	case errors.Is(err, inventorydomain.ErrNotAvailable):
		return &rejection{domain.ErrCodeNotAvailable, "variant has been discontinued"}
	case errors.Is(err, inventorydomain.ErrInvalidQuantity):
		return &rejection{domain.ErrCodeInvalidQuantity, "quantity must be positive"}
	default:
		return err
	}
}

func generateOrderNumber() string {
	return "ORD-" + uuid.NewString()
}
