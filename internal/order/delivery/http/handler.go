package http

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/tradehub/b2b-marketplace/internal/order/domain"
	"github.com/tradehub/b2b-marketplace/internal/order/usecase/command"
	"github.com/tradehub/b2b-marketplace/internal/order/usecase/query"
	"github.com/tradehub/b2b-marketplace/pkg/logger"
)

// OrderHandler handles HTTP requests for orders
type OrderHandler struct {
	place      *command.PlaceOrderHandler
	cancel     *command.CancelOrderHandler
	transition *command.TransitionOrderHandler
	getOrder   *query.GetOrderHandler
	listOrders *query.ListOrdersHandler
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(
	place *command.PlaceOrderHandler,
	cancel *command.CancelOrderHandler,
	transition *command.TransitionOrderHandler,
	getOrder *query.GetOrderHandler,
	listOrders *query.ListOrdersHandler,
) *OrderHandler {
	return &OrderHandler{
		place:      place,
		cancel:     cancel,
		transition: transition,
		getOrder:   getOrder,
		listOrders: listOrders,
	}
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Code    string      `json:"code,omitempty"`
}

type placeOrderRequest struct {
	OrderNumber     string                  `json:"order_number"`
	RetailerID      uint                    `json:"retailer_id"`
	SupplierID      uint                    `json:"supplier_id"`
	ShippingAddress string                  `json:"shipping_address"`
	Notes           string                  `json:"notes"`
	OrderDate       *time.Time              `json:"order_date"`
	Items           []placeOrderItemRequest `json:"items"`
}

type placeOrderItemRequest struct {
	VariantID      uint            `json:"variant_id"`
	Quantity       int             `json:"quantity"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	ProductName    string          `json:"product_name"`
	Specifications string          `json:"specifications"`
	Notes          string          `json:"notes"`
}

// PlaceOrder handles POST /api/orders
func (h *OrderHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req placeOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	cmd := command.PlaceOrderCommand{
		OrderNumber:     req.OrderNumber,
		RetailerID:      req.RetailerID,
		SupplierID:      req.SupplierID,
		ShippingAddress: req.ShippingAddress,
		Notes:           req.Notes,
		OrderDate:       req.OrderDate,
	}
	for _, item := range req.Items {
		cmd.Items = append(cmd.Items, command.PlaceOrderItem{
			VariantID:      item.VariantID,
			Quantity:       item.Quantity,
			UnitPrice:      item.UnitPrice,
			ProductName:    item.ProductName,
			Specifications: item.Specifications,
			Notes:          item.Notes,
		})
	}

	result := h.place.Handle(r.Context(), cmd)
	if !result.Success {
		respondJSON(w, statusForCode(result.ErrorCode), Response{
			Success: false,
			Error:   result.Message,
			Code:    result.ErrorCode,
		})
		return
	}

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Order placed successfully",
		Data:    result.Order,
	})
}

// CancelOrder handles POST /api/orders/{id}/cancel
func (h *OrderHandler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	result := h.cancel.Handle(r.Context(), command.CancelOrderCommand{OrderID: id})
	if !result.Success {
		respondJSON(w, statusForCode(result.ErrorCode), Response{
			Success: false,
			Error:   result.Message,
			Code:    result.ErrorCode,
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Order cancelled successfully",
	})
}

// TransitionOrder handles POST /api/orders/{id}/{confirm|process|ship|deliver}
func (h *OrderHandler) TransitionOrder(action command.TransitionAction) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		result := h.transition.Handle(r.Context(), command.TransitionOrderCommand{OrderID: id, Action: action})
		if !result.Success {
			respondJSON(w, statusForCode(result.ErrorCode), Response{
				Success: false,
				Error:   result.Message,
				Code:    result.ErrorCode,
			})
			return
		}

		respondJSON(w, http.StatusOK, Response{
			Success: true,
			Message: "Order updated successfully",
			Data:    result.Order,
		})
	}
}

// GetOrder handles GET /api/orders/{id}
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	order, err := h.getOrder.Handle(r.Context(), query.GetOrderQuery{OrderID: id})
	if err != nil {
		respondJSON(w, http.StatusNotFound, Response{
			Success: false,
			Error:   "Order not found",
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    order,
	})
}

// GetOrderByNumber handles GET /api/orders/number/{order_number}
func (h *OrderHandler) GetOrderByNumber(w http.ResponseWriter, r *http.Request) {
	orderNumber := mux.Vars(r)["order_number"]

	order, err := h.getOrder.Handle(r.Context(), query.GetOrderQuery{OrderNumber: orderNumber})
	if err != nil {
		respondJSON(w, http.StatusNotFound, Response{
			Success: false,
			Error:   "Order not found",
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    order,
	})
}

// ListOrders handles GET /api/orders
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	retailerID, _ := strconv.ParseUint(r.URL.Query().Get("retailer_id"), 10, 32)

	orders, err := h.listOrders.Handle(r.Context(), query.ListOrdersQuery{
		RetailerID: uint(retailerID),
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to list orders")
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to list orders",
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    orders,
	})
}

// RegisterRoutes registers all order routes. Reads are public, placement
// and cancellation need any partner token, fulfillment transitions need a
// supplier token.
func (h *OrderHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/orders", h.ListOrders).Methods("GET")
	router.HandleFunc("/api/orders/number/{order_number}", h.GetOrderByNumber).Methods("GET")
	router.HandleFunc("/api/orders/{id}", h.GetOrder).Methods("GET")

	router.HandleFunc("/api/orders", AuthMiddleware(h.PlaceOrder)).Methods("POST")
	router.HandleFunc("/api/orders/{id}/cancel", AuthMiddleware(h.CancelOrder)).Methods("POST")

	router.HandleFunc("/api/orders/{id}/confirm", SupplierMiddleware(h.TransitionOrder(command.ActionConfirm))).Methods("POST")
	router.HandleFunc("/api/orders/{id}/process", SupplierMiddleware(h.TransitionOrder(command.ActionProcess))).Methods("POST")
	router.HandleFunc("/api/orders/{id}/ship", SupplierMiddleware(h.TransitionOrder(command.ActionShip))).Methods("POST")
	router.HandleFunc("/api/orders/{id}/deliver", SupplierMiddleware(h.TransitionOrder(command.ActionDeliver))).Methods("POST")
}

// RegisterHealthCheck registers health check endpoint
func (h *OrderHandler) RegisterHealthCheck(router *mux.Router, db *sql.DB) {
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := db.Ping(); err != nil {
			respondJSON(w, http.StatusServiceUnavailable, Response{
				Success: false,
				Error:   "Database unavailable",
			})
			return
		}

		respondJSON(w, http.StatusOK, Response{
			Success: true,
			Message: "Marketplace service is healthy",
		})
	}).Methods("GET")
}

func pathID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid order ID",
		})
		return 0, false
	}
	return uint(id), true
}

// statusForCode maps use case error codes onto HTTP statuses
func statusForCode(code string) int {
	switch code {
	case domain.ErrCodeInvalidQuantity,
		domain.ErrCodeInvalidPrice,
		domain.ErrCodeEmptyOrder,
		domain.ErrCodeInvalidProductID,
		domain.ErrCodeBelowMinOrderQuantity:
		return http.StatusBadRequest
	case domain.ErrCodeRetailerNotFound,
		domain.ErrCodeSupplierNotFound,
		domain.ErrCodeVariantNotFound,
		domain.ErrCodeOrderNotFound,
		domain.ErrCodeVariantNotStocked:
		return http.StatusNotFound
	case domain.ErrCodeOrderNumberConflict,
		domain.ErrCodeInsufficientStock,
		domain.ErrCodeNotAvailable:
		return http.StatusConflict
	case domain.ErrCodeCannotCancel,
		domain.ErrCodeInvalidTransition:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
