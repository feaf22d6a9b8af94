package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/tradehub/b2b-marketplace/internal/inventory/usecase/command"
	"github.com/tradehub/b2b-marketplace/internal/inventory/usecase/query"
	"github.com/tradehub/b2b-marketplace/pkg/logger"
)

// InventoryHandler handles HTTP requests for the stock ledger
type InventoryHandler struct {
	createStock   *command.CreateStockHandler
	restock       *command.RestockHandler
	discontinue   *command.DiscontinueHandler
	getInventory  *query.GetInventoryHandler
	listInventory *query.ListInventoryHandler
	lowStock      *query.LowStockReportHandler
}

// NewInventoryHandler creates a new inventory handler
func NewInventoryHandler(
	createStock *command.CreateStockHandler,
	restock *command.RestockHandler,
	discontinue *command.DiscontinueHandler,
	getInventory *query.GetInventoryHandler,
	listInventory *query.ListInventoryHandler,
	lowStock *query.LowStockReportHandler,
) *InventoryHandler {
	return &InventoryHandler{
		createStock:   createStock,
		restock:       restock,
		discontinue:   discontinue,
		getInventory:  getInventory,
		listInventory: listInventory,
		lowStock:      lowStock,
	}
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// CreateStock handles POST /api/inventory
func (h *InventoryHandler) CreateStock(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SupplierID      uint `json:"supplier_id"`
		ProductID       uint `json:"product_id"`
		VariantID       uint `json:"variant_id"`
		InitialQuantity int  `json:"initial_quantity"`
		ReorderLevel    int  `json:"reorder_level"`
		MaxStockLevel   int  `json:"max_stock_level"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	inventory, err := h.createStock.Handle(r.Context(), command.CreateStockCommand{
		SupplierID:      req.SupplierID,
		ProductID:       req.ProductID,
		VariantID:       req.VariantID,
		InitialQuantity: req.InitialQuantity,
		ReorderLevel:    req.ReorderLevel,
		MaxStockLevel:   req.MaxStockLevel,
	})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to create inventory")
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Inventory created successfully",
		Data:    inventory,
	})
}

// Restock handles PATCH /api/inventory/{variant_id}/restock
func (h *InventoryHandler) Restock(w http.ResponseWriter, r *http.Request) {
	variantID, ok := pathVariantID(w, r)
	if !ok {
		return
	}

	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	inventory, err := h.restock.Handle(r.Context(), command.RestockCommand{
		VariantID: variantID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		logger.Error(r.Context()).Err(err).Uint("variant_id", variantID).Msg("Failed to restock")
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Stock updated successfully",
		Data:    inventory,
	})
}

// Discontinue handles PATCH /api/inventory/{variant_id}/discontinue
func (h *InventoryHandler) Discontinue(w http.ResponseWriter, r *http.Request) {
	variantID, ok := pathVariantID(w, r)
	if !ok {
		return
	}

	var req struct {
		Reinstate bool `json:"reinstate"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	inventory, err := h.discontinue.Handle(r.Context(), command.DiscontinueCommand{
		VariantID: variantID,
		Reinstate: req.Reinstate,
	})
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Inventory updated successfully",
		Data:    inventory,
	})
}

// GetInventory handles GET /api/inventory/{variant_id}
func (h *InventoryHandler) GetInventory(w http.ResponseWriter, r *http.Request) {
	variantID, ok := pathVariantID(w, r)
	if !ok {
		return
	}

	inventory, err := h.getInventory.Handle(r.Context(), query.GetInventoryQuery{VariantID: variantID})
	if err != nil {
		respondJSON(w, http.StatusNotFound, Response{
			Success: false,
			Error:   "Inventory not found",
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    inventory,
	})
}

// ListInventory handles GET /api/inventory
func (h *InventoryHandler) ListInventory(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	inventories, err := h.listInventory.Handle(r.Context(), query.ListInventoryQuery{
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to list inventories")
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to list inventories",
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    inventories,
	})
}

// LowStockReport handles GET /api/inventory/low-stock
func (h *InventoryHandler) LowStockReport(w http.ResponseWriter, r *http.Request) {
	inventories, err := h.lowStock.Handle(r.Context())
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to build low stock report")
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to build low stock report",
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    inventories,
	})
}

// RegisterRoutes registers all inventory routes
func (h *InventoryHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/inventory", h.ListInventory).Methods("GET")
	router.HandleFunc("/api/inventory", SupplierMiddleware(h.CreateStock)).Methods("POST")
	router.HandleFunc("/api/inventory/low-stock", h.LowStockReport).Methods("GET")
	router.HandleFunc("/api/inventory/{variant_id}", h.GetInventory).Methods("GET")
	router.HandleFunc("/api/inventory/{variant_id}/restock", SupplierMiddleware(h.Restock)).Methods("PATCH")
	router.HandleFunc("/api/inventory/{variant_id}/discontinue", SupplierMiddleware(h.Discontinue)).Methods("PATCH")
}

func pathVariantID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(mux.Vars(r)["variant_id"], 10, 32)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid variant ID",
		})
		return 0, false
	}
	return uint(id), true
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
