package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/tradehub/b2b-marketplace/internal/catalog/domain"
	"github.com/tradehub/b2b-marketplace/internal/catalog/usecase/command"
	"github.com/tradehub/b2b-marketplace/internal/catalog/usecase/query"
	"github.com/tradehub/b2b-marketplace/pkg/logger"
)

// CatalogHandler handles HTTP requests for products, variants and tiers
type CatalogHandler struct {
	createProduct *command.CreateProductHandler
	addVariant    *command.AddVariantHandler
	setPriceTiers *command.SetPriceTiersHandler
	getProduct    *query.GetProductHandler
	listProducts  *query.ListProductsHandler
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(
	createProduct *command.CreateProductHandler,
	addVariant *command.AddVariantHandler,
	setPriceTiers *command.SetPriceTiersHandler,
	getProduct *query.GetProductHandler,
	listProducts *query.ListProductsHandler,
) *CatalogHandler {
	return &CatalogHandler{
		createProduct: createProduct,
		addVariant:    addVariant,
		setPriceTiers: setPriceTiers,
		getProduct:    getProduct,
		listProducts:  listProducts,
	}
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

type priceTierRequest struct {
	MinQuantity     int             `json:"min_quantity"`
	MaxQuantity     *int            `json:"max_quantity"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
}

func toDomainTiers(tiers []priceTierRequest) []domain.PriceTier {
	out := make([]domain.PriceTier, 0, len(tiers))
	for _, t := range tiers {
		out = append(out, domain.PriceTier{
			MinQuantity:     t.MinQuantity,
			MaxQuantity:     t.MaxQuantity,
			DiscountPercent: t.DiscountPercent,
		})
	}
	return out
}

// CreateProduct handles POST /api/products
func (h *CatalogHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SupplierID       uint               `json:"supplier_id"`
		Name             string             `json:"name"`
		Description      string             `json:"description"`
		SKU              string             `json:"sku"`
		Category         string             `json:"category"`
		BasePrice        decimal.Decimal    `json:"base_price"`
		MinOrderQuantity int                `json:"min_order_quantity"`
		PriceTiers       []priceTierRequest `json:"price_tiers"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	product, err := h.createProduct.Handle(r.Context(), command.CreateProductCommand{
		SupplierID:       req.SupplierID,
		Name:             req.Name,
		Description:      req.Description,
		SKU:              req.SKU,
		Category:         req.Category,
		BasePrice:        req.BasePrice,
		MinOrderQuantity: req.MinOrderQuantity,
		PriceTiers:       toDomainTiers(req.PriceTiers),
	})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to create product")
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Product created successfully",
		Data:    product,
	})
}

// AddVariant handles POST /api/products/{id}/variants
func (h *CatalogHandler) AddVariant(w http.ResponseWriter, r *http.Request) {
	productID, ok := pathProductID(w, r)
	if !ok {
		return
	}

	var req struct {
		SKU             string          `json:"sku"`
		Name            string          `json:"name"`
		PriceAdjustment decimal.Decimal `json:"price_adjustment"`
		Attributes      string          `json:"attributes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	variant, err := h.addVariant.Handle(r.Context(), command.AddVariantCommand{
		ProductID:       productID,
		SKU:             req.SKU,
		Name:            req.Name,
		PriceAdjustment: req.PriceAdjustment,
		Attributes:      req.Attributes,
	})
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Variant created successfully",
		Data:    variant,
	})
}

// SetPriceTiers handles PUT /api/products/{id}/tiers
func (h *CatalogHandler) SetPriceTiers(w http.ResponseWriter, r *http.Request) {
	productID, ok := pathProductID(w, r)
	if !ok {
		return
	}

	var req struct {
		Tiers []priceTierRequest `json:"tiers"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	if err := h.setPriceTiers.Handle(r.Context(), command.SetPriceTiersCommand{
		ProductID: productID,
		Tiers:     toDomainTiers(req.Tiers),
	}); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Price tiers updated successfully",
	})
}

// GetProduct handles GET /api/products/{id}
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	productID, ok := pathProductID(w, r)
	if !ok {
		return
	}

	product, err := h.getProduct.Handle(r.Context(), query.GetProductQuery{ID: productID})
	if err != nil {
		respondJSON(w, http.StatusNotFound, Response{
			Success: false,
			Error:   "Product not found",
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    product,
	})
}

// ListProducts handles GET /api/products
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	supplierID, _ := strconv.ParseUint(r.URL.Query().Get("supplier_id"), 10, 32)

	products, err := h.listProducts.Handle(r.Context(), query.ListProductsQuery{
		SupplierID: uint(supplierID),
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to list products")
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to list products",
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    products,
	})
}

// RegisterRoutes registers all catalog routes
func (h *CatalogHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/products", h.ListProducts).Methods("GET")
	router.HandleFunc("/api/products", SupplierMiddleware(h.CreateProduct)).Methods("POST")
	router.HandleFunc("/api/products/{id}", h.GetProduct).Methods("GET")
	router.HandleFunc("/api/products/{id}/variants", SupplierMiddleware(h.AddVariant)).Methods("POST")
	router.HandleFunc("/api/products/{id}/tiers", SupplierMiddleware(h.SetPriceTiers)).Methods("PUT")
}

func pathProductID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid product ID",
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
