package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/tradehub/b2b-marketplace/internal/partner/usecase/command"
	"github.com/tradehub/b2b-marketplace/pkg/logger"
)

// PartnerHandler handles HTTP requests for partner accounts
type PartnerHandler struct {
	register *command.RegisterPartnerHandler
	login    *command.LoginPartnerHandler
}

// NewPartnerHandler creates a new partner handler
func NewPartnerHandler(register *command.RegisterPartnerHandler, login *command.LoginPartnerHandler) *PartnerHandler {
	return &PartnerHandler{register: register, login: login}
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// Register handles POST /api/auth/register
func (h *PartnerHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PartnerType  string `json:"partner_type"`
		Name         string `json:"name"`
		Email        string `json:"email"`
		Password     string `json:"password"`
		ContactPhone string `json:"contact_phone"`
		Address      string `json:"address"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	partner, err := h.register.Handle(r.Context(), command.RegisterPartnerCommand{
		PartnerType:  req.PartnerType,
		Name:         req.Name,
		Email:        req.Email,
		Password:     req.Password,
		ContactPhone: req.ContactPhone,
		Address:      req.Address,
	})
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, command.ErrEmailTaken) {
			status = http.StatusConflict
		}
		respondJSON(w, status, Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	logger.Info(r.Context()).
		Str("partner_type", partner.PartnerType).
		Uint("partner_id", partner.ID).
		Msg("Partner registered")

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Partner registered successfully",
		Data:    partner,
	})
}

// Login handles POST /api/auth/login
func (h *PartnerHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PartnerType string `json:"partner_type"`
		Email       string `json:"email"`
		Password    string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	resp, err := h.login.Handle(r.Context(), command.LoginPartnerCommand{
		PartnerType: req.PartnerType,
		Email:       req.Email,
		Password:    req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, command.ErrInvalidCredentials), errors.Is(err, command.ErrAccountDeactivated):
			respondJSON(w, http.StatusUnauthorized, Response{
				Success: false,
				Error:   err.Error(),
			})
		default:
			respondJSON(w, http.StatusBadRequest, Response{
				Success: false,
				Error:   err.Error(),
			})
		}
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Login successful",
		Data:    resp,
	})
}

// RegisterRoutes registers all partner account routes
func (h *PartnerHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/auth/register", h.Register).Methods("POST")
	router.HandleFunc("/api/auth/login", h.Login).Methods("POST")
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
