package command

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tradehub/b2b-marketplace/internal/partner/domain"
	"github.com/tradehub/b2b-marketplace/pkg/auth"
)

var (
	// ErrInvalidCredentials is returned for an unknown email or a wrong
	// password; callers must not be able to tell the two apart
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrAccountDeactivated is returned when the partner exists but has
	// been deactivated
	ErrAccountDeactivated = errors.New("account is deactivated")
)

const tokenTTL = 24 * time.Hour

// LoginPartnerCommand represents the command to authenticate a partner
type LoginPartnerCommand struct {
	PartnerType string // retailer or supplier
	Email       string
	Password    string
}

// LoginResponse represents the response after successful login
type LoginResponse struct {
	Token       string `json:"token"`
	PartnerID   uint   `json:"partner_id"`
	PartnerType string `json:"partner_type"`
	Name        string `json:"name"`
}

// LoginPartnerHandler handles partner login
type LoginPartnerHandler struct {
	retailers domain.RetailerRepository
	suppliers domain.SupplierRepository
}

// NewLoginPartnerHandler creates a new login partner handler
func NewLoginPartnerHandler(retailers domain.RetailerRepository, suppliers domain.SupplierRepository) *LoginPartnerHandler {
	return &LoginPartnerHandler{retailers: retailers, suppliers: suppliers}
}

// Handle executes the login partner command
func (h *LoginPartnerHandler) Handle(ctx context.Context, cmd LoginPartnerCommand) (*LoginResponse, error) {
	if cmd.Email == "" {
		return nil, fmt.Errorf("email is required")
	}
	if cmd.Password == "" {
		return nil, fmt.Errorf("password is required")
	}

	partnerType := strings.ToLower(cmd.PartnerType)

	var (
		partnerID uint
		name      string
		hash      string
		active    bool
	)
	switch partnerType {
	case auth.PartnerTypeRetailer:
		retailer, err := h.retailers.FindByEmail(ctx, cmd.Email)
		if err != nil {
			return nil, ErrInvalidCredentials
		}
		partnerID, name, hash, active = retailer.ID, retailer.Name, retailer.PasswordHash, retailer.IsActive
	case auth.PartnerTypeSupplier:
		supplier, err := h.suppliers.FindByEmail(ctx, cmd.Email)
		if err != nil {
			return nil, ErrInvalidCredentials
		}
		partnerID, name, hash, active = supplier.ID, supplier.Name, supplier.PasswordHash, supplier.IsActive
	default:
		return nil, fmt.Errorf("partner type must be retailer or supplier")
	}

	if !active {
		return nil, ErrAccountDeactivated
	}

	if !auth.CheckPassword(hash, cmd.Password) {
		return nil, ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(partnerID, partnerType, name, tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &LoginResponse{
		Token:       token,
		PartnerID:   partnerID,
		PartnerType: partnerType,
		Name:        name,
	}, nil
}
