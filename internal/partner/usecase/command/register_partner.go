package command

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tradehub/b2b-marketplace/internal/partner/domain"
	"github.com/tradehub/b2b-marketplace/pkg/auth"
)

// ErrEmailTaken is returned when the email already belongs to a partner
// of the requested type
var ErrEmailTaken = errors.New("email already registered")

// RegisterPartnerCommand represents the command to register a new partner
type RegisterPartnerCommand struct {
	PartnerType  string // retailer or supplier
	Name         string
	Email        string
	Password     string
	ContactPhone string
	Address      string
}

// RegisteredPartner is the account view returned after registration
type RegisteredPartner struct {
	ID          uint   `json:"id"`
	PartnerType string `json:"partner_type"`
	Name        string `json:"name"`
	Email       string `json:"email"`
}

// RegisterPartnerHandler handles partner registration
type RegisterPartnerHandler struct {
	retailers domain.RetailerRepository
	suppliers domain.SupplierRepository
}

// NewRegisterPartnerHandler creates a new register partner handler
func NewRegisterPartnerHandler(retailers domain.RetailerRepository, suppliers domain.SupplierRepository) *RegisterPartnerHandler {
	return &RegisterPartnerHandler{retailers: retailers, suppliers: suppliers}
}

// Handle executes the register partner command
func (h *RegisterPartnerHandler) Handle(ctx context.Context, cmd RegisterPartnerCommand) (*RegisteredPartner, error) {
	if cmd.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if cmd.Email == "" {
		return nil, fmt.Errorf("email is required")
	}
	if cmd.Password == "" {
		return nil, fmt.Errorf("password is required")
	}
	if len(cmd.Password) < 8 {
		return nil, fmt.Errorf("password must be at least 8 characters")
	}

	partnerType := strings.ToLower(cmd.PartnerType)
	if partnerType != auth.PartnerTypeRetailer && partnerType != auth.PartnerTypeSupplier {
		return nil, fmt.Errorf("partner type must be retailer or supplier")
	}

	hash, err := auth.HashPassword(cmd.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	switch partnerType {
	case auth.PartnerTypeRetailer:
		if existing, _ := h.retailers.FindByEmail(ctx, cmd.Email); existing != nil {
			return nil, ErrEmailTaken
		}
		retailer := &domain.Retailer{
			Name:         cmd.Name,
			Email:        cmd.Email,
			PasswordHash: hash,
			ContactPhone: cmd.ContactPhone,
			Address:      cmd.Address,
			IsActive:     true,
		}
		if err := h.retailers.Create(ctx, retailer); err != nil {
			return nil, fmt.Errorf("failed to create retailer: %w", err)
		}
		return &RegisteredPartner{ID: retailer.ID, PartnerType: partnerType, Name: retailer.Name, Email: retailer.Email}, nil

	default:
		if existing, _ := h.suppliers.FindByEmail(ctx, cmd.Email); existing != nil {
			return nil, ErrEmailTaken
		}
		supplier := &domain.Supplier{
			Name:         cmd.Name,
			Email:        cmd.Email,
			PasswordHash: hash,
			ContactPhone: cmd.ContactPhone,
			Address:      cmd.Address,
			IsActive:     true,
		}
		if err := h.suppliers.Create(ctx, supplier); err != nil {
			return nil, fmt.Errorf("failed to create supplier: %w", err)
		}
		return &RegisteredPartner{ID: supplier.ID, PartnerType: partnerType, Name: supplier.Name, Email: supplier.Email}, nil
	}
}
