// Package pricing evaluates tiered bulk pricing for order lines. It is a
// pure computation over catalog data and has no side effects.
package pricing

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/tradehub/b2b-marketplace/internal/catalog/domain"
)

// ErrNegativeUnitPrice is returned when a variant's price adjustment pushes
// the unit price below zero.
var ErrNegativeUnitPrice = errors.New("price adjustment produces a negative unit price")

// ErrInvalidQuantity is returned for non-positive quantities.
var ErrInvalidQuantity = errors.New("quantity must be positive")

var hundred = decimal.NewFromInt(100)

// Quote is the result of pricing one order line
type Quote struct {
	UnitPrice       decimal.Decimal
	DiscountPercent decimal.Decimal
	LineTotal       decimal.Decimal
}

// PriceLine computes the charge for one order line.
//
// The unit price is the product base price plus the variant adjustment.
// The applicable tier is the one whose band contains quantity; tiers are
// scanned in ascending MinQuantity order so a malformed overlapping set
// still resolves deterministically to the first match. No matching tier
// means no discount. The line total is rounded half-up on the cent.
func PriceLine(basePrice, adjustment decimal.Decimal, quantity int, tiers []domain.PriceTier) (Quote, error) {
	if quantity <= 0 {
		return Quote{}, ErrInvalidQuantity
	}

	unitPrice := basePrice.Add(adjustment)
	if unitPrice.IsNegative() {
		return Quote{}, ErrNegativeUnitPrice
	}

	discount := decimal.Zero
	for _, tier := range tiers {
		if tier.Contains(quantity) {
			discount = tier.DiscountPercent
			break
		}
	}

	gross := unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
	total := gross.Mul(hundred.Sub(discount)).Div(hundred).Round(2)

	return Quote{
		UnitPrice:       unitPrice,
		DiscountPercent: discount,
		LineTotal:       total,
	}, nil
}
