package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type DiscountLabel string

const (
	LabelTimedDiscount DiscountLabel = "TIMED_DISCOUNT"
	LabelHappyHour     DiscountLabel = "HAPPY_HOUR"
)

// Display returns the badge text shown on the menu.
func (l DiscountLabel) Display() string {
	switch l {
	case LabelTimedDiscount:
		return "SÜRELİ İNDİRİM"
	case LabelHappyHour:
		return "HAPPY HOUR"
	}
	return ""
}

// PriceInfo is what the menu renders for a single product. OriginalPrice is
// nil when the product price could not be read and DiscountedPrice is nil
// when no discount applies. Prices are not rounded.
type PriceInfo struct {
	OriginalPrice   *decimal.Decimal `json:"original_price,omitempty"`
	DiscountedPrice *decimal.Decimal `json:"discounted_price,omitempty"`
	HasDiscount     bool             `json:"has_discount"`
	DiscountLabel   DiscountLabel    `json:"discount_label,omitempty"`
	DisplayLabel    string           `json:"display_label,omitempty"`
	PromotionID     string           `json:"promotion_id,omitempty"`
}

// Diagnostic describes a problem that was tolerated while building a menu.
type Diagnostic struct {
	Kind    string `json:"kind"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

type MenuItem struct {
	Product    Product     `json:"product"`
	Pricing    PriceInfo   `json:"pricing"`
	Diagnostic *Diagnostic `json:"diagnostic,omitempty"`
}

type Menu struct {
	BusinessID  uuid.UUID    `json:"business_id"`
	EvaluatedAt time.Time    `json:"evaluated_at"`
	Campaigns   []Campaign   `json:"campaigns"`
	Items       []MenuItem   `json:"items"`
	Diagnostics []Diagnostic `json:"diagnostics,omitempty"`
}
