package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountAmount     DiscountType = "amount"
)

type TargetType string

const (
	TargetProduct  TargetType = "product"
	TargetCategory TargetType = "category"
)

// Promotion holds the fields shared by timed discounts and happy hours.
type Promotion struct {
	ID             string          `json:"id" validate:"required"`
	BusinessID     uuid.UUID       `json:"business_id"`
	Name           string          `json:"name,omitempty"`
	IsActive       bool            `json:"is_active"`
	IsDeleted      bool            `json:"is_deleted"`
	StartDate      *Date           `json:"start_date,omitempty"`
	EndDate        *Date           `json:"end_date,omitempty"`
	DiscountType   DiscountType    `json:"discount_type" validate:"required,oneof=percentage amount"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	TargetType     TargetType      `json:"target_type" validate:"required,oneof=product category"`
	TargetIDs      []string        `json:"target_ids" validate:"required,min=1,dive,required"`
}

// Live reports whether the promotion is switched on and not soft-deleted.
func (p Promotion) Live() bool {
	return p.IsActive && !p.IsDeleted
}

// Matches reports whether the promotion's target scope includes the product,
// either directly or through its category.
func (p Promotion) Matches(product Product) bool {
	switch p.TargetType {
	case TargetProduct:
		return product.ID != "" && slices.Contains(p.TargetIDs, product.ID)
	case TargetCategory:
		return product.CategoryID != "" && slices.Contains(p.TargetIDs, product.CategoryID)
	}
	return false
}

// TimedDiscount is active every hour of every day inside its date range.
type TimedDiscount struct {
	Promotion
}

// HappyHour is additionally restricted to per-weekday time windows.
type HappyHour struct {
	Promotion
	DaysConfig DaysConfig `json:"days_config" validate:"dive,keys,oneof=sunday monday tuesday wednesday thursday friday saturday,endkeys"`
}

type Weekday string

const (
	Sunday    Weekday = "sunday"
	Monday    Weekday = "monday"
	Tuesday   Weekday = "tuesday"
	Wednesday Weekday = "wednesday"
	Thursday  Weekday = "thursday"
	Friday    Weekday = "friday"
	Saturday  Weekday = "saturday"
)

var Weekdays = []Weekday{Sunday, Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}

// WeekdayOf returns the weekday of t in t's own location.
func WeekdayOf(t time.Time) Weekday {
	return Weekday(strings.ToLower(t.Weekday().String()))
}

type DayConfig struct {
	Active bool   `json:"active"`
	Start  string `json:"start"`
	End    string `json:"end"`
}

// DaysConfig maps a weekday to its happy hour window. It is stored as jsonb.
type DaysConfig map[Weekday]DayConfig

func (c *DaysConfig) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*c = nil
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("days_config: unsupported type %T", src)
	}
	cfg := DaysConfig{}
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return fmt.Errorf("days_config: %w", err)
	}
	*c = cfg
	return nil
}

func (c DaysConfig) Value() (driver.Value, error) {
	if c == nil {
		return nil, nil
	}
	return json.Marshal(c)
}

// Campaign is a promotional banner shown on the menu. It never changes prices.
type Campaign struct {
	ID          string    `json:"id"`
	BusinessID  uuid.UUID `json:"business_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	IsActive    bool      `json:"is_active"`
	IsDeleted   bool      `json:"is_deleted"`
	StartDate   *Date     `json:"start_date,omitempty"`
	EndDate     *Date     `json:"end_date,omitempty"`
}

// PromotionSnapshot is everything loaded for one business in one pass.
type PromotionSnapshot struct {
	BusinessID     uuid.UUID       `json:"business_id"`
	Campaigns      []Campaign      `json:"campaigns"`
	TimedDiscounts []TimedDiscount `json:"timed_discounts"`
	HappyHours     []HappyHour     `json:"happy_hours"`
	LoadedAt       time.Time       `json:"loaded_at"`
}
