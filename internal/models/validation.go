package models

import (
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// NewValidator returns a validator that knows the promotion rules which
// cannot be written as struct tags.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterStructValidation(promotionRules, Promotion{})
	return v
}

func promotionRules(sl validator.StructLevel) {
	p := sl.Current().Interface().(Promotion)

	if p.DiscountAmount.IsNegative() {
		sl.ReportError(p.DiscountAmount, "DiscountAmount", "discount_amount", "gte", "0")
	}
	if p.DiscountType == DiscountPercentage && p.DiscountAmount.GreaterThan(hundred) {
		sl.ReportError(p.DiscountAmount, "DiscountAmount", "discount_amount", "lte", "100")
	}
	if p.StartDate != nil && p.EndDate != nil && p.EndDate.Before(p.StartDate.Time) {
		sl.ReportError(p.EndDate, "EndDate", "end_date", "gtefield", "StartDate")
	}
}
