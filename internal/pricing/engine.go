package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/Cheertaboi/qr-menu-pricing-service/internal/models"
)

var hundred = decimal.NewFromInt(100)

// ResolvePrice picks the promotion that applies to product and computes the
// discounted price. The first matching timed discount wins, then the first
// matching happy hour. Both lists are expected to be eligible already;
// inactive or deleted entries are skipped regardless.
func ResolvePrice(product models.Product, timed []models.TimedDiscount, happy []models.HappyHour) (models.PriceInfo, error) {
	price, err := product.ParsePrice()
	if err != nil {
		return models.PriceInfo{}, err
	}

	info := models.PriceInfo{OriginalPrice: &price}

	promo, label, ok := selectPromotion(product, timed, happy)
	if !ok {
		return info, nil
	}

	discounted := Apply(price, promo.DiscountType, promo.DiscountAmount)
	info.DiscountedPrice = &discounted
	info.HasDiscount = true
	info.DiscountLabel = label
	info.DisplayLabel = label.Display()
	info.PromotionID = promo.ID
	return info, nil
}

func selectPromotion(product models.Product, timed []models.TimedDiscount, happy []models.HappyHour) (models.Promotion, models.DiscountLabel, bool) {
	for _, d := range timed {
		if d.Live() && d.Matches(product) {
			return d.Promotion, models.LabelTimedDiscount, true
		}
	}
	for _, h := range happy {
		if h.Live() && h.Matches(product) {
			return h.Promotion, models.LabelHappyHour, true
		}
	}
	return models.Promotion{}, "", false
}

// Apply computes the discounted price, clamped at zero. Unknown discount
// types leave the price unchanged.
func Apply(price decimal.Decimal, kind models.DiscountType, amount decimal.Decimal) decimal.Decimal {
	var out decimal.Decimal
	switch kind {
	case models.DiscountPercentage:
		out = price.Mul(hundred.Sub(amount)).Div(hundred)
	case models.DiscountAmount:
		out = price.Sub(amount)
	default:
		out = price
	}
	if out.IsNegative() {
		return decimal.Zero
	}
	return out
}
