package service

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Cheertaboi/qr-menu-pricing-service/internal/models"
	"github.com/Cheertaboi/qr-menu-pricing-service/internal/pricing"
)

const (
	KindInvalidPromotion    = "invalid_promotion"
	KindOvernightWindow     = "overnight_window"
	KindInvalidTimeSpec     = "invalid_time_spec"
	KindInvalidProductPrice = "invalid_product_price"
)

// PromotionStore is the database side of the loader.
type PromotionStore interface {
	LoadSnapshot(ctx context.Context, businessID uuid.UUID) (*models.PromotionSnapshot, error)
}

// PromotionLoader loads a business's promotions and drops the ones that
// fail validation so they can never be selected.
type PromotionLoader struct {
	store    PromotionStore
	validate *validator.Validate
	log      *zap.Logger
}

func NewPromotionLoader(store PromotionStore, validate *validator.Validate, log *zap.Logger) *PromotionLoader {
	return &PromotionLoader{store: store, validate: validate, log: log}
}

func (l *PromotionLoader) Load(ctx context.Context, businessID uuid.UUID) (*models.PromotionSnapshot, error) {
	s, err := l.store.LoadSnapshot(ctx, businessID)
	if err != nil {
		return nil, fmt.Errorf("load promotions: %w", err)
	}

	var diags []models.Diagnostic
	s.TimedDiscounts, s.HappyHours, diags = sanitizePromotions(l.validate, s.TimedDiscounts, s.HappyHours)
	for _, d := range diags {
		l.log.Warn("promotion problem",
			zap.String("business_id", businessID.String()),
			zap.String("kind", d.Kind),
			zap.String("promotion_id", d.Subject),
			zap.String("detail", d.Message),
		)
	}

	l.log.Debug("promotions loaded",
		zap.String("business_id", businessID.String()),
		zap.Int("campaigns", len(s.Campaigns)),
		zap.Int("timed_discounts", len(s.TimedDiscounts)),
		zap.Int("happy_hours", len(s.HappyHours)),
	)
	return s, nil
}

// sanitizePromotions removes promotions that fail validation and reports
// happy hour days whose window crosses midnight, which never match.
func sanitizePromotions(v *validator.Validate, timed []models.TimedDiscount, happy []models.HappyHour) ([]models.TimedDiscount, []models.HappyHour, []models.Diagnostic) {
	var diags []models.Diagnostic

	keptTimed := make([]models.TimedDiscount, 0, len(timed))
	for _, d := range timed {
		if err := v.Struct(d); err != nil {
			diags = append(diags, models.Diagnostic{Kind: KindInvalidPromotion, Subject: d.ID, Message: err.Error()})
			continue
		}
		keptTimed = append(keptTimed, d)
	}

	keptHappy := make([]models.HappyHour, 0, len(happy))
	for _, h := range happy {
		if err := v.Struct(h); err != nil {
			diags = append(diags, models.Diagnostic{Kind: KindInvalidPromotion, Subject: h.ID, Message: err.Error()})
			continue
		}
		for _, day := range models.Weekdays {
			cfg, ok := h.DaysConfig[day]
			if !ok || !cfg.Active {
				continue
			}
			start, errStart := pricing.ParseClock(cfg.Start)
			end, errEnd := pricing.ParseClock(cfg.End)
			if errStart == nil && errEnd == nil && end < start {
				diags = append(diags, models.Diagnostic{
					Kind:    KindOvernightWindow,
					Subject: h.ID,
					Message: fmt.Sprintf("%s window %s-%s crosses midnight and never applies", day, cfg.Start, cfg.End),
				})
			}
		}
		keptHappy = append(keptHappy, h)
	}

	return keptTimed, keptHappy, diags
}
