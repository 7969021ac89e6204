package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/Cheertaboi/qr-menu-pricing-service/internal/models"
)

// PromotionRepo reads the promotion collections of a business. Only active,
// non-deleted rows are returned, in creation order.
type PromotionRepo struct {
	db *sql.DB
}

func NewPromotionRepo(db *sql.DB) *PromotionRepo {
	return &PromotionRepo{db: db}
}

func (r *PromotionRepo) LoadSnapshot(ctx context.Context, businessID uuid.UUID) (*models.PromotionSnapshot, error) {
	campaigns, err := r.ListCampaigns(ctx, businessID)
	if err != nil {
		return nil, err
	}
	timed, err := r.ListTimedDiscounts(ctx, businessID)
	if err != nil {
		return nil, err
	}
	happy, err := r.ListHappyHours(ctx, businessID)
	if err != nil {
		return nil, err
	}
	return &models.PromotionSnapshot{
		BusinessID:     businessID,
		Campaigns:      campaigns,
		TimedDiscounts: timed,
		HappyHours:     happy,
		LoadedAt:       time.Now().UTC(),
	}, nil
}

func (r *PromotionRepo) ListCampaigns(ctx context.Context, businessID uuid.UUID) ([]models.Campaign, error) {
	query := `
		SELECT id::text, business_id, title, COALESCE(description, ''), COALESCE(image_url, ''),
		       is_active, is_deleted, start_date, end_date
		FROM campaigns
		WHERE business_id = $1 AND is_active = true AND is_deleted = false
		ORDER BY created_at, id
	`
	rows, err := r.db.QueryContext(ctx, query, businessID)
	if err != nil {
		return nil, fmt.Errorf("list campaigns: %w", err)
	}
	defer rows.Close()

	var campaigns []models.Campaign
	for rows.Next() {
		var (
			c          models.Campaign
			start, end sql.NullTime
		)
		if err := rows.Scan(&c.ID, &c.BusinessID, &c.Title, &c.Description, &c.ImageURL,
			&c.IsActive, &c.IsDeleted, &start, &end); err != nil {
			return nil, fmt.Errorf("scan campaign: %w", err)
		}
		c.StartDate = dateOrNil(start)
		c.EndDate = dateOrNil(end)
		campaigns = append(campaigns, c)
	}
	return campaigns, rows.Err()
}

const promotionColumns = `
	id::text, business_id, COALESCE(name, ''), is_active, is_deleted, start_date, end_date,
	discount_type, discount_amount, target_type, COALESCE(target_ids::text[], '{}')
`

func (r *PromotionRepo) ListTimedDiscounts(ctx context.Context, businessID uuid.UUID) ([]models.TimedDiscount, error) {
	query := `
		SELECT` + promotionColumns + `
		FROM timed_discounts
		WHERE business_id = $1 AND is_active = true AND is_deleted = false
		ORDER BY created_at, id
	`
	rows, err := r.db.QueryContext(ctx, query, businessID)
	if err != nil {
		return nil, fmt.Errorf("list timed discounts: %w", err)
	}
	defer rows.Close()

	var discounts []models.TimedDiscount
	for rows.Next() {
		var d models.TimedDiscount
		if err := scanPromotion(rows, &d.Promotion); err != nil {
			return nil, fmt.Errorf("scan timed discount: %w", err)
		}
		discounts = append(discounts, d)
	}
	return discounts, rows.Err()
}

func (r *PromotionRepo) ListHappyHours(ctx context.Context, businessID uuid.UUID) ([]models.HappyHour, error) {
	query := `
		SELECT` + promotionColumns + `, days_config
		FROM happy_hours
		WHERE business_id = $1 AND is_active = true AND is_deleted = false
		ORDER BY created_at, id
	`
	rows, err := r.db.QueryContext(ctx, query, businessID)
	if err != nil {
		return nil, fmt.Errorf("list happy hours: %w", err)
	}
	defer rows.Close()

	var hours []models.HappyHour
	for rows.Next() {
		var h models.HappyHour
		if err := scanPromotion(rows, &h.Promotion, &h.DaysConfig); err != nil {
			return nil, fmt.Errorf("scan happy hour: %w", err)
		}
		hours = append(hours, h)
	}
	return hours, rows.Err()
}

func scanPromotion(row rowScanner, p *models.Promotion, extra ...any) error {
	var (
		start, end   sql.NullTime
		discountType string
		targetType   string
	)
	dest := []any{
		&p.ID, &p.BusinessID, &p.Name, &p.IsActive, &p.IsDeleted, &start, &end,
		&discountType, &p.DiscountAmount, &targetType, pq.Array(&p.TargetIDs),
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return err
	}
	p.StartDate = dateOrNil(start)
	p.EndDate = dateOrNil(end)
	p.DiscountType = models.DiscountType(discountType)
	p.TargetType = models.TargetType(targetType)
	return nil
}

func dateOrNil(t sql.NullTime) *models.Date {
	if !t.Valid {
		return nil
	}
	d := models.DateOf(t.Time)
	return &d
}
