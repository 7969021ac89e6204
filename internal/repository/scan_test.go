package repository

import (
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cheertaboi/qr-menu-pricing-service/internal/models"
)

// fakeRow feeds driver-style values into Scan destinations.
type fakeRow []any

func (r fakeRow) Scan(dest ...any) error {
	if len(dest) != len(r) {
		return fmt.Errorf("expected %d columns, got %d", len(r), len(dest))
	}
	for i, d := range dest {
		src := r[i]
		switch d := d.(type) {
		case sql.Scanner:
			if err := d.Scan(src); err != nil {
				return fmt.Errorf("column %d: %w", i, err)
			}
		case *string:
			*d = src.(string)
		case *bool:
			*d = src.(bool)
		default:
			return fmt.Errorf("column %d: unsupported destination %T", i, d)
		}
	}
	return nil
}

func TestScanPromotionHappyHour(t *testing.T) {
	business := uuid.New()
	row := fakeRow{
		"hh-1", business.String(), "After work", true, false,
		time.Date(2026, time.October, 1, 0, 0, 0, 0, time.UTC), nil,
		"percentage", []byte("12.5"), "category", []byte(`{c1,c2}`),
		[]byte(`{"monday":{"active":true,"start":"18:00","end":"20:00"},"tuesday":{"active":false,"start":"","end":""}}`),
	}

	var h models.HappyHour
	require.NoError(t, scanPromotion(row, &h.Promotion, &h.DaysConfig))

	assert.Equal(t, "hh-1", h.ID)
	assert.Equal(t, business, h.BusinessID)
	assert.True(t, h.IsActive)
	require.NotNil(t, h.StartDate)
	assert.Equal(t, "2026-10-01", h.StartDate.String())
	assert.Nil(t, h.EndDate)
	assert.Equal(t, models.DiscountPercentage, h.DiscountType)
	assert.Equal(t, "12.5", h.DiscountAmount.String())
	assert.Equal(t, models.TargetCategory, h.TargetType)
	assert.Equal(t, []string{"c1", "c2"}, h.TargetIDs)
	assert.Equal(t, models.DayConfig{Active: true, Start: "18:00", End: "20:00"}, h.DaysConfig[models.Monday])
	assert.False(t, h.DaysConfig[models.Tuesday].Active)
}

func TestScanProductKeepsRawPrice(t *testing.T) {
	p, err := scanProduct(fakeRow{"p1", "c1", "Latte", []byte("45.00")})
	require.NoError(t, err)
	assert.Equal(t, models.Product{ID: "p1", CategoryID: "c1", Name: "Latte", Price: "45.00"}, p)

	p, err = scanProduct(fakeRow{"p2", "", "Water", nil})
	require.NoError(t, err)
	assert.Empty(t, p.Price)
}

func TestDateOrNil(t *testing.T) {
	assert.Nil(t, dateOrNil(sql.NullTime{}))

	d := dateOrNil(sql.NullTime{Valid: true, Time: time.Date(2026, time.March, 9, 21, 0, 0, 0, time.FixedZone("X", -5*3600))})
	require.NotNil(t, d)
	assert.Equal(t, "2026-03-09", d.String())
}
