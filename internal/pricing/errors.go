package pricing

import (
	"errors"
	"fmt"

	"github.com/Cheertaboi/qr-menu-pricing-service/internal/models"
)

var (
	// ErrInvalidTimeSpec is returned when a happy hour start or end is not HH:MM.
	ErrInvalidTimeSpec = errors.New("invalid time spec")

	ErrInvalidProductPrice = models.ErrInvalidProductPrice
)

// TimeSpecError names the happy hour and day whose window could not be parsed.
type TimeSpecError struct {
	PromotionID string
	Day         models.Weekday
	Field       string
	Err         error
}

func (e *TimeSpecError) Error() string {
	return fmt.Sprintf("happy hour %s %s %s: %v", e.PromotionID, e.Day, e.Field, e.Err)
}

func (e *TimeSpecError) Unwrap() error { return e.Err }
