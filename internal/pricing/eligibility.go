package pricing

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Cheertaboi/qr-menu-pricing-service/internal/models"
)

// inDateRange checks now against optional inclusive calendar-day bounds.
// Day boundaries are taken in now's location.
func inDateRange(start, end *models.Date, now time.Time) bool {
	if start != nil && now.Before(start.StartIn(now.Location())) {
		return false
	}
	if end != nil && !now.Before(end.NextStartIn(now.Location())) {
		return false
	}
	return true
}

// IsTimedDiscountEligible reports whether d is in effect at now.
func IsTimedDiscountEligible(d models.TimedDiscount, now time.Time) bool {
	return d.Live() && inDateRange(d.StartDate, d.EndDate, now)
}

// IsHappyHourEligible reports whether h is in effect at now. Windows are
// inclusive at minute granularity. A window whose end is before its start
// never matches; happy hours cannot cross midnight.
//
// A malformed start or end makes the day ineligible and is returned as a
// *TimeSpecError wrapping ErrInvalidTimeSpec.
func IsHappyHourEligible(h models.HappyHour, now time.Time) (bool, error) {
	if !h.Live() || !inDateRange(h.StartDate, h.EndDate, now) {
		return false, nil
	}

	day := models.WeekdayOf(now)
	cfg, ok := h.DaysConfig[day]
	if !ok || !cfg.Active {
		return false, nil
	}

	start, err := ParseClock(cfg.Start)
	if err != nil {
		return false, &TimeSpecError{PromotionID: h.ID, Day: day, Field: "start", Err: err}
	}
	end, err := ParseClock(cfg.End)
	if err != nil {
		return false, &TimeSpecError{PromotionID: h.ID, Day: day, Field: "end", Err: err}
	}

	minute := now.Hour()*60 + now.Minute()
	return start <= minute && minute <= end, nil
}

// ParseClock parses "HH:MM" into minutes since midnight. Both fields are
// exactly two digits.
func ParseClock(s string) (int, error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok || !twoDigits(hh) || !twoDigits(mm) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeSpec, s)
	}
	h, _ := strconv.Atoi(hh)
	m, _ := strconv.Atoi(mm)
	if h > 23 || m > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeSpec, s)
	}
	return h*60 + m, nil
}

func twoDigits(s string) bool {
	return len(s) == 2 && s[0] >= '0' && s[0] <= '9' && s[1] >= '0' && s[1] <= '9'
}

// EligibleTimedDiscounts keeps the discounts in effect at now, in input order.
func EligibleTimedDiscounts(list []models.TimedDiscount, now time.Time) []models.TimedDiscount {
	out := make([]models.TimedDiscount, 0, len(list))
	for _, d := range list {
		if IsTimedDiscountEligible(d, now) {
			out = append(out, d)
		}
	}
	return out
}

// EligibleHappyHours keeps the happy hours in effect at now, in input order.
// Time spec errors are collected rather than aborting the pass; each one is
// a *TimeSpecError.
func EligibleHappyHours(list []models.HappyHour, now time.Time) ([]models.HappyHour, []error) {
	out := make([]models.HappyHour, 0, len(list))
	var errs []error
	for _, h := range list {
		ok, err := IsHappyHourEligible(h, now)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if ok {
			out = append(out, h)
		}
	}
	return out, errs
}

// LiveCampaigns keeps the campaigns whose date range contains now.
func LiveCampaigns(list []models.Campaign, now time.Time) []models.Campaign {
	out := make([]models.Campaign, 0, len(list))
	for _, c := range list {
		if c.IsActive && !c.IsDeleted && inDateRange(c.StartDate, c.EndDate, now) {
			out = append(out, c)
		}
	}
	return out
}
