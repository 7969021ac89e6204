package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Cheertaboi/qr-menu-pricing-service/internal/concurrency"
	"github.com/Cheertaboi/qr-menu-pricing-service/internal/models"
	"github.com/Cheertaboi/qr-menu-pricing-service/internal/pricing"
)

var ErrProductNotFound = errors.New("product not found")

// Repos required by the service (interfaces to allow fakes in tests)
type ProductStore interface {
	ListByBusiness(ctx context.Context, businessID uuid.UUID) ([]models.Product, error)
	Get(ctx context.Context, businessID uuid.UUID, productID string) (*models.Product, error)
}

type PromotionSource interface {
	Load(ctx context.Context, businessID uuid.UUID) (*models.PromotionSnapshot, error)
}

// Invalidator is implemented by caching promotion sources.
type Invalidator interface {
	Invalidate(ctx context.Context, businessID uuid.UUID) error
}

type Options struct {
	Location      *time.Location
	Workers       int
	PublicMenuURL string
	Now           func() time.Time
}

type MenuService struct {
	products   ProductStore
	promotions PromotionSource
	validate   *validator.Validate
	log        *zap.Logger

	loc     *time.Location
	workers int
	baseURL string
	now     func() time.Time
}

func NewMenuService(products ProductStore, promotions PromotionSource, validate *validator.Validate, log *zap.Logger, opts Options) *MenuService {
	s := &MenuService{
		products:   products,
		promotions: promotions,
		validate:   validate,
		log:        log,
		loc:        opts.Location,
		workers:    opts.Workers,
		baseURL:    strings.TrimRight(opts.PublicMenuURL, "/"),
		now:        opts.Now,
	}
	if s.loc == nil {
		s.loc = time.Local
	}
	if s.workers < 1 {
		s.workers = 4
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// instant fixes the evaluation time of one pass in the business timezone.
func (s *MenuService) instant(at time.Time) time.Time {
	if at.IsZero() {
		at = s.now()
	}
	return at.In(s.loc)
}

// eligibleSet is the outcome of the temporal filter for one instant.
type eligibleSet struct {
	timed     []models.TimedDiscount
	happy     []models.HappyHour
	campaigns []models.Campaign
	diags     []models.Diagnostic
}

func filterAt(snapshot *models.PromotionSnapshot, now time.Time) eligibleSet {
	happy, errs := pricing.EligibleHappyHours(snapshot.HappyHours, now)
	set := eligibleSet{
		timed:     pricing.EligibleTimedDiscounts(snapshot.TimedDiscounts, now),
		happy:     happy,
		campaigns: pricing.LiveCampaigns(snapshot.Campaigns, now),
	}
	for _, err := range errs {
		d := models.Diagnostic{Kind: KindInvalidTimeSpec, Message: err.Error()}
		var specErr *pricing.TimeSpecError
		if errors.As(err, &specErr) {
			d.Subject = specErr.PromotionID
		}
		set.diags = append(set.diags, d)
	}
	return set
}

// PriceMenu prices every product of the business at a single instant. A
// product that cannot be priced is listed at its plain price without a
// discount and reported as a diagnostic.
func (s *MenuService) PriceMenu(ctx context.Context, businessID uuid.UUID, at time.Time) (*models.Menu, error) {
	now := s.instant(at)

	snapshot, err := s.promotions.Load(ctx, businessID)
	if err != nil {
		return nil, err
	}
	products, err := s.products.ListByBusiness(ctx, businessID)
	if err != nil {
		return nil, err
	}

	set := filterAt(snapshot, now)
	s.logDiagnostics(businessID, set.diags)

	items := make([]models.MenuItem, len(products))
	concurrency.ForEach(ctx, s.workers, len(products), func(_ context.Context, i int) {
		items[i] = s.priceItem(products[i], set)
	})
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("price menu: %w", err)
	}

	menu := &models.Menu{
		BusinessID:  businessID,
		EvaluatedAt: now,
		Campaigns:   set.campaigns,
		Items:       items,
		Diagnostics: set.diags,
	}
	for _, it := range items {
		if it.Diagnostic != nil {
			menu.Diagnostics = append(menu.Diagnostics, *it.Diagnostic)
			s.logDiagnostics(businessID, []models.Diagnostic{*it.Diagnostic})
		}
	}
	return menu, nil
}

// PriceProduct prices a single product at at.
func (s *MenuService) PriceProduct(ctx context.Context, businessID uuid.UUID, productID string, at time.Time) (*models.MenuItem, error) {
	now := s.instant(at)

	product, err := s.products.Get(ctx, businessID, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	snapshot, err := s.promotions.Load(ctx, businessID)
	if err != nil {
		return nil, err
	}

	set := filterAt(snapshot, now)
	s.logDiagnostics(businessID, set.diags)

	item := s.priceItem(*product, set)
	if item.Diagnostic != nil {
		s.logDiagnostics(businessID, []models.Diagnostic{*item.Diagnostic})
	}
	return &item, nil
}

func (s *MenuService) priceItem(product models.Product, set eligibleSet) models.MenuItem {
	info, err := pricing.ResolvePrice(product, set.timed, set.happy)
	if err != nil {
		return models.MenuItem{
			Product: product,
			Diagnostic: &models.Diagnostic{
				Kind:    KindInvalidProductPrice,
				Subject: product.ID,
				Message: err.Error(),
			},
		}
	}
	return models.MenuItem{Product: product, Pricing: info}
}

// Quote evaluates caller-supplied promotions against a product without
// touching the database. Invalid promotions are dropped and reported.
func (s *MenuService) Quote(product models.Product, timed []models.TimedDiscount, happy []models.HappyHour, at time.Time) (models.PriceInfo, []models.Diagnostic, error) {
	now := s.instant(at)

	timed, happy, diags := sanitizePromotions(s.validate, timed, happy)
	set := filterAt(&models.PromotionSnapshot{TimedDiscounts: timed, HappyHours: happy}, now)
	diags = append(diags, set.diags...)

	info, err := pricing.ResolvePrice(product, set.timed, set.happy)
	if err != nil {
		return models.PriceInfo{}, diags, err
	}
	return info, diags, nil
}

// InvalidatePromotions drops any cached snapshot for the business.
func (s *MenuService) InvalidatePromotions(ctx context.Context, businessID uuid.UUID) error {
	inv, ok := s.promotions.(Invalidator)
	if !ok {
		return nil
	}
	return inv.Invalidate(ctx, businessID)
}

// MenuURL is the public address encoded in a business's QR code.
func (s *MenuService) MenuURL(businessID uuid.UUID) string {
	return s.baseURL + "/menu/" + businessID.String()
}

func (s *MenuService) logDiagnostics(businessID uuid.UUID, diags []models.Diagnostic) {
	for _, d := range diags {
		s.log.Warn("pricing diagnostic",
			zap.String("business_id", businessID.String()),
			zap.String("kind", d.Kind),
			zap.String("subject", d.Subject),
			zap.String("detail", d.Message),
		)
	}
}
