package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/Cheertaboi/qr-menu-pricing-service/internal/models"
)

type ProductRepo struct {
	db *sql.DB
}

func NewProductRepo(db *sql.DB) *ProductRepo {
	return &ProductRepo{db: db}
}

// price is read as text; the pricing engine validates it
const productColumns = `
	id::text, COALESCE(category_id::text, ''), name, price::text
`

func (r *ProductRepo) ListByBusiness(ctx context.Context, businessID uuid.UUID) ([]models.Product, error) {
	query := `
		SELECT` + productColumns + `
		FROM products
		WHERE business_id = $1 AND is_deleted = false
		ORDER BY sort_order, name
	`
	rows, err := r.db.QueryContext(ctx, query, businessID)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// Get returns nil, nil when the product does not exist for the business.
func (r *ProductRepo) Get(ctx context.Context, businessID uuid.UUID, productID string) (*models.Product, error) {
	query := `
		SELECT` + productColumns + `
		FROM products
		WHERE business_id = $1 AND id::text = $2 AND is_deleted = false
	`
	p, err := scanProduct(r.db.QueryRowContext(ctx, query, businessID, productID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (models.Product, error) {
	var (
		p     models.Product
		price sql.NullString
	)
	if err := row.Scan(&p.ID, &p.CategoryID, &p.Name, &price); err != nil {
		return models.Product{}, err
	}
	p.Price = price.String
	return p, nil
}
