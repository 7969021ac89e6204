package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrInvalidProductPrice is returned when a product price is missing or not a number.
var ErrInvalidProductPrice = errors.New("invalid product price")

// Product is a menu item as stored. Price keeps the raw numeric text so that
// a malformed value is reported instead of silently becoming zero.
type Product struct {
	ID         string `json:"id"`
	CategoryID string `json:"category_id"`
	Name       string `json:"name"`
	Price      string `json:"price"`
}

// UnmarshalJSON accepts price as a JSON number or a string. The text is kept
// as sent so ParsePrice can reject values that are not numbers.
func (p *Product) UnmarshalJSON(data []byte) error {
	type plain Product
	aux := struct {
		*plain
		Price json.RawMessage `json:"price"`
	}{plain: (*plain)(p)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	raw := bytes.TrimSpace(aux.Price)
	switch {
	case len(raw) == 0 || bytes.Equal(raw, []byte("null")):
		p.Price = ""
	case raw[0] == '"':
		return json.Unmarshal(raw, &p.Price)
	default:
		var n json.Number
		if err := json.Unmarshal(raw, &n); err != nil {
			return fmt.Errorf("product price: %w", err)
		}
		p.Price = n.String()
	}
	return nil
}

// ParsePrice converts the stored price into a decimal.
func (p Product) ParsePrice() (decimal.Decimal, error) {
	raw := strings.TrimSpace(p.Price)
	if raw == "" {
		return decimal.Zero, fmt.Errorf("product %s: %w: missing", p.ID, ErrInvalidProductPrice)
	}
	price, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("product %s: %w: %q", p.ID, ErrInvalidProductPrice, raw)
	}
	return price, nil
}
