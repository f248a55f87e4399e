// Package domain defines core business types for the retail store.
package domain

import (
	"encoding/json"
	"math"

	"github.com/shopspring/decimal"
)

// MarkupFactor is applied to every base price before any discount.
const MarkupFactor = 1.30

// Product describes a sellable item. It is immutable once built.
type Product struct {
	productType string
	name        string
	basePrice   float64
}

// NewProduct validates its input and returns a Product.
func NewProduct(productType, name string, basePrice float64) (Product, error) {
	p := Product{productType: productType, name: name, basePrice: basePrice}
	if err := p.Validate(); err != nil {
		return Product{}, err
	}
	return p, nil
}

// Validate reports whether p was built by NewProduct with sane input.
func (p Product) Validate() error {
	if p.productType == "" {
		return NewValidationError("type", "cannot be empty", p.productType)
	}
	if p.name == "" {
		return NewValidationError("name", "cannot be empty", p.name)
	}
	if math.IsNaN(p.basePrice) || math.IsInf(p.basePrice, 0) || p.basePrice <= 0 {
		return NewValidationError("price", "must be a positive number", p.basePrice)
	}
	return nil
}

// Type returns the product classification, e.g. "Sport".
func (p Product) Type() string { return p.productType }

// Name returns the catalog key.
func (p Product) Name() string { return p.name }

// BasePrice returns the price before markup and discount.
func (p Product) BasePrice() float64 { return p.basePrice }

type productView struct {
	Type  string  `json:"type" yaml:"type"`
	Name  string  `json:"name" yaml:"name"`
	Price float64 `json:"price" yaml:"price"`
}

// MarshalJSON renders the product as {type, name, price}.
func (p Product) MarshalJSON() ([]byte, error) {
	return json.Marshal(productView{Type: p.productType, Name: p.name, Price: p.basePrice})
}

// MarshalYAML renders the product as {type, name, price}.
func (p Product) MarshalYAML() (interface{}, error) {
	return productView{Type: p.productType, Name: p.name, Price: p.basePrice}, nil
}

// CatalogEntry is the mutable stock record kept for one product name.
type CatalogEntry struct {
	Product         Product
	Quantity        int
	DiscountPercent float64
}

// UnitPrice is the entry's current selling price, unrounded.
func (e CatalogEntry) UnitPrice() float64 {
	return UnitPrice(e.Product.basePrice, e.DiscountPercent)
}

// Summary describes the entry for listings.
func (e CatalogEntry) Summary() ProductSummary {
	return ProductSummary{
		Name:      e.Product.name,
		Type:      e.Product.productType,
		Quantity:  e.Quantity,
		UnitPrice: RoundPrice(e.UnitPrice()),
	}
}

// ProductSummary is a read-only row returned by listings.
type ProductSummary struct {
	Name      string  `json:"name" yaml:"name"`
	Type      string  `json:"type" yaml:"type"`
	Quantity  int     `json:"amount" yaml:"amount"`
	UnitPrice float64 `json:"unit_price" yaml:"unit_price"`
}

// UnitPrice applies the markup first and the discount second.
func UnitPrice(basePrice, discountPercent float64) float64 {
	priceAfterMarkup := basePrice * MarkupFactor
	return priceAfterMarkup * (1 - discountPercent/100)
}

// RoundPrice rounds v to two decimal places, half away from zero.
func RoundPrice(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

// ValidDiscount reports whether percent lies in [0, 100].
func ValidDiscount(percent float64) error {
	if math.IsNaN(percent) || percent < 0 || percent > 100 {
		return NewValidationError("percent", "must be between 0 and 100", percent)
	}
	return nil
}

// IdentifierType selects which product field a discount is matched against.
type IdentifierType string

const (
	ByName IdentifierType = "name"
	ByType IdentifierType = "type"
)

// ParseIdentifierType accepts "name" or "type".
func ParseIdentifierType(s string) (IdentifierType, error) {
	switch IdentifierType(s) {
	case ByName, ByType:
		return IdentifierType(s), nil
	default:
		return "", NewValidationError("identifier_type", "must be 'name' or 'type'", s)
	}
}

// Matches reports whether p's selected field equals identifier exactly.
func (t IdentifierType) Matches(p Product, identifier string) bool {
	switch t {
	case ByName:
		return p.name == identifier
	case ByType:
		return p.productType == identifier
	default:
		return false
	}
}
