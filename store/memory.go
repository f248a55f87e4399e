// Package store keeps the product catalog, stock levels, discounts and income.
package store

import (
	"log/slog"
	"sync"

	"retailstore/domain"
	"retailstore/errlog"
)

// ProductStore is an in-memory catalog keyed by product name.
// A single RWMutex serialises callers; nothing else runs concurrently.
type ProductStore struct {
	mu      sync.RWMutex
	entries map[string]*domain.CatalogEntry
	order   []string
	income  float64

	errLog errlog.Sink
	logger *slog.Logger
}

// Option configures a ProductStore.
type Option func(*ProductStore)

// WithErrorLog sends every validation failure to sink.
func WithErrorLog(sink errlog.Sink) Option {
	return func(s *ProductStore) {
		if sink != nil {
			s.errLog = sink
		}
	}
}

// WithLogger sets the structured logger used for debug output.
func WithLogger(l *slog.Logger) Option {
	return func(s *ProductStore) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewProductStore constructs an empty store with zero income.
func NewProductStore(opts ...Option) *ProductStore {
	s := &ProductStore{
		entries: make(map[string]*domain.CatalogEntry),
		errLog:  errlog.Discard,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *ProductStore) fail(err error) error {
	return errlog.Raise(s.errLog, err)
}

func validateAmount(amount int) error {
	if amount <= 0 {
		return domain.NewValidationError("amount", "must be a positive integer", amount)
	}
	return nil
}

// Add stocks amount units of product. A known name only gains quantity;
// a new name gets an entry with no discount.
func (s *ProductStore) Add(product domain.Product, amount int) error {
	if err := product.Validate(); err != nil {
		return s.fail(err)
	}
	if err := validateAmount(amount); err != nil {
		return s.fail(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.addLocked(product, amount)
	return nil
}

func (s *ProductStore) addLocked(product domain.Product, amount int) {
	if e, ok := s.entries[product.Name()]; ok {
		e.Quantity += amount
		s.logger.Debug("stock increased", "name", product.Name(), "amount", amount, "quantity", e.Quantity)
		return
	}
	s.entries[product.Name()] = &domain.CatalogEntry{Product: product, Quantity: amount}
	s.order = append(s.order, product.Name())
	s.logger.Debug("product stocked", "name", product.Name(), "type", product.Type(), "quantity", amount)
}

// SetDiscount sets percent on every entry whose name or type (per by) equals
// identifier. The new percentage replaces the old one. Matching nothing is
// an error.
func (s *ProductStore) SetDiscount(identifier string, percent float64, by domain.IdentifierType) error {
	if err := domain.ValidDiscount(percent); err != nil {
		return s.fail(err)
	}
	if _, err := domain.ParseIdentifierType(string(by)); err != nil {
		return s.fail(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	matched := 0
	for _, name := range s.order {
		e := s.entries[name]
		if by.Matches(e.Product, identifier) {
			e.DiscountPercent = percent
			matched++
		}
	}
	if matched == 0 {
		return s.fail(domain.NewNoDiscountMatchError(identifier, by))
	}
	s.logger.Debug("discount set", "identifier", identifier, "by", string(by), "percent", percent, "matched", matched)
	return nil
}

// Sell removes amount units of productName from stock and books the revenue.
// Nothing changes when the sale is rejected.
func (s *ProductStore) Sell(productName string, amount int) error {
	if productName == "" {
		return s.fail(domain.NewValidationError("name", "cannot be empty", productName))
	}
	if err := validateAmount(amount); err != nil {
		return s.fail(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[productName]
	if !ok {
		return s.fail(domain.NewUnknownProductError(productName))
	}
	if e.Quantity < amount {
		return s.fail(domain.NewInsufficientStockError(productName, e.Quantity, amount))
	}

	revenue := e.UnitPrice() * float64(amount)
	e.Quantity -= amount
	s.income += revenue
	s.logger.Debug("sold", "name", productName, "amount", amount, "revenue", revenue, "remaining", e.Quantity)
	return nil
}

// Income returns the revenue booked so far.
func (s *ProductStore) Income() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.income
}

// AllProducts lists every entry in the order it was first stocked, with the
// unit price rounded to cents.
func (s *ProductStore) AllProducts() []domain.ProductSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.ProductSummary, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.entries[name].Summary())
	}
	return out
}

// ProductInfo returns the name and quantity on hand for productName.
func (s *ProductStore) ProductInfo(productName string) (string, int, error) {
	s.mu.RLock()
	e, ok := s.entries[productName]
	var qty int
	if ok {
		qty = e.Quantity
	}
	s.mu.RUnlock()

	if !ok {
		return "", 0, s.fail(domain.NewUnknownProductError(productName))
	}
	return productName, qty, nil
}

// Entry returns a copy of the catalog entry for productName.
func (s *ProductStore) Entry(productName string) (domain.CatalogEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[productName]
	if !ok {
		return domain.CatalogEntry{}, false
	}
	return *e, true
}
