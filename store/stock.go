package store

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"retailstore/domain"
)

// StockItem is one line of a stock file: a product, how many units to add
// and an optional discount to set on it by name.
type StockItem struct {
	Type     string   `json:"type" yaml:"type" mapstructure:"type"`
	Name     string   `json:"name" yaml:"name" mapstructure:"name"`
	Price    float64  `json:"price" yaml:"price" mapstructure:"price"`
	Amount   int      `json:"amount" yaml:"amount" mapstructure:"amount"`
	Discount *float64 `json:"discount,omitempty" yaml:"discount,omitempty" mapstructure:"discount"`
}

// maxStockLine caps a single NDJSON record.
const maxStockLine = 16 * 1024 * 1024

// ParseStock decodes a JSON array, NDJSON or a YAML list of stock items.
func ParseStock(data []byte) ([]StockItem, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, errors.New("empty stock file")
	}

	var items []StockItem
	switch trimmed[0] {
	case '[':
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, fmt.Errorf("parsing JSON stock: %w", err)
		}
	case '{':
		scanner := bufio.NewScanner(bytes.NewReader(trimmed))
		scanner.Buffer(make([]byte, 0, 64*1024), maxStockLine)
		line := 0
		for scanner.Scan() {
			line++
			raw := bytes.TrimSpace(scanner.Bytes())
			if len(raw) == 0 {
				continue
			}
			var it StockItem
			if err := json.Unmarshal(raw, &it); err != nil {
				return nil, fmt.Errorf("parsing NDJSON stock line %d: %w", line, err)
			}
			items = append(items, it)
		}
		if err := scanner.Err(); err != nil {
			return nil, err
		}
	default:
		if err := yaml.Unmarshal(trimmed, &items); err != nil {
			return nil, fmt.Errorf("parsing YAML stock: %w", err)
		}
	}
	return items, nil
}

type preparedItem struct {
	product  domain.Product
	amount   int
	discount *float64
}

// Import stocks every item. All items are validated first; if any is
// invalid nothing is applied and the first error is returned.
func (s *ProductStore) Import(items []StockItem) error {
	prepared := make([]preparedItem, 0, len(items))
	for i, it := range items {
		p, err := domain.NewProduct(it.Type, it.Name, it.Price)
		if err != nil {
			return fmt.Errorf("item %d: %w", i, s.fail(err))
		}
		if err := validateAmount(it.Amount); err != nil {
			return fmt.Errorf("item %d: %w", i, s.fail(err))
		}
		if it.Discount != nil {
			if err := domain.ValidDiscount(*it.Discount); err != nil {
				return fmt.Errorf("item %d: %w", i, s.fail(err))
			}
		}
		prepared = append(prepared, preparedItem{product: p, amount: it.Amount, discount: it.Discount})
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, it := range prepared {
		s.addLocked(it.product, it.amount)
	}
	for _, it := range prepared {
		if it.discount != nil {
			s.entries[it.product.Name()].DiscountPercent = *it.discount
		}
	}
	s.logger.Debug("stock imported", "items", len(prepared))
	return nil
}

// Stock returns the catalog as stock items that Import accepts: base price,
// quantity on hand and any non-zero discount. Sold-out entries are left out
// because a stock item must add at least one unit.
func (s *ProductStore) Stock() []StockItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]StockItem, 0, len(s.order))
	for _, name := range s.order {
		e := s.entries[name]
		if e.Quantity == 0 {
			continue
		}
		it := StockItem{
			Type:   e.Product.Type(),
			Name:   e.Product.Name(),
			Price:  e.Product.BasePrice(),
			Amount: e.Quantity,
		}
		if e.DiscountPercent != 0 {
			d := e.DiscountPercent
			it.Discount = &d
		}
		out = append(out, it)
	}
	return out
}
