package models

import (
	"sort"

	"github.com/shopspring/decimal"
)

type CartLine struct {
	ProductID     string          `json:"id"`
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price"`
	Quantity      int             `json:"quantity"`
	Image         string          `json:"image,omitempty"`
	SelectedColor string          `json:"selectedColor,omitempty"`
}

// Subtotal is price times quantity; a missing quantity counts as one.
func (l CartLine) Subtotal() decimal.Decimal {
	q := l.Quantity
	if q <= 0 {
		q = 1
	}
	return l.Price.Mul(decimal.NewFromInt(int64(q)))
}

// Cart maps product id to its line.
type Cart map[string]CartLine

func (c Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, line := range c {
		total = total.Add(line.Subtotal())
	}
	return total
}

func (c Cart) ItemCount() int {
	n := 0
	for _, line := range c {
		n += line.Quantity
	}
	return n
}

// Lines returns the lines ordered by product id.
func (c Cart) Lines() []CartLine {
	lines := make([]CartLine, 0, len(c))
	for _, line := range c {
		lines = append(lines, line)
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].ProductID < lines[j].ProductID })
	return lines
}

func (c Cart) Clone() Cart {
	out := make(Cart, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

type CartRequest struct {
	ProductID     string `json:"product_id"`
	Quantity      int    `json:"quantity"`
	SelectedColor string `json:"selected_color,omitempty"`
}

// QuantityRequest sets a quantity, or steps it by one with Action "increment"/"decrement".
type QuantityRequest struct {
	Quantity int    `json:"quantity"`
	Action   string `json:"action,omitempty"`
}

type CartView struct {
	Items     []CartLine `json:"items"`
	ItemCount int        `json:"item_count"`
	Total     string     `json:"total"`
}
