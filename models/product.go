package models

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

type ColorVariant struct {
	ColorName string   `json:"colorName"`
	Color     string   `json:"color"`
	Images    []string `json:"images"`
}

type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"Name"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description,omitempty"`
	Category    string          `json:"category"`
	Color       []ColorVariant  `json:"color"`
	Image       string          `json:"image,omitempty"`
}

// UnmarshalJSON accepts ids sent as "id" or "_id", as strings or numbers.
func (p *Product) UnmarshalJSON(data []byte) error {
	type plain Product
	var aux struct {
		plain
		ID    json.RawMessage `json:"id"`
		AltID json.RawMessage `json:"_id"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*p = Product(aux.plain)
	raw := aux.ID
	if len(raw) == 0 || string(raw) == "null" {
		raw = aux.AltID
	}
	p.ID = rawID(raw)
	return nil
}

func rawID(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return strings.TrimSpace(string(raw))
}

// PrimaryImage is the first image of the first colour variant, else Image.
func (p Product) PrimaryImage() string {
	if len(p.Color) > 0 && len(p.Color[0].Images) > 0 {
		return p.Color[0].Images[0]
	}
	return p.Image
}

// ProductList is the envelope returned by products/getAllProducts.
type ProductList struct {
	Products []Product `json:"products"`
}
