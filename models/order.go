package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderPending   OrderStatus = "Pending"
	OrderDelivered OrderStatus = "Delivered"
	OrderCancelled OrderStatus = "Cancelled"
)

type Order struct {
	ID            string          `json:"id"`
	Date          time.Time       `json:"date"`
	Status        OrderStatus     `json:"status"`
	Items         []CartLine      `json:"items"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	PaymentMethod PaymentMethod   `json:"paymentMethod"`
	PaymentID     string          `json:"paymentId"`
}

// MarshalJSON writes totalAmount with two decimals, e.g. "250.00".
func (o Order) MarshalJSON() ([]byte, error) {
	type plain Order
	return json.Marshal(struct {
		plain
		TotalAmount string `json:"totalAmount"`
	}{plain(o), o.TotalAmount.StringFixed(2)})
}

// Clone copies the order including its item snapshot.
func (o Order) Clone() Order {
	items := make([]CartLine, len(o.Items))
	copy(items, o.Items)
	o.Items = items
	return o
}

type OrderStats struct {
	Pending   int `json:"pending"`
	Delivered int `json:"delivered"`
	Total     int `json:"total"`
}
