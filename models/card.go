package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	PaymentVisa   PaymentMethod = "visa"
	PaymentPayPal PaymentMethod = "paypal"
)

type CardDetails struct {
	CardNumber string `json:"cardNumber"`
	ExpiryDate string `json:"expiryDate"`
	CVV        string `json:"cvv"`
	Name       string `json:"name"`
}

type PayPalDetails struct {
	Email string `json:"email"`
}

// PaymentRequest is what the checkout caller submits.
type PaymentRequest struct {
	Method PaymentMethod  `json:"type"`
	Card   *CardDetails   `json:"card,omitempty"`
	PayPal *PayPalDetails `json:"paypal,omitempty"`
}

// Charge is what a gateway is asked to collect.
type Charge struct {
	Amount decimal.Decimal
	Method PaymentMethod
	Card   *CardDetails
	PayPal *PayPalDetails
}

type Receipt struct {
	TransactionID string          `json:"transactionId"`
	Method        PaymentMethod   `json:"paymentMethod"`
	Amount        decimal.Decimal `json:"amount"`
}

// PaymentRecord is the stored trace of a card payment; only the last four digits are kept.
type PaymentRecord struct {
	ID            string          `json:"id"`
	TransactionID string          `json:"transactionId"`
	Amount        decimal.Decimal `json:"amount"`
	CardNumber    string          `json:"cardNumber"`
	Status        string          `json:"status"`
	Date          time.Time       `json:"date"`
}
