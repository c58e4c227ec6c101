package payment

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"playbox/errs"
	"playbox/models"
	"playbox/storage"
)

var validCard = &models.CardDetails{
	CardNumber: "4242 4242 4242 4242",
	ExpiryDate: "12/29",
	CVV:        "123",
	Name:       "Jane Doe",
}

func TestCardGatewayChargesAndRecords(t *testing.T) {
	log, _ := test.NewNullLogger()
	p := storage.NewPersistence(storage.NewMemoryStore(), log)
	g := NewCardGateway(0, p, log)
	ctx := context.Background()

	receipt, err := g.Charge(ctx, models.Charge{Amount: decimal.RequireFromString("250"), Method: models.PaymentVisa, Card: validCard})

	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^VISA-[0-9A-Z]{9}$`), receipt.TransactionID)
	assert.Equal(t, models.PaymentVisa, receipt.Method)

	records := p.LoadPayments(ctx)
	require.Len(t, records, 1)
	assert.Equal(t, receipt.TransactionID, records[0].TransactionID)
	assert.Equal(t, "4242", records[0].CardNumber)
	assert.Equal(t, "success", records[0].Status)
	assert.Equal(t, "250.00", records[0].Amount.StringFixed(2))
}

func TestCardGatewayRejectsIncompleteCard(t *testing.T) {
	log, _ := test.NewNullLogger()
	p := storage.NewPersistence(storage.NewMemoryStore(), log)
	g := NewCardGateway(0, p, log)

	_, err := g.Charge(context.Background(), models.Charge{Method: models.PaymentVisa, Card: &models.CardDetails{CardNumber: "4242"}})

	assert.True(t, errors.Is(err, errs.ErrValidation))
	assert.EqualError(t, err, "validators: Invalid payment details")
	assert.Empty(t, p.LoadPayments(context.Background()))
}

func TestCardGatewayHonoursCancellation(t *testing.T) {
	log, _ := test.NewNullLogger()
	g := NewCardGateway(time.Minute, nil, log)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := g.Charge(ctx, models.Charge{Method: models.PaymentVisa, Card: validCard})

	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestPayPalGateway(t *testing.T) {
	log, _ := test.NewNullLogger()
	g := NewPayPalGateway(0, log)
	ctx := context.Background()

	receipt, err := g.Charge(ctx, models.Charge{Method: models.PaymentPayPal, PayPal: &models.PayPalDetails{Email: "me@pay.pal"}})
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^PP-[0-9a-z]{9}$`), receipt.TransactionID)

	_, err = g.Charge(ctx, models.Charge{Method: models.PaymentPayPal, PayPal: &models.PayPalDetails{Email: "nope"}})
	assert.EqualError(t, err, "validators: Please enter a valid email address")

	_, err = g.Charge(ctx, models.Charge{Method: models.PaymentPayPal})
	assert.EqualError(t, err, "validators: Please enter your PayPal email")
}

func TestRouterDispatchesByMethod(t *testing.T) {
	log, _ := test.NewNullLogger()
	r := NewRouter(map[models.PaymentMethod]Gateway{
		models.PaymentVisa:   NewCardGateway(0, nil, log),
		models.PaymentPayPal: NewPayPalGateway(0, log),
	})
	ctx := context.Background()

	receipt, err := r.Charge(ctx, models.Charge{Method: models.PaymentPayPal, PayPal: &models.PayPalDetails{Email: "me@pay.pal"}})
	require.NoError(t, err)
	assert.Equal(t, models.PaymentPayPal, receipt.Method)

	receipt, err = r.Charge(ctx, models.Charge{Method: models.PaymentVisa, Card: validCard})
	require.NoError(t, err)
	assert.Equal(t, models.PaymentVisa, receipt.Method)

	_, err = r.Charge(ctx, models.Charge{Method: "bitcoin"})
	assert.True(t, errors.Is(err, errs.ErrValidation))
}
