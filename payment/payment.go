// Package payment holds the mock card and PayPal gateways used at checkout.
package payment

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"playbox/errs"
	"playbox/models"
	"playbox/storage"
	"playbox/validators"
)

// DefaultDelay is the simulated processing latency.
const DefaultDelay = 2 * time.Second

// Gateway collects a charge and returns its receipt.
type Gateway interface {
	Charge(ctx context.Context, c models.Charge) (models.Receipt, error)
}

// transactionSuffix returns nine alphanumerics drawn from a random uuid.
func transactionSuffix() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
}

// wait sleeps for d unless ctx ends first.
func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		if err := ctx.Err(); err != nil {
			return errs.Wrap("payment", errs.KindNetwork, err)
		}
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return errs.Wrap("payment", errs.KindNetwork, ctx.Err())
	case <-t.C:
		return nil
	}
}

// CardGateway simulates a card processor and records each payment.
type CardGateway struct {
	delay   time.Duration
	records *storage.Persistence
	log     logrus.FieldLogger
	now     func() time.Time
}

func NewCardGateway(delay time.Duration, records *storage.Persistence, log logrus.FieldLogger) *CardGateway {
	return &CardGateway{delay: delay, records: records, log: log, now: time.Now}
}

func (g *CardGateway) Charge(ctx context.Context, c models.Charge) (models.Receipt, error) {
	log := g.log.WithFields(logrus.Fields{"method": models.PaymentVisa, "amount": c.Amount.StringFixed(2)})
	if err := validators.ValidateCard(c.Card); err != nil {
		log.WithError(err).Warn("Card rejected")
		return models.Receipt{}, err
	}
	if err := wait(ctx, g.delay); err != nil {
		return models.Receipt{}, err
	}

	number := strings.ReplaceAll(c.Card.CardNumber, " ", "")
	rec := models.PaymentRecord{
		ID:            uuid.NewString(),
		TransactionID: "VISA-" + strings.ToUpper(transactionSuffix()),
		Amount:        c.Amount,
		CardNumber:    number[len(number)-4:],
		Status:        "success",
		Date:          g.now().UTC(),
	}
	if g.records != nil {
		if err := g.records.AppendPayment(ctx, rec); err != nil {
			log.WithError(err).Error("Payment processing error")
			return models.Receipt{}, errs.Wrap("payment.card", errs.KindState, err)
		}
	}
	log.WithField("transaction_id", rec.TransactionID).Info("Card payment processed")
	return models.Receipt{TransactionID: rec.TransactionID, Method: models.PaymentVisa, Amount: c.Amount}, nil
}

// PayPalGateway simulates a PayPal approval.
type PayPalGateway struct {
	delay time.Duration
	log   logrus.FieldLogger
}

func NewPayPalGateway(delay time.Duration, log logrus.FieldLogger) *PayPalGateway {
	return &PayPalGateway{delay: delay, log: log}
}

func (g *PayPalGateway) Charge(ctx context.Context, c models.Charge) (models.Receipt, error) {
	if err := validators.ValidatePayPal(c.PayPal); err != nil {
		return models.Receipt{}, err
	}
	if err := wait(ctx, g.delay); err != nil {
		return models.Receipt{}, err
	}
	id := "PP-" + strings.ToLower(transactionSuffix())
	g.log.WithFields(logrus.Fields{
		"method":         models.PaymentPayPal,
		"transaction_id": id,
		"email":          c.PayPal.Email,
	}).Info("PayPal payment processed")
	return models.Receipt{TransactionID: id, Method: models.PaymentPayPal, Amount: c.Amount}, nil
}

// Router sends each charge to the gateway registered for its method.
type Router struct {
	gateways map[models.PaymentMethod]Gateway
}

func NewRouter(gateways map[models.PaymentMethod]Gateway) *Router {
	return &Router{gateways: gateways}
}

func (r *Router) Charge(ctx context.Context, c models.Charge) (models.Receipt, error) {
	g, ok := r.gateways[c.Method]
	if !ok {
		return models.Receipt{}, errs.Validation("payment", "unsupported payment method %q", c.Method)
	}
	return g.Charge(ctx, c)
}
