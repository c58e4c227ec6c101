package shop

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"playbox/errs"
	"playbox/metrics"
	"playbox/models"
	"playbox/storage"
)

// Checkout charges the cart total and turns the cart into a pending order.
// The new order list and the cart removal are written in one batch; memory
// changes only after that write succeeds.
func (s *Service) Checkout(ctx context.Context, req models.PaymentRequest) (models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	method := string(req.Method)
	if len(s.cart) == 0 {
		metrics.RecordCheckout(method, "empty")
		return models.Order{}, ErrEmptyCart
	}
	total := s.cart.Total()
	log := s.log.WithFields(logrus.Fields{"method": method, "amount": total.StringFixed(2)})

	receipt, err := s.gateway.Charge(ctx, models.Charge{
		Amount: total,
		Method: req.Method,
		Card:   req.Card,
		PayPal: req.PayPal,
	})
	if err != nil {
		metrics.RecordCheckout(method, "payment_failed")
		log.WithError(err).Warn("Payment failed")
		return models.Order{}, fmt.Errorf("%w: %w", ErrPaymentFailed, err)
	}

	order := models.Order{
		ID:            receipt.TransactionID,
		Date:          s.now().UTC(),
		Status:        models.OrderPending,
		Items:         s.cart.Lines(),
		TotalAmount:   total,
		PaymentMethod: req.Method,
		PaymentID:     receipt.TransactionID,
	}
	orders := append(cloneOrders(s.orders), order)

	ordersMut, err := storage.OrdersMutation(orders)
	if err == nil {
		err = s.store.Apply(ctx, ordersMut, storage.RemoveCartMutation())
	}
	if err != nil {
		metrics.RecordCheckout(method, "persist_failed")
		log.WithError(err).WithField("transaction_id", receipt.TransactionID).Error("Payment collected but order could not be saved")
		return models.Order{}, &errs.Error{
			Op:      "shop.Checkout",
			Kind:    errs.KindState,
			Message: "payment " + receipt.TransactionID + " collected but the order could not be saved",
			Err:     err,
		}
	}

	s.orders = orders
	s.cart = models.Cart{}
	metrics.RecordCheckout(method, "success")
	log.WithField("order_id", order.ID).Info("Order placed")
	return order.Clone(), nil
}
