package shop

import (
	"context"

	"github.com/sirupsen/logrus"

	"playbox/models"
	"playbox/storage"
)

func cloneOrders(in []models.Order) []models.Order {
	out := make([]models.Order, len(in))
	for i, o := range in {
		out[i] = o.Clone()
	}
	return out
}

// Orders returns every order, cancelled ones included, oldest first.
func (s *Service) Orders() []models.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneOrders(s.orders)
}

// ActiveOrders excludes cancelled orders.
func (s *Service) ActiveOrders() []models.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Order{}
	for _, o := range s.orders {
		if o.Status != models.OrderCancelled {
			out = append(out, o.Clone())
		}
	}
	return out
}

func (s *Service) OrdersByStatus(status models.OrderStatus) []models.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Order{}
	for _, o := range s.orders {
		if o.Status == status {
			out = append(out, o.Clone())
		}
	}
	return out
}

// RecentOrders returns at most n active orders, newest first.
func (s *Service) RecentOrders(n int) []models.Order {
	if n <= 0 {
		return []models.Order{}
	}
	active := s.ActiveOrders()
	out := make([]models.Order, 0, n)
	for i := len(active) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, active[i])
	}
	return out
}

// Stats counts pending and delivered orders; Total counts all active orders.
func (s *Service) Stats() models.OrderStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	var st models.OrderStats
	for _, o := range s.orders {
		switch o.Status {
		case models.OrderPending:
			st.Pending++
		case models.OrderDelivered:
			st.Delivered++
		}
		if o.Status != models.OrderCancelled {
			st.Total++
		}
	}
	return st
}

// CancelOrder marks a pending order cancelled. The order is kept.
func (s *Service) CancelOrder(ctx context.Context, id string) (models.Order, error) {
	return s.transition(ctx, id, models.OrderCancelled, ErrOrderNotCancellable)
}

// MarkDelivered moves a pending order to delivered.
func (s *Service) MarkDelivered(ctx context.Context, id string) (models.Order, error) {
	return s.transition(ctx, id, models.OrderDelivered, ErrOrderNotPending)
}

func (s *Service) transition(ctx context.Context, id string, to models.OrderStatus, notPending error) (models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, o := range s.orders {
		if o.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return models.Order{}, ErrOrderNotFound
	}
	if s.orders[idx].Status != models.OrderPending {
		return models.Order{}, notPending
	}

	next := cloneOrders(s.orders)
	next[idx].Status = to
	m, err := storage.OrdersMutation(next)
	if err == nil {
		err = s.store.Apply(ctx, m)
	}
	if err != nil {
		s.log.WithError(err).WithField("order_id", id).Error("Error saving orders")
		return models.Order{}, err
	}
	s.orders = next
	s.log.WithFields(logrus.Fields{"order_id": id, "status": to}).Info("Order updated")
	return next[idx].Clone(), nil
}
