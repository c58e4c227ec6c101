package shop

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"playbox/models"
	"playbox/storage"
)

// saveCart persists next and installs it only when the write succeeds.
func (s *Service) saveCart(ctx context.Context, next models.Cart) error {
	m, err := storage.CartMutation(next)
	if err == nil {
		err = s.store.Apply(ctx, m)
	}
	if err != nil {
		s.log.WithError(err).Error("Error saving cart")
		return err
	}
	s.cart = next
	return nil
}

// AddToCart adds quantity units of p, summing with any existing line.
// A quantity below one counts as one. The selected colour picks the line image.
func (s *Service) AddToCart(ctx context.Context, p models.Product, quantity int, color string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loggedIn() {
		return ErrLoginRequired
	}
	if quantity < 1 {
		quantity = 1
	}
	next := s.cart.Clone()
	line := models.CartLine{
		ProductID:     p.ID,
		Name:          p.Name,
		Price:         p.Price,
		Quantity:      next[p.ID].Quantity + quantity,
		Image:         imageFor(p, color),
		SelectedColor: color,
	}
	next[p.ID] = line
	if err := s.saveCart(ctx, next); err != nil {
		return err
	}
	s.log.WithFields(logrus.Fields{"product_id": p.ID, "quantity": line.Quantity}).Debug("Cart line added")
	return nil
}

func imageFor(p models.Product, color string) string {
	for _, c := range p.Color {
		if c.ColorName == color && len(c.Images) > 0 {
			return c.Images[0]
		}
	}
	return p.PrimaryImage()
}

// RemoveFromCart drops the line for productID. Unknown ids are ignored.
func (s *Service) RemoveFromCart(ctx context.Context, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.cart[productID]; !ok {
		return nil
	}
	next := s.cart.Clone()
	delete(next, productID)
	return s.saveCart(ctx, next)
}

// UpdateCartItemQuantity sets the quantity of an existing line, never below one.
// Unknown ids are ignored.
func (s *Service) UpdateCartItemQuantity(ctx context.Context, productID string, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setQuantity(ctx, productID, func(int) int { return quantity })
}

func (s *Service) IncrementQuantity(ctx context.Context, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setQuantity(ctx, productID, func(q int) int { return q + 1 })
}

func (s *Service) DecrementQuantity(ctx context.Context, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setQuantity(ctx, productID, func(q int) int { return q - 1 })
}

func (s *Service) setQuantity(ctx context.Context, productID string, f func(int) int) error {
	line, ok := s.cart[productID]
	if !ok {
		return nil
	}
	q := f(line.Quantity)
	if q < 1 {
		q = 1
	}
	if q == line.Quantity {
		return nil
	}
	next := s.cart.Clone()
	line.Quantity = q
	next[productID] = line
	return s.saveCart(ctx, next)
}

// Cart returns a copy of the cart.
func (s *Service) Cart() models.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Clone()
}

func (s *Service) CartTotal() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Total()
}
