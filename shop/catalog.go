package shop

import (
	"context"
	"strings"

	"github.com/gosimple/slug"

	"playbox/models"
)

const (
	CategoryConsoles    = "Consoles"
	CategoryAccessories = "Accessories"
	CategoryOther       = "Other"
)

// NormalizeCategory folds the spellings the remote API uses onto the
// storefront's category names.
func NormalizeCategory(c string) string {
	switch strings.ToLower(strings.TrimSpace(c)) {
	case "console", "consoles":
		return CategoryConsoles
	case "accessory", "accessories":
		return CategoryAccessories
	case "":
		return CategoryOther
	}
	return c
}

// RefreshProducts replaces the catalogue with the remote product list.
// When the fetch fails the cached products are kept and the error returned.
func (s *Service) RefreshProducts(ctx context.Context) ([]models.Product, error) {
	fetched, err := s.catalog.GetAllProducts(ctx)
	if err != nil {
		s.log.WithError(err).Error("Error fetching products")
		return nil, err
	}
	products := make([]models.Product, len(fetched))
	for i, p := range fetched {
		p.Category = NormalizeCategory(p.Category)
		products[i] = p
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if len(products) > 0 {
		if err := s.store.SaveProducts(ctx, products); err != nil {
			s.log.WithError(err).Error("Error saving products")
			return nil, err
		}
	}
	s.products = products
	return cloneProducts(products), nil
}

func cloneProducts(in []models.Product) []models.Product {
	out := make([]models.Product, len(in))
	copy(out, in)
	return out
}

func (s *Service) Products() []models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneProducts(s.products)
}

// Categories lists Consoles and Accessories first, then the remaining
// categories in first-seen order.
func (s *Service) Categories() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	cats := []string{CategoryConsoles, CategoryAccessories}
	seen := map[string]bool{CategoryConsoles: true, CategoryAccessories: true}
	for _, p := range s.products {
		if !seen[p.Category] {
			seen[p.Category] = true
			cats = append(cats, p.Category)
		}
	}
	if len(s.products) == 0 {
		cats = append(cats, CategoryOther)
	}
	return cats
}

// ProductsByCategory matches category names case-insensitively and by slug,
// so "game-pads" selects "Game Pads".
func (s *Service) ProductsByCategory(category string) []models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []models.Product{}
	want := slug.Make(category)
	if want == "" {
		return out
	}
	for _, p := range s.products {
		if strings.EqualFold(p.Category, category) || slug.Make(p.Category) == want {
			out = append(out, p)
		}
	}
	return out
}

// Search matches query against name, description and category. A blank
// query matches nothing.
func (s *Service) Search(query string) []models.Product {
	out := []models.Product{}
	if strings.TrimSpace(query) == "" {
		return out
	}
	q := strings.ToLower(query)

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.products {
		if strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Description), q) ||
			strings.Contains(strings.ToLower(p.Category), q) {
			p.Image = p.PrimaryImage()
			out = append(out, p)
		}
	}
	return out
}

func (s *Service) Product(id string) (models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.products {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Product{}, ErrProductNotFound
}
