package shop

import (
	"context"

	"playbox/models"
)

const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

func (s *Service) Theme() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return themeName(s.dark)
}

func themeName(dark bool) string {
	if dark {
		return ThemeDark
	}
	return ThemeLight
}

// ToggleTheme flips between dark and light and persists the choice.
func (s *Service) ToggleTheme(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	theme := themeName(!s.dark)
	if err := s.store.SaveTheme(ctx, theme); err != nil {
		s.log.WithError(err).Error("Error saving theme preference")
		return themeName(s.dark), err
	}
	s.dark = !s.dark
	return theme, nil
}

// Payments lists the recorded card payments.
func (s *Service) Payments(ctx context.Context) []models.PaymentRecord {
	return s.store.LoadPayments(ctx)
}
