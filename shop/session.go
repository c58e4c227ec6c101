package shop

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"playbox/errs"
	"playbox/models"
	"playbox/storage"
	"playbox/validators"
)

// Login stores the session user. Only a bcrypt hash of the password is kept.
func (s *Service) Login(ctx context.Context, creds models.Credentials) (*models.User, error) {
	if err := validators.ValidateCredentials(&creds); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	hash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), s.cost)
	if err != nil {
		return nil, errs.Wrap("shop.Login", errs.KindValidation, err)
	}
	u := &models.User{Email: creds.Email, PasswordHash: string(hash), IsLoggedIn: true}
	if err := s.store.SaveUser(ctx, u); err != nil {
		s.log.WithError(err).Error("Error during login")
		return nil, err
	}
	s.user = u
	return u.Clone(), nil
}

// Logout drops the session user and the cart in one write.
func (s *Service) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Apply(ctx, storage.RemoveMutation(storage.UserKey), storage.RemoveCartMutation()); err != nil {
		s.log.WithError(err).Error("Error during logout")
		return err
	}
	s.user = nil
	s.cart = models.Cart{}
	return nil
}

// User returns a copy of the session user, or nil.
func (s *Service) User() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user.Clone()
}

func (s *Service) IsLoggedIn() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loggedIn()
}

func (s *Service) loggedIn() bool {
	return s.user != nil && s.user.IsLoggedIn
}
