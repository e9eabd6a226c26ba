package service

import (
	"crypto/subtle"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/cpreston123/core-swipe-service-Care2Share/internal/config"
)

var ErrWrongCredentials = errors.New("incorrect username or password")

type AuthService struct {
	conf *config.AdminConfig
}

func NewAuthService(conf *config.AdminConfig) *AuthService {
	return &AuthService{
		conf: conf,
	}
}

// AuthenticateAdmin checks username and password against the configured admin account.
func (s *AuthService) AuthenticateAdmin(username, password string) error {
	if s.conf == nil || s.conf.PasswordHash == "" {
		return fmt.Errorf("admin account is not configured: %w", ErrWrongCredentials)
	}

	if subtle.ConstantTimeCompare([]byte(username), []byte(s.conf.Username)) != 1 {
		return ErrWrongCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(s.conf.PasswordHash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrWrongCredentials
		}

		return fmt.Errorf("bcrypt.CompareHashAndPassword -> %w", err)
	}

	return nil
}
