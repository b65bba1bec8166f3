// Package auth registers accounts and issues bearer tokens.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"bookcatalog/internal/platform/apperr"
	"bookcatalog/internal/platform/crypto"
	"bookcatalog/internal/user"
)

var ErrInvalidCredentials = apperr.New(apperr.ErrUnauthorized, "Invalid credentials")

// Result is returned by Register and Login.
type Result struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

type Service struct {
	secret string
	ttl    time.Duration
	users  *user.Service
}

func NewService(secret string, ttl time.Duration, users *user.Service) *Service {
	return &Service{secret: secret, ttl: ttl, users: users}
}

func (s *Service) Register(ctx context.Context, name, email, password string) (Result, error) {
	hash, err := crypto.HashPassword(password)
	if err != nil {
		return Result{}, fmt.Errorf("hash password: %w", err)
	}
	u, err := s.users.Register(ctx, name, email, hash)
	if err != nil {
		return Result{}, err
	}
	return s.issue(u)
}

func (s *Service) Login(ctx context.Context, email, password string) (Result, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return Result{}, ErrInvalidCredentials
		}
		return Result{}, err
	}
	if !crypto.VerifyPassword(u.PasswordHash, password) {
		return Result{}, ErrInvalidCredentials
	}
	return s.issue(u)
}

func (s *Service) issue(u user.User) (Result, error) {
	token, _, err := crypto.GenerateToken(s.secret, strconv.FormatInt(u.ID, 10), u.Email, s.ttl)
	if err != nil {
		return Result{}, fmt.Errorf("sign token: %w", err)
	}
	return Result{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		AccessToken: token,
		ExpiresIn:   int(s.ttl.Seconds()),
	}, nil
}
