package auth

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"factura/internal/core/apperror"
	"factura/internal/core/entity"
	"factura/internal/core/id"
	"factura/pkg/logger"
)

// Service handles registration and login.
type Service struct {
	repo   Repository
	tokens *TokenManager
}

// NewService creates a new auth service.
func NewService(repo Repository, tokens *TokenManager) *Service {
	return &Service{repo: repo, tokens: tokens}
}

// Register creates a new user with a bcrypt-hashed password and
// returns it with an access token.
func (s *Service) Register(ctx context.Context, name, email, password string) (*User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	if len(password) < minPasswordLength {
		return nil, "", apperror.NewValidation("password must be at least 8 characters").
			WithDetail("field", "password")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", apperror.NewInternal(err)
	}

	u := &User{
		BaseEntity:   entity.NewBaseEntity(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := u.Validate(ctx); err != nil {
		return nil, "", err
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Issue(u)
	if err != nil {
		return nil, "", err
	}

	logger.Info(ctx, "user registered", "id", u.ID, "email", u.Email)
	return u, token, nil
}

// Login verifies credentials and returns the user with an access
// token. An unknown email and a wrong password are indistinguishable
// to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (*User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, "", apperror.NewUnauthorized("invalid email or password")
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, "", apperror.NewUnauthorized("invalid email or password")
	}

	token, err := s.tokens.Issue(u)
	if err != nil {
		return nil, "", err
	}

	logger.Info(ctx, "user logged in", "id", u.ID)
	return u, token, nil
}

// GetByID loads a user account.
func (s *Service) GetByID(ctx context.Context, userID id.ID) (*User, error) {
	return s.repo.GetByID(ctx, userID)
}
