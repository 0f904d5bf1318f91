package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/olufinja/naijafind/internal/platform/httpx"
	"github.com/olufinja/naijafind/internal/shared"
	"github.com/olufinja/naijafind/internal/users"
)

// Service wraps authentication business rules.
type Service struct {
	users  users.Repository
	tokens *TokenService
}

// NewService constructs a new Service.
func NewService(repo users.Repository, tokens *TokenService) *Service {
	return &Service{users: repo, tokens: tokens}
}

// Register creates an account with a password and issues a token pair.
func (s *Service) Register(ctx context.Context, email, name, password string) (*users.User, *TokenPair, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, fmt.Errorf("auth: hash password: %w", err)
	}
	user, err := s.users.Create(ctx, users.User{
		Email:        email,
		Name:         strings.TrimSpace(name),
		UserType:     users.RoleUser,
		PasswordHash: string(hash),
	})
	if err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			return nil, nil, fmt.Errorf("%w: an account with this email already exists", httpx.ErrDuplicate)
		}
		return nil, nil, err
	}
	pair, err := s.tokens.GeneratePair(user.ID, user.Email, user.UserType)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// Authenticate validates email/password credentials and issues tokens.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*users.User, *TokenPair, error) {
	user, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, nil, shared.ErrInvalidCredentials
	}
	if user.PasswordHash == "" {
		return nil, nil, shared.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, nil, shared.ErrInvalidCredentials
	}
	pair, err := s.tokens.GeneratePair(user.ID, user.Email, user.UserType)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// Refresh validates a refresh token and issues a fresh pair. The account is
// re-read so role changes made since issuance take effect.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.tokens.Validate(refreshToken)
	if err != nil {
		return nil, httpx.ErrUnauthorized
	}
	user, err := s.users.Get(ctx, claims.UserID)
	if err != nil {
		return nil, httpx.ErrUnauthorized
	}
	return s.tokens.GeneratePair(user.ID, user.Email, user.UserType)
}
