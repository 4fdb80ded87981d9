package usecases

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/avinashdhn/mechmap/internal/core/domain"
	"github.com/avinashdhn/mechmap/internal/core/ports"
	"github.com/avinashdhn/mechmap/internal/pkg/token"
)

const bcryptCost = 12

// AuthService handles registration and login.
type AuthService struct {
	users  ports.UserRepository
	tokens *token.Manager
}

// NewAuthService creates a new AuthService.
func NewAuthService(users ports.UserRepository, tokens *token.Manager) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// RegisterInput is the registration payload.
type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Mobile   string `json:"mobile"`
	Role     string `json:"role"`
}

// Register creates a user account and returns a signed access token.
// A taken email reports domain.ErrConflict.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (string, *domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if in.Name == "" || email == "" || in.Password == "" {
		return "", nil, fmt.Errorf("%w: name, email and password are required", domain.ErrValidation)
	}

	if existing, err := s.users.GetByEmail(ctx, email); err != nil && !errors.Is(err, domain.ErrNotFound) {
		return "", nil, fmt.Errorf("lookup email: %w", err)
	} else if existing != nil {
		return "", nil, domain.ErrConflict
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return "", nil, fmt.Errorf("hash password: %w", err)
	}

	role := in.Role
	if role == "" {
		role = "provider"
	}

	user := &domain.User{
		Name:         in.Name,
		Email:        email,
		PasswordHash: string(hash),
		Mobile:       in.Mobile,
		Role:         role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return "", nil, fmt.Errorf("create user: %w", err)
	}

	tok, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return "", nil, err
	}
	return tok, user, nil
}

// Login verifies credentials and returns a signed access token.
// Unknown email and wrong password both report domain.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("lookup email: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	tok, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return "", nil, err
	}
	return tok, user, nil
}
