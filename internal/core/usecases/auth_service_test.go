package usecases_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/avinashdhn/mechmap/internal/core/domain"
	"github.com/avinashdhn/mechmap/internal/core/usecases"
	"github.com/avinashdhn/mechmap/internal/pkg/token"
)

// --- Mock UserRepository ---

type mockUserRepo struct {
	createFn     func(ctx context.Context, u *domain.User) error
	getByEmailFn func(ctx context.Context, email string) (*domain.User, error)
	getByIDFn    func(ctx context.Context, id string) (*domain.User, error)
}

func (m *mockUserRepo) Create(ctx context.Context, u *domain.User) error {
	if m.createFn != nil {
		return m.createFn(ctx, u)
	}
	return nil
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.getByEmailFn != nil {
		return m.getByEmailFn(ctx, email)
	}
	return nil, domain.ErrNotFound
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func testTokens() *token.Manager {
	return token.NewManager("test-secret", 24*time.Hour)
}

// --- Tests ---

func TestRegister_Success(t *testing.T) {
	var created *domain.User
	users := &mockUserRepo{
		createFn: func(ctx context.Context, u *domain.User) error {
			u.ID = "u-1"
			created = u
			return nil
		},
	}
	svc := usecases.NewAuthService(users, testTokens())

	tok, user, err := svc.Register(context.Background(), usecases.RegisterInput{
		Name: "Ravi", Email: "Ravi@Example.com", Password: "hunter2", Mobile: "9999999999",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tok == "" {
		t.Error("expected a token")
	}
	if user.Role != "provider" {
		t.Errorf("role = %q, want default provider", user.Role)
	}
	if created.Email != "ravi@example.com" {
		t.Errorf("email = %q, want lowercased", created.Email)
	}
	if created.PasswordHash == "hunter2" || created.PasswordHash == "" {
		t.Error("password stored unhashed")
	}
}

func TestRegister_EmailTaken(t *testing.T) {
	users := &mockUserRepo{
		getByEmailFn: func(ctx context.Context, email string) (*domain.User, error) {
			return &domain.User{ID: "u-1", Email: email}, nil
		},
	}
	svc := usecases.NewAuthService(users, testTokens())

	_, _, err := svc.Register(context.Background(), usecases.RegisterInput{
		Name: "Ravi", Email: "ravi@example.com", Password: "hunter2",
	})
	if !errors.Is(err, domain.ErrConflict) {
		t.Errorf("err = %v, want ErrConflict", err)
	}
}

func TestRegister_MissingFields(t *testing.T) {
	svc := usecases.NewAuthService(&mockUserRepo{}, testTokens())
	if _, _, err := svc.Register(context.Background(), usecases.RegisterInput{Email: "x@y.z"}); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("err = %v, want ErrValidation for missing name/password", err)
	}
}

func TestLogin_Success(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	users := &mockUserRepo{
		getByEmailFn: func(ctx context.Context, email string) (*domain.User, error) {
			return &domain.User{ID: "u-1", Email: email, Role: "provider", PasswordHash: string(hash)}, nil
		},
	}
	svc := usecases.NewAuthService(users, testTokens())

	tok, user, err := svc.Login(context.Background(), "ravi@example.com", "hunter2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tok == "" || user.ID != "u-1" {
		t.Errorf("got token %q user %+v", tok, user)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	users := &mockUserRepo{
		getByEmailFn: func(ctx context.Context, email string) (*domain.User, error) {
			return &domain.User{ID: "u-1", PasswordHash: string(hash)}, nil
		},
	}
	svc := usecases.NewAuthService(users, testTokens())

	if _, _, err := svc.Login(context.Background(), "ravi@example.com", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc := usecases.NewAuthService(&mockUserRepo{}, testTokens())
	if _, _, err := svc.Login(context.Background(), "nobody@example.com", "pw"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("err = %v, want ErrInvalidCredentials", err)
	}
}
