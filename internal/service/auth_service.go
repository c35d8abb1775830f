package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"focusdo/internal/auth"
	apperrors "focusdo/internal/errors"
	"focusdo/internal/model"
	"focusdo/internal/repository"
)

const (
	bcryptCost = 10

	// Demo accounts share a fixed, published password.
	demoPassword     = "secret123"
	demoSeedAttempts = 5
)

// DemoCredentials is everything a trial client needs to start calling
// the API.
type DemoCredentials struct {
	Email       string
	Password    string
	AccessToken string
}

// AuthService handles registration, login and demo seeding.
type AuthService interface {
	Register(ctx context.Context, email, password string) (*model.User, error)
	Login(ctx context.Context, email, password string) (string, error)
	SeedDemo(ctx context.Context) (*DemoCredentials, error)
}

type authService struct {
	users       repository.UserRepository
	tokens      *auth.TokenService
	demoEnabled bool
}

// NewAuthService creates a new authentication service.
func NewAuthService(users repository.UserRepository, tokens *auth.TokenService, demoEnabled bool) AuthService {
	return &authService{
		users:       users,
		tokens:      tokens,
		demoEnabled: demoEnabled,
	}
}

// Register creates a new user with a hashed password. The email must be
// unused; the match is exact as stored.
func (s *authService) Register(ctx context.Context, email, password string) (*model.User, error) {
	existing, err := s.users.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, apperrors.ErrEmailTaken
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Login verifies credentials and issues a bearer token. Unknown email and
// wrong password return the same error.
func (s *authService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", apperrors.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", apperrors.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.Email)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return token, nil
}

// SeedDemo creates a throwaway user with a random email suffix and the
// fixed demo password, retrying a bounded number of times on collision.
func (s *authService) SeedDemo(ctx context.Context) (*DemoCredentials, error) {
	if !s.demoEnabled {
		return nil, apperrors.ErrDemoDisabled
	}

	var email string
	for attempt := 0; attempt < demoSeedAttempts; attempt++ {
		candidate := fmt.Sprintf("demo+%s@mail.com", randomHex(3))
		if _, err := s.users.FindByEmail(ctx, candidate); errors.Is(err, gorm.ErrRecordNotFound) {
			email = candidate
			break
		}
	}
	if email == "" {
		return nil, apperrors.ErrDemoSeedFailed
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user := &model.User{
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create demo user: %w", err)
	}

	token, err := s.tokens.Issue(user.Email)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &DemoCredentials{
		Email:       email,
		Password:    demoPassword,
		AccessToken: token,
	}, nil
}

func randomHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
