package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"focusdo/internal/auth"
	apperrors "focusdo/internal/errors"
	"focusdo/internal/model"
)

// MockUserRepository is a mock implementation of repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func newTestTokenService(t *testing.T) *auth.TokenService {
	t.Helper()
	svc, err := auth.NewTokenService("test-secret", "HS256", 360)
	require.NoError(t, err)
	return svc
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name          string
		email         string
		password      string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:     "successful registration",
			email:    "test@example.com",
			password: "password123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "test@example.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:     "email already registered",
			email:    "existing@example.com",
			password: "password123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "existing@example.com").Return(&model.User{Email: "existing@example.com"}, nil)
			},
			expectedError: apperrors.ErrEmailTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			service := NewAuthService(mockRepo, newTestTokenService(t), true)
			user, err := service.Register(context.Background(), tt.email, tt.password)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, user)
			} else {
				require.NoError(t, err)
				require.NotNil(t, user)
				assert.Equal(t, tt.email, user.Email)
				assert.NotEqual(t, tt.password, user.PasswordHash)
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(tt.password)))
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcryptCost)
	stored := &model.User{ID: 1, Email: "test@example.com", PasswordHash: string(hashed)}

	tests := []struct {
		name          string
		email         string
		password      string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:     "successful login",
			email:    "test@example.com",
			password: "password123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "test@example.com").Return(stored, nil)
			},
		},
		{
			name:     "unknown email",
			email:    "nobody@example.com",
			password: "password123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "nobody@example.com").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
		{
			name:     "wrong password",
			email:    "test@example.com",
			password: "wrong-password",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "test@example.com").Return(stored, nil)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
	}

	tokens := newTestTokenService(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			service := NewAuthService(mockRepo, tokens, true)
			token, err := service.Login(context.Background(), tt.email, tt.password)

			if tt.expectedError != nil {
				// unknown email and wrong password must be indistinguishable
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Empty(t, token)
			} else {
				require.NoError(t, err)
				subject, err := tokens.Subject(token)
				require.NoError(t, err)
				assert.Equal(t, tt.email, subject)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_SeedDemo(t *testing.T) {
	t.Run("disabled by configuration", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := NewAuthService(mockRepo, newTestTokenService(t), false)

		creds, err := service.SeedDemo(context.Background())

		assert.ErrorIs(t, err, apperrors.ErrDemoDisabled)
		assert.Nil(t, creds)
		mockRepo.AssertNotCalled(t, "Create")
	})

	t.Run("creates demo user with token", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByEmail", mock.Anything, mock.Anything).Return(nil, gorm.ErrRecordNotFound)
		mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)

		tokens := newTestTokenService(t)
		service := NewAuthService(mockRepo, tokens, true)
		creds, err := service.SeedDemo(context.Background())

		require.NoError(t, err)
		require.NotNil(t, creds)
		assert.True(t, strings.HasPrefix(creds.Email, "demo+"))
		assert.True(t, strings.HasSuffix(creds.Email, "@mail.com"))
		assert.Equal(t, demoPassword, creds.Password)

		subject, err := tokens.Subject(creds.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, creds.Email, subject)

		mockRepo.AssertExpectations(t)
	})

	t.Run("fails after bounded collision attempts", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByEmail", mock.Anything, mock.Anything).Return(&model.User{}, nil)

		service := NewAuthService(mockRepo, newTestTokenService(t), true)
		creds, err := service.SeedDemo(context.Background())

		assert.ErrorIs(t, err, apperrors.ErrDemoSeedFailed)
		assert.Nil(t, creds)
		mockRepo.AssertNumberOfCalls(t, "FindByEmail", demoSeedAttempts)
		mockRepo.AssertNotCalled(t, "Create")
	})
}
