package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/learnhub/internal/app/models"
	"github.com/yigit/learnhub/internal/app/models/dto"
	"github.com/yigit/learnhub/internal/app/repositories"
	"github.com/yigit/learnhub/internal/pkg/apperrors"
	"github.com/yigit/learnhub/internal/pkg/auth"
	"github.com/yigit/learnhub/internal/pkg/throttle"
	"golang.org/x/crypto/bcrypt"
)

// IAuthService defines sign-up and sign-in
type IAuthService interface {
	Register(ctx context.Context, form *dto.SignupForm) (*models.User, error)
	Login(ctx context.Context, form *dto.LoginForm, clientKey string) (*dto.Session, error)
}

// AuthService handles authentication operations
type AuthService struct {
	userRepo repositories.IUserRepository
	sessions *auth.SessionManager
	throttle throttle.LoginThrottle
	logger   zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo repositories.IUserRepository,
	sessions *auth.SessionManager,
	loginThrottle throttle.LoginThrottle,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		sessions: sessions,
		throttle: loginThrottle,
		logger:   logger,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

const msgPasswordTooLong = "Password must be at most 72 bytes long."

// Register creates an account with a hashed password. The unique email
// constraint decides duplicates, so two concurrent sign-ups cannot both win.
func (s *AuthService) Register(ctx context.Context, form *dto.SignupForm) (*models.User, error) {
	if form.Password != form.ConfirmPassword {
		return nil, apperrors.NewValidationError("Passwords do not match!")
	}

	role, ok := models.ParseRole(form.Role)
	if !ok {
		return nil, apperrors.NewValidationError("Please choose either the student or the instructor role.")
	}

	hash, err := auth.HashPassword(form.Password)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, apperrors.NewValidationError(msgPasswordTooLong)
		}
		s.logger.Error().Err(err).Msg("Failed to hash password")
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:     strings.TrimSpace(form.Name),
		Email:    normalizeEmail(form.Email),
		Password: hash,
		Role:     role,
	}

	id, err := s.userRepo.CreateUser(ctx, user)
	if err != nil {
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			return nil, apperrors.NewCustomError(apperrors.ErrEmailAlreadyExists, "Email already registered!")
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	user.ID = id

	s.logger.Info().Int64("userID", id).Str("role", role.String()).Msg("User registered")
	return user, nil
}

// Login verifies credentials and issues a session token. clientKey
// identifies the caller for throttling, usually the client IP.
func (s *AuthService) Login(ctx context.Context, form *dto.LoginForm, clientKey string) (*dto.Session, error) {
	if locked, _ := s.throttle.Locked(ctx, clientKey); locked {
		return nil, apperrors.NewCustomError(apperrors.ErrTooManyAttempts,
			"Too many failed login attempts. Please try again later.")
	}

	invalid := apperrors.NewCustomError(apperrors.ErrInvalidCredentials, "Invalid email or password")

	user, err := s.userRepo.GetUserByEmail(ctx, normalizeEmail(form.Email))
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			s.throttle.RecordFailure(ctx, clientKey)
			return nil, invalid
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !auth.CheckPassword(user.Password, form.Password) {
		s.throttle.RecordFailure(ctx, clientKey)
		s.logger.Info().Int64("userID", user.ID).Msg("Login failed: wrong password")
		return nil, invalid
	}

	s.throttle.Reset(ctx, clientKey)
	return s.issue(user)
}

func (s *AuthService) issue(user *models.User) (*dto.Session, error) {
	token, expiresAt, err := s.sessions.Issue(user.ID, user.Name, user.Role.String())
	if err != nil {
		return nil, fmt.Errorf("failed to issue session: %w", err)
	}
	return &dto.Session{User: user, Token: token, ExpiresAt: expiresAt}, nil
}
