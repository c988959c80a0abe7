package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/learnhub/internal/app/models"
	"github.com/yigit/learnhub/internal/app/models/dto"
	"github.com/yigit/learnhub/internal/app/repositories"
	"github.com/yigit/learnhub/internal/pkg/apperrors"
	"github.com/yigit/learnhub/internal/pkg/auth"
	"github.com/yigit/learnhub/internal/pkg/filestorage"
)

// IUserService defines profile operations
type IUserService interface {
	GetProfile(ctx context.Context, userID int64) (*models.User, error)
	UpdateProfile(ctx context.Context, userID int64, form *dto.ProfileForm, picture *multipart.FileHeader) (*dto.Session, error)
}

// UserService handles the signed-in user's profile
type UserService struct {
	userRepo repositories.IUserRepository
	storage  filestorage.FileStorage
	sessions *auth.SessionManager
	logger   zerolog.Logger
}

// NewUserService creates a new UserService
func NewUserService(
	userRepo repositories.IUserRepository,
	storage filestorage.FileStorage,
	sessions *auth.SessionManager,
	logger zerolog.Logger,
) *UserService {
	return &UserService{
		userRepo: userRepo,
		storage:  storage,
		sessions: sessions,
		logger:   logger,
	}
}

// GetProfile returns the user behind a session
func (s *UserService) GetProfile(ctx context.Context, userID int64) (*models.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateProfile changes name, email and optionally the profile picture,
// then reissues the session so the displayed name follows the change.
func (s *UserService) UpdateProfile(ctx context.Context, userID int64, form *dto.ProfileForm, picture *multipart.FileHeader) (*dto.Session, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	pic, err := storeImage(s.storage, picture)
	if err != nil {
		return nil, err
	}
	if pic != nil {
		user.ProfilePic = pic
	}

	user.Name = strings.TrimSpace(form.Name)
	user.Email = normalizeEmail(form.Email)

	if err := s.userRepo.UpdateProfile(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			return nil, apperrors.NewCustomError(apperrors.ErrEmailAlreadyExists, "That email is already used by another account.")
		}
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	token, expiresAt, err := s.sessions.Issue(user.ID, user.Name, user.Role.String())
	if err != nil {
		return nil, fmt.Errorf("failed to issue session: %w", err)
	}

	s.logger.Info().Int64("userID", user.ID).Msg("Profile updated")
	return &dto.Session{User: user, Token: token, ExpiresAt: expiresAt}, nil
}
