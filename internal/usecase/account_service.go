package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cinephile-dev/cinephile/internal/auth"
	"github.com/cinephile-dev/cinephile/internal/domain/model"
	"github.com/cinephile-dev/cinephile/internal/domain/repository"
)

var (
	// ErrInvalidCredentials covers both unknown email and wrong
	// password; login never reveals which check failed.
	ErrInvalidCredentials = errors.New("incorrect email or password")

	// ErrUserDisabled is returned for disabled accounts.
	ErrUserDisabled = errors.New("inactive user")
)

// AccountService defines registration, login, and per-user catalog
// interactions (watch history and favorites).
type AccountService interface {
	// Register creates a new account. Returns
	// repository.ErrEmailTaken when the email already has one.
	Register(ctx context.Context, input model.UserCreate) (*model.User, error)

	// Login validates credentials and returns a signed bearer token.
	Login(ctx context.Context, email, password string) (string, error)

	// GetByEmail loads a user; used to resolve token subjects.
	GetByEmail(ctx context.Context, email string) (*model.User, error)

	// AddHistory records that the user watched the video now.
	AddHistory(ctx context.Context, userID, videoID string) error

	// GetHistory returns watched videos, most recent first.
	GetHistory(ctx context.Context, userID string, limit int) ([]model.WatchedVideo, error)

	// GetFavorites returns all favorited videos.
	GetFavorites(ctx context.Context, userID string) ([]model.Video, error)

	// ToggleFavorite flips favorite state; true means now favorited.
	ToggleFavorite(ctx context.Context, userID, videoID string) (bool, error)
}

type accountService struct {
	users  repository.UserRepository
	tokens *auth.TokenManager
}

// NewAccountService creates an AccountService.
func NewAccountService(users repository.UserRepository, tokens *auth.TokenManager) AccountService {
	return &accountService{users: users, tokens: tokens}
}

func (s *accountService) Register(ctx context.Context, input model.UserCreate) (*model.User, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	hashed, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Email:          input.Email,
		DisplayName:    input.DisplayName,
		HashedPassword: hashed,
		Disabled:       false,
		CreatedAt:      time.Now().UTC(),
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *accountService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if !auth.VerifyPassword(password, user.HashedPassword) {
		return "", ErrInvalidCredentials
	}
	if user.Disabled {
		return "", ErrUserDisabled
	}

	token, err := s.tokens.Issue(user.Email)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return token, nil
}

func (s *accountService) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.users.GetByEmail(ctx, email)
}

func (s *accountService) AddHistory(ctx context.Context, userID, videoID string) error {
	return s.users.AddHistory(ctx, userID, videoID)
}

func (s *accountService) GetHistory(ctx context.Context, userID string, limit int) ([]model.WatchedVideo, error) {
	return s.users.GetHistory(ctx, userID, limit)
}

func (s *accountService) GetFavorites(ctx context.Context, userID string) ([]model.Video, error) {
	return s.users.GetFavorites(ctx, userID)
}

func (s *accountService) ToggleFavorite(ctx context.Context, userID, videoID string) (bool, error) {
	return s.users.ToggleFavorite(ctx, userID, videoID)
}
