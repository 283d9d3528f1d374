package services

import (
	"context"
	"strings"

	"github.com/arens/quizdeck/internal/auth"
	"github.com/arens/quizdeck/internal/errors"
	"github.com/arens/quizdeck/internal/logger"
	"github.com/arens/quizdeck/internal/models"
	"github.com/arens/quizdeck/internal/repository"
)

// AuthService handles account registration, login and identity lookup
type AuthService interface {
	Register(ctx context.Context, username, password string) (*models.User, string, error)
	Login(ctx context.Context, username, password string) (*models.User, string, error)
	Me(ctx context.Context, userID int64) (*models.User, error)
}

type authService struct {
	users  repository.UserRepository
	tokens *auth.Tokens
}

// NewAuthService creates a new AuthService
func NewAuthService(users repository.UserRepository, tokens *auth.Tokens) AuthService {
	return &authService{users: users, tokens: tokens}
}

func (s *authService) Register(ctx context.Context, username, password string) (*models.User, string, error) {
	log := logger.FromContext(ctx)
	username = strings.TrimSpace(username)
	log.Debug("registering user: username=%s", username)

	if len(username) < 3 {
		return nil, "", errors.NewValidationError("username", "must be at least 3 characters")
	}
	if len(password) < 6 {
		return nil, "", errors.NewValidationError("password", "must be at least 6 characters")
	}

	existing, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		log.Error("failed to check username: %v", err)
		return nil, "", errors.NewInternalError(err)
	}
	if existing != nil {
		return nil, "", errors.NewConflictError("username already taken")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		log.Error("failed to hash password: %v", err)
		return nil, "", errors.NewInternalError(err)
	}

	id, err := s.users.Insert(ctx, username, hash)
	if err != nil {
		log.Error("failed to insert user: %v", err)
		return nil, "", errors.NewInternalError(err)
	}

	user, err := s.users.Get(ctx, id)
	if err != nil || user == nil {
		log.Error("failed to load new user: %v", err)
		return nil, "", errors.NewInternalError(err)
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		log.Error("failed to issue token: %v", err)
		return nil, "", errors.NewInternalError(err)
	}

	log.Info("user registered: id=%d, username=%s", user.ID, user.Username)
	return user, token, nil
}

func (s *authService) Login(ctx context.Context, username, password string) (*models.User, string, error) {
	log := logger.FromContext(ctx)
	username = strings.TrimSpace(username)
	log.Debug("login attempt: username=%s", username)

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		log.Error("failed to load user: %v", err)
		return nil, "", errors.NewInternalError(err)
	}
	if user == nil || !auth.CheckPassword(user.PasswordHash, password) {
		log.Debug("login rejected: username=%s", username)
		return nil, "", errors.NewUnauthorizedError("invalid username or password")
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		log.Error("failed to issue token: %v", err)
		return nil, "", errors.NewInternalError(err)
	}

	log.Info("user logged in: id=%d, username=%s", user.ID, user.Username)
	return user, token, nil
}

func (s *authService) Me(ctx context.Context, userID int64) (*models.User, error) {
	log := logger.FromContext(ctx)
	log.Debug("loading current user: id=%d", userID)

	user, err := s.users.Get(ctx, userID)
	if err != nil {
		log.Error("failed to load user: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if user == nil {
		return nil, errors.NewNotFoundError("user", userID)
	}
	return user, nil
}
