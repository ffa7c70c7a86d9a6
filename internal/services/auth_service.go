package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"devurai/internal/models"
	"devurai/internal/repositories"

	"golang.org/x/crypto/bcrypt"
)

// dummyHash is compared against when the name is unknown, so a failed
// lookup costs the same bcrypt work as a wrong password.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("dummy-password"), bcrypt.DefaultCost)

// AuthService handles credential checks and the login/logout lifecycle.
type AuthService struct {
	userRepo repositories.UserRepository
	tokens   *TokenService
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, tokens *TokenService) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

// Register creates a user and issues its first auth token.
func (s *AuthService) Register(ctx context.Context, name, password string) (*models.User, string, error) {
	name = strings.TrimSpace(name)
	if name == "" || password == "" {
		return nil, "", fmt.Errorf("%w: name and password are required", ErrValidation)
	}

	user := &models.User{Name: name, Password: password}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, "", fmt.Errorf("%w: name '%s' already taken", ErrValidation, name)
		}
		return nil, "", fmt.Errorf("failed to register user: %w", err)
	}

	token, err := s.GenerateAuthToken(ctx, user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// FindByCredentials returns the user named name if password matches. An
// unknown name and a wrong password fail with the same error.
func (s *AuthService) FindByCredentials(ctx context.Context, name, password string) (*models.User, error) {
	user, err := s.userRepo.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// GenerateAuthToken issues a token with the "auth" purpose for user.
func (s *AuthService) GenerateAuthToken(ctx context.Context, user *models.User) (string, error) {
	token, err := s.tokens.Issue(ctx, user.ID, AccessAuth)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return token, nil
}

// Login checks the credentials and issues a new auth token.
func (s *AuthService) Login(ctx context.Context, name, password string) (*models.User, string, error) {
	user, err := s.FindByCredentials(ctx, name, password)
	if err != nil {
		return nil, "", err
	}
	token, err := s.GenerateAuthToken(ctx, user)
	if err != nil {
		return nil, "", err
	}
	log.Printf("User %s logged in", user.ID)
	return user, token, nil
}

// Logout revokes token for user.
func (s *AuthService) Logout(ctx context.Context, user *models.User, token string) error {
	return s.tokens.Revoke(ctx, user.ID, token)
}
