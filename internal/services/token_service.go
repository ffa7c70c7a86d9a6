package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"devurai/internal/models"
	"devurai/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
)

// AccessAuth is the purpose tag of login tokens.
const AccessAuth = "auth"

// TokenClaims is the signed payload of a bearer token.
type TokenClaims struct {
	UserID string `json:"_id"`
	Access string `json:"access"`
	jwt.StandardClaims
}

// TokenService issues, verifies and revokes bearer tokens. Issued tokens are
// kept in the owner's token list; a token verifies only while it is there.
type TokenService struct {
	users  repositories.UserRepository
	secret []byte
	now    func() time.Time
}

// NewTokenService creates a new TokenService signing with secret.
func NewTokenService(users repositories.UserRepository, secret string) *TokenService {
	return &TokenService{
		users:  users,
		secret: []byte(secret),
		now:    time.Now,
	}
}

// Issue signs a token for userID and access and appends it to the user's
// token list.
func (s *TokenService) Issue(ctx context.Context, userID, access string) (string, error) {
	claims := TokenClaims{
		UserID: userID,
		Access: access,
		StandardClaims: jwt.StandardClaims{
			Id:       uuid.NewString(),
			IssuedAt: s.now().Unix(),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	if err := s.users.AddToken(ctx, userID, models.Token{Access: access, Token: signed}); err != nil {
		return "", err
	}
	return signed, nil
}

// verification carries the state threaded through the check pipeline.
type verification struct {
	raw    string
	access string
	claims TokenClaims
	user   *models.User
}

type tokenCheck func(ctx context.Context, v *verification) error

// Verify runs the check pipeline and returns the token's owner. The first
// failing check ends verification.
func (s *TokenService) Verify(ctx context.Context, token, access string) (*models.User, error) {
	v := &verification{raw: token, access: access}
	checks := []tokenCheck{
		s.checkSignature,
		checkPurpose,
		s.resolveUser,
		s.checkIssued,
	}
	for _, check := range checks {
		if err := check(ctx, v); err != nil {
			return nil, err
		}
	}
	return v.user, nil
}

// Revoke removes token from the user's token list.
func (s *TokenService) Revoke(ctx context.Context, userID, token string) error {
	err := s.users.RemoveToken(ctx, userID, token)
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrTokenRevoked
	}
	return err
}

func (s *TokenService) checkSignature(_ context.Context, v *verification) error {
	parsed, err := jwt.ParseWithClaims(v.raw, &v.claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return ErrInvalidToken
	}
	if v.claims.UserID == "" {
		return ErrInvalidToken
	}
	return nil
}

func checkPurpose(_ context.Context, v *verification) error {
	if v.claims.Access != v.access {
		return ErrPurposeMismatch
	}
	return nil
}

func (s *TokenService) resolveUser(ctx context.Context, v *verification) error {
	user, err := s.users.GetByID(ctx, v.claims.UserID)
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrUserNotFound
	}
	if err != nil {
		return err
	}
	v.user = user
	return nil
}

func (s *TokenService) checkIssued(ctx context.Context, v *verification) error {
	ok, err := s.users.HasToken(ctx, v.user.ID, v.access, v.raw)
	if err != nil {
		return err
	}
	if !ok {
		return ErrTokenRevoked
	}
	return nil
}
