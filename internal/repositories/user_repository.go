package repositories

import (
	"context"

	"devurai/internal/models"
)

// UserRepository defines the interface for user and token-list data access.
// Token list mutations are single-row writes, so concurrent logins and
// logouts for the same user never overwrite each other.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByName(ctx context.Context, name string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	AddToken(ctx context.Context, userID string, token models.Token) error
	RemoveToken(ctx context.Context, userID, token string) error
	HasToken(ctx context.Context, userID, access, token string) (bool, error)
}
