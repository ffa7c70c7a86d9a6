package repositories

import (
	"context"
	"fmt"

	"devurai/internal/models"

	"gorm.io/gorm"
)

// GORMUserRepository is a GORM implementation of UserRepository.
type GORMUserRepository struct {
	db *gorm.DB
}

// NewGORMUserRepository creates a new instance of GORMUserRepository.
func NewGORMUserRepository(db *gorm.DB) *GORMUserRepository {
	return &GORMUserRepository{
		db: db,
	}
}

// Create stores a new user. The password is hashed by the model hook.
func (r *GORMUserRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", translate(err))
	}
	return nil
}

// GetByName retrieves a user by exact name.
func (r *GORMUserRepository) GetByName(ctx context.Context, name string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "name = ?", name).Error; err != nil {
		return nil, fmt.Errorf("failed to get user by name %s: %w", name, translate(err))
	}
	return &user, nil
}

// GetByID retrieves a user and its token list, oldest token first.
func (r *GORMUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Preload("Tokens", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		First(&user, "id = ?", id).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get user by ID %s: %w", id, translate(err))
	}
	return &user, nil
}

// AddToken appends token to the user's token list.
func (r *GORMUserRepository) AddToken(ctx context.Context, userID string, token models.Token) error {
	token.ID = 0
	token.UserID = userID
	if err := r.db.WithContext(ctx).Create(&token).Error; err != nil {
		return fmt.Errorf("failed to store token for user %s: %w", userID, translate(err))
	}
	return nil
}

// RemoveToken deletes token from the user's token list.
func (r *GORMUserRepository) RemoveToken(ctx context.Context, userID, token string) error {
	res := r.db.WithContext(ctx).Where("user_id = ? AND token = ?", userID, token).Delete(&models.Token{})
	if res.Error != nil {
		return fmt.Errorf("failed to remove token for user %s: %w", userID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("token for user %s: %w", userID, ErrNotFound)
	}
	return nil
}

// HasToken reports whether the user's token list holds token for access.
func (r *GORMUserRepository) HasToken(ctx context.Context, userID, access, token string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Token{}).
		Where("user_id = ? AND access = ? AND token = ?", userID, access, token).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to look up token for user %s: %w", userID, err)
	}
	return count > 0, nil
}
