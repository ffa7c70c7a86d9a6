package repositories_test

import (
	"context"
	"fmt"
	"testing"

	"devurai/internal/models"
	"devurai/internal/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// openTestDB returns a private in-memory SQLite database.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := repositories.Open("sqlite", dsn)
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	return db
}

func TestGORMUserRepository_CreateHashesPassword(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewGORMUserRepository(openTestDB(t))

	user := &models.User{Name: "admin", Password: "userOnePass"}
	require.NoError(t, repo.Create(ctx, user))
	assert.NotEmpty(t, user.ID)

	stored, err := repo.GetByName(ctx, "admin")
	require.NoError(t, err)
	assert.NotEqual(t, "userOnePass", stored.Password)
	assert.True(t, stored.CheckPassword("userOnePass"))
	assert.False(t, stored.CheckPassword("wrong"))
}

func TestGORMUserRepository_DuplicateName(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewGORMUserRepository(openTestDB(t))

	require.NoError(t, repo.Create(ctx, &models.User{Name: "admin", Password: "a"}))
	err := repo.Create(ctx, &models.User{Name: "admin", Password: "b"})
	assert.ErrorIs(t, err, repositories.ErrDuplicate)
}

func TestGORMUserRepository_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewGORMUserRepository(openTestDB(t))

	_, err := repo.GetByName(ctx, "nobody")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	_, err = repo.GetByID(ctx, uuid.NewString())
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestGORMUserRepository_TokenList(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewGORMUserRepository(openTestDB(t))

	user := &models.User{Name: "admin", Password: "pass"}
	require.NoError(t, repo.Create(ctx, user))
	hashBefore := user.Password

	require.NoError(t, repo.AddToken(ctx, user.ID, models.Token{Access: "auth", Token: "first"}))
	require.NoError(t, repo.AddToken(ctx, user.ID, models.Token{Access: "auth", Token: "second"}))

	stored, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, stored.Tokens, 2)
	assert.Equal(t, "first", stored.Tokens[0].Token)
	assert.Equal(t, "second", stored.Tokens[1].Token)
	assert.Equal(t, hashBefore, stored.Password)

	ok, err := repo.HasToken(ctx, user.ID, "auth", "first")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = repo.HasToken(ctx, user.ID, "reset", "first")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, repo.RemoveToken(ctx, user.ID, "first"))
	ok, err = repo.HasToken(ctx, user.ID, "auth", "first")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.ErrorIs(t, repo.RemoveToken(ctx, user.ID, "first"), repositories.ErrNotFound)

	stored, err = repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, stored.Tokens, 1)
	assert.Equal(t, "second", stored.Tokens[0].Token)
}

func TestGORMProductRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewGORMProductRepository(openTestDB(t))

	first := &models.Product{Name: "First test product"}
	require.NoError(t, repo.Create(ctx, first))
	assert.NotEmpty(t, first.ID)
	require.NoError(t, repo.Create(ctx, &models.Product{Name: "Second test product"}))

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	got, err := repo.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "First test product", got.Name)
	assert.Nil(t, got.Price)
	assert.Nil(t, got.Amount)

	price := 42.0
	updated, err := repo.Update(ctx, first.ID, map[string]interface{}{"price": &price})
	require.NoError(t, err)
	require.NotNil(t, updated.Price)
	assert.Equal(t, 42.0, *updated.Price)
	assert.Nil(t, updated.Amount)
	assert.Equal(t, "First test product", updated.Name)

	updated, err = repo.Update(ctx, first.ID, map[string]interface{}{"price": (*float64)(nil)})
	require.NoError(t, err)
	assert.Nil(t, updated.Price)

	deleted, err := repo.Delete(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, deleted.ID)

	_, err = repo.GetByID(ctx, first.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	_, err = repo.Delete(ctx, first.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	_, err = repo.Update(ctx, first.ID, map[string]interface{}{"name": "x"})
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestGORMProductRepository_DuplicateName(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewGORMProductRepository(openTestDB(t))

	a := &models.Product{Name: "Lamp"}
	b := &models.Product{Name: "Desk"}
	require.NoError(t, repo.Create(ctx, a))
	require.NoError(t, repo.Create(ctx, b))

	assert.ErrorIs(t, repo.Create(ctx, &models.Product{Name: "Lamp"}), repositories.ErrDuplicate)

	_, err := repo.Update(ctx, b.ID, map[string]interface{}{"name": "Lamp"})
	assert.ErrorIs(t, err, repositories.ErrDuplicate)
}
