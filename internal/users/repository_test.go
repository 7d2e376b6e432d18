package users

import (
	"context"
	"testing"

	"github.com/ItzMeSam13/AI-Dynamic-Pricing-System/internal/database"
	"github.com/ItzMeSam13/AI-Dynamic-Pricing-System/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newRepo(t *testing.T) *Repository {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return NewRepository(db)
}

func TestRepositoryCreateAndFind(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	u := &models.User{
		Name:             "Asha",
		Email:            "  Asha@Example.COM ",
		PasswordHash:     "hash",
		BusinessName:     "Asha Audio",
		BusinessCategory: "electronics",
	}
	require.NoError(t, repo.Create(ctx, u))
	assert.NotEqual(t, uuid.Nil, u.ID)
	assert.Equal(t, "asha@example.com", u.Email)

	byID, err := repo.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Asha Audio", byID.BusinessName)

	byEmail, err := repo.FindByEmail(ctx, "ASHA@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byEmail.ID)

	category, err := repo.BusinessCategory(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "electronics", category)
}

func TestRepositoryDuplicateEmail(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	first := &models.User{Name: "A", Email: "a@example.com", PasswordHash: "x", BusinessName: "A", BusinessCategory: "books"}
	require.NoError(t, repo.Create(ctx, first))

	second := &models.User{Name: "B", Email: "A@EXAMPLE.com", PasswordHash: "y", BusinessName: "B", BusinessCategory: "books"}
	assert.ErrorIs(t, repo.Create(ctx, second), ErrEmailTaken)
}

func TestRepositoryNotFound(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	_, err := repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repo.FindByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repo.BusinessCategory(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}
