package service

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Veldkraal/farm_shop/internal/config"
	"github.com/Veldkraal/farm_shop/internal/models"
	"github.com/Veldkraal/farm_shop/internal/repo"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to open in-memory db")
	require.NoError(t, config.Migrate(db), "failed to migrate tables")
	return db
}

func newTestRepo(t *testing.T) *repo.GormRepo {
	t.Helper()
	return repo.New(newTestDB(t))
}

func createUser(t *testing.T, r *repo.GormRepo, email string) *models.User {
	t.Helper()

	user := &models.User{
		ExternalID:   "ext-" + email,
		Email:        email,
		Name:         "Test User",
		PasswordHash: "x",
		Role:         models.RoleCustomer,
	}
	require.NoError(t, r.DB.Create(user).Error)
	return user
}

func createProduct(t *testing.T, r *repo.GormRepo, name, slug string, priceCents int64) *models.Product {
	t.Helper()

	product := &models.Product{
		Name:       name,
		Slug:       slug,
		PriceCents: priceCents,
		Stock:      100,
		Unit:       "per kg",
		Active:     true,
	}
	require.NoError(t, r.DB.Create(product).Error)
	return product
}
