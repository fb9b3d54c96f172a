package seed

import (
	"context"
	"fmt"
	"testing"

	"github.com/angelmondragon/chemstock/internal/products"
	"github.com/angelmondragon/chemstock/internal/users"
	"github.com/angelmondragon/chemstock/pkg/config"
	"github.com/angelmondragon/chemstock/pkg/db"
	"github.com/angelmondragon/chemstock/pkg/db/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (*Service, *db.Client) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	client, err := db.New(context.Background(), config.DBConfig{Driver: config.DriverSQLite, DSN: dsn}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	for _, stmt := range []string{
		`CREATE TABLE products (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  cas_number TEXT NOT NULL UNIQUE,
  unit TEXT NOT NULL,
  stock DOUBLE PRECISION NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE users (
  id TEXT PRIMARY KEY,
  username TEXT NOT NULL UNIQUE,
  password TEXT NOT NULL,
  created_at DATETIME
);`,
	} {
		require.NoError(t, client.DB().Exec(stmt).Error)
	}

	svc, err := NewService(
		users.NewRepository(client.DB()),
		products.NewRepository(client.DB()),
		client,
		config.SeedConfig{AdminUsername: "admin", AdminPassword: "admin123"},
	)
	require.NoError(t, err)
	return svc, client
}

func TestSeedAdminUserIsIdempotent(t *testing.T) {
	svc, client := newTestService(t)

	created, err := svc.SeedAdminUser(context.Background())
	require.NoError(t, err)
	assert.True(t, created)

	created, err = svc.SeedAdminUser(context.Background())
	require.NoError(t, err)
	assert.False(t, created)

	var count int64
	require.NoError(t, client.DB().Model(&models.User{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	var admin models.User
	require.NoError(t, client.DB().First(&admin, "username = ?", "admin").Error)
	assert.Equal(t, "admin123", admin.Password)
}

func TestSeedProductsInsertsSampleCatalogOnce(t *testing.T) {
	svc, client := newTestService(t)

	created, err := svc.SeedProducts(context.Background())
	require.NoError(t, err)
	assert.True(t, created)

	created, err = svc.SeedProducts(context.Background())
	require.NoError(t, err)
	assert.False(t, created)

	var count int64
	require.NoError(t, client.DB().Model(&models.Product{}).Count(&count).Error)
	assert.EqualValues(t, len(sampleProducts), count)

	var ammonia models.Product
	require.NoError(t, client.DB().First(&ammonia, "cas_number = ?", "7664-41-7").Error)
	assert.Equal(t, "Ammonia", ammonia.Name)
	assert.Equal(t, "KG", ammonia.Unit)
	assert.Equal(t, float64(2), ammonia.Stock)
}

func TestSeedProductsSkipsWhenCatalogHasRows(t *testing.T) {
	svc, client := newTestService(t)
	existing := &models.Product{
		ID:        uuid.New(),
		Name:      "Toluene",
		CASNumber: "108-88-3",
		Unit:      "Litre",
		Stock:     10,
	}
	require.NoError(t, client.DB().Create(existing).Error)

	created, err := svc.SeedProducts(context.Background())
	require.NoError(t, err)
	assert.False(t, created)

	var count int64
	require.NoError(t, client.DB().Model(&models.Product{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}
