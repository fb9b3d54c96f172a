package products

import (
	"context"
	"fmt"
	"testing"

	"github.com/angelmondragon/chemstock/pkg/config"
	"github.com/angelmondragon/chemstock/pkg/db"
	"github.com/angelmondragon/chemstock/pkg/db/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) *db.Client {
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
		`CREATE TABLE stock_movements (
  id TEXT PRIMARY KEY,
  product_id TEXT NOT NULL,
  action TEXT NOT NULL,
  quantity DOUBLE PRECISION NOT NULL,
  created_at DATETIME
);`,
	} {
		require.NoError(t, client.DB().Exec(stmt).Error)
	}
	return client
}

func mustCreateProduct(t *testing.T, repo *Repository, name, cas, unit string, stock float64) *models.Product {
	t.Helper()
	product := &models.Product{
		Name:      name,
		CASNumber: cas,
		Unit:      unit,
		Stock:     stock,
	}
	require.NoError(t, repo.Create(context.Background(), product))
	return product
}
