package seed

import (
	"context"
	"fmt"

	"github.com/angelmondragon/chemstock/internal/products"
	"github.com/angelmondragon/chemstock/internal/users"
	"github.com/angelmondragon/chemstock/pkg/config"
	"github.com/angelmondragon/chemstock/pkg/db"
	"github.com/angelmondragon/chemstock/pkg/db/models"
	pkgerrors "github.com/angelmondragon/chemstock/pkg/errors"
	"gorm.io/gorm"
)

// sampleProducts is the fixed demo catalog inserted by SeedProducts.
var sampleProducts = []models.Product{
	{Name: "Ethanol", CASNumber: "64-17-5", Unit: "Litre", Stock: 50},
	{Name: "Acetone", CASNumber: "67-64-1", Unit: "Litre", Stock: 30},
	{Name: "Methanol", CASNumber: "67-56-1", Unit: "Litre", Stock: 40},
	{Name: "Sodium Hydroxide", CASNumber: "1310-73-2", Unit: "KG", Stock: 3},
	{Name: "Hydrochloric Acid", CASNumber: "7647-01-0", Unit: "Litre", Stock: 25},
	{Name: "Sulfuric Acid", CASNumber: "7664-93-9", Unit: "Litre", Stock: 15},
	{Name: "Ammonia", CASNumber: "7664-41-7", Unit: "KG", Stock: 2},
}

// Service bootstraps demo data. Both operations are idempotent: they do
// nothing when data is already present.
type Service struct {
	users       *users.Repository
	productRepo *products.Repository
	dbClient    *db.Client
	cfg         config.SeedConfig
}

// NewService constructs the bootstrap service.
func NewService(userRepo *users.Repository, productRepo *products.Repository, dbClient *db.Client, cfg config.SeedConfig) (*Service, error) {
	if userRepo == nil {
		return nil, fmt.Errorf("user repository required")
	}
	if productRepo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &Service{
		users:       userRepo,
		productRepo: productRepo,
		dbClient:    dbClient,
		cfg:         cfg,
	}, nil
}

// SeedAdminUser creates the default administrative user unless one with that
// username already exists. Returns whether a user was created.
func (s *Service) SeedAdminUser(ctx context.Context) (bool, error) {
	exists, err := s.users.ExistsByUsername(ctx, s.cfg.AdminUsername)
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check admin user")
	}
	if exists {
		return false, nil
	}

	admin := &models.User{
		Username: s.cfg.AdminUsername,
		Password: s.cfg.AdminPassword,
	}
	if err := s.users.Create(ctx, admin); err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create admin user")
	}
	return true, nil
}

// SeedProducts inserts the sample catalog when the product table is empty.
// Returns whether any rows were inserted.
func (s *Service) SeedProducts(ctx context.Context) (bool, error) {
	count, err := s.productRepo.Count(ctx)
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count products")
	}
	if count > 0 {
		return false, nil
	}

	err = s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.productRepo.WithTx(tx)
		for i := range sampleProducts {
			product := sampleProducts[i]
			if err := repo.Create(ctx, &product); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "insert sample products")
	}
	return true, nil
}
