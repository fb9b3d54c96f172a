package stock

import (
	"context"
	"fmt"
	"math"

	"github.com/angelmondragon/chemstock/pkg/db"
	"github.com/angelmondragon/chemstock/pkg/db/models"
	"github.com/angelmondragon/chemstock/pkg/enums"
	pkgerrors "github.com/angelmondragon/chemstock/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service applies stock movements and reads movement history.
type Service interface {
	// Apply mutates the product's stock and appends the movement atomically.
	Apply(ctx context.Context, productID uuid.UUID, action enums.MovementAction, quantity float64) (*models.StockMovement, error)
	// History returns the product with its movements, most recent first.
	History(ctx context.Context, productID uuid.UUID) (*models.Product, []models.StockMovement, error)
}

type service struct {
	repo     *Repository
	dbClient *db.Client
}

// NewService constructs a stock service instance.
func NewService(repo *Repository, dbClient *db.Client) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("stock repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{repo: repo, dbClient: dbClient}, nil
}

func (s *service) Apply(ctx context.Context, productID uuid.UUID, action enums.MovementAction, quantity float64) (*models.StockMovement, error) {
	if !action.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown stock action")
	}
	if math.IsNaN(quantity) || math.IsInf(quantity, 0) || quantity <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Quantity must be positive!")
	}

	movement := &models.StockMovement{
		ProductID: productID,
		Action:    action,
		Quantity:  quantity,
	}

	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.First(&product, "id = ?", productID).Error; err != nil {
			if db.IsNotFound(err) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product")
		}

		// The stock check is re-applied inside the UPDATE itself so two
		// concurrent OUTs cannot race the read-modify-write below zero.
		var result *gorm.DB
		switch action {
		case enums.MovementActionIn:
			result = tx.Exec(`UPDATE products SET stock = stock + ? WHERE id = ?`, quantity, productID)
		case enums.MovementActionOut:
			if product.Stock < quantity {
				return pkgerrors.New(pkgerrors.CodeValidation, "Stock cannot go below zero!")
			}
			result = tx.Exec(`UPDATE products SET stock = stock - ? WHERE id = ? AND stock >= ?`, quantity, productID, quantity)
		}
		if result.Error != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, result.Error, "update stock")
		}
		if result.RowsAffected == 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "Stock cannot go below zero!")
		}

		if err := s.repo.WithTx(tx).Create(ctx, movement); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "record stock movement")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return movement, nil
}

func (s *service) History(ctx context.Context, productID uuid.UUID) (*models.Product, []models.StockMovement, error) {
	var product models.Product
	if err := s.dbClient.DB().WithContext(ctx).First(&product, "id = ?", productID).Error; err != nil {
		if db.IsNotFound(err) {
			return nil, nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product")
	}

	movements, err := s.repo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list movements")
	}
	return &product, movements, nil
}
