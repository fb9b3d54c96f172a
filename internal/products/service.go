package products

import (
	"context"
	"fmt"
	"strings"

	"github.com/angelmondragon/chemstock/pkg/db"
	"github.com/angelmondragon/chemstock/pkg/db/models"
	"github.com/angelmondragon/chemstock/pkg/enums"
	pkgerrors "github.com/angelmondragon/chemstock/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service exposes product management operations.
type Service interface {
	Create(ctx context.Context, input CreateProductInput) (*models.Product, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Product, error)
	List(ctx context.Context, filter ListFilter) ([]models.Product, error)
	UpdateDetails(ctx context.Context, id uuid.UUID, input UpdateProductInput) (*models.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// CreateProductInput holds the validated payload to create a product.
// Stock always starts at zero; it only moves through stock movements.
type CreateProductInput struct {
	Name      string
	CASNumber string
	Unit      string
}

// UpdateProductInput carries the two fields the edit path may change.
type UpdateProductInput struct {
	Name string
	Unit string
}

type service struct {
	repo         *Repository
	dbClient     *db.Client
	deletePolicy enums.DeletePolicy
}

// NewService constructs a product service instance.
func NewService(repo *Repository, dbClient *db.Client, deletePolicy enums.DeletePolicy) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	if !deletePolicy.IsValid() {
		return nil, fmt.Errorf("invalid delete policy %q", deletePolicy)
	}
	return &service{
		repo:         repo,
		dbClient:     dbClient,
		deletePolicy: deletePolicy,
	}, nil
}

func (s *service) Create(ctx context.Context, input CreateProductInput) (*models.Product, error) {
	casNumber := strings.TrimSpace(input.CASNumber)

	if _, err := s.repo.FindByCAS(ctx, casNumber); err == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "CAS Number already exists!")
	} else if !db.IsNotFound(err) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup cas number")
	}

	product := &models.Product{
		Name:      strings.TrimSpace(input.Name),
		CASNumber: casNumber,
		Unit:      strings.TrimSpace(input.Unit),
		Stock:     0,
	}
	if err := s.repo.Create(ctx, product); err != nil {
		// Pre-check raced with a concurrent insert; report it the same way.
		if db.IsUniqueViolation(err, "cas_number") {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "CAS Number already exists!")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create product")
	}
	return product, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product")
	}
	return product, nil
}

func (s *service) List(ctx context.Context, filter ListFilter) ([]models.Product, error) {
	results, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list products")
	}
	return results, nil
}

func (s *service) UpdateDetails(ctx context.Context, id uuid.UUID, input UpdateProductInput) (*models.Product, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	unit := strings.TrimSpace(input.Unit)
	if err := s.repo.UpdateDetails(ctx, id, name, unit); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update product")
	}
	return s.Get(ctx, id)
}

// Delete removes the product, treating its movement history according to the
// configured policy: cascade removes it, restrict refuses while history
// exists, orphan leaves the rows behind.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	return s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		switch s.deletePolicy {
		case enums.DeletePolicyCascade:
			if err := tx.Delete(&models.StockMovement{}, "product_id = ?", id).Error; err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete movement history")
			}
		case enums.DeletePolicyRestrict:
			var count int64
			if err := tx.Model(&models.StockMovement{}).Where("product_id = ?", id).Count(&count).Error; err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count movement history")
			}
			if count > 0 {
				return pkgerrors.New(pkgerrors.CodeConflict, "product has stock movement history")
			}
		case enums.DeletePolicyOrphan:
			// history rows stay behind
		}

		if err := s.repo.WithTx(tx).Delete(ctx, id); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete product")
		}
		return nil
	})
}
