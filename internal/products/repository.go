package products

import (
	"context"
	"strings"

	"github.com/angelmondragon/chemstock/pkg/db/models"
	"github.com/angelmondragon/chemstock/pkg/enums"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListFilter narrows and orders the product listing.
type ListFilter struct {
	// Search matches name OR cas_number, case-insensitive substring.
	Search string
	// Sort is the recognized ordering; ProductSortNone leaves natural order.
	Sort enums.ProductSort
}

// Repository exposes product persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// Create inserts a new product, assigning an ID when none is set.
func (r *Repository) Create(ctx context.Context, product *models.Product) error {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(product).Error
}

// FindByID loads the product by primary key.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// FindByCAS loads the product carrying the given CAS registry number.
func (r *Repository) FindByCAS(ctx context.Context, casNumber string) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "cas_number = ?", casNumber).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// List returns every product matching the filter. LIKE over lowered columns
// keeps the substring match case-insensitive on both engines.
func (r *Repository) List(ctx context.Context, filter ListFilter) ([]models.Product, error) {
	query := r.db.WithContext(ctx).Model(&models.Product{})

	if term := strings.TrimSpace(filter.Search); term != "" {
		pattern := "%" + strings.ToLower(term) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(cas_number) LIKE ?", pattern, pattern)
	}

	switch filter.Sort {
	case enums.ProductSortStockDesc:
		query = query.Order("stock DESC")
	case enums.ProductSortStockAsc:
		query = query.Order("stock ASC")
	case enums.ProductSortNameAsc:
		query = query.Order("name ASC")
	case enums.ProductSortNameDesc:
		query = query.Order("name DESC")
	}

	var results []models.Product
	if err := query.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// UpdateDetails persists the two mutable fields. CAS number and stock are
// never touched through this path.
func (r *Repository) UpdateDetails(ctx context.Context, id uuid.UUID, name, unit string) error {
	return r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", id).
		Updates(map[string]any{"name": name, "unit": unit}).Error
}

// Delete removes the product row.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id).Error
}

// Count returns the number of products in the store.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Product{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
