package repo

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/Skotchmaster/storefront/internal/models"
)

func (r *GormRepo) ListCategories(ctx context.Context) ([]string, error) {
	categories := make([]string, 0)
	if err := r.DB.WithContext(ctx).
		Model(&models.Product{}).
		Distinct().
		Order("category ASC").
		Pluck("category", &categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *GormRepo) ListProducts(ctx context.Context) ([]models.Product, error) {
	items := make([]models.Product, 0)
	if err := r.DB.WithContext(ctx).Order("product_id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) ListProductsByCategory(ctx context.Context, category string) ([]models.Product, error) {
	items := make([]models.Product, 0)
	if err := r.DB.WithContext(ctx).
		Where("category = ?", category).
		Order("product_id ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// GetProduct looks a product up by its storage key.
func (r *GormRepo) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// FindByProductID looks a product up by its sequential catalog number.
func (r *GormRepo) FindByProductID(ctx context.Context, productID int) (*models.Product, error) {
	var product models.Product
	if err := r.DB.WithContext(ctx).Where("product_id = ?", productID).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *GormRepo) CountByCategory(ctx context.Context, category string) (int64, error) {
	var total int64
	if err := r.DB.WithContext(ctx).
		Model(&models.Product{}).
		Where("category = ?", category).
		Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// MaxProductID returns 0 for an empty catalog.
func (r *GormRepo) MaxProductID(ctx context.Context) (int, error) {
	var max int
	if err := r.DB.WithContext(ctx).
		Model(&models.Product{}).
		Select("COALESCE(MAX(product_id), 0)").
		Scan(&max).Error; err != nil {
		return 0, err
	}
	return max, nil
}

func (r *GormRepo) CreateProduct(ctx context.Context, prod *models.Product) error {
	return r.DB.WithContext(ctx).Create(prod).Error
}

func (r *GormRepo) SaveProduct(ctx context.Context, prod *models.Product) error {
	return r.DB.WithContext(ctx).Save(prod).Error
}

func (r *GormRepo) DeleteProduct(ctx context.Context, prod *models.Product) error {
	return r.DB.WithContext(ctx).Delete(prod).Error
}

func (r *GormRepo) SearchProducts(ctx context.Context, q string, offset, limit int) ([]models.Product, error) {
	pattern := "%" + strings.ToLower(q) + "%"
	items := make([]models.Product, 0)
	if err := r.DB.WithContext(ctx).
		Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern).
		Order("product_id ASC").
		Offset(offset).
		Limit(limit).
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
