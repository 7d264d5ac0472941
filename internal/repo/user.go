package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/Skotchmaster/storefront/internal/models"
)

func findByUsername[T any](ctx context.Context, db *gorm.DB, username string) (*T, error) {
	var rec T
	if err := db.WithContext(ctx).Where("username = ?", username).First(&rec).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

func usernames[T any](ctx context.Context, db *gorm.DB) ([]string, error) {
	names := make([]string, 0)
	if err := db.WithContext(ctx).Model(new(T)).Order("id ASC").Pluck("username", &names).Error; err != nil {
		return nil, err
	}
	return names, nil
}

func (r *GormRepo) FindCustomer(ctx context.Context, username string) (*models.Customer, error) {
	return findByUsername[models.Customer](ctx, r.DB, username)
}

func (r *GormRepo) FindAdmin(ctx context.Context, username string) (*models.Admin, error) {
	return findByUsername[models.Admin](ctx, r.DB, username)
}

func (r *GormRepo) CreateCustomer(ctx context.Context, c *models.Customer) error {
	return r.DB.WithContext(ctx).Create(c).Error
}

func (r *GormRepo) CreateAdmin(ctx context.Context, a *models.Admin) error {
	return r.DB.WithContext(ctx).Create(a).Error
}

func (r *GormRepo) CustomerUsernames(ctx context.Context) ([]string, error) {
	return usernames[models.Customer](ctx, r.DB)
}

func (r *GormRepo) AdminUsernames(ctx context.Context) ([]string, error) {
	return usernames[models.Admin](ctx, r.DB)
}
