package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Skotchmaster/storefront/internal/models"
)

var ErrCatalogLockMissing = errors.New("catalog lock row missing")

type GormRepo struct {
	DB *gorm.DB
}

// WithCatalogLock runs fn in a transaction that has already taken the
// catalog lock row. fn must issue every query through the repo it is given.
func (r *GormRepo) WithCatalogLock(ctx context.Context, fn func(tx *GormRepo) error) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.CatalogLock{}).
			Where("id = ?", 1).
			Update("version", gorm.Expr("version + 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrCatalogLockMissing
		}
		return fn(&GormRepo{DB: tx})
	})
}
