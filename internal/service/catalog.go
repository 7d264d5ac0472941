package service

import (
	"context"
	"errors"
	"math"
	"slices"
	"strconv"

	"github.com/google/uuid"

	"github.com/Skotchmaster/storefront/internal/events"
	"github.com/Skotchmaster/storefront/internal/identity"
	"github.com/Skotchmaster/storefront/internal/logging"
	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/repo"
	"github.com/Skotchmaster/storefront/internal/search"
	"github.com/Skotchmaster/storefront/internal/util"
)

const (
	// CreateQuota caps a category when adding products.
	CreateQuota = 5
	// UpdateQuota caps the destination category when moving a product.
	UpdateQuota = 10
)

var Categories = []string{"Groceries", "Electronics", "Beverages", "Stationaries"}

func ValidCategory(c string) bool {
	return slices.Contains(Categories, c)
}

// ProductInput carries optional product fields; nil means "not supplied".
type ProductInput struct {
	Name        *string
	Price       *float64
	Description *string
	Category    *string
}

type CatalogService struct {
	Repo   *repo.GormRepo
	Events events.Publisher
	// Index is optional; without it search runs against the database.
	Index search.Index
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]string, error) {
	categories, err := s.Repo.ListCategories(ctx)
	if err != nil {
		return nil, dbError(err)
	}
	return categories, nil
}

func (s *CatalogService) ListAllProducts(ctx context.Context) ([]models.Product, error) {
	items, err := s.Repo.ListProducts(ctx)
	if err != nil {
		return nil, dbError(err)
	}
	return items, nil
}

func (s *CatalogService) ListProductsByCategory(ctx context.Context, category string) ([]models.Product, error) {
	if !ValidCategory(category) {
		return nil, ErrInvalidCategory
	}
	items, err := s.Repo.ListProductsByCategory(ctx, category)
	if err != nil {
		return nil, dbError(err)
	}
	return items, nil
}

// GetProduct resolves a product by its storage key, not its productId.
func (s *CatalogService) GetProduct(ctx context.Context, key string) (*models.Product, error) {
	if key == "" {
		return nil, ErrMissingID
	}
	id, err := uuid.Parse(key)
	if err != nil {
		return nil, ErrNotFound
	}
	product, err := s.Repo.GetProduct(ctx, id)
	if err != nil {
		return nil, lookupError(err)
	}
	return product, nil
}

func (s *CatalogService) AddProduct(ctx context.Context, who identity.Identity, in ProductInput) (*models.Product, error) {
	l := logging.FromContext(ctx).With("svc", "catalog.add_product")

	if !who.IsAdmin() {
		l.Warn("add_product_rejected", "reason", "not an admin", "username", who.Username)
		return nil, ErrForbidden
	}
	if in.Name == nil || in.Price == nil || in.Category == nil {
		return nil, ErrMissingFields
	}
	if !validPrice(*in.Price) {
		return nil, ErrInvalidPrice
	}
	if !ValidCategory(*in.Category) {
		return nil, ErrInvalidCategory
	}

	prod := models.Product{
		Name:     *in.Name,
		Price:    *in.Price,
		Category: *in.Category,
	}
	if in.Description != nil {
		prod.Description = *in.Description
	}

	err := s.Repo.WithCatalogLock(ctx, func(tx *repo.GormRepo) error {
		count, err := tx.CountByCategory(ctx, prod.Category)
		if err != nil {
			return dbError(err)
		}
		if count >= CreateQuota {
			return &QuotaError{Category: prod.Category, Limit: CreateQuota}
		}

		maxID, err := tx.MaxProductID(ctx)
		if err != nil {
			return dbError(err)
		}
		prod.ProductID = maxID + 1

		if err := tx.CreateProduct(ctx, &prod); err != nil {
			return dbError(err)
		}
		return nil
	})
	if err != nil {
		return nil, s.wrapTxError(err)
	}

	l.Info("product_added", "product_id", prod.ProductID, "category", prod.Category)
	s.afterWrite(ctx, events.ProductCreated, prod)
	return &prod, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, who identity.Identity, productID *int) (*models.Product, error) {
	if !who.IsAdmin() {
		return nil, ErrForbidden
	}
	if productID == nil {
		return nil, ErrMissingID
	}

	var deleted *models.Product
	err := s.Repo.WithCatalogLock(ctx, func(tx *repo.GormRepo) error {
		prod, err := tx.FindByProductID(ctx, *productID)
		if err != nil {
			return lookupError(err)
		}
		if err := tx.DeleteProduct(ctx, prod); err != nil {
			return dbError(err)
		}
		deleted = prod
		return nil
	})
	if err != nil {
		return nil, s.wrapTxError(err)
	}

	logging.FromContext(ctx).Info("product_deleted", "product_id", deleted.ProductID, "name", deleted.Name)
	s.afterWrite(ctx, events.ProductDeleted, *deleted)
	return deleted, nil
}

// UpdateProduct applies the supplied fields. Nothing is written when any
// supplied field is rejected.
func (s *CatalogService) UpdateProduct(ctx context.Context, who identity.Identity, productID *int, in ProductInput) (*models.Product, error) {
	if !who.IsAdmin() {
		return nil, ErrForbidden
	}
	if productID == nil {
		return nil, ErrMissingID
	}

	var updated *models.Product
	err := s.Repo.WithCatalogLock(ctx, func(tx *repo.GormRepo) error {
		prod, err := tx.FindByProductID(ctx, *productID)
		if err != nil {
			return lookupError(err)
		}

		if in.Name != nil {
			prod.Name = *in.Name
		}
		if in.Price != nil {
			if !validPrice(*in.Price) {
				return ErrInvalidPrice
			}
			prod.Price = *in.Price
		}
		if in.Description != nil {
			prod.Description = *in.Description
		}
		if in.Category != nil {
			if !ValidCategory(*in.Category) {
				return ErrInvalidCategory
			}
			if *in.Category != prod.Category {
				count, err := tx.CountByCategory(ctx, *in.Category)
				if err != nil {
					return dbError(err)
				}
				if count >= UpdateQuota {
					return &QuotaError{Category: *in.Category, Limit: UpdateQuota}
				}
			}
			prod.Category = *in.Category
		}

		if err := tx.SaveProduct(ctx, prod); err != nil {
			return dbError(err)
		}
		updated = prod
		return nil
	})
	if err != nil {
		return nil, s.wrapTxError(err)
	}

	logging.FromContext(ctx).Info("product_updated", "product_id", updated.ProductID)
	s.afterWrite(ctx, events.ProductUpdated, *updated)
	return updated, nil
}

// SearchProducts prefers the search index and falls back to a database
// scan when the index is missing or failing. page is 1-based.
func (s *CatalogService) SearchProducts(ctx context.Context, q string, page, size int) ([]models.Product, error) {
	if q == "" {
		return nil, ErrMissingFields
	}
	offset, limit := util.Calculate(page, size)
	if s.Index != nil {
		items, err := s.Index.Search(ctx, q, offset, limit)
		if err == nil {
			return items, nil
		}
		logging.FromContext(ctx).Warn("search_index_failed", "reason", "falling back to database", "error", err)
	}
	items, err := s.Repo.SearchProducts(ctx, q, offset, limit)
	if err != nil {
		return nil, dbError(err)
	}
	return items, nil
}

func (s *CatalogService) afterWrite(ctx context.Context, eventType string, p models.Product) {
	l := logging.FromContext(ctx)

	if s.Events != nil {
		ev := events.ProductEvent{
			Type:      eventType,
			ProductID: p.ProductID,
			Name:      p.Name,
			Category:  p.Category,
			Price:     p.Price,
		}
		if err := s.Events.Publish(ctx, events.TopicProducts, strconv.Itoa(p.ProductID), ev); err != nil {
			l.Error("publish_failed", "topic", events.TopicProducts, "error", err)
		}
	}

	if s.Index == nil {
		return
	}
	var err error
	if eventType == events.ProductDeleted {
		err = s.Index.RemoveProduct(ctx, p)
	} else {
		err = s.Index.IndexProduct(ctx, p)
	}
	if err != nil {
		l.Error("search_index_sync_failed", "product_id", p.ProductID, "error", err)
	}
}

// wrapTxError passes service errors through and marks anything else that
// escaped the transaction as a store failure.
func (s *CatalogService) wrapTxError(err error) error {
	for _, known := range []error{
		ErrDatabase, ErrNotFound, ErrQuotaExceeded, ErrInvalidCategory, ErrInvalidPrice,
	} {
		if errors.Is(err, known) {
			return err
		}
	}
	return dbError(err)
}

func validPrice(p float64) bool {
	return !math.IsNaN(p) && !math.IsInf(p, 0) && p >= 0
}
