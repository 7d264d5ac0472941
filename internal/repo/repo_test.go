package repo

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/storefront/internal/db/dbtest"
	"github.com/Skotchmaster/storefront/internal/models"
)

func newTestRepo(t *testing.T) *GormRepo {
	t.Helper()
	return &GormRepo{DB: dbtest.New(t)}
}

func TestGormRepo_ProductLookups(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	ctx := context.Background()

	milk := &models.Product{ProductID: 1, Name: "Milk", Price: 3.5, Category: "Groceries"}
	require.NoError(t, r.CreateProduct(ctx, milk))
	require.NotEqual(t, uuid.Nil, milk.ID)

	byKey, err := r.GetProduct(ctx, milk.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, byKey.ProductID)

	byID, err := r.FindByProductID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, milk.ID, byID.ID)

	_, err = r.FindByProductID(ctx, 2)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	_, err = r.GetProduct(ctx, uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestGormRepo_ProductIDIsUnique(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, r.CreateProduct(ctx, &models.Product{ProductID: 1, Name: "a", Category: "Groceries"}))
	err := r.CreateProduct(ctx, &models.Product{ProductID: 1, Name: "b", Category: "Groceries"})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestGormRepo_CountsAndMax(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	ctx := context.Background()

	max, err := r.MaxProductID(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, max)

	require.NoError(t, r.CreateProduct(ctx, &models.Product{ProductID: 4, Name: "a", Category: "Beverages"}))
	require.NoError(t, r.CreateProduct(ctx, &models.Product{ProductID: 7, Name: "b", Category: "Beverages"}))
	require.NoError(t, r.CreateProduct(ctx, &models.Product{ProductID: 2, Name: "c", Category: "Groceries"}))

	max, err = r.MaxProductID(ctx)
	require.NoError(t, err)
	assert.Equal(t, 7, max)

	n, err := r.CountByCategory(ctx, "Beverages")
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	n, err = r.CountByCategory(ctx, "Electronics")
	require.NoError(t, err)
	assert.EqualValues(t, 0, n)

	items, err := r.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, []int{2, 4, 7}, []int{items[0].ProductID, items[1].ProductID, items[2].ProductID})
}

func TestGormRepo_WithCatalogLock_RollsBack(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	ctx := context.Background()

	err := r.WithCatalogLock(ctx, func(tx *GormRepo) error {
		if err := tx.CreateProduct(ctx, &models.Product{ProductID: 1, Name: "a", Category: "Groceries"}); err != nil {
			return err
		}
		return assert.AnError
	})
	require.ErrorIs(t, err, assert.AnError)

	items, err := r.ListProducts(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)

	var lock models.CatalogLock
	require.NoError(t, r.DB.First(&lock, 1).Error)
	assert.EqualValues(t, 0, lock.Version)

	require.NoError(t, r.WithCatalogLock(ctx, func(*GormRepo) error { return nil }))
	require.NoError(t, r.DB.First(&lock, 1).Error)
	assert.EqualValues(t, 1, lock.Version)
}

func TestGormRepo_WithCatalogLock_MissingRow(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	require.NoError(t, r.DB.Delete(&models.CatalogLock{}, 1).Error)

	err := r.WithCatalogLock(context.Background(), func(*GormRepo) error { return nil })
	assert.ErrorIs(t, err, ErrCatalogLockMissing)
}

func TestGormRepo_Users(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, r.CreateCustomer(ctx, &models.Customer{Username: "bob", Email: "b@x.io", PasswordHash: "h"}))
	require.NoError(t, r.CreateCustomer(ctx, &models.Customer{Username: "alice", Email: "a@x.io", PasswordHash: "h"}))
	require.NoError(t, r.CreateAdmin(ctx, &models.Admin{Username: "root", PasswordHash: "h"}))

	err := r.CreateCustomer(ctx, &models.Customer{Username: "bob", Email: "other@x.io", PasswordHash: "h"})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	names, err := r.CustomerUsernames(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"bob", "alice"}, names)

	admins, err := r.AdminUsernames(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"root"}, admins)

	_, err = r.FindAdmin(ctx, "bob")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestGormRepo_Sessions(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	ctx := context.Background()
	now := time.Now().Unix()

	live := &models.Session{JTI: "live", LoggedIn: true, Role: "admin", Username: "root", ExpiresAt: now + 60}
	stale := &models.Session{JTI: "stale", ExpiresAt: now - 60}
	require.NoError(t, r.CreateSession(ctx, live))
	require.NoError(t, r.CreateSession(ctx, stale))

	require.NoError(t, r.ClearSession(ctx, "live"))
	got, err := r.FindSessionByJTI(ctx, "live")
	require.NoError(t, err)
	assert.False(t, got.LoggedIn)
	assert.Empty(t, got.Role)
	assert.Empty(t, got.Username)

	assert.ErrorIs(t, r.ClearSession(ctx, "missing"), gorm.ErrRecordNotFound)

	n, err := r.DeleteExpiredSessions(ctx, now)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	_, err = r.FindSessionByJTI(ctx, "stale")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
