package service

import (
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/Skotchmaster/storefront/internal/db/dbtest"
	"github.com/Skotchmaster/storefront/internal/events"
	"github.com/Skotchmaster/storefront/internal/identity"
	"github.com/Skotchmaster/storefront/internal/repo"
)

type testEnv struct {
	Repo     *repo.GormRepo
	Events   *events.Recorder
	Auth     *AuthService
	Catalog  *CatalogService
	Sessions *SessionService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	r := &repo.GormRepo{DB: dbtest.New(t)}
	rec := &events.Recorder{}
	return &testEnv{
		Repo:     r,
		Events:   rec,
		Auth:     &AuthService{Repo: r, Events: rec, HashCost: bcrypt.MinCost},
		Catalog:  &CatalogService{Repo: r, Events: rec},
		Sessions: &SessionService{Repo: r, Secret: []byte("test-session-secret")},
	}
}

var (
	rootAdmin = identity.Identity{SessionID: "s-admin", LoggedIn: true, Role: identity.RoleAdmin, Username: "root"}
	alice     = identity.Identity{SessionID: "s-alice", LoggedIn: true, Role: identity.RoleCustomer, Username: "alice"}
)

func ptr[T any](v T) *T { return &v }
