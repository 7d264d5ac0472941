package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/storefront/internal/events"
	"github.com/Skotchmaster/storefront/internal/identity"
)

func TestAuthService_Register_Validation(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()

	tests := []struct {
		name string
		in   RegisterInput
		want error
	}{
		{name: "customer without email", in: RegisterInput{Role: identity.RoleCustomer, Username: "bob", Password: "pw"}, want: ErrMissingFields},
		{name: "customer without password", in: RegisterInput{Role: identity.RoleCustomer, Username: "bob", Email: "b@x.io"}, want: ErrMissingFields},
		{name: "admin without username", in: RegisterInput{Role: identity.RoleAdmin, Password: "pw"}, want: ErrMissingFields},
		{name: "unknown role", in: RegisterInput{Role: "owner", Username: "bob", Password: "pw"}, want: ErrForbidden},
	}

	for _, tt := range tests {
		err := env.Auth.Register(ctx, tt.in)
		assert.ErrorIs(t, err, tt.want, tt.name)
	}
	assert.Empty(t, env.Events.Messages())
}

func TestAuthService_Register_DuplicateUsername(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()

	in := RegisterInput{Role: identity.RoleCustomer, Username: "alice", Email: "a@x.io", Password: "pw1"}
	require.NoError(t, env.Auth.Register(ctx, in))

	in.Password = "another"
	err := env.Auth.Register(ctx, in)
	require.ErrorIs(t, err, ErrAlreadyExists)

	dir, err := env.Auth.ListUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"alice"}, dir.Customers)
}

func TestAuthService_Register_SameNameAcrossRoles(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.Auth.Register(ctx, RegisterInput{Role: identity.RoleCustomer, Username: "sam", Email: "s@x.io", Password: "pw"}))
	require.NoError(t, env.Auth.Register(ctx, RegisterInput{Role: identity.RoleAdmin, Username: "sam", Password: "pw"}))

	dir, err := env.Auth.ListUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"sam"}, dir.Customers)
	assert.Equal(t, []string{"sam"}, dir.Admins)

	msgs := env.Events.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, events.TopicUsers, msgs[0].Topic)
	assert.Equal(t, events.UserEvent{Type: events.CustomerRegistered, Username: "sam"}, msgs[0].Event)
	assert.Equal(t, events.UserEvent{Type: events.AdminRegistered, Username: "sam"}, msgs[1].Event)
}

func TestAuthService_Register_StoresHashOnly(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.Auth.Register(ctx, RegisterInput{Role: identity.RoleCustomer, Username: "alice", Email: "a@x.io", Password: "pw1"}))

	c, err := env.Repo.FindCustomer(ctx, "alice")
	require.NoError(t, err)
	assert.NotEqual(t, "pw1", c.PasswordHash)
	assert.NotEmpty(t, c.PasswordHash)
	assert.Equal(t, "a@x.io", c.Email)
}

func TestAuthService_Authenticate(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.Auth.Register(ctx, RegisterInput{Role: identity.RoleCustomer, Username: "alice", Email: "a@x.io", Password: "pw1"}))
	require.NoError(t, env.Auth.Register(ctx, RegisterInput{Role: identity.RoleAdmin, Username: "root", Password: "toor"}))

	who, err := env.Auth.Authenticate(ctx, identity.RoleCustomer, "alice", "pw1")
	require.NoError(t, err)
	assert.Equal(t, identity.Identity{LoggedIn: true, Role: identity.RoleCustomer, Username: "alice"}, who)

	who, err = env.Auth.Authenticate(ctx, identity.RoleAdmin, "root", "toor")
	require.NoError(t, err)
	assert.True(t, who.IsAdmin())

	_, err = env.Auth.Authenticate(ctx, identity.RoleCustomer, "alice", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = env.Auth.Authenticate(ctx, identity.RoleCustomer, "nobody", "pw1")
	assert.ErrorIs(t, err, ErrNotFound)

	// customers and admins live in separate stores
	_, err = env.Auth.Authenticate(ctx, identity.RoleAdmin, "alice", "pw1")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = env.Auth.Authenticate(ctx, identity.RoleCustomer, "", "")
	assert.ErrorIs(t, err, ErrMissingFields)
}

func TestAuthService_ListUsers_Empty(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	dir, err := env.Auth.ListUsers(context.Background())
	require.NoError(t, err)
	assert.Empty(t, dir.Customers)
	assert.Empty(t, dir.Admins)
}

func TestAuthService_Register_LongPassword(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()
	long := strings.Repeat("p", 80)

	require.NoError(t, env.Auth.Register(ctx, RegisterInput{Role: identity.RoleCustomer, Username: "bob", Email: "b@x.io", Password: long}))
	require.NoError(t, env.Auth.Register(ctx, RegisterInput{Role: identity.RoleAdmin, Username: "root", Password: long}))

	who, err := env.Auth.Authenticate(ctx, identity.RoleCustomer, "bob", long)
	require.NoError(t, err)
	assert.Equal(t, "bob", who.Username)

	_, err = env.Auth.Authenticate(ctx, identity.RoleAdmin, "root", long)
	require.NoError(t, err)

	_, err = env.Auth.Authenticate(ctx, identity.RoleCustomer, "bob", "short")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
