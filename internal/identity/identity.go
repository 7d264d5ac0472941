// Package identity carries the caller resolved from the session cookie
// through a request. Handlers and services receive it explicitly.
package identity

import "context"

type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

type Identity struct {
	// SessionID is the jti of the caller's session row, empty for callers
	// without a session.
	SessionID string
	LoggedIn  bool
	Role      Role
	Username  string
}

func Anonymous() Identity { return Identity{} }

func (i Identity) IsAdmin() bool {
	return i.LoggedIn && i.Role == RoleAdmin
}

func (i Identity) HasSession() bool {
	return i.SessionID != ""
}

type ctxKey struct{}

func IntoContext(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

func FromContext(ctx context.Context) Identity {
	if v, ok := ctx.Value(ctxKey{}).(Identity); ok {
		return v
	}
	return Anonymous()
}
