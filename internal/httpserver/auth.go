package httpserver

import (
	"fmt"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/identity"
	"github.com/Skotchmaster/storefront/internal/logging"
	"github.com/Skotchmaster/storefront/internal/middleware/session"
	"github.com/Skotchmaster/storefront/internal/service"
	"github.com/Skotchmaster/storefront/internal/transport"
)

type AuthHTTP struct {
	Svc      *service.AuthService
	Sessions *service.SessionService
	Cookies  *session.Loader
}

func (h *AuthHTTP) RegisterCustomer(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.register_customer")

	var req transport.RegisterCustomerRequest
	if err := c.Bind(&req); err != nil {
		return bindFailed(c, l, "register_customer_failed", err)
	}

	if err := h.Svc.Register(ctx, req.Input()); err != nil {
		return failWith(c, l, "register_customer_failed", err,
			errMessage{service.ErrMissingFields, "Missing fields"},
			errMessage{service.ErrAlreadyExists, "Customer already exists"},
		)
	}
	return ok(c, "Customer registered successfully", nil)
}

func (h *AuthHTTP) CreateAdmin(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.create_admin")

	var req transport.RegisterAdminRequest
	if err := c.Bind(&req); err != nil {
		return bindFailed(c, l, "create_admin_failed", err)
	}

	if err := h.Svc.Register(ctx, req.Input()); err != nil {
		return failWith(c, l, "create_admin_failed", err,
			errMessage{service.ErrMissingFields, "Missing username or password"},
			errMessage{service.ErrAlreadyExists, "Admin already exists"},
		)
	}
	return ok(c, "Admin created successfully", nil)
}

func (h *AuthHTTP) LoginCustomer(c echo.Context) error {
	return h.login(c, identity.RoleCustomer, "Customer not found", "Welcome back, %s")
}

func (h *AuthHTTP) LoginAdmin(c echo.Context) error {
	return h.login(c, identity.RoleAdmin, "Admin not found", "Admin logged in as %s")
}

func (h *AuthHTTP) login(c echo.Context, role identity.Role, notFound, welcome string) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login", "role", role)

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		return bindFailed(c, l, "login_failed", err)
	}

	who, err := h.Svc.Authenticate(ctx, role, req.Username, req.Password)
	if err != nil {
		return failWith(c, l, "login_failed", err,
			errMessage{service.ErrMissingFields, "Missing username or password"},
			errMessage{service.ErrNotFound, notFound},
			errMessage{service.ErrInvalidCredentials, "Incorrect password"},
		)
	}

	issued, err := h.Sessions.Establish(ctx, identity.FromContext(ctx), who)
	if err != nil {
		return failWith(c, l, "login_failed", err)
	}
	h.Cookies.SetSession(c, issued)

	l.Info("login_success", "username", who.Username)
	return ok(c, fmt.Sprintf(welcome, who.Username), nil)
}

// Logout always succeeds from the caller's point of view.
func (h *AuthHTTP) Logout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.logout")

	if err := h.Sessions.Clear(ctx, identity.FromContext(ctx)); err != nil {
		l.Error("logout_failed", "reason", "cannot clear session", "error", err)
	}
	return ok(c, "Logged out successfully", nil)
}

func (h *AuthHTTP) ShowAllUsers(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.show_all_users")

	dir, err := h.Svc.ListUsers(ctx)
	if err != nil {
		return failWith(c, l, "show_all_users_failed", err)
	}
	return ok(c, "", echo.Map{"customers": dir.Customers, "admins": dir.Admins})
}
