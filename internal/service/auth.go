package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Skotchmaster/storefront/internal/events"
	"github.com/Skotchmaster/storefront/internal/hash"
	"github.com/Skotchmaster/storefront/internal/identity"
	"github.com/Skotchmaster/storefront/internal/logging"
	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/repo"
)

type AuthService struct {
	Repo   *repo.GormRepo
	Events events.Publisher
	// HashCost overrides the bcrypt cost; zero means hash.DefaultCost.
	HashCost int
}

type RegisterInput struct {
	Role     identity.Role
	Username string
	Email    string
	Password string
}

type UserDirectory struct {
	Customers []string `json:"customers"`
	Admins    []string `json:"admins"`
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) error {
	l := logging.FromContext(ctx).With("svc", "auth.register", "role", in.Role, "username", in.Username)

	if in.Role != identity.RoleCustomer && in.Role != identity.RoleAdmin {
		return ErrForbidden
	}
	if in.Username == "" || in.Password == "" || (in.Role == identity.RoleCustomer && in.Email == "") {
		return ErrMissingFields
	}

	exists, err := s.accountExists(ctx, in.Role, in.Username)
	if err != nil {
		l.Error("register_error", "status", 500, "reason", "cannot look up account", "error", err)
		return dbError(err)
	}
	if exists {
		return ErrAlreadyExists
	}

	pwHash, err := hash.HashPassword(in.Password, s.HashCost)
	if err != nil {
		l.Error("register_error", "status", 500, "reason", "cannot hash the password", "error", err)
		return err
	}

	var eventType string
	switch in.Role {
	case identity.RoleCustomer:
		err = s.Repo.CreateCustomer(ctx, &models.Customer{Username: in.Username, Email: in.Email, PasswordHash: pwHash})
		eventType = events.CustomerRegistered
	case identity.RoleAdmin:
		err = s.Repo.CreateAdmin(ctx, &models.Admin{Username: in.Username, PasswordHash: pwHash})
		eventType = events.AdminRegistered
	default:
		return ErrForbidden
	}
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrAlreadyExists
		}
		l.Error("register_error", "status", 500, "reason", "cannot save account", "error", err)
		return dbError(err)
	}

	s.publish(ctx, in.Username, events.UserEvent{Type: eventType, Username: in.Username})
	l.Info("register_success")
	return nil
}

// Authenticate checks a password and returns the identity a new session
// should carry. It does not touch sessions itself.
func (s *AuthService) Authenticate(ctx context.Context, role identity.Role, username, password string) (identity.Identity, error) {
	l := logging.FromContext(ctx).With("svc", "auth.authenticate", "role", role, "username", username)

	if username == "" || password == "" {
		return identity.Anonymous(), ErrMissingFields
	}

	var pwHash string
	switch role {
	case identity.RoleCustomer:
		c, err := s.Repo.FindCustomer(ctx, username)
		if err != nil {
			return identity.Anonymous(), lookupError(err)
		}
		pwHash = c.PasswordHash
	case identity.RoleAdmin:
		a, err := s.Repo.FindAdmin(ctx, username)
		if err != nil {
			return identity.Anonymous(), lookupError(err)
		}
		pwHash = a.PasswordHash
	default:
		return identity.Anonymous(), ErrForbidden
	}

	if !hash.CheckPassword(pwHash, password) {
		l.Warn("login_failed", "reason", "password mismatch")
		return identity.Anonymous(), ErrInvalidCredentials
	}

	return identity.Identity{LoggedIn: true, Role: role, Username: username}, nil
}

func (s *AuthService) ListUsers(ctx context.Context) (*UserDirectory, error) {
	customers, err := s.Repo.CustomerUsernames(ctx)
	if err != nil {
		return nil, dbError(err)
	}
	admins, err := s.Repo.AdminUsernames(ctx)
	if err != nil {
		return nil, dbError(err)
	}
	return &UserDirectory{Customers: customers, Admins: admins}, nil
}

func (s *AuthService) accountExists(ctx context.Context, role identity.Role, username string) (bool, error) {
	var err error
	switch role {
	case identity.RoleCustomer:
		_, err = s.Repo.FindCustomer(ctx, username)
	case identity.RoleAdmin:
		_, err = s.Repo.FindAdmin(ctx, username)
	default:
		return false, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *AuthService) publish(ctx context.Context, key string, event any) {
	if s.Events == nil {
		return
	}
	if err := s.Events.Publish(ctx, events.TopicUsers, key, event); err != nil {
		logging.FromContext(ctx).Error("publish_failed", "topic", events.TopicUsers, "error", err)
	}
}

func lookupError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return dbError(err)
}
