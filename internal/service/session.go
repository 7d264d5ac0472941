package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Skotchmaster/storefront/internal/identity"
	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/repo"
	"github.com/Skotchmaster/storefront/internal/tokens"
)

const DefaultSessionTTL = 24 * time.Hour

// SessionService issues and resolves the opaque session tokens handed to
// clients. All identity state stays in the sessions table.
type SessionService struct {
	Repo   *repo.GormRepo
	Secret []byte
	TTL    time.Duration
	Now    func() time.Time
}

type IssuedSession struct {
	Token     string
	ExpiresAt time.Time
}

func (s *SessionService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *SessionService) ttl() time.Duration {
	if s.TTL > 0 {
		return s.TTL
	}
	return DefaultSessionTTL
}

// Resolve maps a client token to the identity of its session.
func (s *SessionService) Resolve(ctx context.Context, token string) (identity.Identity, error) {
	claims, err := tokens.SessionClaimsFromToken(token, s.Secret)
	if err != nil {
		return identity.Anonymous(), ErrInvalidSession
	}

	sess, err := s.Repo.FindSessionByJTI(ctx, claims.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return identity.Anonymous(), ErrInvalidSession
		}
		return identity.Anonymous(), dbError(err)
	}
	if sess.ExpiresAt <= s.now().Unix() {
		return identity.Anonymous(), ErrInvalidSession
	}

	return identity.Identity{
		SessionID: sess.JTI,
		LoggedIn:  sess.LoggedIn,
		Role:      identity.Role(sess.Role),
		Username:  sess.Username,
	}, nil
}

// Establish records who as logged in. The caller's current session row is
// reused when it still exists, otherwise a new one is created. Either way
// the row gets a fresh jti, so tokens issued before the login stop resolving.
func (s *SessionService) Establish(ctx context.Context, current, who identity.Identity) (*IssuedSession, error) {
	exp := s.now().Add(s.ttl())

	var sess *models.Session
	if current.HasSession() {
		found, err := s.Repo.FindSessionByJTI(ctx, current.SessionID)
		switch {
		case err == nil:
			sess = found
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return nil, dbError(err)
		}
	}

	if sess == nil {
		sess = &models.Session{}
	}
	sess.JTI = uuid.NewString()
	sess.LoggedIn = true
	sess.Role = string(who.Role)
	sess.Username = who.Username
	sess.ExpiresAt = exp.Unix()

	var err error
	if sess.ID == 0 {
		err = s.Repo.CreateSession(ctx, sess)
	} else {
		err = s.Repo.SaveSession(ctx, sess)
	}
	if err != nil {
		return nil, dbError(err)
	}

	token, err := tokens.SignSession(sess.JTI, exp, s.Secret)
	if err != nil {
		return nil, err
	}
	return &IssuedSession{Token: token, ExpiresAt: exp}, nil
}

// Clear logs the caller out. Callers without a session are already
// logged out, so that is not an error.
func (s *SessionService) Clear(ctx context.Context, current identity.Identity) error {
	if !current.HasSession() {
		return nil
	}
	if err := s.Repo.ClearSession(ctx, current.SessionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return dbError(err)
	}
	return nil
}

func (s *SessionService) PurgeExpired(ctx context.Context) (int64, error) {
	n, err := s.Repo.DeleteExpiredSessions(ctx, s.now().Unix())
	if err != nil {
		return 0, dbError(err)
	}
	return n, nil
}
