package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/Skotchmaster/storefront/internal/models"
)

func (r *GormRepo) CreateSession(ctx context.Context, s *models.Session) error {
	return r.DB.WithContext(ctx).Create(s).Error
}

func (r *GormRepo) FindSessionByJTI(ctx context.Context, jti string) (*models.Session, error) {
	var s models.Session
	if err := r.DB.WithContext(ctx).Where("jti = ?", jti).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *GormRepo) SaveSession(ctx context.Context, s *models.Session) error {
	return r.DB.WithContext(ctx).Save(s).Error
}

// ClearSession drops the identity from a session but keeps the row, so the
// client's cookie stays valid as an anonymous session.
func (r *GormRepo) ClearSession(ctx context.Context, jti string) error {
	res := r.DB.WithContext(ctx).Model(&models.Session{}).
		Where("jti = ?", jti).
		Updates(map[string]any{
			"logged_in": false,
			"role":      "",
			"username":  "",
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormRepo) DeleteExpiredSessions(ctx context.Context, now int64) (int64, error) {
	res := r.DB.WithContext(ctx).Where("expires_at < ?", now).Delete(&models.Session{})
	return res.RowsAffected, res.Error
}
