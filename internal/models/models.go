package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Customer struct {
	ID           uint      `gorm:"primaryKey;autoIncrement"  json:"id"`
	Username     string    `gorm:"uniqueIndex;not null"      json:"username"`
	Email        string    `gorm:"not null"                  json:"email"`
	PasswordHash string    `gorm:"not null"                  json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

type Admin struct {
	ID           uint      `gorm:"primaryKey;autoIncrement"  json:"id"`
	Username     string    `gorm:"uniqueIndex;not null"      json:"username"`
	PasswordHash string    `gorm:"not null"                  json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Product is keyed in storage by ID; ProductID is the sequential number
// handed out by the catalog and is what admins address products by.
type Product struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"      json:"id"`
	ProductID   int       `gorm:"uniqueIndex;not null"      json:"productId"`
	Name        string    `gorm:"not null"                  json:"name"`
	Price       float64   `gorm:"not null"                  json:"price"`
	Description string    `gorm:"not null"                  json:"description"`
	Category    string    `gorm:"index;not null"            json:"category"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (p *Product) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

type Session struct {
	ID        uint   `gorm:"primaryKey"            json:"id"`
	JTI       string `gorm:"uniqueIndex;not null"  json:"jti"`
	LoggedIn  bool   `gorm:"not null"              json:"loggedIn"`
	Role      string `gorm:"not null"              json:"role"`
	Username  string `gorm:"not null"              json:"username"`
	ExpiresAt int64  `gorm:"index;not null"        json:"expiresAt"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CatalogLock holds a single row that every catalog writer updates first,
// which serialises writers for the rest of their transaction.
type CatalogLock struct {
	ID      uint `gorm:"primaryKey"`
	Version int64
}

func All() []any {
	return []any{&Customer{}, &Admin{}, &Product{}, &Session{}, &CatalogLock{}}
}
