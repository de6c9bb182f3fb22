package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role is the closed set of user roles.
type Role string

const (
	RoleBuyer  Role = "buyer"
	RoleSeller Role = "seller"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleBuyer || r == RoleSeller
}

// User represents a registered marketplace user.
type User struct {
	ID           uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Name         string    `json:"name" gorm:"size:255;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Role         Role      `json:"role" gorm:"type:varchar(20);not null;index"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	Products []Product `json:"products,omitempty" gorm:"foreignKey:UserID"`
	Orders   []Order   `json:"orders,omitempty" gorm:"foreignKey:UserID"`
}

// BeforeCreate sets UUID before creating the record.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
