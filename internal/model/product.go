package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product represents a listing created and owned by a seller.
// Deletes are hard deletes; a removed listing leaves no tombstone.
type Product struct {
	ID          uuid.UUID       `json:"id" gorm:"type:char(36);primaryKey"`
	UserID      uuid.UUID       `json:"user_id" gorm:"type:char(36);not null;index"`
	Name        string          `json:"name" gorm:"size:255;not null"`
	Slug        string          `json:"slug" gorm:"size:255;index"`
	Description string          `json:"description" gorm:"type:text;not null"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(20,2);not null"`
	Quantity    int             `json:"quantity" gorm:"not null;default:0"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`

	// Relations
	User User `json:"-" gorm:"foreignKey:UserID"`
}

// BeforeCreate sets UUID before creating the record.
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
