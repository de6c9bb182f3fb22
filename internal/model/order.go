package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderStatus represents the status of an order. Orders are created as
// pending and there is no transition endpoint.
type OrderStatus string

const (
	OrderStatusPending OrderStatus = "pending"
)

// Order represents a buyer's purchase of a product. TotalPrice is derived
// from the product price at the time of the last write, not snapshotted at
// creation.
type Order struct {
	ID         uuid.UUID       `json:"id" gorm:"type:char(36);primaryKey"`
	UserID     uuid.UUID       `json:"user_id" gorm:"type:char(36);not null;index"`
	ProductID  uuid.UUID       `json:"product_id" gorm:"type:char(36);not null;index"`
	Quantity   int             `json:"quantity" gorm:"not null"`
	TotalPrice decimal.Decimal `json:"total_price" gorm:"type:decimal(20,2);not null"`
	Status     OrderStatus     `json:"status" gorm:"type:varchar(20);not null;default:'pending';index"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`

	// Relations
	User    User    `json:"-" gorm:"foreignKey:UserID"`
	Product Product `json:"-" gorm:"foreignKey:ProductID"`
}

// BeforeCreate sets UUID before creating the record.
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}
