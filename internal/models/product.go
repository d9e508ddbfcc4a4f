package models

import "time"

// Product represents a catalog product. Prices are stored in currency
// minor units (cents), so they stay integers end to end.
//
// gorm.Model is not embedded on purpose: its DeletedAt field would turn
// every Delete into a soft delete, and catalog deletes are hard deletes
// that must also drop the product_tags join rows.
type Product struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Title       string    `json:"title" gorm:"not null" validate:"required"`
	Price       int       `json:"price" gorm:"not null;default:0" validate:"gte=0"`
	Description string    `json:"description" gorm:"not null" validate:"required"`
	Stock       int       `json:"stock" gorm:"not null;default:0" validate:"gte=0"`
	Tags        []Tag     `json:"tags" gorm:"many2many:product_tags"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
