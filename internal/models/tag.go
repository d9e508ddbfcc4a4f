package models

import "time"

// Tag is a catalog label. Names are globally unique; the unique index
// is what backs the duplicate-name Conflict on strict creation.
type Tag struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"uniqueIndex;not null" validate:"required"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
