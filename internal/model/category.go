package model

import "time"

// Category is a per-tenant product category. Names are unique within the
// tenant, compared case-insensitively on the write paths.
type Category struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	BusinessID  uint   `json:"business_id" gorm:"uniqueIndex:idx_categories_business_name;not null"`
	Name        string `json:"name" gorm:"type:varchar(100);uniqueIndex:idx_categories_business_name;index;not null"`
	Description string `json:"description" gorm:"type:varchar(500)"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Category) TableName() string {
	return "categories"
}
