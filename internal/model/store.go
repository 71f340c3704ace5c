package model

import (
	"fmt"
	"time"
)

// Store belongs to exactly one tenant and carries a per-tenant sequence
// number (1, 2, 3, ...) used to build its display identifier. The pair
// (business_id, store_sequence) is unique; gaps left by deletions are
// tolerated and never renumbered.
type Store struct {
	ID            uint   `json:"id" gorm:"primaryKey"`
	BusinessID    uint   `json:"business_id" gorm:"uniqueIndex:idx_stores_business_sequence;uniqueIndex:idx_stores_business_name;not null"`
	StoreSequence int    `json:"store_sequence" gorm:"uniqueIndex:idx_stores_business_sequence;not null"`
	Name          string `json:"store_name" gorm:"column:store_name;type:varchar(200);uniqueIndex:idx_stores_business_name;index;not null"`
	Address       string `json:"store_address" gorm:"column:store_address;type:varchar(500)"`
	City          string `json:"store_city" gorm:"column:store_city;type:varchar(100)"`
	State         string `json:"store_state" gorm:"column:store_state;type:varchar(100)"`
	Country       string `json:"store_country" gorm:"column:store_country;type:varchar(100)"`
	Pincode       string `json:"store_pincode" gorm:"column:store_pincode;type:varchar(20)"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Store) TableName() string {
	return "stores"
}

// DisplayID returns the human-facing store identifier, e.g. "STR3".
func (s *Store) DisplayID() string {
	return fmt.Sprintf("STR%d", s.StoreSequence)
}
