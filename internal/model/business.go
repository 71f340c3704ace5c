package model

import (
	"fmt"
	"time"
)

// Business holds the display metadata for one tenant. Every other entity
// carries the matching BusinessID; exactly one Business row owns them.
type Business struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	BusinessID  uint   `json:"business_id" gorm:"uniqueIndex:idx_business_business_id;not null"`
	Name        string `json:"business_name" gorm:"column:business_name;type:varchar(200);not null"`
	Type        string `json:"business_type" gorm:"column:business_type;type:varchar(100)"`
	Category    string `json:"category" gorm:"type:varchar(100)"`
	OwnerName   string `json:"owner_name" gorm:"type:varchar(100);not null"`
	PhoneNumber string `json:"phone_number" gorm:"type:varchar(20);not null"`
	Email       string `json:"email" gorm:"type:varchar(100);not null"`
	GSTNumber   string `json:"gst_number" gorm:"column:gst_number;type:varchar(50)"`
	Address     string `json:"address" gorm:"type:text"`
	City        string `json:"city" gorm:"type:varchar(100)"`
	State       string `json:"state" gorm:"type:varchar(100)"`
	Pincode     string `json:"pincode" gorm:"type:varchar(20)"`
	Country     string `json:"country" gorm:"type:varchar(100)"`

	InvoicePrefix     string `json:"invoice_prefix" gorm:"type:varchar(20)"`
	BankAccountNumber string `json:"bank_account_number" gorm:"type:varchar(50)"`
	IFSCCode          string `json:"ifsc_code" gorm:"column:ifsc_code;type:varchar(20)"`
	UPIID             string `json:"upi_id" gorm:"column:upi_id;type:varchar(100)"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Business) TableName() string {
	return "business"
}

// DisplayID returns the human-facing business identifier, e.g. "BUS20000".
func (b *Business) DisplayID() string {
	return fmt.Sprintf("BUS%d", b.BusinessID)
}
