package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// CustomField is one name/value pair stored inline on a product row.
type CustomField struct {
	LabelName  string `json:"label_name"`
	LabelValue string `json:"label_value"`
}

// CustomFieldList stores product custom fields as a jsonb column.
type CustomFieldList []CustomField

func (l CustomFieldList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	return json.Marshal(l)
}

func (l *CustomFieldList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return errors.New("unsupported type for CustomFieldList")
	}
}

// Product belongs to exactly one tenant. Barcode is required and the
// productid / barcode / sku values are each unique within the tenant.
type Product struct {
	ID         uint `json:"id" gorm:"primaryKey"`
	BusinessID uint `json:"business_id" gorm:"uniqueIndex:idx_products_business_productid;uniqueIndex:idx_products_business_barcode;uniqueIndex:idx_products_business_sku;not null"`

	ProductID   string `json:"productid" gorm:"column:productid;type:varchar(100);uniqueIndex:idx_products_business_productid;not null"`
	ProductName string `json:"productname" gorm:"column:productname;type:varchar(500);index;not null"`
	Barcode     string `json:"barcode" gorm:"type:varchar(100);uniqueIndex:idx_products_business_barcode;not null"`
	SKU         *string `json:"sku" gorm:"type:varchar(100);uniqueIndex:idx_products_business_sku"`

	Description string  `json:"description" gorm:"type:text"`
	Brand       string  `json:"brand" gorm:"type:varchar(100)"`
	Category    string  `json:"category" gorm:"type:varchar(100)"`
	Price       float64 `json:"price" gorm:"not null"`
	UnitValue   float64 `json:"unitvalue" gorm:"column:unitvalue"`
	Unit        string  `json:"unit" gorm:"type:varchar(50)"`
	Discount    float64 `json:"discount"`
	GST         float64 `json:"gst" gorm:"column:gst"`

	Quantity     int `json:"quantity" gorm:"default:0"`
	OpeningStock int `json:"openingstock" gorm:"column:openingstock;default:0"`

	MfgDate    string `json:"mfgdate" gorm:"column:mfgdate;type:varchar(20)"`
	ExpiryDate string `json:"expirydate" gorm:"column:expirydate;type:varchar(20)"`

	SupplierName    string `json:"suppliername" gorm:"column:suppliername;type:varchar(200)"`
	SupplierContact string `json:"suppliercontact" gorm:"column:suppliercontact;type:varchar(100)"`

	CustomFields CustomFieldList `json:"customfields" gorm:"column:customfields;type:jsonb"`

	UpdatedBy string    `json:"updated_by" gorm:"type:varchar(100)"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Product) TableName() string {
	return "products"
}

// DisplayID returns the human-facing product identifier, e.g. "PRD42".
func (p *Product) DisplayID() string {
	return fmt.Sprintf("PRD%d", p.ID)
}
