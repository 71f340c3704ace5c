package model

import (
	"time"

	"github.com/lib/pq"
)

// Label types for CustomLabel definitions.
const (
	LabelTypeEmployee = "employee"
	LabelTypeProduct  = "product"
)

// CustomLabel is a per-tenant label definition: a named custom attribute
// with a predefined value set, used for autocomplete when attaching custom
// fields to employees and products.
//
// Example: label "Blood Group" with values ["A+", "A-", "B+", "O+"].
type CustomLabel struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	LabelName   string         `json:"label_name" gorm:"type:varchar(100);uniqueIndex:idx_business_label_name_type;not null"`
	LabelValues pq.StringArray `json:"label_values" gorm:"type:text[];not null"`
	LabelType   string         `json:"label_type" gorm:"type:varchar(50);uniqueIndex:idx_business_label_name_type;not null;default:employee"`
	BusinessID  uint           `json:"business_id" gorm:"uniqueIndex:idx_business_label_name_type;index;not null"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

func (CustomLabel) TableName() string {
	return "custom_labels"
}

// EmployeeLabel stores employee custom fields. Two row shapes share the
// table:
//
//   - template rows (EmpID nil): the label vocabulary for a tenant, with
//     LabelValues holding the predefined options;
//   - instance rows (EmpID set): one row per employee per label, with
//     LabelValue holding the selected value.
//
// Template rows are kept unique per (business_id, label_name) by the
// partial index idx_employee_labels_template; instance rows carry no
// stored uniqueness, callers replace them wholesale.
type EmployeeLabel struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	EmpID       *uint          `json:"emp_id" gorm:"column:emp_id;index:idx_emp_business_label"`
	BusinessID  uint           `json:"business_id" gorm:"index:idx_emp_business_label;index:idx_business_label;not null"`
	LabelName   string         `json:"label_name" gorm:"type:varchar(100);index:idx_emp_business_label;index:idx_business_label;not null"`
	LabelValue  *string        `json:"label_value" gorm:"type:varchar(500)"`
	LabelValues pq.StringArray `json:"label_values" gorm:"type:text[]"`

	Employee *Employee `json:"-" gorm:"foreignKey:EmpID;references:EmpID;constraint:OnDelete:CASCADE"`
}

func (EmployeeLabel) TableName() string {
	return "employee_labels"
}
