package model

import "fmt"

// Employee roles form a closed set. Owners are created by public
// registration; everyone else is created by an owner or admin.
const (
	RoleOwner    = "owner"
	RoleAdmin    = "admin"
	RoleManager  = "manager"
	RoleEmployee = "employee"
)

// ValidRole reports whether role is one of the known employee roles.
func ValidRole(role string) bool {
	switch role {
	case RoleOwner, RoleAdmin, RoleManager, RoleEmployee:
		return true
	}
	return false
}

// Employee belongs to exactly one tenant. EmpID is drawn from an
// install-wide sequence starting at 1000, so it is globally unique, not
// tenant-scoped. Custom fields live in EmployeeLabel instance rows, not on
// this struct.
type Employee struct {
	EmpID      uint `json:"emp_id" gorm:"primaryKey;column:emp_id;default:nextval('employee_emp_id_seq')"`
	BusinessID uint `json:"business_id" gorm:"index:idx_employees_business_role;not null"`

	Name         string `json:"name" gorm:"type:varchar(100);index;not null"`
	Email        string `json:"email" gorm:"type:varchar(100);index;not null"`
	PhoneNumber  string `json:"phone_number" gorm:"type:varchar(20);not null"`
	AadharNumber string `json:"aadhar_number" gorm:"type:varchar(12)"`
	Address      string `json:"address" gorm:"type:varchar(255)"`
	City         string `json:"city" gorm:"type:varchar(100)"`
	State        string `json:"state" gorm:"type:varchar(100)"`
	Country      string `json:"country" gorm:"type:varchar(100)"`
	Role         string `json:"role" gorm:"type:varchar(50);not null;default:employee;index:idx_employees_business_role"`
	JoiningDate  string `json:"joining_date" gorm:"type:varchar(10)"` // dd/mm/yyyy

	StoreID        *uint  `json:"store_id" gorm:"index"`
	HashedPassword string `json:"-" gorm:"type:varchar(255);not null"`

	CreatedBy *uint `json:"created_by,omitempty"`
	UpdatedBy *uint `json:"updated_by,omitempty"`

	Store *Store `json:"-" gorm:"foreignKey:StoreID"`
}

func (Employee) TableName() string {
	return "employees"
}

// DisplayID returns the human-facing user identifier, e.g. "USR1000".
func (e *Employee) DisplayID() string {
	return fmt.Sprintf("USR%d", e.EmpID)
}
