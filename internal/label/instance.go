package label

import (
	"strings"

	"backoffice-service/internal/apperr"
	"backoffice-service/internal/model"

	"gorm.io/gorm"
)

// Pair is one custom field assignment on an employee.
type Pair struct {
	LabelName  string `json:"label_name"`
	LabelValue string `json:"label_value"`
}

// RecordInstance appends one instance row for the employee. The store
// enforces no uniqueness here: calling this twice for the same
// (employee, label) without removing the prior row accumulates duplicates,
// so update paths must go through ReplaceAllInstances.
func RecordInstance(db *gorm.DB, businessID, empID uint, name, value string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return apperr.Validation("label_name is required", "label_name")
	}
	row := model.EmployeeLabel{
		EmpID:      &empID,
		BusinessID: businessID,
		LabelName:  name,
		LabelValue: &value,
	}
	if err := db.Create(&row).Error; err != nil {
		return apperr.Translate(err)
	}
	return nil
}

// ReplaceAllInstances deletes every instance row for the employee and
// inserts the given set, all inside one transaction so the employee never
// observably has an empty custom-field set mid-update. The operation is
// not incremental: omitting a previously set label removes it.
func ReplaceAllInstances(db *gorm.DB, businessID, empID uint, pairs []Pair) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("business_id = ? AND emp_id = ?", businessID, empID).
			Delete(&model.EmployeeLabel{}).Error; err != nil {
			return apperr.Translate(err)
		}
		if len(pairs) == 0 {
			return nil
		}
		rows := make([]model.EmployeeLabel, 0, len(pairs))
		for _, p := range pairs {
			name := strings.TrimSpace(p.LabelName)
			if name == "" {
				return apperr.Validation("label_name is required", "label_name")
			}
			value := p.LabelValue
			id := empID
			rows = append(rows, model.EmployeeLabel{
				EmpID:      &id,
				BusinessID: businessID,
				LabelName:  name,
				LabelValue: &value,
			})
		}
		if err := tx.Create(&rows).Error; err != nil {
			return apperr.Translate(err)
		}
		return nil
	})
}

// InstancesByEmployee loads the instance rows for the given employees in
// one batched query and groups them by emp_id. This is the bulk hydration
// path for list responses; callers must not fall back to per-employee
// queries.
func InstancesByEmployee(db *gorm.DB, businessID uint, empIDs []uint) (map[uint][]Pair, error) {
	result := make(map[uint][]Pair, len(empIDs))
	if len(empIDs) == 0 {
		return result, nil
	}

	var rows []model.EmployeeLabel
	err := db.Where("business_id = ? AND emp_id IN ?", businessID, empIDs).
		Order("id").
		Find(&rows).Error
	if err != nil {
		return nil, apperr.Translate(err)
	}

	for _, row := range rows {
		if row.EmpID == nil || row.LabelValue == nil {
			continue
		}
		result[*row.EmpID] = append(result[*row.EmpID], Pair{
			LabelName:  row.LabelName,
			LabelValue: *row.LabelValue,
		})
	}
	return result, nil
}

// MatchEmployeeIDs returns the distinct employee ids in the tenant whose
// instance value for the label case-insensitively contains the given
// substring.
func MatchEmployeeIDs(db *gorm.DB, businessID uint, name, contains string) ([]uint, error) {
	var ids []uint
	err := db.Model(&model.EmployeeLabel{}).
		Where("business_id = ? AND label_name = ? AND emp_id IS NOT NULL AND label_value ILIKE ?",
			businessID, name, "%"+contains+"%").
		Distinct("emp_id").
		Pluck("emp_id", &ids).Error
	if err != nil {
		return nil, apperr.Translate(err)
	}
	return ids, nil
}
