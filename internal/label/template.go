package label

import (
	"errors"
	"sort"
	"strings"

	"backoffice-service/internal/apperr"
	"backoffice-service/internal/model"

	"gorm.io/gorm"
)

// MergeResult reports what DefineOrMergeTemplate did.
type MergeResult struct {
	Template  *model.EmployeeLabel
	NewValues int
	Created   bool
}

// DefineOrMergeTemplate creates the employee label template for
// (businessID, name) or merges the given values into the existing one.
// Values are normalized first; merging is a case-sensitive set union and
// NewValues reports how many were net-new.
func DefineOrMergeTemplate(db *gorm.DB, businessID uint, name string, values []string) (*MergeResult, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.Validation("label_name is required", "label_name")
	}
	normalized := NormalizeValues(values)
	if len(normalized) == 0 {
		return nil, apperr.Validation("label_values must contain at least one non-empty value", "label_values")
	}

	var tmpl model.EmployeeLabel
	err := db.Where("business_id = ? AND label_name = ? AND emp_id IS NULL", businessID, name).
		First(&tmpl).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		tmpl = model.EmployeeLabel{
			BusinessID:  businessID,
			LabelName:   name,
			LabelValues: normalized,
		}
		createErr := db.Create(&tmpl).Error
		if createErr == nil {
			return &MergeResult{Template: &tmpl, NewValues: len(normalized), Created: true}, nil
		}
		// Losing the insert race against idx_employee_labels_template means
		// another request created the template; merge into that row instead.
		if apperr.Translate(createErr).Kind != apperr.KindDuplicate {
			return nil, apperr.Translate(createErr)
		}
		err = db.Where("business_id = ? AND label_name = ? AND emp_id IS NULL", businessID, name).
			First(&tmpl).Error
	}
	if err != nil {
		return nil, apperr.Translate(err)
	}

	merged, added := MergeValues(tmpl.LabelValues, normalized)
	if added > 0 {
		tmpl.LabelValues = merged
		if err := db.Model(&tmpl).Update("label_values", tmpl.LabelValues).Error; err != nil {
			return nil, apperr.Translate(err)
		}
	}
	return &MergeResult{Template: &tmpl, NewValues: added}, nil
}

// ReplaceTemplate unconditionally overwrites the stored value array for
// (businessID, name), creating the template if it does not exist.
func ReplaceTemplate(db *gorm.DB, businessID uint, name string, values []string) (*model.EmployeeLabel, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.Validation("label_name is required", "label_name")
	}
	normalized := NormalizeValues(values)
	if len(normalized) == 0 {
		return nil, apperr.Validation("label_values must contain at least one non-empty value", "label_values")
	}

	var tmpl model.EmployeeLabel
	err := db.Where("business_id = ? AND label_name = ? AND emp_id IS NULL", businessID, name).
		First(&tmpl).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		tmpl = model.EmployeeLabel{
			BusinessID:  businessID,
			LabelName:   name,
			LabelValues: normalized,
		}
		createErr := db.Create(&tmpl).Error
		if createErr == nil {
			return &tmpl, nil
		}
		// A concurrent create beat us; overwrite the surviving row.
		if apperr.Translate(createErr).Kind != apperr.KindDuplicate {
			return nil, apperr.Translate(createErr)
		}
		err = db.Where("business_id = ? AND label_name = ? AND emp_id IS NULL", businessID, name).
			First(&tmpl).Error
	}
	if err != nil {
		return nil, apperr.Translate(err)
	}

	tmpl.LabelValues = normalized
	if err := db.Model(&tmpl).Update("label_values", tmpl.LabelValues).Error; err != nil {
		return nil, apperr.Translate(err)
	}
	return &tmpl, nil
}

// ListEmployeeLabelNames returns the distinct label names known for the
// tenant, template and instance rows alike, sorted lexicographically.
func ListEmployeeLabelNames(db *gorm.DB, businessID uint) ([]string, error) {
	var names []string
	err := db.Model(&model.EmployeeLabel{}).
		Where("business_id = ?", businessID).
		Distinct("label_name").
		Pluck("label_name", &names).Error
	if err != nil {
		return nil, apperr.Translate(err)
	}
	sort.Strings(names)
	return names, nil
}

// ListValues returns the union of the template's predefined values and
// every distinct value actually recorded in instance rows for the label,
// sorted. The value domain grows organically as values get assigned even
// when no template was ever defined.
func ListValues(db *gorm.DB, businessID uint, name string) ([]string, error) {
	var tmpl model.EmployeeLabel
	var templateValues []string
	err := db.Where("business_id = ? AND label_name = ? AND emp_id IS NULL", businessID, name).
		First(&tmpl).Error
	if err == nil {
		templateValues = tmpl.LabelValues
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Translate(err)
	}

	var observed []string
	err = db.Model(&model.EmployeeLabel{}).
		Where("business_id = ? AND label_name = ? AND emp_id IS NOT NULL AND label_value IS NOT NULL", businessID, name).
		Distinct("label_value").
		Pluck("label_value", &observed).Error
	if err != nil {
		return nil, apperr.Translate(err)
	}

	return unionSorted(templateValues, observed), nil
}
