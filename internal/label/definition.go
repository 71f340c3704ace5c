package label

import (
	"errors"
	"sort"
	"strings"

	"backoffice-service/internal/apperr"
	"backoffice-service/internal/model"

	"gorm.io/gorm"
)

// Definition operations manage the custom_labels table: per-tenant label
// definitions with a predefined value array, typed employee or product.
// Product custom-field vocabularies live exclusively here.

func normalizeType(labelType string) (string, error) {
	switch labelType {
	case "":
		return model.LabelTypeEmployee, nil
	case model.LabelTypeEmployee, model.LabelTypeProduct:
		return labelType, nil
	default:
		return "", apperr.Validation("label_type must be 'employee' or 'product'", "label_type")
	}
}

// CreateDefinition creates a label definition, rejecting duplicates for
// the same (tenant, name, type) with a conflict error.
func CreateDefinition(db *gorm.DB, businessID uint, name, labelType string, values []string) (*model.CustomLabel, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.Validation("label_name is required", "label_name")
	}
	labelType, err := normalizeType(labelType)
	if err != nil {
		return nil, err
	}
	normalized := NormalizeValues(values)
	if len(normalized) == 0 {
		return nil, apperr.Validation("label_values must contain at least one non-empty value", "label_values")
	}

	var existing model.CustomLabel
	err = db.Where("business_id = ? AND label_name = ? AND label_type = ?", businessID, name, labelType).
		First(&existing).Error
	if err == nil {
		return nil, apperr.Duplicate("a label with this name already exists", "label_name")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Translate(err)
	}

	def := model.CustomLabel{
		LabelName:   name,
		LabelValues: normalized,
		LabelType:   labelType,
		BusinessID:  businessID,
	}
	if err := db.Create(&def).Error; err != nil {
		return nil, apperr.Translate(err)
	}
	return &def, nil
}

// MergeDefinition unions values into an existing definition, creating it
// when absent. Returns the definition and the count of net-new values.
func MergeDefinition(db *gorm.DB, businessID uint, name, labelType string, values []string) (*model.CustomLabel, int, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, 0, apperr.Validation("label_name is required", "label_name")
	}
	labelType, err := normalizeType(labelType)
	if err != nil {
		return nil, 0, err
	}
	normalized := NormalizeValues(values)
	if len(normalized) == 0 {
		return nil, 0, apperr.Validation("label_values must contain at least one non-empty value", "label_values")
	}

	var def model.CustomLabel
	err = db.Where("business_id = ? AND label_name = ? AND label_type = ?", businessID, name, labelType).
		First(&def).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		def = model.CustomLabel{
			LabelName:   name,
			LabelValues: normalized,
			LabelType:   labelType,
			BusinessID:  businessID,
		}
		if err := db.Create(&def).Error; err != nil {
			return nil, 0, apperr.Translate(err)
		}
		return &def, len(normalized), nil
	}
	if err != nil {
		return nil, 0, apperr.Translate(err)
	}

	merged, added := MergeValues(def.LabelValues, normalized)
	if added > 0 {
		def.LabelValues = merged
		if err := db.Model(&def).Update("label_values", def.LabelValues).Error; err != nil {
			return nil, 0, apperr.Translate(err)
		}
	}
	return &def, added, nil
}

// GetDefinition fetches one definition scoped to the tenant.
func GetDefinition(db *gorm.DB, businessID, id uint) (*model.CustomLabel, error) {
	var def model.CustomLabel
	err := db.Where("id = ? AND business_id = ?", id, businessID).First(&def).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("custom label not found")
	}
	if err != nil {
		return nil, apperr.Translate(err)
	}
	return &def, nil
}

// ReplaceDefinition overwrites a definition's name and/or value array.
// The value array is replaced, not merged; renames are checked for
// conflicts within the tenant and type.
func ReplaceDefinition(db *gorm.DB, businessID, id uint, newName string, values []string) (*model.CustomLabel, error) {
	def, err := GetDefinition(db, businessID, id)
	if err != nil {
		return nil, err
	}

	newName = strings.TrimSpace(newName)
	if newName != "" && newName != def.LabelName {
		var conflict model.CustomLabel
		err := db.Where("business_id = ? AND label_name = ? AND label_type = ? AND id <> ?",
			businessID, newName, def.LabelType, id).First(&conflict).Error
		if err == nil {
			return nil, apperr.Duplicate("a label with this name already exists", "label_name")
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Translate(err)
		}
		def.LabelName = newName
	}

	normalized := NormalizeValues(values)
	if len(normalized) == 0 {
		return nil, apperr.Validation("label_values must contain at least one non-empty value", "label_values")
	}
	def.LabelValues = normalized

	if err := db.Model(def).Updates(map[string]interface{}{
		"label_name":   def.LabelName,
		"label_values": def.LabelValues,
	}).Error; err != nil {
		return nil, apperr.Translate(err)
	}
	return def, nil
}

// DeleteDefinition removes a definition scoped to the tenant.
func DeleteDefinition(db *gorm.DB, businessID, id uint) error {
	def, err := GetDefinition(db, businessID, id)
	if err != nil {
		return err
	}
	if err := db.Delete(def).Error; err != nil {
		return apperr.Translate(err)
	}
	return nil
}

// ListDefinitions returns every definition for the tenant, optionally
// restricted by type, ordered by name.
func ListDefinitions(db *gorm.DB, businessID uint, labelType string) ([]model.CustomLabel, error) {
	q := db.Where("business_id = ?", businessID)
	if labelType != "" {
		q = q.Where("label_type = ?", labelType)
	}
	var defs []model.CustomLabel
	if err := q.Order("label_name").Find(&defs).Error; err != nil {
		return nil, apperr.Translate(err)
	}
	return defs, nil
}

// ListDefinitionNames returns the distinct definition names for the
// tenant and type, sorted. This is the label-name source for products.
func ListDefinitionNames(db *gorm.DB, businessID uint, labelType string) ([]string, error) {
	q := db.Model(&model.CustomLabel{}).Where("business_id = ?", businessID)
	if labelType != "" {
		q = q.Where("label_type = ?", labelType)
	}
	var names []string
	if err := q.Distinct("label_name").Pluck("label_name", &names).Error; err != nil {
		return nil, apperr.Translate(err)
	}
	sort.Strings(names)
	return names, nil
}

// DefinitionValues returns the predefined values for one label name, or
// an empty slice when the label is unknown.
func DefinitionValues(db *gorm.DB, businessID uint, name string) ([]string, error) {
	var def model.CustomLabel
	err := db.Where("business_id = ? AND label_name = ?", businessID, name).First(&def).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return []string{}, nil
	}
	if err != nil {
		return nil, apperr.Translate(err)
	}
	return def.LabelValues, nil
}
