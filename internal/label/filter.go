package label

import (
	"encoding/json"
	"strconv"
	"strings"

	"gorm.io/gorm"
)

// CustomFieldPrefix marks a filter field as targeting a custom label:
// "custom_Department" filters on the "Department" label instances.
const CustomFieldPrefix = "custom_"

// Criterion is one (field, value) filter. Criteria are AND-combined in
// the order supplied.
type Criterion struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

// ParseCriteria decodes the "filters" query parameter, a JSON array of
// {"field": ..., "value": ...} objects. Malformed input yields no
// criteria rather than an error, and criteria missing a field or value
// are skipped.
func ParseCriteria(raw string) []Criterion {
	if raw == "" {
		return nil
	}
	var parsed []Criterion
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil
	}
	out := parsed[:0]
	for _, c := range parsed {
		if c.Field == "" || c.Value == "" {
			continue
		}
		out = append(out, c)
	}
	return out
}

// CustomLabelName extracts the label name from a custom filter field.
func CustomLabelName(field string) (string, bool) {
	if strings.HasPrefix(field, CustomFieldPrefix) && len(field) > len(CustomFieldPrefix) {
		return field[len(CustomFieldPrefix):], true
	}
	return "", false
}

// employeeTextColumns are the built-in employee fields that filter by
// case-insensitive substring containment.
var employeeTextColumns = map[string]string{
	"name":          "employees.name",
	"email":         "employees.email",
	"phone_number":  "employees.phone_number",
	"aadhar_number": "employees.aadhar_number",
	"city":          "employees.city",
	"state":         "employees.state",
	"country":       "employees.country",
	"role":          "employees.role",
}

// ApplyEmployeeCriteria narrows an employee query by the given criteria.
// Built-in text fields match by ILIKE containment, emp_id matches
// exactly, and store_name joins through the stores table. A custom-field
// criterion resolves the matching employee id set first; when that set is
// empty the whole query is forced empty, since under AND semantics a
// custom filter with zero matches must not degrade into a no-op.
func ApplyEmployeeCriteria(db, query *gorm.DB, businessID uint, criteria []Criterion) (*gorm.DB, error) {
	joinedStores := false
	for _, c := range criteria {
		if name, ok := CustomLabelName(c.Field); ok {
			ids, err := MatchEmployeeIDs(db, businessID, name, c.Value)
			if err != nil {
				return nil, err
			}
			if len(ids) == 0 {
				query = query.Where("1 = 0")
				continue
			}
			query = query.Where("employees.emp_id IN ?", ids)
			continue
		}

		switch c.Field {
		case "emp_id":
			id, err := strconv.ParseUint(c.Value, 10, 64)
			if err != nil {
				// Non-numeric emp_id filter can never match.
				query = query.Where("1 = 0")
				continue
			}
			query = query.Where("employees.emp_id = ?", id)
		case "store_name":
			if !joinedStores {
				query = query.Joins("JOIN stores ON stores.id = employees.store_id")
				joinedStores = true
			}
			query = query.Where("stores.store_name ILIKE ?", "%"+c.Value+"%")
		default:
			column, ok := employeeTextColumns[c.Field]
			if !ok {
				// Unknown fields are ignored, matching the legacy behavior.
				continue
			}
			query = query.Where(column+" ILIKE ?", "%"+c.Value+"%")
		}
	}
	return query, nil
}
