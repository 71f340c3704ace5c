// Package label implements the custom attribute subsystem: per-tenant
// label vocabularies (templates and definitions), per-employee label
// instances, and the filter support built on top of them.
//
// Employee labels live in the employee_labels table, where template rows
// (emp_id NULL) hold the predefined value arrays and instance rows
// (emp_id set) hold one selected value per employee per label. Product
// labels use the simpler custom_labels definition table; per-product
// values are stored inline on the product row.
package label

import (
	"sort"
	"strings"
)

// NormalizeValues trims whitespace, drops empty entries and removes
// duplicates while preserving first-seen order.
func NormalizeValues(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// MergeValues returns the set union of existing and incoming values
// (case-sensitive, existing order preserved, net-new values appended in
// incoming order) along with the count of values that were actually new.
func MergeValues(existing, incoming []string) ([]string, int) {
	seen := make(map[string]struct{}, len(existing))
	merged := make([]string, 0, len(existing)+len(incoming))
	for _, v := range existing {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		merged = append(merged, v)
	}

	added := 0
	for _, v := range incoming {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		merged = append(merged, v)
		added++
	}
	return merged, added
}

// unionSorted merges two value sets into a sorted, deduplicated slice.
func unionSorted(a, b []string) []string {
	seen := make(map[string]struct{}, len(a)+len(b))
	out := make([]string, 0, len(a)+len(b))
	for _, v := range a {
		if _, ok := seen[v]; !ok {
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	for _, v := range b {
		if _, ok := seen[v]; !ok {
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}
