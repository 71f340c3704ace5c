package apperr

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// Postgres error codes we care about.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgNotNullViolation    = "23502"
)

// fieldsByToken maps constraint-name or message fragments to the input
// field they refer to. Checked in order so the more specific names win.
var fieldsByToken = []struct {
	token string
	field string
}{
	{"productid", "productid"},
	{"barcode", "barcode"},
	{"sku", "sku"},
	{"labels_template", "label_name"},
	{"label_name", "label_name"},
	{"categories", "name"},
	{"store_name", "store_name"},
	{"store_sequence", "store_sequence"},
	{"business_id", "business_id"},
	{"email", "email"},
}

// Translate converts a store-level error into the service taxonomy. It
// prefers the structured constraint name reported by Postgres and falls
// back to message inspection for drivers that do not expose one. All
// constraint sniffing lives here so it can be swapped per target store.
func Translate(err error) *Error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		field := matchField(pgErr.ConstraintName)
		if field == "" {
			field = matchField(pgErr.Message)
		}
		switch pgErr.Code {
		case pgUniqueViolation:
			return Duplicate(duplicateMessage(field), field)
		case pgForeignKeyViolation:
			return &Error{Kind: KindConstraint, Message: "referenced record does not exist", Field: field}
		case pgNotNullViolation:
			return &Error{Kind: KindConstraint, Message: "a required field is missing", Field: pgErr.ColumnName}
		}
	}

	// Fallback: message inspection for wrapped or non-pg errors.
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key") {
		field := matchField(msg)
		return Duplicate(duplicateMessage(field), field)
	}
	if strings.Contains(msg, "foreign key") {
		return &Error{Kind: KindConstraint, Message: "referenced record does not exist"}
	}
	if strings.Contains(msg, "null value") || strings.Contains(msg, "not-null") {
		return &Error{Kind: KindConstraint, Message: "a required field is missing"}
	}

	return Internal("an unexpected error occurred")
}

func matchField(s string) string {
	s = strings.ToLower(s)
	for _, m := range fieldsByToken {
		if strings.Contains(s, m.token) {
			return m.field
		}
	}
	return ""
}

func duplicateMessage(field string) string {
	switch field {
	case "productid":
		return "a product with this product ID already exists"
	case "barcode":
		return "a product with this barcode already exists"
	case "sku":
		return "a product with this SKU already exists"
	case "label_name":
		return "a label with this name already exists"
	case "name":
		return "a category with this name already exists"
	case "store_name":
		return "a store with this name already exists"
	case "store_sequence":
		return "store sequence conflict, please retry"
	default:
		return "a record with these values already exists"
	}
}
