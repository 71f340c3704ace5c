package apperr

import (
	"errors"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestTranslateUniqueViolation(t *testing.T) {
	err := &pgconn.PgError{
		Code:           "23505",
		ConstraintName: "idx_products_business_barcode",
	}
	got := Translate(err)
	assert.Equal(t, KindDuplicate, got.Kind)
	assert.Equal(t, "barcode", got.Field)
	assert.Equal(t, http.StatusConflict, got.Status())
}

func TestTranslateUniqueViolationLabelName(t *testing.T) {
	err := &pgconn.PgError{
		Code:           "23505",
		ConstraintName: "idx_business_label_name_type",
	}
	got := Translate(err)
	assert.Equal(t, KindDuplicate, got.Kind)
	assert.Equal(t, "label_name", got.Field)
}

func TestTranslateTemplateUniqueViolation(t *testing.T) {
	// Raised when two concurrent template defines both pass the existence
	// read and race to insert; the partial index rejects the loser.
	err := &pgconn.PgError{
		Code:           "23505",
		ConstraintName: "idx_employee_labels_template",
	}
	got := Translate(err)
	assert.Equal(t, KindDuplicate, got.Kind)
	assert.Equal(t, "label_name", got.Field)
	assert.Equal(t, "a label with this name already exists", got.Message)
}

func TestTranslateCategoryUniqueViolation(t *testing.T) {
	err := &pgconn.PgError{
		Code:           "23505",
		ConstraintName: "idx_categories_business_name",
	}
	got := Translate(err)
	assert.Equal(t, KindDuplicate, got.Kind)
	assert.Equal(t, "name", got.Field)
	assert.Equal(t, "a category with this name already exists", got.Message)
}

func TestTranslateForeignKeyViolation(t *testing.T) {
	err := &pgconn.PgError{
		Code:           "23503",
		ConstraintName: "fk_employee_labels_business_id",
	}
	got := Translate(err)
	assert.Equal(t, KindConstraint, got.Kind)
	assert.Equal(t, "business_id", got.Field)
	assert.Equal(t, http.StatusBadRequest, got.Status())
}

func TestTranslateNotNullViolation(t *testing.T) {
	err := &pgconn.PgError{Code: "23502", ColumnName: "barcode"}
	got := Translate(err)
	assert.Equal(t, KindConstraint, got.Kind)
	assert.Equal(t, "barcode", got.Field)
}

func TestTranslateMessageFallback(t *testing.T) {
	err := errors.New(`duplicate key value violates unique constraint "idx_products_business_productid"`)
	got := Translate(err)
	assert.Equal(t, KindDuplicate, got.Kind)
	assert.Equal(t, "productid", got.Field)
}

func TestTranslateUnknownError(t *testing.T) {
	got := Translate(errors.New("connection refused"))
	assert.Equal(t, KindInternal, got.Kind)
	assert.Equal(t, http.StatusInternalServerError, got.Status())
}

func TestFromPassthrough(t *testing.T) {
	orig := NotFound("store not found")
	assert.Same(t, orig, From(orig))
}

func TestFromRecordNotFound(t *testing.T) {
	got := From(gorm.ErrRecordNotFound)
	assert.Equal(t, KindNotFound, got.Kind)
	assert.Equal(t, http.StatusNotFound, got.Status())
}

func TestStatusMapping(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, Validation("x", "").Status())
	assert.Equal(t, http.StatusConflict, Duplicate("x", "").Status())
	assert.Equal(t, http.StatusNotFound, NotFound("x").Status())
	assert.Equal(t, http.StatusForbidden, Forbidden("x").Status())
	assert.Equal(t, http.StatusInternalServerError, Internal("x").Status())
}

func TestErrorString(t *testing.T) {
	assert.Equal(t, "ValidationError: bad input (field email)", Validation("bad input", "email").Error())
	assert.Equal(t, "NotFoundError: gone", NotFound("gone").Error())
}
