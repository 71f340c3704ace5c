package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"backoffice-service/internal/apperr"
	"backoffice-service/internal/model"
	"backoffice-service/pkg/database"
	"backoffice-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// productValidationError describes one rejected product in a batch.
type productValidationError struct {
	ProductIndex int    `json:"product_index"`
	Field        string `json:"field"`
	Value        string `json:"value"`
	Error        string `json:"error"`
	Type         string `json:"type"`
}

func validateProduct(p *model.Product) []productValidationError {
	var errs []productValidationError
	if strings.TrimSpace(p.ProductID) == "" {
		errs = append(errs, productValidationError{Field: "productid", Error: "productid is required", Type: "missing"})
	}
	if strings.TrimSpace(p.ProductName) == "" {
		errs = append(errs, productValidationError{Field: "productname", Error: "productname is required", Type: "missing"})
	}
	if strings.TrimSpace(p.Barcode) == "" {
		errs = append(errs, productValidationError{Field: "barcode", Error: "barcode is required", Type: "missing"})
	}
	if p.Price <= 0 {
		errs = append(errs, productValidationError{
			Field: "price", Value: fmt.Sprintf("%v", p.Price),
			Error: "price must be greater than zero", Type: "invalid_value",
		})
	}
	if p.Quantity < 0 {
		errs = append(errs, productValidationError{
			Field: "quantity", Value: fmt.Sprintf("%d", p.Quantity),
			Error: "quantity cannot be negative", Type: "invalid_value",
		})
	}
	return errs
}

// AddProducts creates a batch of products atomically. Any validation
// failure rejects the whole batch with a per-product error report;
// nothing is persisted on a partial failure.
func AddProducts(c echo.Context) error {
	log := logger.FromEcho(c)
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	var products []model.Product
	if err := c.Bind(&products); err != nil {
		return respondError(c, apperr.Validation("invalid request body, expected a product array", ""))
	}
	if len(products) == 0 {
		return respondError(c, apperr.Validation("at least one product is required", ""))
	}

	var validationErrors []productValidationError
	seenProductID := make(map[string]int)
	seenBarcode := make(map[string]int)
	seenSKU := make(map[string]int)
	for i := range products {
		p := &products[i]
		p.ID = 0
		p.BusinessID = claims.BusinessID
		p.UpdatedBy = fmt.Sprintf("USR%d", claims.EmpID)

		for _, e := range validateProduct(p) {
			e.ProductIndex = i
			validationErrors = append(validationErrors, e)
		}

		if p.ProductID != "" {
			if _, dup := seenProductID[p.ProductID]; dup {
				validationErrors = append(validationErrors, productValidationError{
					ProductIndex: i, Field: "productid", Value: p.ProductID,
					Error: "duplicate productid within batch", Type: "duplicate",
				})
			}
			seenProductID[p.ProductID] = i
		}
		if p.Barcode != "" {
			if _, dup := seenBarcode[p.Barcode]; dup {
				validationErrors = append(validationErrors, productValidationError{
					ProductIndex: i, Field: "barcode", Value: p.Barcode,
					Error: "duplicate barcode within batch", Type: "duplicate",
				})
			}
			seenBarcode[p.Barcode] = i
		}
		if p.SKU != nil && *p.SKU != "" {
			if _, dup := seenSKU[*p.SKU]; dup {
				validationErrors = append(validationErrors, productValidationError{
					ProductIndex: i, Field: "sku", Value: *p.SKU,
					Error: "duplicate sku within batch", Type: "duplicate",
				})
			}
			seenSKU[*p.SKU] = i
		}
	}

	db := database.GetDB()

	// Check the batch against what the tenant already has, one query per
	// identifier column.
	if len(validationErrors) == 0 {
		checks := []struct {
			column string
			seen   map[string]int
		}{
			{"productid", seenProductID},
			{"barcode", seenBarcode},
			{"sku", seenSKU},
		}
		for _, chk := range checks {
			if len(chk.seen) == 0 {
				continue
			}
			values := make([]string, 0, len(chk.seen))
			for v := range chk.seen {
				values = append(values, v)
			}
			var existing []string
			if err := db.Model(&model.Product{}).
				Where("business_id = ?", claims.BusinessID).
				Where(chk.column+" IN ?", values).
				Pluck(chk.column, &existing).Error; err != nil {
				return respondError(c, err)
			}
			for _, v := range existing {
				validationErrors = append(validationErrors, productValidationError{
					ProductIndex: chk.seen[v], Field: chk.column, Value: v,
					Error: chk.column + " already exists for this business", Type: "duplicate",
				})
			}
		}
	}

	if len(validationErrors) > 0 {
		log.Warn("Product batch rejected",
			zap.Int("batch_size", len(products)),
			zap.Int("error_count", len(validationErrors)))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error":             "ProductValidationError",
			"message":           "product batch rejected, no products were added",
			"successful_count":  0,
			"failed_count":      len(products),
			"validation_errors": validationErrors,
		})
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&products).Error
	})
	if err != nil {
		log.Error("Failed to add products", zap.Error(err))
		return respondError(c, err)
	}

	log.Info("Products added",
		zap.Uint("business_id", claims.BusinessID),
		zap.Int("count", len(products)))

	return c.JSON(http.StatusCreated, echo.Map{
		"message":          "products added successfully",
		"successful_count": len(products),
		"failed_count":     0,
		"items":            products,
	})
}

// GetProducts lists the tenant's products with pagination.
func GetProducts(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	query := database.GetDB().Model(&model.Product{}).Where("business_id = ?", claims.BusinessID)
	if category := c.QueryParam("category"); category != "" {
		query = query.Where("category ILIKE ?", "%"+category+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return respondError(c, err)
	}

	skip, limit := pagination(c, 100)
	var products []model.Product
	if err := query.Order("id").Offset(skip).Limit(limit).Find(&products).Error; err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"items": products,
		"total": total,
		"skip":  skip,
		"limit": limit,
	})
}

func findProduct(db *gorm.DB, businessID, id uint) (*model.Product, error) {
	var product model.Product
	err := db.Where("id = ? AND business_id = ?", id, businessID).First(&product).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("product not found")
	}
	if err != nil {
		return nil, apperr.Translate(err)
	}
	return &product, nil
}

// GetProduct returns one product by numeric id.
func GetProduct(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	id, err := paramUint(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	product, err := findProduct(database.GetDB(), claims.BusinessID, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, product)
}

// GetProductByProductID returns one product by its merchant-assigned
// productid.
func GetProductByProductID(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	var product model.Product
	err = database.GetDB().
		Where("productid = ? AND business_id = ?", c.Param("productid"), claims.BusinessID).
		First(&product).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return respondError(c, apperr.NotFound("product not found"))
	}
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, product)
}

// UpdateProduct replaces the mutable fields of a product. Changing
// productid, barcode or sku re-checks tenant uniqueness.
func UpdateProduct(c echo.Context) error {
	log := logger.FromEcho(c)
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	id, err := paramUint(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	db := database.GetDB()
	product, err := findProduct(db, claims.BusinessID, id)
	if err != nil {
		return respondError(c, err)
	}

	var req model.Product
	if err := c.Bind(&req); err != nil {
		return respondError(c, apperr.Validation("invalid request body", ""))
	}
	if errs := validateProduct(&req); len(errs) > 0 {
		return respondError(c, apperr.Validation(errs[0].Error, errs[0].Field))
	}

	dupChecks := map[string]string{"productid": req.ProductID, "barcode": req.Barcode}
	if req.SKU != nil && *req.SKU != "" {
		dupChecks["sku"] = *req.SKU
	}
	for column, value := range dupChecks {
		var count int64
		if err := db.Model(&model.Product{}).
			Where("business_id = ? AND "+column+" = ? AND id <> ?", claims.BusinessID, value, id).
			Count(&count).Error; err != nil {
			return respondError(c, err)
		}
		if count > 0 {
			return respondError(c, apperr.Duplicate(column+" already exists for this business", column))
		}
	}

	req.ID = product.ID
	req.BusinessID = claims.BusinessID
	req.CreatedAt = product.CreatedAt
	req.UpdatedBy = fmt.Sprintf("USR%d", claims.EmpID)

	if err := db.Save(&req).Error; err != nil {
		log.Error("Failed to update product", zap.Uint("id", id), zap.Error(err))
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, req)
}

// DeleteProduct removes one product.
func DeleteProduct(c echo.Context) error {
	log := logger.FromEcho(c)
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	id, err := paramUint(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	db := database.GetDB()
	product, err := findProduct(db, claims.BusinessID, id)
	if err != nil {
		return respondError(c, err)
	}

	if err := db.Delete(product).Error; err != nil {
		log.Error("Failed to delete product", zap.Uint("id", id), zap.Error(err))
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"id": id, "detail": "deleted successfully"})
}

type bulkDeleteRequest struct {
	IDs []uint `json:"ids"`
}

type bulkDeleteResult struct {
	ID      uint   `json:"id"`
	Success bool   `json:"success"`
	Detail  string `json:"detail"`
}

// DeleteProducts removes a batch of products, reporting a per-item
// outcome. Unlike the batch add, deletion is not all-or-nothing: known
// ids are removed even when others are missing.
func DeleteProducts(c echo.Context) error {
	log := logger.FromEcho(c)
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	var req bulkDeleteRequest
	if err := c.Bind(&req); err != nil || len(req.IDs) == 0 {
		return respondError(c, apperr.Validation("ids is required", "ids"))
	}

	db := database.GetDB()
	results := make([]bulkDeleteResult, 0, len(req.IDs))
	successful := 0
	for _, id := range req.IDs {
		res := db.Where("id = ? AND business_id = ?", id, claims.BusinessID).Delete(&model.Product{})
		switch {
		case res.Error != nil:
			log.Error("Failed to delete product", zap.Uint("id", id), zap.Error(res.Error))
			results = append(results, bulkDeleteResult{ID: id, Detail: "delete failed"})
		case res.RowsAffected == 0:
			results = append(results, bulkDeleteResult{ID: id, Detail: "product not found"})
		default:
			successful++
			results = append(results, bulkDeleteResult{ID: id, Success: true, Detail: "deleted"})
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"results": results,
		"summary": echo.Map{
			"total":      len(req.IDs),
			"successful": successful,
			"failed":     len(req.IDs) - successful,
		},
	})
}

// SearchProducts matches a free-text query against the product
// identifiers and name, with optional category, brand and price range
// narrowing.
func SearchProducts(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	query := database.GetDB().Model(&model.Product{}).Where("business_id = ?", claims.BusinessID)
	if q := c.QueryParam("query"); q != "" {
		pattern := "%" + q + "%"
		query = query.Where(
			"productname ILIKE ? OR productid ILIKE ? OR barcode ILIKE ? OR sku ILIKE ?",
			pattern, pattern, pattern, pattern)
	}
	if v := c.QueryParam("category"); v != "" {
		query = query.Where("category ILIKE ?", "%"+v+"%")
	}
	if v := c.QueryParam("brand"); v != "" {
		query = query.Where("brand ILIKE ?", "%"+v+"%")
	}
	if v := c.QueryParam("min_price"); v != "" {
		query = query.Where("price >= ?", v)
	}
	if v := c.QueryParam("max_price"); v != "" {
		query = query.Where("price <= ?", v)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return respondError(c, err)
	}

	skip, limit := pagination(c, 100)
	var products []model.Product
	if err := query.Order("id").Offset(skip).Limit(limit).Find(&products).Error; err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"items": products,
		"total": total,
		"skip":  skip,
		"limit": limit,
	})
}
