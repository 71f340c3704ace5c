package handler

import (
	"errors"
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

type categoryRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

func findCategory(db *gorm.DB, businessID, id uint) (*model.Category, error) {
	var category model.Category
	err := db.Where("id = ? AND business_id = ?", id, businessID).First(&category).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("category not found")
	}
	if err != nil {
		return nil, apperr.Translate(err)
	}
	return &category, nil
}

// categoryNameTaken reports whether another category in the tenant
// already uses the name, compared case-insensitively.
func categoryNameTaken(db *gorm.DB, businessID uint, name string, excludeID uint) (bool, error) {
	var count int64
	err := db.Model(&model.Category{}).
		Where("business_id = ? AND name ILIKE ? AND id <> ?", businessID, name, excludeID).
		Count(&count).Error
	if err != nil {
		return false, apperr.Translate(err)
	}
	return count > 0, nil
}

// ListCategories returns every category for the caller's tenant, ordered
// by name.
func ListCategories(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	var categories []model.Category
	err = database.GetDB().
		Where("business_id = ?", claims.BusinessID).
		Order("name").
		Find(&categories).Error
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, categories)
}

// GetCategory returns one category in the caller's tenant.
func GetCategory(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	id, err := paramUint(c, "category_id")
	if err != nil {
		return respondError(c, err)
	}

	category, err := findCategory(database.GetDB(), claims.BusinessID, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, category)
}

// CreateCategory adds a category to the caller's tenant. Name collisions
// are rejected case-insensitively.
func CreateCategory(c echo.Context) error {
	log := logger.FromEcho(c)
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	var req categoryRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, apperr.Validation("invalid request body", ""))
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return respondError(c, apperr.Validation("name is required", "name"))
	}

	db := database.GetDB()
	taken, err := categoryNameTaken(db, claims.BusinessID, name, 0)
	if err != nil {
		return respondError(c, err)
	}
	if taken {
		return respondError(c, apperr.Duplicate("a category with this name already exists", "name"))
	}

	category := model.Category{
		BusinessID: claims.BusinessID,
		Name:       name,
	}
	if req.Description != nil {
		category.Description = strings.TrimSpace(*req.Description)
	}

	if err := db.Create(&category).Error; err != nil {
		log.Error("Failed to create category", zap.Error(err))
		return respondError(c, err)
	}

	log.Info("Category created",
		zap.Uint("business_id", claims.BusinessID),
		zap.Uint("id", category.ID),
		zap.String("name", category.Name))

	return c.JSON(http.StatusCreated, category)
}

// UpdateCategory renames a category and/or changes its description.
func UpdateCategory(c echo.Context) error {
	log := logger.FromEcho(c)
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	id, err := paramUint(c, "category_id")
	if err != nil {
		return respondError(c, err)
	}

	db := database.GetDB()
	category, err := findCategory(db, claims.BusinessID, id)
	if err != nil {
		return respondError(c, err)
	}

	var req categoryRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, apperr.Validation("invalid request body", ""))
	}

	if name := strings.TrimSpace(req.Name); name != "" && name != category.Name {
		taken, err := categoryNameTaken(db, claims.BusinessID, name, id)
		if err != nil {
			return respondError(c, err)
		}
		if taken {
			return respondError(c, apperr.Duplicate("a category with this name already exists", "name"))
		}
		category.Name = name
	}
	if req.Description != nil {
		category.Description = strings.TrimSpace(*req.Description)
	}

	if err := db.Save(category).Error; err != nil {
		log.Error("Failed to update category", zap.Uint("id", id), zap.Error(err))
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, category)
}

// DeleteCategory removes a category. Products keep their category string;
// the category table only drives the selection vocabulary.
func DeleteCategory(c echo.Context) error {
	log := logger.FromEcho(c)
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	id, err := paramUint(c, "category_id")
	if err != nil {
		return respondError(c, err)
	}

	db := database.GetDB()
	category, err := findCategory(db, claims.BusinessID, id)
	if err != nil {
		return respondError(c, err)
	}

	if err := db.Delete(category).Error; err != nil {
		log.Error("Failed to delete category", zap.Uint("id", id), zap.Error(err))
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"id":      id,
		"message": "Category '" + category.Name + "' deleted successfully",
	})
}
