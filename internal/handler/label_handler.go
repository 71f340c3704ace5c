package handler

import (
	"net/http"

	"backoffice-service/internal/apperr"
	"backoffice-service/internal/label"
	"backoffice-service/pkg/database"
	"backoffice-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type customLabelRequest struct {
	LabelName   string   `json:"label_name"`
	LabelValues []string `json:"label_values"`
	LabelType   string   `json:"label_type"`
}

// CreateCustomLabel defines a new label with its value vocabulary.
// A second definition with the same name and type is a conflict; use
// MergeCustomLabel to extend the vocabulary instead.
func CreateCustomLabel(c echo.Context) error {
	log := logger.FromEcho(c)
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	var req customLabelRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, apperr.Validation("invalid request body", ""))
	}

	def, err := label.CreateDefinition(database.GetDB(), claims.BusinessID, req.LabelName, req.LabelType, req.LabelValues)
	if err != nil {
		return respondError(c, err)
	}

	log.Info("Custom label created",
		zap.Uint("business_id", claims.BusinessID),
		zap.String("label_name", def.LabelName),
		zap.String("label_type", def.LabelType))

	return c.JSON(http.StatusCreated, def)
}

// MergeCustomLabel unions new values into a label's vocabulary, creating
// the label when it does not exist yet. Existing values are never
// removed.
func MergeCustomLabel(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	var req customLabelRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, apperr.Validation("invalid request body", ""))
	}

	def, added, err := label.MergeDefinition(database.GetDB(), claims.BusinessID, req.LabelName, req.LabelType, req.LabelValues)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"label":            def,
		"new_values_added": added,
	})
}

// GetCustomLabels lists the tenant's label definitions, optionally
// narrowed by ?label_type=employee|product.
func GetCustomLabels(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	defs, err := label.ListDefinitions(database.GetDB(), claims.BusinessID, c.QueryParam("label_type"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, defs)
}

// GetCustomLabel returns one label definition.
func GetCustomLabel(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	id, err := paramUint(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	def, err := label.GetDefinition(database.GetDB(), claims.BusinessID, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, def)
}

// UpdateCustomLabel renames a label and/or replaces its value array
// wholesale.
func UpdateCustomLabel(c echo.Context) error {
	log := logger.FromEcho(c)
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	id, err := paramUint(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var req customLabelRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, apperr.Validation("invalid request body", ""))
	}

	def, err := label.ReplaceDefinition(database.GetDB(), claims.BusinessID, id, req.LabelName, req.LabelValues)
	if err != nil {
		return respondError(c, err)
	}

	log.Info("Custom label updated",
		zap.Uint("business_id", claims.BusinessID),
		zap.Uint("id", id),
		zap.String("label_name", def.LabelName))

	return c.JSON(http.StatusOK, def)
}

// DeleteCustomLabel removes a label definition. Instance values already
// recorded against employees are untouched.
func DeleteCustomLabel(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	id, err := paramUint(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	if err := label.DeleteDefinition(database.GetDB(), claims.BusinessID, id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"id": id, "detail": "deleted successfully"})
}

// GetCustomLabelNames lists the distinct defined label names for the
// tenant, optionally narrowed by type.
func GetCustomLabelNames(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	names, err := label.ListDefinitionNames(database.GetDB(), claims.BusinessID, c.QueryParam("label_type"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, names)
}

// GetCustomLabelValues returns the predefined values for one label name.
// Unknown names yield an empty list, not a 404.
func GetCustomLabelValues(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	values, err := label.DefinitionValues(database.GetDB(), claims.BusinessID, c.Param("label_name"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"label_name":   c.Param("label_name"),
		"label_values": values,
	})
}

type employeeLabelTemplateRequest struct {
	LabelName   string   `json:"label_name"`
	LabelValues []string `json:"label_values"`
}

// DefineEmployeeLabelTemplate creates an employee label template or
// merges new values into an existing one.
func DefineEmployeeLabelTemplate(c echo.Context) error {
	log := logger.FromEcho(c)
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	var req employeeLabelTemplateRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, apperr.Validation("invalid request body", ""))
	}

	result, err := label.DefineOrMergeTemplate(database.GetDB(), claims.BusinessID, req.LabelName, req.LabelValues)
	if err != nil {
		return respondError(c, err)
	}

	log.Info("Employee label template defined",
		zap.Uint("business_id", claims.BusinessID),
		zap.String("label_name", req.LabelName),
		zap.Bool("created", result.Created),
		zap.Int("new_values", result.NewValues))

	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
	}
	return c.JSON(status, echo.Map{
		"label_name":       result.Template.LabelName,
		"label_values":     []string(result.Template.LabelValues),
		"created":          result.Created,
		"new_values_added": result.NewValues,
	})
}

// ReplaceEmployeeLabelTemplate overwrites a template's value array.
func ReplaceEmployeeLabelTemplate(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	var req employeeLabelTemplateRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, apperr.Validation("invalid request body", ""))
	}

	tpl, err := label.ReplaceTemplate(database.GetDB(), claims.BusinessID, req.LabelName, req.LabelValues)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"label_name":   tpl.LabelName,
		"label_values": []string(tpl.LabelValues),
	})
}

// GetEmployeeLabelValues returns the value suggestions for one employee
// label: the template values united with every value in live use.
func GetEmployeeLabelValues(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	values, err := label.ListValues(database.GetDB(), claims.BusinessID, c.Param("label_name"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"label_name":   c.Param("label_name"),
		"label_values": values,
	})
}
