package handler

import (
	"errors"
	"net/http"

	"backoffice-service/internal/apperr"
	"backoffice-service/internal/model"
	"backoffice-service/pkg/database"
	"backoffice-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type businessResponse struct {
	model.Business
	BusinessCode string `json:"business_code"`
}

func newBusinessResponse(b *model.Business) businessResponse {
	return businessResponse{Business: *b, BusinessCode: b.DisplayID()}
}

func findBusiness(db *gorm.DB, businessID uint) (*model.Business, error) {
	var business model.Business
	err := db.Where("business_id = ?", businessID).First(&business).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("business profile not found")
	}
	if err != nil {
		return nil, apperr.Translate(err)
	}
	return &business, nil
}

// GetBusiness returns the caller's business profile.
func GetBusiness(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	business, err := findBusiness(database.GetDB(), claims.BusinessID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, newBusinessResponse(business))
}

type businessRequest struct {
	Name        *string `json:"business_name"`
	Type        *string `json:"business_type"`
	Category    *string `json:"category"`
	OwnerName   *string `json:"owner_name"`
	PhoneNumber *string `json:"phone_number"`
	Email       *string `json:"email"`
	GSTNumber   *string `json:"gst_number"`
	Address     *string `json:"address"`
	City        *string `json:"city"`
	State       *string `json:"state"`
	Pincode     *string `json:"pincode"`
	Country     *string `json:"country"`

	InvoicePrefix     *string `json:"invoice_prefix"`
	BankAccountNumber *string `json:"bank_account_number"`
	IFSCCode          *string `json:"ifsc_code"`
	UPIID             *string `json:"upi_id"`
}

func (r *businessRequest) apply(b *model.Business) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&b.Name, r.Name)
	set(&b.Type, r.Type)
	set(&b.Category, r.Category)
	set(&b.OwnerName, r.OwnerName)
	set(&b.PhoneNumber, r.PhoneNumber)
	set(&b.Email, r.Email)
	set(&b.GSTNumber, r.GSTNumber)
	set(&b.Address, r.Address)
	set(&b.City, r.City)
	set(&b.State, r.State)
	set(&b.Pincode, r.Pincode)
	set(&b.Country, r.Country)
	set(&b.InvoicePrefix, r.InvoicePrefix)
	set(&b.BankAccountNumber, r.BankAccountNumber)
	set(&b.IFSCCode, r.IFSCCode)
	set(&b.UPIID, r.UPIID)
}

// CreateBusiness fills in the business profile for the caller's tenant.
// Registration leaves a skeleton row; completing it twice is a conflict,
// later changes go through UpdateBusiness.
func CreateBusiness(c echo.Context) error {
	log := logger.FromEcho(c)
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	db := database.GetDB()
	business, err := findBusiness(db, claims.BusinessID)
	if err != nil {
		return respondError(c, err)
	}
	if business.Name != "" {
		return respondError(c, apperr.Duplicate("business profile already exists, use update", "business_name"))
	}

	var req businessRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, apperr.Validation("invalid request body", ""))
	}
	if req.Name == nil || *req.Name == "" {
		return respondError(c, apperr.Validation("business_name is required", "business_name"))
	}
	req.apply(business)

	if err := db.Save(business).Error; err != nil {
		log.Error("Failed to create business profile", zap.Uint("business_id", claims.BusinessID), zap.Error(err))
		return respondError(c, err)
	}

	log.Info("Business profile created", zap.Uint("business_id", claims.BusinessID))
	return c.JSON(http.StatusCreated, newBusinessResponse(business))
}

// UpdateBusiness updates the caller's business profile. The row itself
// exists since registration; the business id never changes.
func UpdateBusiness(c echo.Context) error {
	log := logger.FromEcho(c)
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	db := database.GetDB()
	business, err := findBusiness(db, claims.BusinessID)
	if err != nil {
		return respondError(c, err)
	}

	var req businessRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, apperr.Validation("invalid request body", ""))
	}
	req.apply(business)

	if err := db.Save(business).Error; err != nil {
		log.Error("Failed to update business", zap.Uint("business_id", claims.BusinessID), zap.Error(err))
		return respondError(c, err)
	}

	log.Info("Business profile updated", zap.Uint("business_id", claims.BusinessID))
	return c.JSON(http.StatusOK, newBusinessResponse(business))
}
