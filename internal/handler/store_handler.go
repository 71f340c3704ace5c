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

// storeResponse adds the display identifier to the persisted store
// fields.
type storeResponse struct {
	model.Store
	StoreID string `json:"store_id"`
}

func newStoreResponse(s *model.Store) storeResponse {
	return storeResponse{Store: *s, StoreID: s.DisplayID()}
}

func findStore(db *gorm.DB, businessID, storeID uint) (*model.Store, error) {
	var store model.Store
	err := db.Where("id = ? AND business_id = ?", storeID, businessID).First(&store).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("store not found")
	}
	if err != nil {
		return nil, apperr.Translate(err)
	}
	return &store, nil
}

type storeRequest struct {
	Name    string `json:"store_name"`
	Address string `json:"store_address"`
	City    string `json:"store_city"`
	State   string `json:"store_state"`
	Country string `json:"store_country"`
	Pincode string `json:"store_pincode"`
}

// CreateStore adds a store to the caller's tenant. The per-tenant
// sequence number is allocated under a transaction-scoped advisory lock
// keyed by the business id, so two concurrent creates for the same
// tenant cannot draw the same number.
func CreateStore(c echo.Context) error {
	log := logger.FromEcho(c)
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	var req storeRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, apperr.Validation("invalid request body", ""))
	}
	if strings.TrimSpace(req.Name) == "" {
		return respondError(c, apperr.Validation("store_name is required", "store_name"))
	}

	store := model.Store{
		BusinessID: claims.BusinessID,
		Name:       req.Name,
		Address:    req.Address,
		City:       req.City,
		State:      req.State,
		Country:    req.Country,
		Pincode:    req.Pincode,
	}

	err = database.GetDB().Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("SELECT pg_advisory_xact_lock(?)", int64(claims.BusinessID)).Error; err != nil {
			return err
		}

		var maxSeq int
		if err := tx.Model(&model.Store{}).
			Where("business_id = ?", claims.BusinessID).
			Select("COALESCE(MAX(store_sequence), 0)").
			Scan(&maxSeq).Error; err != nil {
			return err
		}
		store.StoreSequence = maxSeq + 1

		return tx.Create(&store).Error
	})
	if err != nil {
		log.Error("Failed to create store", zap.Error(err))
		return respondError(c, err)
	}

	log.Info("Store created",
		zap.Uint("business_id", store.BusinessID),
		zap.Int("store_sequence", store.StoreSequence),
		zap.String("store_name", store.Name))

	return c.JSON(http.StatusCreated, newStoreResponse(&store))
}

// GetStores lists the tenant's stores ordered by sequence. The optional
// filters all AND together as case-insensitive substring matches.
func GetStores(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	query := database.GetDB().Model(&model.Store{}).Where("business_id = ?", claims.BusinessID)
	for param, column := range map[string]string{
		"store_name":    "store_name",
		"store_city":    "store_city",
		"store_state":   "store_state",
		"store_country": "store_country",
		"store_pincode": "store_pincode",
	} {
		if v := c.QueryParam(param); v != "" {
			query = query.Where(column+" ILIKE ?", "%"+v+"%")
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return respondError(c, err)
	}

	skip, limit := pagination(c, 100)
	var stores []model.Store
	if err := query.Order("store_sequence").Offset(skip).Limit(limit).Find(&stores).Error; err != nil {
		return respondError(c, err)
	}

	items := make([]storeResponse, 0, len(stores))
	for i := range stores {
		items = append(items, newStoreResponse(&stores[i]))
	}
	return c.JSON(http.StatusOK, echo.Map{
		"items": items,
		"total": total,
		"skip":  skip,
		"limit": limit,
	})
}

// GetStore returns one store in the caller's tenant.
func GetStore(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	storeID, err := paramUint(c, "store_id")
	if err != nil {
		return respondError(c, err)
	}

	store, err := findStore(database.GetDB(), claims.BusinessID, storeID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, newStoreResponse(store))
}

// UpdateStore updates store fields. The sequence number is immutable.
func UpdateStore(c echo.Context) error {
	log := logger.FromEcho(c)
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	storeID, err := paramUint(c, "store_id")
	if err != nil {
		return respondError(c, err)
	}

	db := database.GetDB()
	store, err := findStore(db, claims.BusinessID, storeID)
	if err != nil {
		return respondError(c, err)
	}

	var req storeRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, apperr.Validation("invalid request body", ""))
	}
	if req.Name != "" {
		store.Name = req.Name
	}
	if req.Address != "" {
		store.Address = req.Address
	}
	if req.City != "" {
		store.City = req.City
	}
	if req.State != "" {
		store.State = req.State
	}
	if req.Country != "" {
		store.Country = req.Country
	}
	if req.Pincode != "" {
		store.Pincode = req.Pincode
	}

	if err := db.Save(store).Error; err != nil {
		log.Error("Failed to update store", zap.Uint("store_id", storeID), zap.Error(err))
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, newStoreResponse(store))
}

// DeleteStore removes a store. Employees assigned to it keep their
// store_id cleared; sequence numbers of other stores never shift.
func DeleteStore(c echo.Context) error {
	log := logger.FromEcho(c)
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	storeID, err := paramUint(c, "store_id")
	if err != nil {
		return respondError(c, err)
	}

	db := database.GetDB()
	store, err := findStore(db, claims.BusinessID, storeID)
	if err != nil {
		return respondError(c, err)
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Employee{}).
			Where("business_id = ? AND store_id = ?", claims.BusinessID, storeID).
			Update("store_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(store).Error
	})
	if err != nil {
		log.Error("Failed to delete store", zap.Uint("store_id", storeID), zap.Error(err))
		return respondError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
