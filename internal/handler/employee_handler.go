package handler

import (
	"errors"
	"net/http"
	"strings"

	"backoffice-service/internal/apperr"
	"backoffice-service/internal/label"
	"backoffice-service/internal/model"
	"backoffice-service/pkg/auth"
	"backoffice-service/pkg/database"
	"backoffice-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// employeeResponse is the wire shape for one employee, including the
// hydrated store reference and custom fields.
type employeeResponse struct {
	EmpID        uint         `json:"emp_id"`
	UserID       string       `json:"user_id"`
	BusinessID   uint         `json:"business_id"`
	Name         string       `json:"name"`
	Email        string       `json:"email"`
	PhoneNumber  string       `json:"phone_number"`
	AadharNumber string       `json:"aadhar_number,omitempty"`
	Address      string       `json:"address,omitempty"`
	City         string       `json:"city,omitempty"`
	State        string       `json:"state,omitempty"`
	Country      string       `json:"country,omitempty"`
	Role         string       `json:"role"`
	JoiningDate  string       `json:"joining_date,omitempty"`
	StoreID      *uint        `json:"store_id"`
	StoreName    string       `json:"store_name,omitempty"`
	StoreCode    string       `json:"store_code,omitempty"`
	CustomFields []label.Pair `json:"custom_fields"`
}

func newEmployeeResponse(e *model.Employee, store *model.Store, fields []label.Pair) employeeResponse {
	if fields == nil {
		fields = []label.Pair{}
	}
	resp := employeeResponse{
		EmpID:        e.EmpID,
		UserID:       e.DisplayID(),
		BusinessID:   e.BusinessID,
		Name:         e.Name,
		Email:        e.Email,
		PhoneNumber:  e.PhoneNumber,
		AadharNumber: e.AadharNumber,
		Address:      e.Address,
		City:         e.City,
		State:        e.State,
		Country:      e.Country,
		Role:         e.Role,
		JoiningDate:  e.JoiningDate,
		StoreID:      e.StoreID,
		CustomFields: fields,
	}
	if store != nil {
		resp.StoreName = store.Name
		resp.StoreCode = store.DisplayID()
	}
	return resp
}

type registerOwnerRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	PhoneNumber     string `json:"phone_number"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// RegisterOwner is the public endpoint creating a new tenant: an owner
// employee plus its Business row. The same email may own several
// businesses; each registration creates a fresh tenant.
func RegisterOwner(c echo.Context) error {
	log := logger.FromEcho(c)

	var req registerOwnerRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, apperr.Validation("invalid request body", ""))
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" || strings.TrimSpace(req.PhoneNumber) == "" {
		return respondError(c, apperr.Validation("name, email and phone_number are required", ""))
	}
	if req.Password == "" || req.Password != req.ConfirmPassword {
		return respondError(c, apperr.Validation("passwords do not match", "password"))
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		log.Error("Failed to hash password", zap.Error(err))
		return respondError(c, apperr.Internal("error processing password"))
	}

	var owner model.Employee
	err = database.GetDB().Transaction(func(tx *gorm.DB) error {
		businessID, err := database.NextBusinessID(tx)
		if err != nil {
			return err
		}

		owner = model.Employee{
			BusinessID:     businessID,
			Name:           req.Name,
			Email:          req.Email,
			PhoneNumber:    req.PhoneNumber,
			Role:           model.RoleOwner,
			HashedPassword: hashed,
		}
		if err := tx.Create(&owner).Error; err != nil {
			return err
		}

		business := model.Business{
			BusinessID:  businessID,
			OwnerName:   req.Name,
			PhoneNumber: req.PhoneNumber,
			Email:       req.Email,
		}
		return tx.Create(&business).Error
	})
	if err != nil {
		log.Error("Failed to register owner", zap.Error(err))
		return respondError(c, err)
	}

	log.Info("Owner account created",
		zap.Uint("emp_id", owner.EmpID),
		zap.Uint("business_id", owner.BusinessID))

	return c.JSON(http.StatusCreated, newEmployeeResponse(&owner, nil, nil))
}

type createEmployeeRequest struct {
	Name         string       `json:"name"`
	Email        string       `json:"email"`
	PhoneNumber  string       `json:"phone_number"`
	AadharNumber string       `json:"aadhar_number"`
	Address      string       `json:"address"`
	City         string       `json:"city"`
	State        string       `json:"state"`
	Country      string       `json:"country"`
	Role         string       `json:"role"`
	JoiningDate  string       `json:"joining_date"`
	StoreID      *uint        `json:"store_id"`
	Password     string       `json:"password"`
	CustomFields []label.Pair `json:"custom_fields"`
}

// CreateEmployee adds an employee to the caller's tenant.
func CreateEmployee(c echo.Context) error {
	log := logger.FromEcho(c)
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	var req createEmployeeRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, apperr.Validation("invalid request body", ""))
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" || strings.TrimSpace(req.PhoneNumber) == "" {
		return respondError(c, apperr.Validation("name, email and phone_number are required", ""))
	}
	if req.Role == "" {
		req.Role = model.RoleEmployee
	}
	if !model.ValidRole(req.Role) {
		return respondError(c, apperr.Validation("unknown role", "role"))
	}
	if req.Password == "" {
		return respondError(c, apperr.Validation("password is required", "password"))
	}

	db := database.GetDB()

	// Email is unique within the tenant, not globally.
	var count int64
	if err := db.Model(&model.Employee{}).
		Where("business_id = ? AND email = ?", claims.BusinessID, req.Email).
		Count(&count).Error; err != nil {
		return respondError(c, err)
	}
	if count > 0 {
		return respondError(c, apperr.Duplicate("email already registered for this business", "email"))
	}

	if req.StoreID != nil {
		if _, err := findStore(db, claims.BusinessID, *req.StoreID); err != nil {
			return respondError(c, err)
		}
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		log.Error("Failed to hash password", zap.Error(err))
		return respondError(c, apperr.Internal("error processing password"))
	}

	createdBy := claims.EmpID
	employee := model.Employee{
		BusinessID:     claims.BusinessID,
		Name:           req.Name,
		Email:          req.Email,
		PhoneNumber:    req.PhoneNumber,
		AadharNumber:   req.AadharNumber,
		Address:        req.Address,
		City:           req.City,
		State:          req.State,
		Country:        req.Country,
		Role:           req.Role,
		JoiningDate:    req.JoiningDate,
		StoreID:        req.StoreID,
		HashedPassword: hashed,
		CreatedBy:      &createdBy,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&employee).Error; err != nil {
			return err
		}
		for _, p := range req.CustomFields {
			if err := label.RecordInstance(tx, claims.BusinessID, employee.EmpID, p.LabelName, p.LabelValue); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Error("Failed to create employee", zap.Error(err))
		return respondError(c, err)
	}

	log.Info("Employee created",
		zap.Uint("emp_id", employee.EmpID),
		zap.Uint("business_id", employee.BusinessID),
		zap.String("role", employee.Role))

	return c.JSON(http.StatusCreated, newEmployeeResponse(&employee, nil, req.CustomFields))
}

// ListEmployees returns a filtered, paginated employee page for the
// caller's tenant. Criteria come either as a JSON "filters" array or the
// legacy filter_field/filter_value pair; all criteria AND together.
// Store rows and custom fields for the page are loaded with one batched
// query each.
func ListEmployees(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	criteria := label.ParseCriteria(c.QueryParam("filters"))
	if f, v := c.QueryParam("filter_field"), c.QueryParam("filter_value"); f != "" && v != "" {
		criteria = append(criteria, label.Criterion{Field: f, Value: v})
	}

	db := database.GetDB()
	query := db.Model(&model.Employee{}).Where("employees.business_id = ?", claims.BusinessID)
	query, err = label.ApplyEmployeeCriteria(db, query, claims.BusinessID, criteria)
	if err != nil {
		return respondError(c, err)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return respondError(c, err)
	}

	skip, limit := pagination(c, 100)
	var employees []model.Employee
	if err := query.Order("employees.emp_id").Offset(skip).Limit(limit).Find(&employees).Error; err != nil {
		return respondError(c, err)
	}

	items, err := hydrateEmployees(db, claims.BusinessID, employees)
	if err != nil {
		return respondError(c, err)
	}

	page := 0
	if limit > 0 {
		page = skip / limit
	}
	return c.JSON(http.StatusOK, echo.Map{
		"items":     items,
		"total":     total,
		"page":      page,
		"page_size": limit,
	})
}

// hydrateEmployees assembles the response page without per-row queries:
// one batched query for the referenced stores, one for the custom-field
// instances, then in-memory assembly keyed by identifier.
func hydrateEmployees(db *gorm.DB, businessID uint, employees []model.Employee) ([]employeeResponse, error) {
	empIDs := make([]uint, 0, len(employees))
	storeIDSet := make(map[uint]struct{})
	for _, e := range employees {
		empIDs = append(empIDs, e.EmpID)
		if e.StoreID != nil {
			storeIDSet[*e.StoreID] = struct{}{}
		}
	}

	storesByID := make(map[uint]model.Store, len(storeIDSet))
	if len(storeIDSet) > 0 {
		storeIDs := make([]uint, 0, len(storeIDSet))
		for id := range storeIDSet {
			storeIDs = append(storeIDs, id)
		}
		var stores []model.Store
		if err := db.Where("business_id = ? AND id IN ?", businessID, storeIDs).Find(&stores).Error; err != nil {
			return nil, apperr.Translate(err)
		}
		for _, s := range stores {
			storesByID[s.ID] = s
		}
	}

	fieldsByEmp, err := label.InstancesByEmployee(db, businessID, empIDs)
	if err != nil {
		return nil, err
	}

	items := make([]employeeResponse, 0, len(employees))
	for i := range employees {
		e := &employees[i]
		var store *model.Store
		if e.StoreID != nil {
			if s, ok := storesByID[*e.StoreID]; ok {
				store = &s
			}
		}
		items = append(items, newEmployeeResponse(e, store, fieldsByEmp[e.EmpID]))
	}
	return items, nil
}

// ListCustomFieldLabels returns the distinct custom field names in use
// for the caller's tenant.
func ListCustomFieldLabels(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	names, err := label.ListEmployeeLabelNames(database.GetDB(), claims.BusinessID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, names)
}

func findEmployee(db *gorm.DB, businessID, empID uint) (*model.Employee, error) {
	var employee model.Employee
	err := db.Where("emp_id = ? AND business_id = ?", empID, businessID).First(&employee).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("employee not found")
	}
	if err != nil {
		return nil, apperr.Translate(err)
	}
	return &employee, nil
}

// GetEmployee returns one employee in the caller's tenant.
func GetEmployee(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	empID, err := paramUint(c, "emp_id")
	if err != nil {
		return respondError(c, err)
	}

	db := database.GetDB()
	employee, err := findEmployee(db, claims.BusinessID, empID)
	if err != nil {
		return respondError(c, err)
	}

	items, err := hydrateEmployees(db, claims.BusinessID, []model.Employee{*employee})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, items[0])
}

type updateEmployeeRequest struct {
	Name         *string       `json:"name"`
	Email        *string       `json:"email"`
	PhoneNumber  *string       `json:"phone_number"`
	AadharNumber *string       `json:"aadhar_number"`
	Address      *string       `json:"address"`
	City         *string       `json:"city"`
	State        *string       `json:"state"`
	Country      *string       `json:"country"`
	Role         *string       `json:"role"`
	JoiningDate  *string       `json:"joining_date"`
	StoreID      *uint         `json:"store_id"`
	Password     *string       `json:"password"`
	CustomFields *[]label.Pair `json:"custom_fields"`
}

// UpdateEmployee updates profile fields. Owners, admins and managers can
// update anyone in the tenant; other roles only themselves. When
// custom_fields is present the stored set is replaced wholesale: labels
// omitted from the request are removed.
func UpdateEmployee(c echo.Context) error {
	log := logger.FromEcho(c)
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	empID, err := paramUint(c, "emp_id")
	if err != nil {
		return respondError(c, err)
	}

	elevated := claims.Role == model.RoleOwner || claims.Role == model.RoleAdmin || claims.Role == model.RoleManager
	if claims.EmpID != empID && !elevated {
		return respondError(c, apperr.Forbidden("you can only update your own profile"))
	}

	db := database.GetDB()
	employee, err := findEmployee(db, claims.BusinessID, empID)
	if err != nil {
		return respondError(c, err)
	}

	var req updateEmployeeRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, apperr.Validation("invalid request body", ""))
	}

	if req.Email != nil && *req.Email != employee.Email {
		var count int64
		if err := db.Model(&model.Employee{}).
			Where("business_id = ? AND email = ? AND emp_id <> ?", claims.BusinessID, *req.Email, empID).
			Count(&count).Error; err != nil {
			return respondError(c, err)
		}
		if count > 0 {
			return respondError(c, apperr.Duplicate("email already registered for this business", "email"))
		}
		employee.Email = *req.Email
	}
	if req.Name != nil {
		employee.Name = *req.Name
	}
	if req.PhoneNumber != nil {
		employee.PhoneNumber = *req.PhoneNumber
	}
	if req.AadharNumber != nil {
		employee.AadharNumber = *req.AadharNumber
	}
	if req.Address != nil {
		employee.Address = *req.Address
	}
	if req.City != nil {
		employee.City = *req.City
	}
	if req.State != nil {
		employee.State = *req.State
	}
	if req.Country != nil {
		employee.Country = *req.Country
	}
	if req.Role != nil {
		if !model.ValidRole(*req.Role) {
			return respondError(c, apperr.Validation("unknown role", "role"))
		}
		if !elevated {
			return respondError(c, apperr.Forbidden("you cannot change your own role"))
		}
		employee.Role = *req.Role
	}
	if req.JoiningDate != nil {
		employee.JoiningDate = *req.JoiningDate
	}
	if req.StoreID != nil {
		if _, err := findStore(db, claims.BusinessID, *req.StoreID); err != nil {
			return respondError(c, err)
		}
		employee.StoreID = req.StoreID
	}
	if req.Password != nil && *req.Password != "" {
		hashed, err := auth.HashPassword(*req.Password)
		if err != nil {
			log.Error("Failed to hash password", zap.Error(err))
			return respondError(c, apperr.Internal("error processing password"))
		}
		employee.HashedPassword = hashed
	}

	updatedBy := claims.EmpID
	employee.UpdatedBy = &updatedBy

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(employee).Error; err != nil {
			return err
		}
		if req.CustomFields != nil {
			return label.ReplaceAllInstances(tx, claims.BusinessID, empID, *req.CustomFields)
		}
		return nil
	})
	if err != nil {
		log.Error("Failed to update employee", zap.Uint("emp_id", empID), zap.Error(err))
		return respondError(c, err)
	}

	items, err := hydrateEmployees(db, claims.BusinessID, []model.Employee{*employee})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, items[0])
}

// DeleteEmployee removes an employee and, via the cascade on
// employee_labels, all of its custom field instances.
func DeleteEmployee(c echo.Context) error {
	log := logger.FromEcho(c)
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	empID, err := paramUint(c, "emp_id")
	if err != nil {
		return respondError(c, err)
	}

	db := database.GetDB()
	employee, err := findEmployee(db, claims.BusinessID, empID)
	if err != nil {
		return respondError(c, err)
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("business_id = ? AND emp_id = ?", claims.BusinessID, empID).
			Delete(&model.EmployeeLabel{}).Error; err != nil {
			return err
		}
		return tx.Delete(employee).Error
	})
	if err != nil {
		log.Error("Failed to delete employee", zap.Uint("emp_id", empID), zap.Error(err))
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"emp_id": empID, "detail": "deleted successfully"})
}
