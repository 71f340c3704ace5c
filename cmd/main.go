package main

import (
	"time"

	"backoffice-service/internal/handler"
	mid "backoffice-service/internal/middleware"
	"backoffice-service/internal/model"
	"backoffice-service/internal/otp"
	"backoffice-service/pkg/config"
	"backoffice-service/pkg/database"
	"backoffice-service/pkg/jwtutil"
	"backoffice-service/pkg/logger"
	"backoffice-service/pkg/metrics"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

func main() {
	appConfig, err := config.Load("backoffice-service")
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	if err := logger.InitLogger(&logger.LogConfig{
		Level:       appConfig.Log.Level,
		Environment: appConfig.Server.Env,
		ServiceName: appConfig.ServiceName,
	}); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	log := logger.GetLogger()
	defer log.Sync()

	log.Info("Starting backoffice-service", appConfig.LogConfig()...)

	if _, err := database.InitDB(&appConfig.DB); err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	if err := database.MigrateModels(
		&model.Business{},
		&model.Employee{},
		&model.Store{},
		&model.Product{},
		&model.Category{},
		&model.CustomLabel{},
		&model.EmployeeLabel{},
	); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}
	if err := database.EnsureSequences(); err != nil {
		log.Fatal("Failed to ensure sequences", zap.Error(err))
	}
	log.Info("Database ready")

	jwtUtil := jwtutil.NewJWTUtil(&jwtutil.JWTConfig{
		SigningKey:             appConfig.JWT.SigningKey,
		ExpirationHours:        appConfig.JWT.ExpirationHours,
		RefreshExpirationHours: appConfig.JWT.RefreshExpirationHours,
	})
	otpStore := otp.NewStore(time.Duration(appConfig.OTP.ExpiryMinutes) * time.Minute)
	handler.Init(jwtUtil, otpStore)

	httpMetrics := metrics.NewHTTPMetrics(appConfig.ServiceName)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(mid.RequestIDMiddleware())
	e.Use(logger.Middleware())
	e.Use(httpMetrics.Middleware())

	e.GET("/metrics", echo.WrapHandler(metrics.GetPrometheusHandler()))
	e.GET("/", handler.Health)
	e.GET("/health", handler.Health)

	// Public registration, login and recovery routes.
	e.POST("/employees/register-owner", handler.RegisterOwner)
	e.POST("/employees/auth", handler.Authenticate)
	e.POST("/employees/refresh", handler.Refresh)
	e.POST("/employees/forgot-password", handler.ForgotPassword)
	e.POST("/employees/reset-password", handler.ResetPassword)
	e.POST("/employees/forgot-username-otp", handler.ForgotUsernameOTP)
	e.POST("/employees/verify-otp-username", handler.VerifyOTPUsername)
	e.POST("/employees/forgot-password-otp", handler.ForgotPasswordOTP)
	e.POST("/employees/verify-otp-password", handler.VerifyOTPPassword)

	auth := mid.JWTAuthMiddleware(jwtUtil)
	manage := mid.RequireRole(model.RoleOwner, model.RoleAdmin, model.RoleManager)
	admin := mid.RequireRole(model.RoleOwner, model.RoleAdmin)

	employees := e.Group("/employees", auth)
	employees.POST("", handler.CreateEmployee, manage)
	employees.GET("", handler.ListEmployees)
	employees.GET("/custom-fields/labels", handler.ListCustomFieldLabels)
	employees.GET("/custom-fields/labels/:label_name/values", handler.GetEmployeeLabelValues)
	employees.POST("/custom-fields/labels", handler.DefineEmployeeLabelTemplate, manage)
	employees.PUT("/custom-fields/labels", handler.ReplaceEmployeeLabelTemplate, manage)
	employees.GET("/:emp_id", handler.GetEmployee)
	employees.PUT("/:emp_id", handler.UpdateEmployee)
	employees.DELETE("/:emp_id", handler.DeleteEmployee, admin)

	stores := e.Group("/stores", auth)
	stores.POST("", handler.CreateStore, manage)
	stores.GET("", handler.GetStores)
	stores.GET("/:store_id", handler.GetStore)
	stores.PUT("/:store_id", handler.UpdateStore, manage)
	stores.DELETE("/:store_id", handler.DeleteStore, admin)

	products := e.Group("/products", auth)
	products.POST("/addProducts", handler.AddProducts, manage)
	products.GET("/getProducts", handler.GetProducts)
	products.GET("/getProduct/:id", handler.GetProduct)
	products.GET("/getProductByProductId/:productid", handler.GetProductByProductID)
	products.GET("/searchProducts", handler.SearchProducts)
	products.PUT("/updateProduct/:id", handler.UpdateProduct, manage)
	products.DELETE("/deleteProduct/:id", handler.DeleteProduct, manage)
	products.DELETE("/deleteProducts", handler.DeleteProducts, admin)

	categories := e.Group("/categories", auth)
	categories.POST("", handler.CreateCategory, manage)
	categories.GET("", handler.ListCategories)
	categories.GET("/:category_id", handler.GetCategory)
	categories.PUT("/:category_id", handler.UpdateCategory, manage)
	categories.DELETE("/:category_id", handler.DeleteCategory, admin)

	labels := e.Group("/custom-labels", auth)
	labels.POST("", handler.CreateCustomLabel, manage)
	labels.POST("/merge", handler.MergeCustomLabel, manage)
	labels.GET("", handler.GetCustomLabels)
	labels.GET("/:id", handler.GetCustomLabel)
	labels.PUT("/:id", handler.UpdateCustomLabel, manage)
	labels.DELETE("/:id", handler.DeleteCustomLabel, admin)
	e.GET("/custom-labels-names", handler.GetCustomLabelNames, auth)
	e.GET("/custom-labels-values/:label_name", handler.GetCustomLabelValues, auth)

	business := e.Group("/business", auth)
	business.POST("", handler.CreateBusiness, admin)
	business.GET("", handler.GetBusiness)
	business.PUT("", handler.UpdateBusiness, admin)

	log.Info("Starting server", zap.String("port", appConfig.Server.Port))
	if err := e.Start(":" + appConfig.Server.Port); err != nil {
		log.Fatal("Server error", zap.Error(err))
	}
}
