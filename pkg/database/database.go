package database

import (
	"fmt"
	"log"

	"backoffice-service/pkg/config"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB is the global database instance
var DB *gorm.DB

// InitDB initializes the database connection with configuration
func InitDB(dbConfig *config.DBConfig) (*gorm.DB, error) {
	var err error

	// Configure Postgres options
	pgConfig := postgres.Config{
		DSN:                  dbConfig.GetDSN(),
		PreferSimpleProtocol: true, // Disables implicit prepared statement usage
	}

	// Open connection
	DB, err = gorm.Open(postgres.New(pgConfig), &gorm.Config{
		Logger: logger.Default.LogMode(dbConfig.LogLevel),
	})
	if err != nil {
		log.Printf("Failed to connect to database: %v", err)
		return nil, err
	}

	// Get generic database object SQL
	sqlDB, err := DB.DB()
	if err != nil {
		log.Printf("Failed to get database object: %v", err)
		return nil, err
	}

	// Set connection pool settings from config
	sqlDB.SetMaxIdleConns(dbConfig.MaxIdleConns)
	sqlDB.SetMaxOpenConns(dbConfig.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(dbConfig.ConnMaxLifetime)

	fmt.Println("Database connected successfully")

	return DB, nil
}

// MigrateModels runs migrations for the provided models
func MigrateModels(models ...interface{}) error {
	if DB == nil {
		return fmt.Errorf("database is not initialized")
	}

	if err := DB.AutoMigrate(models...); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	return nil
}

// EnsureSequences creates the install-wide counters the models rely on
// (employee numbers start at 1000, tenant numbers at 20000) and the
// partial unique index guarding label template rows.
func EnsureSequences() error {
	if DB == nil {
		return fmt.Errorf("database is not initialized")
	}

	stmts := []string{
		`CREATE SEQUENCE IF NOT EXISTS employee_emp_id_seq START WITH 1000 INCREMENT BY 1`,
		`CREATE SEQUENCE IF NOT EXISTS employee_business_id_seq START WITH 20000 INCREMENT BY 1`,
		`ALTER TABLE employees ALTER COLUMN emp_id SET DEFAULT nextval('employee_emp_id_seq')`,
		// Template rows (emp_id NULL) are unique per (tenant, label name).
		// Partial indexes are outside AutoMigrate's tag vocabulary, so the
		// DDL lives here with the other schema extras.
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_employee_labels_template
			ON employee_labels (business_id, label_name) WHERE emp_id IS NULL`,
	}
	for _, stmt := range stmts {
		if err := DB.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to ensure sequences: %w", err)
		}
	}

	return nil
}

// NextBusinessID draws the next tenant identifier from the shared sequence.
func NextBusinessID(tx *gorm.DB) (uint, error) {
	var id uint
	if err := tx.Raw(`SELECT nextval('employee_business_id_seq')`).Scan(&id).Error; err != nil {
		return 0, err
	}
	return id, nil
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	return DB
}
