package database

import (
	"recruiting-crm/internal/model"
	"recruiting-crm/pkg/config"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var db *gorm.DB

// InitDB initializes the database connection and migrates the schema.
func InitDB(cfg *config.Config) error {
	logLevel := cfg.DB.LogLevel
	if logLevel == 0 {
		logLevel = logger.Warn
	}

	// PreferSimpleProtocol disables implicit prepared statement usage to
	// prevent "prepared statement already exists" errors behind poolers.
	pgConfig := postgres.Config{
		DSN:                  cfg.DB.GetDSN(),
		PreferSimpleProtocol: true,
	}

	var err error
	db, err = gorm.Open(postgres.New(pgConfig), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	if cfg.DB.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.DB.MaxIdleConns)
	}
	if cfg.DB.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.DB.MaxOpenConns)
	}
	if cfg.DB.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.DB.ConnMaxLifetime)
	}

	if err := db.AutoMigrate(
		&model.Client{},
		&model.Recruiter{},
		&model.Vacancy{},
		&model.Candidate{},
		&model.Application{},
		&model.Payment{},
		&model.User{},
	); err != nil {
		return err
	}

	ensureVacancyCityColumn()
	return nil
}

// ensureVacancyCityColumn applies the optional vacancies.city column for
// databases created before the column existed. The column is optional, so a
// failure here is logged and swallowed rather than aborting startup.
func ensureVacancyCityColumn() {
	if err := db.Exec("ALTER TABLE vacancies ADD COLUMN IF NOT EXISTS city varchar(120)").Error; err != nil {
		zap.L().Warn("vacancy city column migration failed, continuing without it", zap.Error(err))
	}
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	return db
}
