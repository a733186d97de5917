// Package repositories provides the data access layer. It owns all
// database operations, the transactional unit of work, and the row-locking
// primitives the services build on.
package repositories

import (
	"log"
	"os"
	"time"

	"bankapp/internal/config"
	"bankapp/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB is the global database instance used across the application.
var DB *gorm.DB

// InitDB connects to PostgreSQL, configures the connection pool, and runs
// migrations. TranslateError is required so unique-constraint violations
// surface as gorm.ErrDuplicatedKey (reference collisions depend on it).
func InitDB() error {
	dsn := "host=" + config.GetEnv("DB_HOST", "localhost") +
		" user=" + config.GetEnv("DB_USER", "postgres") +
		" password=" + config.GetEnv("DB_PASSWORD", "postgres") +
		" dbname=" + config.GetEnv("DB_NAME", "bankapp") +
		" port=" + config.GetEnv("DB_PORT", "5432") +
		" sslmode=disable"

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		},
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         newLogger,
		TranslateError: true,
	})
	if err != nil {
		return err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	sqlDB.SetMaxIdleConns(config.GetIntEnv("DB_MAX_IDLE_CONNS", 10))
	sqlDB.SetMaxOpenConns(config.GetIntEnv("DB_MAX_OPEN_CONNS", 100))
	sqlDB.SetConnMaxLifetime(time.Hour)
	sqlDB.SetConnMaxIdleTime(30 * time.Minute)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Account{},
		&models.TransactionRecord{},
		&models.FailedTransaction{},
		&models.Card{},
		&models.FixedDeposit{},
		&models.RecurringDeposit{},
	); err != nil {
		return err
	}

	DB = db
	log.Println("PostgreSQL connected & migrations applied")
	return nil
}
