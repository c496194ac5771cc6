package postgres

import (
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/Despicable-at/robot-delivery-backend/internal/config"
	"github.com/Despicable-at/robot-delivery-backend/internal/infrastructure/database/postgres/models"
	"github.com/Despicable-at/robot-delivery-backend/internal/logger"
)

type DB struct {
	*gorm.DB
}

func NewDB(cfg *config.Config) (*DB, error) {
	dsn := cfg.Database.DSN()

	var gormLogLevel gormLogger.LogLevel
	if cfg.Server.Environment == "production" {
		gormLogLevel = gormLogger.Warn
	} else {
		gormLogLevel = gormLogger.Info
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("error getting sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	logger.Info("Database connection established",
		zap.String("host", cfg.Database.Host),
		zap.String("database", cfg.Database.DBName),
	)

	return &DB{DB: db}, nil
}

// Migrate creates the schema and seeds the singleton robot status row.
func (d *DB) Migrate() error {
	err := d.DB.AutoMigrate(
		&models.OfficeModel{},
		&models.AccountModel{},
		&models.EmailVerificationModel{},
		&models.PasswordResetModel{},
		&models.SessionModel{},
		&models.RobotStateModel{},
	)
	if err != nil {
		return fmt.Errorf("error migrating schema: %w", err)
	}

	var count int64
	if err := d.DB.Model(&models.RobotStateModel{}).Count(&count).Error; err != nil {
		return fmt.Errorf("error checking robot status: %w", err)
	}
	if count == 0 {
		seed := models.RobotStateModel{ID: 1, Status: "available", UpdatedAt: time.Now()}
		if err := d.DB.Create(&seed).Error; err != nil {
			return fmt.Errorf("error seeding robot status: %w", err)
		}
	}

	logger.Info("Database schema initialized")
	return nil
}

func (d *DB) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (d *DB) Health() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
