package config

import (
	"context"
	"fmt"
	"time"

	"roomfinder/internal/adapters/persistence/memstore"
	"roomfinder/internal/adapters/persistence/models"
	"roomfinder/internal/adapters/persistence/mongostore"
	"roomfinder/internal/adapters/persistence/repositories"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenStore connects the backing database selected by DB_DRIVER
func OpenStore(ctx context.Context, cfg *Config, log *zap.Logger) (repositories.Store, error) {
	switch cfg.Database.Driver {
	case DriverMySQL:
		db, err := ConnectDatabase(cfg, log)
		if err != nil {
			return nil, err
		}
		if err := models.AutoMigrate(db); err != nil {
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
		return repositories.NewGormStore(db), nil

	case DriverMongo:
		store, err := mongostore.NewStore(ctx, cfg.Database.MongoURI, cfg.Database.MongoDBName, cfg.Database.MongoTransactions, log)
		if err != nil {
			return nil, err
		}
		log.Info("MongoDB connected",
			zap.String("database", cfg.Database.MongoDBName),
			zap.Bool("transactions", cfg.Database.MongoTransactions),
		)
		return store, nil

	case DriverMemory:
		log.Warn("Using in-memory store; data is lost on restart")
		return memstore.New(), nil
	}

	return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.Database.Driver)
}

// ConnectDatabase establishes connection to MySQL database
func ConnectDatabase(cfg *Config, log *zap.Logger) (*gorm.DB, error) {
	dsn := buildDSN(cfg.Database)

	var gormLogger logger.Interface
	if cfg.IsDev() {
		gormLogger = logger.Default.LogMode(logger.Info)
	} else {
		gormLogger = logger.Default.LogMode(logger.Error)
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger:                 gormLogger,
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Connection pool settings
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Info("Database connected successfully",
		zap.String("host", cfg.Database.Host),
		zap.String("port", cfg.Database.Port),
		zap.String("database", cfg.Database.DBName),
	)

	return db, nil
}

// buildDSN returns the database connection string
func buildDSN(d DatabaseConfig) string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.DBName,
	)
}
