package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Supported DB_DRIVER values
const (
	DriverMySQL   = "mysql"
	DriverMongo   = "mongodb"
	DriverMemory  = "memory"
	defaultSecret = "default_secret"
)

// Config holds all configuration for the application
type Config struct {
	AppMode     string
	Port        string
	LogLevel    string
	Origins     string
	Database    DatabaseConfig
	JWT         JWTConfig
	Redis       RedisConfig
	RateLimit   RateLimitConfig
	Maintenance MaintenanceConfig
	Seed        SeedConfig
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Driver   string
	Host     string
	Port     string
	User     string
	Password string
	DBName   string

	MongoURI          string
	MongoDBName       string
	MongoTransactions bool
}

// JWTConfig holds JWT configuration. Token lifetime is fixed, see jwt.AccessTokenTTL.
type JWTConfig struct {
	Secret string
}

// RedisConfig points the rate limiter at a shared counter store
type RedisConfig struct {
	URL string
}

// RateLimitConfig holds limiter settings
type RateLimitConfig struct {
	Enabled bool
	Max     int
	AuthMax int
}

// MaintenanceConfig holds the cron schedule of background cleanup
type MaintenanceConfig struct {
	Schedule string
}

// SeedConfig describes the bootstrap administrator
type SeedConfig struct {
	AdminUsername string
	AdminPassword string
	AdminName     string
}

// Load reads configuration from .env file and environment variables
func Load() (*Config, error) {
	// Load .env file (ignore error if file doesn't exist in production)
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	return FromEnv()
}

// FromEnv builds the config from the process environment only
func FromEnv() (*Config, error) {
	// trim spaces for Windows compatibility
	appMode := strings.TrimSpace(getEnv("APP_MODE", "dev"))
	if appMode != "dev" && appMode != "prod" {
		return nil, fmt.Errorf("invalid APP_MODE: '%s' (must be 'dev' or 'prod')", appMode)
	}

	config := &Config{
		AppMode:  appMode,
		Port:     getEnv("PORT", "5001"),
		LogLevel: getEnv("LOG_LEVEL", ""),
		Origins:  getEnv("ALLOWED_ORIGINS", getEnv("FRONTEND_URL", "")),
		Database: loadDatabaseConfig(appMode),
		JWT:      loadJWTConfig(appMode),
		Redis:    RedisConfig{URL: getEnv("REDIS_URL", "")},
		RateLimit: RateLimitConfig{
			Enabled: getBool("RATE_LIMIT_ENABLED", true),
			Max:     getInt("RATE_LIMIT_MAX", 100),
			AuthMax: getInt("AUTH_RATE_LIMIT_MAX", 5),
		},
		Maintenance: MaintenanceConfig{
			Schedule: os.Getenv("MAINTENANCE_SCHEDULE"),
		},
		Seed: SeedConfig{
			AdminUsername: getEnv("SEED_ADMIN_USERNAME", ""),
			AdminPassword: getEnv("SEED_ADMIN_PASSWORD", ""),
			AdminName:     getEnv("SEED_ADMIN_NAME", "Administrator"),
		},
	}
	if _, set := os.LookupEnv("MAINTENANCE_SCHEDULE"); !set {
		config.Maintenance.Schedule = "@every 1h"
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate rejects settings the server cannot start with
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverMySQL, DriverMongo, DriverMemory:
	default:
		return fmt.Errorf("invalid DB_DRIVER: '%s' (must be mysql, mongodb or memory)", c.Database.Driver)
	}

	if c.IsProd() {
		if c.JWT.Secret == "" || c.JWT.Secret == defaultSecret {
			return errors.New("PROD_JWT_SECRET must be set in prod mode")
		}
		if c.Database.Driver == DriverMemory {
			return errors.New("DB_DRIVER=memory is not allowed in prod mode")
		}
	}

	if (c.Seed.AdminUsername == "") != (c.Seed.AdminPassword == "") {
		return errors.New("SEED_ADMIN_USERNAME and SEED_ADMIN_PASSWORD must be set together")
	}
	return nil
}

// loadDatabaseConfig loads database config based on mode
func loadDatabaseConfig(mode string) DatabaseConfig {
	prefix := modePrefix(mode)

	return DatabaseConfig{
		Driver:            strings.ToLower(getEnv("DB_DRIVER", DriverMySQL)),
		Host:              getEnv(prefix+"DB_HOST", "localhost"),
		Port:              getEnv(prefix+"DB_PORT", "3306"),
		User:              getEnv(prefix+"DB_USER", "root"),
		Password:          getEnv(prefix+"DB_PASS", ""),
		DBName:            getEnv(prefix+"DB_NAME", "roomfinder"),
		MongoURI:          getEnv("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDBName:       getEnv("MONGO_DB_NAME", "roomfinder"),
		MongoTransactions: getBool("MONGO_TRANSACTIONS", false),
	}
}

// loadJWTConfig loads JWT config based on mode
func loadJWTConfig(mode string) JWTConfig {
	return JWTConfig{
		Secret: getEnv(modePrefix(mode)+"JWT_SECRET", getEnv("JWT_SECRET", defaultSecret)),
	}
}

func modePrefix(mode string) string {
	if mode == "prod" {
		return "PROD_"
	}
	return "DEV_"
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	n, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return n
}

func getBool(key string, defaultValue bool) bool {
	b, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return b
}

// IsDev returns true if running in development mode
func (c *Config) IsDev() bool {
	return c.AppMode == "dev"
}

// IsProd returns true if running in production mode
func (c *Config) IsProd() bool {
	return c.AppMode == "prod"
}

// GetAllowedOrigins returns allowed origins for CORS
func (c *Config) GetAllowedOrigins() string {
	if c.Origins == "" {
		if c.IsDev() {
			return "*"
		}
		return "http://localhost:3000"
	}
	return c.Origins
}
