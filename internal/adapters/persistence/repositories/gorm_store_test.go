package repositories_test

import (
	"os"
	"testing"

	"roomfinder/internal/adapters/persistence/models"
	"roomfinder/internal/adapters/persistence/repositories"
	"roomfinder/internal/adapters/persistence/storetest"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TestGormStore needs MYSQL_TEST_DSN pointing at a disposable database
func TestGormStore(t *testing.T) {
	dsn := os.Getenv("MYSQL_TEST_DSN")
	if dsn == "" {
		t.Skip("MYSQL_TEST_DSN not set")
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Skipf("mysql unavailable: %v", err)
	}

	storetest.Run(t, func(t *testing.T) repositories.Store {
		migrator := db.Migrator()
		require.NoError(t, migrator.DropTable(
			&models.SavedListing{}, &models.Listing{}, &models.UserProfile{},
			&models.ListerProfile{}, &models.AdminProfile{}, &models.Account{}, &models.Report{},
		))
		require.NoError(t, models.AutoMigrate(db))
		return repositories.NewGormStore(db)
	})
}
