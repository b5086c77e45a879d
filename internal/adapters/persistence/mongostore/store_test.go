package mongostore

import (
	"context"
	"os"
	"testing"
	"time"

	"roomfinder/internal/adapters/persistence/repositories"
	"roomfinder/internal/adapters/persistence/storetest"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TestStore runs against MONGO_TEST_URI and is skipped when it is unset or unreachable
func TestStore(t *testing.T) {
	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI not set")
	}
	transactions := os.Getenv("MONGO_TEST_TRANSACTIONS") == "true"

	storetest.Run(t, func(t *testing.T) repositories.Store {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		dbName := "roomfinder_test_" + uuid.NewString()[:8]
		s, err := NewStore(ctx, uri, dbName, transactions, zap.NewNop())
		if err != nil {
			t.Skipf("mongo unavailable: %v", err)
		}
		t.Cleanup(func() {
			_ = s.db.Drop(context.Background())
			_ = s.Close()
		})
		return s
	})
}
