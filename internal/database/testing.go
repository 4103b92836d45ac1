package database

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/yourusername/pickpulse/internal/config"
)

// TestDatabaseEnv names the environment variable holding the test database
// config path. Integration tests are skipped when it is unset.
const TestDatabaseEnv = "PICKPULSE_TEST_DB_CONFIG"

// SetupTestDB creates a test database connection and verifies it
func SetupTestDB(t *testing.T) *DB {
	t.Helper()

	path := os.Getenv(TestDatabaseEnv)
	if path == "" {
		t.Skipf("%s not set; skipping database integration test", TestDatabaseEnv)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("failed to load test config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	db, err := Initialize(ctx, cfg)
	if err != nil {
		t.Fatalf("failed to create test database connection: %v", err)
	}

	t.Cleanup(db.Close)
	return db
}
