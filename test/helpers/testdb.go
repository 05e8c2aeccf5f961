package helpers

import (
	"context"
	"net/url"
	"os"
	"strings"
	"testing"

	"iblaze_backend/database"
	"iblaze_backend/internal/app"
	"iblaze_backend/internal/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// TestDatabaseURLEnv points the GORM-backed tests at a PostgreSQL server.
const TestDatabaseURLEnv = "TEST_DATABASE_URL"

// Stores lists every storage driver the shared suites run against.
var Stores = []string{"memory", "postgres"}

// OpenTestRepositories returns repositories for driver. The postgres driver
// gets a schema of its own that is dropped when the test ends, and the test
// is skipped when TEST_DATABASE_URL is unset.
func OpenTestRepositories(t *testing.T, driver string) *repositories.Repositories {
	t.Helper()
	if driver == "memory" {
		return repositories.NewMemoryRepositories()
	}

	dsn := os.Getenv(TestDatabaseURLEnv)
	if dsn == "" {
		t.Skipf("%s is not set", TestDatabaseURLEnv)
	}

	ctx := context.Background()
	cfg := TestConfig()
	cfg.Database.Driver = "postgres"
	cfg.Database.DSN = dsn

	admin, err := database.Open(ctx, cfg)
	require.NoError(t, err)

	schema := "test_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	require.NoError(t, admin.Exec("CREATE SCHEMA "+schema).Error)
	t.Cleanup(func() {
		if err := admin.Exec("DROP SCHEMA IF EXISTS " + schema + " CASCADE").Error; err != nil {
			t.Logf("drop schema %s: %v", schema, err)
		}
		if sqlDB, err := admin.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	cfg.Database.DSN = withSearchPath(dsn, schema)
	repos, closeDB, err := app.OpenRepositories(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(closeDB)
	return repos
}

// withSearchPath accepts both URL and keyword/value DSNs.
func withSearchPath(dsn, schema string) string {
	if strings.Contains(dsn, "://") {
		u, err := url.Parse(dsn)
		if err == nil {
			q := u.Query()
			q.Set("search_path", schema)
			u.RawQuery = q.Encode()
			return u.String()
		}
	}
	return dsn + " search_path=" + schema
}
