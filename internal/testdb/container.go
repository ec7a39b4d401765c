//go:build integration

package testdb

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/phrazzld/dbfixture/internal/ciutil"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// PostgresImage is the image StartPostgres runs.
const PostgresImage = "postgres:16-alpine"

// StartPostgres starts a disposable Postgres container and returns its URL.
// The container is terminated when the test finishes.
func StartPostgres(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		PostgresImage,
		postgres.WithDatabase("dbfixture"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	return connStr
}

// PostgresURLWithT returns the configured test database URL. Without one it
// starts a container when DBFIXTURE_TESTCONTAINERS=1 and skips otherwise.
func PostgresURLWithT(t *testing.T) string {
	t.Helper()

	if dbURL := GetTestDatabaseURL(); dbURL != "" {
		return dbURL
	}
	if os.Getenv(ciutil.EnvTestcontainers) == "1" {
		return StartPostgres(t)
	}

	t.Skip("no test database configured; set DBFIXTURE_TEST_DB_URL or DBFIXTURE_TESTCONTAINERS=1")
	return ""
}
