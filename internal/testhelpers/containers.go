package testhelpers

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"testing"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// MySQLImage is the server the integration tests run against.
const MySQLImage = "mysql:8.0"

// TestDB holds a shared MySQL container with the supply chain schema applied.
type TestDB struct {
	Container testcontainers.Container
	DB        *sql.DB
	DSN       string
}

var (
	sharedTestDB     *TestDB
	sharedTestDBOnce sync.Once
	sharedTestDBErr  error
)

// GetTestDB returns a shared MySQL container for integration tests. The
// container is created once per test binary. Every call empties the tables
// so each test starts from a clean schema.
func GetTestDB(t *testing.T) *TestDB {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping integration test in short mode (requires Docker)")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	sharedTestDBOnce.Do(func() {
		sharedTestDB, sharedTestDBErr = setupTestDB()
	})

	if sharedTestDBErr != nil {
		t.Fatalf("Failed to setup test database: %v", sharedTestDBErr)
	}

	if err := ResetSupplyChain(context.Background(), sharedTestDB.DB); err != nil {
		t.Fatalf("Failed to reset test database: %v", err)
	}

	return sharedTestDB
}

// Exec runs fixture statements and fails the test on the first error.
func (tdb *TestDB) Exec(t *testing.T, stmts ...string) {
	t.Helper()
	for _, stmt := range stmts {
		if _, err := tdb.DB.Exec(stmt); err != nil {
			t.Fatalf("fixture %q failed: %v", stmt, err)
		}
	}
}

func setupTestDB() (*TestDB, error) {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        MySQLImage,
		ExposedPorts: []string{"3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": "test_password",
			"MYSQL_DATABASE":      "supply_chain",
		},
		WaitingFor: wait.ForLog("port: 3306  MySQL Community Server").
			WithStartupTimeout(120 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start test container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get container host: %w", err)
	}

	port, err := container.MappedPort(ctx, "3306")
	if err != nil {
		return nil, fmt.Errorf("failed to get container port: %w", err)
	}

	dsn := fmt.Sprintf("root:test_password@tcp(%s:%s)/supply_chain", host, port.Port())

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Verify connection with retry
	for i := 0; i < 20; i++ {
		if err = db.PingContext(ctx); err == nil {
			break
		}
		time.Sleep(500 * time.Millisecond)
	}
	if err != nil {
		return nil, fmt.Errorf("database not reachable: %w", err)
	}

	if err := AutoMigrateSupplyChain(ctx, db); err != nil {
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &TestDB{
		Container: container,
		DB:        db,
		DSN:       dsn,
	}, nil
}
