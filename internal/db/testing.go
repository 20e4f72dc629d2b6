package db

import (
	"context"
	"fmt"
	"os"
	"registrar/migrations"
	"testing"

	"github.com/jackc/pgx/v4/pgxpool"
)

const TEST_POSTGRESQL_URL_ENV = "TEST_POSTGRESQL_URL"

// SkipWithoutDatabase skips repository tests when no test database is configured.
func SkipWithoutDatabase(t *testing.T) {
	if os.Getenv(TEST_POSTGRESQL_URL_ENV) == "" {
		t.Skipf("%s is not set", TEST_POSTGRESQL_URL_ENV)
	}
}

func CreateTestPool() *pgxpool.Pool {
	connString := os.Getenv(TEST_POSTGRESQL_URL_ENV)
	if connString == "" {
		panic("TEST_POSTGRESQL_URL must be set.")
	}
	if err := migrations.Up(connString); err != nil {
		panic(fmt.Sprintf("Could not apply DB migrations %v.", err))
	}

	ctx := context.Background()
	pool, err := pgxpool.Connect(ctx, connString)
	if err != nil {
		panic("Could not connect to the database.")
	}

	return pool
}

func TruncateTables(pool *pgxpool.Pool) {
	_, err := pool.Exec(context.Background(), "TRUNCATE \"user\" CASCADE")
	if err != nil {
		panic("Could not truncate DB tables.")
	}
}
