// Package config reads the OpenDDL CLI driver's runtime configuration
// from the environment, mirroring the teacher's env-var-with-defaults
// style (dsl-ob-poc/internal/config.GetDataStoreConfig).
package config

import (
	"os"
	"strconv"
	"strings"
)

// StoreType selects which diagnostics-store backend internal/ddlstore
// should use.
type StoreType int

const (
	// MockStore keeps parse-session diagnostics in memory; used by
	// default and by tests.
	MockStore StoreType = iota
	// PostgreSQLStore persists parse-session diagnostics to Postgres.
	PostgreSQLStore
)

// Config is the OpenDDL CLI driver's runtime configuration.
type Config struct {
	Store            StoreType
	ConnectionString string
	// MaxDepth bounds parser nesting (design note §9); wired to
	// ddl.Parser.SetMaxDepth by the CLI driver.
	MaxDepth int
}

// Load returns the configuration based on environment variables.
func Load() Config {
	cfg := Config{
		Store:    resolveStoreType(),
		MaxDepth: resolveMaxDepth(),
	}
	if cfg.Store == PostgreSQLStore {
		cfg.ConnectionString = getConnectionString()
	}
	return cfg
}

func resolveStoreType() StoreType {
	storeType := os.Getenv("OPENDDL_STORE_TYPE")
	switch strings.ToLower(storeType) {
	case "postgresql", "postgres", "db":
		return PostgreSQLStore
	default:
		// Default to the in-memory mock store: persisting diagnostics
		// is an optional, opt-in feature of the CLI driver.
		return MockStore
	}
}

func getConnectionString() string {
	connStr := os.Getenv("OPENDDL_DB_CONN_STRING")
	if connStr == "" {
		return "postgres://localhost:5432/postgres?sslmode=disable"
	}
	return connStr
}

func resolveMaxDepth() int {
	raw := os.Getenv("OPENDDL_MAX_DEPTH")
	if raw == "" {
		return 256
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 256
	}
	return n
}

// IsMockMode reports whether the store is running against the
// in-memory mock backend.
func IsMockMode() bool {
	return resolveStoreType() == MockStore
}
