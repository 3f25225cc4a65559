package sqldb

import "time"

// Supported drivers
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds database connection settings
type Config struct {
	// Driver is either "sqlite" or "postgres"
	Driver string
	// DSN is the driver-specific connection string
	DSN string

	// Pool settings. Ignored for sqlite, which always uses one connection.
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration

	// LogLevel is the application log level; SQL statements are traced at debug
	LogLevel string
}

// DefaultConfig returns an in-memory sqlite database
func DefaultConfig() Config {
	return Config{
		Driver:          DriverSQLite,
		DSN:             "file::memory:",
		MaxOpenConns:    10,
		MaxIdleConns:    5,
		ConnMaxLifetime: 30 * time.Minute,
		LogLevel:        "warn",
	}
}
