package db

import (
	"fmt"
	"strings"

	"github.com/glebarez/sqlite"
	"github.com/jackc/pgx/v5"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	log "github.com/sirupsen/logrus"
)

// DefaultSQLiteDSN is the local database used when no DSN is configured.
const DefaultSQLiteDSN = "file:autocrud.db"

// Open connects to the database selected by the DSN. Postgres DSNs are
// validated with pgx before handing them to the driver; everything else is
// treated as a SQLite path.
func Open(dsn string) (*gorm.DB, error) {
	dsn = strings.TrimSpace(dsn)
	if dsn == "" {
		return nil, fmt.Errorf("db: empty dsn")
	}

	if isPostgresDSN(dsn) {
		pgCfg, errParse := pgx.ParseConfig(dsn)
		if errParse != nil {
			return nil, fmt.Errorf("db: parse postgres dsn: %w", errParse)
		}
		log.Infof("connecting to %s host=%s database=%s", DialectPostgres, pgCfg.Host, pgCfg.Database)
		conn, errOpen := gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if errOpen != nil {
			return nil, fmt.Errorf("db: open postgres: %w", errOpen)
		}
		return conn, nil
	}

	conn, errOpen := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if errOpen != nil {
		return nil, fmt.Errorf("db: open sqlite: %w", errOpen)
	}
	return conn, nil
}

// isPostgresDSN reports whether the DSN targets PostgreSQL.
func isPostgresDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") ||
		strings.HasPrefix(dsn, "postgresql://") ||
		strings.Contains(dsn, "host=")
}

// Migrate creates or updates tables for every discovered model.
func Migrate(conn *gorm.DB, models []any) error {
	if conn == nil {
		return fmt.Errorf("db: nil connection")
	}
	if len(models) == 0 {
		return nil
	}
	if errMigrate := conn.AutoMigrate(models...); errMigrate != nil {
		return fmt.Errorf("db: migrate: %w", errMigrate)
	}
	return nil
}
