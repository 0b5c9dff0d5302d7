// Package postgres implements the measurement record store on PostgreSQL.
// Records are stored one row per parent/child pair with the record document
// in a jsonb column, preserving the exact read/update contract of the file
// backed store while gaining row-level isolation.
package postgres

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx database/sql driver

	"github.com/JITHIN-Ji/swakarthi-measurement-prediction/internal/config"
	"github.com/JITHIN-Ji/swakarthi-measurement-prediction/internal/infrastructure/monitoring/logging"
	apperrors "github.com/JITHIN-Ji/swakarthi-measurement-prediction/pkg/errors"
)

// Connect opens a pooled connection to PostgreSQL and verifies it with a
// bounded ping.
func Connect(cfg config.PostgresConfig, logger logging.Logger) (*sql.DB, error) {
	db, err := sql.Open("pgx", cfg.DSN())
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeDatabaseError, "failed to open database connection")
	}

	if cfg.MaxConns > 0 {
		db.SetMaxOpenConns(cfg.MaxConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, apperrors.Wrap(err, apperrors.ErrCodeDatabaseError, "database connection failed")
	}

	if logger != nil {
		logger.Info("connected to PostgreSQL",
			logging.String("host", cfg.Host),
			logging.Int("port", cfg.Port),
			logging.String("database", cfg.DBName))
	}
	return db, nil
}
