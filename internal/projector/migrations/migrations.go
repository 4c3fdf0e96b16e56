package migrations

import (
	"database/sql"
	_ "embed"

	"github.com/aegis-protocol/aegis-indexer/internal/db"
	"github.com/aegis-protocol/aegis-indexer/internal/logger"
)

//go:embed 001_initial.sql
var mig0001 string

// RunMigrations applies the projection schema to the given database.
func RunMigrations(log *logger.Logger, database *sql.DB) error {
	migrations := []db.Migration{
		{
			ID:  "001_initial.sql",
			SQL: mig0001,
		},
	}

	return db.RunMigrations(log, database, migrations)
}
