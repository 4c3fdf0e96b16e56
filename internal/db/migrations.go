package db

import (
	"database/sql"
	"fmt"
	"strings"

	migrate "github.com/rubenv/sql-migrate"

	"github.com/aegis-protocol/aegis-indexer/internal/logger"
)

const (
	upDownSeparator = "-- +migrate Up"
	downMarker      = "-- +migrate Down"
)

// Migration is one embedded schema migration. The SQL body carries the Down
// section first, then the Up section after the "-- +migrate Up" separator.
type Migration struct {
	ID  string
	SQL string
}

// RunMigrations applies all pending migrations to the database, in order.
func RunMigrations(log *logger.Logger, database *sql.DB, migrations []Migration) error {
	source := &migrate.MemoryMigrationSource{}

	for _, m := range migrations {
		down, up, found := strings.Cut(m.SQL, upDownSeparator)
		if !found {
			return fmt.Errorf("migration %s missing %q separator", m.ID, upDownSeparator)
		}

		if idx := strings.Index(down, downMarker); idx != -1 {
			down = down[idx+len(downMarker):]
		}

		source.Migrations = append(source.Migrations, &migrate.Migration{
			Id:   m.ID,
			Up:   []string{strings.TrimSpace(up)},
			Down: []string{strings.TrimSpace(down)},
		})
	}

	applied, err := migrate.Exec(database, "sqlite3", source, migrate.Up)
	if err != nil {
		return fmt.Errorf("error executing migrations: %w", err)
	}

	log.Infof("successfully ran %d of %d migrations", applied, len(source.Migrations))

	return nil
}
