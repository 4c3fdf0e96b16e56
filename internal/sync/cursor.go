package sync

import (
	"database/sql"
	"errors"
	"fmt"
)

// loadCursor returns the last fully processed block, or false when the syncer
// has never run against this database.
func loadCursor(database *sql.DB) (uint64, bool, error) {
	var lastBlock uint64

	err := database.QueryRow("SELECT last_block FROM sync_cursor WHERE id = 1").Scan(&lastBlock)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to load sync cursor: %w", err)
	}

	return lastBlock, true, nil
}

// saveCursor persists the last fully processed block.
func saveCursor(database *sql.DB, lastBlock uint64) error {
	_, err := database.Exec(
		"INSERT INTO sync_cursor (id, last_block) VALUES (1, ?) ON CONFLICT(id) DO UPDATE SET last_block = ?",
		lastBlock, lastBlock,
	)
	if err != nil {
		return fmt.Errorf("failed to save sync cursor: %w", err)
	}

	return nil
}
