package testhelpers

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
)

// LoadFixtures loads SQL fixture files into the database
func LoadFixtures(db *sql.DB, fixturesPath string, files []string) error {
	for _, file := range files {
		path := filepath.Join(fixturesPath, file)
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read fixture %s: %w", file, err)
		}

		if _, err := db.Exec(string(content)); err != nil {
			return fmt.Errorf("load fixture %s: %w", file, err)
		}
	}

	return nil
}

// MarkUserModified flags a facet table row of a place as edited by a user.
func MarkUserModified(db *sql.DB, table string, osmID int64) error {
	query := fmt.Sprintf(
		"UPDATE %s SET user_modified = true WHERE place_id = (SELECT id FROM places WHERE osm_id = $1)",
		table,
	)
	res, err := db.ExecContext(context.Background(), query, osmID)
	if err != nil {
		return fmt.Errorf("mark %s of %d user modified: %w", table, osmID, err)
	}
	if n, _ := res.RowsAffected(); n != 1 {
		return fmt.Errorf("mark %s of %d user modified: %d rows", table, osmID, n)
	}
	return nil
}
