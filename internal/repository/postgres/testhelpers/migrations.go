package testhelpers

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ApplyMigrations applies every .up.sql file of migrationsPath in name order.
func ApplyMigrations(db *sql.DB, migrationsPath string) error {
	return runMigrations(db, migrationsPath, ".up.sql", false)
}

// RevertMigrations applies every .down.sql file in reverse name order.
func RevertMigrations(db *sql.DB, migrationsPath string) error {
	return runMigrations(db, migrationsPath, ".down.sql", true)
}

func runMigrations(db *sql.DB, migrationsPath, suffix string, reverse bool) error {
	files, err := os.ReadDir(migrationsPath)
	if err != nil {
		return fmt.Errorf("read migrations dir: %w", err)
	}

	var selected []string
	for _, f := range files {
		if strings.HasSuffix(f.Name(), suffix) {
			selected = append(selected, f.Name())
		}
	}
	sort.Strings(selected)
	if reverse {
		sort.Sort(sort.Reverse(sort.StringSlice(selected)))
	}

	for _, file := range selected {
		content, err := os.ReadFile(filepath.Join(migrationsPath, file))
		if err != nil {
			return fmt.Errorf("read migration %s: %w", file, err)
		}

		if _, err := db.Exec(string(content)); err != nil {
			return fmt.Errorf("apply migration %s: %w", file, err)
		}
	}

	return nil
}
