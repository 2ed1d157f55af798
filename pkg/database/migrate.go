package database

import (
	"database/sql"
	"fmt"
	"io/fs"
	"sort"

	"frameworks/api_detector/pkg/logging"
)

// RunMigrations applies every .sql file under dir in the given filesystem,
// in lexical order. Statements must be idempotent (CREATE TABLE IF NOT
// EXISTS and friends); there is no version table.
func RunMigrations(db *sql.DB, fsys fs.FS, dir string, logger logging.Logger) error {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return fmt.Errorf("read migrations dir: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	for _, name := range names {
		content, err := fs.ReadFile(fsys, dir+"/"+name)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", name, err)
		}
		if _, err := db.Exec(string(content)); err != nil {
			return fmt.Errorf("apply migration %s: %w", name, err)
		}
		logger.WithField("migration", name).Debug("Applied migration")
	}

	return nil
}
