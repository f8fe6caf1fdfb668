package db

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"

	"fittrack-go/pkg/logger"
	"gorm.io/gorm"
)

// Migrate applies every *.sql file in files that is not yet recorded in
// schema_migrations, in lexical order. Each file runs in its own transaction.
func Migrate(db *gorm.DB, files fs.FS, log logger.Logger) error {
	if err := ensureSchemaMigrations(db); err != nil {
		return err
	}

	names, err := fs.Glob(files, "*.sql")
	if err != nil {
		return err
	}
	sort.Strings(names)

	for _, name := range names {
		applied, err := isMigrationApplied(db, name)
		if err != nil {
			return err
		}
		if applied {
			continue
		}

		contents, err := fs.ReadFile(files, name)
		if err != nil {
			return err
		}

		sql := strings.TrimSpace(string(contents))
		err = db.Transaction(func(tx *gorm.DB) error {
			if sql != "" {
				if err := tx.Exec(sql).Error; err != nil {
					return err
				}
			}
			return recordMigration(tx, name)
		})
		if err != nil {
			return fmt.Errorf("apply migration %s: %w", path.Base(name), err)
		}

		log.Info("db: migration applied", "file", name)
	}

	return nil
}

func ensureSchemaMigrations(db *gorm.DB) error {
	return db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			filename TEXT PRIMARY KEY,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
	`).Error
}

func isMigrationApplied(db *gorm.DB, name string) (bool, error) {
	var count int64
	if err := db.Raw("SELECT COUNT(1) FROM schema_migrations WHERE filename = ?", name).Scan(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func recordMigration(db *gorm.DB, name string) error {
	return db.Exec("INSERT INTO schema_migrations (filename, applied_at) VALUES (?, ?)", name, time.Now().UTC()).Error
}
