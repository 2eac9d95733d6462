package db

import (
	"fmt"
	"io/fs"
	"regexp"
	"slices"
	"strconv"
	"strings"

	schema "github.com/terraincognita07/fitlife/migrations"
	"gorm.io/gorm"
)

var migrationFilePattern = regexp.MustCompile(`^(\d+)_[a-z0-9_]+\.sql$`)

const createMigrationLedgerSQL = `CREATE TABLE IF NOT EXISTS schema_migrations (
  version INTEGER PRIMARY KEY,
  name TEXT NOT NULL,
  applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

type migrationFile struct {
	Version    int
	Name       string
	Statements []string
}

// applyEmbeddedMigrations runs every embedded file whose version is missing
// from schema_migrations, each inside its own transaction.
func applyEmbeddedMigrations(database *gorm.DB) error {
	if err := database.Exec(createMigrationLedgerSQL).Error; err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}

	files, err := loadMigrationFiles(schema.Files)
	if err != nil {
		return err
	}

	var applied []int
	if err := database.Raw(`SELECT version FROM schema_migrations`).Scan(&applied).Error; err != nil {
		return fmt.Errorf("read schema_migrations: %w", err)
	}

	for _, file := range files {
		if slices.Contains(applied, file.Version) {
			continue
		}
		if err := database.Transaction(func(tx *gorm.DB) error {
			for _, statement := range file.Statements {
				if err := tx.Exec(statement).Error; err != nil {
					return fmt.Errorf("%s: %w", file.Name, err)
				}
			}
			return tx.Exec(`INSERT INTO schema_migrations(version, name) VALUES (?, ?)`, file.Version, file.Name).Error
		}); err != nil {
			return fmt.Errorf("apply migration: %w", err)
		}
	}
	return nil
}

// loadMigrationFiles returns the migration files ordered by numeric version.
// Other files are ignored; a repeated version or an empty file is an error.
func loadMigrationFiles(files fs.FS) ([]migrationFile, error) {
	entries, err := fs.ReadDir(files, ".")
	if err != nil {
		return nil, fmt.Errorf("list migrations: %w", err)
	}

	migrations := make([]migrationFile, 0, len(entries))
	seen := make(map[int]string, len(entries))
	for _, entry := range entries {
		matches := migrationFilePattern.FindStringSubmatch(entry.Name())
		if entry.IsDir() || matches == nil {
			continue
		}

		version, err := strconv.Atoi(matches[1])
		if err != nil {
			return nil, fmt.Errorf("migration version %s: %w", entry.Name(), err)
		}
		if previous, ok := seen[version]; ok {
			return nil, fmt.Errorf("migrations %s and %s share version %d", previous, entry.Name(), version)
		}
		seen[version] = entry.Name()

		body, err := fs.ReadFile(files, entry.Name())
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", entry.Name(), err)
		}
		statements := splitStatements(string(body))
		if len(statements) == 0 {
			return nil, fmt.Errorf("migration %s has no statements", entry.Name())
		}
		migrations = append(migrations, migrationFile{Version: version, Name: entry.Name(), Statements: statements})
	}

	slices.SortFunc(migrations, func(a, b migrationFile) int {
		return a.Version - b.Version
	})
	return migrations, nil
}

func splitStatements(body string) []string {
	var statements []string
	for _, part := range strings.Split(body, ";") {
		if statement := strings.TrimSpace(part); statement != "" {
			statements = append(statements, statement)
		}
	}
	return statements
}
