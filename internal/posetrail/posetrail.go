// Package posetrail is an optional SQLite sink for recorded tracker
// pose trails, kept alongside the plain-text trail writer in
// internal/dataset for callers that want to query trails with SQL
// instead of re-parsing flat files.
package posetrail

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "modernc.org/sqlite"

	"github.com/banshee-data/evtrack.report/internal/dataset"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// DB wraps a SQLite connection holding a single pose_trail table.
type DB struct {
	*sql.DB
}

// Open creates or opens a pose-trail database at path and migrates its
// schema to the latest version.
func Open(path string) (*DB, error) {
	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("posetrail: open %s: %w", path, err)
	}
	if _, err := sqlDB.Exec("PRAGMA journal_mode = WAL; PRAGMA busy_timeout = 5000;"); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("posetrail: apply pragmas: %w", err)
	}

	db := &DB{sqlDB}
	if err := db.migrateUp(); err != nil {
		sqlDB.Close()
		return nil, err
	}
	return db, nil
}

func (db *DB) migrateUp() error {
	m, err := db.newMigrate()
	if err != nil {
		return err
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("posetrail: migrate up: %w", err)
	}
	return nil
}

func (db *DB) newMigrate() (*migrate.Migrate, error) {
	sub, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("posetrail: iofs source: %w", err)
	}
	driver, err := sqlite.WithInstance(db.DB, &sqlite.Config{})
	if err != nil {
		return nil, fmt.Errorf("posetrail: sqlite driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", sub, "sqlite", driver)
	if err != nil {
		return nil, fmt.Errorf("posetrail: migrate instance: %w", err)
	}
	m.Log = &migrateLogger{}
	return m, nil
}

type migrateLogger struct{}

func (l *migrateLogger) Printf(format string, v ...interface{}) { log.Printf("[posetrail] "+format, v...) }
func (l *migrateLogger) Verbose() bool                          { return false }

// InsertRecords appends recorded poses in a single transaction.
func (db *DB) InsertRecords(records []dataset.PoseRecord) error {
	if len(records) == 0 {
		return nil
	}
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("posetrail: begin: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO pose_trail (seed_id, t, x, y, theta) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("posetrail: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		if _, err := stmt.Exec(r.ID, r.T, r.X, r.Y, r.Theta); err != nil {
			return fmt.Errorf("posetrail: insert record for seed %s: %w", r.ID, err)
		}
	}
	return tx.Commit()
}

// TrailForSeed returns every recorded pose for a given seed ID, ordered
// by time.
func (db *DB) TrailForSeed(seedID string) ([]dataset.PoseRecord, error) {
	rows, err := db.Query(`SELECT seed_id, t, x, y, theta FROM pose_trail WHERE seed_id = ? ORDER BY t ASC`, seedID)
	if err != nil {
		return nil, fmt.Errorf("posetrail: query seed %s: %w", seedID, err)
	}
	defer rows.Close()

	var records []dataset.PoseRecord
	for rows.Next() {
		var r dataset.PoseRecord
		if err := rows.Scan(&r.ID, &r.T, &r.X, &r.Y, &r.Theta); err != nil {
			return nil, fmt.Errorf("posetrail: scan: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
