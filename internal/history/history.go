// Package history records controller detection events in a local SQLite
// database so past hardware reports can be inspected after the fact.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rmrfslashbin/padbind/pkg/models"
	_ "modernc.org/sqlite" // SQLite driver
)

const schema = `
CREATE TABLE IF NOT EXISTS detections (
	id TEXT PRIMARY KEY,
	raw_id TEXT NOT NULL,
	buttons INTEGER NOT NULL,
	axes INTEGER NOT NULL,
	controller TEXT NOT NULL DEFAULT '',
	profile TEXT NOT NULL DEFAULT '',
	detected_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_detections_controller ON detections(controller);
CREATE INDEX IF NOT EXISTS idx_detections_detected_at ON detections(detected_at);
`

// Open creates and initializes the detection history database, creating
// the directory structure if it doesn't exist.
func Open(dbPath string) (*sql.DB, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return db, nil
}

// Record inserts a detection event. A missing ID or timestamp is filled
// in.
func Record(db *sql.DB, event models.DetectionEvent) (models.DetectionEvent, error) {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	if event.DetectedAt.IsZero() {
		event.DetectedAt = time.Now().UTC()
	}

	_, err := db.Exec(`
		INSERT INTO detections (id, raw_id, buttons, axes, controller, profile, detected_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, event.ID, event.RawID, event.Buttons, event.Axes, event.Controller, event.Profile,
		event.DetectedAt.Unix())
	if err != nil {
		return models.DetectionEvent{}, fmt.Errorf("failed to insert detection: %w", err)
	}
	return event, nil
}

// Recent returns the most recent detection events, newest first.
func Recent(db *sql.DB, limit int) ([]models.DetectionEvent, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := db.Query(`
		SELECT id, raw_id, buttons, axes, controller, profile, detected_at
		FROM detections
		ORDER BY detected_at DESC, id
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query detections: %w", err)
	}
	defer rows.Close()

	var events []models.DetectionEvent
	for rows.Next() {
		var event models.DetectionEvent
		var ts int64
		if err := rows.Scan(&event.ID, &event.RawID, &event.Buttons, &event.Axes,
			&event.Controller, &event.Profile, &ts); err != nil {
			return nil, fmt.Errorf("failed to scan detection: %w", err)
		}
		event.DetectedAt = time.Unix(ts, 0).UTC()
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read detections: %w", err)
	}
	return events, nil
}

// Clear removes all recorded detection events.
func Clear(db *sql.DB) error {
	if _, err := db.Exec("DELETE FROM detections"); err != nil {
		return fmt.Errorf("failed to clear detections: %w", err)
	}
	return nil
}
