package internal

import (
	"database/sql"
	"encoding/json"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// StartSnapshotWriter persists periodic stats snapshots to the configured
// sqlite database until done is closed, then writes one final snapshot.
// Intended to run on its own goroutine; a database failure disables the
// journal but never the splitter itself.
func (a *App) StartSnapshotWriter(done <-chan struct{}) {
	db, err := sql.Open("sqlite3", a.Config.StatsDbPath)
	if err != nil {
		a.Log.WithError(err).Error("could not open stats database")
		return
	}
	defer db.Close()

	if err := initStatsTable(db); err != nil {
		a.Log.WithError(err).Error("could not create stats table")
		return
	}

	ticker := time.NewTicker(a.Config.SnapshotInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := writeSnapshot(db, a.SnapshotStats()); err != nil {
				a.Log.WithError(err).Warn("could not write stats snapshot")
			}
		case <-done:
			if err := writeSnapshot(db, a.SnapshotStats()); err != nil {
				a.Log.WithError(err).Warn("could not write final stats snapshot")
			}
			return
		}
	}
}

func initStatsTable(db *sql.DB) error {
	table := `
	CREATE TABLE IF NOT EXISTS stats_snapshots (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		snapshot_time DATETIME,
		stats_data TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);`

	_, err := db.Exec(table)
	return err
}

func writeSnapshot(db *sql.DB, snapshot *StatsSnapshot) error {
	snapshotJSON, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}

	_, err = db.Exec(
		"INSERT INTO stats_snapshots (snapshot_time, stats_data) VALUES (?, ?)",
		snapshot.Timestamp,
		string(snapshotJSON),
	)
	return err
}
