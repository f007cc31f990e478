package storage

import (
	"database/sql"
	"log"
	"time"

	// Register sqlite3 driver
	_ "github.com/mattn/go-sqlite3"

	"riskboard/internal/risk"
)

type DB interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	Close() error
}

type Store struct {
	db  DB
	now func() time.Time
}

func OpenSQLite(dsn string) (DB, error) {
	return sql.Open("sqlite3", dsn)
}

func InitSchema(db DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS snapshots(
		received_at INTEGER, last_updated TEXT, total_risk INTEGER, alert TEXT, body TEXT
	)`)
	return err
}

func NewStore(db DB) *Store { return &Store{db: db, now: time.Now} }

// ArchivedSnapshot is one row of the archive.
type ArchivedSnapshot struct {
	ReceivedAt  time.Time `json:"received_at"`
	LastUpdated string    `json:"last_updated"`
	TotalRisk   int       `json:"total_risk"`
	Alert       string    `json:"alert"`
}

func (s *Store) SaveSnapshot(snap *risk.Snapshot) error {
	body, err := snap.Raw()
	if err != nil {
		return err
	}
	total, alert := -1, ""
	if snap.TotalRisk != nil {
		total = snap.TotalRisk.Score()
		alert = risk.AlertLevel(total).Label
	}
	_, err = s.db.Exec(`INSERT INTO snapshots(received_at,last_updated,total_risk,alert,body) VALUES(?,?,?,?,?)`,
		s.now().Unix(), snap.LastUpdated, total, alert, string(body))
	return err
}

// Recent returns up to limit archived snapshots, newest first.
func (s *Store) Recent(limit int) ([]ArchivedSnapshot, error) {
	rows, err := s.db.Query(`SELECT received_at,last_updated,total_risk,alert FROM snapshots ORDER BY received_at DESC, rowid DESC LIMIT ?`,
		limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []ArchivedSnapshot
	for rows.Next() {
		var (
			ts int64
			a  ArchivedSnapshot
		)
		if err := rows.Scan(&ts, &a.LastUpdated, &a.TotalRisk, &a.Alert); err != nil {
			return nil, err
		}
		a.ReceivedAt = time.Unix(ts, 0).UTC()
		out = append(out, a)
	}
	return out, rows.Err()
}

// SnapshotChanged archives every newly rendered snapshot.
func (s *Store) SnapshotChanged(_, cur *risk.Snapshot) {
	if err := s.SaveSnapshot(cur); err != nil {
		log.Printf("db: archive snapshot failed: %v", err)
	}
}
