// Package analytics records privacy-conscious page visits and contact
// messages in SQLite.
package analytics

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Retention is how long visit rows are kept.
const Retention = 365 * 24 * time.Hour

const schema = `
CREATE TABLE IF NOT EXISTS visitors (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	hashed_ip  TEXT NOT NULL,
	user_agent TEXT,
	path       TEXT,
	created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_visitors_created ON visitors(created_at);

CREATE TABLE IF NOT EXISTS contact_messages (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	email      TEXT NOT NULL,
	message    TEXT NOT NULL,
	hashed_ip  TEXT,
	delivered  INTEGER NOT NULL DEFAULT 0,
	created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_messages_created ON contact_messages(created_at);
`

// Store wraps the analytics database.
type Store struct {
	db   *sql.DB
	salt string
	now  func() time.Time
}

// Open opens (creating if needed) the database at path and applies the
// schema. Use ":memory:" for tests.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open analytics db: %w", err)
	}
	// A single connection keeps :memory: databases shared and serialises
	// writers.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`PRAGMA journal_mode=WAL; PRAGMA busy_timeout=5000;`); err != nil {
		db.Close()
		return nil, fmt.Errorf("configure analytics db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate analytics db: %w", err)
	}
	return &Store{db: db, salt: randomHex(32), now: time.Now}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping checks the database connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// HashIP returns a salted, truncated hash of ip. The salt lives only in
// memory, so hashes are stable for the life of the process and cannot be
// reversed afterwards.
func (s *Store) HashIP(ip string) string {
	sum := sha256.Sum256([]byte(ip + s.salt))
	return hex.EncodeToString(sum[:])[:16]
}

func randomHex(n int) string {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		panic(fmt.Sprintf("crypto/rand: %v", err))
	}
	return hex.EncodeToString(b)
}
