package analytics

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Visit is a recorded page view.
type Visit struct {
	ID        int64     `json:"id"`
	HashedIP  string    `json:"hashed_ip"`
	UserAgent string    `json:"user_agent"`
	Path      string    `json:"path"`
	Timestamp time.Time `json:"timestamp"`
}

// untrackedPrefixes are never recorded.
var untrackedPrefixes = []string{
	"/static/", "/images/", "/admin", "/api/", "/favicon", "/privacy",
	"/metrics", "/healthz", "/robots.txt", "/sitemap.xml", "/manifest.webmanifest", "/feed.xml",
}

// ShouldTrack reports whether a request for path should be recorded. Do Not
// Track is honoured.
func ShouldTrack(path, dnt string) bool {
	if dnt == "1" {
		return false
	}
	for _, p := range untrackedPrefixes {
		if strings.HasPrefix(path, p) {
			return false
		}
	}
	return true
}

// RecordVisit stores a page view with the client IP hashed.
func (s *Store) RecordVisit(ctx context.Context, ip, userAgent, path string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO visitors (hashed_ip, user_agent, path, created_at) VALUES (?, ?, ?, ?)`,
		s.HashIP(ip), userAgent, path, s.now().Unix())
	if err != nil {
		return fmt.Errorf("record visit: %w", err)
	}
	return nil
}

// RecentVisits returns the newest visits, at most limit.
func (s *Store) RecentVisits(ctx context.Context, limit int) ([]Visit, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, hashed_ip, COALESCE(user_agent, ''), COALESCE(path, ''), created_at
		FROM visitors
		ORDER BY created_at DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query visits: %w", err)
	}
	defer rows.Close()

	var out []Visit
	for rows.Next() {
		var (
			v  Visit
			ts int64
		)
		if err := rows.Scan(&v.ID, &v.HashedIP, &v.UserAgent, &v.Path, &ts); err != nil {
			return nil, fmt.Errorf("scan visit: %w", err)
		}
		v.Timestamp = time.Unix(ts, 0).UTC()
		out = append(out, v)
	}
	return out, rows.Err()
}

// Cleanup deletes visits older than Retention and returns how many rows
// were removed.
func (s *Store) Cleanup(ctx context.Context) (int64, error) {
	cutoff := s.now().Add(-Retention).Unix()
	res, err := s.db.ExecContext(ctx, `DELETE FROM visitors WHERE created_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("cleanup visits: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}
