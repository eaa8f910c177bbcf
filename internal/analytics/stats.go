package analytics

import (
	"context"
	"fmt"
	"time"
)

// PathStat is a page and its view count.
type PathStat struct {
	Path  string `json:"path"`
	Views int64  `json:"views"`
}

// Stats summarises traffic and contact activity for the admin dashboard.
type Stats struct {
	TotalVisits    int64      `json:"total_visits"`
	UniqueVisitors int64      `json:"unique_visitors"`
	VisitsToday    int64      `json:"visits_today"`
	VisitsThisWeek int64      `json:"visits_this_week"`
	TopPaths       []PathStat `json:"top_paths"`
	RecentVisits   []Visit    `json:"recent_visits"`
	TotalMessages  int64      `json:"total_messages"`
	RecentMessages []Message  `json:"recent_messages"`
}

// Stats computes dashboard statistics. "Today" starts at UTC midnight.
func (s *Store) Stats(ctx context.Context) (*Stats, error) {
	now := s.now().UTC()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	weekAgo := now.Add(-7 * 24 * time.Hour)

	st := &Stats{}
	counts := []struct {
		dst   *int64
		query string
		args  []any
	}{
		{&st.TotalVisits, `SELECT COUNT(*) FROM visitors`, nil},
		{&st.UniqueVisitors, `SELECT COUNT(DISTINCT hashed_ip) FROM visitors`, nil},
		{&st.VisitsToday, `SELECT COUNT(*) FROM visitors WHERE created_at >= ?`, []any{midnight.Unix()}},
		{&st.VisitsThisWeek, `SELECT COUNT(*) FROM visitors WHERE created_at >= ?`, []any{weekAgo.Unix()}},
		{&st.TotalMessages, `SELECT COUNT(*) FROM contact_messages`, nil},
	}
	for _, c := range counts {
		n, err := countRows(ctx, s.db, c.query, c.args...)
		if err != nil {
			return nil, fmt.Errorf("stats: %w", err)
		}
		*c.dst = n
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT path, COUNT(*) AS views
		FROM visitors
		GROUP BY path
		ORDER BY views DESC, path ASC
		LIMIT 10`)
	if err != nil {
		return nil, fmt.Errorf("stats top paths: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var p PathStat
		if err := rows.Scan(&p.Path, &p.Views); err != nil {
			return nil, fmt.Errorf("scan path stat: %w", err)
		}
		st.TopPaths = append(st.TopPaths, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	// Release the single connection before the follow-up queries.
	rows.Close()

	if st.RecentVisits, err = s.RecentVisits(ctx, 50); err != nil {
		return nil, err
	}
	if st.RecentMessages, err = s.Messages(ctx, 10); err != nil {
		return nil, err
	}
	return st, nil
}
