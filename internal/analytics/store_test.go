package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, now time.Time) (*Store, *time.Time) {
	t.Helper()
	s, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	clock := now
	s.now = func() time.Time { return clock }
	return s, &clock
}

func TestHashIP(t *testing.T) {
	s, _ := newTestStore(t, time.Now())

	h := s.HashIP("203.0.113.7")
	assert.Len(t, h, 16)
	assert.Equal(t, h, s.HashIP("203.0.113.7"))
	assert.NotEqual(t, h, s.HashIP("203.0.113.8"))
	assert.NotContains(t, h, "203")
}

func TestShouldTrack(t *testing.T) {
	assert.True(t, ShouldTrack("/", ""))
	assert.True(t, ShouldTrack("/blog/hello", "0"))
	assert.False(t, ShouldTrack("/blog/hello", "1"))
	assert.False(t, ShouldTrack("/static/css/site.css", ""))
	assert.False(t, ShouldTrack("/admin/dashboard", ""))
	assert.False(t, ShouldTrack("/api/contact", ""))
	assert.False(t, ShouldTrack("/sitemap.xml", ""))
}

func TestRecordVisitAndStats(t *testing.T) {
	now := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)
	s, clock := newTestStore(t, now)
	ctx := context.Background()

	*clock = now.Add(-10 * 24 * time.Hour)
	require.NoError(t, s.RecordVisit(ctx, "1.1.1.1", "ua", "/"))
	*clock = now.Add(-2 * 24 * time.Hour)
	require.NoError(t, s.RecordVisit(ctx, "1.1.1.1", "ua", "/blog"))
	*clock = now.Add(-time.Hour)
	require.NoError(t, s.RecordVisit(ctx, "2.2.2.2", "ua", "/blog"))
	require.NoError(t, s.RecordVisit(ctx, "3.3.3.3", "ua", "/projects"))
	*clock = now

	_, err := s.SaveMessage(ctx, "Jane", "jane@example.com", "Hello there friend", "1.1.1.1")
	require.NoError(t, err)

	st, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(4), st.TotalVisits)
	assert.Equal(t, int64(3), st.UniqueVisitors)
	assert.Equal(t, int64(2), st.VisitsToday)
	assert.Equal(t, int64(3), st.VisitsThisWeek)
	assert.Equal(t, int64(1), st.TotalMessages)
	require.NotEmpty(t, st.TopPaths)
	assert.Equal(t, PathStat{Path: "/blog", Views: 2}, st.TopPaths[0])
	assert.Len(t, st.RecentVisits, 4)
	assert.Equal(t, "/", st.RecentVisits[3].Path)
	require.Len(t, st.RecentMessages, 1)
	assert.Equal(t, "Jane", st.RecentMessages[0].Name)
}

func TestCleanup(t *testing.T) {
	now := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)
	s, clock := newTestStore(t, now)
	ctx := context.Background()

	*clock = now.Add(-Retention - time.Hour)
	require.NoError(t, s.RecordVisit(ctx, "1.1.1.1", "ua", "/old"))
	*clock = now.Add(-time.Hour)
	require.NoError(t, s.RecordVisit(ctx, "1.1.1.1", "ua", "/new"))
	*clock = now

	n, err := s.Cleanup(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	visits, err := s.RecentVisits(ctx, 10)
	require.NoError(t, err)
	require.Len(t, visits, 1)
	assert.Equal(t, "/new", visits[0].Path)
}

func TestMessages(t *testing.T) {
	now := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)
	s, clock := newTestStore(t, now)
	ctx := context.Background()

	first, err := s.SaveMessage(ctx, "A", "a@example.com", "first message", "")
	require.NoError(t, err)
	*clock = now.Add(time.Minute)
	second, err := s.SaveMessage(ctx, "B", "b@example.com", "second message", "9.9.9.9")
	require.NoError(t, err)
	require.NoError(t, s.MarkDelivered(ctx, second))

	msgs, err := s.Messages(ctx, 10)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, second, msgs[0].ID)
	assert.True(t, msgs[0].Delivered)
	assert.NotEmpty(t, msgs[0].HashedIP)
	assert.False(t, msgs[1].Delivered)
	assert.Empty(t, msgs[1].HashedIP)

	require.NoError(t, s.DeleteMessage(ctx, first))
	assert.ErrorIs(t, s.DeleteMessage(ctx, first), ErrMessageNotFound)
}
