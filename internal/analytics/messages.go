package analytics

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrMessageNotFound is returned when deleting an unknown message.
var ErrMessageNotFound = errors.New("message not found")

// Message is a stored contact form submission.
type Message struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Body      string    `json:"message"`
	HashedIP  string    `json:"hashed_ip,omitempty"`
	Delivered bool      `json:"delivered"`
	CreatedAt time.Time `json:"created_at"`
}

// SaveMessage stores a submission and returns its id.
func (s *Store) SaveMessage(ctx context.Context, name, email, body, ip string) (string, error) {
	id := uuid.NewString()
	hashed := ""
	if ip != "" {
		hashed = s.HashIP(ip)
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO contact_messages (id, name, email, message, hashed_ip, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		id, name, email, body, hashed, s.now().Unix())
	if err != nil {
		return "", fmt.Errorf("save message: %w", err)
	}
	return id, nil
}

// MarkDelivered flags a message as sent by mail.
func (s *Store) MarkDelivered(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `UPDATE contact_messages SET delivered = 1 WHERE id = ?`, id); err != nil {
		return fmt.Errorf("mark delivered: %w", err)
	}
	return nil
}

// Messages returns the newest submissions, at most limit.
func (s *Store) Messages(ctx context.Context, limit int) ([]Message, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, email, message, COALESCE(hashed_ip, ''), delivered, created_at
		FROM contact_messages
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query messages: %w", err)
	}
	defer rows.Close()

	var out []Message
	for rows.Next() {
		var (
			m  Message
			ts int64
		)
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Body, &m.HashedIP, &m.Delivered, &ts); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		m.CreatedAt = time.Unix(ts, 0).UTC()
		out = append(out, m)
	}
	return out, rows.Err()
}

// DeleteMessage removes a submission.
func (s *Store) DeleteMessage(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM contact_messages WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete message: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete message: %w", err)
	}
	if n == 0 {
		return ErrMessageNotFound
	}
	return nil
}

func countRows(ctx context.Context, db *sql.DB, query string, args ...any) (int64, error) {
	var n int64
	if err := db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
