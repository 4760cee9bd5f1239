package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rodastrial/sitedesk/internal/models"
)

// ContactRepository persists contact form submissions.
type ContactRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewContactRepository creates a ContactRepository over db.
func NewContactRepository(db *sql.DB) *ContactRepository {
	return &ContactRepository{DB: db}
}

// InsertMessage stores a message and returns the id assigned by the database.
// The caller is responsible for trimming and validating the fields.
func (r *ContactRepository) InsertMessage(ctx context.Context, name, email, message, createdAt string) (int64, error) {
	var id int64
	err := r.DB.QueryRowContext(ctx, `
		INSERT INTO contact_messages (name, email, message, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, name, email, message, createdAt).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("InsertMessage: %w", err)
	}
	return id, nil
}

// ListRecentMessages returns at most limit messages, newest (highest id) first.
// A non-positive limit falls back to models.MaxListedMessages.
func (r *ContactRepository) ListRecentMessages(ctx context.Context, limit int) ([]models.ContactMessage, error) {
	if limit <= 0 || limit > models.MaxListedMessages {
		limit = models.MaxListedMessages
	}

	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, name, email, message, created_at
		FROM contact_messages
		ORDER BY id DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("ListRecentMessages: %w", err)
	}
	defer rows.Close()

	messages := make([]models.ContactMessage, 0)
	for rows.Next() {
		var m models.ContactMessage
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Message, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListRecentMessages: %w", err)
	}
	return messages, nil
}

// CountMessages returns the number of stored messages.
func (r *ContactRepository) CountMessages(ctx context.Context) (int64, error) {
	var n int64
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM contact_messages`).Scan(&n); err != nil {
		return 0, fmt.Errorf("CountMessages: %w", err)
	}
	return n, nil
}
