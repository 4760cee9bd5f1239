// Package repository provides persistence for site content and contact
// messages on top of database/sql. Queries use $N placeholders, which both
// the SQLite and PostgreSQL drivers accept.
package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rodastrial/sitedesk/internal/models"
)

// ContentRepository reads and writes the site_content table.
type ContentRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewContentRepository creates a ContentRepository over db.
func NewContentRepository(db *sql.DB) *ContentRepository {
	return &ContentRepository{DB: db}
}

// GetAllContent returns every content entry as a key to value map.
// An empty table yields an empty, non-nil map.
func (r *ContentRepository) GetAllContent(ctx context.Context) (map[string]string, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT key, value FROM site_content`)
	if err != nil {
		return nil, fmt.Errorf("GetAllContent: %w", err)
	}
	defer rows.Close()

	content := make(map[string]string)
	for rows.Next() {
		var entry models.ContentEntry
		if err := rows.Scan(&entry.Key, &entry.Value); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		content[entry.Key] = entry.Value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("GetAllContent: %w", err)
	}
	return content, nil
}

// UpsertContent stores value under key, overwriting any previous value.
func (r *ContentRepository) UpsertContent(ctx context.Context, key, value string) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO site_content (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("UpsertContent: %w", err)
	}
	return nil
}
