package service

import (
	"context"
	"strings"

	"github.com/rodastrial/sitedesk/internal/models"
)

// ContentRepository defines the persistence operations needed by ContentService.
type ContentRepository interface {
	// GetAllContent returns all content entries keyed by content key.
	GetAllContent(ctx context.Context) (map[string]string, error)
	// UpsertContent inserts or overwrites the value stored under key.
	UpsertContent(ctx context.Context, key, value string) error
}

// Authorizer decides whether a session may run admin-only operations.
type Authorizer interface {
	RequireAdmin(sess Session) error
}

// ContentService reads and edits the site content.
type ContentService struct {
	repo ContentRepository
	auth Authorizer
}

// NewContentService constructs a ContentService.
func NewContentService(repo ContentRepository, auth Authorizer) *ContentService {
	return &ContentService{repo: repo, auth: auth}
}

// GetContent returns every content entry. No privilege is required.
func (s *ContentService) GetContent(ctx context.Context) (map[string]string, error) {
	content, err := s.repo.GetAllContent(ctx)
	if err != nil {
		return nil, storeErr("get content", err)
	}
	return content, nil
}

// SetSiteTitle stores the trimmed candidate as the site title. candidate is
// the raw decoded request value and must be a string with visible text.
func (s *ContentService) SetSiteTitle(ctx context.Context, sess Session, candidate any) error {
	if err := s.auth.RequireAdmin(sess); err != nil {
		return err
	}

	title, ok := candidate.(string)
	if !ok {
		return ErrInvalidSiteTitle
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return ErrInvalidSiteTitle
	}

	if err := s.repo.UpsertContent(ctx, models.SiteTitleKey, title); err != nil {
		return storeErr("set site title", err)
	}
	return nil
}
