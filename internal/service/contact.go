package service

import (
	"context"
	"strings"
	"time"

	"github.com/rodastrial/sitedesk/internal/models"
)

// ContactRepository defines the persistence operations needed by ContactService.
type ContactRepository interface {
	// InsertMessage stores a message and returns its id.
	InsertMessage(ctx context.Context, name, email, message, createdAt string) (int64, error)
	// ListRecentMessages returns up to limit messages, newest first.
	ListRecentMessages(ctx context.Context, limit int) ([]models.ContactMessage, error)
}

// ContactService records contact form submissions and lists them for admins.
type ContactService struct {
	repo ContactRepository
	auth Authorizer
	now  func() time.Time
}

// NewContactService constructs a ContactService stamping messages with the wall clock.
func NewContactService(repo ContactRepository, auth Authorizer) *ContactService {
	return NewContactServiceWithNow(repo, auth, time.Now)
}

// NewContactServiceWithNow is NewContactService with an explicit clock.
func NewContactServiceWithNow(repo ContactRepository, auth Authorizer, now func() time.Time) *ContactService {
	return &ContactService{repo: repo, auth: auth, now: now}
}

// Submit trims the fields and records the message. Any blank field yields
// ErrMissingFields and nothing is stored.
func (s *ContactService) Submit(ctx context.Context, name, email, message string) (int64, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	message = strings.TrimSpace(message)
	if name == "" || email == "" || message == "" {
		return 0, ErrMissingFields
	}

	createdAt := s.now().UTC().Format(models.TimestampLayout)
	id, err := s.repo.InsertMessage(ctx, name, email, message, createdAt)
	if err != nil {
		return 0, storeErr("insert message", err)
	}
	return id, nil
}

// ListMessages returns the most recent messages, newest first, for an admin session.
func (s *ContactService) ListMessages(ctx context.Context, sess Session) ([]models.ContactMessage, error) {
	if err := s.auth.RequireAdmin(sess); err != nil {
		return nil, err
	}

	msgs, err := s.repo.ListRecentMessages(ctx, models.MaxListedMessages)
	if err != nil {
		return nil, storeErr("list messages", err)
	}
	return msgs, nil
}
