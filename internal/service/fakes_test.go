package service

import (
	"context"
	"errors"

	"github.com/rodastrial/sitedesk/internal/models"
)

type fakeSession struct {
	admin     bool
	markErr   error
	marked    int
	destroyed bool
}

func (f *fakeSession) IsAdmin() bool { return f.admin }

func (f *fakeSession) MarkAdmin() error {
	if f.markErr != nil {
		return f.markErr
	}
	f.marked++
	f.admin = true
	return nil
}

func (f *fakeSession) Destroy() {
	f.destroyed = true
	f.admin = false
}

type mockContentRepo struct {
	GetAllContentFunc func(ctx context.Context) (map[string]string, error)
	UpsertContentFunc func(ctx context.Context, key, value string) error
}

func (m *mockContentRepo) GetAllContent(ctx context.Context) (map[string]string, error) {
	return m.GetAllContentFunc(ctx)
}

func (m *mockContentRepo) UpsertContent(ctx context.Context, key, value string) error {
	if m.UpsertContentFunc == nil {
		return errors.New("unexpected UpsertContent call")
	}
	return m.UpsertContentFunc(ctx, key, value)
}

type mockContactRepo struct {
	InsertMessageFunc      func(ctx context.Context, name, email, message, createdAt string) (int64, error)
	ListRecentMessagesFunc func(ctx context.Context, limit int) ([]models.ContactMessage, error)
}

func (m *mockContactRepo) InsertMessage(ctx context.Context, name, email, message, createdAt string) (int64, error) {
	if m.InsertMessageFunc == nil {
		return 0, errors.New("unexpected InsertMessage call")
	}
	return m.InsertMessageFunc(ctx, name, email, message, createdAt)
}

func (m *mockContactRepo) ListRecentMessages(ctx context.Context, limit int) ([]models.ContactMessage, error) {
	if m.ListRecentMessagesFunc == nil {
		return nil, errors.New("unexpected ListRecentMessages call")
	}
	return m.ListRecentMessagesFunc(ctx, limit)
}
