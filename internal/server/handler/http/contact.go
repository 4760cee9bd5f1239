package http

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/rodastrial/sitedesk/internal/models"
	"github.com/rodastrial/sitedesk/internal/service"
)

// ContactService defines the contact operations required by the handlers.
type ContactService interface {
	// Submit records a visitor message and returns its id.
	Submit(ctx context.Context, name, email, message string) (int64, error)
	// ListMessages returns the newest messages for an admin session.
	ListMessages(ctx context.Context, sess service.Session) ([]models.ContactMessage, error)
}

// ContactHandler accepts contact form submissions.
type ContactHandler struct {
	ContactService ContactService
	Logger         *zap.Logger
}

// Submit handles POST /api/contact with name, email and message fields.
// Fields that are missing or not strings count as empty.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	fields, err := bind(r)
	if err != nil {
		writeErrorMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	id, err := h.ContactService.Submit(r.Context(),
		stringField(fields, "name"),
		stringField(fields, "email"),
		stringField(fields, "message"),
	)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	if h.Logger != nil {
		h.Logger.Info("contact message received", zap.Int64("id", id))
	}
	writeJSON(w, http.StatusOK, okResponse)
}
