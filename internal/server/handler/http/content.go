package http

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/rodastrial/sitedesk/internal/models"
	"github.com/rodastrial/sitedesk/internal/service"
)

// ContentService defines the content operations required by ContentHandler.
type ContentService interface {
	// GetContent returns every content entry keyed by content key.
	GetContent(ctx context.Context) (map[string]string, error)
	// SetSiteTitle stores a new site title on behalf of an admin session.
	SetSiteTitle(ctx context.Context, sess service.Session, candidate any) error
}

// ContentHandler serves the site content API.
type ContentHandler struct {
	ContentService ContentService
	Logger         *zap.Logger
}

// Get handles GET /api/content and writes the content as a JSON object.
func (h *ContentHandler) Get(w http.ResponseWriter, r *http.Request) {
	content, err := h.ContentService.GetContent(r.Context())
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, content)
}

// Update handles POST /api/content with a {"site_title": "..."} body.
func (h *ContentHandler) Update(w http.ResponseWriter, r *http.Request) {
	fields, err := bind(r)
	if err != nil {
		writeErrorMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.ContentService.SetSiteTitle(r.Context(), sessionFrom(r), fields[models.SiteTitleKey]); err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, okResponse)
}
