package http

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/rodastrial/sitedesk/internal/service"
)

// AuthService defines the session authentication operations required by AdminHandler.
type AuthService interface {
	// Login marks sess as admin when username and password match.
	Login(sess service.Session, username, password string) error
	// Logout destroys sess.
	Logout(sess service.Session)
}

// AdminHandler serves the admin login, logout and message listing endpoints.
type AdminHandler struct {
	AuthService    AuthService
	ContactService ContactService
	Logger         *zap.Logger
}

// Login handles POST /api/admin/login with username and password fields.
// The session travels only in the cookie; the body is just {"ok": true}.
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	fields, err := bind(r)
	if err != nil {
		writeErrorMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.AuthService.Login(sessionFrom(r), stringField(fields, "username"), stringField(fields, "password")); err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) && h.Logger != nil {
			h.Logger.Warn("admin login rejected", zap.String("remote", r.RemoteAddr))
		}
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, okResponse)
}

// Logout handles POST /api/admin/logout. It succeeds with or without a session.
func (h *AdminHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.AuthService.Logout(sessionFrom(r))
	writeJSON(w, http.StatusOK, okResponse)
}

// Messages handles GET /api/admin/messages and writes the newest messages as a JSON array.
func (h *AdminHandler) Messages(w http.ResponseWriter, r *http.Request) {
	msgs, err := h.ContactService.ListMessages(r.Context(), sessionFrom(r))
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, msgs)
}
