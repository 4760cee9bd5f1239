// Package http provides the JSON-over-HTTP façade of the site backend:
// content, contact and admin handlers and the router that mounts them
// next to the static site.
package http

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"

	"go.uber.org/zap"

	"github.com/rodastrial/sitedesk/internal/service"
	"github.com/rodastrial/sitedesk/internal/session"
)

const maxBodyBytes = 1 << 20

var errBadBody = errors.New("invalid request body")

// okResponse is the acknowledgement returned by every successful write.
var okResponse = map[string]bool{"ok": true}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErrorMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeError maps a service error onto its status code. Store failures are
// logged and reported without detail.
func writeError(w http.ResponseWriter, log *zap.Logger, err error) {
	var validationErr *service.ValidationError
	var authErr *service.AuthError
	switch {
	case errors.As(err, &validationErr):
		writeErrorMessage(w, http.StatusBadRequest, validationErr.Reason)
	case errors.As(err, &authErr):
		writeErrorMessage(w, http.StatusUnauthorized, authErr.Reason)
	default:
		if log != nil {
			log.Error("request failed", zap.Error(err))
		}
		writeErrorMessage(w, http.StatusInternalServerError, "internal error")
	}
}

// bind reads a JSON object or an urlencoded form into a generic map. An
// empty body or a body of any other media type yields an empty map. A
// request without Content-Type is read as JSON.
func bind(r *http.Request) (map[string]any, error) {
	fields := make(map[string]any)
	if r.Body == nil {
		return fields, nil
	}
	r.Body = http.MaxBytesReader(nil, r.Body, maxBodyBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/x-www-form-urlencoded" {
		if err := r.ParseForm(); err != nil {
			return nil, errBadBody
		}
		for k, v := range r.PostForm {
			if len(v) > 0 {
				fields[k] = v[0]
			}
		}
		return fields, nil
	}
	if mediaType != "" && mediaType != "application/json" {
		return fields, nil
	}

	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		if errors.Is(err, io.EOF) {
			return fields, nil
		}
		return nil, errBadBody
	}
	return fields, nil
}

// stringField returns fields[key] when it is a string and "" otherwise.
func stringField(fields map[string]any, key string) string {
	s, _ := fields[key].(string)
	return s
}

// sessionFrom returns the request session as a service.Session, or a nil
// interface when the Sessions middleware did not run.
func sessionFrom(r *http.Request) service.Session {
	h := session.FromContext(r.Context())
	if h == nil {
		return nil
	}
	return h
}
