package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/rodastrial/sitedesk/internal/middleware"
	"github.com/rodastrial/sitedesk/internal/session"
)

// StaticDirs names the directories served next to the API. Empty entries are not mounted.
type StaticDirs struct {
	// Public is served at "/".
	Public string
	// Admin is served at "/admin/".
	Admin string
}

// NewRouter constructs and returns an HTTP handler that serves the site
// API and static files.
//
// Routes:
//
//	GET  /api/content        → contentHandler.Get
//	POST /api/content        → contentHandler.Update   (admin)
//	POST /api/contact        → contactHandler.Submit
//	GET  /api/admin/messages → adminHandler.Messages   (admin)
//	POST /api/admin/login    → adminHandler.Login
//	POST /api/admin/logout   → adminHandler.Logout
//	GET  /admin/*            → static.Admin
//	GET  /*                  → static.Public
//
// Middleware chain (applied in order):
//  1. WithRequestLogging(logger) - logs incoming requests
//  2. Recoverer                  - turns panics into 500
//  3. Sessions(sessions)         - resolves the session cookie
//  4. RequireAdmin (admin routes) - rejects unprivileged sessions
//
// Under /api, unknown paths and methods answer with a JSON {"error": ...} body.
func NewRouter(
	contentHandler *ContentHandler,
	contactHandler *ContactHandler,
	adminHandler *AdminHandler,
	sessions *session.Manager,
	static StaticDirs,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.WithRequestLogging(logger))
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.Sessions(sessions))

	r.Route("/api", func(r chi.Router) {
		// Public endpoints
		r.Get("/content", contentHandler.Get)
		r.Post("/contact", contactHandler.Submit)
		r.Post("/admin/login", adminHandler.Login)
		r.Post("/admin/logout", adminHandler.Logout)

		// Protected group: requires an admin session
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin)
			r.Post("/content", contentHandler.Update)
			r.Get("/admin/messages", adminHandler.Messages)
		})

		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			writeErrorMessage(w, http.StatusNotFound, "not found")
		})
		r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
			writeErrorMessage(w, http.StatusMethodNotAllowed, "method not allowed")
		})
	})

	if static.Admin != "" {
		r.Get("/admin", func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, "/admin/", http.StatusMovedPermanently)
		})
		r.Handle("/admin/*", http.StripPrefix("/admin", http.FileServer(http.Dir(static.Admin))))
	}
	if static.Public != "" {
		r.Handle("/*", http.FileServer(http.Dir(static.Public)))
	}

	return r
}
