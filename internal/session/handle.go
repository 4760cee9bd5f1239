package session

import (
	"context"
	"errors"
	"net/http"
)

// DefaultCookieName is the cookie carrying the signed session id.
const DefaultCookieName = "sid"

// CookieOptions control the session cookie attributes.
type CookieOptions struct {
	Name   string
	Path   string
	Secure bool
}

// Manager ties the session Store to the cookie sent to clients.
type Manager struct {
	store  *Store
	codec  *Codec
	cookie CookieOptions
}

// NewManager creates a Manager. Empty cookie options fall back to DefaultCookieName and "/".
func NewManager(store *Store, codec *Codec, cookie CookieOptions) *Manager {
	if cookie.Name == "" {
		cookie.Name = DefaultCookieName
	}
	if cookie.Path == "" {
		cookie.Path = "/"
	}
	return &Manager{store: store, codec: codec, cookie: cookie}
}

// Store returns the session table backing m.
func (m *Manager) Store() *Store { return m.store }

// Load resolves the request's session cookie. A missing, tampered or
// expired cookie yields a Handle without a session; nothing is created
// until a flag is set.
func (m *Manager) Load(w http.ResponseWriter, r *http.Request) *Handle {
	h := &Handle{m: m, w: w}
	c, err := r.Cookie(m.cookie.Name)
	if err != nil {
		return h
	}
	id, err := m.codec.Decode(c.Value)
	if err != nil {
		return h
	}
	if _, ok := m.store.Get(id); ok {
		h.id = id
	}
	return h
}

// Handle is the session of a single request. A nil *Handle behaves as a
// request without a session.
type Handle struct {
	m  *Manager
	w  http.ResponseWriter
	id string
}

// ID returns the current session id, or "" when there is none.
func (h *Handle) ID() string {
	if h == nil {
		return ""
	}
	return h.id
}

// IsAdmin reports whether the session exists and carries the admin flag.
func (h *Handle) IsAdmin() bool {
	if h == nil || h.id == "" {
		return false
	}
	sess, ok := h.m.store.Get(h.id)
	return ok && sess.Admin
}

// MarkAdmin starts a fresh privileged session and sends its cookie. Any
// previous session of the client is dropped so a pre-login id never
// becomes privileged.
func (h *Handle) MarkAdmin() error {
	if h == nil {
		return errors.New("no session handle")
	}
	if h.id != "" {
		h.m.store.Destroy(h.id)
		h.id = ""
	}

	sess := h.m.store.Create()
	h.m.store.SetAdmin(sess.ID, true)

	value, err := h.m.codec.Encode(sess.ID)
	if err != nil {
		h.m.store.Destroy(sess.ID)
		return err
	}
	h.id = sess.ID
	http.SetCookie(h.w, h.m.newCookie(value, 0))
	return nil
}

// Destroy removes the session and expires the cookie on the client.
func (h *Handle) Destroy() {
	if h == nil {
		return
	}
	if h.id != "" {
		h.m.store.Destroy(h.id)
		h.id = ""
	}
	http.SetCookie(h.w, h.m.newCookie("", -1))
}

func (m *Manager) newCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     m.cookie.Name,
		Value:    value,
		Path:     m.cookie.Path,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   m.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}

type ctxKey string

const handleKey ctxKey = "session"

// NewContext returns a copy of ctx carrying h.
func NewContext(ctx context.Context, h *Handle) context.Context {
	return context.WithValue(ctx, handleKey, h)
}

// FromContext returns the Handle stored in ctx, or nil.
func FromContext(ctx context.Context) *Handle {
	h, _ := ctx.Value(handleKey).(*Handle)
	return h
}
