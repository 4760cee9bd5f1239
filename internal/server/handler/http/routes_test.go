package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rodastrial/sitedesk/internal/db"
	"github.com/rodastrial/sitedesk/internal/repository"
	handler "github.com/rodastrial/sitedesk/internal/server/handler/http"
	"github.com/rodastrial/sitedesk/internal/service"
	"github.com/rodastrial/sitedesk/internal/session"
)

type testServer struct {
	*httptest.Server
	client  *http.Client
	contact *repository.ContactRepository
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	conn, err := db.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	contentRepo := repository.NewContentRepository(conn)
	contactRepo := repository.NewContactRepository(conn)

	creds, err := service.NewCredentials("x", "y", "")
	require.NoError(t, err)
	authService := service.NewAuthService(creds)
	contentService := service.NewContentService(contentRepo, authService)
	contactService := service.NewContactService(contactRepo, authService)

	codec, err := session.NewCodec("test-secret")
	require.NoError(t, err)
	sessions := session.NewManager(session.NewStore(time.Hour), codec, session.CookieOptions{})

	public := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(public, "index.html"), []byte("<h1>site</h1>"), 0o600))
	admin := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(admin, "index.html"), []byte("<h1>admin</h1>"), 0o600))

	logger := zap.NewNop()
	router := handler.NewRouter(
		&handler.ContentHandler{ContentService: contentService, Logger: logger},
		&handler.ContactHandler{ContactService: contactService, Logger: logger},
		&handler.AdminHandler{AuthService: authService, ContactService: contactService, Logger: logger},
		sessions,
		handler.StaticDirs{Public: public, Admin: admin},
		logger,
	)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &testServer{Server: srv, client: &http.Client{Jar: jar}, contact: contactRepo}
}

func (s *testServer) do(t *testing.T, method, path, body string) (int, string) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, s.URL+path, r)
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	res, err := s.client.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()
	data, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return res.StatusCode, string(data)
}

func (s *testServer) count(t *testing.T) int64 {
	t.Helper()
	n, err := s.contact.CountMessages(context.Background())
	require.NoError(t, err)
	return n
}

func TestRouter_LoginThenEditTitle(t *testing.T) {
	s := newTestServer(t)

	code, body := s.do(t, http.MethodGet, "/api/content", "")
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"site_title":"Rodas Trial Consulting"}`, body)

	code, body = s.do(t, http.MethodPost, "/api/admin/login", `{"username":"x","password":"y"}`)
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"ok":true}`, body)

	code, body = s.do(t, http.MethodPost, "/api/content", `{"site_title":" Hello "}`)
	require.Equal(t, http.StatusOK, code, body)
	assert.JSONEq(t, `{"ok":true}`, body)

	code, body = s.do(t, http.MethodGet, "/api/content", "")
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"site_title":"Hello"}`, body)

	code, body = s.do(t, http.MethodPost, "/api/content", `{"site_title":"   "}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.JSONEq(t, `{"error":"Invalid site_title"}`, body)
}

func TestRouter_ContactWithoutSession(t *testing.T) {
	s := newTestServer(t)

	code, body := s.do(t, http.MethodPost, "/api/contact", `{"name":"A","email":"a@b.com","message":"Hi"}`)
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"ok":true}`, body)
	assert.EqualValues(t, 1, s.count(t))

	code, body = s.do(t, http.MethodGet, "/api/admin/messages", "")
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.JSONEq(t, `{"error":"Not logged in"}`, body)
}

func TestRouter_RejectedContactCreatesNoRow(t *testing.T) {
	s := newTestServer(t)

	for _, body := range []string{
		`{"name":"","email":"a@b.com","message":"Hi"}`,
		`{"name":"A","email":"  ","message":"Hi"}`,
		`{"name":"A","email":"a@b.com"}`,
	} {
		code, resp := s.do(t, http.MethodPost, "/api/contact", body)
		assert.Equal(t, http.StatusBadRequest, code)
		assert.JSONEq(t, `{"error":"Missing fields"}`, resp)
	}
	assert.Zero(t, s.count(t))
}

func TestRouter_NewestMessageFirst(t *testing.T) {
	s := newTestServer(t)

	_, _ = s.do(t, http.MethodPost, "/api/contact", `{"name":"First","email":"a@b.com","message":"1"}`)
	_, _ = s.do(t, http.MethodPost, "/api/contact", `{"name":" Second ","email":"b@c.com","message":" 2 "}`)
	_, _ = s.do(t, http.MethodPost, "/api/admin/login", `{"username":"x","password":"y"}`)

	code, body := s.do(t, http.MethodGet, "/api/admin/messages", "")
	require.Equal(t, http.StatusOK, code)

	var msgs []struct {
		ID        int64  `json:"id"`
		Name      string `json:"name"`
		Message   string `json:"message"`
		CreatedAt string `json:"created_at"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &msgs))
	require.Len(t, msgs, 2)
	assert.Equal(t, "Second", msgs[0].Name)
	assert.Equal(t, "2", msgs[0].Message)
	assert.Greater(t, msgs[0].ID, msgs[1].ID)
	_, err := time.Parse(time.RFC3339, msgs[0].CreatedAt)
	assert.NoError(t, err)
	assert.True(t, strings.HasSuffix(msgs[0].CreatedAt, "Z"))
}

func TestRouter_UnauthenticatedWritesDoNothing(t *testing.T) {
	s := newTestServer(t)

	code, body := s.do(t, http.MethodPost, "/api/content", `{"site_title":"Hacked"}`)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.JSONEq(t, `{"error":"Not logged in"}`, body)

	_, body = s.do(t, http.MethodGet, "/api/content", "")
	assert.JSONEq(t, `{"site_title":"Rodas Trial Consulting"}`, body)
}

func TestRouter_BadLoginThenLogout(t *testing.T) {
	s := newTestServer(t)

	code, body := s.do(t, http.MethodPost, "/api/admin/login", `{"username":"x","password":"Y"}`)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.JSONEq(t, `{"error":"Invalid login"}`, body)

	code, _ = s.do(t, http.MethodGet, "/api/admin/messages", "")
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = s.do(t, http.MethodPost, "/api/admin/login", `{"username":"x","password":"y"}`)
	require.Equal(t, http.StatusOK, code)
	code, body = s.do(t, http.MethodGet, "/api/admin/messages", "")
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `[]`, body)

	code, body = s.do(t, http.MethodPost, "/api/admin/logout", "")
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"ok":true}`, body)

	code, _ = s.do(t, http.MethodGet, "/api/admin/messages", "")
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = s.do(t, http.MethodPost, "/api/admin/logout", "")
	assert.Equal(t, http.StatusOK, code, "logout without a session still succeeds")
}

func TestRouter_FormLogin(t *testing.T) {
	s := newTestServer(t)

	req, err := http.NewRequest(http.MethodPost, s.URL+"/api/admin/login", strings.NewReader("username=x&password=y"))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	res, err := s.client.Do(req)
	require.NoError(t, err)
	res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	var cookie *http.Cookie
	for _, c := range res.Cookies() {
		if c.Name == session.DefaultCookieName {
			cookie = c
		}
	}
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
}

func (s *testServer) post(t *testing.T, path, contentType, body string) (int, string) {
	t.Helper()
	res, err := s.client.Post(s.URL+path, contentType, strings.NewReader(body))
	require.NoError(t, err)
	defer res.Body.Close()
	data, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return res.StatusCode, string(data)
}

func TestRouter_OtherContentTypesReadAsEmptyBody(t *testing.T) {
	s := newTestServer(t)
	const textPlain = "text/plain;charset=UTF-8"

	code, body := s.post(t, "/api/content", textPlain, `{"site_title":"Hacked"}`)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.JSONEq(t, `{"error":"Not logged in"}`, body)

	code, body = s.post(t, "/api/contact", textPlain, `{"name":"A","email":"a@b.com","message":"Hi"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.JSONEq(t, `{"error":"Missing fields"}`, body)
	assert.Zero(t, s.count(t))

	code, body = s.post(t, "/api/admin/logout", textPlain, `{}`)
	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"ok":true}`, body)

	_, body = s.do(t, http.MethodGet, "/api/content", "")
	assert.JSONEq(t, `{"site_title":"Rodas Trial Consulting"}`, body)
}

func TestRouter_WrongMethodIsJSON(t *testing.T) {
	s := newTestServer(t)

	code, body := s.do(t, http.MethodGet, "/api/contact", "")
	assert.Equal(t, http.StatusMethodNotAllowed, code)
	assert.JSONEq(t, `{"error":"method not allowed"}`, body)
}

func TestRouter_StaticFiles(t *testing.T) {
	s := newTestServer(t)

	code, body := s.do(t, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "site")

	code, body = s.do(t, http.MethodGet, "/admin", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "admin")

	code, body = s.do(t, http.MethodGet, "/api/missing", "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.JSONEq(t, `{"error":"not found"}`, body)
}
