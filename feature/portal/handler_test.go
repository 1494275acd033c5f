package portal

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"reservation-portal/core/session"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testToken = "0d9c3f5e-portal-token"

func setupApp(t *testing.T) (*fiber.App, *fixture) {
	t.Helper()
	fx := newFixture(t, sampleTable())

	sessions := session.NewManager(session.NewStore(session.StoreConfig{}), testToken)
	feature, err := NewFeature(fx.service, sessions)
	require.NoError(t, err)

	app := fiber.New()
	require.NoError(t, feature.Load(app))
	return app, fx
}

// client replays the session cookie between requests.
type client struct {
	t      *testing.T
	app    *fiber.App
	cookie *http.Cookie
}

func (c *client) do(req *http.Request) *http.Response {
	c.t.Helper()
	if c.cookie != nil {
		req.AddCookie(c.cookie)
	}
	resp, err := c.app.Test(req, -1)
	require.NoError(c.t, err)
	for _, ck := range resp.Cookies() {
		if ck.Name == session.CookieName {
			if ck.Value == "" || ck.MaxAge < 0 {
				c.cookie = nil
			} else {
				c.cookie = ck
			}
		}
	}
	return resp
}

func (c *client) get(target string) *http.Response {
	return c.do(httptest.NewRequest(fiber.MethodGet, target, nil))
}

func (c *client) upload(filename string, content []byte) *http.Response {
	c.t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	if filename != "" {
		part, err := w.CreateFormFile(FileField, filename)
		require.NoError(c.t, err)
		_, err = part.Write(content)
		require.NoError(c.t, err)
	}
	require.NoError(c.t, w.Close())

	req := httptest.NewRequest(fiber.MethodPost, "/upload", &body)
	req.Header.Set(fiber.HeaderContentType, w.FormDataContentType())
	return c.do(req)
}

func (c *client) login() {
	c.t.Helper()
	resp := c.get("/?uuid=" + testToken)
	require.Equal(c.t, fiber.StatusFound, resp.StatusCode)
	require.Equal(c.t, "/upload", resp.Header.Get(fiber.HeaderLocation))
	require.NotNil(c.t, c.cookie)
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

func status(t *testing.T, c *client) StatusResponse {
	t.Helper()
	resp := c.get("/status")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var out StatusResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestHandleEntry_Unauthenticated(t *testing.T) {
	app, _ := setupApp(t)
	c := &client{t: t, app: app}

	resp := c.get("/")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "Access required")
}

func TestHandleEntry_WrongToken(t *testing.T) {
	app, _ := setupApp(t)
	c := &client{t: t, app: app}
	c.login()

	resp := c.get("/?uuid=not-the-token")
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get(fiber.HeaderLocation))

	// The previous authorization is gone.
	resp = c.get("/upload")
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get(fiber.HeaderLocation))
}

func TestHandleEntry_TokenInForm(t *testing.T) {
	app, _ := setupApp(t)
	c := &client{t: t, app: app}

	req := httptest.NewRequest(fiber.MethodPost, "/", strings.NewReader("uuid="+testToken))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)
	resp := c.do(req)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/upload", resp.Header.Get(fiber.HeaderLocation))
	assert.Equal(t, "authenticated", status(t, c).State)
}

func TestHandleEntry_RedirectsBySessionState(t *testing.T) {
	app, _ := setupApp(t)
	c := &client{t: t, app: app}
	c.login()

	resp := c.get("/")
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/upload", resp.Header.Get(fiber.HeaderLocation))

	resp = c.upload("res.xlsx", []byte("sheet"))
	require.Equal(t, fiber.StatusFound, resp.StatusCode)

	resp = c.get("/")
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/reports", resp.Header.Get(fiber.HeaderLocation))

	// Presenting the token again starts over without an active file.
	c.login()
	assert.Equal(t, StatusResponse{State: "authenticated"}, status(t, c))
}

func TestProtectedRoutesRedirectWithoutSession(t *testing.T) {
	app, fx := setupApp(t)
	c := &client{t: t, app: app}

	for _, target := range []string{"/upload", "/reports", "/downloads/summary.pdf", "/status"} {
		resp := c.get(target)
		assert.Equal(t, fiber.StatusFound, resp.StatusCode, target)
		assert.Equal(t, "/", resp.Header.Get(fiber.HeaderLocation), target)
	}

	resp := c.upload("res.xlsx", []byte("sheet"))
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get(fiber.HeaderLocation))
	assert.Empty(t, fx.processor.Calls())

	entries, err := os.ReadDir(fx.uploadDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestHandleUpload_Rejected(t *testing.T) {
	app, fx := setupApp(t)
	c := &client{t: t, app: app}
	c.login()

	resp := c.upload("", nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "no file was uploaded")

	for _, name := range []string{"notes.csv", "UPPER.XLSX", "Mixed.Xlsx", "res.xlsx.bak"} {
		resp = c.upload(name, []byte("a,b"))
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode, name)
		assert.Contains(t, readBody(t, resp), "invalid file type", name)
	}

	entries, err := os.ReadDir(fx.uploadDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.Empty(t, fx.processor.Calls())
	assert.Equal(t, "authenticated", status(t, c).State)
}

func TestHandleUpload_ProcessingError(t *testing.T) {
	app, fx := setupApp(t)
	c := &client{t: t, app: app}
	c.login()
	fx.processor.err = errors.New("no sheet named Reservations")

	resp := c.upload("res.xlsx", []byte("junk"))
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "Error processing file: no sheet named Reservations")

	assert.Equal(t, StatusResponse{State: "authenticated"}, status(t, c))
}

func TestHandleUpload_Success(t *testing.T) {
	app, fx := setupApp(t)
	c := &client{t: t, app: app}
	c.login()

	resp := c.upload("July Export.xlsx", []byte("sheet"))
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/reports", resp.Header.Get(fiber.HeaderLocation))

	assert.Equal(t, StatusResponse{State: "active_file", File: "July Export.xlsx"}, status(t, c))
	assert.FileExists(t, fx.uploadDir+"/July Export.xlsx")
	assert.Len(t, fx.processor.Calls(), 4)
}

func TestHandleReports(t *testing.T) {
	app, fx := setupApp(t)
	c := &client{t: t, app: app}
	c.login()

	resp := c.get("/reports")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "No reports yet")

	require.NoError(t, fx.store.Save(context.Background(), "notes/read me.txt", strings.NewReader("x"), 1))
	resp = c.upload("res.xlsx", []byte("sheet"))
	require.Equal(t, fiber.StatusFound, resp.StatusCode)

	resp = c.get("/reports")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := readBody(t, resp)

	other := strings.Index(body, "<h3>Other</h3>")
	placards := strings.Index(body, "<h3>placards</h3>")
	require.NotEqual(t, -1, other)
	require.NotEqual(t, -1, placards)
	assert.Less(t, other, placards)
	assert.NotContains(t, body, "read me.txt", "generation clears earlier artifacts")

	first := strings.Index(body, `href="/downloads/placards/2024-07-10.pdf"`)
	second := strings.Index(body, `href="/downloads/placards/2024-07-12.pdf"`)
	require.NotEqual(t, -1, first)
	assert.Less(t, first, second)
	assert.Contains(t, body, `href="/downloads/summary.pdf"`)
	assert.NotContains(t, body, "2024-07-09.pdf")
	assert.Contains(t, body, "3 files generated from <strong>res.xlsx</strong>.")
	assert.Contains(t, body, "Recent runs")
}

func TestHandleDownload(t *testing.T) {
	app, fx := setupApp(t)
	c := &client{t: t, app: app}
	c.login()
	require.NoError(t, fx.store.Save(context.Background(), "placards/2024-07-10.pdf", strings.NewReader("%PDF-1.3 test"), 13))
	require.NoError(t, fx.store.Save(context.Background(), "guest list.pdf", strings.NewReader("%PDF-1.3 guests"), 15))

	resp := c.get("/downloads/placards/2024-07-10.pdf")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), `attachment; filename="2024-07-10.pdf"`)
	assert.Equal(t, "%PDF-1.3 test", readBody(t, resp))

	resp = c.get("/downloads/guest%20list.pdf")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "%PDF-1.3 guests", readBody(t, resp))

	resp = c.get("/downloads/placards/2030-01-01.pdf")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestHandleDownload_Traversal(t *testing.T) {
	app, fx := setupApp(t)
	c := &client{t: t, app: app}
	c.login()

	secret := fx.uploadDir + "/secret.xlsx"
	require.NoError(t, os.WriteFile(secret, []byte("top secret"), 0o600))

	for _, target := range []string{
		"/downloads/..%2Fuploads%2Fsecret.xlsx",
		"/downloads/%2E%2E/%2E%2E/etc/passwd",
		"/downloads/%2Fetc%2Fpasswd",
		"/downloads/placards%2F..%2F..%2Fsecret.xlsx",
	} {
		resp := c.get(target)
		assert.Contains(t, []int{fiber.StatusBadRequest, fiber.StatusNotFound}, resp.StatusCode, target)
		assert.NotContains(t, readBody(t, resp), "top secret", target)
	}

	resp := c.get("/downloads/..%2F..%2Fsecret.xlsx")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
