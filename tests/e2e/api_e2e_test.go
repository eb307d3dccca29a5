package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/textproto"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/leadersite/internal/db"
	"github.com/leadersite/internal/handler"
	"github.com/leadersite/internal/mail"
	"github.com/leadersite/internal/media"
	"github.com/leadersite/internal/router"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type e2eSuite struct {
	handler   http.Handler
	public    httpClient
	admin     httpClient
	baseURL   string
	uploadDir string
	adminPass string
	user      db.User
}

type httpClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type localClient struct {
	handler http.Handler
	jar     http.CookieJar
}

func newLocalClient(handler http.Handler, withJar bool) *localClient {
	var jar http.CookieJar
	if withJar {
		if j, err := cookiejar.New(nil); err == nil {
			jar = j
		}
	}
	return &localClient{handler: handler, jar: jar}
}

func (c *localClient) Do(req *http.Request) (*http.Response, error) {
	if c.jar != nil {
		for _, cookie := range c.jar.Cookies(req.URL) {
			req.AddCookie(cookie)
		}
	}
	w := httptest.NewRecorder()
	c.handler.ServeHTTP(w, req)
	resp := w.Result()
	if c.jar != nil {
		c.jar.SetCookies(req.URL, resp.Cookies())
	}
	return resp, nil
}

func TestE2E_AllInterfaces(t *testing.T) {
	suite := newE2ESuite(t)
	suite.login(t)

	t.Run("public endpoints", suite.testPublicEndpoints)
	t.Run("admin content", suite.testAdminContent)
	t.Run("cors preflight", suite.testCORSPreflight)
}

func newE2ESuite(t *testing.T) *e2eSuite {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gdb, err := gorm.Open(sqlite.Open("file:e2e?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	if err := gdb.AutoMigrate(db.Models()...); err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			sqlDB.Close()
		}
	})

	if err := db.EnsureUser(gdb, "admin", "e2e-secret"); err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	var user db.User
	if err := gdb.Where("username = ?", "admin").First(&user).Error; err != nil {
		t.Fatalf("failed to load seeded user: %v", err)
	}

	uploadDir := t.TempDir()
	host, err := media.NewLocalHost(uploadDir, "/uploads")
	if err != nil {
		t.Fatalf("failed to create media host: %v", err)
	}

	api := handler.NewAPI(gdb, host, mail.LogMailer{}, handler.Options{
		MediaFolder:      "e2e",
		ContactRecipient: "office@example.test",
	})
	engine := router.SetupRouter(api, router.Options{
		SessionSecret:  "test-session-secret",
		AllowedOrigins: []string{"http://admin.example.test"},
		UploadDir:      uploadDir,
		UploadURLPath:  "/uploads",
	})

	return &e2eSuite{
		handler:   engine,
		public:    newLocalClient(engine, false),
		admin:     newLocalClient(engine, true),
		baseURL:   "http://example.test",
		uploadDir: uploadDir,
		adminPass: "e2e-secret",
		user:      user,
	}
}

func (s *e2eSuite) login(t *testing.T) {
	t.Helper()
	form := url.Values{
		"username": {s.user.Username},
		"password": {s.adminPass},
	}

	headers := map[string]string{"Content-Type": "application/x-www-form-urlencoded"}
	resp := s.mustRequest(t, s.admin, http.MethodPost, "/api/auth/login", strings.NewReader(form.Encode()), headers)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login failed, status %d: %s", resp.StatusCode, readBody(t, resp))
	}
}

func (s *e2eSuite) testPublicEndpoints(t *testing.T) {
	for _, path := range []string{"/api/gallery/all", "/api/events/all", "/api/news/all", "/api/interviews/all", "/api/sahitya/all"} {
		resp := s.mustRequest(t, s.public, http.MethodGet, path, nil, nil)
		var items []map[string]interface{}
		decodeJSON(t, resp, &items)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("%s expected 200, got %d", path, resp.StatusCode)
		}
		if items == nil {
			t.Fatalf("%s expected a JSON array", path)
		}
	}

	resp := s.mustRequestJSON(t, s.public, http.MethodPost, "/api/news/create", map[string]interface{}{"title": "x"})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 for anonymous create, got %d", resp.StatusCode)
	}

	resp = s.mustRequestJSON(t, s.public, http.MethodPost, "/api/contact/send", map[string]interface{}{
		"name": "Visitor", "email": "visitor@example.test", "subject": "Water supply", "message": "Please check ward 3.",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected contact send to succeed, got %d: %s", resp.StatusCode, readBody(t, resp))
	}
}

func (s *e2eSuite) testAdminContent(t *testing.T) {
	resp := s.uploadTestImage(t)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("upload failed, status %d: %s", resp.StatusCode, readBody(t, resp))
	}
	var asset media.Asset
	decodeJSON(t, resp, &asset)
	if !strings.HasPrefix(asset.URL, "/uploads/e2e/gallery/") || asset.PublicID == "" {
		t.Fatalf("unexpected upload result: %+v", asset)
	}
	if _, err := os.Stat(filepath.Join(s.uploadDir, filepath.FromSlash(asset.PublicID))); err != nil {
		t.Fatalf("uploaded file missing: %v", err)
	}

	resp = s.mustRequestJSON(t, s.admin, http.MethodPost, "/api/gallery/create", map[string]interface{}{
		"title":       "Ward visit",
		"description": "Pre-uploaded photo",
		"images":      []interface{}{map[string]string{"url": asset.URL, "public_id": asset.PublicID}},
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("gallery create failed, status %d: %s", resp.StatusCode, readBody(t, resp))
	}
	var entry db.GalleryEntry
	decodeJSON(t, resp, &entry)
	if len(entry.Images) != 1 || entry.Images[0].PublicID != asset.PublicID {
		t.Fatalf("expected stored asset to pass through, got %+v", entry.Images)
	}

	resp = s.mustRequestJSON(t, s.admin, http.MethodPost, "/api/news/create", map[string]interface{}{
		"title":   "Canal inaugurated",
		"content": "The **new canal** opens today.",
		"image":   asset.URL,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("news create failed, status %d: %s", resp.StatusCode, readBody(t, resp))
	}
	var article db.NewsArticle
	decodeJSON(t, resp, &article)
	if article.Image != asset.URL {
		t.Fatalf("expected hosted image to be reused, got %s", article.Image)
	}
	if !strings.Contains(article.ContentHTML, "<strong>new canal</strong>") {
		t.Fatalf("expected rendered content, got %s", article.ContentHTML)
	}

	resp = s.mustRequestJSON(t, s.admin, http.MethodPost, "/api/interviews/create", map[string]interface{}{
		"title":    "Morning show",
		"videoUrl": "https://www.youtube.com/live/dQw4w9WgXcQ?feature=share",
		"image":    asset.URL,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("interview create failed, status %d: %s", resp.StatusCode, readBody(t, resp))
	}
	var interview db.Interview
	decodeJSON(t, resp, &interview)
	if interview.EmbedURL != "https://www.youtube.com/embed/dQw4w9WgXcQ" {
		t.Fatalf("unexpected embed url %q", interview.EmbedURL)
	}

	resp = s.mustRequest(t, s.public, http.MethodGet, "/api/interviews/"+idStr(interview.ID), nil, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("public interview read failed, status %d", resp.StatusCode)
	}

	resp = s.mustRequest(t, s.admin, http.MethodDelete, "/api/gallery/"+idStr(entry.ID), nil, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("gallery delete failed, status %d: %s", resp.StatusCode, readBody(t, resp))
	}
	if _, err := os.Stat(filepath.Join(s.uploadDir, filepath.FromSlash(asset.PublicID))); !os.IsNotExist(err) {
		t.Fatalf("expected gallery delete to remove the hosted file, stat err=%v", err)
	}

	resp = s.mustRequest(t, s.admin, http.MethodDelete, "/api/news/"+idStr(article.ID), nil, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("news delete should succeed even when the asset is already gone, status %d", resp.StatusCode)
	}
}

func (s *e2eSuite) testCORSPreflight(t *testing.T) {
	headers := map[string]string{
		"Origin":                        "http://admin.example.test",
		"Access-Control-Request-Method": http.MethodPut,
	}
	resp := s.mustRequest(t, s.public, http.MethodOptions, "/api/about", nil, headers)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204 preflight, got %d", resp.StatusCode)
	}
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "http://admin.example.test" {
		t.Fatalf("unexpected allow origin %q", got)
	}
}

func (s *e2eSuite) uploadTestImage(t *testing.T) *http.Response {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, color.RGBA{R: 10, G: 20, B: 200, A: 255})
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode png: %v", err)
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	partHeader := textproto.MIMEHeader{}
	partHeader.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, "image", "test.png"))
	partHeader.Set("Content-Type", "image/png")
	part, err := writer.CreatePart(partHeader)
	if err != nil {
		t.Fatalf("failed to create form file: %v", err)
	}
	if _, err := part.Write(buf.Bytes()); err != nil {
		t.Fatalf("failed to write image: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close writer: %v", err)
	}

	headers := map[string]string{
		"Content-Type": writer.FormDataContentType(),
	}
	return s.mustRequest(t, s.admin, http.MethodPost, "/api/gallery/upload", body, headers)
}

func (s *e2eSuite) mustRequest(t *testing.T, client httpClient, method, path string, body io.Reader, headers map[string]string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, s.baseURL+path, body)
	if err != nil {
		t.Fatalf("failed to build request %s %s: %v", method, path, err)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("request %s %s failed: %v", method, path, err)
	}
	return resp
}

func (s *e2eSuite) mustRequestJSON(t *testing.T, client httpClient, method, path string, payload map[string]interface{}) *http.Response {
	t.Helper()
	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("failed to marshal payload: %v", err)
	}
	headers := map[string]string{"Content-Type": "application/json"}
	return s.mustRequest(t, client, method, path, bytes.NewReader(data), headers)
}

func decodeJSON(t *testing.T, resp *http.Response, dst interface{}) {
	t.Helper()
	body := readBody(t, resp)
	if err := json.Unmarshal([]byte(body), dst); err != nil {
		t.Fatalf("failed to decode json: %v\nbody=%s", err, body)
	}
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response body: %v", err)
	}
	return string(data)
}

func idStr(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
