package httpapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	sqlite "github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/go-messaging-backend/internal/config"
	"github.com/tbourn/go-messaging-backend/internal/domain"
)

// --- test DB helper (pure-Go sqlite, no CGO) ---
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:routerdb_%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&domain.User{}, &domain.Message{}, &domain.MessageRecipient{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func newRouter(t *testing.T, cfg config.Config) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r, newTestDB(t), cfg)
	return r
}

func baseCfg() config.Config {
	return config.Config{
		APIBasePath: "/api/v1",
		CORS:        config.CORSConfig{},
		Security:    config.SecurityConfig{},
		OTEL:        config.OTELConfig{ServiceName: "test-svc"},
	}
}

func TestRegisterRoutes_Health_Metrics_CORS_Fallbacks(t *testing.T) {
	r := newRouter(t, baseCfg())

	// /health works
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("GET /health = %d", w.Code)
	}
	// CORS allow-all branch
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("AllowAllOrigins expected '*', got %q", got)
	}
	// Security headers applied on every response
	if got := w.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Fatalf("nosniff header: %q", got)
	}
	// Correlation ID always present
	if w.Header().Get("X-Request-ID") == "" {
		t.Fatalf("missing X-Request-ID")
	}

	// /metrics is wired
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if w.Code != http.StatusOK || w.Body.Len() == 0 {
		t.Fatalf("GET /metrics bad: code=%d len=%d", w.Code, w.Body.Len())
	}

	// NoRoute -> 404 envelope
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("GET /nope expected 404, got %d", w.Code)
	}

	// NoMethod -> 405 (POST /health)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/health", nil))
	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("POST /health expected 405, got %d", w.Code)
	}
}

func TestRegisterRoutes_CORSWithOrigins_HeaderEcho(t *testing.T) {
	cfg := baseCfg()
	cfg.APIBasePath = "/api/v2"
	cfg.CORS.AllowedOrigins = []string{"http://example.com"}
	r := newRouter(t, cfg)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://example.com")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("GET /health = %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://example.com" {
		t.Fatalf("expected ACAO echo, got %q", got)
	}
}

// End-to-end through the full middleware stack: REST and tool surfaces
// observe the same data.
func TestRegisterRoutes_SurfacesShareState(t *testing.T) {
	r := newRouter(t, baseCfg())

	do := func(method, path, body string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		var rd io.Reader
		if body != "" {
			rd = bytes.NewBufferString(body)
		}
		req := httptest.NewRequest(method, path, rd)
		if body != "" {
			req.Header.Set("Content-Type", "application/json")
		}
		r.ServeHTTP(w, req)
		return w
	}

	// Create via REST
	w := do(http.MethodPost, "/api/v1/users", `{"email":"share@example.com","name":"Share"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("POST /users -> %d body=%s", w.Code, w.Body.String())
	}
	var u domain.User
	if err := json.Unmarshal(w.Body.Bytes(), &u); err != nil {
		t.Fatalf("json: %v", err)
	}

	// Visible via the tool catalog bridge
	w = do(http.MethodPost, "/api/v1/tools/list_users", "")
	if w.Code != http.StatusOK {
		t.Fatalf("POST /tools/list_users -> %d body=%s", w.Code, w.Body.String())
	}
	var users []domain.User
	if err := json.Unmarshal(w.Body.Bytes(), &users); err != nil {
		t.Fatalf("json: %v", err)
	}
	if len(users) != 1 || users[0].ID != u.ID {
		t.Fatalf("tool surface users: %#v", users)
	}

	// And via the resource view
	w = do(http.MethodGet, "/api/v1/resources?uri=messaging://users/"+u.ID, "")
	if w.Code != http.StatusOK {
		t.Fatalf("GET /resources -> %d body=%s", w.Code, w.Body.String())
	}
	var got domain.User
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("snapshot json: %v", err)
	}
	if got.Email != "share@example.com" {
		t.Fatalf("resource user: %#v", got)
	}

	// Tool catalog is discoverable
	w = do(http.MethodGet, "/api/v1/tools", "")
	if w.Code != http.StatusOK {
		t.Fatalf("GET /tools -> %d", w.Code)
	}
}

func Test_limitBody_Middleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(limitBody(10))
	r.POST("/echo", func(c *gin.Context) {
		_, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.String(http.StatusRequestEntityTooLarge, "too big")
			return
		}
		c.String(http.StatusOK, "ok")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/echo", bytes.NewBufferString("0123456789AB"))
	r.ServeHTTP(w, req)
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413 from limitBody, got %d", w.Code)
	}
}

func Test_groupWithPrefix(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	root1 := groupWithPrefix(r, "/")
	root1.GET("/one", func(c *gin.Context) { c.String(http.StatusOK, "one") })
	root2 := groupWithPrefix(r, "")
	root2.GET("/two", func(c *gin.Context) { c.String(http.StatusOK, "two") })
	api := groupWithPrefix(r, "/api")
	api.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	for path, want := range map[string]string{"/one": "one", "/two": "two", "/api/ping": "pong"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusOK || rec.Body.String() != want {
			t.Fatalf("GET %s got %d %q", path, rec.Code, rec.Body.String())
		}
	}
}
