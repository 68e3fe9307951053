package readonly

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(m *Middleware) *gin.Engine {
	router := gin.New()
	router.Use(m.Handler())
	handler := func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	}
	router.GET("/books", handler)
	router.HEAD("/books", handler)
	router.OPTIONS("/books", handler)
	router.POST("/books", handler)
	router.PUT("/books/:bookId", handler)
	router.DELETE("/books/:bookId", handler)
	return router
}

func TestNewMiddleware(t *testing.T) {
	m := NewMiddleware(true)
	if !m.IsEnabled() {
		t.Error("Expected middleware to be enabled")
	}

	m = NewMiddleware(false)
	if m.IsEnabled() {
		t.Error("Expected middleware to be disabled")
	}
}

func TestMiddleware_AllowsSafeMethods(t *testing.T) {
	router := newTestRouter(NewMiddleware(true))

	for _, method := range []string{http.MethodGet, http.MethodHead, http.MethodOptions} {
		req := httptest.NewRequest(method, "/books", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("%s: expected status 200, got %d", method, w.Code)
		}
	}
}

func TestMiddleware_BlocksWrites(t *testing.T) {
	router := newTestRouter(NewMiddleware(true))

	requests := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/books"},
		{http.MethodPut, "/books/abc"},
		{http.MethodDelete, "/books/abc"},
	}

	for _, r := range requests {
		req := httptest.NewRequest(r.method, r.path, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusForbidden {
			t.Errorf("%s %s: expected status 403, got %d", r.method, r.path, w.Code)
			continue
		}

		var body map[string]string
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("Failed to parse response: %v", err)
		}
		if body["status"] != "fail" {
			t.Errorf("Expected status 'fail', got %q", body["status"])
		}
		if body["message"] != BlockedMessage {
			t.Errorf("Expected message %q, got %q", BlockedMessage, body["message"])
		}
	}
}

func TestMiddleware_DisabledAllowsWrites(t *testing.T) {
	router := newTestRouter(NewMiddleware(false))

	req := httptest.NewRequest(http.MethodPost, "/books", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
}

func TestMiddleware_SetsContextFlag(t *testing.T) {
	m := NewMiddleware(true)
	router := gin.New()
	router.Use(m.Handler())

	var flag any
	router.GET("/flag", func(c *gin.Context) {
		flag, _ = c.Get(ContextKeyReadOnly)
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/flag", nil)
	router.ServeHTTP(httptest.NewRecorder(), req)

	if flag != true {
		t.Errorf("Expected read-only flag true, got %v", flag)
	}
}
