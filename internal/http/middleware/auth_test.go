// README: Tests for session auth, rate limiting and recovery middleware.
package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"taxi/internal/http/middleware"
	"taxi/internal/modules/account"
	"taxi/internal/modules/session"
)

// stubSessions is a test double for middleware.SessionResolver.
type stubSessions struct {
	sess account.Session
	err  error
}

func (s *stubSessions) Get(_ context.Context, _ string) (account.Session, error) {
	return s.sess, s.err
}

func newTestRouter(resolver middleware.SessionResolver) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.Auth(resolver))
	r.GET("/test", func(c *gin.Context) {
		sess := middleware.CallerSession(c)
		c.JSON(http.StatusOK, gin.H{"username": sess.Username, "admin": sess.Admin, "token": middleware.CallerToken(c)})
	})
	return r
}

func doGet(r http.Handler, auth string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuth_MissingHeader(t *testing.T) {
	w := doGet(newTestRouter(&stubSessions{sess: account.Session{Username: "alice"}}), "")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestAuth_InvalidBearerPrefix(t *testing.T) {
	w := doGet(newTestRouter(&stubSessions{sess: account.Session{Username: "alice"}}), "Token sometoken")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestAuth_UnknownSession(t *testing.T) {
	w := doGet(newTestRouter(&stubSessions{err: session.ErrNotFound}), "Bearer expired")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Please login first") {
		t.Errorf("unexpected body %s", w.Body.String())
	}
}

func TestAuth_StoreFailure(t *testing.T) {
	w := doGet(newTestRouter(&stubSessions{err: errors.New("redis down")}), "Bearer tok")
	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", w.Code)
	}
}

func TestAuth_ValidToken_SessionPopulated(t *testing.T) {
	w := doGet(newTestRouter(&stubSessions{sess: account.Session{Username: "alice"}}), "Bearer tok-1")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, `"username":"alice"`) {
		t.Errorf("expected username alice in body, got %s", body)
	}
	if !strings.Contains(body, `"token":"tok-1"`) {
		t.Errorf("expected token in body, got %s", body)
	}
}

func TestRateLimit_BlocksAfterBurst(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	l := middleware.NewIPLimiter(2)
	defer l.Stop()
	r.Use(middleware.RateLimit(l))
	r.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		codes = append(codes, doGet(r, "").Code)
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusOK {
		t.Errorf("expected first two requests allowed, got %v", codes)
	}
	if codes[2] != http.StatusTooManyRequests {
		t.Errorf("expected 429 on third request, got %d", codes[2])
	}
}

func TestRateLimit_ZeroDisables(t *testing.T) {
	l := middleware.NewIPLimiter(0)
	defer l.Stop()
	for i := 0; i < 100; i++ {
		if !l.Allow("10.0.0.1") {
			t.Fatalf("request %d limited with limiter disabled", i)
		}
	}
}

func TestRateLimit_PerClient(t *testing.T) {
	l := middleware.NewIPLimiter(1)
	defer l.Stop()
	if !l.Allow("10.0.0.1") || !l.Allow("10.0.0.2") {
		t.Fatal("each client should get its own bucket")
	}
	if l.Allow("10.0.0.1") {
		t.Error("second request from same client should be limited")
	}
}

func TestRecovery_Returns500(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.Recovery())
	r.GET("/test", func(c *gin.Context) { panic("boom") })

	w := doGet(r, "")
	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", w.Code)
	}
}

type countingRecorder struct{ codes []int }

func (c *countingRecorder) RecordHTTPStatus(code int) { c.codes = append(c.codes, code) }

func TestLogging_RecordsStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := &countingRecorder{}
	r := gin.New()
	r.Use(middleware.Logging(rec))
	r.GET("/test", func(c *gin.Context) { c.Status(http.StatusTeapot) })

	doGet(r, "")
	if len(rec.codes) != 1 || rec.codes[0] != http.StatusTeapot {
		t.Errorf("expected one 418 recorded, got %v", rec.codes)
	}
}
