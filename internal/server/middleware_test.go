package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Sabyy027/hostel-core/internal/config"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(s *Server) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ErrorHandlingMiddleware())
	return r
}

func TestStudentRequired(t *testing.T) {
	s := &Server{}
	r := newTestEngine(s)
	r.GET("/guarded", s.StudentRequired(), func(c *gin.Context) {
		id, ok := studentFromContext(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"student_id": id.String()})
	})

	t.Run("missing header", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("malformed header", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
		req.Header.Set("X-Student-Id", "not-a-number")
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("valid header", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
		req.Header.Set("X-Student-Id", "1234567890")
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "1234567890")
	})
}

func TestAdminRequired(t *testing.T) {
	t.Run("closed when no token configured", func(t *testing.T) {
		s := &Server{cfg: config.Config{}}
		r := newTestEngine(s)
		r.GET("/admin/guarded", s.AdminRequired(), func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/admin/guarded", nil)
		req.Header.Set("X-Admin-Token", "anything")
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("wrong token", func(t *testing.T) {
		s := &Server{cfg: config.Config{AdminToken: "secret"}}
		r := newTestEngine(s)
		r.GET("/admin/guarded", s.AdminRequired(), func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/admin/guarded", nil)
		req.Header.Set("X-Admin-Token", "wrong")
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("correct token", func(t *testing.T) {
		s := &Server{cfg: config.Config{AdminToken: "secret"}}
		r := newTestEngine(s)
		r.GET("/admin/guarded", s.AdminRequired(), func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/admin/guarded", nil)
		req.Header.Set("X-Admin-Token", "secret")
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestCheckoutRateLimit(t *testing.T) {
	s := &Server{checkoutLimiter: newRateLimiter(2, time.Minute)}
	r := newTestEngine(s)
	r.POST("/guarded", s.StudentRequired(), s.CheckoutRateLimit(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	do := func(studentID string) int {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/guarded", nil)
		req.Header.Set("X-Student-Id", studentID)
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, do("42"))
	assert.Equal(t, http.StatusOK, do("42"))
	assert.Equal(t, http.StatusTooManyRequests, do("42"))

	// A different student has their own window.
	assert.Equal(t, http.StatusOK, do("43"))
}
