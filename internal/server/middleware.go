package server

import (
	"crypto/subtle"
	"strconv"
	"strings"

	checkoutdomain "github.com/Sabyy027/hostel-core/internal/checkout/domain"
	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
)

const studentIDKey = "student_id"

// StudentRequired resolves the calling student from the X-Student-Id header
// set by the fronting auth layer. Identity management itself lives outside
// this service.
func (s *Server) StudentRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.GetHeader("X-Student-Id"))
		if raw == "" {
			AbortWithError(c, ErrUnauthorized)
			return
		}
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			AbortWithError(c, ErrUnauthorized)
			return
		}
		c.Set(studentIDKey, snowflake.ID(id))
		c.Next()
	}
}

func (s *Server) AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.cfg.AdminToken == "" {
			AbortWithError(c, ErrForbidden)
			return
		}
		token := strings.TrimSpace(c.GetHeader("X-Admin-Token"))
		if subtle.ConstantTimeCompare([]byte(token), []byte(s.cfg.AdminToken)) != 1 {
			AbortWithError(c, ErrForbidden)
			return
		}
		c.Next()
	}
}

func studentFromContext(c *gin.Context) (snowflake.ID, bool) {
	v, ok := c.Get(studentIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(snowflake.ID)
	return id, ok
}

// CheckoutRateLimit applies an in-memory per-student limit in front of the
// checkout endpoints. The redis limiter inside the checkout service still
// applies when configured; this one protects a single node with no redis.
func (s *Server) CheckoutRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		studentID, ok := studentFromContext(c)
		if !ok {
			AbortWithError(c, ErrUnauthorized)
			return
		}
		if !s.checkoutLimiter.Allow(studentID.String()) {
			AbortWithError(c, checkoutdomain.ErrRateLimited)
			return
		}
		c.Next()
	}
}
