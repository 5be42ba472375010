package handlers

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"aquascape/internal/metrics"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const (
	userIDKey        = "userId"
	accessTokenQuery = "access_token"

	// 10 per minute per IP, burst 5
	defaultAuthRate  = rate.Limit(10.0 / 60.0)
	defaultAuthBurst = 5
)

func (h *Handler) userIdMiddleware(c *gin.Context) {
	token, msg := bearerToken(c)
	if token == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": msg,
		})
		return
	}

	userId, err := h.services.ParseToken(c.Request.Context(), token)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "invalid or expired token",
		})
		return
	}

	// store in Gin context
	c.Set(userIDKey, userId)
	c.Next()
}

// bearerToken reads the token from the Authorization header, or from
// ?access_token= for websocket clients that cannot set headers.
func bearerToken(c *gin.Context) (token, errMsg string) {
	header := c.GetHeader("Authorization")
	if header == "" {
		if t := c.Query(accessTokenQuery); t != "" {
			return t, ""
		}
		return "", "missing Authorization header"
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
		return "", "invalid Authorization header format"
	}
	return parts[1], ""
}

// userID returns the caller set by userIdMiddleware.
func userID(c *gin.Context) int64 {
	return c.GetInt64(userIDKey)
}

// metricsMiddleware records request duration by method, route and status.
func (h *Handler) metricsMiddleware(c *gin.Context) {
	start := time.Now()
	c.Next()

	path := c.FullPath()
	if path == "" {
		path = "unmatched"
	}
	metrics.RecordRequest(c.Request.Method, path, c.Writer.Status(), time.Since(start).Seconds())
}

// ipRateLimiter limits requests per client IP using a token bucket per IP.
type ipRateLimiter struct {
	mu    sync.RWMutex
	ips   map[string]*rate.Limiter
	limit rate.Limit
	burst int
}

func newIPRateLimiter(limit rate.Limit, burst int) *ipRateLimiter {
	return &ipRateLimiter{
		ips:   make(map[string]*rate.Limiter),
		limit: limit,
		burst: burst,
	}
}

func (l *ipRateLimiter) get(ip string) *rate.Limiter {
	l.mu.RLock()
	lim, ok := l.ips[ip]
	l.mu.RUnlock()
	if ok {
		return lim
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if lim, ok = l.ips[ip]; ok {
		return lim
	}
	lim = rate.NewLimiter(l.limit, l.burst)
	l.ips[ip] = lim
	return lim
}

// middleware answers 429 once the client IP runs out of tokens.
func (l *ipRateLimiter) middleware(c *gin.Context) {
	if !l.get(c.ClientIP()).Allow() {
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
		return
	}
	c.Next()
}
