package api

import (
	"net/http"
	"sync"
	"time"

	"github.com/avshorin/airport-api/internal/auth"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const (
	ctxUserID    = "user_id"
	ctxUserEmail = "user_email"
	ctxIsStaff   = "is_staff"
)

// Auth verifies the bearer token and stores the caller's identity on the
// request context.
func Auth(tokens *auth.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := auth.ExtractBearer(c.GetHeader("Authorization"))
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		claims, err := tokens.Parse(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set(ctxUserID, claims.UserID)
		c.Set(ctxUserEmail, claims.Subject)
		c.Set(ctxIsStaff, claims.IsStaff)
		c.Next()
	}
}

// AdminOnly rejects authenticated non-staff callers. Must run after Auth.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !c.GetBool(ctxIsStaff) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			return
		}
		c.Next()
	}
}

func currentUserID(c *gin.Context) int64 {
	return c.GetInt64(ctxUserID)
}

func currentUserEmail(c *gin.Context) string {
	return c.GetString(ctxUserEmail)
}

func currentUserIsStaff(c *gin.Context) bool {
	return c.GetBool(ctxIsStaff)
}

const (
	limiterSweepInterval = time.Minute
	limiterIdleTTL       = 3 * time.Minute
)

// ipLimiters keeps one token bucket per client IP. Idle buckets are
// swept periodically so the map stays bounded.
type ipLimiters struct {
	mu      sync.Mutex
	rps     int
	burst   int
	clients map[string]*ipClient
}

type ipClient struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newIPLimiters(rps, burst int) *ipLimiters {
	return &ipLimiters{
		rps:     rps,
		burst:   burst,
		clients: make(map[string]*ipClient),
	}
}

func (l *ipLimiters) allow(ip string) bool {
	l.mu.Lock()
	client, ok := l.clients[ip]
	if !ok {
		client = &ipClient{limiter: rate.NewLimiter(rate.Limit(l.rps), l.burst)}
		l.clients[ip] = client
	}
	client.lastSeen = time.Now()
	l.mu.Unlock()

	return client.limiter.Allow()
}

func (l *ipLimiters) evict(idle time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for ip, client := range l.clients {
		if time.Since(client.lastSeen) > idle {
			delete(l.clients, ip)
		}
	}
}

// RateLimit applies a per-client-IP token bucket. Used on the login
// endpoint to slow down credential guessing.
func RateLimit(rps, burst int) gin.HandlerFunc {
	limiters := newIPLimiters(rps, burst)

	go func() {
		for range time.Tick(limiterSweepInterval) {
			limiters.evict(limiterIdleTTL)
		}
	}()

	return func(c *gin.Context) {
		if !limiters.allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			return
		}
		c.Next()
	}
}
