package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/avshorin/airport-api/internal/auth"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthTestRouter(t *testing.T, tokens *auth.Manager) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	authed := engine.Group("/", Auth(tokens))
	authed.GET("/me", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": currentUserID(c), "email": currentUserEmail(c)})
	})
	authed.POST("/admin", AdminOnly(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return engine
}

func TestAuth_missingHeader(t *testing.T) {
	tokens := auth.NewManager("secret", time.Hour)
	engine := newAuthTestRouter(t, tokens)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest("GET", "/me", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_malformedToken(t *testing.T) {
	tokens := auth.NewManager("secret", time.Hour)
	engine := newAuthTestRouter(t, tokens)

	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_wrongSecret(t *testing.T) {
	other := auth.NewManager("another-secret", time.Hour)
	token, err := other.Issue(1, "user@example.com", false)
	require.NoError(t, err)

	tokens := auth.NewManager("secret", time.Hour)
	engine := newAuthTestRouter(t, tokens)

	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_expiredToken(t *testing.T) {
	tokens := auth.NewManager("secret", -time.Minute)
	token, err := tokens.Issue(1, "user@example.com", false)
	require.NoError(t, err)

	engine := newAuthTestRouter(t, tokens)

	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_validToken(t *testing.T) {
	tokens := auth.NewManager("secret", time.Hour)
	token, err := tokens.Issue(42, "user@example.com", false)
	require.NoError(t, err)

	engine := newAuthTestRouter(t, tokens)

	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":42`)
	assert.Contains(t, w.Body.String(), "user@example.com")
}

func TestAdminOnly_nonStaff(t *testing.T) {
	tokens := auth.NewManager("secret", time.Hour)
	token, err := tokens.Issue(42, "user@example.com", false)
	require.NoError(t, err)

	engine := newAuthTestRouter(t, tokens)

	req := httptest.NewRequest("POST", "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAdminOnly_staff(t *testing.T) {
	tokens := auth.NewManager("secret", time.Hour)
	token, err := tokens.Issue(1, "admin@example.com", true)
	require.NoError(t, err)

	engine := newAuthTestRouter(t, tokens)

	req := httptest.NewRequest("POST", "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestIPLimiters_evict(t *testing.T) {
	limiters := newIPLimiters(1, 2)

	limiters.allow("10.0.0.1")
	limiters.allow("10.0.0.2")
	assert.Len(t, limiters.clients, 2)

	// Backdate one client past the idle cutoff; only it gets swept.
	limiters.clients["10.0.0.1"].lastSeen = time.Now().Add(-10 * time.Minute)
	limiters.evict(3 * time.Minute)

	assert.Len(t, limiters.clients, 1)
	assert.Contains(t, limiters.clients, "10.0.0.2")

	// A swept client starts over with a fresh bucket.
	assert.True(t, limiters.allow("10.0.0.1"))
}

func TestRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.POST("/login", RateLimit(1, 2), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest("POST", "/login", nil))
		codes = append(codes, w.Code)
	}

	assert.Equal(t, http.StatusOK, codes[0])
	assert.Equal(t, http.StatusOK, codes[1])
	assert.Equal(t, http.StatusTooManyRequests, codes[2])
}
