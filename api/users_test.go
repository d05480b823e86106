package api

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/avshorin/airport-api/internal/service/users"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestUserHandler_register_shortPassword(t *testing.T) {
	gin.SetMode(gin.TestMode)
	// Password validation runs before any store access.
	handler := NewUserHandler(users.NewUserService(nil, nil))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	body := []byte(`{"email":"user@example.com","password":"abc"}`)
	c.Request = httptest.NewRequest("POST", "/user/register", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.register(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "password must be at least 5 characters")
}
