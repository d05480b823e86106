package api

import (
	"net/http"

	"github.com/avshorin/airport-api/internal/service/users"
	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	service users.UserUseCase
}

type registerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type updateProfileRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func NewUserHandler(service users.UserUseCase) *UserHandler {
	return &UserHandler{service: service}
}

// RegisterPublic mounts the endpoints that issue credentials; RegisterMe
// mounts the profile endpoints behind auth.
func (h *UserHandler) RegisterPublic(router *gin.RouterGroup, loginLimit gin.HandlerFunc) {
	router.POST("/register", h.register)
	router.POST("/login", loginLimit, h.login)
}

func (h *UserHandler) RegisterMe(router *gin.RouterGroup) {
	router.GET("/me", h.me)
	router.PUT("/me", h.updateMe)
}

func (h *UserHandler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.service.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, userResponse{ID: user.ID, Email: user.Email, IsStaff: user.IsStaff})
}

func (h *UserHandler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

func (h *UserHandler) me(c *gin.Context) {
	user, err := h.service.GetByID(c.Request.Context(), currentUserID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, userResponse{ID: user.ID, Email: user.Email, IsStaff: user.IsStaff})
}

func (h *UserHandler) updateMe(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.service.UpdateProfile(c.Request.Context(), currentUserID(c), req.Email, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, userResponse{ID: user.ID, Email: user.Email, IsStaff: user.IsStaff})
}
