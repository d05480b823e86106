package api

import (
	"net/http"

	"github.com/avshorin/airport-api/internal/service/catalog"
	"github.com/gin-gonic/gin"
)

type AirplaneTypeHandler struct {
	service catalog.AirplaneTypeUseCase
}

type airplaneTypeRequest struct {
	Name string `json:"name" binding:"required"`
}

func NewAirplaneTypeHandler(service catalog.AirplaneTypeUseCase) *AirplaneTypeHandler {
	return &AirplaneTypeHandler{service: service}
}

func (h *AirplaneTypeHandler) Register(router *gin.RouterGroup, adminOnly gin.HandlerFunc) {
	router.GET("", h.list)
	router.GET("/:id", h.get)
	router.POST("", adminOnly, h.create)
	router.PUT("/:id", adminOnly, h.update)
	router.DELETE("/:id", adminOnly, h.delete)
}

func (h *AirplaneTypeHandler) list(c *gin.Context) {
	types, err := h.service.ListAirplaneTypes(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	out := make([]airplaneTypeResponse, 0, len(types))
	for _, t := range types {
		out = append(out, airplaneTypeResponse{ID: t.ID, Name: t.Name})
	}
	c.JSON(http.StatusOK, out)
}

func (h *AirplaneTypeHandler) get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	t, err := h.service.GetAirplaneType(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, airplaneTypeResponse{ID: t.ID, Name: t.Name})
}

func (h *AirplaneTypeHandler) create(c *gin.Context) {
	var req airplaneTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	t, err := h.service.CreateAirplaneType(c.Request.Context(), req.Name)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, airplaneTypeResponse{ID: t.ID, Name: t.Name})
}

func (h *AirplaneTypeHandler) update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req airplaneTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	t, err := h.service.UpdateAirplaneType(c.Request.Context(), id, req.Name)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, airplaneTypeResponse{ID: t.ID, Name: t.Name})
}

func (h *AirplaneTypeHandler) delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.service.DeleteAirplaneType(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
