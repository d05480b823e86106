package api

import (
	"net/http"

	"github.com/avshorin/airport-api/internal/service/catalog"
	"github.com/gin-gonic/gin"
)

type CrewHandler struct {
	service catalog.CrewUseCase
}

type crewRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
}

func NewCrewHandler(service catalog.CrewUseCase) *CrewHandler {
	return &CrewHandler{service: service}
}

func (h *CrewHandler) Register(router *gin.RouterGroup, adminOnly gin.HandlerFunc) {
	router.GET("", h.list)
	router.GET("/:id", h.get)
	router.POST("", adminOnly, h.create)
	router.PUT("/:id", adminOnly, h.update)
	router.DELETE("/:id", adminOnly, h.delete)
}

func (h *CrewHandler) list(c *gin.Context) {
	crews, err := h.service.ListCrew(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	out := make([]crewResponse, 0, len(crews))
	for _, cr := range crews {
		out = append(out, crewResponse{ID: cr.ID, FirstName: cr.FirstName, LastName: cr.LastName})
	}
	c.JSON(http.StatusOK, out)
}

func (h *CrewHandler) get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	cr, err := h.service.GetCrew(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, crewResponse{ID: cr.ID, FirstName: cr.FirstName, LastName: cr.LastName})
}

func (h *CrewHandler) create(c *gin.Context) {
	var req crewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cr, err := h.service.CreateCrew(c.Request.Context(), req.FirstName, req.LastName)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, crewResponse{ID: cr.ID, FirstName: cr.FirstName, LastName: cr.LastName})
}

func (h *CrewHandler) update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req crewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cr, err := h.service.UpdateCrew(c.Request.Context(), id, req.FirstName, req.LastName)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, crewResponse{ID: cr.ID, FirstName: cr.FirstName, LastName: cr.LastName})
}

func (h *CrewHandler) delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.service.DeleteCrew(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
