package api

import (
	"net/http"

	"github.com/avshorin/airport-api/internal/service/catalog"
	"github.com/gin-gonic/gin"
)

type AirportHandler struct {
	service catalog.AirportUseCase
}

type airportRequest struct {
	Name           string `json:"name" binding:"required"`
	ClosestBigCity string `json:"closest_big_city" binding:"required"`
}

func NewAirportHandler(service catalog.AirportUseCase) *AirportHandler {
	return &AirportHandler{service: service}
}

func (h *AirportHandler) Register(router *gin.RouterGroup, adminOnly gin.HandlerFunc) {
	router.GET("", h.list)
	router.GET("/:id", h.get)
	router.POST("", adminOnly, h.create)
	router.PUT("/:id", adminOnly, h.update)
	router.DELETE("/:id", adminOnly, h.delete)
}

func (h *AirportHandler) list(c *gin.Context) {
	airports, err := h.service.ListAirports(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	out := make([]airportResponse, 0, len(airports))
	for _, a := range airports {
		out = append(out, newAirportResponse(a))
	}
	c.JSON(http.StatusOK, out)
}

func (h *AirportHandler) get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	airport, err := h.service.GetAirport(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newAirportResponse(*airport))
}

func (h *AirportHandler) create(c *gin.Context) {
	var req airportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	airport, err := h.service.CreateAirport(c.Request.Context(), req.Name, req.ClosestBigCity)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newAirportResponse(*airport))
}

func (h *AirportHandler) update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req airportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	airport, err := h.service.UpdateAirport(c.Request.Context(), id, req.Name, req.ClosestBigCity)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newAirportResponse(*airport))
}

func (h *AirportHandler) delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.service.DeleteAirport(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
