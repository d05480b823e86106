package api

import (
	"net/http"

	"github.com/avshorin/airport-api/internal/repository"
	"github.com/avshorin/airport-api/internal/service/catalog"
	"github.com/gin-gonic/gin"
)

type RouteHandler struct {
	service catalog.RouteUseCase
}

type routeRequest struct {
	Source      int64 `json:"source" binding:"required"`
	Destination int64 `json:"destination" binding:"required"`
	Distance    int   `json:"distance" binding:"required"`
}

func NewRouteHandler(service catalog.RouteUseCase) *RouteHandler {
	return &RouteHandler{service: service}
}

func (h *RouteHandler) Register(router *gin.RouterGroup, adminOnly gin.HandlerFunc) {
	router.GET("", h.list)
	router.GET("/:id", h.get)
	router.POST("", adminOnly, h.create)
	router.PUT("/:id", adminOnly, h.update)
	router.DELETE("/:id", adminOnly, h.delete)
}

func (h *RouteHandler) list(c *gin.Context) {
	filter := repository.RouteFilter{
		Source:      c.Query("source"),
		Destination: c.Query("destination"),
	}

	routes, err := h.service.ListRoutes(c.Request.Context(), filter)
	if err != nil {
		writeError(c, err)
		return
	}

	out := make([]routeListResponse, 0, len(routes))
	for _, r := range routes {
		out = append(out, newRouteListResponse(r))
	}
	c.JSON(http.StatusOK, out)
}

func (h *RouteHandler) get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	route, err := h.service.GetRoute(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newRouteDetailResponse(*route))
}

func (h *RouteHandler) create(c *gin.Context) {
	var req routeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	route, err := h.service.CreateRoute(c.Request.Context(), req.Source, req.Destination, req.Distance)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newRouteDetailResponse(*route))
}

func (h *RouteHandler) update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req routeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	route, err := h.service.UpdateRoute(c.Request.Context(), id, req.Source, req.Destination, req.Distance)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newRouteDetailResponse(*route))
}

func (h *RouteHandler) delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.service.DeleteRoute(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
