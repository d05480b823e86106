package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/avshorin/airport-api/internal/service/catalog"
	"github.com/gin-gonic/gin"
)

type AirplaneHandler struct {
	service catalog.AirplaneUseCase
}

type airplaneRequest struct {
	Name         string `json:"name" binding:"required"`
	Rows         int    `json:"rows" binding:"required"`
	SeatsInRow   int    `json:"seats_in_row" binding:"required"`
	AirplaneType int64  `json:"airplane_type" binding:"required"`
}

func NewAirplaneHandler(service catalog.AirplaneUseCase) *AirplaneHandler {
	return &AirplaneHandler{service: service}
}

func (h *AirplaneHandler) Register(router *gin.RouterGroup, adminOnly gin.HandlerFunc) {
	router.GET("", h.list)
	router.GET("/:id", h.get)
	router.POST("", adminOnly, h.create)
	router.PUT("/:id", adminOnly, h.update)
	router.DELETE("/:id", adminOnly, h.delete)
	router.POST("/:id/upload-image", adminOnly, h.uploadImage)
}

// parseTypeIDs turns "1,2,3" into ids; empty input means no filtering.
func parseTypeIDs(raw string) ([]int64, error) {
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (h *AirplaneHandler) list(c *gin.Context) {
	typeIDs, err := parseTypeIDs(c.Query("airplane_type"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid airplane_type filter"})
		return
	}

	airplanes, err := h.service.ListAirplanes(c.Request.Context(), typeIDs)
	if err != nil {
		writeError(c, err)
		return
	}

	out := make([]airplaneListResponse, 0, len(airplanes))
	for _, a := range airplanes {
		out = append(out, newAirplaneListResponse(a))
	}
	c.JSON(http.StatusOK, out)
}

func (h *AirplaneHandler) get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	airplane, err := h.service.GetAirplane(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newAirplaneDetailResponse(*airplane))
}

func (h *AirplaneHandler) create(c *gin.Context) {
	var req airplaneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	airplane, err := h.service.CreateAirplane(c.Request.Context(), req.Name, req.Rows, req.SeatsInRow, req.AirplaneType)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newAirplaneDetailResponse(*airplane))
}

func (h *AirplaneHandler) update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req airplaneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	airplane, err := h.service.UpdateAirplane(c.Request.Context(), id, req.Name, req.Rows, req.SeatsInRow, req.AirplaneType)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newAirplaneDetailResponse(*airplane))
}

func (h *AirplaneHandler) delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.service.DeleteAirplane(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AirplaneHandler) uploadImage(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	defer src.Close()

	airplane, err := h.service.AttachAirplaneImage(c.Request.Context(), id, file.Filename, src)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newAirplaneDetailResponse(*airplane))
}
