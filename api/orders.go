package api

import (
	"net/http"
	"strconv"

	"github.com/avshorin/airport-api/internal/service/orders"
	"github.com/gin-gonic/gin"
)

const (
	defaultPageSize = 5
	maxPageSize     = 100
)

type OrderHandler struct {
	service orders.OrderUseCase
}

func NewOrderHandler(service orders.OrderUseCase) *OrderHandler {
	return &OrderHandler{service: service}
}

func (h *OrderHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.GET("/:id", h.get)
	router.POST("", h.create)
}

func (h *OrderHandler) create(c *gin.Context) {
	var input orders.CreateOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := h.service.CreateOrder(c.Request.Context(), currentUserID(c), currentUserEmail(c), input)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newOrderResponse(*order))
}

func (h *OrderHandler) list(c *gin.Context) {
	page, pageSize := pagination(c)

	items, total, err := h.service.ListOrders(c.Request.Context(), currentUserID(c), pageSize, (page-1)*pageSize)
	if err != nil {
		writeError(c, err)
		return
	}

	results := make([]orderResponse, 0, len(items))
	for _, o := range items {
		results = append(results, newOrderResponse(o))
	}
	c.JSON(http.StatusOK, pageResponse{
		Count:    total,
		Page:     page,
		PageSize: pageSize,
		Results:  results,
	})
}

func (h *OrderHandler) get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	order, err := h.service.GetOrder(c.Request.Context(), id, currentUserID(c), currentUserIsStaff(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newOrderResponse(*order))
}

func pagination(c *gin.Context) (page, pageSize int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}

	pageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(defaultPageSize)))
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize
}
