package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/wyfcoding/orderdesk/internal/refdata/application"
)

type orderRequest struct {
	BlotterID      int64           `json:"blotterId" binding:"required"`
	SecurityID     int64           `json:"securityId" binding:"required"`
	Quantity       decimal.Decimal `json:"quantity" binding:"required"`
	OrderTimestamp time.Time       `json:"orderTimestamp" binding:"required"`
	OrderTypeID    int64           `json:"orderTypeId" binding:"required"`
	OrderStatusID  int64           `json:"orderStatusId" binding:"required"`
	Version        int64           `json:"version"`
}

// ListOrders 列出订单及其关联实体
func (h *Handler) ListOrders(c *gin.Context) {
	orders, err := h.orders.ListOrders(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

// CreateOrder 创建订单
func (h *Handler) CreateOrder(c *gin.Context) {
	var req orderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := h.orders.CreateOrder(c.Request.Context(), application.CreateOrderCommand{
		BlotterID:      req.BlotterID,
		SecurityID:     req.SecurityID,
		Quantity:       req.Quantity,
		OrderTimestamp: req.OrderTimestamp,
		OrderTypeID:    req.OrderTypeID,
		OrderStatusID:  req.OrderStatusID,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

// UpdateOrder 更新订单，body 必须携带最后观察到的版本号
func (h *Handler) UpdateOrder(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req orderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Version <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "version is required on update"})
		return
	}

	order, err := h.orders.UpdateOrder(c.Request.Context(), application.UpdateOrderCommand{
		ID:             id,
		BlotterID:      req.BlotterID,
		SecurityID:     req.SecurityID,
		Quantity:       req.Quantity,
		OrderTimestamp: req.OrderTimestamp,
		OrderTypeID:    req.OrderTypeID,
		OrderStatusID:  req.OrderStatusID,
		Version:        req.Version,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// DeleteOrder 删除订单，versionId 查询参数携带最后观察到的版本号
func (h *Handler) DeleteOrder(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	version, ok := queryVersion(c)
	if !ok {
		return
	}

	if err := h.orders.DeleteOrder(c.Request.Context(), id, version); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
