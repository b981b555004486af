package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/wyfcoding/orderdesk/internal/refdata/application"
)

type blockRequest struct {
	SecurityID  int64 `json:"securityId" binding:"required"`
	OrderTypeID int64 `json:"orderTypeId" binding:"required"`
}

type allocationRequest struct {
	OrderID        int64           `json:"orderId" binding:"required"`
	BlockID        int64           `json:"blockId" binding:"required"`
	Quantity       decimal.Decimal `json:"quantity" binding:"required"`
	FilledQuantity decimal.Decimal `json:"filledQuantity"`
}

type tradeRequest struct {
	BlockID        int64           `json:"blockId" binding:"required"`
	DestinationID  *int64          `json:"destinationId"`
	TradeTypeID    *int64          `json:"tradeTypeId"`
	Quantity       decimal.Decimal `json:"quantity" binding:"required"`
	FilledQuantity decimal.Decimal `json:"filledQuantity"`
	Version        int64           `json:"version"`
}

// CreateBlock 创建执行单元
func (h *Handler) CreateBlock(c *gin.Context) {
	var req blockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	block, err := h.execution.CreateBlock(c.Request.Context(), application.CreateBlockCommand{
		SecurityID:  req.SecurityID,
		OrderTypeID: req.OrderTypeID,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, block)
}

// CreateAllocation 创建执行单元份额
func (h *Handler) CreateAllocation(c *gin.Context) {
	var req allocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	alloc, err := h.execution.CreateAllocation(c.Request.Context(), application.CreateAllocationCommand{
		OrderID:        req.OrderID,
		BlockID:        req.BlockID,
		Quantity:       req.Quantity,
		FilledQuantity: req.FilledQuantity,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, alloc)
}

// CreateTrade 创建交易
func (h *Handler) CreateTrade(c *gin.Context) {
	var req tradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	trade, err := h.execution.CreateTrade(c.Request.Context(), application.CreateTradeCommand{
		BlockID:        req.BlockID,
		DestinationID:  req.DestinationID,
		TradeTypeID:    req.TradeTypeID,
		Quantity:       req.Quantity,
		FilledQuantity: req.FilledQuantity,
		Version:        req.Version,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, trade)
}
