// Package http 参考数据服务 HTTP 接口
package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/wyfcoding/orderdesk/internal/refdata/application"
	"github.com/wyfcoding/orderdesk/internal/refdata/domain"
)

// Handler 参考数据与订单执行 HTTP 处理器。
// 路由与字段命名保持与控制台前端一致。
type Handler struct {
	refdata   *application.ReferenceDataService
	orders    *application.OrderService
	execution *application.ExecutionService
}

// NewHandler 创建 HTTP 处理器
func NewHandler(
	refdata *application.ReferenceDataService,
	orders *application.OrderService,
	execution *application.ExecutionService,
) *Handler {
	return &Handler{refdata: refdata, orders: orders, execution: execution}
}

// RegisterRoutes 注册路由
func (h *Handler) RegisterRoutes(router *gin.Engine) {
	// 查找表，五张表共用一组处理函数
	for _, kind := range []domain.LookupKind{
		domain.KindSecurityType,
		domain.KindOrderStatus,
		domain.KindOrderType,
		domain.KindTradeType,
		domain.KindDestination,
	} {
		base := "/" + string(kind)
		router.GET(base, h.listLookup(kind))
		router.POST(base, h.createLookup(kind))
		router.PUT(base+"/:id", h.updateLookup(kind))
		router.DELETE(base+"/:id", h.deleteLookup(kind))
	}

	router.GET("/blotter", h.ListBlotters)

	router.GET("/security", h.ListSecurities)
	router.POST("/security", h.CreateSecurity)
	router.PUT("/security/:id", h.UpdateSecurity)
	router.DELETE("/security/:id", h.DeleteSecurity)

	router.GET("/order", h.ListOrders)
	router.POST("/order", h.CreateOrder)
	router.PUT("/order/:id", h.UpdateOrder)
	router.DELETE("/order/:id", h.DeleteOrder)

	router.POST("/block", h.CreateBlock)
	router.POST("/blockAllocation", h.CreateAllocation)
	router.POST("/trade", h.CreateTrade)
}

// writeError 将领域错误映射为 HTTP 状态码
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrVersionConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// pathID 解析路径中的数值主键
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

// queryVersion 解析 versionId 查询参数
func queryVersion(c *gin.Context) (int64, bool) {
	version, err := strconv.ParseInt(c.Query("versionId"), 10, 64)
	if err != nil || version <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid versionId"})
		return 0, false
	}
	return version, true
}

type lookupRequest struct {
	Abbreviation string `json:"abbreviation" binding:"required"`
	Description  string `json:"description" binding:"required"`
	Version      int64  `json:"version"`
}

func (h *Handler) listLookup(kind domain.LookupKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		entries, err := h.refdata.ListLookup(c.Request.Context(), kind)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, entries)
	}
}

func (h *Handler) createLookup(kind domain.LookupKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req lookupRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		entry, err := h.refdata.CreateLookup(c.Request.Context(), kind, &domain.LookupEntry{
			Abbreviation: req.Abbreviation,
			Description:  req.Description,
		})
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, entry)
	}
}

func (h *Handler) updateLookup(kind domain.LookupKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}

		var req lookupRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		entry, err := h.refdata.UpdateLookup(c.Request.Context(), kind, &domain.LookupEntry{
			ID:           id,
			Abbreviation: req.Abbreviation,
			Description:  req.Description,
			Version:      req.Version,
		})
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, entry)
	}
}

func (h *Handler) deleteLookup(kind domain.LookupKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		version, ok := queryVersion(c)
		if !ok {
			return
		}

		if err := h.refdata.DeleteLookup(c.Request.Context(), kind, id, version); err != nil {
			writeError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// ListBlotters 列出交易簿
func (h *Handler) ListBlotters(c *gin.Context) {
	blotters, err := h.refdata.ListBlotters(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, blotters)
}

type securityRequest struct {
	Ticker         string `json:"ticker" binding:"required"`
	Description    string `json:"description"`
	SecurityTypeID int64  `json:"securityTypeId" binding:"required"`
	Version        int64  `json:"version"`
}

// ListSecurities 列出证券
func (h *Handler) ListSecurities(c *gin.Context) {
	securities, err := h.refdata.ListSecurities(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, securities)
}

// CreateSecurity 创建证券
func (h *Handler) CreateSecurity(c *gin.Context) {
	var req securityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	security, err := h.refdata.CreateSecurity(c.Request.Context(), &domain.Security{
		Ticker:         req.Ticker,
		Description:    req.Description,
		SecurityTypeID: req.SecurityTypeID,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, security)
}

// UpdateSecurity 更新证券
func (h *Handler) UpdateSecurity(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req securityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	security, err := h.refdata.UpdateSecurity(c.Request.Context(), &domain.Security{
		ID:             id,
		Ticker:         req.Ticker,
		Description:    req.Description,
		SecurityTypeID: req.SecurityTypeID,
		Version:        req.Version,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, security)
}

// DeleteSecurity 删除证券
func (h *Handler) DeleteSecurity(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	version, ok := queryVersion(c)
	if !ok {
		return
	}

	if err := h.refdata.DeleteSecurity(c.Request.Context(), id, version); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
