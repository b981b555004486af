// Package client 资源服务 HTTP 客户端，基于 resty 实现
package client

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	refdomain "github.com/wyfcoding/orderdesk/internal/refdata/domain"
	"github.com/wyfcoding/orderdesk/internal/submission/application"
)

// Config 客户端配置
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client 资源服务的类型化客户端。
// 创建操作返回服务端分配的标识，更新/删除操作转发版本号。
type Client struct {
	http *resty.Client
}

// New 创建资源服务客户端
func New(cfg Config) *Client {
	http := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Content-Type", "application/json")
	return &Client{http: http}
}

// remoteError 将非 2xx 响应转为错误
func remoteError(resp *resty.Response) error {
	return fmt.Errorf("remote call failed: %s %s: %s: %s",
		resp.Request.Method, resp.Request.URL, resp.Status(), resp.String())
}

// ListOrderStatuses 读取订单状态表
func (c *Client) ListOrderStatuses(ctx context.Context) ([]*refdomain.LookupEntry, error) {
	var statuses []*refdomain.LookupEntry
	resp, err := c.http.R().SetContext(ctx).SetResult(&statuses).Get("/orderStatus")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, remoteError(resp)
	}
	return statuses, nil
}

// ListOrders 读取订单及其关联实体
func (c *Client) ListOrders(ctx context.Context) ([]*refdomain.Order, error) {
	var orders []*refdomain.Order
	resp, err := c.http.R().SetContext(ctx).SetResult(&orders).Get("/order")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, remoteError(resp)
	}
	return orders, nil
}

// CreateBlock 创建执行单元，返回服务端分配的 ID
func (c *Client) CreateBlock(ctx context.Context, req application.CreateBlockRequest) (int64, error) {
	var block refdomain.Block
	resp, err := c.http.R().SetContext(ctx).SetBody(req).SetResult(&block).Post("/block")
	if err != nil {
		return 0, err
	}
	if resp.IsError() {
		return 0, remoteError(resp)
	}
	return block.ID, nil
}

// CreateAllocation 创建执行单元份额，返回服务端分配的 ID
func (c *Client) CreateAllocation(ctx context.Context, req application.CreateAllocationRequest) (int64, error) {
	var alloc refdomain.BlockAllocation
	resp, err := c.http.R().SetContext(ctx).SetBody(req).SetResult(&alloc).Post("/blockAllocation")
	if err != nil {
		return 0, err
	}
	if resp.IsError() {
		return 0, remoteError(resp)
	}
	return alloc.ID, nil
}

// CreateTrade 创建交易，返回服务端分配的 ID
func (c *Client) CreateTrade(ctx context.Context, req application.CreateTradeRequest) (int64, error) {
	var trade refdomain.Trade
	resp, err := c.http.R().SetContext(ctx).SetBody(req).SetResult(&trade).Post("/trade")
	if err != nil {
		return 0, err
	}
	if resp.IsError() {
		return 0, remoteError(resp)
	}
	return trade.ID, nil
}

// UpdateOrder 更新订单，body 携带最后观察到的版本号
func (c *Client) UpdateOrder(ctx context.Context, orderID int64, req application.UpdateOrderRequest) error {
	resp, err := c.http.R().SetContext(ctx).SetBody(req).
		Put("/order/" + strconv.FormatInt(orderID, 10))
	if err != nil {
		return err
	}
	if resp.IsError() {
		return remoteError(resp)
	}
	return nil
}

// DeleteOrder 删除订单，versionId 查询参数携带最后观察到的版本号
func (c *Client) DeleteOrder(ctx context.Context, orderID, version int64) error {
	resp, err := c.http.R().SetContext(ctx).
		SetQueryParam("versionId", strconv.FormatInt(version, 10)).
		Delete("/order/" + strconv.FormatInt(orderID, 10))
	if err != nil {
		return err
	}
	if resp.IsError() {
		return remoteError(resp)
	}
	return nil
}
