// Submit 订单提交工具
// 功能：将状态为 New 的订单逐笔转换为执行链路（Block、BlockAllocation、Trade），
// 全部创建成功后将订单状态置为 Open。遇到首个失败立即停止，不回滚已提交订单。
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	refdomain "github.com/wyfcoding/orderdesk/internal/refdata/domain"
	"github.com/wyfcoding/orderdesk/internal/submission/application"
	"github.com/wyfcoding/orderdesk/internal/submission/infrastructure/client"
	"github.com/wyfcoding/orderdesk/pkg/config"
	"github.com/wyfcoding/orderdesk/pkg/logger"
)

func main() {
	configPath := flag.String("config", "configs/submit/config.toml", "path to config file")
	orderList := flag.String("orders", "", "comma separated order ids to submit")
	allNew := flag.Bool("all-new", false, "submit every order currently in status New")
	timeout := flag.Duration("timeout", 5*time.Minute, "overall batch timeout")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	loggerCfg := logger.Config{
		Level:      cfg.Logger.Level,
		Format:     cfg.Logger.Format,
		Output:     cfg.Logger.Output,
		FilePath:   cfg.Logger.FilePath,
		MaxSize:    cfg.Logger.MaxSize,
		MaxBackups: cfg.Logger.MaxBackups,
		MaxAge:     cfg.Logger.MaxAge,
		Compress:   cfg.Logger.Compress,
		WithCaller: cfg.Logger.WithCaller,
	}
	if err := logger.Init(loggerCfg); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	resourceClient := client.New(client.Config{
		BaseURL: cfg.Client.BaseURL,
		Timeout: time.Duration(cfg.Client.Timeout) * time.Second,
	})

	if err := run(ctx, resourceClient, *orderList, *allNew); err != nil {
		fmt.Fprintf(os.Stderr, "submit failed: %v\n", err)
		os.Exit(1)
	}
}

// run 解析目标订单并执行一次批量提交
func run(ctx context.Context, resourceClient *client.Client, orderList string, allNew bool) error {
	if orderList == "" && !allNew {
		return fmt.Errorf("either -orders or -all-new is required")
	}

	statuses, err := resourceClient.ListOrderStatuses(ctx)
	if err != nil {
		return fmt.Errorf("failed to load order statuses: %w", err)
	}
	resolver := application.NewStatusResolver(statuses)

	newStatusID, err := resolver.Resolve(refdomain.StatusNew)
	if err != nil {
		return err
	}
	openStatusID, err := resolver.Resolve(refdomain.StatusOpen)
	if err != nil {
		return err
	}

	orders, err := resourceClient.ListOrders(ctx)
	if err != nil {
		return fmt.Errorf("failed to load orders: %w", err)
	}

	byID := make(map[int64]*refdomain.Order, len(orders))
	for _, order := range orders {
		byID[order.ID] = order
	}

	var orderIDs []int64
	if allNew {
		for _, order := range application.Visible(orders, newStatusID) {
			orderIDs = append(orderIDs, order.ID)
		}
		if len(orderIDs) == 0 {
			fmt.Println("no orders in status New")
			return nil
		}
	} else {
		orderIDs, err = parseOrderIDs(orderList)
		if err != nil {
			return err
		}
	}

	coordinator := application.NewCoordinator(resourceClient, logger.Get())
	result, err := coordinator.Submit(ctx, orderIDs, byID, openStatusID)
	if err != nil {
		return err
	}

	fmt.Println(result.Summary())
	if !result.OK() {
		os.Exit(2)
	}
	return nil
}

// parseOrderIDs 解析逗号分隔的订单编号列表
func parseOrderIDs(list string) ([]int64, error) {
	parts := strings.Split(list, ",")
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid order id %q: %w", part, err)
		}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("no order ids given")
	}
	return ids, nil
}
