// OrderDesk 资源服务主程序
// 功能：提供参考数据、订单与执行资源的 REST 服务
// 架构：基于 DDD + Gin + GORM + Kafka
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/wyfcoding/orderdesk/internal/refdata/application"
	"github.com/wyfcoding/orderdesk/internal/refdata/domain"
	"github.com/wyfcoding/orderdesk/internal/refdata/infrastructure/messaging"
	"github.com/wyfcoding/orderdesk/internal/refdata/infrastructure/persistence/mysql"
	httphandler "github.com/wyfcoding/orderdesk/internal/refdata/interfaces/http"
	"github.com/wyfcoding/orderdesk/pkg/config"
	"github.com/wyfcoding/orderdesk/pkg/db"
	"github.com/wyfcoding/orderdesk/pkg/logger"
	"github.com/wyfcoding/orderdesk/pkg/metrics"
	"github.com/wyfcoding/orderdesk/pkg/middleware"
	"github.com/wyfcoding/orderdesk/pkg/mq"
)

func main() {
	// 1. 加载配置
	configPath := flag.String("config", "configs/orderdesk/config.toml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 2. 初始化日志
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

	ctx := context.Background()
	logger.Info(ctx, "Starting OrderDesk",
		"service", cfg.ServiceName,
		"version", cfg.Version,
		"environment", cfg.Environment,
	)

	// 3. 初始化数据库
	dbCfg := db.Config{
		Driver:             cfg.Database.Driver,
		DSN:                cfg.Database.DSN,
		MaxOpenConns:       cfg.Database.MaxOpenConns,
		MaxIdleConns:       cfg.Database.MaxIdleConns,
		ConnMaxLifetime:    cfg.Database.ConnMaxLifetime,
		LogEnabled:         cfg.Database.LogEnabled,
		SlowQueryThreshold: cfg.Database.SlowQueryThreshold,
	}
	database, err := db.Init(dbCfg)
	if err != nil {
		logger.Fatal(ctx, "Failed to initialize database", "error", err)
	}
	defer database.Close()

	// 4. 迁移数据表
	if err := mysql.AutoMigrate(database); err != nil {
		logger.Fatal(ctx, "Failed to migrate database schema", "error", err)
	}

	// 5. 初始化事件发布器
	var publisher domain.EventPublisher
	if cfg.Kafka.Enabled {
		producer, err := mq.NewProducer(mq.KafkaConfig{
			Brokers:      cfg.Kafka.Brokers,
			MaxRetries:   cfg.Kafka.MaxRetries,
			RetryBackoff: cfg.Kafka.RetryBackoff,
		})
		if err != nil {
			logger.Fatal(ctx, "Failed to create Kafka producer", "error", err)
		}
		defer producer.Close()
		publisher = messaging.NewKafkaPublisher(producer, cfg.Kafka.Topic)
	} else {
		publisher = messaging.NewNoopPublisher()
	}

	// 6. 初始化指标
	metricsInstance := metrics.New(cfg.ServiceName)
	if err := metricsInstance.Register(); err != nil {
		logger.Fatal(ctx, "Failed to register metrics", "error", err)
	}
	if cfg.Metrics.Enabled {
		go func() {
			if err := metrics.StartHTTPServer(cfg.Metrics.Port, cfg.Metrics.Path); err != nil {
				logger.Error(ctx, "Metrics HTTP server error", "error", err)
			}
		}()
	}

	// 7. 初始化仓储
	lookupRepo := mysql.NewLookupRepository(database)
	blotterRepo := mysql.NewBlotterRepository(database)
	securityRepo := mysql.NewSecurityRepository(database)
	orderRepo := mysql.NewOrderRepository(database)
	executionRepo := mysql.NewExecutionRepository(database)

	// 8. 初始化应用服务
	log := logger.Get()
	refdataService := application.NewReferenceDataService(lookupRepo, blotterRepo, securityRepo, log)
	orderService := application.NewOrderService(orderRepo, publisher, metricsInstance, log)
	executionService := application.NewExecutionService(executionRepo, orderRepo, publisher, metricsInstance, log)

	// 9. 创建 HTTP 服务器
	httpServer := createHTTPServer(cfg, metricsInstance, refdataService, orderService, executionService)

	// 10. 启动 HTTP 服务器
	go func() {
		logger.Info(ctx, "Starting HTTP server", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal(ctx, "HTTP server error", "error", err)
		}
	}()

	// 11. 优雅关停
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info(ctx, "Shutting down OrderDesk")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error(ctx, "HTTP server shutdown error", "error", err)
	}

	logger.Info(ctx, "OrderDesk stopped")
}

// createHTTPServer 创建 HTTP 服务器
func createHTTPServer(
	cfg *config.Config,
	m *metrics.Metrics,
	refdataService *application.ReferenceDataService,
	orderService *application.OrderService,
	executionService *application.ExecutionService,
) *http.Server {
	if cfg.Environment == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// 添加中间件
	router.Use(middleware.GinLoggingMiddleware())
	router.Use(middleware.GinRecoveryMiddleware())
	router.Use(middleware.GinCORSMiddleware())
	router.Use(middleware.GinMetricsMiddleware(m))

	// 注册路由
	handler := httphandler.NewHandler(refdataService, orderService, executionService)
	handler.RegisterRoutes(router)

	// 健康检查
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"service":   cfg.ServiceName,
			"timestamp": time.Now().Unix(),
		})
	})

	return &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeout) * time.Second,
	}
}
