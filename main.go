package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"ecommerce-api/config"
	"ecommerce-api/controllers"
	"ecommerce-api/database"
	"ecommerce-api/middlewares"
	"ecommerce-api/payments"
	"ecommerce-api/rabbitmq"
	"ecommerce-api/services"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}
	if cfg.JWTSecret == "" {
		logger.Fatal("JWT_SECRET is required")
	}

	if err := database.InitDB(cfg.DSN()); err != nil {
		logger.Fatal("database initialization failed", zap.Error(err))
	}
	defer database.CloseDB()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.EnsureSchema(ctx, database.DB); err != nil {
		cancel()
		logger.Fatal("schema bootstrap failed", zap.Error(err))
	}
	cancel()

	// Event publishing is optional; the checkout flow works without a broker.
	var events services.EventPublisher
	if cfg.RabbitMQURL != "" {
		rmq, err := rabbitmq.NewRabbitMQ(cfg)
		if err != nil {
			logger.Fatal("rabbitmq initialization failed", zap.Error(err))
		}
		defer rmq.Close()

		if err := rmq.SetupQueues(); err != nil {
			logger.Fatal("rabbitmq queue setup failed", zap.Error(err))
		}
		events = rmq
	}

	var gateway *payments.Client
	if cfg.RazorpayConfigured() {
		gateway, err = payments.NewClient(cfg.RazorpayKeyID, cfg.RazorpayKeySecret)
		if err != nil {
			logger.Fatal("payment gateway initialization failed", zap.Error(err))
		}
	} else {
		logger.Warn("razorpay credentials not configured, payment routes disabled")
	}

	orderService := services.NewOrderService(database.DB, logger, events)

	orderCtl := controllers.NewOrderController(orderService, logger)
	adminCtl := controllers.NewAdminController(orderService, logger)
	paymentCtl := controllers.NewPaymentController(gateway, logger)
	adminAuthCtl := controllers.NewAdminAuthController(cfg, logger)

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.PrometheusMiddleware())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.POST("/payments/razorpay/order", paymentCtl.CreateRazorpayOrder)

	r.POST("/auth/admin/login", adminAuthCtl.Login)
	r.POST("/auth/admin/logout", adminAuthCtl.Logout)

	authGroup := r.Group("/")
	authGroup.Use(middlewares.AuthMiddleware(cfg.JWTSecret))
	{
		authGroup.POST("/orders", orderCtl.CreateOrder)
		authGroup.GET("/orders", orderCtl.GetMyOrders)
		authGroup.GET("/orders/:id", orderCtl.GetMyOrderByID)
	}

	adminGroup := r.Group("/admin")
	adminGroup.Use(middlewares.AuthMiddleware(cfg.JWTSecret), middlewares.AdminOnly())
	{
		adminGroup.GET("/orders", adminCtl.GetOrders)
		adminGroup.GET("/orders/:id", adminCtl.GetOrderByID)
		adminGroup.PUT("/orders/:id/status", adminCtl.UpdateOrderStatus)
	}

	addr := ":" + cfg.Port
	logger.Info("starting server", zap.String("addr", addr))
	if err := r.Run(addr); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}
