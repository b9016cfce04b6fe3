package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"mollie-bridge/internal/config"
	"mollie-bridge/internal/events"
	"mollie-bridge/internal/handlers"
	"mollie-bridge/internal/kafka"
	"mollie-bridge/internal/logger"
	"mollie-bridge/internal/metrics"
	"mollie-bridge/internal/middleware"
	"mollie-bridge/internal/models"
	"mollie-bridge/internal/mollie"
	rediswrap "mollie-bridge/internal/redis"
	"mollie-bridge/internal/services"
	"mollie-bridge/internal/settings"
	"mollie-bridge/internal/storage"
)

// Global logger instance
var log *logger.Logger

func main() {
	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		runMigration()
		return
	}

	log = logger.NewLogger()
	defer log.Close()

	if err := godotenv.Load(); err != nil {
		log.Warn("ENV", "Error loading .env file, using environment variables")
	}

	log.LogProcess("STARTUP", "Mollie bridge starting up...")

	cfg := config.Load()
	log.Info("CONFIG", "Configuration loaded successfully")

	log.LogProcess("DATABASE", "Initializing MySQL database...")
	store, err := storage.NewMySQLStore(cfg.Database, log)
	if err != nil {
		log.Fatal("DATABASE", "Failed to initialize MySQL: "+err.Error())
	}
	defer store.Close()

	log.LogProcess("KAFKA", "Initializing Kafka producer...")
	kafkaProducer, err := kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.MockMode, log)
	if err != nil {
		log.Fatal("KAFKA", "Failed to create Kafka producer: "+err.Error())
	}
	defer kafkaProducer.Close()

	log.LogProcess("KAFKA", "Initializing erasure consumer...")
	erasureConsumer, err := kafka.NewErasureConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID)
	if err != nil {
		log.Fatal("KAFKA", "Failed to create Kafka consumer: "+err.Error())
	}
	defer erasureConsumer.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
	})
	flash := rediswrap.NewFlash(redisClient)
	log.LogProcess("REDIS", "Redis flash store initialized")

	mollieClient, err := mollie.NewClient(cfg.Mollie, log)
	if err != nil {
		log.Fatal("MOLLIE", "Failed to initialize Mollie client: "+err.Error())
	}

	bridgeMetrics := metrics.NewBridgeMetrics(prometheus.DefaultRegisterer)

	dispatcher := events.NewDispatcher(kafkaProducer, log)

	callbackService := services.NewCallbackService(mollieClient, log, bridgeMetrics)
	customerService := services.NewCustomerService(store, mollieClient, log, bridgeMetrics)
	log.LogProcess("SERVICE", "Callback and customer services initialized")

	assembler := settings.NewAssembler(settings.NewStaticAttributeProvider([]settings.Choice{
		{Label: "mollie.payment.config.payment_methods.category.choice.none", Value: "none"},
		{Label: "mollie.payment.config.payment_methods.category.choice.meal", Value: "meal_category"},
		{Label: "mollie.payment.config.payment_methods.category.choice.eco", Value: "eco_category"},
		{Label: "mollie.payment.config.payment_methods.category.choice.gift", Value: "gift_category"},
	}))

	callbackHandler := handlers.NewCallbackHandler(
		store, callbackService, dispatcher, flash,
		cfg.Checkout.CompletionURL, cfg.Checkout.SessionCookie, log,
	)
	settingsHandler := handlers.NewSettingsHandler(store, assembler)
	customerHandler := handlers.NewCustomerHandler(customerService)
	log.LogProcess("HANDLER", "All handlers initialized")

	// Erasure requests arrive out of band from the host platform.
	go func() {
		log.LogKafka("START", "customer-erasure", "Starting erasure consumer goroutine")
		err := erasureConsumer.ConsumeErasures(context.Background(), func(event *models.ErasureEvent) error {
			return customerService.RemoveCustomer(context.Background(), nil, event.ShopReference)
		})
		if err != nil && err != context.Canceled {
			log.Error("KAFKA", "Consumer error: "+err.Error())
		}
	}()

	router := setupRouter(store, callbackHandler, settingsHandler, customerHandler)
	log.LogProcess("ROUTER", "HTTP router configured")

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.LogProcess("SERVER", "Starting HTTP server on "+cfg.Server.Port)
		log.Info("STARTUP", "Mollie bridge is ready to accept requests")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("SERVER", "Server failed to start: "+err.Error())
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Warn("SHUTDOWN", "Received shutdown signal, initiating graceful shutdown...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("SHUTDOWN", "Server forced to shutdown: "+err.Error())
	}

	log.Info("SHUTDOWN", "Mollie bridge shutdown completed successfully")
}

func setupRouter(
	store storage.Store,
	callbackHandler *handlers.CallbackHandler,
	settingsHandler *handlers.SettingsHandler,
	customerHandler *handlers.CustomerHandler,
) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	router.Use(middleware.RequestID())
	router.Use(middleware.EnhancedLogger(log))
	router.Use(middleware.Recovery(log))
	router.Use(middleware.CORS())
	router.Use(middleware.RateLimit(log))
	router.Use(middleware.SecurityHeaders(log))

	router.GET("/health", func(c *gin.Context) {
		status := "healthy"
		code := http.StatusOK
		if err := store.HealthCheck(); err != nil {
			status = "degraded"
			code = http.StatusServiceUnavailable
		}

		c.JSON(code, gin.H{
			"status":    status,
			"timestamp": time.Now().UTC(),
			"service":   "mollie-bridge",
			"version":   "1.0.0",
		})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Provider callback landing; shoppers return here after payment.
	router.GET("/return/:accessIdentifier", callbackHandler.HandleReturn)
	router.POST("/return/:accessIdentifier", callbackHandler.HandleReturn)
	router.GET("/notes", callbackHandler.GetNotes)

	v1 := router.Group("/api/v1")
	{
		methods := v1.Group("/methods")
		{
			methods.GET("", settingsHandler.ListMethods)
			methods.GET("/:id/form", settingsHandler.GetMethodForm)
		}

		customers := v1.Group("/customers")
		{
			customers.POST("", customerHandler.CreateOrGet)
			customers.GET("/:shopReference", customerHandler.GetSaved)
			customers.DELETE("/:shopReference", customerHandler.Remove)
		}

		v1.GET("/mollie-customers/:mollieReference", customerHandler.GetShopReference)
	}

	return router
}
