package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/dcms-platform/manifest-service/internal/application"
	"github.com/dcms-platform/manifest-service/internal/pipeline"
	"github.com/dcms-platform/manifest-service/pkg/cloudevents"
	"github.com/dcms-platform/manifest-service/pkg/errors"
	"github.com/dcms-platform/manifest-service/pkg/kafka"
	"github.com/dcms-platform/manifest-service/pkg/logging"
	"github.com/dcms-platform/manifest-service/pkg/metrics"
	"github.com/dcms-platform/manifest-service/pkg/middleware"
	"github.com/dcms-platform/manifest-service/pkg/mongodb"

	mongoRepo "github.com/dcms-platform/manifest-service/internal/infrastructure/mongodb"
)

const serviceName = "manifest-service"

func main() {
	logger := logging.New(logging.DefaultConfig(serviceName))
	logger.SetDefault()

	logger.Info("Starting manifest-service API")

	config := loadConfig()
	ctx := context.Background()

	// Initialize Prometheus metrics
	metricsConfig := metrics.DefaultConfig(serviceName)
	m := metrics.New(metricsConfig)
	logger.Info("Metrics initialized")

	// Initialize MongoDB
	mongoClient, err := mongodb.NewClient(ctx, config.MongoDB)
	if err != nil {
		logger.WithError(err).Error("Failed to connect to MongoDB")
		os.Exit(1)
	}
	defer mongoClient.Close(ctx)
	logger.Info("Connected to MongoDB", "database", config.MongoDB.Database)

	// Initialize Kafka producer with instrumentation
	kafkaProducer := kafka.NewProducer(config.Kafka)
	instrumentedProducer := kafka.NewInstrumentedProducer(kafkaProducer, m, logger)
	defer instrumentedProducer.Close()
	logger.Info("Kafka producer initialized", "brokers", config.Kafka.Brokers)

	// Initialize CloudEvents factory
	eventFactory := cloudevents.NewEventFactory(cloudevents.SourceManifest)

	// Initialize repository
	repo := mongoRepo.NewManifestRepository(mongoClient.Database())

	// Initialize the build pipeline with progress logging
	pipe := pipeline.New(logger, pipeline.LoggerNotifier{Logger: logger}).WithMetrics(m)

	// Initialize application service
	manifestService := application.NewManifestApplicationService(
		repo,
		pipe,
		instrumentedProducer,
		eventFactory,
		m,
		logger,
	)

	// Setup Gin router with middleware
	router := gin.New()

	middlewareConfig := middleware.DefaultConfig(serviceName, logger.Logger)
	middleware.Setup(router, middlewareConfig)

	router.Use(middleware.MetricsMiddleware(m))

	router.NoRoute(middleware.NoRoute())
	router.NoMethod(middleware.NoMethod())

	// Health check endpoints
	router.GET("/health", middleware.HealthCheck(serviceName))
	router.GET("/ready", middleware.ReadinessCheck(serviceName, func() error {
		return mongoClient.HealthCheck(ctx)
	}))

	// Metrics endpoint
	router.GET("/metrics", middleware.MetricsEndpoint(m))

	// API v1 routes
	api := router.Group("/api/v1/manifests")
	{
		api.POST("", buildManifestHandler(manifestService, logger))
		api.POST("/special", buildSpecialManifestHandler(manifestService, logger))
		api.GET("/:manifestId", getManifestHandler(manifestService, logger))
		api.GET("/center/:centerName", getByCenterHandler(manifestService, logger))
	}

	// Start server
	srv := &http.Server{
		Addr:         config.ServerAddr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	// Graceful shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Error("Server error")
		}
	}()
	logger.Info("Server started", "addr", config.ServerAddr)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("Server forced to shutdown")
	}

	logger.Info("Server stopped")
}

// Config holds application configuration
type Config struct {
	ServerAddr string
	MongoDB    *mongodb.Config
	Kafka      *kafka.Config
}

func loadConfig() *Config {
	mongoConfig := mongodb.DefaultConfig()
	mongoConfig.URI = getEnv("MONGODB_URI", mongoConfig.URI)
	mongoConfig.Database = getEnv("MONGODB_DATABASE", mongoConfig.Database)

	return &Config{
		ServerAddr: getEnv("SERVER_ADDR", ":8007"),
		MongoDB:    mongoConfig,
		Kafka: &kafka.Config{
			Brokers:      []string{getEnv("KAFKA_BROKERS", "localhost:9092")},
			ClientID:     serviceName,
			BatchSize:    100,
			BatchTimeout: 10 * time.Millisecond,
			RequiredAcks: -1,
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// buildManifestRequest is the request body for both build endpoints
type buildManifestRequest struct {
	ManifestID   string                    `json:"manifestId"`
	CenterName   string                    `json:"centerName" binding:"required"`
	CenterType   string                    `json:"centerType"`
	ShippingCost string                    `json:"shippingCost"`
	Orders       []application.OrderRowDTO `json:"orders" binding:"required"`
}

func (r *buildManifestRequest) toCommand() (application.BuildManifestCommand, *errors.AppError) {
	orders, err := application.ToOrderRows(r.Orders)
	if err != nil {
		return application.BuildManifestCommand{}, errors.ErrValidation(err.Error())
	}

	shippingCost := decimal.Decimal{}
	if r.ShippingCost != "" {
		shippingCost, err = decimal.NewFromString(r.ShippingCost)
		if err != nil {
			return application.BuildManifestCommand{}, errors.ErrValidation("invalid shippingCost: not a decimal number")
		}
	}

	return application.BuildManifestCommand{
		ManifestID:   r.ManifestID,
		CenterName:   r.CenterName,
		ShippingCost: shippingCost,
		Orders:       orders,
	}, nil
}

// HTTP Handlers
func buildManifestHandler(service *application.ManifestApplicationService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		var req buildManifestRequest
		if appErr := middleware.BindAndValidate(c, &req); appErr != nil {
			responder.RespondWithAppError(appErr)
			return
		}

		cmd, appErr := req.toCommand()
		if appErr != nil {
			responder.RespondWithAppError(appErr)
			return
		}

		dto, err := service.BuildManifest(c.Request.Context(), cmd)
		if err != nil {
			responder.RespondWithError(err)
			return
		}

		c.JSON(http.StatusCreated, dto)
	}
}

func buildSpecialManifestHandler(service *application.ManifestApplicationService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		var req buildManifestRequest
		if appErr := middleware.BindAndValidate(c, &req); appErr != nil {
			responder.RespondWithAppError(appErr)
			return
		}

		cmd, appErr := req.toCommand()
		if appErr != nil {
			responder.RespondWithAppError(appErr)
			return
		}

		dto, err := service.BuildSpecialManifest(c.Request.Context(), application.BuildSpecialManifestCommand{
			ManifestID:   cmd.ManifestID,
			CenterName:   cmd.CenterName,
			CenterType:   req.CenterType,
			ShippingCost: cmd.ShippingCost,
			Orders:       cmd.Orders,
		})
		if err != nil {
			responder.RespondWithError(err)
			return
		}

		c.JSON(http.StatusCreated, dto)
	}
}

func getManifestHandler(service *application.ManifestApplicationService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		query := application.GetManifestQuery{ManifestID: c.Param("manifestId")}

		dto, err := service.GetManifest(c.Request.Context(), query)
		if err != nil {
			responder.RespondWithError(err)
			return
		}

		c.JSON(http.StatusOK, dto)
	}
}

func getByCenterHandler(service *application.ManifestApplicationService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		limit := 0
		if raw := c.Query("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 0 {
				responder.RespondBadRequest("limit must be a non-negative integer")
				return
			}
			limit = parsed
		}

		query := application.GetByCenterQuery{
			CenterName: c.Param("centerName"),
			Limit:      limit,
		}

		dtos, err := service.GetByCenter(c.Request.Context(), query)
		if err != nil {
			responder.RespondWithError(err)
			return
		}

		c.JSON(http.StatusOK, dtos)
	}
}
