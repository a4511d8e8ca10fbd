package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dcms-platform/manifest-service/internal/activities"
	"github.com/dcms-platform/manifest-service/internal/application"
	"github.com/dcms-platform/manifest-service/internal/pipeline"
	"github.com/dcms-platform/manifest-service/internal/workflows"
	"github.com/dcms-platform/manifest-service/pkg/cloudevents"
	"github.com/dcms-platform/manifest-service/pkg/kafka"
	"github.com/dcms-platform/manifest-service/pkg/logging"
	"github.com/dcms-platform/manifest-service/pkg/metrics"
	"github.com/dcms-platform/manifest-service/pkg/mongodb"
	"github.com/dcms-platform/manifest-service/pkg/temporal"

	mongoRepo "github.com/dcms-platform/manifest-service/internal/infrastructure/mongodb"
)

const serviceName = "manifest-worker"

func main() {
	logger := logging.New(logging.DefaultConfig(serviceName))
	logger.SetDefault()

	logger.Info("Starting manifest-service worker")

	config := loadConfig()
	ctx := context.Background()

	// Initialize Prometheus metrics
	m := metrics.New(metrics.DefaultConfig(serviceName))

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

	// Initialize repository and application service
	repo := mongoRepo.NewManifestRepository(mongoClient.Database())
	pipe := pipeline.New(logger, pipeline.LoggerNotifier{Logger: logger}).WithMetrics(m)
	manifestService := application.NewManifestApplicationService(
		repo,
		pipe,
		instrumentedProducer,
		eventFactory,
		m,
		logger,
	)

	// Initialize Temporal client
	temporalClient, err := temporal.NewClient(ctx, config.Temporal)
	if err != nil {
		logger.WithError(err).Error("Failed to create Temporal client")
		os.Exit(1)
	}
	defer temporalClient.Close()
	logger.Info("Connected to Temporal", "hostPort", config.Temporal.HostPort)

	// Create activities
	manifestActivities := activities.NewManifestActivities(manifestService, logger)

	// Create worker
	workerOpts := temporal.DefaultWorkerOptions(temporal.TaskQueues.Manifest)
	w := temporalClient.NewWorker(workerOpts)

	// Register workflows
	w.RegisterWorkflow(workflows.ManifestBuildWorkflow)
	w.RegisterWorkflow(workflows.SpecialManifestBuildWorkflow)
	logger.Info("Registered workflows",
		"workflows", []string{temporal.WorkflowNames.ManifestBuild, temporal.WorkflowNames.SpecialManifestBuild})

	// Register activities
	w.RegisterActivity(manifestActivities.BuildManifest)
	w.RegisterActivity(manifestActivities.BuildSpecialManifest)
	logger.Info("Registered activities")

	// Start worker in background
	go func() {
		if err := w.Run(nil); err != nil {
			logger.WithError(err).Error("Worker failed")
			os.Exit(1)
		}
	}()
	logger.Info("Worker started", "taskQueue", temporal.TaskQueues.Manifest)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down worker...")

	w.Stop()
	logger.Info("Worker stopped")
}

// Config holds application configuration
type Config struct {
	MongoDB  *mongodb.Config
	Kafka    *kafka.Config
	Temporal *temporal.Config
}

func loadConfig() *Config {
	mongoConfig := mongodb.DefaultConfig()
	mongoConfig.URI = getEnv("MONGODB_URI", mongoConfig.URI)
	mongoConfig.Database = getEnv("MONGODB_DATABASE", mongoConfig.Database)

	return &Config{
		MongoDB: mongoConfig,
		Kafka: &kafka.Config{
			Brokers:      []string{getEnv("KAFKA_BROKERS", "localhost:9092")},
			ClientID:     serviceName,
			BatchSize:    100,
			BatchTimeout: 10 * time.Millisecond,
			RequiredAcks: -1,
		},
		Temporal: &temporal.Config{
			HostPort:  getEnv("TEMPORAL_HOST", "localhost:7233"),
			Namespace: getEnv("TEMPORAL_NAMESPACE", "default"),
			Identity:  "manifest-worker",
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
