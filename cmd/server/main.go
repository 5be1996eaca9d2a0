package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	_ "github.com/joho/godotenv/autoload"
	"go.uber.org/zap"

	"retailorders/internal/commons"
	"retailorders/internal/config"
	"retailorders/internal/delivery"
	awsinfra "retailorders/internal/infrastructure/aws"
	"retailorders/internal/infrastructure/logger"
	"retailorders/internal/infrastructure/mysql"
	"retailorders/internal/infrastructure/s3"
	"retailorders/internal/order"
	"retailorders/internal/product"
	"retailorders/internal/server"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log.Level)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer zapLogger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	awsCfg, err := awsinfra.NewConfig(ctx, cfg.AWS)
	if err != nil {
		zapLogger.Fatal("loading aws config", zap.Error(err))
	}

	if cfg.Database.SecretName != "" {
		secret, err := awsinfra.NewSecretsReader(secretsmanager.NewFromConfig(awsCfg)).GetDatabaseSecret(ctx, cfg.Database.SecretName)
		if err != nil {
			zapLogger.Fatal("reading database secret", zap.String("secret", cfg.Database.SecretName), zap.Error(err))
		}
		cfg.Database = secret.Apply(cfg.Database)
		zapLogger.Info("database credentials loaded from secret", zap.String("secret", cfg.Database.SecretName))
	}

	db, err := mysql.NewConnection(cfg.Database)
	if err != nil {
		zapLogger.Fatal("connecting to database", zap.Error(err))
	}
	defer db.Close()
	zapLogger.Info("database connected")

	uploader := s3.NewUploader(awss3.NewFromConfig(awsCfg), cfg.Storage.Bucket, cfg.AWS.Region, cfg.Storage.PublicBaseURL)

	publisher, closePublisher, err := newPublisher(cfg, awsCfg)
	if err != nil {
		zapLogger.Fatal("creating event publisher", zap.String("broker", cfg.Events.Broker), zap.Error(err))
	}
	defer closePublisher()
	zapLogger.Info("event publisher ready", zap.String("broker", cfg.Events.Broker))

	estimator := delivery.New(cfg.Delivery.StatusDays, delivery.WithOrderIDPrefix(cfg.Delivery.OrderIDPrefix))

	productCtrl := product.NewModule(db, zapLogger)
	orderModule := order.NewModule(db, cfg, estimator, uploader, publisher, dynamodb.NewFromConfig(awsCfg), zapLogger)

	router := server.NewRouter(productCtrl, orderModule.Orders, orderModule.Staff, zapLogger)

	srv := server.New(cfg.Server.Port, router, zapLogger)
	if err := srv.Run(ctx); err != nil {
		zapLogger.Fatal("server error", zap.Error(err))
	}

	zapLogger.Info("server stopped gracefully")
}

// loadConfig reads the YAML file named by CONFIG_PATH, or the environment
// when it is unset.
func loadConfig() (*config.Config, error) {
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		return commons.LoadConfig(path)
	}
	return config.Load()
}
