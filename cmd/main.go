package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	userapp "github.com/xam1dullo/identity-api/application/user"
	"github.com/xam1dullo/identity-api/cmd/config"
	redisclient "github.com/xam1dullo/identity-api/cmd/redis"
	_ "github.com/xam1dullo/identity-api/docs"
	userRepo "github.com/xam1dullo/identity-api/repository/user"
	"github.com/xam1dullo/identity-api/thirdparty/rabbitmq"
	"github.com/xam1dullo/identity-api/transport"
	"github.com/xam1dullo/identity-api/utils/logger"
	"github.com/xam1dullo/identity-api/utils/password"
	"go.uber.org/zap"
)

// @title IDENTITY API
// @version 1.0
// @description Identity record store API Documentation
// @host localhost:8080
// @BasePath /
func main() {
	// Load configuration from environment variables
	cfg := config.Load()

	// Initialize global logger
	if err := logger.Init(cfg.Environment); err != nil {
		// fallback to standard log if zap init fails
		panic(err)
	}
	defer logger.Close()

	logger.Info("Starting server", zap.String("env", cfg.Environment),
		zap.String("storage", cfg.Storage.Driver))

	// Open the storage backend. It is the only shared mutable
	// resource: opened once here, closed at shutdown.
	repo, closeStorage, err := openStorage(cfg)
	if err != nil {
		logger.Fatal("err open storage", zap.Error(err))
	}
	defer closeStorage()

	// Optional user lifecycle event feed
	var events userapp.EventPublisher
	if cfg.RabbitMQ.Enabled {
		publisher, err := rabbitmq.NewPublisher(cfg.RabbitMQ.Host, cfg.RabbitMQ.Port,
			cfg.RabbitMQ.User, cfg.RabbitMQ.Password)
		if err != nil {
			logger.Fatal("err connect rabbitmq", zap.Error(err))
		}
		defer publisher.Close()
		events = publisher
	}

	hasher := password.NewHasher(cfg.Hash.BcryptCost)

	UserApp := userapp.NewUserApp(repo, hasher, events)

	httpTransport := transport.NewTransport(UserApp)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      httpTransport,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info("HTTP server running", zap.String("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed server", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("err server shutdown", zap.Error(err))
	}
}

// openStorage connects the configured backend and returns the user
// repository along with its close function.
func openStorage(cfg *config.Config) (userRepo.UserRepository, func(), error) {
	switch cfg.Storage.Driver {
	case config.StorageDriverRedis:
		if err := redisclient.New(cfg); err != nil {
			return nil, nil, err
		}
		repo := userRepo.NewRedisUserRepository(redisclient.Get())
		return repo, func() { _ = redisclient.Close() }, nil
	default:
		db, err := sqlx.Connect("mysql", cfg.GetDSN())
		if err != nil {
			return nil, nil, err
		}
		db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

		repo := userRepo.NewUserRepository(db)
		return repo, func() { _ = db.Close() }, nil
	}
}
