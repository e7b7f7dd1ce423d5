package main

import (
	"context"
	"log"

	"github.com/donelist-dev/donelist/db"
	"github.com/donelist-dev/donelist/internal/auth"
	"github.com/donelist-dev/donelist/internal/config"
	"github.com/donelist-dev/donelist/internal/handlers"
	"github.com/donelist-dev/donelist/internal/logger"
	"github.com/donelist-dev/donelist/internal/router"
	"github.com/donelist-dev/donelist/internal/services"
	"github.com/donelist-dev/donelist/internal/session"
	"github.com/donelist-dev/donelist/internal/types"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load(context.Background())

	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zapLogger, err := logger.New(cfg.Env)

	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()

	if err := db.ConnectDatabase(cfg.Database.DSN()); err != nil {
		zapLogger.Fatal("Failed to connect to database", zap.Error(err))
	}

	if err := db.MigrateDatabase(); err != nil {
		zapLogger.Fatal("Failed to migrate database", zap.Error(err))
	}

	store, err := session.NewRedisStore(cfg.Redis.Address(), cfg.Redis.Password, cfg.Redis.DB, cfg.Session.TTL.Duration)

	if err != nil {
		zapLogger.Fatal("Failed to connect to session store", zap.Error(err))
	}
	defer store.Close()

	if err := auth.InitOAuth(cfg.Google.ClientID, cfg.Google.ClientSecret, cfg.Google.CallbackURL); err != nil {
		zapLogger.Fatal("Failed to initialize OAuth", zap.Error(err))
	}

	if err := auth.InitStateSecret(cfg.Session.Secret); err != nil {
		zapLogger.Fatal("Failed to initialize state secret", zap.Error(err))
	}

	types.SetAllowedOrigins(cfg.CORS.AllowedOrigins)

	handlers.Sessions = store
	handlers.Logger = zapLogger
	handlers.ClientURL = cfg.Server.ClientURL
	handlers.CookieSecure = cfg.IsProduction()
	handlers.CookieMaxAge = int(cfg.Session.TTL.Duration.Seconds())

	notifier := services.NewNotifier(
		cfg.Alert.SlackWebhookURL,
		cfg.Alert.EmailAddress,
		cfg.Alert.SMTPAddr,
		cfg.Alert.SMTPFrom,
		zapLogger,
	)

	r := router.NewRouter(cfg, zapLogger, store, notifier)

	zapLogger.Info("Server starting", zap.String("port", cfg.Server.Port))

	if err := r.Run(cfg.Server.Host + ":" + cfg.Server.Port); err != nil {
		zapLogger.Fatal("Failed to start server", zap.Error(err))
	}
}
