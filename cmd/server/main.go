package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/newrelic/go-agent/v3/newrelic"
	goredis "github.com/redis/go-redis/v9"

	"zapshift/internal/app"
	"zapshift/internal/auth"
	"zapshift/internal/config"
	"zapshift/internal/handler"
	"zapshift/internal/redis"
	"zapshift/internal/repository/postgres"
	"zapshift/internal/service"
	"zapshift/internal/stripe"
)

func main() {
	// Load .env if present; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Initialize New Relic if enabled.
	var nrApp *newrelic.Application
	if cfg.NewRelic.Enabled && cfg.NewRelic.LicenseKey != "" {
		var err error
		nrApp, err = newrelic.NewApplication(
			newrelic.ConfigAppName(cfg.NewRelic.AppName),
			newrelic.ConfigLicense(cfg.NewRelic.LicenseKey),
			newrelic.ConfigDistributedTracerEnabled(true),
		)
		if err != nil {
			log.Printf("failed to initialize New Relic: %v", err)
		} else {
			log.Println("New Relic initialized")
		}
	}

	db, err := app.NewDatabase(ctx, cfg.Database, nrApp)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()
	log.Println("connected to PostgreSQL")

	redisClient, err := app.NewRedisClient(ctx, cfg.Redis, nrApp)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()
	log.Println("connected to Redis")

	router := wireServer(cfg, db, redisClient, nrApp)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Printf("server listening on port %s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Wait for interrupt signal.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("forced shutdown: %v", err)
	}

	if nrApp != nil {
		nrApp.Shutdown(10 * time.Second)
	}

	log.Println("server stopped")
}

func wireServer(cfg *config.Config, db *sql.DB, redisClient *goredis.Client, nrApp *newrelic.Application) http.Handler {
	userRepo := postgres.NewUserRepository(db)
	parcelRepo := postgres.NewParcelRepository(db)
	paymentRepo := postgres.NewPaymentRepository(db)
	riderRepo := postgres.NewRiderRepository(db)

	cacheStore := redis.NewCacheStore(redisClient)
	gateway := stripe.NewCheckoutGateway(cfg.Stripe.APIKey)
	verifier := auth.NewJWTVerifier(cfg.Auth.JWTSecret)

	parcelService := service.NewParcelService(parcelRepo, cacheStore)
	paymentService := service.NewPaymentService(paymentRepo, parcelRepo, gateway, cacheStore, cfg.Stripe.SiteDomain)
	riderService := service.NewRiderService(db, riderRepo, userRepo, parcelRepo, cacheStore)

	return app.NewRouter(app.RouterDeps{
		UserHandler:    handler.NewUserHandler(userRepo),
		ParcelHandler:  handler.NewParcelHandler(parcelService, riderService),
		PaymentHandler: handler.NewPaymentHandler(paymentService, userRepo),
		RiderHandler:   handler.NewRiderHandler(riderRepo, riderService),
		Verifier:       verifier,
		UserRepo:       userRepo,
		RedisClient:    redisClient,
		NewRelicApp:    nrApp,
	})
}
