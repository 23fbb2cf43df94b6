package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpadapter "keepup/internal/adapters/http"
	"keepup/internal/adapters/postgres"
	"keepup/internal/config"
	"keepup/internal/core/auth"
	"keepup/internal/core/vehicle"
	"keepup/internal/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg)

	dbPool, err := postgres.InitDB(cfg.DatabaseURL, log)
	if err != nil {
		log.Error("failed to init DB", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	if err := postgres.Migrate(cfg.DatabaseURL, log); err != nil {
		log.Error("failed to migrate DB", "error", err)
		os.Exit(1)
	}

	userRepo := postgres.NewUserRepository(dbPool)
	vehicleRepo := postgres.NewVehicleRepository(dbPool)

	authService := auth.NewService(userRepo, cfg.JWTSecret, cfg.JWTExpiry, cfg.BcryptCost)
	vehicleService := vehicle.NewService(vehicleRepo)

	router := httpadapter.NewRouter(cfg, log, &httpadapter.RouterDeps{
		Auth:    httpadapter.NewAuthHandler(authService),
		Vehicle: httpadapter.NewVehicleHandler(vehicleService),
	})

	srv := httpadapter.NewServer(router, cfg.Address)

	errCh := make(chan error, 1)
	go func() {
		log.Info("http: starting server", "address", cfg.Address)
		errCh <- srv.ListenAndServe()
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("http: server shutdown error", "error", err)
		}

	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			log.Error("http: server error", "error", err)
		}
	}

	log.Info("server stopped")
}
