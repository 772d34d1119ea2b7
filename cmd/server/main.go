package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/api-sage/invest-account-service/internal/adapter/http/controller"
	"github.com/api-sage/invest-account-service/internal/adapter/http/middleware"
	"github.com/api-sage/invest-account-service/internal/adapter/http/router"
	"github.com/api-sage/invest-account-service/internal/adapter/repository/localstore"
	"github.com/api-sage/invest-account-service/internal/adapter/repository/memory"
	"github.com/api-sage/invest-account-service/internal/adapter/repository/postgres"
	"github.com/api-sage/invest-account-service/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/invest-account-service/internal/auth"
	"github.com/api-sage/invest-account-service/internal/config"
	"github.com/api-sage/invest-account-service/internal/usecase/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	userRepo, cleanup, err := buildRepository(ctx, cfg)
	if err != nil {
		log.Fatalf("open store backend %q: %v", cfg.StoreBackend, err)
	}
	defer cleanup()

	tokens := auth.NewTokenManager([]byte(cfg.SessionSecret), cfg.SessionTTL)

	userService := services.NewUserService(userRepo, tokens)
	paymentService := services.NewPaymentService(userRepo)
	investmentService := services.NewInvestmentService(userRepo)

	mux := router.New(
		controller.NewUserController(userService),
		controller.NewPaymentController(paymentService),
		controller.NewInvestmentController(investmentService),
		middleware.SessionAuth(tokens),
	)

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("listening on %s (backend: %s)", cfg.HTTPAddr, cfg.StoreBackend)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatalf("server: %v", err)
	}
}

func buildRepository(ctx context.Context, cfg config.Config) (repo_interfaces.UserRepository, func(), error) {
	switch cfg.StoreBackend {
	case "postgres":
		openCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()

		db, err := postgres.Open(openCtx, cfg.DatabaseDSN)
		if err != nil {
			return nil, nil, err
		}
		if err := postgres.RunMigrations(openCtx, db, cfg.MigrationsDir); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return postgres.NewUserRepository(db), func() { _ = db.Close() }, nil
	case "file":
		repo, err := localstore.NewUserRepository(cfg.StoreFilePath)
		if err != nil {
			return nil, nil, err
		}
		return repo, func() {}, nil
	default:
		return memory.NewUserRepository(), func() {}, nil
	}
}
