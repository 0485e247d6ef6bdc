package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httplog"
	"github.com/marcelsud/webhook-outbox/config"
	"github.com/marcelsud/webhook-outbox/delivery"
	deliveryredis "github.com/marcelsud/webhook-outbox/delivery/redis"
	"github.com/marcelsud/webhook-outbox/dispatch"
	"github.com/marcelsud/webhook-outbox/metrics"
	"github.com/marcelsud/webhook-outbox/registration"
	registrationpostgres "github.com/marcelsud/webhook-outbox/registration/postgres"
	registrationredis "github.com/marcelsud/webhook-outbox/registration/redis"
)

const TIMEOUT = 30 * time.Second

func main() {
	cfg, err := config.GetConfig()
	if err != nil {
		fmt.Println(err)
		return
	}
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT,
	)
	defer stop()

	jobRepo, err := deliveryredis.NewRepository(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		fmt.Println(err)
		return
	}
	defer jobRepo.Close(ctx)

	regRepo, err := buildRegistry(ctx, cfg, jobRepo)
	if err != nil {
		fmt.Println(err)
		return
	}
	defer regRepo.Close(ctx)

	collector := metrics.NewRedisCollector(jobRepo, cfg.RateLimitPerWindow)
	recorder, err := metrics.NewRecorder(collector)
	if err != nil {
		fmt.Println(err)
		return
	}
	defer recorder.Shutdown(ctx)

	delService := delivery.NewService(jobRepo, nil, recorder, delivery.Policy{
		MaxRetries: cfg.MaxRetries,
		Backoff: delivery.Backoff{
			BaseDelay: cfg.BackoffBase(),
			MaxDelay:  cfg.BackoffMax(),
			Factor:    2.0,
			Jitter:    cfg.BackoffJitter,
		},
		RateLimitConsumesAttempt: cfg.RateLimitConsumesAttempt,
	})

	allowlist, err := dispatch.NewAllowlist(cfg.AllowedNetworks)
	if err != nil {
		fmt.Println(err)
		return
	}
	limiter := dispatch.NewRateLimiter(jobRepo.GetClient(), cfg.RateLimitPerWindow, cfg.RateLimitWindow())
	executor := dispatch.NewExecutor(cfg.AttemptTimeout())
	logger := httplog.NewLogger("webhook-outbox-worker", httplog.Options{JSON: true})

	pool := dispatch.NewPool(jobRepo, regRepo, delService, executor, allowlist, limiter, logger, cfg.WorkerCount)
	go pool.Run(ctx)

	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Handle("/metrics", recorder.Handler())
	srv := &http.Server{
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		Addr:         ":" + cfg.Port,
		Handler:      r,
	}

	errShutdown := make(chan error, 1)
	go shutdown(srv, ctx, errShutdown)
	fmt.Printf("Worker listening on port %s with %d workers\n", cfg.Port, cfg.WorkerCount)
	err = srv.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		fmt.Println(err)
		return
	}
	err = <-errShutdown
	if err != nil {
		fmt.Println(err)
		return
	}
}

func buildRegistry(ctx context.Context, cfg *config.Config, jobRepo *deliveryredis.Repository) (registration.Repository, error) {
	switch cfg.RegistryBackend {
	case "postgres":
		repo, err := registrationpostgres.NewRepository(cfg.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("creating postgres registry: %w", err)
		}
		if err := repo.Migrate(ctx); err != nil {
			return nil, fmt.Errorf("migrating postgres registry: %w", err)
		}
		return repo, nil
	case "redis":
		return registrationredis.NewRepositoryWithClient(jobRepo.GetClient()), nil
	default:
		return nil, fmt.Errorf("unknown registry backend: %s", cfg.RegistryBackend)
	}
}

func shutdown(server *http.Server, ctxShutdown context.Context, errShutdown chan error) {
	<-ctxShutdown.Done()

	ctxTimeout, stop := context.WithTimeout(context.Background(), TIMEOUT)
	defer stop()

	err := server.Shutdown(ctxTimeout)
	switch err {
	case nil:
		fmt.Printf("\nShutting down worker...\n")
		errShutdown <- nil
	default:
		errShutdown <- fmt.Errorf("Forcing closing the server")
	}
}
