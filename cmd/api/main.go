package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/marcelsud/webhook-outbox/config"
	"github.com/marcelsud/webhook-outbox/delivery"
	deliveryredis "github.com/marcelsud/webhook-outbox/delivery/redis"
	chihandlers "github.com/marcelsud/webhook-outbox/internal/http/chi"
	"github.com/marcelsud/webhook-outbox/metrics"
	"github.com/marcelsud/webhook-outbox/registration"
	registrationpostgres "github.com/marcelsud/webhook-outbox/registration/postgres"
	registrationredis "github.com/marcelsud/webhook-outbox/registration/redis"
)

const TIMEOUT = 30 * time.Second

/* main é onde é feita toda a “amarração” dos demais pacotes:
 * iniciamos as dependências, fazemos as configurações e a invocação dos
 * pacotes que desempenham a lógica de negócio.
 * As importações devem ser feitas apenas em uma direção: para baixo.
 * O aplicativo (api, worker) importa camadas de negócios, que importam a
 * camada de armazenamento.
 */

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
	regService := registration.NewService(regRepo, delService)
	delService.Finder = regService

	if cfg.SeedFile != "" {
		seed, err := registration.LoadSeed(cfg.SeedFile)
		if err != nil {
			fmt.Println(err)
			return
		}
		created, err := seed.Apply(ctx, regService)
		if err != nil {
			fmt.Println(err)
			return
		}
		fmt.Printf("Seeded %d registrations\n", created)
	}

	r := chihandlers.Handlers(regService, delService, recorder.Handler())
	srv := &http.Server{
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		Addr:         ":" + cfg.Port,
		Handler:      r,
	}

	errShutdown := make(chan error, 1)
	go shutdown(srv, ctx, errShutdown)
	fmt.Printf("Listening on port %s\n", cfg.Port)
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
	// Backend is resolved once here, never branched on per call
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
		fmt.Printf("\nShutting down server...\n")
		errShutdown <- nil
	default:
		errShutdown <- fmt.Errorf("Forcing closing the server")
	}
}
