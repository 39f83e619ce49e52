package main

import (
	"context"
	"errors"
	"fmt"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/storefront-demo/internal/cart"
	"github.com/nikolayk812/storefront-demo/internal/catalog"
	"github.com/nikolayk812/storefront-demo/internal/checkout"
	"github.com/nikolayk812/storefront-demo/internal/config"
	"github.com/nikolayk812/storefront-demo/internal/domain"
	"github.com/nikolayk812/storefront-demo/internal/events"
	"github.com/nikolayk812/storefront-demo/internal/logger"
	"github.com/nikolayk812/storefront-demo/internal/metrics"
	"github.com/nikolayk812/storefront-demo/internal/port"
	"github.com/nikolayk812/storefront-demo/internal/repository"
	"github.com/nikolayk812/storefront-demo/internal/storefront"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("cfg.Validate: %w", err)
	}

	// the terminal belongs to the UI, logs go to a file
	lg, err := logger.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return fmt.Errorf("logger.New: %w", err)
	}
	defer func() { _ = lg.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	if cfg.MetricsAddr != "" {
		srv := &http.Server{
			Addr:              cfg.MetricsAddr,
			Handler:           metrics.Handler(reg),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				lg.Error("metrics server stopped", zap.Error(err))
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	var sfOpts []storefront.Option
	sfOpts = append(sfOpts, storefront.WithLogger(lg))

	var cartRepo port.CartRepository
	switch cfg.Storage {
	case config.StorageMemory:
		cartRepo = repository.NewInMemoryCart()
	case config.StorageFile:
		cartRepo, err = repository.NewFileCart(cfg.CartFile)
		if err != nil {
			return fmt.Errorf("repository.NewFileCart: %w", err)
		}
	case config.StoragePostgres:
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("pgxpool.New: %w", err)
		}
		defer pool.Close()

		if err := pool.Ping(ctx); err != nil {
			return fmt.Errorf("pool.Ping: %w", err)
		}

		cartRepo, err = repository.NewCart(pool, cfg.CartSlot)
		if err != nil {
			return fmt.Errorf("repository.NewCart: %w", err)
		}

		orderRepo, err := repository.NewOrder(pool)
		if err != nil {
			return fmt.Errorf("repository.NewOrder: %w", err)
		}
		sfOpts = append(sfOpts, storefront.WithOrderRepository(orderRepo))
	}

	if brokers := events.ParseBrokers(cfg.KafkaBrokers); len(brokers) > 0 {
		publisher, err := events.NewKafkaPublisher(brokers, cfg.KafkaTopic)
		if err != nil {
			return fmt.Errorf("events.NewKafkaPublisher: %w", err)
		}
		defer func() {
			if err := publisher.Close(); err != nil {
				lg.Warn("publisher.Close", zap.Error(err))
			}
		}()
		sfOpts = append(sfOpts, storefront.WithPublisher(publisher))
	}

	store := cart.NewStore(ctx, cartRepo, cart.WithLogger(lg), cart.WithMetrics(m))
	process := checkout.New(
		checkout.WithScheduler(checkout.RealScheduler{}),
		checkout.WithDelay(cfg.CheckoutDelay),
		checkout.WithLogger(lg),
		checkout.WithMetrics(m),
	)
	sf := storefront.New(catalog.Default(), store, process, sfOpts...)
	// let placed orders finish before the pool and publisher close
	defer sf.Wait()

	lg.Info("storefront started",
		zap.String("storage", cfg.Storage),
		zap.Duration("checkout_delay", cfg.CheckoutDelay),
		zap.Int("cart_entries", store.Len()))

	p := tea.NewProgram(newModel(ctx, sf), tea.WithContext(ctx))

	// listeners fire inside Update too, so Send must not block the event loop
	unsubscribeCart := sf.SubscribeCart(func(domain.Cart) { go p.Send(cartChanged{}) })
	defer unsubscribeCart()
	unsubscribeCheckout := sf.SubscribeCheckout(func(out domain.CheckoutOutcome) { go p.Send(checkoutChanged{outcome: out}) })
	defer unsubscribeCheckout()
	unsubscribeView := sf.SubscribeView(func(v domain.View) { go p.Send(viewChanged{view: v}) })
	defer unsubscribeView()

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("p.Run: %w", err)
	}

	lg.Info("storefront stopped")
	return nil
}
