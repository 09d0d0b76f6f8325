package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/example/pharmacare-storefront/internal/api"
	"github.com/example/pharmacare-storefront/internal/appstate"
	"github.com/example/pharmacare-storefront/internal/checkout"
	"github.com/example/pharmacare-storefront/internal/config"
	"github.com/example/pharmacare-storefront/internal/domain/cart"
	"github.com/example/pharmacare-storefront/internal/domain/favorites"
	"github.com/example/pharmacare-storefront/internal/domain/product"
	"github.com/example/pharmacare-storefront/internal/events"
	"github.com/example/pharmacare-storefront/internal/infrastructure/dataservice"
	"github.com/example/pharmacare-storefront/internal/infrastructure/kafka"
	"github.com/example/pharmacare-storefront/internal/infrastructure/localstore"
	"github.com/example/pharmacare-storefront/internal/logger"
	"github.com/example/pharmacare-storefront/internal/mirror"
	"github.com/example/pharmacare-storefront/internal/session"
	"github.com/rs/zerolog"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	loader := config.NewLoader(os.Getenv("CONFIG_FILE"))
	cfg, err := loader.Load()
	if err != nil {
		bootLog := logger.New(logger.Options{Service: "storefront-api"})
		bootLog.Fatal().Err(err).Msg("failed to load config")
	}

	log := logger.New(logger.Options{
		Service: "storefront-api",
		Env:     cfg.AppEnv,
		Level:   zerolog.TraceLevel.String(),
		Pretty:  !cfg.IsProduction(),
	})
	// The effective level is global so a config reload can lower or raise it
	zerolog.SetGlobalLevel(logger.ParseLevel(cfg.LogLevel))
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid config")
	}

	loader.OnChange(func(next *config.Config, err error) {
		if err != nil {
			log.Warn().Err(err).Msg("config reload failed, keeping previous settings")
			return
		}
		zerolog.SetGlobalLevel(logger.ParseLevel(next.LogLevel))
		log.Info().Str("log_level", next.LogLevel).Msg("config reloaded")
	})

	log.Info().
		Str("addr", cfg.HTTPAddr).
		Str("data_service", cfg.DataServiceURL).
		Str("local_store", cfg.LocalStoreDriver).
		Strs("kafka", cfg.Brokers()).
		Msg("starting storefront")

	local, closer, err := localstore.Open(ctx, localstore.Options{
		Driver:      cfg.LocalStoreDriver,
		Path:        cfg.LocalStorePath,
		DatabaseURL: cfg.DatabaseURL,
		RedisAddr:   cfg.RedisAddr,
		RedisPrefix: cfg.RedisPrefix,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open local store")
	}
	defer closer.Close()

	var publisher events.Publisher = events.NopPublisher{}
	if brokers := cfg.Brokers(); len(brokers) > 0 {
		producer := kafka.NewProducer(brokers, cfg.KafkaTopic)
		defer producer.Close()
		publisher = producer
	}

	client := dataservice.NewClient(cfg.DataServiceURL, cfg.RequestTimeout, local, logger.Component(log, "dataservice"))
	defer client.Close()

	sessions := session.NewManager(client, local, session.NewJWTService(cfg.JWTSecret, cfg.SessionTTL), logger.Component(log, "session"))

	products := product.NewService(client, client, local, logger.Component(log, "product"))

	cartLog := logger.Component(log, "cart")
	cartRepo := mirror.New[[]cart.CartItem](local, localstore.KeyCart, dataservice.NewCartRecord(client), sessions, cartLog)
	carts := cart.NewService(products, cartRepo, sessions, publisher, cartLog)

	favLog := logger.Component(log, "favorites")
	favRepo := mirror.New[favorites.IDSet](local, localstore.KeyFavorites, dataservice.NewFavoritesRecord(client), sessions, favLog)
	favs := favorites.NewService(products, favRepo, sessions, publisher, favLog)

	machine := checkout.NewMachine(carts, client, sessions, publisher, logger.Component(log, "checkout"),
		checkout.WithObserver(func(from, to checkout.State) {
			log.Debug().Stringer("from", from).Stringer("to", to).Msg("checkout state changed")
		}),
	)

	store := appstate.New(appstate.Deps{
		Catalog:   products,
		Cart:      carts,
		Favorites: favs,
		Checkout:  machine,
		Orders:    client,
		Sessions:  sessions,
	}, logger.Component(log, "appstate"))

	// A catalog outage at startup is surfaced through the state, not fatal
	if err := store.Bootstrap(ctx); err != nil {
		log.Warn().Err(err).Msg("bootstrap incomplete")
	}

	handlers := api.NewHandlers(store, products, sessions, logger.Component(log, "api"))
	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           api.NewRouter(handlers, sessions, log),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("server started")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info().Msg("shutting down")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
