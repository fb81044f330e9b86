// Command mindfulchat runs the conversational support service.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mindfulchat/mindfulchat-go/internal/adapters/catalog"
	"github.com/mindfulchat/mindfulchat-go/internal/adapters/inference"
	"github.com/mindfulchat/mindfulchat-go/internal/adapters/logstore"
	"github.com/mindfulchat/mindfulchat-go/internal/config"
	"github.com/mindfulchat/mindfulchat-go/internal/domain/chart"
	"github.com/mindfulchat/mindfulchat-go/internal/domain/usecases"
	httpserver "github.com/mindfulchat/mindfulchat-go/internal/infrastructure/http"
	"github.com/mindfulchat/mindfulchat-go/internal/logging"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "mindfulchat: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger, err := logging.New(cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer logger.Sync()

	store, err := logstore.NewSQLiteStore(cfg.Storage.DataPath)
	if err != nil {
		return fmt.Errorf("opening interaction store: %w", err)
	}
	defer store.Close()

	resources, err := catalog.NewSQLiteCatalog(cfg.Storage.DataPath)
	if err != nil {
		return fmt.Errorf("opening resource catalog: %w", err)
	}
	defer resources.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	seed := catalog.DefaultResources()
	if cfg.Catalog.SeedFile != "" {
		if fromFile, err := catalog.LoadSeedFile(cfg.Catalog.SeedFile); err == nil {
			seed = fromFile
		} else {
			logger.Warn("falling back to built-in resource seed", zap.Error(err))
		}
	}
	if err := resources.SeedIfEmpty(ctx, seed); err != nil {
		return fmt.Errorf("seeding resource catalog: %w", err)
	}

	interpreter := inference.NewClient(cfg.Inference.BaseURL, cfg.Inference.Timeout())
	chatUC := usecases.NewChatUseCase(
		interpreter,
		resources,
		store,
		chart.NewSynthesizer(nil),
		logger,
		cfg.Inference.Timeout(),
	)
	historyUC := usecases.NewHistoryUseCase(store)

	server := httpserver.NewServer(chatUC, historyUC, logger, cfg.ListenAddr, cfg.GuestUserID)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.Start(gctx)
	})
	if cfg.Catalog.SeedFile != "" {
		reloader, err := catalog.NewReloader(resources, cfg.Catalog.SeedFile, logger)
		if err != nil {
			return fmt.Errorf("starting resource reloader: %w", err)
		}
		g.Go(func() error {
			return reloader.Run(gctx)
		})
	}

	logger.Info("mindfulchat started",
		zap.String("addr", cfg.ListenAddr),
		zap.String("inference", cfg.Inference.BaseURL))

	return g.Wait()
}
