package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/nmbroome/prediction-market-admin/internal/config"
	"github.com/nmbroome/prediction-market-admin/internal/eth"
	"github.com/nmbroome/prediction-market-admin/internal/handler"
	"github.com/nmbroome/prediction-market-admin/internal/logging"
	"github.com/nmbroome/prediction-market-admin/internal/service"
	"github.com/nmbroome/prediction-market-admin/pkg/cpmm"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}

	logger := logging.NewLogger(cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)

	engine, err := cpmm.NewEngine(cfg.FeeRate)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	swapHandler := handler.NewSwapHandler(logger, service.NewSwapService(logger, engine))

	var (
		ethereumClient  *ethclient.Client
		estimateHandler *handler.EstimateHandler
	)
	if cfg.OnchainEnabled() {
		ethereumClient, err = eth.Dial(ctx, cfg.RPCEndpoint)
		if err != nil {
			return fmt.Errorf("failed to connect to Ethereum node: %w", err)
		}
		defer ethereumClient.Close()

		fee, err := cpmm.FeeFromRate(cfg.FeeRate)
		if err != nil {
			return err
		}
		estimateHandler = handler.NewEstimateHandler(logger, service.NewEstimateService(logger, ethereumClient, fee))
	}

	app := handler.NewApp(swapHandler, estimateHandler)

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Listen(cfg.Addr)
	}()

	logger.Info("swap api starting", "addr", cfg.Addr, "fee_rate", engine.FeeRate(), "onchain", cfg.OnchainEnabled())

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			_ = app.Shutdown()
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	}

	logger.Info("shutting down")
	if err := app.ShutdownWithTimeout(cfg.ShutdownTimeout); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
