package main

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"budget/internal/backend"
	"budget/internal/cli"
	"budget/internal/console"
	"budget/internal/ledger"
	applog "budget/internal/log"
	"budget/internal/services"
)

func main() {
	// Load .env file for local development
	cli.LoadEnvFile()

	cfg, err := cli.LoadAndValidateConfig()
	if err != nil {
		cli.Fatal("Configuration validation failed", err)
	}

	logger := cli.SetupLogger(cfg)
	logger.Info("Starting budget", applog.FieldOperation, applog.OpStartup,
		"journal", cfg.JournalBackend,
		"events", cfg.EventsBackend)

	ctx, stop := cli.SignalContext(context.Background())
	defer stop()

	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("Invalid backend configuration", "error", err)
		os.Exit(1)
	}
	mirrors, err := backend.NewFactory(logger).Create(ctx, backendCfg)
	if err != nil {
		logger.Error("Failed to initialize backend", "error", err)
		os.Exit(1)
	}

	prompter := console.NewPrompter(os.Stdin, os.Stdout)
	defer prompter.Close()

	var starting decimal.Decimal
	if cfg.HasStartingBalance() {
		starting, err = cfg.ParseStartingBalance()
	} else {
		starting, err = prompter.AskBalance(ctx, "Enter starting balance: ")
	}
	if err != nil {
		_ = mirrors.Cleanup()
		if errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
			return
		}
		logger.Error("Failed to read starting balance", "error", err)
		os.Exit(1)
	}

	svc := services.NewLedgerService(ledger.New(starting), mirrors.Journal, mirrors.Publisher, logger)
	shell := console.NewShell(prompter, svc, os.Stdout, console.Money{Symbol: cfg.CurrencySymbol})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		// Quitting the shell ends the run the same way a signal does
		defer stop()
		return shell.Run(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down", applog.FieldOperation, applog.OpShutdown)
		return nil
	})

	runErr := g.Wait()

	if err := svc.Close(); err != nil {
		logger.Error("Shutdown error", applog.FieldOperation, applog.OpShutdown, "error", err)
	}

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		logger.Error("Console error", "error", runErr)
		os.Exit(1)
	}
	logger.Info("Stopped", applog.FieldOperation, applog.OpShutdown, "balance", svc.Balance().String())
}
