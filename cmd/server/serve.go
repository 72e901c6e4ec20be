package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/reflection"

	grpcadapter "github.com/f1r3sky/wallet-backend/internal/adapter/grpc"
	"github.com/f1r3sky/wallet-backend/internal/adapter/repository/memory"
	"github.com/f1r3sky/wallet-backend/internal/adapter/repository/postgres"
	"github.com/f1r3sky/wallet-backend/internal/metrics"
	"github.com/f1r3sky/wallet-backend/internal/usecase/dashboard"
	"github.com/f1r3sky/wallet-backend/internal/usecase/history"
	"github.com/f1r3sky/wallet-backend/internal/usecase/seeder"
	"github.com/f1r3sky/wallet-backend/internal/usecase/transfer"
	"github.com/f1r3sky/wallet-backend/internal/usecase/validator"
	"github.com/f1r3sky/wallet-backend/internal/usecase/wallets"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Starts the gRPC server",
		Long:  `Starts the wallet gRPC server and the Prometheus metrics endpoint. Stops gracefully on SIGINT or SIGTERM.`,
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}

	// 1. Setup Database
	db, err := connect(cfg, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.Migrate(cmd.Context()); err != nil {
		return err
	}

	genesis, err := seeder.ParseGenesisWallets(cfg.GenesisWallets)
	if err != nil {
		return err
	}
	if err := seeder.NewGenesisSeeder(postgres.NewRequestRepository(db), logger).Seed(cmd.Context(), genesis); err != nil {
		return fmt.Errorf("failed to seed genesis wallets: %w", err)
	}

	// 2. Initialize Repositories (Postgres)
	stateRepo := postgres.NewWalletStateRepository(db)
	transferRepo := postgres.NewTransferRepository(db)
	settingsRepo := postgres.NewBoostSettingsRepository(db)

	// 3. Initialize Services (Use Cases)
	transferService := transfer.NewTransferService(stateRepo, transferRepo, settingsRepo, cfg.Cost(), logger,
		validator.WithDescriptionPolicy(cfg.DescriptionPolicy),
		validator.WithDescriptionMaxLength(cfg.DescriptionMaxLength),
	)
	dashboardService := dashboard.NewDashboardService(stateRepo, time.Now)
	historyService := history.NewHistoryService(stateRepo)
	walletService := wallets.NewWalletService(memory.NewWalletRegistry(), logger)

	// 4. Start gRPC Server
	grpcServer := grpclib.NewServer(
		grpclib.ChainUnaryInterceptor(
			grpcadapter.AuthInterceptor(cfg.APIToken),
			grpcadapter.MetricsInterceptor(),
		),
	)
	grpcadapter.RegisterWalletServiceServer(grpcServer,
		grpcadapter.NewServer(transferService, dashboardService, historyService, walletService))
	reflection.Register(grpcServer)

	lis, err := net.Listen("tcp", cfg.GRPCPort)
	if err != nil {
		return err
	}

	go func() {
		logger.Info("gRPC server listening", "addr", cfg.GRPCPort)
		if err := grpcServer.Serve(lis); err != nil {
			logger.Fatal("failed to serve gRPC server", "err", err)
		}
	}()

	// 5. Start metrics endpoint
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	metricsServer := &http.Server{
		Addr:              cfg.MetricsPort,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("metrics server listening", "addr", cfg.MetricsPort)
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server stopped", "err", err)
		}
	}()

	// Graceful shutdown
	waitForShutdown(grpcServer, metricsServer, logger)
	return nil
}

// waitForShutdown waits for SIGTERM or SIGINT and gracefully shuts down both servers
func waitForShutdown(grpcServer *grpclib.Server, metricsServer *http.Server, logger *log.Logger) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	sig := <-sigChan
	logger.Info("shutting down gracefully", "signal", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := metricsServer.Shutdown(ctx); err != nil {
		logger.Warn("metrics server shutdown", "err", err)
	}

	grpcServer.GracefulStop()
	logger.Info("gRPC server stopped")
}
