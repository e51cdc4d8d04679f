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

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/reflection"

	"github.com/light-bringer/pricecomp-service/internal/config"
	"github.com/light-bringer/pricecomp-service/internal/observability"
	"github.com/light-bringer/pricecomp-service/internal/services"
	"github.com/light-bringer/pricecomp-service/internal/transport/grpc/query"
)

var (
	cfgFile string
	envFile string
)

var rootCmd = &cobra.Command{
	Use:           "server",
	Short:         "Serve price comparison queries over HTTP and gRPC",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context())
	},
}

func init() {
	rootCmd.Flags().StringVarP(&cfgFile, "config", "c", os.Getenv("CONFIG_PATH"), "config file path (default: env vars only)")
	rootCmd.Flags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading env overrides")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to run server: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// 1. Load configuration (.env first, then YAML and env overrides)
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", envFile, err)
	}

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := observability.NewLogger(observability.LogConfig{
		Level:       cfg.Observability.LogLevel,
		Format:      cfg.Observability.LogFormat,
		ServiceName: cfg.Observability.ServiceName,
	})

	logger.Info().
		Str("feed", cfg.Feed.Location).
		Bool("strict", cfg.Feed.Strict).
		Bool("eager_load", cfg.Feed.EagerLoad).
		Str("http_addr", cfg.HTTPAddr()).
		Str("grpc_addr", cfg.GRPCAddr()).
		Msg("Starting price comparison service")

	// 2. Initialize service dependencies (DI container)
	serviceOpts, err := services.NewServiceOptions(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize service: %w", err)
	}

	// 3. Create gRPC server, register the query service and reflection
	grpcServer := grpc.NewServer()
	query.RegisterQueryServiceServer(grpcServer, serviceOpts.QueryHandler)
	reflection.Register(grpcServer)

	lis, err := net.Listen("tcp", cfg.GRPCAddr())
	if err != nil {
		return fmt.Errorf("failed to listen on gRPC port: %w", err)
	}

	serverErrors := make(chan error, 2)

	go func() {
		logger.Info().Str("addr", cfg.GRPCAddr()).Msg("gRPC server listening")
		if err := grpcServer.Serve(lis); err != nil {
			serverErrors <- fmt.Errorf("gRPC server: %w", err)
		}
	}()

	// 4. Create HTTP server
	httpServer := &http.Server{
		Addr:         cfg.HTTPAddr(),
		Handler:      serviceOpts.HTTPHandler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info().Str("addr", cfg.HTTPAddr()).Msg("HTTP server listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- fmt.Errorf("HTTP server: %w", err)
		}
	}()

	// 5. Graceful shutdown handling
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	var runErr error
	select {
	case runErr = <-serverErrors:
		logger.Error().Err(runErr).Msg("Server failed")
	case sig := <-sigCh:
		logger.Info().Str("signal", sig.String()).Msg("Shutting down gracefully")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.GracefulShutdown)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("HTTP server shutdown error")
	}
	grpcServer.GracefulStop()

	return runErr
}
