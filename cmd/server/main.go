package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cosmic-community/homeplate-home-food-delivery-platform/internal/config"
	"github.com/cosmic-community/homeplate-home-food-delivery-platform/internal/cosmic"
	"github.com/cosmic-community/homeplate-home-food-delivery-platform/internal/logging"
	"github.com/cosmic-community/homeplate-home-food-delivery-platform/internal/router"
	"github.com/cosmic-community/homeplate-home-food-delivery-platform/internal/service"
	"github.com/cosmic-community/homeplate-home-food-delivery-platform/internal/ws"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "homeplate",
	Short: "HomePlate storefront server",
	Long:  `homeplate serves the HomePlate home-cooked meal storefront: catalog pages, the JSON API and the chef order feed, backed by a Cosmic bucket.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
	SilenceUsage: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print dashboard statistics as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup()
		if err != nil {
			return err
		}
		defer logger.Sync()

		client, err := newClient(cfg, prometheus.NewRegistry())
		if err != nil {
			return err
		}
		dashboard := service.NewDashboardService(client, logger, cfg.DashboardLocation())

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(dashboard.Stats(cmd.Context()))
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (YAML)")
	rootCmd.AddCommand(serveCmd, statsCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setup() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

func newClient(cfg *config.Config, reg prometheus.Registerer) (*cosmic.Client, error) {
	return cosmic.NewClient(cosmic.Config{
		APIURL:     cfg.Cosmic.APIURL,
		BucketSlug: cfg.Cosmic.BucketSlug,
		ReadKey:    cfg.Cosmic.ReadKey,
		WriteKey:   cfg.Cosmic.WriteKey,
		Timeout:    cfg.Cosmic.Timeout,
	}, cosmic.WithRegisterer(reg))
}

func serve(ctx context.Context) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer logger.Sync()

	if cfg.Cosmic.WriteKey == "" {
		logger.Warn("cosmic.write_key not set; orders and reviews will be rejected")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	client, err := newClient(cfg, reg)
	if err != nil {
		return fmt.Errorf("create content store client: %w", err)
	}

	hub := ws.NewHub(logger)
	go hub.Run(ctx)

	r, err := router.New(cfg, router.Deps{
		Catalog:   service.NewCatalogService(client, logger),
		Orders:    service.NewOrderService(client, logger),
		Reviews:   service.NewReviewService(client, logger),
		Dashboard: service.NewDashboardService(client, logger, cfg.DashboardLocation()),
		Hub:       hub,
		Registry:  reg,
		Logger:    logger,
	})
	if err != nil {
		return fmt.Errorf("build router: %w", err)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", zap.String("addr", srv.Addr), zap.String("bucket", cfg.Cosmic.BucketSlug))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
