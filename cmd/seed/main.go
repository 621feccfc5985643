package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/cosmic-community/homeplate-home-food-delivery-platform/internal/config"
	"github.com/cosmic-community/homeplate-home-food-delivery-platform/internal/cosmic"
	"github.com/cosmic-community/homeplate-home-food-delivery-platform/internal/logging"
	"github.com/cosmic-community/homeplate-home-food-delivery-platform/internal/seed"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "homeplate-seed",
	Short: "Populate a Cosmic bucket with demo chefs, dishes and customers",
	Long: `homeplate-seed generates reproducible demo data and inserts it into the
configured bucket. With --dry-run the generated objects are printed as JSON
and no configuration or credentials are needed.`,
	RunE:         run,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (YAML)")

	rootCmd.Flags().Int("chefs", 6, "Number of chefs to create")
	rootCmd.Flags().Int("dishes-per-chef", 4, "Number of dishes per chef")
	rootCmd.Flags().Int("customers", 10, "Number of customers to create")
	rootCmd.Flags().Int64("seed", 42, "Random seed for generated data")
	rootCmd.Flags().Bool("dry-run", false, "Print generated objects instead of inserting them")

	viper.BindPFlags(rootCmd.Flags())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	opts := seed.Options{
		Chefs:         viper.GetInt("chefs"),
		DishesPerChef: viper.GetInt("dishes-per-chef"),
		Customers:     viper.GetInt("customers"),
		Seed:          viper.GetInt64("seed"),
	}
	if opts.Chefs < 0 || opts.DishesPerChef < 0 || opts.Customers < 0 {
		return fmt.Errorf("counts must be >= 0")
	}

	plan := seed.NewGenerator(opts.Seed).Plan(opts)

	if viper.GetBool("dry-run") {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(plan)
	}

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cfg.Cosmic.WriteKey == "" {
		return fmt.Errorf("cosmic.write_key is required to seed")
	}
	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	defer logger.Sync()

	client, err := cosmic.NewClient(cosmic.Config{
		APIURL:     cfg.Cosmic.APIURL,
		BucketSlug: cfg.Cosmic.BucketSlug,
		ReadKey:    cfg.Cosmic.ReadKey,
		WriteKey:   cfg.Cosmic.WriteKey,
		Timeout:    cfg.Cosmic.Timeout,
	}, cosmic.WithRegisterer(prometheus.NewRegistry()))
	if err != nil {
		return fmt.Errorf("create content store client: %w", err)
	}

	logger.Info("seeding bucket",
		zap.String("bucket", cfg.Cosmic.BucketSlug),
		zap.Int64("seed", opts.Seed),
		zap.Int("chefs", opts.Chefs),
		zap.Int("dishes_per_chef", opts.DishesPerChef),
		zap.Int("customers", opts.Customers),
	)
	_, err = seed.Run(cmd.Context(), client, plan, logger)
	return err
}
