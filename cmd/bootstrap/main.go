package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"flightdb/internal/bootstrap"
	"flightdb/pkg/config"
	"flightdb/pkg/kafka"
	kafka_config "flightdb/pkg/kafka/config"
	kafka_middleware "flightdb/pkg/kafka/middleware"
)

const JobName = "bootstrap"

type flags struct {
	seed       bool
	createUser bool
	timeout    time.Duration
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var f flags

	rootCmd := &cobra.Command{
		Use:          "bootstrap",
		Short:        "Create the flight booking collections, indexes, application user and seed data",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig(cmd, f)
			return runBootstrap(cmd, cfg)
		},
	}

	rootCmd.Flags().BoolVar(&f.seed, "seed", config.DefaultSeedEnabled, "Insert seed data into empty collections (overrides "+config.EnvSeedEnabled+")")
	rootCmd.Flags().BoolVar(&f.createUser, "create-user", config.DefaultAppUserEnabled, "Create or update the application user (overrides "+config.EnvAppUserEnabled+")")
	rootCmd.PersistentFlags().DurationVar(&f.timeout, "timeout", config.DefaultBootstrapTimeout, "Upper bound for the whole run (overrides "+config.EnvBootstrapTimeout+")")

	rootCmd.AddCommand(newVerifyCmd(&f))
	return rootCmd
}

func newVerifyCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:          "verify",
		Short:        "Report missing collections and indexes without changing anything",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig(cmd, *f)
			return runVerify(cmd, cfg)
		},
	}
}

// loadConfig reads the environment, then applies only the flags given explicitly.
func loadConfig(cmd *cobra.Command, f flags) *config.Config {
	cfg := config.Load(JobName)

	if cmd.Flags().Changed("seed") {
		cfg.SeedEnabled = f.seed
	}
	if cmd.Flags().Changed("create-user") {
		cfg.AppUserEnabled = f.createUser
	}
	if cmd.Flags().Changed("timeout") {
		cfg.BootstrapTimeout = f.timeout
	}

	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal(err.Error())
	}
	return cfg
}

func runBootstrap(cmd *cobra.Command, cfg *config.Config) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.BootstrapTimeout)
	defer cancel()

	opts := bootstrap.Options{}
	if cfg.AppUserEnabled {
		opts.AppUser = &bootstrap.AppUser{
			Name:     cfg.AppUserName,
			Password: cfg.AppUserPassword,
			Role:     cfg.AppUserRole,
		}
	}
	if cfg.SeedEnabled {
		seed, err := bootstrap.LoadSeed(cfg.SeedDir)
		if err != nil {
			cfg.Log.Error("Failed to load seed data", "seed_dir", cfg.SeedDir, "error", err)
			return err
		}
		opts.Seed = seed
	}

	notifier, closeNotifier := newNotifier(cfg)
	defer closeNotifier()
	opts.Notifier = notifier

	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	cfg.Log.Info("Starting database bootstrap job")
	store := bootstrap.NewMongoStore(cfg.Client.Database(cfg.MongoDatabaseName))
	result, err := bootstrap.New(store, cfg.Log, opts).Run(ctx)
	if err != nil {
		cfg.Log.Error("Database bootstrap failed",
			"run_id", result.RunID,
			"step", bootstrap.FailedStep(err),
			"error", err,
		)
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Bootstrap completed successfully.")
	return nil
}

func runVerify(cmd *cobra.Command, cfg *config.Config) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.BootstrapTimeout)
	defer cancel()

	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	report, err := bootstrap.Verify(ctx, bootstrap.NewMongoStore(cfg.Client.Database(cfg.MongoDatabaseName)))
	if err != nil {
		cfg.Log.Error("Verification failed", "error", err)
		return err
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(report); err != nil {
		return err
	}

	if err := report.Err(); err != nil {
		cfg.Log.Warn("Database is not bootstrapped", "error", err)
		return err
	}
	return nil
}

// newNotifier returns nil when no Kafka brokers are configured. A broken Kafka
// configuration disables the event rather than the bootstrap.
func newNotifier(cfg *config.Config) (bootstrap.Notifier, func()) {
	noop := func() {}

	kafkaCfg, err := kafka_config.Load()
	if err != nil {
		cfg.Log.Warn("Kafka configuration invalid, bootstrap event disabled", "error", err)
		return nil, noop
	}
	if !kafkaCfg.Enabled() {
		cfg.Log.Info("Kafka brokers not configured, bootstrap event disabled")
		return nil, noop
	}

	producer, err := kafka.NewProducer(kafkaCfg, kafkaCfg.BootstrapTopic)
	if err != nil {
		cfg.Log.Warn("Failed to create Kafka producer, bootstrap event disabled", "error", err)
		return nil, noop
	}
	producer.Use(kafka_middleware.LoggingProducerMiddleware(cfg.Log))
	cfg.Log.Info("Bootstrap event enabled", "topic", producer.Topic(), "brokers", kafkaCfg.Brokers)

	return bootstrap.NewKafkaNotifier(producer, JobName), func() {
		if err := producer.Close(); err != nil {
			cfg.Log.Warn("Failed to close Kafka producer", "error", err)
		}
	}
}
