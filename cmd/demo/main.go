// Command demo wires edgehttp's dispatcher to the local and cloud
// reference transports and registers a handful of illustrative routes.
// Configuration loading, process lifecycle, and transport wiring live
// here, deliberately outside the core: the core never reads a flag, an
// env var, or a config file.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/kjmorgan/edgehttp"
	"github.com/kjmorgan/edgehttp/transport"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run the edgehttp demo device",
		RunE:  runDemo,
	}

	flags := cmd.Flags()
	flags.Int("port", 8080, "local transport listen port")
	flags.Int("cloud-port", 8443, "cloud transport listen port")
	flags.Int("workers", 8, "worker pool size")
	flags.Duration("tick-interval", time.Second, "delay between receive/dispatch/send ticks")
	flags.String("log-level", "info", "zap log level (debug, info, warn, error)")
	flags.String("database-url", "", "optional postgres DSN for the health-check route")

	viper.SetEnvPrefix("EDGEHTTP")
	viper.AutomaticEnv()
	_ = viper.BindPFlags(flags)

	return cmd
}

func runDemo(cmd *cobra.Command, args []string) error {
	level, err := zap.ParseAtomicLevel(viper.GetString("log-level"))
	if err != nil {
		return err
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = level
	zapLogger, err := cfg.Build()
	if err != nil {
		return err
	}
	defer zapLogger.Sync()
	edgehttp.SetLogger(zapLogger.Sugar())

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var pool *pgxpool.Pool
	if dsn := viper.GetString("database-url"); dsn != "" {
		pool, err = pgxpool.New(ctx, dsn)
		if err != nil {
			return fmt.Errorf("connect database: %w", err)
		}
		defer pool.Close()
	}

	dispatcher := edgehttp.NewDispatcher()
	if err := registerDemoRoutes(dispatcher, pool); err != nil {
		return fmt.Errorf("register routes: %w", err)
	}

	local := transport.NewLocalTransport("local")
	cloud := transport.NewCloudTransport("cloud")
	workers := edgehttp.NewWorkerPool(viper.GetInt("workers"), viper.GetInt("workers")*4)
	defer workers.Stop()

	manager := edgehttp.NewRequestManager(dispatcher, local, cloud, workers)
	manager.TickInterval = viper.GetDuration("tick-interval")

	started, err := manager.StartServer(ctx, viper.GetInt("port"))
	if err != nil {
		zapLogger.Sugar().Warnw("startup reported errors", "error", err)
	}
	if !started {
		return fmt.Errorf("primary transport failed to start")
	}
	defer manager.StopServer()

	zapLogger.Sugar().Infow("edgehttp demo running", "port", viper.GetInt("port"), "cloudPort", viper.GetInt("cloud-port"))
	return manager.Run(ctx)
}
