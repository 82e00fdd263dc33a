package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/spf13/cobra"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"ordertrack/cmd"
)

const shutdownTimeout = 10 * time.Second

var envFile string

func main() {
	rootCmd := &cobra.Command{
		Use:   "ordertrack",
		Short: "Order record lifecycle engine",
	}
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "optional dotenv file")

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("ordertrack: %v", err)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server and the scheduled jobs",
		RunE: func(c *cobra.Command, _ []string) error {
			app, cfg, err := bootstrap()
			if err != nil {
				return err
			}
			defer app.Close()

			app.Start()

			jobManager := app.CreateJobManager()
			if err := jobManager.StartAll(); err != nil {
				return fmt.Errorf("start jobs: %w", err)
			}
			defer jobManager.StopAll()

			return startWebServer(c.Context(), app, cfg.HTTPPort)
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the store tables",
		RunE: func(c *cobra.Command, _ []string) error {
			app, _, err := bootstrap()
			if err != nil {
				return err
			}
			defer app.Close()

			return app.Migrate(c.Context())
		},
	}
}

func bootstrap() (*cmd.CompositionRoot, cmd.Config, error) {
	cfg, err := cmd.LoadConfig(envFile)
	if err != nil {
		return nil, cfg, err
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	gormDB, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, cfg, fmt.Errorf("connect to store: %w", err)
	}

	return cmd.NewCompositionRoot(cfg, gormDB, logger), cfg, nil
}

func startWebServer(ctx context.Context, app *cmd.CompositionRoot, port string) error {
	e := echo.New()
	e.HideBanner = true
	app.CreateHTTPServer().Register(e)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
